package acquiringbank

// Response is the closed set of outcomes a bank client can produce. Success
// means the bank gave a definitive decision (authorized or declined);
// everything else is a communication or protocol failure, carried as a
// message rather than an error so no transport failure crosses the client
// boundary.
type Response struct {
	Success           bool
	Authorized        bool
	AuthorizationCode string
	ErrorMessage      string
}

func AuthorizedResponse(authorizationCode string) Response {
	return Response{
		Success:           true,
		Authorized:        true,
		AuthorizationCode: authorizationCode,
	}
}

func DeclinedResponse() Response {
	return Response{
		Success: true,
	}
}

func UnavailableResponse(reason string) Response {
	return Response{
		ErrorMessage: reason,
	}
}

func ErrorResponse(message string) Response {
	return Response{
		ErrorMessage: message,
	}
}

package acquiringbank

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/payment-gateway/internal"
)

// Registry resolves a named bank client, case-insensitively. It is built
// once at startup and read-only afterwards.
type Registry struct {
	clients map[string]Client
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger, clients ...Client) *Registry {
	byName := make(map[string]Client, len(clients))
	for _, client := range clients {
		byName[strings.ToLower(client.BankName())] = client
	}
	return &Registry{
		clients: byName,
		logger:  logger,
	}
}

// Get returns the client registered under bankName. An unknown name is a
// configuration defect, not a payment outcome.
func (r *Registry) Get(bankName string) (Client, error) {
	client, ok := r.clients[strings.ToLower(bankName)]
	if !ok {
		r.logger.Warn("no acquiring bank client registered", "bank_name", bankName)
		return nil, internal.NewConfigError(
			fmt.Sprintf("no acquiring bank client registered for %q", bankName),
			internal.ErrCodeUnknownBank)
	}
	return client, nil
}

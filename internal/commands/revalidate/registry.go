package revalidatecmd

import (
	"errors"

	"github.com/goliatone/go-newsroom/internal/commands"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterRevalidateCommands.
type HandlerSet struct {
	RevalidateIndex *RevalidateIndexHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	revalidateOpts []commands.HandlerOption[RevalidateIndexCommand]
}

// WithRevalidateHandlerOptions forwards options to the RevalidateIndexHandler constructor.
func WithRevalidateHandlerOptions(opts ...commands.HandlerOption[RevalidateIndexCommand]) Option {
	return func(cfg *options) {
		cfg.revalidateOpts = append(cfg.revalidateOpts, opts...)
	}
}

// RegisterRevalidateCommands builds the index revalidation handler and registers it with reg
// when one is supplied. The handlers are returned so callers can dispatch directly.
func RegisterRevalidateCommands(reg CommandRegistry, index Invalidator, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if index == nil {
		return nil, errors.New("revalidate command registration: index is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "index")
	handler := NewRevalidateIndexHandler(index, logger, cfg.revalidateOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{RevalidateIndex: handler}, nil
}

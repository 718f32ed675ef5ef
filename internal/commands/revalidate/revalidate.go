package revalidatecmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-newsroom/internal/commands"
	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

const revalidateIndexMessageType = "newsroom.index.revalidate"

// Invalidator drops cached index state for a tag. It reports whether the tag was known.
type Invalidator interface {
	Invalidate(ctx context.Context, tag string) (bool, error)
}

// RevalidateResult receives the outcome of a revalidation.
type RevalidateResult struct {
	Tag         string
	Revalidated bool
}

// RevalidateIndexCommand drops the cached content index so the next listing rescans the content root.
type RevalidateIndexCommand struct {
	Tag string
	// Result is optional; when set the handler records the outcome in it.
	Result *RevalidateResult `json:"-"`
}

// Type implements command.Message.
func (RevalidateIndexCommand) Type() string { return revalidateIndexMessageType }

// Validate satisfies command.Message.
func (m RevalidateIndexCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Tag,
			validation.Required.ErrorObject(validation.NewError("newsroom.index.revalidate.tag_required", "tag is required")),
			validation.By(func(value any) error {
				if tag, _ := value.(string); tag != "" && strings.TrimSpace(tag) == "" {
					return validation.NewError("newsroom.index.revalidate.tag_blank", "tag cannot be blank")
				}
				return nil
			}),
		),
	)
}

// RevalidateIndexHandler invalidates the content index cache.
type RevalidateIndexHandler struct {
	inner *commands.Handler[RevalidateIndexCommand]
}

// NewRevalidateIndexHandler constructs a handler wired to the provided index.
func NewRevalidateIndexHandler(index Invalidator, logger interfaces.Logger, opts ...commands.HandlerOption[RevalidateIndexCommand]) *RevalidateIndexHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RevalidateIndexCommand) error {
		tag := strings.TrimSpace(msg.Tag)
		known, err := index.Invalidate(ctx, tag)
		if err != nil {
			return err
		}
		if msg.Result != nil {
			msg.Result.Tag = tag
			msg.Result.Revalidated = known
		}
		entry := logging.WithFields(baseLogger, map[string]any{
			"tag":         tag,
			"revalidated": known,
		})
		if known {
			entry.Info("index.command.revalidated")
		} else {
			entry.Debug("index.command.unknown_tag")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RevalidateIndexCommand]{
		commands.WithLogger[RevalidateIndexCommand](baseLogger),
		commands.WithOperation[RevalidateIndexCommand]("index.revalidate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RevalidateIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RevalidateIndexCommand].
func (h *RevalidateIndexHandler) Execute(ctx context.Context, msg RevalidateIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

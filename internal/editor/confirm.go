package editor

import "context"

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

var (
	AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })
	NeverConfirm  = ConfirmFunc(func(context.Context, string) bool { return false })
)

package store

import "context"

// Gate obtains explicit user approval before a destructive operation
// (delete, edit-save) reaches the network. The store never assumes the
// answer arrives synchronously: the TUI implementation parks the calling
// goroutine until a modal resolves, and the context bounds the wait.
type Gate interface {
	Confirm(ctx context.Context, prompt string) bool
}

// GateFunc adapts a plain function to the Gate interface.
type GateFunc func(ctx context.Context, prompt string) bool

func (f GateFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

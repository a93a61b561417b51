package services

import "context"

// Confirm asks the acting user a yes/no question before a destructive or
// outward action. HTTP callers have already confirmed client-side and pass
// AlwaysConfirm.
type Confirm func(ctx context.Context, prompt string) bool

func AlwaysConfirm(context.Context, string) bool { return true }

func confirmed(ctx context.Context, confirm Confirm, prompt string) bool {
	return confirm == nil || confirm(ctx, prompt)
}

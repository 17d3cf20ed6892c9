package llm

import "context"

type callKey struct{}

// call describes one logical request as it passes through the middleware
// chain.
type call struct {
	purpose string
	attempt int
}

func callFrom(ctx context.Context) call {
	c, _ := ctx.Value(callKey{}).(call)
	if c.purpose == "" {
		c.purpose = "unknown"
	}
	if c.attempt == 0 {
		c.attempt = 1
	}
	return c
}

// WithPurpose labels every request made with ctx, e.g. "exam-batch".
// The label keys the event log, the metrics and the usage screen.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	c := callFrom(ctx)
	c.purpose = purpose
	return context.WithValue(ctx, callKey{}, c)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	return callFrom(ctx).purpose
}

// withAttempt records the 1-based retry attempt for the layers below.
func withAttempt(ctx context.Context, attempt int) context.Context {
	c := callFrom(ctx)
	c.attempt = attempt
	return context.WithValue(ctx, callKey{}, c)
}

func attemptFrom(ctx context.Context) int {
	return callFrom(ctx).attempt
}

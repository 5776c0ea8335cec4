package auth

import "context"

type subjectKey struct{}

// ContextWithSubject attaches the resolved caller identity to the context.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromContext returns the caller identity set by the authorization
// gate, or the empty string outside an authenticated request.
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey{}).(string)
	return subject
}

package mock

import "github.com/fwojciec/govdoc"

var _ govdoc.Authorizer = (*Authorizer)(nil)

// Authorizer is a mock implementation of govdoc.Authorizer.
type Authorizer struct {
	AuthorizeFn func(rawURL string) (govdoc.Decision, error)
}

func (a *Authorizer) Authorize(rawURL string) (govdoc.Decision, error) {
	return a.AuthorizeFn(rawURL)
}

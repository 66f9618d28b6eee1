package auth

import "strings"

// Gate restricts sessions to a single email domain.
type Gate struct {
	domain string
}

// NewGate builds a Gate for the given domain (without the leading "@").
func NewGate(domain string) Gate {
	return Gate{domain: strings.TrimPrefix(strings.TrimSpace(domain), "@")}
}

// Domain returns the configured domain.
func (g Gate) Domain() string {
	return g.domain
}

// Authorize reports whether the identity belongs to the allowed domain.
//
// This is a raw suffix match on the email string, not a structural email
// parse, kept for compatibility with the deployed behavior. A mailbox string
// merely ending in "@<domain>" passes even if what precedes the "@" is itself
// suspicious; see the tests that pin this down.
func (g Gate) Authorize(identity Identity) bool {
	if g.domain == "" {
		return false
	}
	return strings.HasSuffix(identity.Email, "@"+g.domain)
}

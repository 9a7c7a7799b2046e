package totp

import (
	"fmt"
	"net/url"
)

// Identity is the minimal capability the engine needs from an external
// identity provider: a stable, opaque identifier string. It is consumed
// only by URIFor and GenerateSecretFor; the engine never validates or
// looks up the identifier.
type Identity interface {
	Identifier() string
}

// URI builds the otpauth:// provisioning URI consumed by authenticator
// apps. The label is name alone, or "name:identifier" when identifier is
// non-empty. Label and secret are percent-encoded; the query parameters
// keep the order secret, algorithm, digits, period for compatibility with
// common authenticator apps.
func (e *Engine) URI(name, identifier string) string {
	if e == nil {
		return ""
	}

	label := name
	if identifier != "" {
		label = fmt.Sprintf("%s:%s", name, identifier)
	}

	return fmt.Sprintf("otpauth://totp/%s?secret=%s&algorithm=%s&digits=%d&period=%d",
		url.PathEscape(label),
		url.QueryEscape(e.secret),
		e.algorithm,
		e.digits,
		e.period)
}

// URIFor is URI with the account taken from an Identity.
func (e *Engine) URIFor(name string, id Identity) string {
	return e.URI(name, id.Identifier())
}

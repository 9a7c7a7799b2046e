package totp

import (
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Algorithm identifies the HMAC hash function used for code generation.
type Algorithm string

const (
	// AlgorithmSHA1 uses HMAC-SHA1 (default, universally supported).
	AlgorithmSHA1 Algorithm = "sha1"
	// AlgorithmSHA256 uses HMAC-SHA256.
	AlgorithmSHA256 Algorithm = "sha256"
	// AlgorithmSHA512 uses HMAC-SHA512.
	AlgorithmSHA512 Algorithm = "sha512"
)

// Default configuration values applied by New.
const (
	DefaultDigits = 6
	DefaultPeriod = 30

	// maxDigits bounds the code length. The truncated HOTP value is 31 bits,
	// so codes beyond 10 digits cannot carry more information.
	maxDigits = 10
)

// Common errors returned by the engine.
var (
	// ErrInvalidConfiguration indicates digits or period are out of range.
	ErrInvalidConfiguration = errors.New("totp: invalid configuration")
	// ErrInvalidSecret indicates the secret is empty or not valid base32.
	ErrInvalidSecret = errors.New("totp: invalid secret")
	// ErrUnsupportedAlgorithm indicates an unknown hash algorithm identifier.
	ErrUnsupportedAlgorithm = errors.New("totp: unsupported algorithm")
	// ErrNilEngine indicates a nil engine was used.
	ErrNilEngine = errors.New("totp: engine is nil")
)

// Config holds the engine configuration.
type Config struct {
	// Secret is the base32-encoded shared secret key (required).
	// Both padded and unpadded encodings are accepted.
	Secret string
	// Digits is the code length, 1 to 10. Default: 6
	Digits int
	// Period is the code validity window in seconds. Default: 30
	Period int64
	// Algorithm selects the HMAC hash function, matched case-insensitively.
	// Default: sha1
	Algorithm Algorithm
}

// validate checks that the configuration is usable.
func (c Config) validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("%w: secret must not be empty", ErrInvalidSecret)
	}
	if c.Digits < 0 || c.Digits > maxDigits {
		return fmt.Errorf("%w: digits must be between 1 and %d", ErrInvalidConfiguration, maxDigits)
	}
	if c.Period < 0 {
		return fmt.Errorf("%w: period must be positive", ErrInvalidConfiguration)
	}
	if c.Algorithm != "" {
		if _, err := hashFor(normalizeAlgorithm(c.Algorithm)); err != nil {
			return err
		}
	}
	return nil
}

// Engine generates and verifies one-time passwords for a single shared
// secret. The configuration is fixed at construction, so an Engine is safe
// for concurrent use.
type Engine struct {
	secret    string
	digits    int
	period    int64
	algorithm Algorithm
}

// New creates an Engine from the supplied configuration.
// Digits, period and algorithm are validated eagerly and an error is
// returned if they are out of range or unknown. The secret must be
// non-empty but is only decoded when a code is computed: a malformed
// secret surfaces as ErrInvalidSecret from Now, At or AtCounter, and a
// URI can still be built for it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if cfg.Digits == 0 {
		cfg.Digits = DefaultDigits
	}
	if cfg.Period == 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmSHA1
	}

	return &Engine{
		secret:    cfg.Secret,
		digits:    cfg.Digits,
		period:    cfg.Period,
		algorithm: normalizeAlgorithm(cfg.Algorithm),
	}, nil
}

// Digits returns the configured code length.
func (e *Engine) Digits() int {
	if e == nil {
		return 0
	}
	return e.digits
}

// Now returns the numeric code for the current wall-clock time.
func (e *Engine) Now() (int, error) {
	if e == nil {
		return 0, ErrNilEngine
	}
	return e.At(time.Now().Unix())
}

// At returns the numeric code for an arbitrary Unix timestamp. It is a pure
// function of the timestamp and the engine configuration; the timestamp may
// be in the past or the future.
func (e *Engine) At(timestamp int64) (int, error) {
	if e == nil {
		return 0, ErrNilEngine
	}
	return e.AtCounter(uint64(floorDiv(timestamp, e.period)))
}

// AtCounter returns the numeric code for a raw HOTP counter value
// (RFC 4226). At is defined in terms of AtCounter with the counter set to
// the period-aligned time bucket.
func (e *Engine) AtCounter(counter uint64) (int, error) {
	if e == nil {
		return 0, ErrNilEngine
	}
	key, err := decodeSecret(e.secret)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return hotpCode(e.algorithm, key, counter, e.digits)
}

// Format renders a numeric code as text, left-padded with zeros to the
// configured number of digits. Now, At and AtCounter return numeric values;
// callers that display codes are responsible for zero-padding and should use
// this helper rather than formatting the integer directly.
func (e *Engine) Format(code int) string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%0*d", e.digits, code)
}

// Verify reports whether a numeric candidate matches the code for the
// current time, the previous period or the next period. The tolerance window
// is computed from shifted timestamps (now ± period seconds), not shifted
// time buckets. Comparison is exact numeric equality, so a candidate 7
// matches a code whose canonical rendering is "0000007"; use VerifyString
// to enforce fixed-width input.
func (e *Engine) Verify(candidate int) (bool, error) {
	if e == nil {
		return false, ErrNilEngine
	}
	return e.VerifyAt(candidate, time.Now().Unix())
}

// VerifyAt is Verify evaluated at an arbitrary timestamp.
func (e *Engine) VerifyAt(candidate int, timestamp int64) (bool, error) {
	if e == nil {
		return false, ErrNilEngine
	}
	for _, ts := range []int64{timestamp, timestamp - e.period, timestamp + e.period} {
		code, err := e.At(ts)
		if err != nil {
			return false, err
		}
		if code == candidate {
			return true, nil
		}
	}
	return false, nil
}

// VerifyString reports whether a textual candidate matches a code within the
// same window as Verify. The candidate must be exactly Digits ASCII digits;
// shorter or longer input never matches. Comparison is constant-time.
func (e *Engine) VerifyString(candidate string) (bool, error) {
	if e == nil {
		return false, ErrNilEngine
	}
	return e.VerifyStringAt(candidate, time.Now().Unix())
}

// VerifyStringAt is VerifyString evaluated at an arbitrary timestamp.
func (e *Engine) VerifyStringAt(candidate string, timestamp int64) (bool, error) {
	if e == nil {
		return false, ErrNilEngine
	}
	if len(candidate) != e.digits || !isDigits(candidate) {
		return false, nil
	}

	match := 0
	for _, ts := range []int64{timestamp, timestamp - e.period, timestamp + e.period} {
		code, err := e.At(ts)
		if err != nil {
			return false, err
		}
		match |= subtle.ConstantTimeCompare([]byte(candidate), []byte(e.Format(code)))
	}
	return match == 1, nil
}

// VerifyCounter verifies a numeric candidate against a raw HOTP counter
// (RFC 4226). On a match it returns the advanced counter value, which the
// caller should store for the next verification.
func (e *Engine) VerifyCounter(candidate int, counter uint64) (uint64, bool, error) {
	if e == nil {
		return 0, false, ErrNilEngine
	}
	code, err := e.AtCounter(counter)
	if err != nil {
		return counter, false, err
	}
	if code != candidate {
		return counter, false, nil
	}
	return counter + 1, true, nil
}

// decodeSecret decodes a base32 secret, accepting padded, unpadded and
// lower-case input. The decoded key is never retained; each operation
// decodes, uses and discards it.
func decodeSecret(secret string) ([]byte, error) {
	s := strings.TrimRight(strings.ToUpper(strings.TrimSpace(secret)), "=")
	return base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
}

func normalizeAlgorithm(a Algorithm) Algorithm {
	return Algorithm(strings.ToLower(string(a)))
}

// floorDiv is integer division rounding toward negative infinity. The time
// bucket must be computed exactly for the full timestamp range, so the
// division never round-trips through floating point.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base32"
	"fmt"
	"math/big"
	"strings"
)

// Shape of a generated secret: 16 words of 4 to 10 uppercase letters,
// reduced to a 16-character base32 key.
const (
	secretWords    = 16
	wordMinLetters = 4
	wordMaxLetters = 10
	secretKeyLen   = 16
)

// Source supplies random integers for secret generation. Int must return a
// uniform value in [0, n). The default production source is CryptoSource;
// tests may supply a deterministic implementation.
type Source interface {
	Int(n int) (int, error)
}

// CryptoSource is a Source backed by crypto/rand.
type CryptoSource struct{}

// Int returns a uniform random value in [0, n).
func (CryptoSource) Int(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("totp: failed to read random source: %w", err)
	}
	return int(v.Int64()), nil
}

// GeneratedSecret is the result of secret generation.
type GeneratedSecret struct {
	// Key is the 16-character base32 secret, suitable for Config.Secret.
	Key string
	// Words is the mnemonic phrase the key was derived from, for
	// human-readable presentation. The words play no role in verification
	// and cannot be recovered from the key.
	Words []string
}

// GenerateSecret creates a new shared secret bound to an identifier, using
// a cryptographically secure random source.
//
// Sixteen random uppercase words of 4 to 10 letters are joined with single
// spaces, the phrase is hashed with HMAC-SHA512 keyed by the identifier,
// and the base32 digest, stripped of padding and truncated to 16
// characters, becomes the key.
func GenerateSecret(identifier string) (*GeneratedSecret, error) {
	return GenerateSecretSource(identifier, CryptoSource{})
}

// GenerateSecretSource is GenerateSecret with an explicit randomness source.
func GenerateSecretSource(identifier string, src Source) (*GeneratedSecret, error) {
	words := make([]string, secretWords)
	for i := range words {
		w, err := randomWord(src)
		if err != nil {
			return nil, err
		}
		words[i] = w
	}

	mac := hmac.New(sha512.New, []byte(identifier))
	mac.Write([]byte(strings.Join(words, " ")))
	digest := mac.Sum(nil)

	encoded := base32.StdEncoding.EncodeToString(digest)
	encoded = strings.NewReplacer("=", "", "+", "", "/", "").Replace(encoded)

	return &GeneratedSecret{
		Key:   encoded[:secretKeyLen],
		Words: words,
	}, nil
}

// GenerateSecretFor is GenerateSecret keyed by an Identity.
func GenerateSecretFor(id Identity) (*GeneratedSecret, error) {
	return GenerateSecret(id.Identifier())
}

// randomWord produces a single uppercase word of 4 to 10 letters.
func randomWord(src Source) (string, error) {
	n, err := src.Int(wordMaxLetters - wordMinLetters + 1)
	if err != nil {
		return "", err
	}
	length := wordMinLetters + n

	letters := make([]byte, length)
	for i := range letters {
		c, err := src.Int(26)
		if err != nil {
			return "", err
		}
		letters[i] = byte('A' + c)
	}
	return string(letters), nil
}

package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"hash"
)

// hashFor maps an algorithm identifier to its hash constructor.
func hashFor(a Algorithm) (func() hash.Hash, error) {
	switch a {
	case AlgorithmSHA1:
		return sha1.New, nil
	case AlgorithmSHA256:
		return sha256.New, nil
	case AlgorithmSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q (want sha1, sha256 or sha512)", ErrUnsupportedAlgorithm, a)
	}
}

// hotpCode computes the RFC 4226 code for a counter value.
//
// The counter is packed into exactly 8 big-endian bytes, zero-padded on the
// left (all zero for counter 0). The HMAC of those bytes is dynamically
// truncated: the low nibble of the final byte selects an offset, 31 bits are
// read big-endian starting there, and the result is reduced modulo
// 10^digits.
func hotpCode(alg Algorithm, key []byte, counter uint64, digits int) (int, error) {
	newHash, err := hashFor(alg)
	if err != nil {
		return 0, err
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)

	mac := hmac.New(newHash, key)
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	truncated := uint32(sum[offset]&0x7f)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])

	return int(uint64(truncated) % pow10(digits)), nil
}

// pow10 returns 10^n for n in [0, maxDigits].
func pow10(n int) uint64 {
	p := uint64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

package stego

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// EntropyFunc supplies a fresh seed when none was given.
type EntropyFunc func() uint64

// TimeEntropy returns an EntropyFunc drawing from a generator seeded with the
// current time. Every call yields a different value.
func TimeEntropy(now func() time.Time) EntropyFunc {
	return func() uint64 {
		return rand.New(rand.NewSource(now().UnixNano())).Uint64()
	}
}

// FixedEntropy always returns v.
func FixedEntropy(v uint64) EntropyFunc {
	return func() uint64 { return v }
}

// SeedFromString derives a reproducible seed from a passphrase.
//
// The MD5 digest of text is folded into 64 bits, starting at the byte given by
// the low nibble of the last digest byte and wrapping around the digest.
func SeedFromString(text string) uint64 {
	digest := Digest([]byte(text))
	start := int(digest[len(digest)-1] & lowNibble)

	var seed uint64
	for i := 0; i < 8; i++ {
		seed = seed<<8 | uint64(digest[(start+i)%len(digest)])
	}
	return seed
}

// DeriveSeed returns SeedFromString(text), or a value from entropy when text
// is empty.
func DeriveSeed(text string, entropy EntropyFunc) uint64 {
	if text == "" {
		return entropy()
	}
	return SeedFromString(text)
}

// ParseSeed parses a numeric seed. Negative values are accepted as their two's
// complement so seeds printed as signed 64-bit numbers keep working.
func ParseSeed(v string) (uint64, error) {
	if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
		return seed, nil
	}
	seed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a valid number", v)
	}
	return uint64(seed), nil
}

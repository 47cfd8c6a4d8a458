package stego

import (
	"bytes"
	"crypto"
	_ "crypto/md5"
)

// digestAlgorithm produces the integrity hash stored in the header. Changing
// it breaks every previously encoded image.
const digestAlgorithm = crypto.MD5

// DigestSize is the number of logical bytes in the stored hash.
const DigestSize = 16

// Digest returns the integrity hash of payload. It is tamper evidence only,
// not a secrecy mechanism.
func Digest(payload []byte) []byte {
	if !digestAlgorithm.Available() {
		panic("stego: digest algorithm " + digestAlgorithm.String() + " is not linked into the binary")
	}
	h := digestAlgorithm.New()
	h.Write(payload)
	return h.Sum(nil)
}

// VerifyDigest reports whether digest is the hash of payload.
func VerifyDigest(payload []byte, digest []byte) bool {
	return bytes.Equal(Digest(payload), digest)
}

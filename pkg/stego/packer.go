package stego

import "encoding/binary"

const (
	// carrierBytesPerByte is the number of carrier bytes consumed by one
	// hidden byte: each carrier byte holds a nibble in its low 4 bits.
	carrierBytesPerByte = 2

	lowNibble  = 0x0F
	highNibble = 0xF0

	intSize = 4
)

// Pack hides data in carrier starting at start. The high nibble of every data
// byte goes into the low 4 bits of carrier[i], the low nibble into
// carrier[i+1]. The upper 4 bits of each carrier byte are left untouched.
// The caller guarantees start+2*len(data) <= len(carrier).
func Pack(carrier []byte, start int, data []byte) {
	pos := start
	for _, b := range data {
		carrier[pos] = (carrier[pos] & highNibble) | (b >> 4)
		carrier[pos+1] = (carrier[pos+1] & highNibble) | (b & lowNibble)
		pos += carrierBytesPerByte
	}
}

// Unpack is the inverse of Pack. It reads 2*length carrier bytes and does not
// modify carrier.
func Unpack(carrier []byte, start int, length int) []byte {
	out := make([]byte, length)
	pos := start
	for i := range out {
		out[i] = (carrier[pos]&lowNibble)<<4 | carrier[pos+1]&lowNibble
		pos += carrierBytesPerByte
	}
	return out
}

// packedSize returns how many carrier bytes n hidden bytes occupy.
func packedSize(n int) int {
	return n * carrierBytesPerByte
}

func EncodeInt32(n uint32) [intSize]byte {
	var b [intSize]byte
	binary.BigEndian.PutUint32(b[:], n)
	return b
}

func DecodeInt32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b[:intSize])
}

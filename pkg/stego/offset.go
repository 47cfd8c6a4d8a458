package stego

import (
	"fmt"
	"math"
	"math/rand"
)

// ComputeOffset picks the carrier index where the packed payload starts.
//
// The payload is placed somewhere in [headerSize, carrierLen-2*payloadLen)
// using a generator seeded with seed, so the same seed always yields the same
// offset for the same carrier and payload sizes. Decode relies on this to
// find the payload; the stored offset is only a consistency check.
func ComputeOffset(layout Layout, carrierLen int, payloadLen int, seed uint64) (int, error) {
	if payloadLen < 0 || uint64(payloadLen) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: payload length %d", ErrCapacityExceeded, payloadLen)
	}

	headerSize := layout.HeaderSize()
	maxOffset := carrierLen - packedSize(payloadLen) - headerSize
	if maxOffset <= 0 {
		return 0, fmt.Errorf("%w: %d bytes need %d carrier bytes, %d available",
			ErrCapacityExceeded, payloadLen, packedSize(payloadLen), carrierLen-headerSize)
	}

	r := rand.New(rand.NewSource(int64(seed)))
	offset := headerSize + int(r.Int63n(int64(maxOffset)))
	if uint64(offset) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: offset %d does not fit the header field", ErrCapacityExceeded, offset)
	}
	return offset, nil
}

// Capacity returns the largest payload, in bytes, that fits in a carrier of
// carrierLen bytes with the given layout.
func Capacity(layout Layout, carrierLen int) int {
	free := carrierLen - layout.HeaderSize() - 1
	if free < 0 {
		return 0
	}
	return free / carrierBytesPerByte
}

package stego

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"
	"testing"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/bmp"
)

func init() {
	// Silence logs during tests
	log.Logger = log.Output(io.Discard)
}

// rawBitmap builds a size byte carrier with a 40 byte BITMAPINFOHEADER and a
// patterned body. Only the headers the codec reads are filled in.
func rawBitmap(size int) []byte {
	b := make([]byte, size)
	b[0], b[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(b[2:], uint32(size))
	binary.LittleEndian.PutUint32(b[10:], 54)
	binary.LittleEndian.PutUint32(b[14:], 40)
	for i := 54; i < size; i++ {
		b[i] = uint8(i % 251)
	}
	return b
}

// encodedBitmap returns a real 24-bit bitmap of the given dimensions.
func encodedBitmap(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i++ {
		if i%4 == 3 {
			img.Pix[i] = 255
			continue
		}
		img.Pix[i] = uint8(i % 255)
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode bitmap: %v", err)
	}
	return buf.Bytes()
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

package stego

import (
	"bytes"

	"golang.org/x/image/bmp"
)

// Info describes the metadata region of a carrier.
type Info struct {
	Width         int
	Height        int
	Size          int
	DIBHeaderSize int
	HeaderBase    int
	Capacity      int

	// The fields below are only meaningful when Signed is true. The stored
	// offset can be checked against a seed but is not trusted on its own.
	Signed        bool
	PayloadLength int
	PayloadOffset int
}

// Inspect reads the headers of carrier without needing a seed.
// Width and Height are zero when the pixel format is one x/image/bmp cannot
// describe (e.g. compressed or 16-bit bitmaps); the codec itself does not
// care about the pixel format.
func Inspect(carrier []byte) (*Info, error) {
	if !isBitmap(carrier) {
		return nil, ErrInvalidContainer
	}
	layout, err := ResolveLayout(carrier)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Size:          len(carrier),
		DIBHeaderSize: layout.DIBHeaderSize,
		HeaderBase:    layout.Base,
		Capacity:      Capacity(layout, len(carrier)),
		Signed:        hasSignature(carrier),
	}

	if cfg, err := bmp.DecodeConfig(bytes.NewReader(carrier)); err == nil {
		info.Width = cfg.Width
		info.Height = cfg.Height
	}

	if info.Signed {
		info.PayloadLength = int(DecodeInt32(Unpack(carrier, layout.LengthAt(), intSize)))
		info.PayloadOffset = int(DecodeInt32(Unpack(carrier, layout.OffsetAt(), intSize)))
	}
	return info, nil
}

// CarrierCapacity returns the largest payload, in bytes, that carrier can
// hold.
func CarrierCapacity(carrier []byte) (int, error) {
	if !isBitmap(carrier) {
		return 0, ErrInvalidContainer
	}
	layout, err := ResolveLayout(carrier)
	if err != nil {
		return 0, err
	}
	return Capacity(layout, len(carrier)), nil
}

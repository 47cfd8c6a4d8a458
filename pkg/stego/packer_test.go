package stego

import (
	"bytes"
	"testing"
)

func TestPackNibbles(t *testing.T) {
	carrier := []byte{0xAB, 0xCD, 0xFF, 0x00}
	Pack(carrier, 0, []byte{0x12, 0xE7})

	want := []byte{0xA1, 0xC2, 0xFE, 0x07}
	if !bytes.Equal(carrier, want) {
		t.Errorf("Pack() = % X, want % X", carrier, want)
	}
}

func TestPackPreservesHighBits(t *testing.T) {
	carrier := make([]byte, 512)
	for i := range carrier {
		carrier[i] = uint8(i)
	}
	data := make([]byte, 256)
	for i := range data {
		data[i] = uint8(255 - i)
	}

	original := clone(carrier)
	Pack(carrier, 0, data)

	for i := range carrier {
		if carrier[i]&highNibble != original[i]&highNibble {
			t.Fatalf("carrier[%d] high nibble changed: got %#x, want %#x", i, carrier[i]&highNibble, original[i]&highNibble)
		}
	}
}

func TestUnpackInvertsPack(t *testing.T) {
	tests := []struct {
		name  string
		start int
		data  []byte
	}{
		{name: "Empty", start: 3, data: []byte{}},
		{name: "Single", start: 0, data: []byte{0x5A}},
		{name: "Offset", start: 7, data: []byte("hello, bitmap")},
		{name: "AllValues", start: 1, data: func() []byte {
			b := make([]byte, 256)
			for i := range b {
				b[i] = uint8(i)
			}
			return b
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carrier := rawBitmap(tt.start + packedSize(len(tt.data)) + 10)
			Pack(carrier, tt.start, tt.data)

			before := clone(carrier)
			got := Unpack(carrier, tt.start, len(tt.data))
			if !bytes.Equal(got, tt.data) {
				t.Errorf("Unpack() = %v, want %v", got, tt.data)
			}
			if !bytes.Equal(carrier, before) {
				t.Error("Unpack modified the carrier")
			}
		})
	}
}

func TestPackOnlyTouchesItsSpan(t *testing.T) {
	carrier := rawBitmap(100)
	original := clone(carrier)
	Pack(carrier, 60, []byte{0xFF, 0x00, 0x81})

	for i := range carrier {
		if (i < 60 || i >= 66) && carrier[i] != original[i] {
			t.Errorf("byte %d changed outside the packed span", i)
		}
	}
}

func TestInt32Codec(t *testing.T) {
	tests := []struct {
		n    uint32
		want [4]byte
	}{
		{0, [4]byte{0, 0, 0, 0}},
		{1, [4]byte{0, 0, 0, 1}},
		{0x01020304, [4]byte{1, 2, 3, 4}},
		{0xFFFFFFFF, [4]byte{0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		got := EncodeInt32(tt.n)
		if got != tt.want {
			t.Errorf("EncodeInt32(%d) = % X, want % X", tt.n, got, tt.want)
		}
		if back := DecodeInt32(got[:]); back != tt.n {
			t.Errorf("DecodeInt32(% X) = %d, want %d", got, back, tt.n)
		}
	}
}

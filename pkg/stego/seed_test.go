package stego

import (
	"math"
	"testing"
	"time"
)

func TestSeedFromString(t *testing.T) {
	// Expected values fold the RFC 1321 test digests by hand.
	tests := []struct {
		name string
		text string
		want uint64
	}{
		// 900150983cd24fb0d6963f7d28e17f72: start 0x2
		{name: "abc", text: "abc", want: 0x50983cd24fb0d696},
		// 0cc175b9c0f1b6a831c399e269772661: start 0x1
		{name: "a", text: "a", want: 0xc175b9c0f1b6a831},
		// c3fcd3d76192e4007dfb496cca67e13b: start 0xb, wraps past the end
		{name: "Wrap", text: "abcdefghijklmnopqrstuvwxyz", want: 0x6cca67e13bc3fcd3},
		// f96b697d7cb7938d525a2f31aaf161d0: start 0x0
		{name: "StartZero", text: "message digest", want: 0xf96b697d7cb7938d},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeedFromString(tt.text); got != tt.want {
				t.Errorf("SeedFromString(%q) = %#x, want %#x", tt.text, got, tt.want)
			}
		})
	}
}

func TestSeedFromStringDeterministic(t *testing.T) {
	texts := []string{"correct-horse-battery-staple", "pass", "Pass", "pass ", "ünïcödé"}
	seen := make(map[uint64]string)

	for _, text := range texts {
		first := SeedFromString(text)
		if again := SeedFromString(text); again != first {
			t.Errorf("SeedFromString(%q) not stable: %d then %d", text, first, again)
		}
		if other, ok := seen[first]; ok {
			t.Errorf("SeedFromString(%q) collides with %q", text, other)
		}
		seen[first] = text
	}
}

func TestDeriveSeed(t *testing.T) {
	entropy := FixedEntropy(7)

	if got := DeriveSeed("", entropy); got != 7 {
		t.Errorf("DeriveSeed(\"\") = %d, want entropy value 7", got)
	}
	if got, want := DeriveSeed("abc", entropy), SeedFromString("abc"); got != want {
		t.Errorf("DeriveSeed(\"abc\") = %d, want %d", got, want)
	}
}

func TestTimeEntropy(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)
	entropy := TimeEntropy(func() time.Time { return fixed })
	if entropy() != entropy() {
		t.Error("TimeEntropy with a fixed clock should be reproducible")
	}

	tick := fixed
	moving := TimeEntropy(func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	})
	if moving() == moving() {
		t.Error("TimeEntropy returned the same seed for different instants")
	}
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "42", want: 42},
		{in: "18446744073709551615", want: math.MaxUint64},
		{in: "-1", want: math.MaxUint64},
		{in: "-9223372036854775808", want: 1 << 63},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSeed(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSeed(%q) expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSeed(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeed(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

package mpi

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		value string
		want  []byte
	}{
		// High bit clear: no pad byte.
		{"7f", []byte{0, 0, 0, 1, 0x7f}},
		// High bit set: a leading zero keeps the value positive.
		{"80", []byte{0, 0, 0, 2, 0x00, 0x80}},
		{"0123456789abcdef", []byte{0, 0, 0, 8, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}},
		// Zero encodes as an empty magnitude.
		{"00", []byte{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		n, _ := new(big.Int).SetString(tt.value, 16)
		if got := Encode(n); !bytes.Equal(got, tt.want) {
			t.Errorf("Encode(%s) = %x, want %x", tt.value, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, hexVal := range []string{"00", "01", "7f", "80", "ff", "ff00ff00ff00", "8000000000000000000000"} {
		n, _ := new(big.Int).SetString(hexVal, 16)
		got, err := Decode(Encode(n))
		if err != nil {
			t.Fatalf("Decode(Encode(%s)) error = %v", hexVal, err)
		}
		if got.Cmp(n) != 0 {
			t.Errorf("round trip %s = %s", hexVal, got.Text(16))
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode([]byte{0, 0}); !errors.Is(err, ErrTruncated) {
		t.Errorf("short header error = %v, want ErrTruncated", err)
	}
	if _, err := Decode([]byte{0, 0, 0, 5, 0x01}); !errors.Is(err, ErrTruncated) {
		t.Errorf("short body error = %v, want ErrTruncated", err)
	}
	if _, err := Decode([]byte{0, 0, 0, 1, 0x80}); !errors.Is(err, ErrNegative) {
		t.Errorf("sign bit error = %v, want ErrNegative", err)
	}
}

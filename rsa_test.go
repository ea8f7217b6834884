package keycrypt

import (
	"bytes"
	"errors"
	"testing"
)

func TestOAEPRoundTrip(t *testing.T) {
	pair, err := GenerateRSAKeypair(2048)
	if err != nil {
		t.Fatal(err)
	}
	defer pair.Destroy()

	secret := []byte("0123456789abcdef")
	ct, err := EncryptOAEP(pair.Public, secret)
	if err != nil {
		t.Fatalf("EncryptOAEP error = %v", err)
	}
	got, err := DecryptOAEP(pair.Private, ct)
	if err != nil {
		t.Fatalf("DecryptOAEP error = %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("decrypted = %x, want %x", got, secret)
	}
}

func TestOAEPWrongKey(t *testing.T) {
	a, err := GenerateRSAKeypair(2048)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Destroy()
	b, err := GenerateRSAKeypair(2048)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Destroy()

	ct, err := EncryptOAEP(a.Public, []byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecryptOAEP(b.Private, ct); !errors.Is(err, ErrBackendFailure) {
		t.Fatalf("DecryptOAEP with wrong key error = %v, want ErrBackendFailure", err)
	}
}

func TestOAEPRejectsEC(t *testing.T) {
	pair, err := GenerateECKeypair("prime256v1")
	if err != nil {
		t.Fatal(err)
	}
	defer pair.Destroy()

	if _, err := EncryptOAEP(pair.Public, []byte("x")); !errors.Is(err, ErrUnsupportedKeyType) {
		t.Fatalf("EncryptOAEP(ec) error = %v, want ErrUnsupportedKeyType", err)
	}
	if _, err := DecryptOAEP(pair.Private, []byte("x")); !errors.Is(err, ErrUnsupportedKeyType) {
		t.Fatalf("DecryptOAEP(ec) error = %v, want ErrUnsupportedKeyType", err)
	}
}

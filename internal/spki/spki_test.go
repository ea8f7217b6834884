package spki

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"testing"
)

func TestMarshalECCompressed(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := MarshalEC(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalEC error = %v", err)
	}
	// A P-256 SPKI with an uncompressed point is 91 bytes; the
	// compressed form saves the 32-byte second coordinate.
	uncompressed, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	if len(der) >= len(uncompressed) {
		t.Errorf("compressed SPKI (%d bytes) not shorter than uncompressed (%d)", len(der), len(uncompressed))
	}

	pub, err := Parse(der)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	got, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		t.Fatalf("Parse returned %T", pub)
	}
	if !got.Equal(&priv.PublicKey) {
		t.Error("parsed key differs from original")
	}
}

func TestParseUncompressedEC(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	pub, err := Parse(der)
	if err != nil {
		t.Fatalf("Parse(uncompressed) error = %v", err)
	}
	if got, ok := pub.(*ecdsa.PublicKey); !ok || !got.Equal(&priv.PublicKey) {
		t.Error("parsed key differs from original")
	}
}

func TestMarshalRSARoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	der, err := MarshalRSA(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalRSA error = %v", err)
	}
	pub, err := Parse(der)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got, ok := pub.(*rsa.PublicKey); !ok || !got.Equal(&priv.PublicKey) {
		t.Error("parsed key differs from original")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse([]byte("not der")); err == nil {
		t.Error("Parse accepted garbage")
	}
}

func TestUnmarshalPoint(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	curve := priv.Curve

	for _, data := range [][]byte{
		elliptic.MarshalCompressed(curve, priv.X, priv.Y),
		elliptic.Marshal(curve, priv.X, priv.Y),
	} {
		x, y, err := UnmarshalPoint(curve, data)
		if err != nil {
			t.Fatalf("UnmarshalPoint(%02x...) error = %v", data[0], err)
		}
		if x.Cmp(priv.X) != 0 || y.Cmp(priv.Y) != 0 {
			t.Errorf("UnmarshalPoint(%02x...) decoded wrong point", data[0])
		}
	}

	if _, _, err := UnmarshalPoint(curve, nil); err == nil {
		t.Error("empty point accepted")
	}
	if _, _, err := UnmarshalPoint(curve, []byte{0x05, 0x01}); err == nil {
		t.Error("bad prefix accepted")
	}
	if _, _, err := UnmarshalPoint(curve, []byte{0x04, 0x01, 0x02}); err == nil {
		t.Error("truncated point accepted")
	}
}

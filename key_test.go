package keycrypt

import (
	"errors"
	"math/big"
	"testing"

	"github.com/vaultsandbox/keycrypt/internal/oids"
)

func TestGenerateECKeypair(t *testing.T) {
	for _, curve := range []string{"secp224r1", "prime256v1", "secp384r1", "secp521r1"} {
		pair, err := GenerateECKeypair(curve)
		if err != nil {
			t.Fatalf("GenerateECKeypair(%s) error = %v", curve, err)
		}
		if got := pair.Private.Type(); got != KeyEC {
			t.Errorf("%s: Type() = %v, want KeyEC", curve, got)
		}
		if !pair.Public.Equal(pair.Private.Public()) {
			t.Errorf("%s: Public() does not match generated public key", curve)
		}
		pair.Destroy()
	}
}

func TestGenerateECKeypairUnknownCurve(t *testing.T) {
	_, err := GenerateECKeypair("curve25519")
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("GenerateECKeypair(curve25519) error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestGenerateRSAKeypair(t *testing.T) {
	pair, err := GenerateRSAKeypair(2048)
	if err != nil {
		t.Fatalf("GenerateRSAKeypair(2048) error = %v", err)
	}
	defer pair.Destroy()
	if got := pair.Private.Type(); got != KeyRSA {
		t.Errorf("Type() = %v, want KeyRSA", got)
	}
	if !pair.Public.Equal(pair.Private.Public()) {
		t.Error("Public() does not match generated public key")
	}
}

func TestKeyTypeString(t *testing.T) {
	if got := KeyRSA.String(); got != "RSA" {
		t.Errorf("KeyRSA.String() = %q, want RSA", got)
	}
	if got := KeyEC.String(); got != "EC" {
		t.Errorf("KeyEC.String() = %q, want EC", got)
	}
}

func TestKeyEqual(t *testing.T) {
	a, err := GenerateECKeypair("prime256v1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateECKeypair("prime256v1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Public.Equal(b.Public) {
		t.Error("distinct keys compare equal")
	}
	if a.Public.Equal(nil) {
		t.Error("Equal(nil) = true")
	}
	if !a.Private.Equal(a.Private) {
		t.Error("key does not equal itself")
	}
}

func TestPrivateKeyDestroyWipesScalar(t *testing.T) {
	pair, err := GenerateECKeypair("prime256v1")
	if err != nil {
		t.Fatal(err)
	}
	d := pair.Private.ec.D
	pair.Private.Destroy()
	if d.Sign() != 0 {
		t.Error("private scalar not zeroed by Destroy")
	}
}

func TestECPrivateKeyFromScalar(t *testing.T) {
	info, _ := oids.CurveByName("prime256v1")

	key, err := ecPrivateKeyFromScalar(info, big.NewInt(12345))
	if err != nil {
		t.Fatalf("ecPrivateKeyFromScalar error = %v", err)
	}
	if !info.Curve.IsOnCurve(key.ec.X, key.ec.Y) {
		t.Error("derived public point not on curve")
	}

	if _, err := ecPrivateKeyFromScalar(info, big.NewInt(0)); err == nil {
		t.Error("zero scalar accepted")
	}
	if _, err := ecPrivateKeyFromScalar(info, info.Curve.Params().N); err == nil {
		t.Error("scalar equal to group order accepted")
	}
}

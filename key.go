package keycrypt

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"math/big"

	"github.com/vaultsandbox/keycrypt/internal/oids"
	"github.com/vaultsandbox/keycrypt/internal/secwipe"
)

// KeyType identifies the algorithm family of an asymmetric key.
type KeyType int

const (
	// KeyRSA marks an RSA key.
	KeyRSA KeyType = iota + 1
	// KeyEC marks an elliptic-curve key.
	KeyEC
)

func (t KeyType) String() string {
	switch t {
	case KeyRSA:
		return "RSA"
	case KeyEC:
		return "EC"
	}
	return "unknown"
}

// PublicKey is an algorithm-tagged asymmetric public key. Exactly one
// of the variants is populated.
type PublicKey struct {
	rsa *rsa.PublicKey
	ec  *ecdsa.PublicKey
}

// PrivateKey is an algorithm-tagged asymmetric private key. Exactly one
// of the variants is populated. The key owns its secret material until
// Destroy is called.
type PrivateKey struct {
	rsa *rsa.PrivateKey
	ec  *ecdsa.PrivateKey
}

// Keypair bundles a freshly generated public and private key. The two
// halves have independent lifetimes; destroying one does not affect the
// other.
type Keypair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// Destroy releases both halves of the pair.
func (kp *Keypair) Destroy() {
	if kp.Private != nil {
		kp.Private.Destroy()
	}
}

// Type reports the algorithm family of the key.
func (k *PublicKey) Type() KeyType {
	if k.rsa != nil {
		return KeyRSA
	}
	return KeyEC
}

// Type reports the algorithm family of the key.
func (k *PrivateKey) Type() KeyType {
	if k.rsa != nil {
		return KeyRSA
	}
	return KeyEC
}

// Public derives the public counterpart of the private key.
func (k *PrivateKey) Public() *PublicKey {
	switch {
	case k.rsa != nil:
		pub := k.rsa.PublicKey
		return &PublicKey{rsa: &pub}
	default:
		pub := k.ec.PublicKey
		return &PublicKey{ec: &pub}
	}
}

// Equal reports whether both keys hold the same public key.
func (k *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	switch {
	case k.rsa != nil && other.rsa != nil:
		return k.rsa.Equal(other.rsa)
	case k.ec != nil && other.ec != nil:
		return k.ec.Equal(other.ec)
	}
	return false
}

// Equal reports whether both keys hold the same private key.
func (k *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil {
		return false
	}
	switch {
	case k.rsa != nil && other.rsa != nil:
		return k.rsa.Equal(other.rsa)
	case k.ec != nil && other.ec != nil:
		return k.ec.Equal(other.ec)
	}
	return false
}

// Destroy wipes the secret material embedded in the key. Best effort:
// the big integers backing the key are zeroed in place.
func (k *PrivateKey) Destroy() {
	if k.rsa != nil {
		secwipe.WipeBig(k.rsa.D)
		for _, p := range k.rsa.Primes {
			secwipe.WipeBig(p)
		}
		secwipe.WipeBig(k.rsa.Precomputed.Dp)
		secwipe.WipeBig(k.rsa.Precomputed.Dq)
		secwipe.WipeBig(k.rsa.Precomputed.Qinv)
		k.rsa = nil
	}
	if k.ec != nil {
		secwipe.WipeBig(k.ec.D)
		k.ec = nil
	}
}

// GenerateRSAKeypair generates an RSA keypair with the given modulus
// size in bits.
func GenerateRSAKeypair(bits int) (*Keypair, error) {
	priv, err := rsa.GenerateKey(randSource(), bits)
	if err != nil {
		return nil, backendErr("rsa keygen", err)
	}
	key := &PrivateKey{rsa: priv}
	return &Keypair{Public: key.Public(), Private: key}, nil
}

// GenerateECKeypair generates an EC keypair over the named curve. The
// key uses named-curve encoding with compressed points in every
// serialized form, keeping fingerprints deterministic.
func GenerateECKeypair(curve string) (*Keypair, error) {
	info, ok := oids.CurveByName(curve)
	if !ok {
		return nil, &AlgorithmError{Kind: "curve", Name: curve}
	}
	priv, err := ecdsa.GenerateKey(info.Curve, randSource())
	if err != nil {
		return nil, backendErr("ec keygen", err)
	}
	key := &PrivateKey{ec: priv}
	return &Keypair{Public: key.Public(), Private: key}, nil
}

// newECPublicKey wraps a validated curve point as an EC public key.
func newECPublicKey(info oids.CurveInfo, x, y *big.Int) *ecdsa.PublicKey {
	return &ecdsa.PublicKey{Curve: info.Curve, X: x, Y: y}
}

// publicKeyFromAny adapts a parsed stdlib public key to the tagged
// variant, propagating a parse error unchanged in kind.
func publicKeyFromAny(pub any, err error) (*PublicKey, error) {
	if err != nil {
		return nil, backendErr("public key load", err)
	}
	switch k := pub.(type) {
	case *rsa.PublicKey:
		return &PublicKey{rsa: k}, nil
	case *ecdsa.PublicKey:
		return &PublicKey{ec: k}, nil
	}
	return nil, ErrUnsupportedKeyType
}

// ecPrivateKeyFromScalar rebuilds an EC private key from its raw scalar,
// computing the public point and validating the scalar range.
func ecPrivateKeyFromScalar(info oids.CurveInfo, scalar *big.Int) (*PrivateKey, error) {
	params := info.Curve.Params()
	if scalar.Sign() <= 0 || scalar.Cmp(params.N) >= 0 {
		return nil, backendErrf("ec key load", "private scalar out of range")
	}
	x, y := info.Curve.ScalarBaseMult(scalar.Bytes())
	priv := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: info.Curve, X: x, Y: y},
		D:         scalar,
	}
	return &PrivateKey{ec: priv}, nil
}

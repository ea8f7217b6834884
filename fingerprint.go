package keycrypt

import (
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/vaultsandbox/keycrypt/internal/spki"
)

// PublicKeyID computes the key's canonical fingerprint: a digest over
// the DER-encoded public key, with EC points forced to compressed form
// first so the encoding is deterministic. All new key IDs use this
// algorithm, conventionally with sha256.
func PublicKeyID(key *PublicKey, digest string) ([]byte, error) {
	spec, err := lookupDigest(digest)
	if err != nil {
		return nil, err
	}
	der, err := marshalPublicKeyDER(key)
	if err != nil {
		return nil, err
	}
	h := spec.newHash()
	h.Write(der)
	return h.Sum(nil), nil
}

// PublicKeyIDLegacy computes the v1-era fingerprint: SHA-256 over the
// uppercase hex encoding of the compressed public point. It applies to
// EC keys only and is retained solely to validate old records.
func PublicKeyIDLegacy(key *PublicKey) ([]byte, error) {
	if key.Type() != KeyEC {
		return nil, ErrUnsupportedKeyType
	}
	point := elliptic.MarshalCompressed(key.ec.Curve, key.ec.X, key.ec.Y)
	// OpenSSL's point2hex writes uppercase digits; the digest input must
	// match byte for byte.
	hexPoint := strings.ToUpper(hex.EncodeToString(point))
	sum := sha256.Sum256([]byte(hexPoint))
	return sum[:], nil
}

// marshalPublicKeyDER produces the canonical SubjectPublicKeyInfo DER
// used for fingerprints and v2 public-key records.
func marshalPublicKeyDER(key *PublicKey) ([]byte, error) {
	switch key.Type() {
	case KeyRSA:
		der, err := spki.MarshalRSA(key.rsa)
		return der, backendErr("public key encode", err)
	default:
		der, err := spki.MarshalEC(key.ec)
		return der, backendErr("public key encode", err)
	}
}

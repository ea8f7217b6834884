package keycrypt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"

	"github.com/vaultsandbox/keycrypt/internal/secwipe"
	"github.com/vaultsandbox/keycrypt/internal/spki"
)

// DeriveSharedLocal computes an ECDH shared secret as the key holder:
// the peer's public point (compressed or uncompressed encoding) is
// reconstructed on the local key's curve, validated, and multiplied by
// the local private scalar. The secret is the x coordinate at the
// curve's full byte width.
func DeriveSharedLocal(local *PrivateKey, peerPoint []byte) ([]byte, error) {
	if local.Type() != KeyEC {
		return nil, ErrUnsupportedKeyType
	}
	curve := local.ec.Curve
	px, py, err := spki.UnmarshalPoint(curve, peerPoint)
	if err != nil {
		return nil, backendErr("ecdh", err)
	}
	x, _ := curve.ScalarMult(px, py, local.ec.D.Bytes())
	return fieldBytes(curve, x), nil
}

// DeriveSharedPeer computes an ECDH shared secret as the counterparty:
// it generates an ephemeral keypair on the target key's curve, derives
// the secret against the target, and returns the secret together with
// the ephemeral public point in compressed form. The holder of the
// target's private key recovers the same secret with DeriveSharedLocal.
func DeriveSharedPeer(target *PublicKey) (secret, ephemeralPoint []byte, err error) {
	if target.Type() != KeyEC {
		return nil, nil, ErrUnsupportedKeyType
	}
	curve := target.ec.Curve
	eph, err := ecdsa.GenerateKey(curve, randSource())
	if err != nil {
		return nil, nil, backendErr("ecdh keygen", err)
	}
	x, _ := curve.ScalarMult(target.ec.X, target.ec.Y, eph.D.Bytes())
	secret = fieldBytes(curve, x)
	ephemeralPoint = elliptic.MarshalCompressed(curve, eph.X, eph.Y)
	secwipe.WipeBig(eph.D)
	return secret, ephemeralPoint, nil
}

// fieldBytes renders a field element at the curve's full byte width.
func fieldBytes(curve elliptic.Curve, x *big.Int) []byte {
	size := (curve.Params().BitSize + 7) / 8
	return x.FillBytes(make([]byte, size))
}

// Package spki marshals and parses SubjectPublicKeyInfo structures.
// It exists because the key formats require EC public points in
// compressed form, which crypto/x509 neither emits nor accepts; RSA
// keys are delegated to x509 unchanged.
package spki

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"

	"github.com/vaultsandbox/keycrypt/internal/oids"
)

type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"optional"`
}

type subjectPublicKeyInfo struct {
	Algorithm algorithmIdentifier
	PublicKey asn1.BitString
}

var errUnsupported = errors.New("spki: unsupported public key algorithm")

// MarshalRSA returns the PKIX DER encoding of an RSA public key.
func MarshalRSA(pub *rsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pub)
}

// MarshalEC returns the PKIX DER encoding of an EC public key with the
// point in compressed form.
func MarshalEC(pub *ecdsa.PublicKey) ([]byte, error) {
	info, ok := oids.CurveByCurve(pub.Curve)
	if !ok {
		return nil, fmt.Errorf("spki: unsupported curve %s", pub.Curve.Params().Name)
	}
	params, err := asn1.Marshal(info.OID)
	if err != nil {
		return nil, err
	}
	point := elliptic.MarshalCompressed(pub.Curve, pub.X, pub.Y)
	return asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: algorithmIdentifier{
			Algorithm:  oids.ECPublicKey,
			Parameters: asn1.RawValue{FullBytes: params},
		},
		PublicKey: asn1.BitString{Bytes: point, BitLength: len(point) * 8},
	})
}

// Parse decodes a PKIX public key, accepting EC points in either
// compressed or uncompressed form. It returns *rsa.PublicKey or
// *ecdsa.PublicKey.
func Parse(der []byte) (any, error) {
	var info subjectPublicKeyInfo
	rest, err := asn1.Unmarshal(der, &info)
	if err != nil {
		return nil, fmt.Errorf("spki: %w", err)
	}
	if len(rest) != 0 {
		return nil, errors.New("spki: trailing data")
	}

	switch {
	case info.Algorithm.Algorithm.Equal(oids.RSA):
		pub, err := x509.ParsePKIXPublicKey(der)
		if err != nil {
			return nil, fmt.Errorf("spki: %w", err)
		}
		return pub, nil

	case info.Algorithm.Algorithm.Equal(oids.ECPublicKey):
		var curveOID asn1.ObjectIdentifier
		if _, err := asn1.Unmarshal(info.Algorithm.Parameters.FullBytes, &curveOID); err != nil {
			return nil, fmt.Errorf("spki: curve parameters: %w", err)
		}
		cinfo, ok := oids.CurveByOID(curveOID)
		if !ok {
			return nil, fmt.Errorf("spki: unsupported curve %v", curveOID)
		}
		x, y, err := UnmarshalPoint(cinfo.Curve, info.PublicKey.Bytes)
		if err != nil {
			return nil, err
		}
		return &ecdsa.PublicKey{Curve: cinfo.Curve, X: x, Y: y}, nil
	}
	return nil, errUnsupported
}

// UnmarshalPoint decodes an EC point in compressed (0x02/0x03) or
// uncompressed (0x04) form and checks that it lies on the curve.
func UnmarshalPoint(curve elliptic.Curve, data []byte) (x, y *big.Int, err error) {
	if len(data) == 0 {
		return nil, nil, errors.New("spki: empty point")
	}
	switch data[0] {
	case 2, 3:
		x, y = elliptic.UnmarshalCompressed(curve, data)
	case 4:
		x, y = elliptic.Unmarshal(curve, data)
	default:
		return nil, nil, fmt.Errorf("spki: invalid point encoding 0x%02x", data[0])
	}
	if x == nil {
		return nil, nil, errors.New("spki: point not on curve")
	}
	return x, y, nil
}

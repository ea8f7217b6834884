// Package oids maps between the identifiers the key formats use for
// asymmetric algorithms: OpenSSL short names and legacy numeric NIDs
// (v1 records), dotted-decimal ASN.1 object identifiers (v2 records),
// and the matching crypto/elliptic curves.
package oids

import (
	"encoding/asn1"
	"strconv"
	"strings"

	"crypto/elliptic"
)

// Well-known algorithm identifiers.
var (
	// RSA is the rsaEncryption OID.
	RSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}

	// ECPublicKey is the id-ecPublicKey OID used in EC SPKI headers.
	ECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
)

// CurveInfo ties together the representations of a named curve.
type CurveInfo struct {
	// Name is the OpenSSL short name, e.g. "prime256v1".
	Name string
	// NID is the legacy OpenSSL numeric identifier used in v1 records.
	NID int
	// OID identifies the curve in DER structures and v2 records.
	OID asn1.ObjectIdentifier
	// Curve is the corresponding stdlib curve implementation.
	Curve elliptic.Curve
}

var curves = []CurveInfo{
	{Name: "secp224r1", NID: 713, OID: asn1.ObjectIdentifier{1, 3, 132, 0, 33}, Curve: elliptic.P224()},
	{Name: "prime256v1", NID: 415, OID: asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}, Curve: elliptic.P256()},
	{Name: "secp384r1", NID: 715, OID: asn1.ObjectIdentifier{1, 3, 132, 0, 34}, Curve: elliptic.P384()},
	{Name: "secp521r1", NID: 716, OID: asn1.ObjectIdentifier{1, 3, 132, 0, 35}, Curve: elliptic.P521()},
}

// CurveByName looks up a curve by its OpenSSL short name.
func CurveByName(name string) (CurveInfo, bool) {
	for _, c := range curves {
		if c.Name == name {
			return c, true
		}
	}
	return CurveInfo{}, false
}

// CurveByNID looks up a curve by its legacy numeric identifier.
func CurveByNID(nid int) (CurveInfo, bool) {
	for _, c := range curves {
		if c.NID == nid {
			return c, true
		}
	}
	return CurveInfo{}, false
}

// CurveByOID looks up a curve by object identifier.
func CurveByOID(oid asn1.ObjectIdentifier) (CurveInfo, bool) {
	for _, c := range curves {
		if c.OID.Equal(oid) {
			return c, true
		}
	}
	return CurveInfo{}, false
}

// CurveByCurve looks up the info record for a stdlib curve.
func CurveByCurve(curve elliptic.Curve) (CurveInfo, bool) {
	for _, c := range curves {
		if c.Curve == curve {
			return c, true
		}
	}
	return CurveInfo{}, false
}

// Dotted renders an object identifier in dotted-decimal text form,
// the representation v2 records carry in their algorithm field.
func Dotted(oid asn1.ObjectIdentifier) string {
	return oid.String()
}

// ParseDotted parses a dotted-decimal object identifier.
func ParseDotted(s string) (asn1.ObjectIdentifier, bool) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return nil, false
	}
	oid := make(asn1.ObjectIdentifier, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, false
		}
		oid[i] = n
	}
	return oid, true
}

// Name resolves a dotted-decimal identifier to a short name, covering
// the algorithms the key formats can carry.
func Name(dotted string) (string, bool) {
	oid, ok := ParseDotted(dotted)
	if !ok {
		return "", false
	}
	if oid.Equal(RSA) {
		return "rsaEncryption", true
	}
	if c, ok := CurveByOID(oid); ok {
		return c.Name, true
	}
	return "", false
}

// OID resolves a short name to its dotted-decimal identifier.
func OID(name string) (string, bool) {
	if name == "rsaEncryption" || name == "RSA" {
		return Dotted(RSA), true
	}
	if c, ok := CurveByName(name); ok {
		return Dotted(c.OID), true
	}
	return "", false
}

package oids

import (
	"crypto/elliptic"
	"testing"
)

func TestCurveLookups(t *testing.T) {
	info, ok := CurveByName("prime256v1")
	if !ok {
		t.Fatal("prime256v1 not found")
	}
	if info.NID != 415 || info.Curve != elliptic.P256() {
		t.Errorf("prime256v1 info = %+v", info)
	}

	byNID, ok := CurveByNID(715)
	if !ok || byNID.Name != "secp384r1" {
		t.Errorf("CurveByNID(715) = %+v, %v", byNID, ok)
	}

	byOID, ok := CurveByOID(info.OID)
	if !ok || byOID.Name != "prime256v1" {
		t.Errorf("CurveByOID = %+v, %v", byOID, ok)
	}

	byCurve, ok := CurveByCurve(elliptic.P521())
	if !ok || byCurve.NID != 716 {
		t.Errorf("CurveByCurve(P521) = %+v, %v", byCurve, ok)
	}

	if _, ok := CurveByName("brainpoolP256r1"); ok {
		t.Error("unknown curve resolved")
	}
	if _, ok := CurveByNID(1); ok {
		t.Error("unknown nid resolved")
	}
}

func TestDottedConversion(t *testing.T) {
	if got := Dotted(RSA); got != "1.2.840.113549.1.1.1" {
		t.Errorf("Dotted(RSA) = %s", got)
	}
	oid, ok := ParseDotted("1.2.840.10045.3.1.7")
	if !ok {
		t.Fatal("ParseDotted failed")
	}
	if c, ok := CurveByOID(oid); !ok || c.Name != "prime256v1" {
		t.Errorf("parsed oid resolves to %+v, %v", c, ok)
	}

	for _, bad := range []string{"", "1", "1.x.3", "1.-2.3"} {
		if _, ok := ParseDotted(bad); ok {
			t.Errorf("ParseDotted(%q) succeeded", bad)
		}
	}
}

func TestNameMapping(t *testing.T) {
	if name, ok := Name("1.2.840.113549.1.1.1"); !ok || name != "rsaEncryption" {
		t.Errorf("Name(rsa oid) = %s, %v", name, ok)
	}
	if name, ok := Name("1.3.132.0.34"); !ok || name != "secp384r1" {
		t.Errorf("Name(secp384r1 oid) = %s, %v", name, ok)
	}
	if _, ok := Name("1.2.3.4"); ok {
		t.Error("unknown oid resolved to a name")
	}

	if oid, ok := OID("prime256v1"); !ok || oid != "1.2.840.10045.3.1.7" {
		t.Errorf("OID(prime256v1) = %s, %v", oid, ok)
	}
	if oid, ok := OID("rsaEncryption"); !ok || oid != "1.2.840.113549.1.1.1" {
		t.Errorf("OID(rsaEncryption) = %s, %v", oid, ok)
	}
	if _, ok := OID("ed25519"); ok {
		t.Error("unknown name resolved to an oid")
	}
}

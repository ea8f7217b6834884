package keycrypt

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/vaultsandbox/keycrypt/internal/mpi"
	"github.com/vaultsandbox/keycrypt/internal/oids"
	"github.com/vaultsandbox/keycrypt/internal/secwipe"
	"github.com/vaultsandbox/keycrypt/internal/spki"
)

// LoadPrivateKey decodes a private key from the given format. password
// is consulted for password-protected records and encrypted PEM blocks;
// decKey is the private key used to unwrap records protected under a
// public key.
//
// Decoding always recomputes the key's fingerprint and compares it to
// the ID embedded in the record; on mismatch the decoded key is wiped
// and ErrKeyIDMismatch returned.
func LoadPrivateKey(format KeyFormat, data, password string, decKey *PrivateKey) (*PrivateKey, error) {
	if format == FormatPEM {
		return loadPrivateKeyPEM(data, password)
	}
	fields := strings.Split(data, "\t")
	if len(fields) < 4 {
		return nil, corruptErr("too few fields")
	}
	switch fields[0] {
	case "1":
		return loadPrivateKeyV1(fields, password, decKey)
	case "2":
		return loadPrivateKeyV2(fields, password, decKey)
	}
	return nil, corruptErr("unsupported key version")
}

// LoadPublicKey decodes a public key from the given format.
func LoadPublicKey(format KeyFormat, data string) (*PublicKey, error) {
	if format == FormatPEM {
		return loadPublicKeyPEM(data)
	}
	fields := strings.Split(data, "\t")
	if len(fields) < 2 {
		return nil, corruptErr("too few fields")
	}
	switch fields[0] {
	case "1":
		return loadPublicKeyV1(fields)
	case "2":
		return loadPublicKeyV2(fields)
	}
	return nil, corruptErr("unsupported key version")
}

// hexField decodes one hex-encoded record field.
func hexField(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, corruptErr("bad hex field")
	}
	return b, nil
}

// uintField parses one decimal record field.
func uintField(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, corruptErr("non-numeric field")
	}
	return uint(n), nil
}

func parseEncryptionType(s string) (EncryptionType, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 2 {
		return 0, corruptErr("invalid encryption type")
	}
	return EncryptionType(n), nil
}

// loadPublicKeyV1 parses `1 <nid> <hex point>`.
func loadPublicKeyV1(fields []string) (*PublicKey, error) {
	if len(fields) != v1PublicFields {
		return nil, corruptErr("wrong field count for v1 public key")
	}
	nid, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, corruptErr("non-numeric curve id")
	}
	info, ok := oids.CurveByNID(nid)
	if !ok {
		return nil, &AlgorithmError{Kind: "curve", Name: fields[1]}
	}
	point, err := hexField(fields[2])
	if err != nil {
		return nil, err
	}
	x, y, err := spki.UnmarshalPoint(info.Curve, point)
	if err != nil {
		return nil, backendErr("public key load", err)
	}
	return &PublicKey{ec: newECPublicKey(info, x, y)}, nil
}

// loadPublicKeyV2 parses `2 <hex DER SPKI>`.
func loadPublicKeyV2(fields []string) (*PublicKey, error) {
	if len(fields) != v2PublicFields || len(fields[1]) < 2 {
		return nil, corruptErr("wrong field count for v2 public key")
	}
	der, err := hexField(fields[1])
	if err != nil {
		return nil, err
	}
	return publicKeyFromAny(spki.Parse(der))
}

func loadPrivateKeyV1(fields []string, password string, decKey *PrivateKey) (*PrivateKey, error) {
	nid, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, corruptErr("non-numeric curve id")
	}
	enctype, err := parseEncryptionType(fields[2])
	if err != nil {
		return nil, err
	}

	switch {
	case enctype == EncryptionNone && len(fields) != v1PrivateNoneFields,
		enctype == EncryptionPassword && len(fields) != v1PrivatePasswordFields,
		enctype == EncryptionPublicKey && len(fields) != v1PrivatePKFields:
		return nil, corruptErr("wrong field count for v1 private key")
	}

	info, ok := oids.CurveByNID(nid)
	if !ok {
		return nil, &AlgorithmError{Kind: "curve", Name: fields[1]}
	}

	var scalar *big.Int
	switch enctype {
	case EncryptionNone:
		s, ok := new(big.Int).SetString(fields[3], 16)
		if !ok {
			return nil, corruptErr("bad hex field")
		}
		scalar = s

	case EncryptionPassword:
		scalar, err = decryptScalarPasswordV1(fields[3], password, fields[4])
		if err != nil {
			return nil, err
		}

	case EncryptionPublicKey:
		scalar, err = decryptScalarECDHV1(fields[3], fields[4], decKey)
		if err != nil {
			return nil, err
		}
	}

	key, err := ecPrivateKeyFromScalar(info, scalar)
	if err != nil {
		secwipe.WipeBig(scalar)
		return nil, err
	}

	id, err := PublicKeyIDLegacy(key.Public())
	if err != nil {
		key.Destroy()
		return nil, err
	}
	if hex.EncodeToString(id) != fields[len(fields)-1] {
		key.Destroy()
		return nil, ErrKeyIDMismatch
	}
	return key, nil
}

// decryptScalarV1 deciphers the private scalar of an encrypted v1
// record: AES-256-CTR under the supplied key with the format's fixed
// all-zero IV.
func decryptScalarV1(data, key []byte) (*big.Int, error) {
	ctx, err := NewSymCipherContext(legacyCipher, ModeDecrypt)
	if err != nil {
		return nil, err
	}
	defer ctx.Destroy()
	ctx.SetIV(make([]byte, ctx.IVLength()))
	ctx.SetKey(key)
	if err := ctx.Init(); err != nil {
		return nil, err
	}
	out, err := ctx.Update(data)
	if err != nil {
		return nil, err
	}
	tail, err := ctx.Final()
	if err != nil {
		secwipe.Wipe(out)
		return nil, err
	}
	out = append(out, tail...)
	scalar := new(big.Int).SetBytes(out)
	secwipe.WipeAll(out, tail)
	return scalar, nil
}

func decryptScalarPasswordV1(dataHex, password, saltHex string) (*big.Int, error) {
	data, err := hexField(dataHex)
	if err != nil {
		return nil, err
	}
	salt, err := hexField(saltHex)
	if err != nil {
		return nil, err
	}
	// v1 records expect the password itself hex-encoded.
	pw, err := hexField(password)
	if err != nil {
		return nil, err
	}
	key, err := DeriveKey(pw, salt, legacyKDFDigest, legacyKDFRounds, legacyKeySize)
	secwipe.Wipe(pw)
	if err != nil {
		return nil, err
	}
	scalar, err := decryptScalarV1(data, key)
	secwipe.Wipe(key)
	return scalar, err
}

func decryptScalarECDHV1(dataHex, peerHex string, decKey *PrivateKey) (*big.Int, error) {
	if decKey == nil {
		return nil, ErrNoMatchingKey
	}
	data, err := hexField(dataHex)
	if err != nil {
		return nil, err
	}
	peer, err := hexField(peerHex)
	if err != nil {
		return nil, err
	}
	secret, err := DeriveSharedLocal(decKey, peer)
	if err != nil {
		return nil, err
	}
	// The v1 scheme runs the shared secret through SHA-256 once and uses
	// the digest directly as the cipher key.
	key := sha256.Sum256(secret)
	secwipe.Wipe(secret)
	scalar, err := decryptScalarV1(data, key[:])
	secwipe.Wipe(key[:])
	return scalar, err
}

func loadPrivateKeyV2(fields []string, password string, decKey *PrivateKey) (*PrivateKey, error) {
	enctype, err := parseEncryptionType(fields[2])
	if err != nil {
		return nil, err
	}
	switch {
	case enctype == EncryptionNone && len(fields) != v2PrivateNoneFields,
		enctype == EncryptionPassword && len(fields) != v2PrivatePasswordFields,
		enctype == EncryptionPublicKey && len(fields) != v2PrivatePKFields:
		return nil, corruptErr("wrong field count for v2 private key")
	}

	oid, ok := oids.ParseDotted(fields[1])
	if !ok {
		return nil, corruptErr("invalid algorithm identifier")
	}
	isRSA := oid.Equal(oids.RSA)
	var curve oids.CurveInfo
	if !isRSA {
		if curve, ok = oids.CurveByOID(oid); !ok {
			return nil, &AlgorithmError{Kind: "key algorithm", Name: fields[1]}
		}
	}

	var keyData []byte
	switch enctype {
	case EncryptionNone:
		if keyData, err = hexField(fields[3]); err != nil {
			return nil, err
		}

	case EncryptionPassword:
		rounds, err := uintField(fields[6])
		if err != nil {
			return nil, err
		}
		salt, err := hexField(fields[4])
		if err != nil {
			return nil, err
		}
		data, err := hexField(fields[7])
		if err != nil {
			return nil, err
		}
		keyData, err = cipherKeyV2(fields[3], ModeDecrypt, data, []byte(password), salt, fields[5], rounds)
		if err != nil {
			return nil, err
		}

	case EncryptionPublicKey:
		keyData, err = unwrapKeyDataV2(fields, decKey)
		if err != nil {
			return nil, err
		}
	}

	key, err := privateKeyFromRaw(isRSA, curve, keyData)
	secwipe.Wipe(keyData)
	if err != nil {
		return nil, err
	}

	id, err := PublicKeyID(key.Public(), "sha256")
	if err != nil {
		key.Destroy()
		return nil, err
	}
	if hex.EncodeToString(id) != fields[len(fields)-1] {
		key.Destroy()
		return nil, ErrKeyIDMismatch
	}
	return key, nil
}

// unwrapKeyDataV2 recovers the raw key bytes of a public-key-protected
// v2 record. The supplied private key must match the record's embedded
// encryption key ID.
func unwrapKeyDataV2(fields []string, decKey *PrivateKey) ([]byte, error) {
	if decKey == nil {
		return nil, ErrNoMatchingKey
	}
	rounds, err := uintField(fields[6])
	if err != nil {
		return nil, err
	}

	encID, err := PublicKeyID(decKey.Public(), "sha256")
	if err != nil {
		return nil, err
	}
	if hex.EncodeToString(encID) != fields[9] {
		return nil, ErrNoMatchingKey
	}

	salt, err := hexField(fields[4])
	if err != nil {
		return nil, err
	}
	data, err := hexField(fields[7])
	if err != nil {
		return nil, err
	}
	peer, err := hexField(fields[8])
	if err != nil {
		return nil, err
	}

	var secret []byte
	if decKey.Type() == KeyRSA {
		secret, err = DecryptOAEP(decKey, peer)
	} else {
		secret, err = DeriveSharedLocal(decKey, peer)
	}
	if err != nil {
		return nil, err
	}
	keyData, err := cipherKeyV2(fields[3], ModeDecrypt, data, secret, salt, fields[5], rounds)
	secwipe.Wipe(secret)
	return keyData, err
}

// privateKeyFromRaw decodes the raw v2 key bytes: PKCS#1 DER for RSA,
// an MPI-encoded scalar for EC.
func privateKeyFromRaw(isRSA bool, curve oids.CurveInfo, keyData []byte) (*PrivateKey, error) {
	if isRSA {
		priv, err := x509.ParsePKCS1PrivateKey(keyData)
		if err != nil {
			return nil, backendErr("rsa key load", err)
		}
		if err := priv.Validate(); err != nil {
			return nil, backendErr("rsa key load", err)
		}
		return &PrivateKey{rsa: priv}, nil
	}
	scalar, err := mpi.Decode(keyData)
	if err != nil {
		return nil, backendErr("ec key load", err)
	}
	return ecPrivateKeyFromScalar(curve, scalar)
}

// cipherKeyV2 derives key+IV from secret and salt with PBKDF2 and runs
// input through the named cipher. Both directions of the v2 key
// protection use it.
func cipherKeyV2(cipherName string, mode CipherMode, input, secret, salt []byte, digest string, rounds uint) ([]byte, error) {
	ctx, err := NewSymCipherContext(cipherName, mode)
	if err != nil {
		return nil, err
	}
	defer ctx.Destroy()

	kd, err := DeriveKey(secret, salt, digest, rounds, ctx.KeyLength()+ctx.IVLength())
	if err != nil {
		return nil, err
	}
	ctx.SetKey(kd[:ctx.KeyLength()])
	ctx.SetIV(kd[ctx.KeyLength():])
	secwipe.Wipe(kd)

	if err := ctx.Init(); err != nil {
		return nil, err
	}
	out, err := ctx.Update(input)
	if err != nil {
		return nil, err
	}
	tail, err := ctx.Final()
	if err != nil {
		secwipe.Wipe(out)
		return nil, err
	}
	return append(out, tail...), nil
}

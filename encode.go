package keycrypt

import (
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/vaultsandbox/keycrypt/internal/mpi"
	"github.com/vaultsandbox/keycrypt/internal/oids"
	"github.com/vaultsandbox/keycrypt/internal/secwipe"
)

// StorePrivateKey encodes a private key in the given format. New
// Dovecot-format records are always written as version 2.
//
// The cipher argument selects the protection mode: empty leaves the key
// unprotected; a plain cipher name ("aes-256-ctr") with a password
// selects password protection; a cipher name prefixed "ecdh-" with an
// encryption public key protects the key under that key (ECDH for EC
// recipients, an RSA-OAEP-wrapped random secret otherwise).
func StorePrivateKey(key *PrivateKey, format KeyFormat, cipherName, password string, encKey *PublicKey) (string, error) {
	if format == FormatPEM {
		return storePrivateKeyPEM(key, cipherName, password)
	}
	return storePrivateKeyV2(key, cipherName, password, encKey)
}

// StorePublicKey encodes a public key in the given format.
func StorePublicKey(key *PublicKey, format KeyFormat) (string, error) {
	if format == FormatPEM {
		return storePublicKeyPEM(key)
	}
	der, err := marshalPublicKeyDER(key)
	if err != nil {
		return "", err
	}
	return "2\t" + hex.EncodeToString(der), nil
}

func storePrivateKeyV2(key *PrivateKey, cipherName, password string, encKey *PublicKey) (string, error) {
	oid, err := privateKeyOID(key)
	if err != nil {
		return "", err
	}
	raw, err := privateKeyRaw(key)
	if err != nil {
		return "", err
	}
	defer secwipe.Wipe(raw)

	enctype := EncryptionNone
	cipher2 := strings.ToLower(cipherName)
	switch {
	case strings.HasPrefix(cipher2, "ecdh-"):
		if encKey == nil {
			return "", fmt.Errorf("encryption key required for cipher %s", cipherName)
		}
		enctype = EncryptionPublicKey
		cipher2 = cipher2[len("ecdh-"):]
	case cipher2 != "":
		if password == "" {
			return "", fmt.Errorf("password required for cipher %s", cipherName)
		}
		enctype = EncryptionPassword
	}

	var b strings.Builder
	fmt.Fprintf(&b, "2\t%s\t%d\t", oid, enctype)

	if enctype == EncryptionNone {
		b.WriteString(hex.EncodeToString(raw))
	} else if err := encryptPrivateKeyV2(&b, raw, enctype, cipher2, password, encKey); err != nil {
		return "", err
	}

	id, err := PublicKeyID(key.Public(), "sha256")
	if err != nil {
		return "", err
	}
	b.WriteString("\t")
	b.WriteString(hex.EncodeToString(id))
	return b.String(), nil
}

// encryptPrivateKeyV2 writes the encrypted-key fields: cipher, salt,
// KDF digest, round count, ciphertext and, for public-key protection,
// the ephemeral point or wrapped secret plus the encryption key's ID.
func encryptPrivateKeyV2(b *strings.Builder, raw []byte, enctype EncryptionType, cipherName, password string, encKey *PublicKey) error {
	salt, err := randBytes(saltSize)
	if err != nil {
		return err
	}

	var secret, peer []byte
	switch enctype {
	case EncryptionPublicKey:
		if encKey.Type() == KeyRSA {
			// No key agreement with RSA targets: wrap a fresh random
			// secret under the recipient key instead.
			if secret, err = randBytes(rsaSecretSize); err != nil {
				return err
			}
			if peer, err = EncryptOAEP(encKey, secret); err != nil {
				secwipe.Wipe(secret)
				return err
			}
		} else {
			if secret, peer, err = DeriveSharedPeer(encKey); err != nil {
				return err
			}
		}
	case EncryptionPassword:
		secret = []byte(password)
	}

	ct, err := cipherKeyV2(cipherName, ModeEncrypt, raw, secret, salt, KDFDigest, KDFRounds)
	if enctype != EncryptionPassword {
		secwipe.Wipe(secret)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "%s\t%s\t%s\t%d\t%s", cipherName, hex.EncodeToString(salt), KDFDigest, KDFRounds, hex.EncodeToString(ct))

	if enctype == EncryptionPublicKey {
		encID, err := PublicKeyID(encKey, "sha256")
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\t%s\t%s", hex.EncodeToString(peer), hex.EncodeToString(encID))
	}
	return nil
}

// privateKeyOID returns the dotted-decimal algorithm identifier written
// into a v2 record: the curve OID for EC keys, rsaEncryption for RSA.
func privateKeyOID(key *PrivateKey) (string, error) {
	switch key.Type() {
	case KeyRSA:
		return oids.Dotted(oids.RSA), nil
	default:
		info, ok := oids.CurveByCurve(key.ec.Curve)
		if !ok {
			return "", &AlgorithmError{Kind: "curve", Name: key.ec.Curve.Params().Name}
		}
		return oids.Dotted(info.OID), nil
	}
}

// privateKeyRaw serializes the key material in its precise v2 binary
// form: PKCS#1 DER for RSA, the MPI-encoded scalar for EC.
func privateKeyRaw(key *PrivateKey) ([]byte, error) {
	switch key.Type() {
	case KeyRSA:
		return x509.MarshalPKCS1PrivateKey(key.rsa), nil
	default:
		return mpi.Encode(key.ec.D), nil
	}
}

package keycrypt

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"

	"github.com/vaultsandbox/keycrypt/internal/secwipe"
	"github.com/vaultsandbox/keycrypt/internal/spki"
)

const (
	pemTypePublic     = "PUBLIC KEY"
	pemTypePrivate    = "PRIVATE KEY"
	pemTypeRSAPrivate = "RSA PRIVATE KEY"
	pemTypeECPrivate  = "EC PRIVATE KEY"
)

// pemCiphers maps cipher names to the PEM encryption algorithms the
// x509 package supports.
var pemCiphers = map[string]x509.PEMCipher{
	"des-cbc":      x509.PEMCipherDES,
	"des-ede3-cbc": x509.PEMCipher3DES,
	"aes-128-cbc":  x509.PEMCipherAES128,
	"aes-192-cbc":  x509.PEMCipherAES192,
	"aes-256-cbc":  x509.PEMCipherAES256,
}

func loadPrivateKeyPEM(data, password string) (*PrivateKey, error) {
	block, _ := pem.Decode([]byte(data))
	if block == nil {
		return nil, corruptErr("missing PEM header")
	}

	der := block.Bytes
	//lint:ignore SA1019 legacy PEM encryption is part of the accepted format
	if x509.IsEncryptedPEMBlock(block) {
		var err error
		//lint:ignore SA1019 see above
		der, err = x509.DecryptPEMBlock(block, []byte(password))
		if err != nil {
			return nil, backendErr("pem decrypt", err)
		}
		defer secwipe.Wipe(der)
	}

	switch block.Type {
	case pemTypeRSAPrivate:
		priv, err := x509.ParsePKCS1PrivateKey(der)
		if err != nil {
			return nil, backendErr("pem key load", err)
		}
		return &PrivateKey{rsa: priv}, nil
	case pemTypeECPrivate:
		priv, err := x509.ParseECPrivateKey(der)
		if err != nil {
			return nil, backendErr("pem key load", err)
		}
		return &PrivateKey{ec: priv}, nil
	case pemTypePrivate:
		key, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, backendErr("pem key load", err)
		}
		switch k := key.(type) {
		case *rsa.PrivateKey:
			return &PrivateKey{rsa: k}, nil
		case *ecdsa.PrivateKey:
			return &PrivateKey{ec: k}, nil
		}
		return nil, ErrUnsupportedKeyType
	}
	return nil, corruptErr("unknown PEM block type " + block.Type)
}

func loadPublicKeyPEM(data string) (*PublicKey, error) {
	block, _ := pem.Decode([]byte(data))
	if block == nil {
		return nil, corruptErr("missing PEM header")
	}
	if block.Type != pemTypePublic {
		return nil, corruptErr("unknown PEM block type " + block.Type)
	}
	// spki.Parse accepts both compressed and uncompressed EC points, so
	// PEM blobs from other tools load as well as our own.
	return publicKeyFromAny(spki.Parse(block.Bytes))
}

func storePrivateKeyPEM(key *PrivateKey, cipherName, password string) (string, error) {
	var blockType string
	var der []byte
	switch key.Type() {
	case KeyRSA:
		blockType = pemTypeRSAPrivate
		der = x509.MarshalPKCS1PrivateKey(key.rsa)
	default:
		blockType = pemTypeECPrivate
		var err error
		if der, err = x509.MarshalECPrivateKey(key.ec); err != nil {
			return "", backendErr("pem key encode", err)
		}
	}
	defer secwipe.Wipe(der)

	var block *pem.Block
	if cipherName != "" {
		alg, ok := pemCiphers[strings.ToLower(cipherName)]
		if !ok {
			return "", &AlgorithmError{Kind: "cipher", Name: cipherName}
		}
		var err error
		//lint:ignore SA1019 legacy PEM encryption is part of the accepted format
		block, err = x509.EncryptPEMBlock(randSource(), blockType, der, []byte(password), alg)
		if err != nil {
			return "", backendErr("pem encrypt", err)
		}
	} else {
		block = &pem.Block{Type: blockType, Bytes: der}
	}
	return string(pem.EncodeToMemory(block)), nil
}

// storePublicKeyPEM writes the SPKI form; EC points are compressed in
// the DER, which the stock x509 encoder would not produce.
func storePublicKeyPEM(key *PublicKey) (string, error) {
	der, err := marshalPublicKeyDER(key)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: pemTypePublic, Bytes: der})), nil
}

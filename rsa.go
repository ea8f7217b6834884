package keycrypt

import (
	"crypto/rsa"
	"crypto/sha1"
)

// EncryptOAEP encrypts a short secret under an RSA public key with
// OAEP padding. The payload must fit the key's OAEP limit. SHA-1 is the
// OAEP digest for wire compatibility with records written by OpenSSL's
// default parameters.
func EncryptOAEP(key *PublicKey, data []byte) ([]byte, error) {
	if key.Type() != KeyRSA {
		return nil, ErrUnsupportedKeyType
	}
	out, err := rsa.EncryptOAEP(sha1.New(), randSource(), key.rsa, data, nil)
	if err != nil {
		return nil, backendErr("rsa encrypt", err)
	}
	return out, nil
}

// DecryptOAEP decrypts an OAEP-padded RSA ciphertext.
func DecryptOAEP(key *PrivateKey, data []byte) ([]byte, error) {
	if key.Type() != KeyRSA {
		return nil, ErrUnsupportedKeyType
	}
	out, err := rsa.DecryptOAEP(sha1.New(), nil, key.rsa, data, nil)
	if err != nil {
		return nil, backendErr("rsa decrypt", err)
	}
	return out, nil
}

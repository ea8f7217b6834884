package keycrypt

import (
	"golang.org/x/crypto/pbkdf2"
)

// DeriveKey derives length bytes of key material from a password or
// shared secret with PBKDF2 over the named digest. The same inputs
// always produce the same output.
//
// The codec uses this to turn a record's secret plus salt into a
// symmetric key and IV: the first KeyLength bytes are the key, the
// remainder the IV.
func DeriveKey(secret, salt []byte, digest string, rounds uint, length int) ([]byte, error) {
	if rounds == 0 {
		return nil, backendErrf("pbkdf2", "round count must be positive")
	}
	if length <= 0 {
		return nil, backendErrf("pbkdf2", "output length must be positive")
	}
	spec, err := lookupDigest(digest)
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key(secret, salt, int(rounds), length, spec.newHash), nil
}

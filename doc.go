// Package keycrypt implements the key management primitives used by
// mail-store encryption: asymmetric keypairs (RSA and NIST-curve EC),
// the versioned tab-delimited text key format with three protection
// modes (plain, password, recipient public key), PEM interchange,
// public-key fingerprints, and the symmetric cipher, HMAC and PBKDF2
// contexts the surrounding encryption streams are built on.
//
// Basic usage:
//
//	pair, err := keycrypt.GenerateECKeypair("prime256v1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pair.Destroy()
//
//	// Store the private key protected by a password.
//	blob, err := keycrypt.StorePrivateKey(pair.Private, keycrypt.FormatDovecot,
//	    "aes-256-ctr", "secret", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back.
//	key, err := keycrypt.LoadPrivateKey(keycrypt.FormatDovecot, blob, "secret", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer key.Destroy()
//
// Key material passed to Destroy is zeroed on a best-effort basis.
package keycrypt

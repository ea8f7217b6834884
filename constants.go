package keycrypt

const (
	// KDFDigest is the PBKDF2 digest used when encrypting private keys.
	KDFDigest = "sha256"
	// KDFRounds is the PBKDF2 round count used when encrypting private keys.
	KDFRounds = 2048

	// saltSize is the random salt length for encrypted private-key records.
	saltSize = 8

	// rsaSecretSize is the length of the random secret wrapped with
	// RSA-OAEP when the encryption target is an RSA key.
	rsaSecretSize = 16

	// aeadTagSize is the authentication tag length all supported AEAD
	// ciphers produce.
	aeadTagSize = 16

	// maxHMACKeySize caps HMAC keys at the largest digest block size
	// (SHA-384/SHA-512 use 128-byte blocks).
	maxHMACKeySize = 128

	// legacyKDFDigest and legacyKDFRounds are the fixed PBKDF2 parameters
	// of password-protected v1 records. Compatibility only.
	legacyKDFDigest = "sha1"
	legacyKDFRounds = 16
	legacyKeySize   = 32

	// legacyCipher is the cipher all encrypted v1 records use, with an
	// all-zero IV. The IV reuse is tolerable only because each record
	// encrypts under a single-use derived key; this path is never taken
	// for new data.
	legacyCipher = "aes-256-ctr"
)

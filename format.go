package keycrypt

// KeyFormat selects the serialization of a key blob.
type KeyFormat int

const (
	// FormatPEM is the RFC 7468-style PEM encoding.
	FormatPEM KeyFormat = iota
	// FormatDovecot is the versioned tab-delimited text encoding.
	FormatDovecot
)

// KeyVersion is the version tag of a Dovecot-format record. PEM keys
// carry no version.
type KeyVersion int

const (
	// VersionNA marks formats without custom versioning (PEM).
	VersionNA KeyVersion = iota
	// Version1 is the legacy EC-only text format.
	Version1
	// Version2 is the current text format.
	Version2
)

// KeyKind distinguishes public from private key records.
type KeyKind int

const (
	// KindPublic marks a public key record.
	KindPublic KeyKind = iota
	// KindPrivate marks a private key record.
	KindPrivate
)

// EncryptionType describes how a private-key record is protected. The
// constants carry the wire values of the record's encryption field.
type EncryptionType int

const (
	// EncryptionNone leaves the key material unprotected.
	EncryptionNone EncryptionType = 0
	// EncryptionPublicKey protects the key under a recipient public key
	// (ECDH for EC recipients, RSA-OAEP wrapped secret otherwise).
	EncryptionPublicKey EncryptionType = 1
	// EncryptionPassword protects the key under a password.
	EncryptionPassword EncryptionType = 2
)

func (t EncryptionType) String() string {
	switch t {
	case EncryptionNone:
		return "none"
	case EncryptionPublicKey:
		return "public key"
	case EncryptionPassword:
		return "password"
	}
	return "unknown"
}

// Field counts of the tab-delimited records, by version, kind and
// encryption type. A record whose field count does not match its
// declared layout is rejected before any cryptography runs.
const (
	v1PublicFields          = 3
	v1PrivateNoneFields     = 5
	v1PrivatePasswordFields = 6
	v1PrivatePKFields       = 7

	v2PublicFields          = 2
	v2PrivateNoneFields     = 5
	v2PrivatePasswordFields = 9
	v2PrivatePKFields       = 11
)

package keycrypt

import (
	"strings"
)

// KeyInfo describes a serialized key without loading it. Only the
// fields applicable to the detected format are set: PEM blobs carry no
// version or key IDs, public records carry no encryption type.
type KeyInfo struct {
	Format          KeyFormat
	Version         KeyVersion
	Kind            KeyKind
	EncryptionType  EncryptionType
	KeyID           string
	EncryptionKeyID string
}

// KeyStringInfo inspects a serialized key and reports its format,
// version, kind and protection without performing any cryptography.
// Key IDs are reported as the hex strings embedded in the record.
func KeyStringInfo(data string) (*KeyInfo, error) {
	if strings.Contains(data, "-----BEGIN ") {
		return pemInfo(data), nil
	}
	fields := strings.Split(strings.TrimSuffix(data, "\n"), "\t")
	switch fields[0] {
	case "1":
		return recordInfoV1(fields)
	case "2":
		return recordInfoV2(fields)
	}
	return nil, corruptErr("unknown key format")
}

func pemInfo(data string) *KeyInfo {
	info := &KeyInfo{Format: FormatPEM, Version: VersionNA, Kind: KindPublic}
	if strings.Contains(data, "PRIVATE KEY-----") {
		info.Kind = KindPrivate
	}
	if strings.Contains(data, "ENCRYPTED") {
		info.EncryptionType = EncryptionPassword
	}
	return info
}

func recordInfoV1(fields []string) (*KeyInfo, error) {
	info := &KeyInfo{Format: FormatDovecot, Version: Version1}
	if len(fields) == v1PublicFields {
		info.Kind = KindPublic
		return info, nil
	}
	if len(fields) < v1PrivateNoneFields {
		return nil, corruptErr("wrong number of fields")
	}
	info.Kind = KindPrivate
	enc, err := parseEncryptionType(fields[2])
	if err != nil {
		return nil, err
	}
	var want int
	switch enc {
	case EncryptionNone:
		want = v1PrivateNoneFields
	case EncryptionPassword:
		want = v1PrivatePasswordFields
	case EncryptionPublicKey:
		want = v1PrivatePKFields
	}
	if len(fields) != want {
		return nil, corruptErr("wrong number of fields")
	}
	fillPrivateInfo(info, enc, fields)
	return info, nil
}

func recordInfoV2(fields []string) (*KeyInfo, error) {
	info := &KeyInfo{Format: FormatDovecot, Version: Version2}
	if len(fields) == v2PublicFields {
		info.Kind = KindPublic
		return info, nil
	}
	if len(fields) < v2PrivateNoneFields {
		return nil, corruptErr("wrong number of fields")
	}
	info.Kind = KindPrivate
	enc, err := parseEncryptionType(fields[2])
	if err != nil {
		return nil, err
	}
	var want int
	switch enc {
	case EncryptionNone:
		want = v2PrivateNoneFields
	case EncryptionPassword:
		want = v2PrivatePasswordFields
	case EncryptionPublicKey:
		want = v2PrivatePKFields
	}
	if len(fields) != want {
		return nil, corruptErr("wrong number of fields")
	}
	fillPrivateInfo(info, enc, fields)
	return info, nil
}

func fillPrivateInfo(info *KeyInfo, enc EncryptionType, fields []string) {
	info.EncryptionType = enc
	info.KeyID = fields[len(fields)-1]
	if enc == EncryptionPublicKey {
		info.EncryptionKeyID = fields[len(fields)-2]
	}
}

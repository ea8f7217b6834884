package keycrypt

// LookupResult tells a caller how a private-key lookup ended.
type LookupResult int

const (
	// LookupError means the lookup itself failed and a separate error
	// value describes why.
	LookupError LookupResult = iota - 1
	// LookupNotFound means no key matching the requested ID is known.
	LookupNotFound
	// LookupFound means the key was located.
	LookupFound
)

// PrivateKeyResolver locates the private key matching a public-key
// digest found in an encrypted payload. Implementations return
// LookupFound with the key, LookupNotFound with a nil key when the ID
// is unknown, or LookupError and a non-nil error when the lookup
// itself failed. The returned key stays owned by the resolver; callers
// must not Destroy it.
type PrivateKeyResolver func(keyID string) (LookupResult, *PrivateKey, error)

// ResolvePrivateKey runs a resolver and folds its three-way result
// into the package error taxonomy: LookupNotFound becomes
// ErrNoMatchingKey and LookupError surfaces the resolver's error.
func ResolvePrivateKey(resolve PrivateKeyResolver, keyID string) (*PrivateKey, error) {
	result, key, err := resolve(keyID)
	switch result {
	case LookupFound:
		return key, nil
	case LookupNotFound:
		return nil, ErrNoMatchingKey
	}
	if err == nil {
		err = ErrNoMatchingKey
	}
	return nil, backendErr("key lookup", err)
}

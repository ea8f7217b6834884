package keycrypt

import (
	"errors"
	"testing"
)

func TestResolvePrivateKey(t *testing.T) {
	pair := mustECPair(t, "prime256v1")
	defer pair.Destroy()

	found := func(keyID string) (LookupResult, *PrivateKey, error) {
		if keyID != "abc123" {
			t.Errorf("resolver called with keyID %q", keyID)
		}
		return LookupFound, pair.Private, nil
	}
	key, err := ResolvePrivateKey(found, "abc123")
	if err != nil {
		t.Fatalf("ResolvePrivateKey error = %v", err)
	}
	if key != pair.Private {
		t.Error("resolved key is not the resolver's key")
	}

	notFound := func(string) (LookupResult, *PrivateKey, error) {
		return LookupNotFound, nil, nil
	}
	if _, err := ResolvePrivateKey(notFound, "abc123"); !errors.Is(err, ErrNoMatchingKey) {
		t.Fatalf("not-found error = %v, want ErrNoMatchingKey", err)
	}

	boom := errors.New("storage offline")
	failed := func(string) (LookupResult, *PrivateKey, error) {
		return LookupError, nil, boom
	}
	_, err = ResolvePrivateKey(failed, "abc123")
	if !errors.Is(err, ErrBackendFailure) || !errors.Is(err, boom) {
		t.Fatalf("lookup failure error = %v, want wrapped storage error", err)
	}
}

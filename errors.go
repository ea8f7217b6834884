package keycrypt

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrUnknownAlgorithm is returned for an unrecognized cipher, digest
	// or curve name.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrCorruptData is returned when key data is malformed: wrong field
	// count, non-numeric field, or bad hex.
	ErrCorruptData = errors.New("corrupted data")

	// ErrBackendFailure is returned when an underlying cryptographic
	// primitive reports an error.
	ErrBackendFailure = errors.New("cryptographic backend failure")

	// ErrAuthenticationFailed is returned when AEAD tag verification
	// fails during decryption.
	ErrAuthenticationFailed = errors.New("data authentication failed")

	// ErrKeyIDMismatch is returned when the fingerprint recomputed from a
	// decoded key does not match the key ID embedded in the record. The
	// decoded key is wiped and never returned.
	ErrKeyIDMismatch = errors.New("key id mismatch after load")

	// ErrNoMatchingKey is returned when the supplied decryption key's
	// fingerprint does not match the record's encryption key ID.
	ErrNoMatchingKey = errors.New("no private key available")

	// ErrUnsupportedKeyType is returned when an operation is attempted on
	// a key algorithm it does not support.
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)

// AlgorithmError reports an unrecognized algorithm name.
type AlgorithmError struct {
	Kind string // "cipher", "digest" or "curve"
	Name string
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("invalid %s %s", e.Kind, e.Name)
}

// Is implements errors.Is for sentinel error matching.
func (e *AlgorithmError) Is(target error) bool {
	return target == ErrUnknownAlgorithm
}

// BackendError wraps a failure reported by an underlying cryptographic
// primitive.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendFailure
}

// backendErr wraps err as a BackendError unless it is nil.
func backendErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

// backendErrf builds a BackendError from a message.
func backendErrf(op, format string, args ...any) error {
	return &BackendError{Op: op, Err: fmt.Errorf(format, args...)}
}

// corruptErr annotates ErrCorruptData with a reason.
func corruptErr(reason string) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, reason)
}

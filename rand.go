package keycrypt

import (
	"crypto/rand"
	"io"
)

// randReader is the random source used for key generation, salts and
// ephemeral keys. It defaults to nil (which uses crypto/rand) but can be
// overridden for testing.
var randReader io.Reader

func randSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// randBytes fills a fresh buffer of length n from the random source.
func randBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(randSource(), buf); err != nil {
		return nil, backendErr("random source", err)
	}
	return buf, nil
}

package keycrypt

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"

	"github.com/vaultsandbox/keycrypt/internal/secwipe"
)

// digestSpec describes one entry of the named digest registry.
type digestSpec struct {
	name      string
	size      int
	blockSize int
	newHash   func() hash.Hash
}

var digestRegistry = map[string]digestSpec{
	"md5":    {name: "md5", size: md5.Size, blockSize: md5.BlockSize, newHash: md5.New},
	"sha1":   {name: "sha1", size: sha1.Size, blockSize: sha1.BlockSize, newHash: sha1.New},
	"sha224": {name: "sha224", size: sha256.Size224, blockSize: sha256.BlockSize, newHash: sha256.New224},
	"sha256": {name: "sha256", size: sha256.Size, blockSize: sha256.BlockSize, newHash: sha256.New},
	"sha384": {name: "sha384", size: sha512.Size384, blockSize: sha512.BlockSize, newHash: sha512.New384},
	"sha512": {name: "sha512", size: sha512.Size, blockSize: sha512.BlockSize, newHash: sha512.New},
}

// lookupDigest resolves a digest by its lowercase name.
func lookupDigest(name string) (digestSpec, error) {
	spec, ok := digestRegistry[strings.ToLower(name)]
	if !ok {
		return digestSpec{}, &AlgorithmError{Kind: "digest", Name: name}
	}
	return spec, nil
}

// HMACContext is a stateful keyed-hash wrapper. Set a key, Init, feed
// data with Update, and collect the digest with Final. The context is
// one-shot: Final releases the internal state.
type HMACContext struct {
	spec digestSpec
	key  []byte
	mac  hash.Hash
}

// NewHMACContext creates an HMAC context over the named digest.
func NewHMACContext(algorithm string) (*HMACContext, error) {
	spec, err := lookupDigest(algorithm)
	if err != nil {
		return nil, err
	}
	return &HMACContext{spec: spec}, nil
}

// SetKey installs the HMAC key, capped at the maximum digest block size.
func (c *HMACContext) SetKey(key []byte) {
	secwipe.Wipe(c.key)
	n := len(key)
	if n > maxHMACKeySize {
		n = maxHMACKeySize
	}
	c.key = append([]byte(nil), key[:n]...)
}

// SetRandomKey installs a random key of the maximum permitted length
// and returns it.
func (c *HMACContext) SetRandomKey() ([]byte, error) {
	key, err := randBytes(maxHMACKeySize)
	if err != nil {
		return nil, err
	}
	secwipe.Wipe(c.key)
	c.key = key
	return append([]byte(nil), key...), nil
}

// Key returns the configured key, if set.
func (c *HMACContext) Key() ([]byte, bool) {
	if c.key == nil {
		return nil, false
	}
	return append([]byte(nil), c.key...), true
}

// DigestLength returns the output length of the underlying digest.
func (c *HMACContext) DigestLength() int { return c.spec.size }

// Init prepares the keyed hash. A key must have been set.
func (c *HMACContext) Init() error {
	if c.key == nil {
		return backendErrf("hmac init", "key must be set")
	}
	c.mac = hmac.New(c.spec.newHash, c.key)
	return nil
}

// Update absorbs data into the digest.
func (c *HMACContext) Update(data []byte) error {
	if c.mac == nil {
		return backendErrf("hmac update", "context not initialized")
	}
	c.mac.Write(data)
	return nil
}

// Final returns the digest and releases the internal state.
func (c *HMACContext) Final() ([]byte, error) {
	if c.mac == nil {
		return nil, backendErrf("hmac final", "context not initialized")
	}
	sum := c.mac.Sum(nil)
	c.mac = nil
	return sum, nil
}

// Destroy wipes the key material held by the context.
func (c *HMACContext) Destroy() {
	secwipe.Wipe(c.key)
	c.key = nil
	c.mac = nil
}

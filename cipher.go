package keycrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/vaultsandbox/keycrypt/internal/secwipe"
)

// CipherMode selects the direction of a symmetric cipher context.
type CipherMode int

const (
	// ModeDecrypt configures a context for decryption.
	ModeDecrypt CipherMode = iota
	// ModeEncrypt configures a context for encryption.
	ModeEncrypt
)

type cipherKind int

const (
	kindStream cipherKind = iota // CTR
	kindBlock                    // CBC
	kindAEAD                     // GCM, ChaCha20-Poly1305
)

// cipherSpec describes one entry of the named cipher registry.
type cipherSpec struct {
	name      string
	keySize   int
	ivSize    int
	blockSize int
	kind      cipherKind
	chacha    bool
}

// cipherRegistry maps lowercase OpenSSL-style cipher names to their
// parameters. Block size follows OpenSSL conventions: 1 for stream and
// AEAD ciphers, the block length for CBC.
var cipherRegistry = map[string]cipherSpec{
	"aes-128-ctr":       {name: "aes-128-ctr", keySize: 16, ivSize: 16, blockSize: 1, kind: kindStream},
	"aes-192-ctr":       {name: "aes-192-ctr", keySize: 24, ivSize: 16, blockSize: 1, kind: kindStream},
	"aes-256-ctr":       {name: "aes-256-ctr", keySize: 32, ivSize: 16, blockSize: 1, kind: kindStream},
	"aes-128-cbc":       {name: "aes-128-cbc", keySize: 16, ivSize: 16, blockSize: 16, kind: kindBlock},
	"aes-192-cbc":       {name: "aes-192-cbc", keySize: 24, ivSize: 16, blockSize: 16, kind: kindBlock},
	"aes-256-cbc":       {name: "aes-256-cbc", keySize: 32, ivSize: 16, blockSize: 16, kind: kindBlock},
	"aes-128-gcm":       {name: "aes-128-gcm", keySize: 16, ivSize: 12, blockSize: 1, kind: kindAEAD},
	"aes-192-gcm":       {name: "aes-192-gcm", keySize: 24, ivSize: 12, blockSize: 1, kind: kindAEAD},
	"aes-256-gcm":       {name: "aes-256-gcm", keySize: 32, ivSize: 12, blockSize: 1, kind: kindAEAD},
	"chacha20-poly1305": {name: "chacha20-poly1305", keySize: 32, ivSize: 12, blockSize: 1, kind: kindAEAD, chacha: true},
}

func (s cipherSpec) newAEAD(key []byte) (cipher.AEAD, error) {
	if s.chacha {
		return chacha20poly1305.New(key)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, s.ivSize)
}

// SymCipherContext is a stateful symmetric cipher wrapper. The key and
// IV must be set before Init; Init must precede Update and Final. Final
// releases the underlying transform whether it succeeds or not, after
// which the context must be reconfigured with SetKey/SetIV (or
// destroyed) before another Init.
//
// A context is owned by a single caller; concurrent use of the same
// context is not supported.
type SymCipherContext struct {
	spec    cipherSpec
	mode    CipherMode
	key     []byte
	iv      []byte
	aad     []byte
	aadSet  bool
	tag     []byte
	padding bool

	stream  cipher.Stream
	block   cipher.BlockMode
	aead    cipher.AEAD
	pending []byte
	inited  bool
	spent   bool
}

// NewSymCipherContext creates a cipher context for the named algorithm
// and direction. Padding is enabled by default.
func NewSymCipherContext(algorithm string, mode CipherMode) (*SymCipherContext, error) {
	spec, ok := cipherRegistry[strings.ToLower(algorithm)]
	if !ok {
		return nil, &AlgorithmError{Kind: "cipher", Name: algorithm}
	}
	return &SymCipherContext{spec: spec, mode: mode, padding: true}, nil
}

// SetKey installs the encryption key, truncated or zero-padded to the
// cipher's key length.
func (c *SymCipherContext) SetKey(key []byte) {
	secwipe.Wipe(c.key)
	c.key = make([]byte, c.spec.keySize)
	copy(c.key, key)
	c.spent = false
}

// SetIV installs the IV, truncated or zero-padded to the cipher's IV
// length.
func (c *SymCipherContext) SetIV(iv []byte) {
	secwipe.Wipe(c.iv)
	c.iv = make([]byte, c.spec.ivSize)
	copy(c.iv, iv)
	c.spent = false
}

// SetRandomKeyIV fills both key and IV from the random source.
func (c *SymCipherContext) SetRandomKeyIV() error {
	key, err := randBytes(c.spec.keySize)
	if err != nil {
		return err
	}
	iv, err := randBytes(c.spec.ivSize)
	if err != nil {
		return err
	}
	secwipe.WipeAll(c.key, c.iv)
	c.key, c.iv = key, iv
	c.spent = false
	return nil
}

// SetPadding enables or disables PKCS#7 padding for block ciphers.
func (c *SymCipherContext) SetPadding(padding bool) {
	c.padding = padding
}

// SetAAD sets the additional authenticated data. An empty slice is a
// valid AAD and is distinct from never calling SetAAD.
func (c *SymCipherContext) SetAAD(aad []byte) {
	c.aad = append([]byte(nil), aad...)
	c.aadSet = true
}

// SetTag supplies the expected authentication tag before Final when
// decrypting an AEAD cipher.
func (c *SymCipherContext) SetTag(tag []byte) {
	c.tag = append([]byte(nil), tag...)
}

// Key returns the configured key, if set.
func (c *SymCipherContext) Key() ([]byte, bool) {
	if c.key == nil {
		return nil, false
	}
	return append([]byte(nil), c.key...), true
}

// IV returns the configured IV, if set.
func (c *SymCipherContext) IV() ([]byte, bool) {
	if c.iv == nil {
		return nil, false
	}
	return append([]byte(nil), c.iv...), true
}

// AAD returns the configured additional authenticated data, if set.
func (c *SymCipherContext) AAD() ([]byte, bool) {
	if !c.aadSet {
		return nil, false
	}
	return append([]byte(nil), c.aad...), true
}

// Tag returns the authentication tag: the expected tag if one was
// supplied, or the tag computed by an encrypting Final.
func (c *SymCipherContext) Tag() ([]byte, bool) {
	if c.tag == nil {
		return nil, false
	}
	return append([]byte(nil), c.tag...), true
}

// KeyLength returns the cipher's key length in bytes.
func (c *SymCipherContext) KeyLength() int { return c.spec.keySize }

// IVLength returns the cipher's IV length in bytes.
func (c *SymCipherContext) IVLength() int { return c.spec.ivSize }

// BlockSize returns the cipher's block size in bytes.
func (c *SymCipherContext) BlockSize() int { return c.spec.blockSize }

// Init prepares the underlying transform. The key and IV must have been
// set.
func (c *SymCipherContext) Init() error {
	if c.key == nil || c.iv == nil {
		return backendErrf("cipher init", "key and iv must be set")
	}
	if c.inited {
		return backendErrf("cipher init", "context already initialized")
	}
	if c.spent {
		return backendErrf("cipher init", "context finalized; set a fresh key and iv before reuse")
	}

	switch c.spec.kind {
	case kindStream:
		block, err := aes.NewCipher(c.key)
		if err != nil {
			return backendErr("cipher init", err)
		}
		c.stream = cipher.NewCTR(block, c.iv)
	case kindBlock:
		block, err := aes.NewCipher(c.key)
		if err != nil {
			return backendErr("cipher init", err)
		}
		if c.mode == ModeEncrypt {
			c.block = cipher.NewCBCEncrypter(block, c.iv)
		} else {
			c.block = cipher.NewCBCDecrypter(block, c.iv)
		}
		c.pending = nil
	case kindAEAD:
		aead, err := c.spec.newAEAD(c.key)
		if err != nil {
			return backendErr("cipher init", err)
		}
		c.aead = aead
		c.pending = nil
	}
	c.inited = true
	return nil
}

// Update feeds data through the transform and returns any output ready
// so far. AEAD ciphers buffer their input and produce all output at
// Final; block ciphers may hold back a partial block.
func (c *SymCipherContext) Update(data []byte) ([]byte, error) {
	if !c.inited {
		return nil, backendErrf("cipher update", "context not initialized")
	}

	switch c.spec.kind {
	case kindStream:
		out := make([]byte, len(data))
		c.stream.XORKeyStream(out, data)
		return out, nil

	case kindAEAD:
		c.pending = append(c.pending, data...)
		return nil, nil

	default: // kindBlock
		c.pending = append(c.pending, data...)
		bs := c.spec.blockSize
		n := len(c.pending) - len(c.pending)%bs
		// A decrypting context with padding enabled must retain the
		// final ciphertext block until Final so the padding can be
		// stripped there.
		if c.mode == ModeDecrypt && c.padding && n > 0 && n == len(c.pending) {
			n -= bs
		}
		if n == 0 {
			return nil, nil
		}
		out := make([]byte, n)
		c.block.CryptBlocks(out, c.pending[:n])
		rest := append([]byte(nil), c.pending[n:]...)
		secwipe.Wipe(c.pending)
		c.pending = rest
		return out, nil
	}
}

// Final completes the operation and returns the remaining output. For
// AEAD decryption the expected tag must have been supplied with SetTag;
// a missing or wrong tag yields ErrAuthenticationFailed and no output.
// For AEAD encryption with AAD set, the computed 16-byte tag becomes
// available through Tag. The underlying transform is released in every
// case.
func (c *SymCipherContext) Final() ([]byte, error) {
	if !c.inited {
		return nil, backendErrf("cipher final", "context not initialized")
	}
	defer c.release()

	switch c.spec.kind {
	case kindStream:
		return nil, nil
	case kindAEAD:
		return c.finalAEAD()
	default:
		return c.finalBlock()
	}
}

func (c *SymCipherContext) finalAEAD() ([]byte, error) {
	var aad []byte
	if c.aadSet {
		aad = c.aad
	}

	if c.mode == ModeEncrypt {
		sealed := c.aead.Seal(nil, c.iv, c.pending, aad)
		split := len(sealed) - aeadTagSize
		out := append([]byte(nil), sealed[:split]...)
		if c.aadSet {
			c.tag = append([]byte(nil), sealed[split:]...)
		}
		secwipe.Wipe(sealed)
		return out, nil
	}

	if c.tag == nil {
		return nil, ErrAuthenticationFailed
	}
	sealed := make([]byte, 0, len(c.pending)+len(c.tag))
	sealed = append(sealed, c.pending...)
	sealed = append(sealed, c.tag...)
	out, err := c.aead.Open(nil, c.iv, sealed, aad)
	secwipe.Wipe(sealed)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return out, nil
}

func (c *SymCipherContext) finalBlock() ([]byte, error) {
	bs := c.spec.blockSize

	if c.mode == ModeEncrypt {
		if !c.padding {
			if len(c.pending)%bs != 0 {
				return nil, backendErrf("cipher final", "data is not a multiple of the block size")
			}
			out := make([]byte, len(c.pending))
			c.block.CryptBlocks(out, c.pending)
			return out, nil
		}
		pad := bs - len(c.pending)%bs
		padded := make([]byte, len(c.pending)+pad)
		copy(padded, c.pending)
		for i := len(c.pending); i < len(padded); i++ {
			padded[i] = byte(pad)
		}
		out := make([]byte, len(padded))
		c.block.CryptBlocks(out, padded)
		secwipe.Wipe(padded)
		return out, nil
	}

	if !c.padding {
		if len(c.pending) != 0 {
			return nil, backendErrf("cipher final", "data is not a multiple of the block size")
		}
		return nil, nil
	}
	if len(c.pending) != bs {
		return nil, backendErrf("cipher final", "wrong final block length")
	}
	out := make([]byte, bs)
	c.block.CryptBlocks(out, c.pending)
	pad := int(out[bs-1])
	if pad < 1 || pad > bs {
		secwipe.Wipe(out)
		return nil, backendErrf("cipher final", "bad decrypt")
	}
	for _, b := range out[bs-pad:] {
		if int(b) != pad {
			secwipe.Wipe(out)
			return nil, backendErrf("cipher final", "bad decrypt")
		}
	}
	res := append([]byte(nil), out[:bs-pad]...)
	secwipe.Wipe(out)
	return res, nil
}

// release drops the transform state after Final.
func (c *SymCipherContext) release() {
	c.stream = nil
	c.block = nil
	c.aead = nil
	secwipe.Wipe(c.pending)
	c.pending = nil
	c.inited = false
	c.spent = true
}

// Destroy wipes all key material held by the context. The context must
// not be used afterwards.
func (c *SymCipherContext) Destroy() {
	secwipe.WipeAll(c.key, c.iv, c.aad, c.tag, c.pending)
	c.key, c.iv, c.aad, c.tag, c.pending = nil, nil, nil, nil, nil
	c.stream, c.block, c.aead = nil, nil, nil
	c.aadSet = false
	c.inited = false
}

// Package secwipe clears sensitive byte buffers after their last use.
// Zeroing is best-effort: it removes key material from the process heap
// but cannot reach copies the garbage collector may have moved.
package secwipe

import (
	"math/big"
	"runtime"
)

// Wipe overwrites b with zeros. runtime.KeepAlive prevents the compiler
// from eliding the writes as dead stores.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// WipeAll wipes every slice in turn.
func WipeAll(bufs ...[]byte) {
	for _, b := range bufs {
		Wipe(b)
	}
}

// WipeBig zeroes the storage backing a big.Int and resets its value.
// big.Int exposes its word slice through Bits, which lets us clear the
// actual allocation rather than just dropping the reference.
func WipeBig(n *big.Int) {
	if n == nil {
		return
	}
	words := n.Bits()
	for i := range words {
		words[i] = 0
	}
	n.SetInt64(0)
	runtime.KeepAlive(words)
}

// Package mpi implements the OpenSSL MPI serialization of big integers
// (BN_bn2mpi/BN_mpi2bn): a 4-byte big-endian length followed by the
// magnitude, with an extra leading zero byte when the high bit of the
// first magnitude byte is set. The top bit of the first byte carries the
// sign; only non-negative values are supported here.
package mpi

import (
	"encoding/binary"
	"errors"
	"math/big"
)

var (
	// ErrTruncated is returned when the buffer is shorter than the
	// declared length.
	ErrTruncated = errors.New("mpi: truncated data")

	// ErrNegative is returned when the sign bit is set; key scalars are
	// always non-negative.
	ErrNegative = errors.New("mpi: negative value")
)

// Encode serializes a non-negative big integer in MPI form.
func Encode(n *big.Int) []byte {
	mag := n.Bytes()
	pad := 0
	if len(mag) > 0 && mag[0]&0x80 != 0 {
		pad = 1
	}
	out := make([]byte, 4+pad+len(mag))
	binary.BigEndian.PutUint32(out, uint32(len(mag)+pad))
	copy(out[4+pad:], mag)
	return out
}

// Decode parses an MPI-encoded integer.
func Decode(data []byte) (*big.Int, error) {
	if len(data) < 4 {
		return nil, ErrTruncated
	}
	n := binary.BigEndian.Uint32(data)
	if uint32(len(data)-4) < n {
		return nil, ErrTruncated
	}
	mag := data[4 : 4+n]
	if len(mag) > 0 && mag[0]&0x80 != 0 {
		return nil, ErrNegative
	}
	return new(big.Int).SetBytes(mag), nil
}

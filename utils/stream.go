package utils

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Stream is a deterministic source of uniform integers backed by SHAKE256.
// The same seed always yields the same sequence, which keeps Pollard-rho
// parameter choices and randomized tests reproducible.
type Stream struct {
	h sha3.ShakeHash
}

// NewStream returns a stream seeded with the given bytes.
func NewStream(seed []byte) *Stream {
	h := sha3.NewShake256()
	_, _ = h.Write(seed)
	return &Stream{h: h}
}

// NewStreamWithDomain returns a stream whose seed is domain-separated.
// The domain string is length-prefixed so different uses of the same seed
// material cannot collide. Panics if domain is longer than 255 bytes.
func NewStreamWithDomain(domain string, seed []byte) *Stream {
	domainBytes := []byte(domain)
	if len(domainBytes) > 255 {
		panic("domain string must be at most 255 bytes")
	}
	h := sha3.NewShake256()
	_, _ = h.Write([]byte{byte(len(domainBytes))})
	_, _ = h.Write(domainBytes)
	_, _ = h.Write(seed)
	return &Stream{h: h}
}

// Uint64 returns the next 8 bytes of the stream as a little-endian integer.
func (s *Stream) Uint64() uint64 {
	var buf [8]byte
	_, _ = s.h.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// Uint64n returns a uniform value in [0, bound). Rejection sampling keeps
// the distribution unbiased. Panics if bound is zero.
func (s *Stream) Uint64n(bound uint64) uint64 {
	if bound == 0 {
		panic("bound must be positive")
	}
	if bound&(bound-1) == 0 {
		return s.Uint64() & (bound - 1)
	}
	// Largest multiple of bound below 2^64; values at or above it would
	// bias the low residues.
	threshold := ^uint64(0) - ^uint64(0)%bound
	for {
		v := s.Uint64()
		if v < threshold {
			return v % bound
		}
	}
}

// Package rng provides seekable pseudo-random streams and the hierarchical
// partitioning used to hand every generation consumer a private stream.
//
// The generator is a 128-bit multiplicative congruential PCG with XSL-RR
// output (PCG64 MCG). Jumping ahead costs O(log n) multiplications, which is
// what makes fixed-stride partitioning practical.
package rng

import (
	"math/bits"
)

var multiplier = Uint128{Hi: 0x2360ED051FC65DA4, Lo: 0x4385DF649FCCF645}

// Stream is a PCG64 MCG generator. The zero value is not usable; construct
// one with NewStream, StreamFromState or RootSeed.NewStream.
//
// Stream implements math/rand/v2.Source.
type Stream struct {
	state Uint128
}

// NewStream seeds a stream. The low bit is forced on because an MCG state must be odd.
func NewStream(seed Uint128) Stream {
	seed.Lo |= 1
	return Stream{state: seed}
}

// StreamFromState restores a stream previously captured with State.
func StreamFromState(state Uint128) Stream {
	return NewStream(state)
}

func (s *Stream) Uint64() uint64 {
	s.state = s.state.Mul(multiplier)
	return output(s.state)
}

func output(state Uint128) uint64 {
	rot := int(state.Hi >> 58)
	return bits.RotateLeft64(state.Hi^state.Lo, -rot)
}

// Advance jumps the stream forward by delta draws.
func (s *Stream) Advance(delta Uint128) {
	acc := U128(1)
	cur := multiplier

	for !delta.IsZero() {
		if delta.Lo&1 != 0 {
			acc = acc.Mul(cur)
		}
		cur = cur.Mul(cur)
		delta = delta.Rsh(1)
	}

	s.state = s.state.Mul(acc)
}

func (s Stream) Clone() Stream {
	return s
}

func (s Stream) State() Uint128 {
	return s.state
}

func (s Stream) String() string {
	return s.state.String()
}

func (s Stream) MarshalText() ([]byte, error) {
	return []byte(s.state.String()), nil
}

func (s *Stream) UnmarshalText(text []byte) error {
	state, err := ParseUint128(string(text))
	if err != nil {
		return err
	}
	*s = StreamFromState(state)
	return nil
}

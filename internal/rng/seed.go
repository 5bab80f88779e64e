package rng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"
)

// RootSeed defines a whole generation tree. Streams force the low bit on, so
// two roots that differ only in bit 0 produce the same tree.
type RootSeed Uint128

// ParseRootSeed accepts decimal or 0x-prefixed hex (also 0o and 0b) up to 128 bits.
// Underscores are allowed as digit separators.
func ParseRootSeed(s string) (RootSeed, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RootSeed{}, fmt.Errorf("root seed is empty")
	}

	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return RootSeed{}, fmt.Errorf("invalid root seed %q", s)
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return RootSeed{}, fmt.Errorf("root seed %q out of 128-bit range", s)
	}

	var buf [16]byte
	v.FillBytes(buf[:])
	return RootSeed{
		Hi: binary.BigEndian.Uint64(buf[:8]),
		Lo: binary.BigEndian.Uint64(buf[8:]),
	}, nil
}

func RandomRootSeed() RootSeed {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return RootSeed{
		Hi: binary.LittleEndian.Uint64(buf[:8]),
		Lo: binary.LittleEndian.Uint64(buf[8:]),
	}
}

func (r RootSeed) String() string {
	if r.Hi == 0 {
		return fmt.Sprintf("0x%x", r.Lo)
	}
	return fmt.Sprintf("0x%x%016x", r.Hi, r.Lo)
}

func (r RootSeed) NewStream() Stream {
	return NewStream(Uint128(r))
}

func (r RootSeed) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RootSeed) UnmarshalText(text []byte) error {
	seed, err := ParseRootSeed(string(text))
	if err != nil {
		return err
	}
	*r = seed
	return nil
}

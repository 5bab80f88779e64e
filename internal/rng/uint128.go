package rng

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Uint128 is an unsigned 128-bit integer with wrapping arithmetic.
type Uint128 struct {
	Hi, Lo uint64
}

func U128(lo uint64) Uint128 {
	return Uint128{Lo: lo}
}

func (a Uint128) Mul(b Uint128) Uint128 {
	hi, lo := bits.Mul64(a.Lo, b.Lo)
	hi += a.Hi*b.Lo + a.Lo*b.Hi
	return Uint128{Hi: hi, Lo: lo}
}

func (a Uint128) Add(b Uint128) Uint128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

func (a Uint128) Sub(b Uint128) Uint128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

func (a Uint128) Rsh(n uint) Uint128 {
	switch {
	case n == 0:
		return a
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: a.Hi >> (n - 64)}
	default:
		return Uint128{Hi: a.Hi >> n, Lo: a.Lo>>n | a.Hi<<(64-n)}
	}
}

func (a Uint128) Lsh(n uint) Uint128 {
	switch {
	case n == 0:
		return a
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: a.Lo << (n - 64)}
	default:
		return Uint128{Hi: a.Hi<<n | a.Lo>>(64-n), Lo: a.Lo << n}
	}
}

func (a Uint128) IsZero() bool {
	return a.Hi == 0 && a.Lo == 0
}

// String renders the value as 32 zero-padded hex digits.
func (a Uint128) String() string {
	return fmt.Sprintf("%016x%016x", a.Hi, a.Lo)
}

// ParseUint128 parses up to 32 hex digits without prefix.
func ParseUint128(s string) (Uint128, error) {
	if s == "" || len(s) > 32 {
		return Uint128{}, fmt.Errorf("invalid 128-bit hex value %q", s)
	}

	split := max(len(s)-16, 0)
	var hi uint64
	if split > 0 {
		v, err := strconv.ParseUint(s[:split], 16, 64)
		if err != nil {
			return Uint128{}, fmt.Errorf("invalid 128-bit hex value %q: %w", s, err)
		}
		hi = v
	}

	lo, err := strconv.ParseUint(s[split:], 16, 64)
	if err != nil {
		return Uint128{}, fmt.Errorf("invalid 128-bit hex value %q: %w", s, err)
	}

	return Uint128{Hi: hi, Lo: lo}, nil
}

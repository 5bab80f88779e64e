package rng

// Level is a tier of the stream partition. A consumer at level L with index i
// owns the draws [i*Stride(L), (i+1)*Stride(L)) of its parent stream.
type Level uint8

const (
	Level16 Level = iota + 1
	Level32
	Level48
	Level64
)

func (l Level) shift() uint {
	return uint(l) * 16
}

func (l Level) Stride() Uint128 {
	return U128(1).Lsh(l.shift())
}

// Capacity is the number of indices that fit in one slot of the next coarser level.
func (l Level) Capacity() uint64 {
	return 1 << 16
}

func (l Level) String() string {
	switch l {
	case Level16:
		return "L16"
	case Level32:
		return "L32"
	case Level48:
		return "L48"
	case Level64:
		return "L64"
	default:
		return "L?"
	}
}

// Derive returns the sub-stream at index within level. The parent is not modified.
// Indices at or beyond level.Capacity() spill into the next slot of the coarser
// level; callers bound the index.
func Derive(parent Stream, level Level, index uint64) Stream {
	child := parent.Clone()
	child.Advance(U128(index).Mul(level.Stride()))
	return child
}

// Tier layout of the root stream:
//
//	root   L64 slot 0          empires
//	root   L64 slot i+1        galaxy i
//	galaxy L32 slot 0          the galaxy itself
//	galaxy L32 slot j+1        planetary system j

func EmpireStream(root Stream) Stream {
	return Derive(root, Level64, 0)
}

func GalaxyStream(root Stream, galaxy uint64) Stream {
	return Derive(root, Level64, galaxy+1)
}

func SystemStream(galaxy Stream, system uint64) Stream {
	return Derive(galaxy, Level32, system+1)
}

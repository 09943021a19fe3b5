package feature

import (
	"math"
	"reflect"
)

// Kind identifies a feature field's numeric type. Go has no derive
// macros, so where the original generates a schema/query/result triad
// from an annotated record type at compile time, this package derives
// the same triad at runtime via reflection over the record's exported
// fields — the same substitution the design notes anticipate for
// implementations without macro facilities, and the same technique
// encoding/json itself uses for struct marshaling.
type Kind int

const (
	U8 Kind = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
)

// domain returns the full numeric domain of k as a (start, end) pair
// suitable for a one-shot full_range() aggregation query.
func (k Kind) domain() (float64, float64) {
	switch k {
	case U8:
		return 0, 1 << 8
	case U16:
		return 0, 1 << 16
	case U32:
		return 0, 1 << 32
	case U64:
		return 0, float64(^uint64(0))
	case I8:
		return -(1 << 7), 1 << 7
	case I16:
		return -(1 << 15), 1 << 15
	case I32:
		return -(1 << 31), 1 << 31
	case I64:
		return -(1 << 63), 1 << 63
	case F32:
		return -math.MaxFloat32, math.MaxFloat32
	case F64:
		return -math.MaxFloat64, math.MaxFloat64
	default:
		return 0, 0
	}
}

var kindOfReflect = map[reflect.Kind]Kind{
	reflect.Uint8:   U8,
	reflect.Uint16:  U16,
	reflect.Uint32:  U32,
	reflect.Uint64:  U64,
	reflect.Uint:    U64,
	reflect.Int8:    I8,
	reflect.Int16:   I16,
	reflect.Int32:   I32,
	reflect.Int64:   I64,
	reflect.Int:     I64,
	reflect.Float32: F32,
	reflect.Float64: F64,
}

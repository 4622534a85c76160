// Package mapping holds the lookup table the generators share: IR
// primitive kind to host Go type.
package mapping

import "github.com/styles-lab/mlc/ir"

// HostType returns the Go type spelling for an mlang primitive.
func HostType(k ir.PrimitiveKind) string {
	switch k {
	case ir.PrimitiveBool:
		return "bool"
	case ir.PrimitiveString:
		return "string"
	case ir.PrimitiveByte:
		return "int8"
	case ir.PrimitiveUByte:
		return "uint8"
	case ir.PrimitiveShort:
		return "int16"
	case ir.PrimitiveUShort:
		return "uint16"
	case ir.PrimitiveInt:
		return "int32"
	case ir.PrimitiveUInt:
		return "uint32"
	case ir.PrimitiveLong:
		return "int64"
	case ir.PrimitiveULong:
		return "uint64"
	case ir.PrimitiveFloat:
		return "float32"
	case ir.PrimitiveDouble:
		return "float64"
	default:
		return "any"
	}
}

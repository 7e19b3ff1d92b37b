// Completion: 100% - MyLang type system: primitives, structs, functions, arrays
package main

import "strings"

// BaseKind is the category of a Type's base type, per SPEC_FULL.md §3.
type BaseKind int

const (
	BaseUnknown BaseKind = iota
	BasePrimitive
	BaseStruct
	BaseFunction
	BaseVoid
)

// String returns a human-readable representation of the base-type kind.
func (k BaseKind) String() string {
	switch k {
	case BasePrimitive:
		return "primitive"
	case BaseStruct:
		return "struct"
	case BaseFunction:
		return "function"
	case BaseVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Primitive enumerates MyLang's built-in scalar types.
type Primitive int

const (
	PrimitiveNone Primitive = iota
	PrimitiveI32
	PrimitiveF32
	PrimitiveBool
	PrimitiveStr
)

// String returns the MyLang surface-syntax spelling of the primitive.
func (p Primitive) String() string {
	switch p {
	case PrimitiveI32:
		return "i32"
	case PrimitiveF32:
		return "f32"
	case PrimitiveBool:
		return "bool"
	case PrimitiveStr:
		return "str"
	default:
		return ""
	}
}

// CppName returns the C++ type name this primitive maps to, per
// SPEC_FULL.md §4.7 ("C++ mapping").
func (p Primitive) CppName() string {
	switch p {
	case PrimitiveI32:
		return "int"
	case PrimitiveF32:
		return "float"
	case PrimitiveBool:
		return "bool"
	case PrimitiveStr:
		return "std::string"
	default:
		return "void"
	}
}

// ParamUsage is how a function parameter is passed: by value read-only,
// written-out, or both.
type ParamUsage int

const (
	UsageIn ParamUsage = iota
	UsageOut
	UsageInOut
)

// String returns the MyLang keyword for this parameter usage ("in",
// "out" or "inout").
func (u ParamUsage) String() string {
	switch u {
	case UsageOut:
		return "out"
	case UsageInOut:
		return "inout"
	default:
		return "in"
	}
}

// CppRefSpec returns the C++ parameter-passing convention for this usage,
// given the already-mapped C++ element type name: in -> const T&, out and
// inout -> T&.
func (u ParamUsage) CppRefSpec(cppType string) string {
	if u == UsageIn {
		return "const " + cppType + "&"
	}
	return cppType + "&"
}

// Param is one entry of a FunctionType's parameter list.
type Param struct {
	Name  string
	Usage ParamUsage
	Type  *Type
}

// FunctionType describes a function's signature: parameters plus an
// optional return type (nil means "no value").
type FunctionType struct {
	Params  []Param
	Returns *Type // nil => void
}

// Type is the product of a base type and an ordered sequence of array
// dimensions, per SPEC_FULL.md §3. Dimensions grow to the right:
// i32[3][2] is a length-3 sequence of length-2 integer arrays.
type Type struct {
	Kind       BaseKind
	Primitive  Primitive     // valid when Kind == BasePrimitive
	StructName string        // valid when Kind == BaseStruct
	Function   *FunctionType // valid when Kind == BaseFunction
	ArrayDims  []int         // may be empty; growth is left-to-right
}

// NewPrimitiveType builds a scalar MyLang type with no array dimensions.
func NewPrimitiveType(p Primitive) *Type {
	return &Type{Kind: BasePrimitive, Primitive: p}
}

// NewStructType builds a named struct-typed reference.
func NewStructType(name string) *Type {
	return &Type{Kind: BaseStruct, StructName: name}
}

// NewVoidType builds the reserved "no return value" marker type.
func NewVoidType() *Type {
	return &Type{Kind: BaseVoid}
}

// NewFunctionType builds a function type from its signature.
func NewFunctionType(fn *FunctionType) *Type {
	return &Type{Kind: BaseFunction, Function: fn}
}

// WithArrayDims returns a copy of t with the given array dimensions
// attached (used right after parsing a `type` production's `[N]` suffixes).
func (t *Type) WithArrayDims(dims []int) *Type {
	clone := *t
	clone.ArrayDims = dims
	return &clone
}

// IsArray reports whether this type has at least one array dimension.
func (t *Type) IsArray() bool {
	return len(t.ArrayDims) > 0
}

// ElementType removes the leftmost array dimension, yielding the type one
// level down. Callers must check IsArray first (mirrors ArrayAccess's
// precondition in §4.6).
func (t *Type) ElementType() *Type {
	clone := *t
	clone.ArrayDims = t.ArrayDims[1:]
	return &clone
}

// BaseEquals compares base-type identity only (ignoring array dims):
// primitives compare by kind, structs by name, void always matches void.
func (t *Type) BaseEquals(other *Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case BasePrimitive:
		return t.Primitive == other.Primitive
	case BaseStruct:
		return t.StructName == other.StructName
	case BaseVoid:
		return true
	default:
		return false
	}
}

// DimsEqual reports whether t and other have the same number of array
// dimensions (§4.6 VarDecl "same number of array dimensions"). Element
// sizes are allowed to differ — see the separate overcap check in
// TypeChecker.checkArrayDims, which only rejects a per-dimension size
// that's larger than declared.
func (t *Type) DimsEqual(other *Type) bool {
	return len(t.ArrayDims) == len(other.ArrayDims)
}

// CanCoerceTo reports whether a value of type t may be used where a value
// of type target is expected. Equal base type always coerces; the sole
// numeric widening allowed is f32 <- i32, never the reverse (see the Open
// Question resolution recorded in DESIGN.md).
func (t *Type) CanCoerceTo(target *Type) bool {
	if t.BaseEquals(target) {
		return true
	}
	if t.Kind == BasePrimitive && target.Kind == BasePrimitive &&
		t.Primitive == PrimitiveI32 && target.Primitive == PrimitiveF32 {
		return true
	}
	return false
}

// String renders the MyLang surface syntax for this type, e.g. "i32[3][2]".
func (t *Type) String() string {
	var b strings.Builder
	switch t.Kind {
	case BasePrimitive:
		b.WriteString(t.Primitive.String())
	case BaseStruct:
		b.WriteString(t.StructName)
	case BaseVoid:
		b.WriteString("void")
	case BaseFunction:
		b.WriteString(t.Function.String())
	default:
		b.WriteString("<unknown>")
	}
	for _, d := range t.ArrayDims {
		b.WriteString("[")
		b.WriteString(itoa(d))
		b.WriteString("]")
	}
	return b.String()
}

// String renders a function type's surface syntax, e.g.
// "[(i32, out f32) -> f32]"; the default "in" usage is not written out.
func (f *FunctionType) String() string {
	var b strings.Builder
	b.WriteString("[(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Usage != UsageIn {
			b.WriteString(p.Usage.String())
			b.WriteString(" ")
		}
		b.WriteString(p.Type.String())
	}
	b.WriteString(")")
	if f.Returns != nil {
		b.WriteString(" -> ")
		b.WriteString(f.Returns.String())
	}
	b.WriteString("]")
	return b.String()
}

// CppTypeName renders the C++ element type name for t, ignoring array
// dimensions (callers wrap with std::array nesting separately).
func (t *Type) CppTypeName() string {
	switch t.Kind {
	case BasePrimitive:
		return t.Primitive.CppName()
	case BaseStruct:
		return t.StructName
	case BaseVoid:
		return "void"
	case BaseFunction:
		return "std::function<" + t.Function.CppSignature() + ">"
	default:
		return "void"
	}
}

// CppSignature renders a std::function-compatible signature string for a
// function type, e.g. "float(const vec2&, const vec2&)".
func (f *FunctionType) CppSignature() string {
	ret := "void"
	if f.Returns != nil {
		ret = f.Returns.CppTypeName()
	}
	var parts []string
	for _, p := range f.Params {
		parts = append(parts, p.Usage.CppRefSpec(p.Type.CppTypeName()))
	}
	return ret + "(" + strings.Join(parts, ", ") + ")"
}

// CppDeclType renders the full C++ declared type for t, wrapping array
// dimensions as nested std::array<...> per SPEC_FULL.md §4.7.
func (t *Type) CppDeclType() string {
	base := t.CppTypeName()
	if !t.IsArray() {
		return base
	}
	result := base
	for i := len(t.ArrayDims) - 1; i >= 0; i-- {
		result = "std::array<" + result + ", " + itoa(t.ArrayDims[i]) + ">"
	}
	return result
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// PrimitiveByLexeme reclassifies a lexed identifier lexeme as a primitive
// type name, if it matches one exactly (see §4.2 "reclassify" step).
func PrimitiveByLexeme(lexeme string) (Primitive, bool) {
	switch lexeme {
	case "i32":
		return PrimitiveI32, true
	case "f32":
		return PrimitiveF32, true
	case "bool":
		return PrimitiveBool, true
	case "str":
		return PrimitiveStr, true
	default:
		return PrimitiveNone, false
	}
}

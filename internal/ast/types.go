package ast

import "rscanon/internal/source"

type TypeKind uint8

const (
	TypePath TypeKind = iota
	TypeRef
	TypePtr
	TypeSlice
	TypeArray
	TypeTuple
	TypeFn
	TypeImpl
	TypeDyn
	TypeNever
	TypeInfer
	TypeMacro
	// TypeUnknown - узел, который парсер не моделирует (например, <T as Trait>::X).
	TypeUnknown
)

type Type struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

type TypePathData struct {
	Path Path
}

// TypeRefData описывает &'a mut T и *const/*mut T.
type TypeRefData struct {
	Lifetime source.StringID
	Mut      bool
	Elem     TypeID
}

type TypeArrayData struct {
	Elem TypeID
	Len  ExprID // NoExprID для slice
}

type TypeTupleData struct {
	Elems []TypeID
}

type TypeFnData struct {
	Unsafe bool
	Params []TypeID
	Result TypeID
}

// Bound - элемент списка T: A + 'a + ?Sized.
type Bound struct {
	Lifetime source.StringID
	Type     TypeID
	Maybe    bool
}

type TypeBoundsData struct {
	Bounds []Bound
	// Bare - объект трейта без dyn (Box<Error + Send>).
	Bare bool
}

type TypeMacroData struct {
	Macro ExprID
}

type Types struct {
	Arena  *Arena[Type]
	Paths  *Arena[TypePathData]
	Refs   *Arena[TypeRefData]
	Arrays *Arena[TypeArrayData]
	Tuples *Arena[TypeTupleData]
	Fns    *Arena[TypeFnData]
	Bounds *Arena[TypeBoundsData]
	Macros *Arena[TypeMacroData]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Types{
		Arena:  NewArena[Type](capHint),
		Paths:  NewArena[TypePathData](capHint),
		Refs:   NewArena[TypeRefData](capHint / 4),
		Arrays: NewArena[TypeArrayData](capHint / 8),
		Tuples: NewArena[TypeTupleData](capHint / 8),
		Fns:    NewArena[TypeFnData](0),
		Bounds: NewArena[TypeBoundsData](0),
		Macros: NewArena[TypeMacroData](0),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload uint32) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

func (t *Types) NewPath(span source.Span, path Path) TypeID {
	return t.new(TypePath, span, t.Paths.Allocate(TypePathData{Path: path}))
}

func (t *Types) Path(id TypeID) (*TypePathData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypePath {
		return nil, false
	}
	return t.Paths.Get(uint32(ty.Payload)), true
}

// NewRef creates a reference (TypeRef) or raw pointer (TypePtr) type.
func (t *Types) NewRef(kind TypeKind, span source.Span, data TypeRefData) TypeID {
	return t.new(kind, span, t.Refs.Allocate(data))
}

func (t *Types) Ref(id TypeID) (*TypeRefData, bool) {
	ty := t.Get(id)
	if ty == nil || (ty.Kind != TypeRef && ty.Kind != TypePtr) {
		return nil, false
	}
	return t.Refs.Get(uint32(ty.Payload)), true
}

// NewArray creates [T; N], or [T] when kind is TypeSlice.
func (t *Types) NewArray(kind TypeKind, span source.Span, elem TypeID, length ExprID) TypeID {
	return t.new(kind, span, t.Arrays.Allocate(TypeArrayData{Elem: elem, Len: length}))
}

func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	ty := t.Get(id)
	if ty == nil || (ty.Kind != TypeArray && ty.Kind != TypeSlice) {
		return nil, false
	}
	return t.Arrays.Get(uint32(ty.Payload)), true
}

func (t *Types) NewTuple(span source.Span, elems []TypeID) TypeID {
	return t.new(TypeTuple, span, t.Tuples.Allocate(TypeTupleData{Elems: elems}))
}

func (t *Types) Tuple(id TypeID) (*TypeTupleData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeTuple {
		return nil, false
	}
	return t.Tuples.Get(uint32(ty.Payload)), true
}

func (t *Types) NewFn(span source.Span, data TypeFnData) TypeID {
	return t.new(TypeFn, span, t.Fns.Allocate(data))
}

func (t *Types) Fn(id TypeID) (*TypeFnData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeFn {
		return nil, false
	}
	return t.Fns.Get(uint32(ty.Payload)), true
}

// NewBounds creates impl Trait (TypeImpl) or dyn Trait (TypeDyn).
func (t *Types) NewBounds(kind TypeKind, span source.Span, data TypeBoundsData) TypeID {
	return t.new(kind, span, t.Bounds.Allocate(data))
}

func (t *Types) BoundList(id TypeID) (*TypeBoundsData, bool) {
	ty := t.Get(id)
	if ty == nil || (ty.Kind != TypeImpl && ty.Kind != TypeDyn) {
		return nil, false
	}
	return t.Bounds.Get(uint32(ty.Payload)), true
}

func (t *Types) NewMacro(span source.Span, macro ExprID) TypeID {
	return t.new(TypeMacro, span, t.Macros.Allocate(TypeMacroData{Macro: macro}))
}

func (t *Types) Macro(id TypeID) (*TypeMacroData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeMacro {
		return nil, false
	}
	return t.Macros.Get(uint32(ty.Payload)), true
}

// NewSimple creates payload-less types: never, infer, unknown.
func (t *Types) NewSimple(kind TypeKind, span source.Span) TypeID {
	return t.new(kind, span, 0)
}

package ast

import (
	"rscanon/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena       *Arena[Expr]
	Paths       *Arena[ExprPathData]
	Literals    *Arena[ExprLitData]
	Binaries    *Arena[ExprBinaryData]
	Unaries     *Arena[ExprUnaryData]
	Calls       *Arena[ExprCallData]
	MethodCalls *Arena[ExprMethodCallData]
	Fields      *Arena[ExprFieldData]
	Indices     *Arena[ExprIndexData]
	Assigns     *Arena[ExprAssignData]
	Ifs         *Arena[ExprIfData]
	Whiles      *Arena[ExprWhileData]
	Fors        *Arena[ExprForData]
	Loops       *Arena[ExprLoopData]
	Blocks      *Arena[ExprBlockData]
	Jumps       *Arena[ExprJumpData]
	Closures    *Arena[ExprClosureData]
	Structs     *Arena[ExprStructData]
	Tuples      *Arena[ExprTupleData]
	Arrays      *Arena[ExprArrayData]
	Ranges      *Arena[ExprRangeData]
	Refs        *Arena[ExprRefData]
	Casts       *Arena[ExprCastData]
	Wraps       *Arena[ExprWrapData]
	Macros      *Arena[ExprMacroData]
	Matches     *Arena[ExprMatchData]
	Lets        *Arena[ExprLetData]
}

// NewExprs creates per-kind expression arenas; capHint 0 means 1<<8.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 8
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Paths:       NewArena[ExprPathData](capHint),
		Literals:    NewArena[ExprLitData](capHint / 2),
		Binaries:    NewArena[ExprBinaryData](capHint / 2),
		Unaries:     NewArena[ExprUnaryData](small),
		Calls:       NewArena[ExprCallData](small),
		MethodCalls: NewArena[ExprMethodCallData](small),
		Fields:      NewArena[ExprFieldData](small),
		Indices:     NewArena[ExprIndexData](small),
		Assigns:     NewArena[ExprAssignData](small),
		Ifs:         NewArena[ExprIfData](small),
		Whiles:      NewArena[ExprWhileData](small),
		Fors:        NewArena[ExprForData](small),
		Loops:       NewArena[ExprLoopData](small),
		Blocks:      NewArena[ExprBlockData](small),
		Jumps:       NewArena[ExprJumpData](small),
		Closures:    NewArena[ExprClosureData](small),
		Structs:     NewArena[ExprStructData](small),
		Tuples:      NewArena[ExprTupleData](small),
		Arrays:      NewArena[ExprArrayData](small),
		Ranges:      NewArena[ExprRangeData](small),
		Refs:        NewArena[ExprRefData](small),
		Casts:       NewArena[ExprCastData](small),
		Wraps:       NewArena[ExprWrapData](small),
		Macros:      NewArena[ExprMacroData](small),
		Matches:     NewArena[ExprMatchData](small),
		Lets:        NewArena[ExprLetData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// payloadOf возвращает данные узла, если его вид один из kinds.
func payloadOf[T any](e *Exprs, arena *Arena[T], id ExprID, kinds ...ExprKind) (*T, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return arena.Get(uint32(expr.Payload)), true
		}
	}
	return nil, false
}

func (e *Exprs) NewPath(span source.Span, path Path) ExprID {
	return e.new(ExprPath, span, e.Paths.Allocate(ExprPathData{Path: path}))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	return payloadOf(e, e.Paths, id, ExprPath)
}

func (e *Exprs) NewLiteral(span source.Span, kind LitKind, raw source.StringID) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(ExprLitData{Kind: kind, Raw: raw}))
}

func (e *Exprs) Literal(id ExprID) (*ExprLitData, bool) {
	return payloadOf(e, e.Literals, id, ExprLit)
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return payloadOf(e, e.Binaries, id, ExprBinary)
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, x ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, X: x}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return payloadOf(e, e.Unaries, id, ExprUnary)
}

func (e *Exprs) NewCall(span source.Span, fn ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Fn: fn, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return payloadOf(e, e.Calls, id, ExprCall)
}

func (e *Exprs) NewMethodCall(span source.Span, data ExprMethodCallData) ExprID {
	return e.new(ExprMethodCall, span, e.MethodCalls.Allocate(data))
}

func (e *Exprs) MethodCall(id ExprID) (*ExprMethodCallData, bool) {
	return payloadOf(e, e.MethodCalls, id, ExprMethodCall)
}

func (e *Exprs) NewField(span source.Span, x ExprID, name source.StringID) ExprID {
	return e.new(ExprField, span, e.Fields.Allocate(ExprFieldData{X: x, Name: name}))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	return payloadOf(e, e.Fields, id, ExprField)
}

func (e *Exprs) NewIndex(span source.Span, x, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{X: x, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	return payloadOf(e, e.Indices, id, ExprIndex)
}

func (e *Exprs) NewAssign(span source.Span, target, value ExprID) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(ExprAssignData{Target: target, Value: value}))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	return payloadOf(e, e.Assigns, id, ExprAssign)
}

func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	return payloadOf(e, e.Ifs, id, ExprIf)
}

func (e *Exprs) NewWhile(span source.Span, label source.StringID, cond, body ExprID) ExprID {
	return e.new(ExprWhile, span, e.Whiles.Allocate(ExprWhileData{Label: label, Cond: cond, Body: body}))
}

func (e *Exprs) While(id ExprID) (*ExprWhileData, bool) {
	return payloadOf(e, e.Whiles, id, ExprWhile)
}

func (e *Exprs) NewFor(span source.Span, data ExprForData) ExprID {
	return e.new(ExprFor, span, e.Fors.Allocate(data))
}

func (e *Exprs) For(id ExprID) (*ExprForData, bool) {
	return payloadOf(e, e.Fors, id, ExprFor)
}

func (e *Exprs) NewLoop(span source.Span, label source.StringID, body ExprID) ExprID {
	return e.new(ExprLoop, span, e.Loops.Allocate(ExprLoopData{Label: label, Body: body}))
}

func (e *Exprs) Loop(id ExprID) (*ExprLoopData, bool) {
	return payloadOf(e, e.Loops, id, ExprLoop)
}

func (e *Exprs) NewBlock(span source.Span, data ExprBlockData) ExprID {
	return e.new(ExprBlock, span, e.Blocks.Allocate(data))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	return payloadOf(e, e.Blocks, id, ExprBlock)
}

// NewJump creates return, break or continue.
func (e *Exprs) NewJump(kind ExprKind, span source.Span, label source.StringID, value ExprID) ExprID {
	return e.new(kind, span, e.Jumps.Allocate(ExprJumpData{Label: label, Value: value}))
}

func (e *Exprs) Jump(id ExprID) (*ExprJumpData, bool) {
	return payloadOf(e, e.Jumps, id, ExprReturn, ExprBreak, ExprContinue)
}

func (e *Exprs) NewClosure(span source.Span, data ExprClosureData) ExprID {
	return e.new(ExprClosure, span, e.Closures.Allocate(data))
}

func (e *Exprs) Closure(id ExprID) (*ExprClosureData, bool) {
	return payloadOf(e, e.Closures, id, ExprClosure)
}

func (e *Exprs) NewStruct(span source.Span, data ExprStructData) ExprID {
	return e.new(ExprStruct, span, e.Structs.Allocate(data))
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) {
	return payloadOf(e, e.Structs, id, ExprStruct)
}

func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprTuple, span, e.Tuples.Allocate(ExprTupleData{Elems: elems}))
}

func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	return payloadOf(e, e.Tuples, id, ExprTuple)
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID, repeat ExprID) ExprID {
	return e.new(ExprArray, span, e.Arrays.Allocate(ExprArrayData{Elems: elems, Repeat: repeat}))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	return payloadOf(e, e.Arrays, id, ExprArray)
}

func (e *Exprs) NewRange(span source.Span, lo, hi ExprID, inclusive bool) ExprID {
	return e.new(ExprRange, span, e.Ranges.Allocate(ExprRangeData{Lo: lo, Hi: hi, Inclusive: inclusive}))
}

func (e *Exprs) Range(id ExprID) (*ExprRangeData, bool) {
	return payloadOf(e, e.Ranges, id, ExprRange)
}

func (e *Exprs) NewRef(span source.Span, data ExprRefData) ExprID {
	return e.new(ExprRef, span, e.Refs.Allocate(data))
}

func (e *Exprs) Ref(id ExprID) (*ExprRefData, bool) {
	return payloadOf(e, e.Refs, id, ExprRef)
}

func (e *Exprs) NewCast(span source.Span, x ExprID, ty TypeID) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(ExprCastData{X: x, Type: ty}))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	return payloadOf(e, e.Casts, id, ExprCast)
}

// NewWrap creates try, await or paren.
func (e *Exprs) NewWrap(kind ExprKind, span source.Span, x ExprID) ExprID {
	return e.new(kind, span, e.Wraps.Allocate(ExprWrapData{X: x}))
}

func (e *Exprs) Wrap(id ExprID) (*ExprWrapData, bool) {
	return payloadOf(e, e.Wraps, id, ExprTry, ExprAwait, ExprParen)
}

func (e *Exprs) NewMacro(span source.Span, data ExprMacroData) ExprID {
	return e.new(ExprMacro, span, e.Macros.Allocate(data))
}

func (e *Exprs) Macro(id ExprID) (*ExprMacroData, bool) {
	return payloadOf(e, e.Macros, id, ExprMacro)
}

func (e *Exprs) NewMatch(span source.Span, scrutinee ExprID, arms []MatchArm) ExprID {
	return e.new(ExprMatch, span, e.Matches.Allocate(ExprMatchData{Scrutinee: scrutinee, Arms: arms}))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	return payloadOf(e, e.Matches, id, ExprMatch)
}

func (e *Exprs) NewLet(span source.Span, pat PatID, value ExprID) ExprID {
	return e.new(ExprLet, span, e.Lets.Allocate(ExprLetData{Pat: pat, Value: value}))
}

func (e *Exprs) Let(id ExprID) (*ExprLetData, bool) {
	return payloadOf(e, e.Lets, id, ExprLet)
}

// IsBlockLike reports whether the expression ends with a block and can stand
// as a statement without a trailing semicolon.
func (e *Exprs) IsBlockLike(id ExprID) bool {
	expr := e.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ExprIf, ExprWhile, ExprFor, ExprLoop, ExprBlock, ExprMatch:
		return true
	case ExprMacro:
		m, _ := e.Macro(id)
		return m != nil && m.Delim == '{'
	}
	return false
}

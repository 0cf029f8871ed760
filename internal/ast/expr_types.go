package ast

import (
	"rscanon/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	ExprPath ExprKind = iota
	ExprLit
	ExprBinary
	ExprUnary
	ExprCall
	ExprMethodCall
	ExprField
	ExprIndex
	// ExprAssign - только простое '='; составные (+=) идут как ExprBinary.
	ExprAssign
	ExprIf
	ExprWhile
	ExprFor
	ExprLoop
	ExprBlock
	ExprReturn
	ExprBreak
	ExprContinue
	ExprClosure
	ExprStruct
	ExprTuple
	ExprArray
	ExprRange
	ExprRef
	ExprCast
	ExprTry
	ExprAwait
	ExprParen
	ExprMacro
	ExprMatch
	// ExprLet - `let PAT = EXPR` в условии if/while.
	ExprLet
)

var exprKindNames = [...]string{
	ExprPath: "path", ExprLit: "lit", ExprBinary: "binary", ExprUnary: "unary", ExprCall: "call",
	ExprMethodCall: "method_call", ExprField: "field", ExprIndex: "index", ExprAssign: "assign",
	ExprIf: "if", ExprWhile: "while", ExprFor: "for", ExprLoop: "loop", ExprBlock: "block",
	ExprReturn: "return", ExprBreak: "break", ExprContinue: "continue", ExprClosure: "closure",
	ExprStruct: "struct", ExprTuple: "tuple", ExprArray: "array", ExprRange: "range", ExprRef: "ref",
	ExprCast: "cast", ExprTry: "try", ExprAwait: "await", ExprParen: "paren", ExprMacro: "macro",
	ExprMatch: "match", ExprLet: "let",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "expr(?)"
}

// Expr represents an expression node in the tree.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp enumerates binary and compound-assignment operators.
type BinaryOp uint8

const (
	// Арифметические
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem

	// Логические
	BinAnd
	BinOr

	// Битовые
	BinBitXor
	BinBitAnd
	BinBitOr
	BinShl
	BinShr

	// Сравнения
	BinEq
	BinLt
	BinLe
	BinNe
	BinGe
	BinGt

	// Составное присваивание
	BinAddAssign
	BinSubAssign
	BinMulAssign
	BinDivAssign
	BinRemAssign
	BinBitXorAssign
	BinBitAndAssign
	BinBitOrAssign
	BinShlAssign
	BinShrAssign
)

var binaryOpText = [...]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinRem: "%",
	BinAnd: "&&", BinOr: "||",
	BinBitXor: "^", BinBitAnd: "&", BinBitOr: "|", BinShl: "<<", BinShr: ">>",
	BinEq: "==", BinLt: "<", BinLe: "<=", BinNe: "!=", BinGe: ">=", BinGt: ">",
	BinAddAssign: "+=", BinSubAssign: "-=", BinMulAssign: "*=", BinDivAssign: "/=",
	BinRemAssign: "%=", BinBitXorAssign: "^=", BinBitAndAssign: "&=", BinBitOrAssign: "|=",
	BinShlAssign: "<<=", BinShrAssign: ">>=",
}

// String returns the operator spelling.
func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

func (op BinaryOp) IsCompoundAssign() bool {
	return op >= BinAddAssign && op <= BinShrAssign
}

type UnaryOp uint8

const (
	UnaryDeref UnaryOp = iota // *
	UnaryNot                  // !
	UnaryNeg                  // -
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryDeref:
		return "*"
	case UnaryNot:
		return "!"
	case UnaryNeg:
		return "-"
	}
	return "?"
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitChar
	LitBool
)

type BlockFlavor uint8

const (
	BlockPlain BlockFlavor = iota
	BlockUnsafe
	BlockAsync
	BlockConst
)

type ExprPathData struct {
	Path Path
}

// ExprLitData хранит литерал в точности как в исходнике.
type ExprLitData struct {
	Kind LitKind
	Raw  source.StringID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op UnaryOp
	X  ExprID
}

type ExprCallData struct {
	Fn   ExprID
	Args []ExprID
}

type ExprMethodCallData struct {
	Receiver  ExprID
	Method    source.StringID
	Turbofish []GenericArg
	Args      []ExprID
}

// ExprFieldData - x.name или x.0; имя поля кортежа хранится как "0".
type ExprFieldData struct {
	X    ExprID
	Name source.StringID
}

type ExprIndexData struct {
	X     ExprID
	Index ExprID
}

type ExprAssignData struct {
	Target ExprID
	Value  ExprID
}

type ExprIfData struct {
	Cond ExprID
	Then ExprID // ExprBlock
	Else ExprID // ExprBlock, ExprIf или NoExprID
}

type ExprWhileData struct {
	Label source.StringID
	Cond  ExprID
	Body  ExprID
}

type ExprForData struct {
	Label source.StringID
	Pat   PatID
	Iter  ExprID
	Body  ExprID
}

type ExprLoopData struct {
	Label source.StringID
	Body  ExprID
}

type ExprBlockData struct {
	Label  source.StringID
	Flavor BlockFlavor
	Stmts  []StmtID
}

// ExprJumpData используется для return, break и continue.
type ExprJumpData struct {
	Label source.StringID
	Value ExprID
}

type ClosureParam struct {
	Pat  PatID
	Type TypeID
}

type ExprClosureData struct {
	Move       bool
	Async      bool
	Params     []ClosureParam
	ReturnType TypeID
	Body       ExprID
}

type StructLitField struct {
	Name  source.StringID
	Value ExprID // для shorthand `S { x }` это путь x
}

type ExprStructData struct {
	Path   Path
	Fields []StructLitField
	Rest   ExprID // ..base
}

type ExprTupleData struct {
	Elems []ExprID
}

// ExprArrayData - [a, b] или [x; N] (Repeat != NoExprID).
type ExprArrayData struct {
	Elems  []ExprID
	Repeat ExprID
}

type ExprRangeData struct {
	Lo        ExprID
	Hi        ExprID
	Inclusive bool
}

type ExprRefData struct {
	Mut bool
	Raw bool // &raw const / &raw mut
	X   ExprID
}

type ExprCastData struct {
	X    ExprID
	Type TypeID
}

// ExprWrapData - обёртка над одним выражением: ?, .await, (x).
type ExprWrapData struct {
	X ExprID
}

// ExprMacroData - вызов макроса; токены тела сохраняются сырым текстом.
type ExprMacroData struct {
	Path   Path
	Delim  byte // '(', '[' или '{'
	Tokens string
}

type MatchArm struct {
	Pat   PatID
	Guard ExprID
	Body  ExprID
}

type ExprMatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

type ExprLetData struct {
	Pat   PatID
	Value ExprID
}

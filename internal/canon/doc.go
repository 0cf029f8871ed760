// Package canon описывает канонический документ: закрытый набор
// объявлений, инструкций и выражений с тегом "type".
package canon

// SchemaVersion - версия проводной схемы документа.
const SchemaVersion = 1

// Document - результат нормализации одного файла.
type Document struct {
	Items []Decl
}

// Decl - struct, impl или function.
type Decl interface {
	declTag() string
}

// Stmt - let, assign, if, for, while, return или expr.
type Stmt interface {
	stmtTag() string
}

// Expr - binary, ident, literal или call.
type Expr interface {
	exprTag() string
}

// Declaration tags.
const (
	TagStruct   = "struct"
	TagImpl     = "impl"
	TagFunction = "function"
)

// Statement tags.
const (
	TagLet    = "let"
	TagAssign = "assign"
	TagIf     = "if"
	TagFor    = "for"
	TagWhile  = "while"
	TagReturn = "return"
	TagExpr   = "expr"
)

// Expression tags.
const (
	TagBinary  = "binary"
	TagIdent   = "ident"
	TagLiteral = "literal"
	TagCall    = "call"
)

// Unknown - имя-заглушка для всего, что схема не моделирует.
const Unknown = "unknown"

type Field struct {
	Name string
	Type string
}

type Param struct {
	Name string
	Type string
}

// Function - общая часть свободной функции и метода.
type Function struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       []Stmt
}

type StructDecl struct {
	Name   string
	Fields []Field
}

// ImplDecl никогда не создаётся с пустым Methods.
type ImplDecl struct {
	Target  string
	Methods []Function
}

type FunctionDecl struct {
	Function
}

func (*StructDecl) declTag() string   { return TagStruct }
func (*ImplDecl) declTag() string     { return TagImpl }
func (*FunctionDecl) declTag() string { return TagFunction }

// LetStmt: Value == nil, если инициализатора нет.
type LetStmt struct {
	Name  string
	Value Expr
}

type AssignStmt struct {
	Target string
	Value  Expr
}

// IfStmt: Else == nil, когда ветки нет (или это else if).
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	// HasElse отличает пустой else {} от отсутствующего.
	HasElse bool
}

type ForStmt struct {
	Iterator string
	Iterable Expr
	Body     []Stmt
}

type WhileStmt struct {
	Cond Expr
	Body []Stmt
}

type ReturnStmt struct {
	Value Expr
}

type ExprStmt struct {
	Expr Expr
}

func (*LetStmt) stmtTag() string    { return TagLet }
func (*AssignStmt) stmtTag() string { return TagAssign }
func (*IfStmt) stmtTag() string     { return TagIf }
func (*ForStmt) stmtTag() string    { return TagFor }
func (*WhileStmt) stmtTag() string  { return TagWhile }
func (*ReturnStmt) stmtTag() string { return TagReturn }
func (*ExprStmt) stmtTag() string   { return TagExpr }

type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

type Ident struct {
	Name string
}

type Literal struct {
	Value string
}

type Call struct {
	Function string
	Args     []Expr
}

func (*Binary) exprTag() string  { return TagBinary }
func (*Ident) exprTag() string   { return TagIdent }
func (*Literal) exprTag() string { return TagLiteral }
func (*Call) exprTag() string    { return TagCall }

// UnknownExpr - ident{name:"unknown"}.
func UnknownExpr() Expr {
	return &Ident{Name: Unknown}
}

// DeclTags, StmtTags и ExprTags - допустимые значения тега по уровням.
var (
	DeclTags = []string{TagStruct, TagImpl, TagFunction}
	StmtTags = []string{TagLet, TagAssign, TagIf, TagFor, TagWhile, TagReturn, TagExpr}
	ExprTags = []string{TagBinary, TagIdent, TagLiteral, TagCall}
)

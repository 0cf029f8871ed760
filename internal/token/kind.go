package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	Lifetime // 'a

	// keywords
	KwAs
	KwAsync
	KwAwait
	KwBreak
	KwConst
	KwContinue
	KwCrate
	KwDyn
	KwElse
	KwEnum
	KwExtern
	KwFalse
	KwFn
	KwFor
	KwIf
	KwImpl
	KwIn
	KwLet
	KwLoop
	KwMatch
	KwMod
	KwMove
	KwMut
	KwPub
	KwRef
	KwReturn
	KwSelfValue // self
	KwSelfType  // Self
	KwStatic
	KwStruct
	KwSuper
	KwTrait
	KwTrue
	KwType
	KwUnsafe
	KwUse
	KwWhere
	KwWhile

	// literals
	IntLit
	FloatLit
	StrLit  // "..", r#".."#, b"..", c".."
	CharLit // 'c', b'c'

	// operators and punctuation
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Caret     // ^
	Bang      // !
	Amp       // &
	Pipe      // |
	AndAnd    // &&
	OrOr      // ||
	Shl       // <<
	Shr       // >>
	PlusEq    // +=
	MinusEq   // -=
	StarEq    // *=
	SlashEq   // /=
	PercentEq // %=
	CaretEq   // ^=
	AmpEq     // &=
	PipeEq    // |=
	ShlEq     // <<=
	ShrEq     // >>=
	Assign    // =
	EqEq      // ==
	BangEq    // !=
	Gt        // >
	Lt        // <
	GtEq      // >=
	LtEq      // <=
	At        // @
	Underscore
	Dot       // .
	DotDot    // ..
	DotDotDot // ...
	DotDotEq  // ..=
	Comma     // ,
	Semicolon // ;
	Colon     // :
	PathSep   // ::
	Arrow     // ->
	FatArrow  // =>
	Pound     // #
	Dollar    // $
	Question  // ?
	Tilde     // ~
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident", Lifetime: "Lifetime",
	KwAs: "as", KwAsync: "async", KwAwait: "await", KwBreak: "break", KwConst: "const",
	KwContinue: "continue", KwCrate: "crate", KwDyn: "dyn", KwElse: "else", KwEnum: "enum",
	KwExtern: "extern", KwFalse: "false", KwFn: "fn", KwFor: "for", KwIf: "if", KwImpl: "impl",
	KwIn: "in", KwLet: "let", KwLoop: "loop", KwMatch: "match", KwMod: "mod", KwMove: "move",
	KwMut: "mut", KwPub: "pub", KwRef: "ref", KwReturn: "return", KwSelfValue: "self",
	KwSelfType: "Self", KwStatic: "static", KwStruct: "struct", KwSuper: "super", KwTrait: "trait",
	KwTrue: "true", KwType: "type", KwUnsafe: "unsafe", KwUse: "use", KwWhere: "where", KwWhile: "while",
	IntLit: "IntLit", FloatLit: "FloatLit", StrLit: "StrLit", CharLit: "CharLit",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Caret: "^", Bang: "!",
	Amp: "&", Pipe: "|", AndAnd: "&&", OrOr: "||", Shl: "<<", Shr: ">>",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=", CaretEq: "^=",
	AmpEq: "&=", PipeEq: "|=", ShlEq: "<<=", ShrEq: ">>=", Assign: "=", EqEq: "==", BangEq: "!=",
	Gt: ">", Lt: "<", GtEq: ">=", LtEq: "<=", At: "@", Underscore: "_", Dot: ".", DotDot: "..",
	DotDotDot: "...", DotDotEq: "..=", Comma: ",", Semicolon: ";", Colon: ":", PathSep: "::",
	Arrow: "->", FatArrow: "=>", Pound: "#", Dollar: "$", Question: "?", Tilde: "~",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a strict keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwAs && k <= KwWhile
}

// IsLiteral reports whether k is a literal kind (bool keywords excluded).
func (k Kind) IsLiteral() bool {
	return k >= IntLit && k <= CharLit
}

// IsCompoundAssign reports whether k is an operator-assignment such as +=.
func (k Kind) IsCompoundAssign() bool {
	return k >= PlusEq && k <= ShrEq
}

// IsOpen reports whether k opens a delimited group.
func (k Kind) IsOpen() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsClose reports whether k closes a delimited group.
func (k Kind) IsClose() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closer returns the closing delimiter for an opening one.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	}
	return Invalid
}

package ast

import "rscanon/internal/source"

type PatKind uint8

const (
	PatIdent  PatKind = iota // [ref] [mut] name [@ sub]
	PatWild                  // _
	PatRest                  // ..
	PatTuple                 // (a, b)
	PatPath                  // None, Some(x), Point(x, y)
	PatStruct                // Point { x, y: py, .. }
	PatRef                   // &p, &mut p
	PatLit                   // 1, "s", -1
	PatRange                 // 1..=5
	PatOr                    // a | b
	PatSlice                 // [a, b, ..]
)

type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

type PatIdentData struct {
	Name source.StringID
	Mut  bool
	Ref  bool
	Sub  PatID
}

// PatListData используется для tuple, slice и or паттернов.
type PatListData struct {
	Elems []PatID
}

// PatPathData - путь, опционально с tuple-полями: Some(x).
type PatPathData struct {
	Path  Path
	Tuple bool
	Elems []PatID
}

type PatField struct {
	Name source.StringID
	Pat  PatID
}

type PatStructData struct {
	Path   Path
	Fields []PatField
	Rest   bool
}

type PatRefData struct {
	Mut bool
	X   PatID
}

// PatLitData хранит литерал или границы диапазона в виде выражений.
type PatLitData struct {
	Lo        ExprID
	Hi        ExprID
	Inclusive bool
}

type Pats struct {
	Arena   *Arena[Pat]
	Idents  *Arena[PatIdentData]
	Lists   *Arena[PatListData]
	Paths   *Arena[PatPathData]
	Structs *Arena[PatStructData]
	Refs    *Arena[PatRefData]
	Lits    *Arena[PatLitData]
}

func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Pats{
		Arena:   NewArena[Pat](capHint),
		Idents:  NewArena[PatIdentData](capHint),
		Lists:   NewArena[PatListData](capHint / 4),
		Paths:   NewArena[PatPathData](capHint / 4),
		Structs: NewArena[PatStructData](capHint / 8),
		Refs:    NewArena[PatRefData](capHint / 8),
		Lits:    NewArena[PatLitData](capHint / 8),
	}
}

func (p *Pats) new(kind PatKind, span source.Span, payload uint32) PatID {
	return PatID(p.Arena.Allocate(Pat{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

func (p *Pats) NewIdent(span source.Span, data PatIdentData) PatID {
	return p.new(PatIdent, span, p.Idents.Allocate(data))
}

func (p *Pats) Ident(id PatID) (*PatIdentData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatIdent {
		return nil, false
	}
	return p.Idents.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewWild(span source.Span) PatID {
	return p.new(PatWild, span, 0)
}

func (p *Pats) NewRest(span source.Span) PatID {
	return p.new(PatRest, span, 0)
}

// NewList creates tuple, slice or or-patterns.
func (p *Pats) NewList(kind PatKind, span source.Span, elems []PatID) PatID {
	return p.new(kind, span, p.Lists.Allocate(PatListData{Elems: elems}))
}

func (p *Pats) List(id PatID) (*PatListData, bool) {
	pat := p.Get(id)
	if pat == nil || (pat.Kind != PatTuple && pat.Kind != PatSlice && pat.Kind != PatOr) {
		return nil, false
	}
	return p.Lists.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewPath(span source.Span, data PatPathData) PatID {
	return p.new(PatPath, span, p.Paths.Allocate(data))
}

func (p *Pats) Path(id PatID) (*PatPathData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatPath {
		return nil, false
	}
	return p.Paths.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewStruct(span source.Span, data PatStructData) PatID {
	return p.new(PatStruct, span, p.Structs.Allocate(data))
}

func (p *Pats) Struct(id PatID) (*PatStructData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatStruct {
		return nil, false
	}
	return p.Structs.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewRef(span source.Span, mut bool, x PatID) PatID {
	return p.new(PatRef, span, p.Refs.Allocate(PatRefData{Mut: mut, X: x}))
}

func (p *Pats) Ref(id PatID) (*PatRefData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatRef {
		return nil, false
	}
	return p.Refs.Get(uint32(pat.Payload)), true
}

// NewLit creates a literal pattern, or a range pattern when kind is PatRange.
func (p *Pats) NewLit(kind PatKind, span source.Span, data PatLitData) PatID {
	return p.new(kind, span, p.Lits.Allocate(data))
}

func (p *Pats) Lit(id PatID) (*PatLitData, bool) {
	pat := p.Get(id)
	if pat == nil || (pat.Kind != PatLit && pat.Kind != PatRange) {
		return nil, false
	}
	return p.Lits.Get(uint32(pat.Payload)), true
}

package ast

import (
	"rscanon/internal/source"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	// StmtExpr - выражение; Semi отличает `x;` от хвостового `x`.
	StmtExpr
	StmtItem
	StmtMacro
	StmtEmpty
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type LetStmt struct {
	Pat  PatID
	Type TypeID
	Init ExprID
	Else ExprID // let ... else { ... }
}

type ExprStmt struct {
	Expr ExprID
	Semi bool
}

type ItemStmt struct {
	Item ItemID
}

// MacroStmt - макрос в позиции инструкции (println!(...);).
type MacroStmt struct {
	Macro ExprID
	Semi  bool
}

type Stmts struct {
	Arena  *Arena[Stmt]
	Lets   *Arena[LetStmt]
	Exprs  *Arena[ExprStmt]
	Items  *Arena[ItemStmt]
	Macros *Arena[MacroStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:  NewArena[Stmt](capHint),
		Lets:   NewArena[LetStmt](capHint / 2),
		Exprs:  NewArena[ExprStmt](capHint),
		Items:  NewArena[ItemStmt](0),
		Macros: NewArena[MacroStmt](capHint / 4),
	}
}

func (s *Stmts) New(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewLet(span source.Span, let LetStmt) StmtID {
	return s.New(StmtLet, span, PayloadID(s.Lets.Allocate(let)))
}

func (s *Stmts) Let(id StmtID) *LetStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil
	}
	return s.Lets.Get(uint32(st.Payload))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID, semi bool) StmtID {
	return s.New(StmtExpr, span, PayloadID(s.Exprs.Allocate(ExprStmt{Expr: expr, Semi: semi})))
}

func (s *Stmts) Expr(id StmtID) *ExprStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil
	}
	return s.Exprs.Get(uint32(st.Payload))
}

func (s *Stmts) NewItem(span source.Span, item ItemID) StmtID {
	return s.New(StmtItem, span, PayloadID(s.Items.Allocate(ItemStmt{Item: item})))
}

func (s *Stmts) Item(id StmtID) *ItemStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtItem {
		return nil
	}
	return s.Items.Get(uint32(st.Payload))
}

func (s *Stmts) NewMacro(span source.Span, macro ExprID, semi bool) StmtID {
	return s.New(StmtMacro, span, PayloadID(s.Macros.Allocate(MacroStmt{Macro: macro, Semi: semi})))
}

func (s *Stmts) Macro(id StmtID) *MacroStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtMacro {
		return nil
	}
	return s.Macros.Get(uint32(st.Payload))
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.New(StmtEmpty, span, NoPayloadID)
}

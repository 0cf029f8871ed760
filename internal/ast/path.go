package ast

import "rscanon/internal/source"

// Path - путь вида a::b::<T>::c, общий для выражений, типов и паттернов.
type Path struct {
	Global   bool // ведущий ::
	Segments []PathSegment
	Span     source.Span
}

type PathSegment struct {
	Name source.StringID
	Args []GenericArg
	// Parenthesized marks Fn(A, B) -> R sugar; Inputs and Output are used instead of Args.
	Parenthesized bool
	Inputs        []TypeID
	Output        TypeID
}

type GenericArgKind uint8

const (
	GenericArgType GenericArgKind = iota
	GenericArgLifetime
	GenericArgConst
	GenericArgBinding // Item = T
)

type GenericArg struct {
	Kind     GenericArgKind
	Type     TypeID
	Lifetime source.StringID
	Const    ExprID
	Name     source.StringID // для GenericArgBinding
}

// HasArgs reports whether any segment carries generic or parenthesized arguments.
func (p *Path) HasArgs() bool {
	for i := range p.Segments {
		if len(p.Segments[i].Args) > 0 || p.Segments[i].Parenthesized {
			return true
		}
	}
	return false
}

// IsSingle reports whether the path is a plain one-segment name without arguments.
func (p *Path) IsSingle() bool {
	return !p.Global && len(p.Segments) == 1 && !p.HasArgs()
}

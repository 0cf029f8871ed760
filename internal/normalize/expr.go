package normalize

import (
	"strings"

	"rscanon/internal/ast"
	"rscanon/internal/canon"
)

// binaryOps - исчерпывающая таблица канонических операторов;
// всё остальное (%, битовые, сдвиги, составные присваивания) - "unknown".
var binaryOps = map[ast.BinaryOp]string{
	ast.BinAdd: "+",
	ast.BinSub: "-",
	ast.BinMul: "*",
	ast.BinDiv: "/",
	ast.BinEq:  "==",
	ast.BinNe:  "!=",
	ast.BinLt:  "<",
	ast.BinGt:  ">",
	ast.BinLe:  "<=",
	ast.BinGe:  ">=",
	ast.BinAnd: "&&",
	ast.BinOr:  "||",
}

// OpSpelling возвращает каноническое написание оператора или "unknown".
func OpSpelling(op ast.BinaryOp) string {
	if s, ok := binaryOps[op]; ok {
		return s
	}
	return canon.Unknown
}

func (n *normalizer) expr(id ast.ExprID) canon.Expr {
	exprs := n.b.Exprs
	switch exprs.Get(id).Kind {
	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		op, ok := binaryOps[data.Op]
		if !ok {
			n.stats.UnknownOps++
			op = canon.Unknown
		}
		return &canon.Binary{Op: op, Left: n.expr(data.Left), Right: n.expr(data.Right)}

	case ast.ExprPath:
		data, _ := exprs.Path(id)
		return &canon.Ident{Name: n.pathJoin(&data.Path)}

	case ast.ExprLit:
		data, _ := exprs.Literal(id)
		return &canon.Literal{Value: n.b.Name(data.Raw)}

	case ast.ExprCall:
		data, _ := exprs.Call(id)
		out := &canon.Call{Function: n.callee(data.Fn), Args: make([]canon.Expr, 0, len(data.Args))}
		for _, arg := range data.Args {
			out.Args = append(out.Args, n.expr(arg))
		}
		return out
	}
	n.stats.UnknownExprs++
	return canon.UnknownExpr()
}

// callee: путь склеивается через ::, иное выражение рендерится текстом.
func (n *normalizer) callee(id ast.ExprID) string {
	if data, ok := n.b.Exprs.Path(id); ok {
		return n.pathJoin(&data.Path)
	}
	return n.exprText(id)
}

// pathJoin склеивает имена сегментов через ::, generic-аргументы и ведущий :: отбрасываются.
func (n *normalizer) pathJoin(p *ast.Path) string {
	if len(p.Segments) == 1 {
		return n.b.Name(p.Segments[0].Name)
	}
	names := make([]string, len(p.Segments))
	for i := range p.Segments {
		names[i] = n.b.Name(p.Segments[i].Name)
	}
	return strings.Join(names, "::")
}

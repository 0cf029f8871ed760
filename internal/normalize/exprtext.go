package normalize

import (
	"strings"

	"rscanon/internal/ast"
	"rscanon/internal/canon"
)

// exprText - компактная текстовая форма выражения для целей присваивания
// и вызываемых не-путей: self.count, items[0], (*p).x, get().
func (n *normalizer) exprText(id ast.ExprID) string {
	var sb strings.Builder
	if !n.writeExpr(&sb, id) {
		return canon.Unknown
	}
	return sb.String()
}

// writeExpr возвращает false, если встретился вид, который текстом не моделируется.
func (n *normalizer) writeExpr(sb *strings.Builder, id ast.ExprID) bool {
	exprs := n.b.Exprs
	e := exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprPath:
		data, _ := exprs.Path(id)
		sb.WriteString(n.pathJoin(&data.Path))
	case ast.ExprLit:
		data, _ := exprs.Literal(id)
		sb.WriteString(n.b.Name(data.Raw))
	case ast.ExprField:
		data, _ := exprs.Field(id)
		if !n.writeExpr(sb, data.X) {
			return false
		}
		sb.WriteByte('.')
		sb.WriteString(n.b.Name(data.Name))
	case ast.ExprIndex:
		data, _ := exprs.Index(id)
		if !n.writeExpr(sb, data.X) {
			return false
		}
		sb.WriteByte('[')
		if !n.writeExpr(sb, data.Index) {
			return false
		}
		sb.WriteByte(']')
	case ast.ExprUnary:
		data, _ := exprs.Unary(id)
		sb.WriteString(data.Op.String())
		return n.writeExpr(sb, data.X)
	case ast.ExprRef:
		data, _ := exprs.Ref(id)
		sb.WriteByte('&')
		if data.Mut {
			sb.WriteString("mut ")
		}
		return n.writeExpr(sb, data.X)
	case ast.ExprParen:
		data, _ := exprs.Wrap(id)
		sb.WriteByte('(')
		if !n.writeExpr(sb, data.X) {
			return false
		}
		sb.WriteByte(')')
	case ast.ExprTry:
		data, _ := exprs.Wrap(id)
		if !n.writeExpr(sb, data.X) {
			return false
		}
		sb.WriteByte('?')
	case ast.ExprAwait:
		data, _ := exprs.Wrap(id)
		if !n.writeExpr(sb, data.X) {
			return false
		}
		sb.WriteString(".await")
	case ast.ExprCall:
		data, _ := exprs.Call(id)
		if !n.writeExpr(sb, data.Fn) {
			return false
		}
		return n.writeArgs(sb, data.Args)
	case ast.ExprMethodCall:
		data, _ := exprs.MethodCall(id)
		if !n.writeExpr(sb, data.Receiver) {
			return false
		}
		sb.WriteByte('.')
		sb.WriteString(n.b.Name(data.Method))
		return n.writeArgs(sb, data.Args)
	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		if !n.writeExpr(sb, data.Left) {
			return false
		}
		sb.WriteString(" " + data.Op.String() + " ")
		return n.writeExpr(sb, data.Right)
	case ast.ExprTuple:
		data, _ := exprs.Tuple(id)
		// (x,) остаётся кортежем
		return n.writeList(sb, data.Elems, len(data.Elems) == 1)
	case ast.ExprCast:
		data, _ := exprs.Cast(id)
		if !n.writeExpr(sb, data.X) {
			return false
		}
		sb.WriteString(" as ")
		sb.WriteString(n.typeText(data.Type))
	case ast.ExprMacro:
		data, _ := exprs.Macro(id)
		sb.WriteString(n.pathJoin(&data.Path))
		sb.WriteByte('!')
		sb.WriteByte(data.Delim)
		sb.WriteString(data.Tokens)
		sb.WriteByte(closerOf(data.Delim))
	default:
		return false
	}
	return true
}

func (n *normalizer) writeArgs(sb *strings.Builder, args []ast.ExprID) bool {
	return n.writeList(sb, args, false)
}

func (n *normalizer) writeList(sb *strings.Builder, args []ast.ExprID, trailingComma bool) bool {
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if !n.writeExpr(sb, a) {
			return false
		}
	}
	if trailingComma {
		sb.WriteByte(',')
	}
	sb.WriteByte(')')
	return true
}

func closerOf(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	}
	return '}'
}

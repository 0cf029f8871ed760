package normalize

import (
	"strings"

	"rscanon/internal/ast"
	"rscanon/internal/canon"
	"rscanon/internal/source"
)

// typeText - каноническое написание типа: Vec<String>, &'a mut T, [u8; 4], fn(i32) -> bool.
// Никогда не падает; немоделируемые узлы дают "unknown".
func (n *normalizer) typeText(id ast.TypeID) string {
	var sb strings.Builder
	if !n.writeType(&sb, id) {
		n.stats.UnknownTypes++
		return canon.Unknown
	}
	return sb.String()
}

func (n *normalizer) writeType(sb *strings.Builder, id ast.TypeID) bool {
	types := n.b.Types
	ty := types.Get(id)
	if ty == nil {
		return false
	}
	switch ty.Kind {
	case ast.TypePath:
		data, _ := types.Path(id)
		return n.writeTypePath(sb, &data.Path)

	case ast.TypeRef:
		data, _ := types.Ref(id)
		sb.WriteByte('&')
		if data.Lifetime != source.NoStringID {
			sb.WriteString(n.b.Name(data.Lifetime))
			sb.WriteByte(' ')
		}
		if data.Mut {
			sb.WriteString("mut ")
		}
		return n.writeType(sb, data.Elem)

	case ast.TypePtr:
		data, _ := types.Ref(id)
		if data.Mut {
			sb.WriteString("*mut ")
		} else {
			sb.WriteString("*const ")
		}
		return n.writeType(sb, data.Elem)

	case ast.TypeSlice, ast.TypeArray:
		data, _ := types.Array(id)
		sb.WriteByte('[')
		if !n.writeType(sb, data.Elem) {
			return false
		}
		if ty.Kind == ast.TypeArray {
			sb.WriteString("; ")
			sb.WriteString(n.exprText(data.Len))
		}
		sb.WriteByte(']')

	case ast.TypeTuple:
		data, _ := types.Tuple(id)
		sb.WriteByte('(')
		if !n.writeTypeList(sb, data.Elems) {
			return false
		}
		if len(data.Elems) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')

	case ast.TypeFn:
		data, _ := types.Fn(id)
		if data.Unsafe {
			sb.WriteString("unsafe ")
		}
		sb.WriteString("fn(")
		if !n.writeTypeList(sb, data.Params) {
			return false
		}
		sb.WriteByte(')')
		if data.Result.IsValid() {
			sb.WriteString(" -> ")
			return n.writeType(sb, data.Result)
		}

	case ast.TypeImpl, ast.TypeDyn:
		data, _ := types.BoundList(id)
		switch {
		case ty.Kind == ast.TypeImpl:
			sb.WriteString("impl ")
		case !data.Bare:
			sb.WriteString("dyn ")
		}
		return n.writeBounds(sb, data.Bounds)

	case ast.TypeNever:
		sb.WriteByte('!')
	case ast.TypeInfer:
		sb.WriteByte('_')
	default:
		// TypeMacro, TypeUnknown
		return false
	}
	return true
}

func (n *normalizer) writeTypePath(sb *strings.Builder, p *ast.Path) bool {
	if p.Global {
		sb.WriteString("::")
	}
	for i := range p.Segments {
		seg := &p.Segments[i]
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(n.b.Name(seg.Name))
		switch {
		case seg.Parenthesized:
			sb.WriteByte('(')
			if !n.writeTypeList(sb, seg.Inputs) {
				return false
			}
			sb.WriteByte(')')
			if seg.Output.IsValid() {
				sb.WriteString(" -> ")
				if !n.writeType(sb, seg.Output) {
					return false
				}
			}
		case len(seg.Args) > 0:
			sb.WriteByte('<')
			for j := range seg.Args {
				if j > 0 {
					sb.WriteString(", ")
				}
				if !n.writeGenericArg(sb, &seg.Args[j]) {
					return false
				}
			}
			sb.WriteByte('>')
		}
	}
	return true
}

func (n *normalizer) writeGenericArg(sb *strings.Builder, arg *ast.GenericArg) bool {
	switch arg.Kind {
	case ast.GenericArgLifetime:
		sb.WriteString(n.b.Name(arg.Lifetime))
	case ast.GenericArgConst:
		sb.WriteString(n.exprText(arg.Const))
	case ast.GenericArgBinding:
		sb.WriteString(n.b.Name(arg.Name))
		sb.WriteString(" = ")
		return n.writeType(sb, arg.Type)
	default:
		return n.writeType(sb, arg.Type)
	}
	return true
}

func (n *normalizer) writeTypeList(sb *strings.Builder, ids []ast.TypeID) bool {
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		if !n.writeType(sb, id) {
			return false
		}
	}
	return true
}

func (n *normalizer) writeBounds(sb *strings.Builder, bounds []ast.Bound) bool {
	for i := range bounds {
		b := &bounds[i]
		if i > 0 {
			sb.WriteString(" + ")
		}
		switch {
		case b.Lifetime != source.NoStringID:
			sb.WriteString(n.b.Name(b.Lifetime))
		default:
			if b.Maybe {
				sb.WriteByte('?')
			}
			if !n.writeType(sb, b.Type) {
				return false
			}
		}
	}
	return true
}

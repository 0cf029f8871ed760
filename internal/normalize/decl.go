package normalize

import (
	"rscanon/internal/ast"
	"rscanon/internal/canon"
)

// unitType - return_type функции без явного типа.
const unitType = "()"

func (n *normalizer) item(id ast.ItemID) (canon.Decl, bool) {
	items := n.b.Items
	switch items.Get(id).Kind {
	case ast.ItemStruct:
		st, _ := items.Struct(id)
		return n.structDecl(st), true
	case ast.ItemImpl:
		impl, _ := items.Impl(id)
		return n.implDecl(impl)
	case ast.ItemFn:
		fn, _ := items.Fn(id)
		return &canon.FunctionDecl{Function: n.function(fn)}, true
	}
	n.stats.DroppedItems++
	return nil, false
}

// structDecl: поля только у struct с именованными полями.
func (n *normalizer) structDecl(st *ast.StructItem) *canon.StructDecl {
	decl := &canon.StructDecl{Name: n.b.Name(st.Name), Fields: make([]canon.Field, 0, len(st.Fields))}
	if st.Shape != ast.StructNamed {
		return decl
	}
	for _, fid := range st.Fields {
		field := n.b.Items.Field(fid)
		decl.Fields = append(decl.Fields, canon.Field{
			Name: n.b.Name(field.Name),
			Type: n.typeText(field.Type),
		})
	}
	return decl
}

// implDecl отбрасывает impl, в котором не осталось ни одного метода.
func (n *normalizer) implDecl(impl *ast.ImplItem) (canon.Decl, bool) {
	methods := make([]canon.Function, 0, len(impl.Members))
	for _, member := range impl.Members {
		fn, ok := n.b.Items.Fn(member)
		if !ok {
			continue
		}
		methods = append(methods, n.function(fn))
	}
	if len(methods) == 0 {
		n.stats.DroppedImpls++
		return nil, false
	}
	return &canon.ImplDecl{Target: n.typeText(impl.Target), Methods: methods}, true
}

func (n *normalizer) function(fn *ast.FnItem) canon.Function {
	out := canon.Function{
		Name:       n.b.Name(fn.Name),
		Params:     make([]canon.Param, 0, len(fn.Params)),
		ReturnType: unitType,
		Body:       make([]canon.Stmt, 0),
	}
	for _, pid := range fn.Params {
		param := n.b.Items.FnParam(pid)
		if param.Receiver {
			continue
		}
		name, ok := n.plainBinding(param.Pat)
		if !ok {
			n.stats.DroppedParams++
			continue
		}
		out.Params = append(out.Params, canon.Param{Name: name, Type: n.typeText(param.Type)})
	}
	if fn.ReturnType.IsValid() {
		out.ReturnType = n.typeText(fn.ReturnType)
	}
	if fn.Body.IsValid() {
		out.Body = n.block(fn.Body)
	}
	return out
}

// plainBinding возвращает имя простого паттерна-идентификатора (x, mut x, ref x, x @ p).
func (n *normalizer) plainBinding(id ast.PatID) (string, bool) {
	if !id.IsValid() {
		return "", false
	}
	ident, ok := n.b.Pats.Ident(id)
	if !ok {
		return "", false
	}
	return n.b.Name(ident.Name), true
}

package normalize

import (
	"rscanon/internal/ast"
	"rscanon/internal/canon"
)

const (
	unknownBinding = canon.Unknown // let с деструктуризацией
	loopBinding    = "it"          // for с деструктуризацией
)

// block нормализует инструкции блока в исходном порядке.
func (n *normalizer) block(id ast.ExprID) []canon.Stmt {
	out := make([]canon.Stmt, 0)
	blk, ok := n.b.Exprs.Block(id)
	if !ok {
		return out
	}
	for _, sid := range blk.Stmts {
		if st, ok := n.stmt(sid); ok {
			out = append(out, st)
		}
	}
	return out
}

func (n *normalizer) stmt(id ast.StmtID) (canon.Stmt, bool) {
	stmts := n.b.Stmts
	switch stmts.Get(id).Kind {
	case ast.StmtLet:
		return n.letStmt(stmts.Let(id)), true
	case ast.StmtExpr:
		return n.exprStmt(stmts.Expr(id).Expr), true
	case ast.StmtEmpty:
		return nil, false
	}
	// item и макро-инструкции
	n.stats.DroppedStmts++
	return nil, false
}

func (n *normalizer) letStmt(let *ast.LetStmt) canon.Stmt {
	name, ok := n.plainBinding(let.Pat)
	if !ok {
		n.stats.PlaceholderPat++
		name = unknownBinding
	}
	out := &canon.LetStmt{Name: name}
	if let.Init.IsValid() {
		out.Value = n.expr(let.Init)
	}
	return out
}

// exprStmt выбирает каноническую инструкцию по виду выражения;
// хвостовые выражения без ';' обрабатываются так же.
func (n *normalizer) exprStmt(id ast.ExprID) canon.Stmt {
	exprs := n.b.Exprs
	switch exprs.Get(id).Kind {
	case ast.ExprIf:
		data, _ := exprs.If(id)
		return n.ifStmt(data)

	case ast.ExprFor:
		data, _ := exprs.For(id)
		iterator, ok := n.plainBinding(data.Pat)
		if !ok {
			n.stats.PlaceholderPat++
			iterator = loopBinding
		}
		return &canon.ForStmt{Iterator: iterator, Iterable: n.expr(data.Iter), Body: n.block(data.Body)}

	case ast.ExprWhile:
		data, _ := exprs.While(id)
		return &canon.WhileStmt{Cond: n.expr(data.Cond), Body: n.block(data.Body)}

	case ast.ExprReturn:
		data, _ := exprs.Jump(id)
		out := &canon.ReturnStmt{}
		if data.Value.IsValid() {
			out.Value = n.expr(data.Value)
		}
		return out

	case ast.ExprAssign:
		data, _ := exprs.Assign(id)
		return &canon.AssignStmt{Target: n.exprText(data.Target), Value: n.expr(data.Value)}
	}
	return &canon.ExprStmt{Expr: n.expr(id)}
}

// ifStmt: else_body заполняется только для простого блока; else if не разворачивается.
func (n *normalizer) ifStmt(data *ast.ExprIfData) canon.Stmt {
	out := &canon.IfStmt{Cond: n.expr(data.Cond), Then: n.block(data.Then)}
	if !data.Else.IsValid() {
		return out
	}
	if _, ok := n.b.Exprs.Block(data.Else); ok {
		out.Else = n.block(data.Else)
		out.HasElse = true
		return out
	}
	n.stats.DroppedElseIf++
	return out
}

package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Unit:
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *BraceStmt:
		for _, el := range n.Elements {
			switch {
			case el.Expr != nil:
				Walk(el.Expr, fn)
			case el.Stmt != nil:
				Walk(el.Stmt, fn)
			case el.Decl != nil:
				Walk(el.Decl, fn)
			}
		}

	case *AssignStmt:
		Walk(n.Dest, fn)
		Walk(n.Src, fn)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, fn)
		}

	case *IfStmt:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *WhileStmt:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *VarDecl:
		if n.TypeRef != nil {
			Walk(n.TypeRef, fn)
		}
		if n.Init != nil {
			Walk(n.Init, fn)
		}

	case *SequenceExpr:
		for _, el := range n.Elements {
			Walk(el, fn)
		}

	case *InfixExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *CallExpr:
		Walk(n.Callee, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *FuncExpr:
		for _, param := range n.Params {
			Walk(param, fn)
		}
		if n.ResultRef != nil {
			Walk(n.ResultRef, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *ConvertExpr:
		Walk(n.Sub, fn)

	case *FuncTypeRef:
		for _, p := range n.Params {
			Walk(p, fn)
		}
		if n.Result != nil {
			Walk(n.Result, fn)
		}

	// Leaf nodes don't need traversal
	case *ErrorStmt, *SemiStmt, *Ident, *IntegerLit, *OperatorRef, *NamedTypeRef:
	}
}

// RewriteExprs walks every expression slot reachable from node. For each
// expression it calls pre before descending (returning false skips the
// subtree), then rewrites the child slots, then replaces the slot with the
// result of post. Replacement happens through the owning slot rather than
// through aliased pointers, so a rewritten child fully supersedes the
// original in its parent.
func RewriteExprs(node Node, pre func(Expr) bool, post func(Expr) Expr) {
	switch n := node.(type) {
	case *Unit:
		if n.Body != nil {
			RewriteExprs(n.Body, pre, post)
		}

	case *BraceStmt:
		for i := range n.Elements {
			el := &n.Elements[i]
			switch {
			case el.Expr != nil:
				el.Expr = rewriteExpr(el.Expr, pre, post)
			case el.Stmt != nil:
				RewriteExprs(el.Stmt, pre, post)
			case el.Decl != nil:
				RewriteExprs(el.Decl, pre, post)
			}
		}

	case *AssignStmt:
		n.Dest = rewriteExpr(n.Dest, pre, post)
		n.Src = rewriteExpr(n.Src, pre, post)

	case *ReturnStmt:
		if n.Result != nil {
			n.Result = rewriteExpr(n.Result, pre, post)
		}

	case *IfStmt:
		n.Cond = rewriteExpr(n.Cond, pre, post)
		RewriteExprs(n.Then, pre, post)
		if n.Else != nil {
			RewriteExprs(n.Else, pre, post)
		}

	case *WhileStmt:
		n.Cond = rewriteExpr(n.Cond, pre, post)
		RewriteExprs(n.Body, pre, post)

	case *VarDecl:
		if n.Init != nil {
			n.Init = rewriteExpr(n.Init, pre, post)
		}

	case *ErrorStmt, *SemiStmt:
		// No expression slots.
	}
}

func rewriteExpr(e Expr, pre func(Expr) bool, post func(Expr) Expr) Expr {
	if pre != nil && !pre(e) {
		return e
	}

	switch n := e.(type) {
	case *SequenceExpr:
		for i := range n.Elements {
			n.Elements[i] = rewriteExpr(n.Elements[i], pre, post)
		}

	case *InfixExpr:
		n.Left = rewriteExpr(n.Left, pre, post)
		n.Right = rewriteExpr(n.Right, pre, post)

	case *CallExpr:
		n.Callee = rewriteExpr(n.Callee, pre, post)
		for i := range n.Args {
			n.Args[i] = rewriteExpr(n.Args[i], pre, post)
		}

	case *FuncExpr:
		for _, param := range n.Params {
			RewriteExprs(param, pre, post)
		}
		if n.Body != nil {
			RewriteExprs(n.Body, pre, post)
		}

	case *ConvertExpr:
		n.Sub = rewriteExpr(n.Sub, pre, post)

	case *Ident, *IntegerLit, *OperatorRef:
		// Leaves.
	}

	if post != nil {
		return post(e)
	}
	return e
}

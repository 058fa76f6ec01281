package js_ast

// The lowering pass needs two whole-subtree questions answered: "is there
// any decorator in here at all" (the fast path gate) and "how many are
// left" (the post-condition check). Both are the same walk.

type decoratorScanner struct {
	count     int
	stopEarly bool
}

func (s *decoratorScanner) done() bool {
	return s.stopEarly && s.count > 0
}

func (s *decoratorScanner) visitDecorators(decorators []Expr) {
	s.count += len(decorators)
	for _, dec := range decorators {
		if s.done() {
			return
		}
		s.visitExpr(dec)
	}
}

func (s *decoratorScanner) visitStmts(stmts []Stmt) {
	for _, stmt := range stmts {
		if s.done() {
			return
		}
		s.visitStmt(stmt)
	}
}

func (s *decoratorScanner) visitStmt(stmt Stmt) {
	switch st := stmt.Data.(type) {
	case *SBlock:
		s.visitStmts(st.Stmts)

	case *SExportDefault:
		if st.Value.Expr != nil {
			s.visitExpr(*st.Value.Expr)
		} else if st.Value.Stmt != nil {
			s.visitStmt(*st.Value.Stmt)
		}

	case *SExpr:
		s.visitExpr(st.Value)

	case *SEnum:
		for _, value := range st.Values {
			if value.Value != nil {
				s.visitExpr(*value.Value)
			}
		}

	case *SFunction:
		s.visitFn(st.Fn)

	case *SClass:
		s.visitClass(st.Class)

	case *SIf:
		s.visitExpr(st.Test)
		s.visitStmt(st.Yes)
		if st.No != nil {
			s.visitStmt(*st.No)
		}

	case *SFor:
		if st.Init != nil {
			s.visitStmt(*st.Init)
		}
		if st.Test != nil {
			s.visitExpr(*st.Test)
		}
		if st.Update != nil {
			s.visitExpr(*st.Update)
		}
		s.visitStmt(st.Body)

	case *SWhile:
		s.visitExpr(st.Test)
		s.visitStmt(st.Body)

	case *SReturn:
		if st.Value != nil {
			s.visitExpr(*st.Value)
		}

	case *SThrow:
		s.visitExpr(st.Value)

	case *SLocal:
		for _, decl := range st.Decls {
			if decl.Value != nil {
				s.visitExpr(*decl.Value)
			}
		}
	}
}

func (s *decoratorScanner) visitExpr(expr Expr) {
	switch e := expr.Data.(type) {
	case *EArray:
		for _, item := range e.Items {
			s.visitExpr(item)
		}

	case *EUnary:
		s.visitExpr(e.Value)

	case *EBinary:
		s.visitExpr(e.Left)
		s.visitExpr(e.Right)

	case *ENew:
		s.visitExpr(e.Target)
		for _, arg := range e.Args {
			s.visitExpr(arg)
		}

	case *ECall:
		s.visitExpr(e.Target)
		for _, arg := range e.Args {
			s.visitExpr(arg)
		}

	case *EDot:
		s.visitExpr(e.Target)

	case *EIndex:
		s.visitExpr(e.Target)
		s.visitExpr(e.Index)

	case *EArrow:
		s.visitArgs(e.Args)
		s.visitStmts(e.Body.Stmts)

	case *EFunction:
		s.visitFn(e.Fn)

	case *EClass:
		s.visitClass(e.Class)

	case *EObject:
		for _, prop := range e.Properties {
			s.visitProperty(prop)
		}

	case *ESpread:
		s.visitExpr(e.Value)

	case *EIf:
		s.visitExpr(e.Test)
		s.visitExpr(e.Yes)
		s.visitExpr(e.No)
	}
}

func (s *decoratorScanner) visitArgs(args []Arg) {
	for _, arg := range args {
		s.visitDecorators(arg.Decorators)
		if arg.Default != nil {
			s.visitExpr(*arg.Default)
		}
	}
}

func (s *decoratorScanner) visitFn(fn Fn) {
	s.visitArgs(fn.Args)
	s.visitStmts(fn.Body.Stmts)
}

func (s *decoratorScanner) visitProperty(prop Property) {
	s.visitDecorators(prop.Decorators)
	s.visitExpr(prop.Key)
	if prop.Value != nil {
		s.visitExpr(*prop.Value)
	}
	if prop.Initializer != nil {
		s.visitExpr(*prop.Initializer)
	}
}

func (s *decoratorScanner) visitClass(class Class) {
	s.visitDecorators(class.Decorators)
	if class.Extends != nil {
		s.visitExpr(*class.Extends)
	}
	for _, prop := range class.Properties {
		s.visitProperty(prop)
	}
}

// ContainsDecorators reports whether any node in the subtree carries a
// non-empty decorator list. This is the gate for the lowering fast path.
func ContainsDecorators(stmts []Stmt) bool {
	s := decoratorScanner{stopEarly: true}
	s.visitStmts(stmts)
	return s.count > 0
}

// StmtContainsDecorators is ContainsDecorators for a single statement
func StmtContainsDecorators(stmt Stmt) bool {
	s := decoratorScanner{stopEarly: true}
	s.visitStmt(stmt)
	return s.count > 0
}

// ClassContainsDecorators reports whether the class itself, any member, or
// any member's parameters carry decorators
func ClassContainsDecorators(class Class) bool {
	s := decoratorScanner{stopEarly: true}
	s.visitDecorators(class.Decorators)
	if s.count > 0 {
		return true
	}
	for _, prop := range class.Properties {
		s.visitDecorators(prop.Decorators)
		if s.count > 0 {
			return true
		}
		if prop.Value != nil {
			if fn, ok := prop.Value.Data.(*EFunction); ok {
				for _, arg := range fn.Fn.Args {
					if len(arg.Decorators) > 0 {
						return true
					}
				}
			}
		}
	}
	return false
}

// CountDecorators counts every decorator in the subtree. After lowering
// this must be zero for everything the pass rewrote.
func CountDecorators(stmts []Stmt) int {
	s := decoratorScanner{}
	s.visitStmts(stmts)
	return s.count
}

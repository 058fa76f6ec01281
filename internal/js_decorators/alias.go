package js_decorators

import (
	"strconv"

	"github.com/lihuan-bot/swc/internal/js_ast"
)

// aliasIfRequired returns the identifier a decorator (or computed key) should
// be referenced through. A bare identifier is already stable and is used as
// is. Anything else gets a fresh temporary so the expression is evaluated
// exactly once, at declaration-evaluation time.
func (l *lowerer) aliasIfRequired(expr js_ast.Expr, prefix string) (name string, aliased bool) {
	if id, ok := expr.Data.(*js_ast.EIdentifier); ok {
		return id.Name, false
	}
	return l.temp(prefix), true
}

// temp picks a name with the given prefix that collides with nothing in the
// original module and nothing handed out before. The first pick for a prefix
// has no suffix, later ones count up from 2.
func (l *lowerer) temp(prefix string) string {
	name := prefix
	n := l.nameCounts[prefix]
	for {
		n++
		if n > 1 {
			name = prefix + strconv.Itoa(n)
		}
		if !l.usedNames[name] {
			break
		}
	}
	l.nameCounts[prefix] = n
	l.usedNames[name] = true
	return name
}

func (l *lowerer) declareHoisted(name string) {
	l.uninitializedVars = append(l.uninitializedVars, js_ast.Decl{Name: name})
}

// scanUsedNames records every identifier that appears anywhere in the module
// so generated temporaries can never capture or shadow user code.
func (l *lowerer) scanUsedNames(stmts []js_ast.Stmt) {
	for _, stmt := range stmts {
		l.scanStmt(stmt)
	}
}

func (l *lowerer) scanStmt(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		l.scanUsedNames(s.Stmts)

	case *js_ast.SExportClause:
		for _, item := range s.Items {
			l.usedNames[item.Name] = true
		}

	case *js_ast.SExportDefault:
		if s.Value.Expr != nil {
			l.scanExpr(*s.Value.Expr)
		}
		if s.Value.Stmt != nil {
			l.scanStmt(*s.Value.Stmt)
		}

	case *js_ast.SExpr:
		l.scanExpr(s.Value)

	case *js_ast.SEnum:
		l.usedNames[s.Name] = true
		for _, value := range s.Values {
			l.usedNames[value.Name] = true
			if value.Value != nil {
				l.scanExpr(*value.Value)
			}
		}

	case *js_ast.SFunction:
		l.scanFn(s.Fn)

	case *js_ast.SClass:
		l.scanClass(s.Class)

	case *js_ast.SIf:
		l.scanExpr(s.Test)
		l.scanStmt(s.Yes)
		if s.No != nil {
			l.scanStmt(*s.No)
		}

	case *js_ast.SFor:
		if s.Init != nil {
			l.scanStmt(*s.Init)
		}
		if s.Test != nil {
			l.scanExpr(*s.Test)
		}
		if s.Update != nil {
			l.scanExpr(*s.Update)
		}
		l.scanStmt(s.Body)

	case *js_ast.SWhile:
		l.scanExpr(s.Test)
		l.scanStmt(s.Body)

	case *js_ast.SReturn:
		if s.Value != nil {
			l.scanExpr(*s.Value)
		}

	case *js_ast.SThrow:
		l.scanExpr(s.Value)

	case *js_ast.SLocal:
		for _, decl := range s.Decls {
			l.usedNames[decl.Name] = true
			if decl.Value != nil {
				l.scanExpr(*decl.Value)
			}
		}
	}
}

func (l *lowerer) scanExpr(expr js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EArray:
		for _, item := range e.Items {
			l.scanExpr(item)
		}

	case *js_ast.EUnary:
		l.scanExpr(e.Value)

	case *js_ast.EBinary:
		l.scanExpr(e.Left)
		l.scanExpr(e.Right)

	case *js_ast.ENew:
		l.scanExpr(e.Target)
		for _, arg := range e.Args {
			l.scanExpr(arg)
		}

	case *js_ast.ECall:
		l.scanExpr(e.Target)
		for _, arg := range e.Args {
			l.scanExpr(arg)
		}

	case *js_ast.EDot:
		l.scanExpr(e.Target)

	case *js_ast.EIndex:
		l.scanExpr(e.Target)
		l.scanExpr(e.Index)

	case *js_ast.EArrow:
		l.scanArgs(e.Args)
		l.scanUsedNames(e.Body.Stmts)

	case *js_ast.EFunction:
		l.scanFn(e.Fn)

	case *js_ast.EClass:
		l.scanClass(e.Class)

	case *js_ast.EIdentifier:
		l.usedNames[e.Name] = true

	case *js_ast.EObject:
		for _, prop := range e.Properties {
			l.scanProperty(prop)
		}

	case *js_ast.ESpread:
		l.scanExpr(e.Value)

	case *js_ast.EIf:
		l.scanExpr(e.Test)
		l.scanExpr(e.Yes)
		l.scanExpr(e.No)
	}
}

func (l *lowerer) scanArgs(args []js_ast.Arg) {
	for _, arg := range args {
		l.usedNames[arg.Name] = true
		for _, dec := range arg.Decorators {
			l.scanExpr(dec)
		}
		if arg.Default != nil {
			l.scanExpr(*arg.Default)
		}
	}
}

func (l *lowerer) scanFn(fn js_ast.Fn) {
	if fn.Name != "" {
		l.usedNames[fn.Name] = true
	}
	l.scanArgs(fn.Args)
	l.scanUsedNames(fn.Body.Stmts)
}

func (l *lowerer) scanProperty(prop js_ast.Property) {
	for _, dec := range prop.Decorators {
		l.scanExpr(dec)
	}
	l.scanExpr(prop.Key)
	if prop.Value != nil {
		l.scanExpr(*prop.Value)
	}
	if prop.Initializer != nil {
		l.scanExpr(*prop.Initializer)
	}
}

func (l *lowerer) scanClass(class js_ast.Class) {
	if class.Name != "" {
		l.usedNames[class.Name] = true
	}
	for _, dec := range class.Decorators {
		l.scanExpr(dec)
	}
	if class.Extends != nil {
		l.scanExpr(*class.Extends)
	}
	for _, prop := range class.Properties {
		l.scanProperty(prop)
	}
}

// replaceIdent rewrites references to the class binding inside a hoisted
// decorator expression so they point at the temporary instead. References
// shadowed by an inner function or arrow parameter of the same name are left
// alone.
func replaceIdent(expr *js_ast.Expr, from string, to string) {
	switch e := expr.Data.(type) {
	case *js_ast.EArray:
		for i := range e.Items {
			replaceIdent(&e.Items[i], from, to)
		}

	case *js_ast.EUnary:
		replaceIdent(&e.Value, from, to)

	case *js_ast.EBinary:
		replaceIdent(&e.Left, from, to)
		replaceIdent(&e.Right, from, to)

	case *js_ast.ENew:
		replaceIdent(&e.Target, from, to)
		for i := range e.Args {
			replaceIdent(&e.Args[i], from, to)
		}

	case *js_ast.ECall:
		replaceIdent(&e.Target, from, to)
		for i := range e.Args {
			replaceIdent(&e.Args[i], from, to)
		}

	case *js_ast.EDot:
		replaceIdent(&e.Target, from, to)

	case *js_ast.EIndex:
		replaceIdent(&e.Target, from, to)
		replaceIdent(&e.Index, from, to)

	case *js_ast.EArrow:
		if argsShadow(e.Args, from) {
			return
		}
		replaceIdentInStmts(e.Body.Stmts, from, to)

	case *js_ast.EFunction:
		if e.Fn.Name == from || argsShadow(e.Fn.Args, from) {
			return
		}
		replaceIdentInStmts(e.Fn.Body.Stmts, from, to)

	case *js_ast.EIdentifier:
		if e.Name == from {
			e.Name = to
		}

	case *js_ast.EObject:
		for i := range e.Properties {
			prop := &e.Properties[i]
			if prop.IsComputed {
				replaceIdent(&prop.Key, from, to)
			}
			if prop.Value != nil {
				replaceIdent(prop.Value, from, to)
			}
			if prop.Initializer != nil {
				replaceIdent(prop.Initializer, from, to)
			}
		}

	case *js_ast.ESpread:
		replaceIdent(&e.Value, from, to)

	case *js_ast.EIf:
		replaceIdent(&e.Test, from, to)
		replaceIdent(&e.Yes, from, to)
		replaceIdent(&e.No, from, to)
	}
}

func argsShadow(args []js_ast.Arg, name string) bool {
	for _, arg := range args {
		if arg.Name == name {
			return true
		}
	}
	return false
}

func replaceIdentInStmts(stmts []js_ast.Stmt, from string, to string) {
	for i := range stmts {
		replaceIdentInStmt(&stmts[i], from, to)
	}
}

func replaceIdentInStmt(stmt *js_ast.Stmt, from string, to string) {
	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		replaceIdentInStmts(s.Stmts, from, to)

	case *js_ast.SExpr:
		replaceIdent(&s.Value, from, to)

	case *js_ast.SFunction:
		if s.Fn.Name == from || argsShadow(s.Fn.Args, from) {
			return
		}
		replaceIdentInStmts(s.Fn.Body.Stmts, from, to)

	case *js_ast.SIf:
		replaceIdent(&s.Test, from, to)
		replaceIdentInStmt(&s.Yes, from, to)
		if s.No != nil {
			replaceIdentInStmt(s.No, from, to)
		}

	case *js_ast.SFor:
		if s.Init != nil {
			replaceIdentInStmt(s.Init, from, to)
		}
		if s.Test != nil {
			replaceIdent(s.Test, from, to)
		}
		if s.Update != nil {
			replaceIdent(s.Update, from, to)
		}
		replaceIdentInStmt(&s.Body, from, to)

	case *js_ast.SWhile:
		replaceIdent(&s.Test, from, to)
		replaceIdentInStmt(&s.Body, from, to)

	case *js_ast.SReturn:
		if s.Value != nil {
			replaceIdent(s.Value, from, to)
		}

	case *js_ast.SThrow:
		replaceIdent(&s.Value, from, to)

	case *js_ast.SLocal:
		for i := range s.Decls {
			if s.Decls[i].Value != nil {
				replaceIdent(s.Decls[i].Value, from, to)
			}
		}
	}
}

package js_decorators

import (
	"github.com/lihuan-bot/swc/internal/js_ast"
)

// EnumKind classifies a TypeScript enum by the shape of its member values.
// It drives the "design:type" constructor picked for enum-typed properties.
type EnumKind uint8

const (
	EnumKindMixed EnumKind = iota
	EnumKindString
	EnumKindNumber
)

func enumKindOfValue(value *js_ast.Expr) EnumKind {
	if value == nil {
		// Auto-numbered member
		return EnumKindNumber
	}
	switch value.Data.(type) {
	case *js_ast.EString:
		return EnumKindString
	case *js_ast.ENumber:
		return EnumKindNumber
	default:
		return EnumKindMixed
	}
}

// collectEnumKinds records the kind of every enum declaration before any
// class is rewritten. Enums can be declared inside function and class bodies
// that only appear in expression position, so the scan walks expressions
// too. Later declarations win when an enum name is declared twice, which
// matches declaration merging closely enough for type inference purposes.
func collectEnumKinds(stmts []js_ast.Stmt) map[string]EnumKind {
	c := enumKindCollector{kinds: make(map[string]EnumKind)}
	c.visitStmts(stmts)
	return c.kinds
}

type enumKindCollector struct {
	kinds map[string]EnumKind
}

func (c enumKindCollector) visitStmts(stmts []js_ast.Stmt) {
	for _, stmt := range stmts {
		c.visitStmt(stmt)
	}
}

func (c enumKindCollector) visitStmt(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SEnum:
		kind := EnumKindMixed
		for i, value := range s.Values {
			memberKind := enumKindOfValue(value.Value)
			if i == 0 {
				kind = memberKind
			} else if kind != memberKind {
				kind = EnumKindMixed
			}
			if value.Value != nil {
				c.visitExpr(*value.Value)
			}
		}
		c.kinds[s.Name] = kind

	case *js_ast.SBlock:
		c.visitStmts(s.Stmts)

	case *js_ast.SExportDefault:
		if s.Value.Expr != nil {
			c.visitExpr(*s.Value.Expr)
		}
		if s.Value.Stmt != nil {
			c.visitStmt(*s.Value.Stmt)
		}

	case *js_ast.SExpr:
		c.visitExpr(s.Value)

	case *js_ast.SFunction:
		c.visitStmts(s.Fn.Body.Stmts)

	case *js_ast.SClass:
		c.visitClass(s.Class)

	case *js_ast.SIf:
		c.visitExpr(s.Test)
		c.visitStmt(s.Yes)
		if s.No != nil {
			c.visitStmt(*s.No)
		}

	case *js_ast.SFor:
		if s.Init != nil {
			c.visitStmt(*s.Init)
		}
		if s.Test != nil {
			c.visitExpr(*s.Test)
		}
		if s.Update != nil {
			c.visitExpr(*s.Update)
		}
		c.visitStmt(s.Body)

	case *js_ast.SWhile:
		c.visitExpr(s.Test)
		c.visitStmt(s.Body)

	case *js_ast.SReturn:
		if s.Value != nil {
			c.visitExpr(*s.Value)
		}

	case *js_ast.SThrow:
		c.visitExpr(s.Value)

	case *js_ast.SLocal:
		for _, decl := range s.Decls {
			if decl.Value != nil {
				c.visitExpr(*decl.Value)
			}
		}
	}
}

func (c enumKindCollector) visitExpr(expr js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EArray:
		for _, item := range e.Items {
			c.visitExpr(item)
		}

	case *js_ast.EUnary:
		c.visitExpr(e.Value)

	case *js_ast.EBinary:
		c.visitExpr(e.Left)
		c.visitExpr(e.Right)

	case *js_ast.ENew:
		c.visitExpr(e.Target)
		for _, arg := range e.Args {
			c.visitExpr(arg)
		}

	case *js_ast.ECall:
		c.visitExpr(e.Target)
		for _, arg := range e.Args {
			c.visitExpr(arg)
		}

	case *js_ast.EDot:
		c.visitExpr(e.Target)

	case *js_ast.EIndex:
		c.visitExpr(e.Target)
		c.visitExpr(e.Index)

	case *js_ast.EArrow:
		c.visitStmts(e.Body.Stmts)

	case *js_ast.EFunction:
		c.visitStmts(e.Fn.Body.Stmts)

	case *js_ast.EClass:
		c.visitClass(e.Class)

	case *js_ast.EObject:
		for _, prop := range e.Properties {
			c.visitProperty(prop)
		}

	case *js_ast.ESpread:
		c.visitExpr(e.Value)

	case *js_ast.EIf:
		c.visitExpr(e.Test)
		c.visitExpr(e.Yes)
		c.visitExpr(e.No)
	}
}

func (c enumKindCollector) visitProperty(prop js_ast.Property) {
	if prop.IsComputed {
		c.visitExpr(prop.Key)
	}
	if prop.Value != nil {
		c.visitExpr(*prop.Value)
	}
	if prop.Initializer != nil {
		c.visitExpr(*prop.Initializer)
	}
}

func (c enumKindCollector) visitClass(class js_ast.Class) {
	for _, dec := range class.Decorators {
		c.visitExpr(dec)
	}
	if class.Extends != nil {
		c.visitExpr(*class.Extends)
	}
	for _, prop := range class.Properties {
		c.visitProperty(prop)
	}
}

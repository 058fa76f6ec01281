package js_lints

import (
	"github.com/lihuan-bot/swc/internal/js_ast"
	"github.com/lihuan-bot/swc/internal/logger"
)

// noAlert reports calls to the blocking browser dialogs "alert", "confirm"
// and "prompt", either bare or reached through "window." / "globalThis.".
// A module-level binding with the same name silences the rule, since the
// call then refers to the module's own value rather than the global.
type noAlert struct {
	log              logger.Log
	source           *logger.Source
	reaction         Reaction
	topLevelDeclared map[string]bool
}

func isDialogName(name string) bool {
	return name == "alert" || name == "confirm" || name == "prompt"
}

func isGlobalObjectName(name string) bool {
	return name == "window" || name == "globalThis"
}

func (lint *noAlert) report(loc logger.Loc, fnName string) {
	text := "Unexpected " + fnName
	if lint.reaction == ReactionError {
		lint.log.AddError(lint.source, loc, text)
	} else {
		lint.log.AddWarning(lint.source, loc, text)
	}
}

// unshadowedGlobal is true when the identifier still refers to the global of
// that name inside this module
func (lint *noAlert) unshadowedGlobal(name string) bool {
	return !lint.topLevelDeclared[name]
}

func (lint *noAlert) checkCall(loc logger.Loc, target js_ast.Expr) {
	switch e := target.Data.(type) {
	case *js_ast.EIdentifier:
		if isDialogName(e.Name) && lint.unshadowedGlobal(e.Name) {
			lint.report(loc, e.Name)
		}

	case *js_ast.EDot:
		if obj, ok := e.Target.Data.(*js_ast.EIdentifier); ok {
			if isGlobalObjectName(obj.Name) && lint.unshadowedGlobal(obj.Name) && isDialogName(e.Name) {
				lint.report(loc, e.Name)
			}
		}

	case *js_ast.EIndex:
		obj, okObj := e.Target.Data.(*js_ast.EIdentifier)
		key, okKey := e.Index.Data.(*js_ast.EString)
		if okObj && okKey {
			if isGlobalObjectName(obj.Name) && lint.unshadowedGlobal(obj.Name) && isDialogName(key.Value) {
				lint.report(loc, key.Value)
			}
		}
	}
}

func (lint *noAlert) visitStmts(stmts []js_ast.Stmt) {
	for _, stmt := range stmts {
		lint.visitStmt(stmt)
	}
}

func (lint *noAlert) visitStmt(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		lint.visitStmts(s.Stmts)

	case *js_ast.SExpr:
		lint.visitExpr(s.Value)

	case *js_ast.SExportDefault:
		if s.Value.Expr != nil {
			lint.visitExpr(*s.Value.Expr)
		}
		if s.Value.Stmt != nil {
			lint.visitStmt(*s.Value.Stmt)
		}

	case *js_ast.SEnum:
		for _, value := range s.Values {
			if value.Value != nil {
				lint.visitExpr(*value.Value)
			}
		}

	case *js_ast.SFunction:
		lint.visitFn(s.Fn)

	case *js_ast.SClass:
		lint.visitClass(s.Class)

	case *js_ast.SIf:
		lint.visitExpr(s.Test)
		lint.visitStmt(s.Yes)
		if s.No != nil {
			lint.visitStmt(*s.No)
		}

	case *js_ast.SFor:
		if s.Init != nil {
			lint.visitStmt(*s.Init)
		}
		if s.Test != nil {
			lint.visitExpr(*s.Test)
		}
		if s.Update != nil {
			lint.visitExpr(*s.Update)
		}
		lint.visitStmt(s.Body)

	case *js_ast.SWhile:
		lint.visitExpr(s.Test)
		lint.visitStmt(s.Body)

	case *js_ast.SReturn:
		if s.Value != nil {
			lint.visitExpr(*s.Value)
		}

	case *js_ast.SThrow:
		lint.visitExpr(s.Value)

	case *js_ast.SLocal:
		for _, decl := range s.Decls {
			if decl.Value != nil {
				lint.visitExpr(*decl.Value)
			}
		}
	}
}

func (lint *noAlert) visitExpr(expr js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EArray:
		for _, item := range e.Items {
			lint.visitExpr(item)
		}

	case *js_ast.EUnary:
		lint.visitExpr(e.Value)

	case *js_ast.EBinary:
		lint.visitExpr(e.Left)
		lint.visitExpr(e.Right)

	case *js_ast.ENew:
		lint.visitExpr(e.Target)
		for _, arg := range e.Args {
			lint.visitExpr(arg)
		}

	case *js_ast.ECall:
		lint.checkCall(expr.Loc, e.Target)
		lint.visitExpr(e.Target)
		for _, arg := range e.Args {
			lint.visitExpr(arg)
		}

	case *js_ast.EDot:
		lint.visitExpr(e.Target)

	case *js_ast.EIndex:
		lint.visitExpr(e.Target)
		lint.visitExpr(e.Index)

	case *js_ast.EArrow:
		lint.visitStmts(e.Body.Stmts)

	case *js_ast.EFunction:
		lint.visitFn(e.Fn)

	case *js_ast.EClass:
		lint.visitClass(e.Class)

	case *js_ast.EObject:
		for _, prop := range e.Properties {
			lint.visitProperty(prop)
		}

	case *js_ast.ESpread:
		lint.visitExpr(e.Value)

	case *js_ast.EIf:
		lint.visitExpr(e.Test)
		lint.visitExpr(e.Yes)
		lint.visitExpr(e.No)
	}
}

func (lint *noAlert) visitFn(fn js_ast.Fn) {
	for _, arg := range fn.Args {
		if arg.Default != nil {
			lint.visitExpr(*arg.Default)
		}
	}
	lint.visitStmts(fn.Body.Stmts)
}

func (lint *noAlert) visitProperty(prop js_ast.Property) {
	if prop.IsComputed {
		lint.visitExpr(prop.Key)
	}
	if prop.Value != nil {
		lint.visitExpr(*prop.Value)
	}
	if prop.Initializer != nil {
		lint.visitExpr(*prop.Initializer)
	}
}

func (lint *noAlert) visitClass(class js_ast.Class) {
	for _, dec := range class.Decorators {
		lint.visitExpr(dec)
	}
	if class.Extends != nil {
		lint.visitExpr(*class.Extends)
	}
	for _, prop := range class.Properties {
		lint.visitProperty(prop)
	}
}

package js_lints

import (
	"testing"

	"github.com/lihuan-bot/swc/internal/js_ast"
	"github.com/lihuan-bot/swc/internal/logger"
	"github.com/lihuan-bot/swc/internal/test"
)

func id(name string) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.EIdentifier{Name: name}}
}

func callStmt(target js_ast.Expr, args ...js_ast.Expr) js_ast.Stmt {
	return js_ast.Stmt{Data: &js_ast.SExpr{Value: js_ast.Expr{
		Data: &js_ast.ECall{Target: target, Args: args},
	}}}
}

func runNoAlert(stmts []js_ast.Stmt, reaction Reaction) []logger.Msg {
	log := logger.NewDeferLog()
	source := test.SourceForTest("")
	Run(log, &source, js_ast.AST{Stmts: stmts}, Options{NoAlert: reaction})
	return log.Done()
}

func TestNoAlertDirectCall(t *testing.T) {
	msgs := runNoAlert([]js_ast.Stmt{
		callStmt(id("alert"), js_ast.Expr{Data: &js_ast.EString{Value: "hi"}}),
	}, ReactionWarning)
	test.AssertEqual(t, len(msgs), 1)
	test.AssertEqual(t, msgs[0].Kind, logger.Warning)
	test.AssertEqual(t, msgs[0].Text, "Unexpected alert")
}

func TestNoAlertAllDialogNames(t *testing.T) {
	msgs := runNoAlert([]js_ast.Stmt{
		callStmt(id("alert")),
		callStmt(id("confirm")),
		callStmt(id("prompt")),
	}, ReactionError)
	test.AssertEqual(t, len(msgs), 3)
	test.AssertEqual(t, msgs[0].Kind, logger.Error)
	test.AssertEqual(t, msgs[1].Text, "Unexpected confirm")
	test.AssertEqual(t, msgs[2].Text, "Unexpected prompt")
}

func TestNoAlertQualifiedCalls(t *testing.T) {
	windowAlert := js_ast.Expr{Data: &js_ast.EDot{Target: id("window"), Name: "alert"}}
	globalThisConfirm := js_ast.Expr{Data: &js_ast.EDot{Target: id("globalThis"), Name: "confirm"}}
	indexed := js_ast.Expr{Data: &js_ast.EIndex{
		Target: id("window"),
		Index:  js_ast.Expr{Data: &js_ast.EString{Value: "prompt"}},
	}}
	msgs := runNoAlert([]js_ast.Stmt{
		callStmt(windowAlert),
		callStmt(globalThisConfirm),
		callStmt(indexed),
	}, ReactionWarning)
	test.AssertEqual(t, len(msgs), 3)
}

func TestNoAlertIgnoresOtherObjects(t *testing.T) {
	dialogAlert := js_ast.Expr{Data: &js_ast.EDot{Target: id("dialogs"), Name: "alert"}}
	msgs := runNoAlert([]js_ast.Stmt{callStmt(dialogAlert)}, ReactionWarning)
	test.AssertEqual(t, len(msgs), 0)
}

func TestNoAlertShadowedByModuleBinding(t *testing.T) {
	value := js_ast.Expr{Data: &js_ast.EArrow{}}
	declare := js_ast.Stmt{Data: &js_ast.SLocal{
		Kind:  js_ast.LocalConst,
		Decls: []js_ast.Decl{{Name: "alert", Value: &value}},
	}}
	msgs := runNoAlert([]js_ast.Stmt{
		declare,
		callStmt(id("alert")),
	}, ReactionWarning)
	test.AssertEqual(t, len(msgs), 0)
}

func TestNoAlertShadowedWindow(t *testing.T) {
	value := js_ast.Expr{Data: &js_ast.EObject{}}
	declare := js_ast.Stmt{Data: &js_ast.SLocal{
		Kind:  js_ast.LocalConst,
		Decls: []js_ast.Decl{{Name: "window", Value: &value}},
	}}
	windowAlert := js_ast.Expr{Data: &js_ast.EDot{Target: id("window"), Name: "alert"}}
	msgs := runNoAlert([]js_ast.Stmt{
		declare,
		callStmt(windowAlert),
	}, ReactionWarning)
	test.AssertEqual(t, len(msgs), 0)
}

func TestNoAlertInsideNestedFunctions(t *testing.T) {
	inner := js_ast.Stmt{Data: &js_ast.SFunction{Fn: js_ast.Fn{
		Name: "f",
		Body: js_ast.FnBody{Stmts: []js_ast.Stmt{callStmt(id("alert"))}},
	}}}
	msgs := runNoAlert([]js_ast.Stmt{inner}, ReactionWarning)
	test.AssertEqual(t, len(msgs), 1)
}

func TestNoAlertOff(t *testing.T) {
	msgs := runNoAlert([]js_ast.Stmt{callStmt(id("alert"))}, ReactionOff)
	test.AssertEqual(t, len(msgs), 0)
}

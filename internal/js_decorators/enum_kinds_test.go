package js_decorators

import (
	"testing"

	"github.com/lihuan-bot/swc/internal/js_ast"
	"github.com/lihuan-bot/swc/internal/test"
)

func enumStmt(name string, values ...js_ast.EnumValue) js_ast.Stmt {
	return js_ast.Stmt{Data: &js_ast.SEnum{Name: name, Values: values}}
}

func TestCollectEnumKinds(t *testing.T) {
	stmts := []js_ast.Stmt{
		enumStmt("Auto", js_ast.EnumValue{Name: "A"}, js_ast.EnumValue{Name: "B"}),
		enumStmt("Nums",
			js_ast.EnumValue{Name: "A", Value: exprP(num(1))},
			js_ast.EnumValue{Name: "B", Value: exprP(num(2))}),
		enumStmt("Strs",
			js_ast.EnumValue{Name: "A", Value: exprP(str("a"))}),
		enumStmt("Mix",
			js_ast.EnumValue{Name: "A", Value: exprP(num(1))},
			js_ast.EnumValue{Name: "B", Value: exprP(str("b"))}),
		enumStmt("Computed",
			js_ast.EnumValue{Name: "A", Value: exprP(call(id("f")))}),
	}

	kinds := collectEnumKinds(stmts)
	test.AssertEqual(t, kinds["Auto"], EnumKindNumber)
	test.AssertEqual(t, kinds["Nums"], EnumKindNumber)
	test.AssertEqual(t, kinds["Strs"], EnumKindString)
	test.AssertEqual(t, kinds["Mix"], EnumKindMixed)
	test.AssertEqual(t, kinds["Computed"], EnumKindMixed)
}

func TestCollectEnumKindsNested(t *testing.T) {
	inner := enumStmt("Inner", js_ast.EnumValue{Name: "A", Value: exprP(str("a"))})
	stmts := []js_ast.Stmt{
		{Data: &js_ast.SFunction{Fn: js_ast.Fn{
			Name: "f",
			Body: js_ast.FnBody{Stmts: []js_ast.Stmt{
				{Data: &js_ast.SBlock{Stmts: []js_ast.Stmt{inner}}},
			}},
		}}},
	}

	kinds := collectEnumKinds(stmts)
	test.AssertEqual(t, kinds["Inner"], EnumKindString)
}

func TestCollectEnumKindsInsideExpressions(t *testing.T) {
	iifeEnum := enumStmt("Wrapped", js_ast.EnumValue{Name: "A", Value: exprP(str("a"))})
	iife := js_ast.Stmt{Data: &js_ast.SExpr{Value: js_ast.Expr{Data: &js_ast.ECall{
		Target: js_ast.Expr{Data: &js_ast.EFunction{Fn: js_ast.Fn{
			Body: js_ast.FnBody{Stmts: []js_ast.Stmt{iifeEnum}},
		}}},
	}}}}

	methodEnum := enumStmt("InMethod", js_ast.EnumValue{Name: "A", Value: exprP(num(1))})
	methodValue := js_ast.Expr{Data: &js_ast.EFunction{Fn: js_ast.Fn{
		Body: js_ast.FnBody{Stmts: []js_ast.Stmt{methodEnum}},
	}}}
	class := classStmt(js_ast.Class{Name: "C", Properties: []js_ast.Property{{
		Key:      str("m"),
		Value:    &methodValue,
		IsMethod: true,
	}}})

	arrowEnum := enumStmt("InArrow", js_ast.EnumValue{Name: "A"})
	arrow := js_ast.Expr{Data: &js_ast.EArrow{Body: js_ast.FnBody{Stmts: []js_ast.Stmt{arrowEnum}}}}
	decl := js_ast.Stmt{Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: []js_ast.Decl{
		{Name: "f", Value: &arrow},
	}}}

	kinds := collectEnumKinds([]js_ast.Stmt{iife, class, decl})
	test.AssertEqual(t, kinds["Wrapped"], EnumKindString)
	test.AssertEqual(t, kinds["InMethod"], EnumKindNumber)
	test.AssertEqual(t, kinds["InArrow"], EnumKindNumber)
}

package js_decorators

import (
	"testing"

	"github.com/lihuan-bot/swc/internal/js_ast"
	"github.com/lihuan-bot/swc/internal/js_printer"
	"github.com/lihuan-bot/swc/internal/logger"
	"github.com/lihuan-bot/swc/internal/runtime"
	"github.com/lihuan-bot/swc/internal/test"
)

func id(name string) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.EIdentifier{Name: name}}
}

func str(value string) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.EString{Value: value}}
}

func num(value float64) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.ENumber{Value: value}}
}

func call(target js_ast.Expr, args ...js_ast.Expr) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.ECall{Target: target, Args: args}}
}

func dot(target js_ast.Expr, name string) js_ast.Expr {
	return js_ast.Expr{Data: &js_ast.EDot{Target: target, Name: name}}
}

func exprP(expr js_ast.Expr) *js_ast.Expr {
	return &expr
}

func fnValue(args ...js_ast.Arg) *js_ast.Expr {
	return exprP(js_ast.Expr{Data: &js_ast.EFunction{Fn: js_ast.Fn{Args: args}}})
}

func method(name string, decorators ...js_ast.Expr) js_ast.Property {
	return js_ast.Property{
		Decorators: decorators,
		Key:        str(name),
		Value:      fnValue(),
		IsMethod:   true,
	}
}

func field(name string, initializer *js_ast.Expr, decorators ...js_ast.Expr) js_ast.Property {
	return js_ast.Property{
		Decorators:  decorators,
		Key:         str(name),
		Initializer: initializer,
	}
}

func classStmt(class js_ast.Class) js_ast.Stmt {
	return js_ast.Stmt{Data: &js_ast.SClass{Class: class}}
}

func lowerAndPrint(stmts []js_ast.Stmt, options Options) (string, Result, []logger.Msg) {
	log := logger.NewDeferLog()
	tree, result := Lower(log, js_ast.AST{Stmts: stmts}, options)
	js := js_printer.Print(tree, js_printer.PrintOptions{}).JS
	return string(js), result, log.Done()
}

func expectLowered(t *testing.T, stmts []js_ast.Stmt, expected string) {
	t.Helper()
	observed, _, _ := lowerAndPrint(stmts, Options{})
	if observed != expected {
		t.Fatalf("\n%s", test.Diff(expected, observed))
	}
}

func TestNoDecoratorsLeavesTreeAlone(t *testing.T) {
	stmts := []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{method("m")}}),
		{Data: &js_ast.SExpr{Value: call(id("f"))}},
	}
	expected := `class A {
  m() {
  }
}
f();
`
	observed, result, msgs := lowerAndPrint(stmts, Options{})
	test.AssertEqual(t, observed, expected)
	test.AssertEqual(t, result.Helpers.IsEmpty(), true)
	test.AssertEqual(t, len(msgs), 0)
}

func TestClassDecorator(t *testing.T) {
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Decorators: []js_ast.Expr{id("dec")}}),
	}, `var _class;
let A = (_class = dec((_class = class A {
}) || _class) || _class, _class);
`)
}

func TestClassDecoratorFactory(t *testing.T) {
	// A complex decorator is evaluated once, right before the declaration
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Decorators: []js_ast.Expr{call(id("dec"))}}),
	}, `var _class;
var _dec = dec();
let A = (_class = _dec((_class = class A {
}) || _class) || _class, _class);
`)
}

func TestClassDecoratorsComposeInReverse(t *testing.T) {
	// "@d1 @d2 class A" applies d2 first, then d1
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Decorators: []js_ast.Expr{id("d1"), id("d2")}}),
	}, `var _class;
let A = (_class = d1(_class = d2((_class = class A {
}) || _class) || _class) || _class, _class);
`)
}

func TestMethodDecorator(t *testing.T) {
	observed, result, _ := lowerAndPrint([]js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{method("m", id("dec"))}}),
	}, Options{})
	test.AssertEqual(t, observed, `var _class;
let A = ((_class = class A {
  m() {
  }
}) || _class, __applyDecoratedDescriptor(_class.prototype, "m", [dec], Object.getOwnPropertyDescriptor(_class.prototype, "m"), _class.prototype), _class);
`)
	test.AssertEqual(t, result.Helpers.Has(runtime.ApplyDecoratedDescriptor), true)
	test.AssertEqual(t, result.Helpers.Has(runtime.InitializerDefineProperty), false)
}

func TestMethodDecoratorArrayKeepsSourceOrder(t *testing.T) {
	// Class-level reversal never touches the member decorator array
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{method("m", id("m1"), id("m2"))}}),
	}, `var _class;
let A = ((_class = class A {
  m() {
  }
}) || _class, __applyDecoratedDescriptor(_class.prototype, "m", [m1, m2], Object.getOwnPropertyDescriptor(_class.prototype, "m"), _class.prototype), _class);
`)
}

func TestStaticMethodDecorator(t *testing.T) {
	prop := method("m", id("dec"))
	prop.IsStatic = true
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{prop}}),
	}, `var _class;
let A = ((_class = class A {
  static m() {
  }
}) || _class, __applyDecoratedDescriptor(_class, "m", [dec], Object.getOwnPropertyDescriptor(_class, "m"), _class), _class);
`)
}

func TestMethodDecoratorFactory(t *testing.T) {
	// The factory call lands right before the registration call, after the
	// class expression, preserving the original evaluation point
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{method("m", call(id("dec")))}}),
	}, `var _class, _dec;
let A = ((_class = class A {
  m() {
  }
}) || _class, _dec = dec(), __applyDecoratedDescriptor(_class.prototype, "m", [_dec], Object.getOwnPropertyDescriptor(_class.prototype, "m"), _class.prototype), _class);
`)
}

func TestComputedKeyMethodDecorator(t *testing.T) {
	// The computed key is captured once and shared by the class body and
	// both helper arguments
	prop := method("", id("dec"))
	prop.Key = call(id("foo"))
	prop.IsComputed = true
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{prop}}),
	}, `var _class, _key;
let A = (_key = foo(), (_class = class A {
  [_key]() {
  }
}) || _class, __applyDecoratedDescriptor(_class.prototype, _key, [dec], Object.getOwnPropertyDescriptor(_class.prototype, _key), _class.prototype), _class);
`)
}

func TestParameterDecorator(t *testing.T) {
	// Parameter decorators run eagerly with (target, key, index), and the
	// descriptor registration still happens with an empty decorator array
	prop := js_ast.Property{
		Key:      str("m"),
		Value:    fnValue(js_ast.Arg{Name: "p", Decorators: []js_ast.Expr{id("dec")}}),
		IsMethod: true,
	}
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{prop}}),
	}, `var _class;
let A = ((_class = class A {
  m(p) {
  }
}) || _class, dec(_class.prototype, "m", 0), __applyDecoratedDescriptor(_class.prototype, "m", [], Object.getOwnPropertyDescriptor(_class.prototype, "m"), _class.prototype), _class);
`)
}

func TestInstanceFieldDecorator(t *testing.T) {
	observed, result, _ := lowerAndPrint([]js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{
			field("x", exprP(num(1)), id("dec")),
		}}),
	}, Options{})
	test.AssertEqual(t, observed, `var _class, _descriptor;
let A = ((_class = class A {
  constructor() {
    __initializerDefineProperty(this, "x", _descriptor, this);
  }
}) || _class, _descriptor = __applyDecoratedDescriptor(_class.prototype, "x", [dec], {
  configurable: true,
  enumerable: true,
  writable: true,
  initializer: function() {
    return 1;
  }
}), _class);
`)
	test.AssertEqual(t, result.Helpers.Has(runtime.InitializerDefineProperty), true)
}

func TestStaticFieldDecorator(t *testing.T) {
	prop := field("s", exprP(num(1)), id("dec"))
	prop.IsStatic = true
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{prop}}),
	}, `var _class, _init;
let A = ((_class = class A {
  static s = 1;
}) || _class, __applyDecoratedDescriptor(_class, "s", [dec], (_init = Object.getOwnPropertyDescriptor(_class, "s"), _init = _init ? _init.value : void 0, {
  configurable: true,
  enumerable: true,
  writable: true,
  initializer: function() {
    return _init;
  }
}), _class), _class);
`)
}

func TestFieldWithoutInitializer(t *testing.T) {
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{
			field("x", nil, id("dec")),
		}}),
	}, `var _class, _descriptor;
let A = ((_class = class A {
  constructor() {
    __initializerDefineProperty(this, "x", _descriptor, this);
  }
}) || _class, _descriptor = __applyDecoratedDescriptor(_class.prototype, "x", [dec], {
  configurable: true,
  enumerable: true,
  writable: true,
  initializer: void 0
}), _class);
`)
}

func TestConstructorInjectionAfterSuper(t *testing.T) {
	superCall := js_ast.Stmt{Data: &js_ast.SExpr{Value: js_ast.Expr{Data: &js_ast.ECall{
		Target: js_ast.Expr{Data: &js_ast.ESuper{}},
	}}}}
	doStuff := js_ast.Stmt{Data: &js_ast.SExpr{Value: call(id("doStuff"))}}
	ctor := js_ast.Property{
		Key: str("constructor"),
		Value: exprP(js_ast.Expr{Data: &js_ast.EFunction{Fn: js_ast.Fn{
			Body: js_ast.FnBody{Stmts: []js_ast.Stmt{superCall, doStuff}},
		}}}),
		IsMethod: true,
	}
	extends := id("B")
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Extends: &extends, Properties: []js_ast.Property{
			field("x", exprP(num(1)), id("dec")),
			ctor,
		}}),
	}, `var _class, _descriptor;
let A = ((_class = class A extends B {
  constructor() {
    super();
    __initializerDefineProperty(this, "x", _descriptor, this);
    doStuff();
  }
}) || _class, _descriptor = __applyDecoratedDescriptor(_class.prototype, "x", [dec], {
  configurable: true,
  enumerable: true,
  writable: true,
  initializer: function() {
    return 1;
  }
}), _class);
`)
}

func TestSynthesizedConstructorForwardsToSuper(t *testing.T) {
	extends := id("B")
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Extends: &extends, Properties: []js_ast.Property{
			field("x", exprP(num(1)), id("dec")),
		}}),
	}, `var _class, _descriptor;
let A = ((_class = class A extends B {
  constructor(...args) {
    super(...args);
    __initializerDefineProperty(this, "x", _descriptor, this);
  }
}) || _class, _descriptor = __applyDecoratedDescriptor(_class.prototype, "x", [dec], {
  configurable: true,
  enumerable: true,
  writable: true,
  initializer: function() {
    return 1;
  }
}), _class);
`)
}

func TestConstructorParameterDecorator(t *testing.T) {
	// Constructor parameter decorators lift to class-level "__param" calls
	// even without metadata emission enabled
	ctor := js_ast.Property{
		Key:      str("constructor"),
		Value:    fnValue(js_ast.Arg{Name: "p", Decorators: []js_ast.Expr{id("inject")}}),
		IsMethod: true,
	}
	observed, result, _ := lowerAndPrint([]js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{ctor}}),
	}, Options{})
	test.AssertEqual(t, observed, `var _class;
var _dec = __param(0, inject);
let A = (_class = _dec((_class = class A {
  constructor(p) {
  }
}) || _class) || _class, _class);
`)
	test.AssertEqual(t, result.Helpers.Has(runtime.Param), true)
	test.AssertEqual(t, result.Helpers.Has(runtime.Metadata), false)
}

func TestConstructorDecoratorIsDroppedWithWarning(t *testing.T) {
	ctor := js_ast.Property{
		Key:      str("constructor"),
		Value:    fnValue(),
		IsMethod: true,
		// Decorating the constructor itself has no legacy semantics
		Decorators: []js_ast.Expr{id("dec")},
	}
	observed, _, msgs := lowerAndPrint([]js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{
			ctor,
			method("m", id("mdec")),
		}}),
	}, Options{})
	test.AssertEqual(t, len(msgs), 1)
	test.AssertEqual(t, msgs[0].Kind, logger.Warning)
	test.AssertEqual(t, observed, `var _class;
let A = ((_class = class A {
  constructor() {
  }
  m() {
  }
}) || _class, __applyDecoratedDescriptor(_class.prototype, "m", [mdec], Object.getOwnPropertyDescriptor(_class.prototype, "m"), _class.prototype), _class);
`)
}

func TestDefaultExportClass(t *testing.T) {
	inner := classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{method("m", id("dec"))}})
	expectLowered(t, []js_ast.Stmt{
		{Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Stmt: &inner}}},
	}, `var _class;
let A = ((_class = class A {
  m() {
  }
}) || _class, __applyDecoratedDescriptor(_class.prototype, "m", [dec], Object.getOwnPropertyDescriptor(_class.prototype, "m"), _class.prototype), _class);
export { A as default };
`)
}

func TestDefaultExportAnonymousClass(t *testing.T) {
	inner := classStmt(js_ast.Class{Decorators: []js_ast.Expr{id("dec")}})
	expectLowered(t, []js_ast.Stmt{
		{Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Stmt: &inner}}},
	}, `var _class;
let _default = (_class = dec((_class = class {
}) || _class) || _class, _class);
export { _default as default };
`)
}

func TestExportedClassKeepsExport(t *testing.T) {
	stmt := js_ast.Stmt{Data: &js_ast.SClass{
		Class:    js_ast.Class{Name: "A", Decorators: []js_ast.Expr{id("dec")}},
		IsExport: true,
	}}
	expectLowered(t, []js_ast.Stmt{stmt}, `var _class;
export let A = (_class = dec((_class = class A {
}) || _class) || _class, _class);
`)
}

func TestClassExpressionDecorator(t *testing.T) {
	// At expression position the decorator temporary cannot be spliced in
	// front of the statement, so its assignment leads the sequence
	value := js_ast.Expr{Data: &js_ast.EClass{Class: js_ast.Class{
		Decorators: []js_ast.Expr{call(id("dec"))},
	}}}
	expectLowered(t, []js_ast.Stmt{
		{Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: []js_ast.Decl{{Name: "B", Value: &value}}}},
	}, `var _class, _dec;
let B = (_dec = dec(), _class = _dec((_class = class {
}) || _class) || _class, _class);
`)
}

func TestDecoratedClassInsideFunction(t *testing.T) {
	// Temporaries hoist to module scope even for nested classes
	inner := classStmt(js_ast.Class{Name: "B", Decorators: []js_ast.Expr{id("dec")}})
	fn := js_ast.Stmt{Data: &js_ast.SFunction{Fn: js_ast.Fn{
		Name: "f",
		Body: js_ast.FnBody{Stmts: []js_ast.Stmt{inner}},
	}}}
	expectLowered(t, []js_ast.Stmt{fn}, `var _class;
function f() {
  let B = (_class = dec((_class = class B {
  }) || _class) || _class, _class);
}
`)
}

func TestSelfReferenceInDecoratorUsesTemporary(t *testing.T) {
	// A hoisted decorator expression referencing the class name must see the
	// temporary, since the final binding is not assigned yet when it runs
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{
			method("m", call(id("foo"), id("A"))),
		}}),
	}, `var _class, _dec;
let A = ((_class = class A {
  m() {
  }
}) || _class, _dec = foo(_class), __applyDecoratedDescriptor(_class.prototype, "m", [_dec], Object.getOwnPropertyDescriptor(_class.prototype, "m"), _class.prototype), _class);
`)
}

func TestSelfReferenceInFieldDecoratorUsesTemporary(t *testing.T) {
	// Field decorator initializers run before the class binding too, so the
	// same rename applies to them
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Properties: []js_ast.Property{
			field("x", exprP(num(1)), call(id("foo"), dot(id("A"), "limit"))),
		}}),
	}, `var _class, _dec, _descriptor;
let A = (_dec = foo(_class.limit), (_class = class A {
  constructor() {
    __initializerDefineProperty(this, "x", _descriptor, this);
  }
}) || _class, _descriptor = __applyDecoratedDescriptor(_class.prototype, "x", [_dec], {
  configurable: true,
  enumerable: true,
  writable: true,
  initializer: function() {
    return 1;
  }
}), _class);
`)
}

func TestTemporariesAvoidUserNames(t *testing.T) {
	taken := num(1)
	expectLowered(t, []js_ast.Stmt{
		{Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: []js_ast.Decl{{Name: "_class", Value: &taken}}}},
		classStmt(js_ast.Class{Name: "A", Decorators: []js_ast.Expr{id("dec")}}),
	}, `var _class2;
let _class = 1;
let A = (_class2 = dec((_class2 = class A {
}) || _class2) || _class2, _class2);
`)
}

func TestTwoDecoratedClassesGetDistinctTemporaries(t *testing.T) {
	expectLowered(t, []js_ast.Stmt{
		classStmt(js_ast.Class{Name: "A", Decorators: []js_ast.Expr{id("dec")}}),
		classStmt(js_ast.Class{Name: "B", Decorators: []js_ast.Expr{id("dec")}}),
	}, `var _class, _class2;
let A = (_class = dec((_class = class A {
}) || _class) || _class, _class);
let B = (_class2 = dec((_class2 = class B {
}) || _class2) || _class2, _class2);
`)
}

func TestOutputContainsNoDecorators(t *testing.T) {
	prop := method("", call(id("dec")))
	prop.Key = call(id("foo"))
	prop.IsComputed = true
	stmts := []js_ast.Stmt{
		classStmt(js_ast.Class{
			Name:       "A",
			Decorators: []js_ast.Expr{id("d1"), call(id("d2"))},
			Properties: []js_ast.Property{
				prop,
				field("x", exprP(num(1)), id("dec")),
				method("m", id("dec")),
			},
		}),
	}
	log := logger.NewDeferLog()
	tree, _ := Lower(log, js_ast.AST{Stmts: stmts}, Options{})
	test.AssertEqual(t, js_ast.CountDecorators(tree.Stmts), 0)
}

func TestLoweringIsIdempotent(t *testing.T) {
	stmts := []js_ast.Stmt{
		classStmt(js_ast.Class{
			Name:       "A",
			Decorators: []js_ast.Expr{id("dec")},
			Properties: []js_ast.Property{method("m", id("mdec"))},
		}),
	}
	log := logger.NewDeferLog()
	once, _ := Lower(log, js_ast.AST{Stmts: stmts}, Options{})
	twice, secondResult := Lower(log, once, Options{})

	onceJS := string(js_printer.Print(once, js_printer.PrintOptions{}).JS)
	twiceJS := string(js_printer.Print(twice, js_printer.PrintOptions{}).JS)
	test.AssertEqual(t, twiceJS, onceJS)
	test.AssertEqual(t, secondResult.Helpers.IsEmpty(), true)
}

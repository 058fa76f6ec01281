package js_decorators

import (
	"github.com/lihuan-bot/swc/internal/js_ast"
	"github.com/lihuan-bot/swc/internal/logger"
	"github.com/lihuan-bot/swc/internal/runtime"
)

// This implements the legacy (TypeScript "experimentalDecorators") decorator
// proposal as a whole-module lowering. Every class that carries decorators
// anywhere (on the class itself, on members, or on constructor parameters)
// is rewritten into decorator-free code with the same observable evaluation
// order as the original proposal:
//
//   - Decorator expressions are evaluated once, in source order, when the
//     class declaration is evaluated
//   - Method and accessor decorators are applied through a property
//     descriptor, static members before the class decorators run
//   - Instance field decorators defer the field initializer into the
//     constructor via a descriptor object
//   - Class decorators apply last, in reverse source order, each one free to
//     return a replacement constructor
//
// Output shape and temporary naming follow the Babel legacy transform, which
// is the de facto reference for this proposal.

type Options struct {
	// Emit "design:type" and "__param" metadata calls the way TypeScript
	// does with "emitDecoratorMetadata" enabled
	EmitMetadata bool
}

type Result struct {
	// The runtime helpers referenced by the lowered output. The caller is
	// responsible for prepending their definitions (see the runtime package).
	Helpers runtime.HelperSet
}

type lowerer struct {
	log     logger.Log
	options Options
	helpers runtime.HelperSet

	// Hoisted to a single "var" statement at the top of the module
	uninitializedVars []js_ast.Decl

	// Flushed into a "var" statement immediately before the statement whose
	// lowering produced them
	initializedVars []js_ast.Decl

	// Accumulated "export { X as default }" style clause items, appended as
	// one export statement at the end of the module
	exports []js_ast.ClauseItem

	enums      map[string]EnumKind
	usedNames  map[string]bool
	nameCounts map[string]int
}

// Lower rewrites all decorated classes in the module. Modules without any
// decorators are returned unchanged, sharing the input AST.
func Lower(log logger.Log, tree js_ast.AST, options Options) (js_ast.AST, Result) {
	if !js_ast.ContainsDecorators(tree.Stmts) {
		return tree, Result{}
	}

	l := &lowerer{
		log:        log,
		options:    options,
		enums:      collectEnumKinds(tree.Stmts),
		usedNames:  make(map[string]bool),
		nameCounts: make(map[string]int),
	}
	l.scanUsedNames(tree.Stmts)

	// Generated code references the helpers by name
	for _, name := range []string{
		runtime.ApplyDecoratedDescriptor.Name(),
		runtime.InitializerDefineProperty.Name(),
		runtime.Param.Name(),
		runtime.Metadata.Name(),
	} {
		l.usedNames[name] = true
	}

	stmts := l.lowerStmts(tree.Stmts)

	if len(l.uninitializedVars) > 0 {
		hoisted := js_ast.Stmt{Data: &js_ast.SLocal{
			Kind:  js_ast.LocalVar,
			Decls: l.uninitializedVars,
		}}
		stmts = append([]js_ast.Stmt{hoisted}, stmts...)
	}
	if len(l.exports) > 0 {
		stmts = append(stmts, js_ast.Stmt{Data: &js_ast.SExportClause{Items: l.exports}})
	}

	tree.Stmts = stmts
	return tree, Result{Helpers: l.helpers}
}

func ident(loc logger.Loc, name string) js_ast.Expr {
	return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: name}}
}

func (l *lowerer) helperCall(loc logger.Loc, helper runtime.Helper, args ...js_ast.Expr) js_ast.Expr {
	l.helpers.Add(helper)
	return js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: ident(loc, helper.Name()),
		Args:   args,
	}}
}

// lowerStmts handles one statement list. Temporaries that need an initializer
// ("initializedVars") are flushed into a declaration placed immediately
// before the statement whose lowering produced them, so decorator
// expressions still evaluate before the class they decorate.
func (l *lowerer) lowerStmts(stmts []js_ast.Stmt) []js_ast.Stmt {
	if !js_ast.ContainsDecorators(stmts) {
		return stmts
	}

	result := make([]js_ast.Stmt, 0, len(stmts))
	for _, stmt := range stmts {
		if !js_ast.StmtContainsDecorators(stmt) {
			result = append(result, stmt)
			continue
		}
		stmt = l.lowerStmt(stmt)
		if len(l.initializedVars) > 0 {
			result = append(result, js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SLocal{
				Kind:  js_ast.LocalVar,
				Decls: l.initializedVars,
			}})
			l.initializedVars = nil
		}
		result = append(result, stmt)
	}
	return result
}

func (l *lowerer) lowerStmt(stmt js_ast.Stmt) js_ast.Stmt {
	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SBlock{Stmts: l.lowerStmts(s.Stmts)}}

	case *js_ast.SExpr:
		return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SExpr{Value: l.lowerExpr(s.Value)}}

	case *js_ast.SFunction:
		fn := s.Fn
		fn.Body.Stmts = l.lowerStmts(fn.Body.Stmts)
		return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SFunction{Fn: fn, IsExport: s.IsExport}}

	case *js_ast.SClass:
		class := l.lowerClassChildren(s.Class)
		if !js_ast.ClassContainsDecorators(class) {
			return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SClass{Class: class, IsExport: s.IsExport}}
		}
		name := class.Name
		value := l.lowerClass(stmt.Loc, class, true)
		return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SLocal{
			Kind:     js_ast.LocalLet,
			IsExport: s.IsExport,
			Decls:    []js_ast.Decl{{Name: name, Value: &value}},
		}}

	case *js_ast.SExportDefault:
		return l.lowerExportDefault(stmt.Loc, s)

	case *js_ast.SIf:
		yes := l.lowerStmt(s.Yes)
		var no *js_ast.Stmt
		if s.No != nil {
			lowered := l.lowerStmt(*s.No)
			no = &lowered
		}
		return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SIf{
			Test: l.lowerExpr(s.Test),
			Yes:  yes,
			No:   no,
		}}

	case *js_ast.SFor:
		clone := *s
		if clone.Init != nil {
			init := l.lowerStmt(*clone.Init)
			clone.Init = &init
		}
		clone.Body = l.lowerStmt(clone.Body)
		return js_ast.Stmt{Loc: stmt.Loc, Data: &clone}

	case *js_ast.SWhile:
		return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SWhile{
			Test: l.lowerExpr(s.Test),
			Body: l.lowerStmt(s.Body),
		}}

	case *js_ast.SReturn:
		if s.Value != nil {
			value := l.lowerExpr(*s.Value)
			return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SReturn{Value: &value}}
		}
		return stmt

	case *js_ast.SThrow:
		return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SThrow{Value: l.lowerExpr(s.Value)}}

	case *js_ast.SLocal:
		decls := make([]js_ast.Decl, len(s.Decls))
		for i, decl := range s.Decls {
			if decl.Value != nil {
				value := l.lowerExpr(*decl.Value)
				decl.Value = &value
			}
			decls[i] = decl
		}
		return js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SLocal{
			Decls:    decls,
			Kind:     s.Kind,
			IsExport: s.IsExport,
		}}
	}

	return stmt
}

// lowerExportDefault separates the decorated class from the export so the
// class decorators can replace the binding before it is exported:
//
//	@dec export default class Foo {}
//
// becomes a "let Foo = ..." declaration plus "export { Foo as default }" at
// the end of the module. Anonymous default classes get a generated binding.
func (l *lowerer) lowerExportDefault(loc logger.Loc, s *js_ast.SExportDefault) js_ast.Stmt {
	if s.Value.Stmt != nil {
		switch inner := s.Value.Stmt.Data.(type) {
		case *js_ast.SClass:
			class := l.lowerClassChildren(inner.Class)
			if !js_ast.ClassContainsDecorators(class) {
				stmt := js_ast.Stmt{Loc: s.Value.Stmt.Loc, Data: &js_ast.SClass{Class: class}}
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Stmt: &stmt}}}
			}
			name := class.Name
			if name == "" {
				name = l.temp("_default")
			}
			value := l.lowerClass(loc, class, true)
			l.exports = append(l.exports, js_ast.ClauseItem{Alias: "default", Name: name})
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
				Kind:  js_ast.LocalLet,
				Decls: []js_ast.Decl{{Name: name, Value: &value}},
			}}

		case *js_ast.SFunction:
			fn := inner.Fn
			fn.Body.Stmts = l.lowerStmts(fn.Body.Stmts)
			stmt := js_ast.Stmt{Loc: s.Value.Stmt.Loc, Data: &js_ast.SFunction{Fn: fn}}
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Stmt: &stmt}}}
		}
		return js_ast.Stmt{Loc: loc, Data: s}
	}

	value := l.lowerExpr(*s.Value.Expr)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: js_ast.ExprOrStmt{Expr: &value}}}
}

func (l *lowerer) lowerExpr(expr js_ast.Expr) js_ast.Expr {
	switch e := expr.Data.(type) {
	case *js_ast.EArray:
		items := make([]js_ast.Expr, len(e.Items))
		for i, item := range e.Items {
			items[i] = l.lowerExpr(item)
		}
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EArray{Items: items, IsSingleLine: e.IsSingleLine}}

	case *js_ast.EUnary:
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EUnary{Op: e.Op, Value: l.lowerExpr(e.Value)}}

	case *js_ast.EBinary:
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EBinary{
			Op:    e.Op,
			Left:  l.lowerExpr(e.Left),
			Right: l.lowerExpr(e.Right),
		}}

	case *js_ast.ENew:
		args := make([]js_ast.Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = l.lowerExpr(arg)
		}
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.ENew{Target: l.lowerExpr(e.Target), Args: args}}

	case *js_ast.ECall:
		args := make([]js_ast.Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = l.lowerExpr(arg)
		}
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.ECall{Target: l.lowerExpr(e.Target), Args: args}}

	case *js_ast.EDot:
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EDot{
			Target:  l.lowerExpr(e.Target),
			Name:    e.Name,
			NameLoc: e.NameLoc,
		}}

	case *js_ast.EIndex:
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EIndex{
			Target: l.lowerExpr(e.Target),
			Index:  l.lowerExpr(e.Index),
		}}

	case *js_ast.EArrow:
		clone := *e
		clone.Body.Stmts = l.lowerStmts(clone.Body.Stmts)
		return js_ast.Expr{Loc: expr.Loc, Data: &clone}

	case *js_ast.EFunction:
		fn := e.Fn
		fn.Body.Stmts = l.lowerStmts(fn.Body.Stmts)
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EFunction{Fn: fn}}

	case *js_ast.EClass:
		class := l.lowerClassChildren(e.Class)
		if !js_ast.ClassContainsDecorators(class) {
			return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EClass{Class: class}}
		}
		return l.lowerClass(expr.Loc, class, false)

	case *js_ast.EObject:
		props := make([]js_ast.Property, len(e.Properties))
		for i, prop := range e.Properties {
			props[i] = l.lowerProperty(prop)
		}
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EObject{Properties: props, IsSingleLine: e.IsSingleLine}}

	case *js_ast.ESpread:
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.ESpread{Value: l.lowerExpr(e.Value)}}

	case *js_ast.EIf:
		return js_ast.Expr{Loc: expr.Loc, Data: &js_ast.EIf{
			Test: l.lowerExpr(e.Test),
			Yes:  l.lowerExpr(e.Yes),
			No:   l.lowerExpr(e.No),
		}}
	}

	return expr
}

func (l *lowerer) lowerProperty(prop js_ast.Property) js_ast.Property {
	decorators := make([]js_ast.Expr, len(prop.Decorators))
	for i, dec := range prop.Decorators {
		decorators[i] = l.lowerExpr(dec)
	}
	prop.Decorators = decorators
	prop.Key = l.lowerExpr(prop.Key)
	if prop.Value != nil {
		value := l.lowerExpr(*prop.Value)
		prop.Value = &value
	}
	if prop.Initializer != nil {
		init := l.lowerExpr(*prop.Initializer)
		prop.Initializer = &init
	}
	return prop
}

// lowerClassChildren visits everything nested inside the class (member
// bodies, initializers, computed keys, decorator expressions, the extends
// clause) before the class itself is considered. Inner decorated classes are
// therefore rewritten bottom-up.
func (l *lowerer) lowerClassChildren(class js_ast.Class) js_ast.Class {
	decorators := make([]js_ast.Expr, len(class.Decorators))
	for i, dec := range class.Decorators {
		decorators[i] = l.lowerExpr(dec)
	}
	class.Decorators = decorators
	if class.Extends != nil {
		extends := l.lowerExpr(*class.Extends)
		class.Extends = &extends
	}
	props := make([]js_ast.Property, len(class.Properties))
	for i, prop := range class.Properties {
		props[i] = l.lowerProperty(prop)
	}
	class.Properties = props
	return class
}

// memberName is the runtime property name handed to the helpers. Identifier
// keys become string literals, literal keys keep their literal form, and
// computed keys are referenced through the temporary that captured them (for
// methods) or used in place (for fields).
func memberName(key js_ast.Expr) js_ast.Expr {
	return js_ast.CloneExpr(key)
}

// lowerClass rewrites one decorated class into an expression of the form
//
//	_class = class { ... } || _class
//
// wrapped in class decorator applications and joined with the member
// registration calls into one comma sequence ending in the class temporary.
//
// When the class is a declaration ("stmtLevel"), temporaries for complex
// class decorators become initialized declarations spliced right before the
// rewritten statement. At expression position there is no such statement
// boundary that preserves evaluation order, so the assignments lead the
// sequence instead.
func (l *lowerer) lowerClass(loc logger.Loc, class js_ast.Class, stmtLevel bool) js_ast.Expr {
	// Constructor parameter decorators always lower (they observe the final
	// class through "__param"); the "design:*" metadata is opt-in
	class = l.applyParamMetadata(loc, class)
	if l.options.EmitMetadata {
		class = l.applyMetadata(loc, class)
	}

	clsName := class.Name
	clsTemp := l.temp("_class")
	l.declareHoisted(clsTemp)

	// Evaluated before anything else in the sequence: assignments for
	// hoisted computed-key and field decorator temporaries
	var decInitExprs []js_ast.Expr

	// Member registration calls, in source order of the members
	var extraExprs []js_ast.Expr

	// Field initializer plumbing injected into the constructor
	var ctorStmts []js_ast.Stmt

	newTarget := func(isStatic bool) js_ast.Expr {
		if isStatic {
			return ident(loc, clsTemp)
		}
		return js_ast.Expr{Loc: loc, Data: &js_ast.EDot{
			Target: ident(loc, clsTemp),
			Name:   "prototype",
		}}
	}

	// rewriteSelfRefs redirects references to the class binding inside
	// hoisted expressions at the class temporary, since the original
	// binding is not initialized until the whole sequence has run
	rewriteSelfRefs := func(expr *js_ast.Expr) {
		if clsName != "" {
			replaceIdent(expr, clsName, clsTemp)
		}
	}

	props := class.Properties
	class.Properties = make([]js_ast.Property, 0, len(props))

	for _, prop := range props {
		hasArgDecorators := false
		if prop.IsMethod && prop.Value != nil {
			if fn, ok := prop.Value.Data.(*js_ast.EFunction); ok {
				for _, arg := range fn.Fn.Args {
					if len(arg.Decorators) > 0 {
						hasArgDecorators = true
						break
					}
				}
			}
		}

		switch {
		case js_ast.IsConstructor(prop):
			// Parameter decorators on the constructor were already lifted to
			// class-level "__param" decorators. Decorators on the constructor
			// itself have no defined legacy semantics.
			if len(prop.Decorators) > 0 {
				l.log.AddMsg(logger.Msg{
					Kind: logger.Warning,
					Text: "Decorators on a class constructor are not supported and have been removed",
				})
				prop.Decorators = nil
			}
			fn := prop.Value.Data.(*js_ast.EFunction).Fn
			for i := range fn.Args {
				fn.Args[i].Decorators = nil
			}
			value := js_ast.Expr{Loc: prop.Value.Loc, Data: &js_ast.EFunction{Fn: fn}}
			prop.Value = &value
			class.Properties = append(class.Properties, prop)

		case prop.IsMethod && (len(prop.Decorators) > 0 || hasArgDecorators):
			prop, inits, extras := l.lowerMethod(loc, prop, newTarget(prop.IsStatic), rewriteSelfRefs)
			decInitExprs = append(decInitExprs, inits...)
			extraExprs = append(extraExprs, extras...)
			class.Properties = append(class.Properties, prop)

		case !prop.IsMethod && len(prop.Decorators) > 0:
			kept, prop, inits, extras, stmts := l.lowerField(loc, prop, newTarget(prop.IsStatic), rewriteSelfRefs)
			decInitExprs = append(decInitExprs, inits...)
			extraExprs = append(extraExprs, extras...)
			ctorStmts = append(ctorStmts, stmts...)
			if kept {
				class.Properties = append(class.Properties, prop)
			}

		default:
			class.Properties = append(class.Properties, prop)
		}
	}

	if len(ctorStmts) > 0 {
		l.injectIntoConstructor(loc, &class, ctorStmts)
	}

	classDecorators := class.Decorators
	class.Decorators = nil

	classExpr := js_ast.Expr{Loc: loc, Data: &js_ast.EClass{Class: class}}
	result := js_ast.Expr{Loc: loc, Data: &js_ast.EBinary{
		Op:    js_ast.BinOpLogicalOr,
		Left:  js_ast.Assign(ident(loc, clsTemp), classExpr),
		Right: ident(loc, clsTemp),
	}}

	// Class decorators apply innermost-last: the last-declared decorator
	// sees the plain class, the first-declared one runs last and produces
	// the final binding
	var classDecInits []js_ast.Expr
	for i := len(classDecorators) - 1; i >= 0; i-- {
		dec := classDecorators[i]
		name, aliased := l.aliasIfRequired(dec, "_dec")
		if aliased {
			value := dec
			if stmtLevel {
				l.initializedVars = append(l.initializedVars, js_ast.Decl{Name: name, Value: &value})
			} else {
				l.declareHoisted(name)
				classDecInits = append(classDecInits, js_ast.Assign(ident(loc, name), value))
			}
		}
		call := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
			Target: ident(loc, name),
			Args:   []js_ast.Expr{result},
		}}
		result = js_ast.Assign(ident(loc, clsTemp), js_ast.Expr{Loc: loc, Data: &js_ast.EBinary{
			Op:    js_ast.BinOpLogicalOr,
			Left:  call,
			Right: ident(loc, clsTemp),
		}})
	}

	if len(decInitExprs) == 0 && len(extraExprs) == 0 && len(classDecorators) == 0 {
		return result
	}

	seq := make([]js_ast.Expr, 0, len(decInitExprs)+len(classDecInits)+len(extraExprs)+2)
	seq = append(seq, decInitExprs...)
	seq = append(seq, classDecInits...)
	seq = append(seq, result)
	seq = append(seq, extraExprs...)
	seq = append(seq, ident(loc, clsTemp))
	return js_ast.JoinAllWithComma(seq)
}

// lowerMethod strips the decorators from a method or accessor and returns
// the sequence expressions that re-apply them through
// __applyDecoratedDescriptor. Computed keys are captured in a hoisted
// temporary so the key expression evaluates once, before the class body.
func (l *lowerer) lowerMethod(
	loc logger.Loc,
	prop js_ast.Property,
	target js_ast.Expr,
	rewriteSelfRefs func(*js_ast.Expr),
) (js_ast.Property, []js_ast.Expr, []js_ast.Expr) {
	var decInitExprs []js_ast.Expr
	var extraExprs []js_ast.Expr

	var decArray []js_ast.Expr
	var decAssignments []js_ast.Expr
	for _, dec := range prop.Decorators {
		name, aliased := l.aliasIfRequired(dec, "_dec")
		if aliased {
			l.declareHoisted(name)
			rewriteSelfRefs(&dec)
			decAssignments = append(decAssignments, js_ast.Assign(ident(loc, name), dec))
		}
		decArray = append(decArray, ident(dec.Loc, name))
	}
	prop.Decorators = nil

	var nameExpr js_ast.Expr
	if prop.IsComputed {
		keyName, aliased := l.aliasIfRequired(prop.Key, "_key")
		if aliased {
			l.declareHoisted(keyName)
			init := js_ast.CloneExpr(prop.Key)
			rewriteSelfRefs(&init)
			decInitExprs = append(decInitExprs, js_ast.Assign(ident(loc, keyName), init))
		}
		nameExpr = ident(loc, keyName)
		prop.Key = ident(prop.Key.Loc, keyName)
	} else {
		nameExpr = memberName(prop.Key)
	}

	// Parameter decorators run eagerly, before the method decorators
	fn := prop.Value.Data.(*js_ast.EFunction).Fn
	fn.Args = append([]js_ast.Arg{}, fn.Args...)
	for index, arg := range fn.Args {
		for _, dec := range arg.Decorators {
			extraExprs = append(extraExprs, js_ast.Expr{Loc: dec.Loc, Data: &js_ast.ECall{
				Target: dec,
				Args: []js_ast.Expr{
					js_ast.CloneExpr(target),
					js_ast.CloneExpr(nameExpr),
					{Loc: dec.Loc, Data: &js_ast.ENumber{Value: float64(index)}},
				},
			}})
		}
		fn.Args[index].Decorators = nil
	}
	value := js_ast.Expr{Loc: prop.Value.Loc, Data: &js_ast.EFunction{Fn: fn}}
	prop.Value = &value

	extraExprs = append(extraExprs, decAssignments...)

	getDescriptor := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: loc, Data: &js_ast.EDot{
			Target: ident(loc, "Object"),
			Name:   "getOwnPropertyDescriptor",
		}},
		Args: []js_ast.Expr{js_ast.CloneExpr(target), js_ast.CloneExpr(nameExpr)},
	}}
	extraExprs = append(extraExprs, l.helperCall(loc, runtime.ApplyDecoratedDescriptor,
		js_ast.CloneExpr(target),
		js_ast.CloneExpr(nameExpr),
		js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: decArray, IsSingleLine: true}},
		getDescriptor,
		js_ast.CloneExpr(target),
	))

	return prop, decInitExprs, extraExprs
}

func descriptorProp(loc logger.Loc, name string, value js_ast.Expr) js_ast.Property {
	return js_ast.Property{
		Kind:  js_ast.PropertyNormal,
		Key:   js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: name}},
		Value: &value,
	}
}

// lowerField handles a decorated class field. Instance fields are removed
// from the class body and re-created in the constructor through
// __initializerDefineProperty; static fields stay in place and their
// already-defined value is captured into a temporary for the descriptor.
func (l *lowerer) lowerField(
	loc logger.Loc,
	prop js_ast.Property,
	target js_ast.Expr,
	rewriteSelfRefs func(*js_ast.Expr),
) (kept bool, out js_ast.Property, decInitExprs []js_ast.Expr, extraExprs []js_ast.Expr, ctorStmts []js_ast.Stmt) {
	var decArray []js_ast.Expr
	for _, dec := range prop.Decorators {
		name, aliased := l.aliasIfRequired(dec, "_dec")
		if aliased {
			l.declareHoisted(name)
			value := dec
			rewriteSelfRefs(&value)
			decInitExprs = append(decInitExprs, js_ast.Assign(ident(loc, name), value))
		}
		decArray = append(decArray, ident(dec.Loc, name))
	}
	prop.Decorators = nil

	nameExpr := memberName(prop.Key)

	var initializer js_ast.Expr
	var initTemp string
	if prop.IsStatic {
		initTemp = l.temp("_init")
		l.declareHoisted(initTemp)
	}
	if prop.Initializer != nil {
		var returned js_ast.Expr
		if prop.IsStatic {
			returned = ident(loc, initTemp)
		} else {
			returned = *prop.Initializer
		}
		initializer = js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: js_ast.Fn{
			Body: js_ast.FnBody{Loc: loc, Stmts: []js_ast.Stmt{
				{Loc: loc, Data: &js_ast.SReturn{Value: &returned}},
			}},
		}}}
	} else {
		initializer = js_ast.Expr{Loc: loc, Data: &js_ast.EUndefined{}}
	}

	descriptor := js_ast.Expr{Loc: loc, Data: &js_ast.EObject{
		IsSingleLine: false,
		Properties: []js_ast.Property{
			descriptorProp(loc, "configurable", js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}),
			descriptorProp(loc, "enumerable", js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}),
			descriptorProp(loc, "writable", js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}),
			descriptorProp(loc, "initializer", initializer),
		},
	}}

	decArrayExpr := js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: decArray, IsSingleLine: true}}

	if prop.IsStatic {
		// The static initializer has already run by the time the
		// registration call executes, so the defined value is captured
		// from the class and replayed through the descriptor
		getDescriptor := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
			Target: js_ast.Expr{Loc: loc, Data: &js_ast.EDot{
				Target: ident(loc, "Object"),
				Name:   "getOwnPropertyDescriptor",
			}},
			Args: []js_ast.Expr{js_ast.CloneExpr(target), js_ast.CloneExpr(nameExpr)},
		}}
		capture := js_ast.JoinAllWithComma([]js_ast.Expr{
			js_ast.Assign(ident(loc, initTemp), getDescriptor),
			js_ast.Assign(ident(loc, initTemp), js_ast.Expr{Loc: loc, Data: &js_ast.EIf{
				Test: ident(loc, initTemp),
				Yes:  js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: ident(loc, initTemp), Name: "value"}},
				No:   js_ast.Expr{Loc: loc, Data: &js_ast.EUndefined{}},
			}}),
			descriptor,
		})
		extraExprs = append(extraExprs, l.helperCall(loc, runtime.ApplyDecoratedDescriptor,
			js_ast.CloneExpr(target),
			js_ast.CloneExpr(nameExpr),
			decArrayExpr,
			capture,
			js_ast.CloneExpr(target),
		))
		return true, prop, decInitExprs, extraExprs, nil
	}

	descriptorTemp := l.temp("_descriptor")
	l.declareHoisted(descriptorTemp)
	extraExprs = append(extraExprs, js_ast.Assign(
		ident(loc, descriptorTemp),
		l.helperCall(loc, runtime.ApplyDecoratedDescriptor,
			js_ast.CloneExpr(target),
			js_ast.CloneExpr(nameExpr),
			decArrayExpr,
			descriptor,
		),
	))

	this := js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}}
	ctorStmts = append(ctorStmts, js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{
		Value: l.helperCall(loc, runtime.InitializerDefineProperty,
			this,
			js_ast.CloneExpr(nameExpr),
			ident(loc, descriptorTemp),
			js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}},
		),
	}})

	return false, prop, decInitExprs, extraExprs, ctorStmts
}

// injectIntoConstructor places the field initializer statements right after
// the top-level "super()" call, or at the start of the body when there is
// none. A constructor is synthesized when the class does not declare one.
func (l *lowerer) injectIntoConstructor(loc logger.Loc, class *js_ast.Class, stmts []js_ast.Stmt) {
	ctorIndex := -1
	for i, prop := range class.Properties {
		if js_ast.IsConstructor(prop) {
			ctorIndex = i
			break
		}
	}

	if ctorIndex < 0 {
		class.Properties = append(class.Properties, makeDefaultConstructor(loc, class.Extends != nil))
		ctorIndex = len(class.Properties) - 1
	}

	fnData := class.Properties[ctorIndex].Value.Data.(*js_ast.EFunction)
	fn := fnData.Fn
	insertAt := 0
	for i, stmt := range fn.Body.Stmts {
		if js_ast.IsSuperCall(stmt) {
			insertAt = i + 1
			break
		}
	}

	body := make([]js_ast.Stmt, 0, len(fn.Body.Stmts)+len(stmts))
	body = append(body, fn.Body.Stmts[:insertAt]...)
	body = append(body, stmts...)
	body = append(body, fn.Body.Stmts[insertAt:]...)
	fn.Body.Stmts = body

	value := js_ast.Expr{Loc: class.Properties[ctorIndex].Value.Loc, Data: &js_ast.EFunction{Fn: fn}}
	class.Properties[ctorIndex].Value = &value
}

func makeDefaultConstructor(loc logger.Loc, hasExtends bool) js_ast.Property {
	fn := js_ast.Fn{Body: js_ast.FnBody{Loc: loc}}
	if hasExtends {
		fn.Args = []js_ast.Arg{{Name: "args"}}
		fn.HasRestArg = true
		fn.Body.Stmts = []js_ast.Stmt{{Loc: loc, Data: &js_ast.SExpr{
			Value: js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
				Target: js_ast.Expr{Loc: loc, Data: &js_ast.ESuper{}},
				Args: []js_ast.Expr{{Loc: loc, Data: &js_ast.ESpread{
					Value: ident(loc, "args"),
				}}},
			}},
		}}}
	}
	value := js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
	return js_ast.Property{
		Kind:     js_ast.PropertyNormal,
		Key:      js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: "constructor"}},
		Value:    &value,
		IsMethod: true,
	}
}

package js_ast

func Assign(a Expr, b Expr) Expr {
	return Expr{Loc: a.Loc, Data: &EBinary{Op: BinOpAssign, Left: a, Right: b}}
}

func AssignStmt(a Expr, b Expr) Stmt {
	return Stmt{Loc: a.Loc, Data: &SExpr{Value: Assign(a, b)}}
}

func JoinWithComma(a Expr, b Expr) Expr {
	return Expr{Loc: a.Loc, Data: &EBinary{Op: BinOpComma, Left: a, Right: b}}
}

func JoinAllWithComma(all []Expr) Expr {
	result := all[0]
	for _, value := range all[1:] {
		result = JoinWithComma(result, value)
	}
	return result
}

func IsSuperCall(stmt Stmt) bool {
	if expr, ok := stmt.Data.(*SExpr); ok {
		if call, ok := expr.Value.Data.(*ECall); ok {
			if _, ok := call.Target.Data.(*ESuper); ok {
				return true
			}
		}
	}
	return false
}

// IsConstructor identifies the constructor member of a class body
func IsConstructor(prop Property) bool {
	if !prop.IsMethod || prop.IsComputed || prop.IsStatic || prop.Kind != PropertyNormal {
		return false
	}
	key, ok := prop.Key.Data.(*EString)
	return ok && key.Value == "constructor"
}

// CloneExpr returns a deep copy of an expression. Lowering passes use this
// when the same source expression must appear in more than one output
// position, so that later in-place rewrites never alias.
func CloneExpr(expr Expr) Expr {
	switch e := expr.Data.(type) {
	case *EArray:
		items := make([]Expr, len(e.Items))
		for i, item := range e.Items {
			items[i] = CloneExpr(item)
		}
		return Expr{Loc: expr.Loc, Data: &EArray{Items: items, IsSingleLine: e.IsSingleLine}}

	case *EUnary:
		return Expr{Loc: expr.Loc, Data: &EUnary{Op: e.Op, Value: CloneExpr(e.Value)}}

	case *EBinary:
		return Expr{Loc: expr.Loc, Data: &EBinary{Op: e.Op, Left: CloneExpr(e.Left), Right: CloneExpr(e.Right)}}

	case *EBoolean:
		return Expr{Loc: expr.Loc, Data: &EBoolean{Value: e.Value}}

	case *ESuper:
		return Expr{Loc: expr.Loc, Data: &ESuper{}}

	case *ENull:
		return Expr{Loc: expr.Loc, Data: &ENull{}}

	case *EUndefined:
		return Expr{Loc: expr.Loc, Data: &EUndefined{}}

	case *EThis:
		return Expr{Loc: expr.Loc, Data: &EThis{}}

	case *ENew:
		return Expr{Loc: expr.Loc, Data: &ENew{Target: CloneExpr(e.Target), Args: cloneExprs(e.Args)}}

	case *ECall:
		return Expr{Loc: expr.Loc, Data: &ECall{Target: CloneExpr(e.Target), Args: cloneExprs(e.Args)}}

	case *EDot:
		return Expr{Loc: expr.Loc, Data: &EDot{Target: CloneExpr(e.Target), Name: e.Name, NameLoc: e.NameLoc}}

	case *EIndex:
		return Expr{Loc: expr.Loc, Data: &EIndex{Target: CloneExpr(e.Target), Index: CloneExpr(e.Index)}}

	case *EArrow:
		return Expr{Loc: expr.Loc, Data: &EArrow{
			Args:       cloneArgs(e.Args),
			Body:       FnBody{Loc: e.Body.Loc, Stmts: cloneStmts(e.Body.Stmts)},
			IsAsync:    e.IsAsync,
			HasRestArg: e.HasRestArg,
			PreferExpr: e.PreferExpr,
		}}

	case *EFunction:
		return Expr{Loc: expr.Loc, Data: &EFunction{Fn: cloneFn(e.Fn)}}

	case *EClass:
		return Expr{Loc: expr.Loc, Data: &EClass{Class: cloneClass(e.Class)}}

	case *EIdentifier:
		return Expr{Loc: expr.Loc, Data: &EIdentifier{Name: e.Name}}

	case *EMissing:
		return Expr{Loc: expr.Loc, Data: &EMissing{}}

	case *ENumber:
		return Expr{Loc: expr.Loc, Data: &ENumber{Value: e.Value}}

	case *EObject:
		return Expr{Loc: expr.Loc, Data: &EObject{Properties: cloneProperties(e.Properties), IsSingleLine: e.IsSingleLine}}

	case *ESpread:
		return Expr{Loc: expr.Loc, Data: &ESpread{Value: CloneExpr(e.Value)}}

	case *EString:
		return Expr{Loc: expr.Loc, Data: &EString{Value: e.Value}}

	case *ERegExp:
		return Expr{Loc: expr.Loc, Data: &ERegExp{Value: e.Value}}

	case *EIf:
		return Expr{Loc: expr.Loc, Data: &EIf{Test: CloneExpr(e.Test), Yes: CloneExpr(e.Yes), No: CloneExpr(e.No)}}

	default:
		panic("Internal error: unexpected expression in CloneExpr")
	}
}

func cloneExprs(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	clones := make([]Expr, len(exprs))
	for i, expr := range exprs {
		clones[i] = CloneExpr(expr)
	}
	return clones
}

func cloneExprOrNil(expr *Expr) *Expr {
	if expr == nil {
		return nil
	}
	clone := CloneExpr(*expr)
	return &clone
}

func cloneArgs(args []Arg) []Arg {
	if args == nil {
		return nil
	}
	clones := make([]Arg, len(args))
	for i, arg := range args {
		clones[i] = Arg{
			Decorators: cloneExprs(arg.Decorators),
			Name:       arg.Name,
			Default:    cloneExprOrNil(arg.Default),
		}
	}
	return clones
}

func cloneFn(fn Fn) Fn {
	return Fn{
		Name:        fn.Name,
		Args:        cloneArgs(fn.Args),
		Body:        FnBody{Loc: fn.Body.Loc, Stmts: cloneStmts(fn.Body.Stmts)},
		IsAsync:     fn.IsAsync,
		IsGenerator: fn.IsGenerator,
		HasRestArg:  fn.HasRestArg,
	}
}

func cloneProperties(props []Property) []Property {
	if props == nil {
		return nil
	}
	clones := make([]Property, len(props))
	for i, prop := range props {
		clones[i] = Property{
			Decorators:  cloneExprs(prop.Decorators),
			Key:         CloneExpr(prop.Key),
			Value:       cloneExprOrNil(prop.Value),
			Initializer: cloneExprOrNil(prop.Initializer),
			Kind:        prop.Kind,
			IsComputed:  prop.IsComputed,
			IsMethod:    prop.IsMethod,
			IsStatic:    prop.IsStatic,
		}
	}
	return clones
}

func cloneClass(class Class) Class {
	return Class{
		Decorators: cloneExprs(class.Decorators),
		Name:       class.Name,
		Extends:    cloneExprOrNil(class.Extends),
		BodyLoc:    class.BodyLoc,
		Properties: cloneProperties(class.Properties),
	}
}

func cloneStmts(stmts []Stmt) []Stmt {
	clones := make([]Stmt, len(stmts))
	for i, stmt := range stmts {
		clones[i] = CloneStmt(stmt)
	}
	return clones
}

func cloneStmtOrNil(stmt *Stmt) *Stmt {
	if stmt == nil {
		return nil
	}
	clone := CloneStmt(*stmt)
	return &clone
}

// CloneStmt returns a deep copy of a statement
func CloneStmt(stmt Stmt) Stmt {
	switch s := stmt.Data.(type) {
	case *SBlock:
		return Stmt{Loc: stmt.Loc, Data: &SBlock{Stmts: cloneStmts(s.Stmts)}}

	case *SEmpty:
		return Stmt{Loc: stmt.Loc, Data: &SEmpty{}}

	case *SDebugger:
		return Stmt{Loc: stmt.Loc, Data: &SDebugger{}}

	case *SExportClause:
		items := make([]ClauseItem, len(s.Items))
		copy(items, s.Items)
		return Stmt{Loc: stmt.Loc, Data: &SExportClause{Items: items}}

	case *SExportDefault:
		value := ExprOrStmt{}
		if s.Value.Expr != nil {
			value.Expr = cloneExprOrNil(s.Value.Expr)
		} else {
			value.Stmt = cloneStmtOrNil(s.Value.Stmt)
		}
		return Stmt{Loc: stmt.Loc, Data: &SExportDefault{Value: value}}

	case *SExpr:
		return Stmt{Loc: stmt.Loc, Data: &SExpr{Value: CloneExpr(s.Value)}}

	case *SEnum:
		values := make([]EnumValue, len(s.Values))
		for i, value := range s.Values {
			values[i] = EnumValue{Loc: value.Loc, Name: value.Name, Value: cloneExprOrNil(value.Value)}
		}
		return Stmt{Loc: stmt.Loc, Data: &SEnum{Name: s.Name, Values: values, IsExport: s.IsExport}}

	case *SFunction:
		return Stmt{Loc: stmt.Loc, Data: &SFunction{Fn: cloneFn(s.Fn), IsExport: s.IsExport}}

	case *SClass:
		return Stmt{Loc: stmt.Loc, Data: &SClass{Class: cloneClass(s.Class), IsExport: s.IsExport}}

	case *SIf:
		return Stmt{Loc: stmt.Loc, Data: &SIf{Test: CloneExpr(s.Test), Yes: CloneStmt(s.Yes), No: cloneStmtOrNil(s.No)}}

	case *SFor:
		var test, update *Expr
		if s.Test != nil {
			test = cloneExprOrNil(s.Test)
		}
		if s.Update != nil {
			update = cloneExprOrNil(s.Update)
		}
		return Stmt{Loc: stmt.Loc, Data: &SFor{Init: cloneStmtOrNil(s.Init), Test: test, Update: update, Body: CloneStmt(s.Body)}}

	case *SWhile:
		return Stmt{Loc: stmt.Loc, Data: &SWhile{Test: CloneExpr(s.Test), Body: CloneStmt(s.Body)}}

	case *SReturn:
		return Stmt{Loc: stmt.Loc, Data: &SReturn{Value: cloneExprOrNil(s.Value)}}

	case *SThrow:
		return Stmt{Loc: stmt.Loc, Data: &SThrow{Value: CloneExpr(s.Value)}}

	case *SLocal:
		decls := make([]Decl, len(s.Decls))
		for i, decl := range s.Decls {
			decls[i] = Decl{Name: decl.Name, Value: cloneExprOrNil(decl.Value)}
		}
		return Stmt{Loc: stmt.Loc, Data: &SLocal{Decls: decls, Kind: s.Kind, IsExport: s.IsExport}}

	default:
		panic("Internal error: unexpected statement in CloneStmt")
	}
}

package js_printer

import (
	"strconv"
	"strings"

	"github.com/lihuan-bot/swc/internal/js_ast"
)

type PrintOptions struct {
	// Omits all indentation and newlines, and drops semicolons that would
	// be followed by a closing brace
	RemoveWhitespace bool

	// The initial indentation level, in units of two spaces
	Indent int
}

type PrintResult struct {
	JS []byte
}

func Print(tree js_ast.AST, options PrintOptions) PrintResult {
	p := &printer{
		options: options,
		indent:  options.Indent,
	}

	for _, stmt := range tree.Stmts {
		p.printStmt(stmt)
	}

	return PrintResult{JS: p.js}
}

// PrintExpr prints a single expression, mostly for tests and diagnostics
func PrintExpr(expr js_ast.Expr, options PrintOptions) PrintResult {
	p := &printer{
		options: options,
		indent:  options.Indent,
	}
	p.printExpr(expr, js_ast.LLowest)
	return PrintResult{JS: p.js}
}

type printer struct {
	js             []byte
	options        PrintOptions
	indent         int
	needsSemicolon bool
}

func (p *printer) print(text string) {
	p.js = append(p.js, text...)
}

func (p *printer) printIndent() {
	if !p.options.RemoveWhitespace {
		for i := 0; i < p.indent; i++ {
			p.print("  ")
		}
	}
}

func (p *printer) printSpace() {
	if !p.options.RemoveWhitespace {
		p.print(" ")
	}
}

func (p *printer) printNewline() {
	if !p.options.RemoveWhitespace {
		p.print("\n")
	}
}

// In whitespace-removal mode a semicolon is held back until we know another
// statement follows it, so the last statement in a block doesn't pay for one
func (p *printer) printSemicolonAfterStatement() {
	if p.options.RemoveWhitespace {
		p.needsSemicolon = true
	} else {
		p.print(";\n")
	}
}

func (p *printer) printSemicolonIfNeeded() {
	if p.needsSemicolon {
		p.needsSemicolon = false
		p.print(";")
	}
}

func canPrintIdentifier(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i, c := range name {
		if c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		if i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return true
}

func (p *printer) printQuoted(text string) {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"\r", "\\r",
		"\t", "\\t",
	)
	p.print("\"")
	p.print(replacer.Replace(text))
	p.print("\"")
}

func (p *printer) printNumber(value float64) {
	if value == float64(int64(value)) {
		p.print(strconv.FormatInt(int64(value), 10))
	} else {
		p.print(strconv.FormatFloat(value, 'g', -1, 64))
	}
}

// Statement-level expressions starting with these tokens must be wrapped in
// parentheses so they aren't parsed as declarations or blocks
func stmtStartNeedsParens(expr js_ast.Expr) bool {
	switch e := expr.Data.(type) {
	case *js_ast.EFunction, *js_ast.EClass, *js_ast.EObject:
		return true
	case *js_ast.EBinary:
		return stmtStartNeedsParens(e.Left)
	case *js_ast.ECall:
		return stmtStartNeedsParens(e.Target)
	case *js_ast.EDot:
		return stmtStartNeedsParens(e.Target)
	case *js_ast.EIndex:
		return stmtStartNeedsParens(e.Target)
	}
	return false
}

func (p *printer) printDecorators(decorators []js_ast.Expr, sameLine bool) {
	for _, dec := range decorators {
		p.print("@")
		p.printExpr(dec, js_ast.LPostfix)
		if sameLine {
			p.printSpace()
		} else {
			p.printNewline()
			p.printIndent()
		}
	}
}

func (p *printer) printFnArgs(args []js_ast.Arg, hasRestArg bool) {
	p.print("(")
	for i, arg := range args {
		if i != 0 {
			p.print(",")
			p.printSpace()
		}
		p.printDecorators(arg.Decorators, true)
		if hasRestArg && i == len(args)-1 {
			p.print("...")
		}
		p.print(arg.Name)
		if arg.Default != nil {
			p.printSpace()
			p.print("=")
			p.printSpace()
			p.printExpr(*arg.Default, js_ast.LComma)
		}
	}
	p.print(")")
}

func (p *printer) printBlockBody(stmts []js_ast.Stmt) {
	p.print("{")
	p.printNewline()
	p.indent++
	for _, stmt := range stmts {
		p.printSemicolonIfNeeded()
		p.printStmt(stmt)
	}
	p.indent--
	p.needsSemicolon = false
	p.printIndent()
	p.print("}")
}

func (p *printer) printFn(fn js_ast.Fn, keyword string) {
	p.print(keyword)
	if fn.IsGenerator {
		p.print("*")
	}
	if fn.Name != "" {
		p.print(" ")
		p.print(fn.Name)
	}
	p.printFnArgs(fn.Args, fn.HasRestArg)
	p.printSpace()
	p.printBlockBody(fn.Body.Stmts)
}

func (p *printer) printClass(class js_ast.Class) {
	p.print("class")
	if class.Name != "" {
		p.print(" ")
		p.print(class.Name)
	}
	if class.Extends != nil {
		p.print(" extends ")
		p.printExpr(*class.Extends, js_ast.LNew)
	}
	p.printSpace()
	p.print("{")
	p.printNewline()
	p.indent++
	for _, prop := range class.Properties {
		p.printSemicolonIfNeeded()
		p.printIndent()
		p.printDecorators(prop.Decorators, false)
		p.printProperty(prop, true)
		p.printNewline()
	}
	p.indent--
	p.needsSemicolon = false
	p.printIndent()
	p.print("}")
}

func (p *printer) printPropertyKey(prop js_ast.Property) {
	if prop.IsComputed {
		p.print("[")
		p.printExpr(prop.Key, js_ast.LComma)
		p.print("]")
		return
	}
	if key, ok := prop.Key.Data.(*js_ast.EString); ok {
		if canPrintIdentifier(key.Value) {
			p.print(key.Value)
		} else {
			p.printQuoted(key.Value)
		}
		return
	}
	p.printExpr(prop.Key, js_ast.LLowest)
}

func (p *printer) printProperty(prop js_ast.Property, isClassMember bool) {
	if prop.Kind == js_ast.PropertySpread {
		p.print("...")
		p.printExpr(*prop.Value, js_ast.LComma)
		return
	}

	if prop.IsStatic {
		p.print("static ")
	}

	switch prop.Kind {
	case js_ast.PropertyGet:
		p.print("get ")
	case js_ast.PropertySet:
		p.print("set ")
	}

	if prop.IsMethod {
		fn := prop.Value.Data.(*js_ast.EFunction).Fn
		if fn.IsAsync {
			p.print("async ")
		}
		if fn.IsGenerator {
			p.print("*")
		}
		p.printPropertyKey(prop)
		p.printFnArgs(fn.Args, fn.HasRestArg)
		p.printSpace()
		p.printBlockBody(fn.Body.Stmts)
		return
	}

	p.printPropertyKey(prop)

	if isClassMember {
		// This is a class field
		if prop.Initializer != nil {
			p.printSpace()
			p.print("=")
			p.printSpace()
			p.printExpr(*prop.Initializer, js_ast.LComma)
		}
		p.print(";")
		return
	}

	if prop.Value != nil {
		p.print(":")
		p.printSpace()
		p.printExpr(*prop.Value, js_ast.LComma)
	}
}

func (p *printer) printExpr(expr js_ast.Expr, level js_ast.L) {
	switch e := expr.Data.(type) {
	case *js_ast.EMissing:

	case *js_ast.EUndefined:
		p.print("void 0")

	case *js_ast.ENull:
		p.print("null")

	case *js_ast.EThis:
		p.print("this")

	case *js_ast.ESuper:
		p.print("super")

	case *js_ast.EBoolean:
		if e.Value {
			p.print("true")
		} else {
			p.print("false")
		}

	case *js_ast.ENumber:
		p.printNumber(e.Value)

	case *js_ast.EString:
		p.printQuoted(e.Value)

	case *js_ast.ERegExp:
		p.print(e.Value)

	case *js_ast.EIdentifier:
		p.print(e.Name)

	case *js_ast.EArray:
		p.print("[")
		for i, item := range e.Items {
			if i != 0 {
				p.print(",")
				p.printSpace()
			}
			p.printExpr(item, js_ast.LComma)
		}
		p.print("]")

	case *js_ast.EObject:
		p.print("{")
		if len(e.Properties) > 0 {
			if e.IsSingleLine || p.options.RemoveWhitespace {
				p.printSpace()
				for i, prop := range e.Properties {
					if i != 0 {
						p.print(",")
						p.printSpace()
					}
					p.printProperty(prop, false)
				}
				p.printSpace()
			} else {
				p.printNewline()
				p.indent++
				for i, prop := range e.Properties {
					if i != 0 {
						p.print(",")
						p.printNewline()
					}
					p.printIndent()
					p.printProperty(prop, false)
				}
				p.printNewline()
				p.indent--
				p.printIndent()
			}
		}
		p.print("}")

	case *js_ast.ESpread:
		p.print("...")
		p.printExpr(e.Value, js_ast.LComma)

	case *js_ast.EUnary:
		entry := js_ast.OpTable[e.Op]
		wrap := level >= entry.Level
		if wrap {
			p.print("(")
		}
		if e.Op.IsPrefix() {
			p.print(entry.Text)
			if entry.IsKeyword {
				p.print(" ")
			}
			p.printExpr(e.Value, js_ast.LPrefix-1)
		} else {
			p.printExpr(e.Value, js_ast.LPostfix-1)
			p.print(entry.Text)
		}
		if wrap {
			p.print(")")
		}

	case *js_ast.EBinary:
		entry := js_ast.OpTable[e.Op]
		wrap := level >= entry.Level
		leftLevel := entry.Level - 1
		rightLevel := entry.Level - 1
		if e.Op.IsRightAssociative() {
			leftLevel = entry.Level
		}
		if e.Op.IsLeftAssociative() {
			rightLevel = entry.Level
		}
		if wrap {
			p.print("(")
		}
		p.printExpr(e.Left, leftLevel)
		if e.Op == js_ast.BinOpComma {
			p.print(",")
		} else {
			p.printSpace()
			p.print(entry.Text)
		}
		p.printSpace()
		p.printExpr(e.Right, rightLevel)
		if wrap {
			p.print(")")
		}

	case *js_ast.EIf:
		wrap := level >= js_ast.LConditional
		if wrap {
			p.print("(")
		}
		p.printExpr(e.Test, js_ast.LConditional)
		p.printSpace()
		p.print("?")
		p.printSpace()
		p.printExpr(e.Yes, js_ast.LYield)
		p.printSpace()
		p.print(":")
		p.printSpace()
		p.printExpr(e.No, js_ast.LYield)
		if wrap {
			p.print(")")
		}

	case *js_ast.ECall:
		p.printExpr(e.Target, js_ast.LPostfix)
		p.print("(")
		for i, arg := range e.Args {
			if i != 0 {
				p.print(",")
				p.printSpace()
			}
			p.printExpr(arg, js_ast.LComma)
		}
		p.print(")")

	case *js_ast.ENew:
		wrap := level >= js_ast.LCall
		if wrap {
			p.print("(")
		}
		p.print("new ")
		p.printExpr(e.Target, js_ast.LCall)
		p.print("(")
		for i, arg := range e.Args {
			if i != 0 {
				p.print(",")
				p.printSpace()
			}
			p.printExpr(arg, js_ast.LComma)
		}
		p.print(")")
		if wrap {
			p.print(")")
		}

	case *js_ast.EDot:
		p.printExpr(e.Target, js_ast.LPostfix)
		p.print(".")
		p.print(e.Name)

	case *js_ast.EIndex:
		p.printExpr(e.Target, js_ast.LPostfix)
		p.print("[")
		p.printExpr(e.Index, js_ast.LLowest)
		p.print("]")

	case *js_ast.EFunction:
		wrap := level >= js_ast.LCall
		if wrap {
			p.print("(")
		}
		if e.Fn.IsAsync {
			p.print("async ")
		}
		p.printFn(e.Fn, "function")
		if wrap {
			p.print(")")
		}

	case *js_ast.EClass:
		wrap := level >= js_ast.LCall
		if wrap {
			p.print("(")
		}
		p.printDecorators(e.Class.Decorators, true)
		p.printClass(e.Class)
		if wrap {
			p.print(")")
		}

	case *js_ast.EArrow:
		wrap := level >= js_ast.LAssign
		if wrap {
			p.print("(")
		}
		if e.IsAsync {
			p.print("async ")
		}
		p.printFnArgs(e.Args, e.HasRestArg)
		p.printSpace()
		p.print("=>")
		p.printSpace()
		if e.PreferExpr && len(e.Body.Stmts) == 1 {
			if ret, ok := e.Body.Stmts[0].Data.(*js_ast.SReturn); ok && ret.Value != nil {
				p.printExpr(*ret.Value, js_ast.LComma)
				if wrap {
					p.print(")")
				}
				break
			}
		}
		p.printBlockBody(e.Body.Stmts)
		if wrap {
			p.print(")")
		}

	default:
		panic("Internal error: unexpected expression in printExpr")
	}
}

func (p *printer) printDecls(decls []js_ast.Decl) {
	for i, decl := range decls {
		if i != 0 {
			p.print(",")
			p.printSpace()
		}
		p.print(decl.Name)
		if decl.Value != nil {
			p.printSpace()
			p.print("=")
			p.printSpace()
			p.printExpr(*decl.Value, js_ast.LComma)
		}
	}
}

// Single non-block statements hang on their own indented line,
// as in "if (x)\n  y;"
func (p *printer) printBody(body js_ast.Stmt) {
	if _, ok := body.Data.(*js_ast.SBlock); ok {
		p.printSpace()
		p.printStmtInline(body)
		p.printNewline()
	} else {
		p.printNewline()
		p.indent++
		p.printStmt(body)
		p.indent--
	}
}

// printStmtInline prints a statement without its leading indent, for the
// "} else {" and "if (x) {" positions
func (p *printer) printStmtInline(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		p.printBlockBody(s.Stmts)
	default:
		panic("Internal error: printStmtInline only handles blocks")
	}
}

func (p *printer) printStmt(stmt js_ast.Stmt) {
	p.printSemicolonIfNeeded()

	switch s := stmt.Data.(type) {
	case *js_ast.SEmpty:
		p.printIndent()
		p.print(";")
		p.printNewline()

	case *js_ast.SDebugger:
		p.printIndent()
		p.print("debugger")
		p.printSemicolonAfterStatement()

	case *js_ast.SBlock:
		p.printIndent()
		p.printBlockBody(s.Stmts)
		p.printNewline()

	case *js_ast.SExpr:
		p.printIndent()
		if stmtStartNeedsParens(s.Value) {
			p.print("(")
			p.printExpr(s.Value, js_ast.LLowest)
			p.print(")")
		} else {
			p.printExpr(s.Value, js_ast.LLowest)
		}
		p.printSemicolonAfterStatement()

	case *js_ast.SLocal:
		p.printIndent()
		if s.IsExport {
			p.print("export ")
		}
		p.print(s.Kind.String())
		p.print(" ")
		p.printDecls(s.Decls)
		p.printSemicolonAfterStatement()

	case *js_ast.SFunction:
		p.printIndent()
		if s.IsExport {
			p.print("export ")
		}
		if s.Fn.IsAsync {
			p.print("async ")
		}
		p.printFn(s.Fn, "function")
		p.printNewline()

	case *js_ast.SClass:
		p.printIndent()
		p.printDecorators(s.Class.Decorators, false)
		if s.IsExport {
			p.print("export ")
		}
		p.printClass(s.Class)
		p.printNewline()

	case *js_ast.SEnum:
		p.printIndent()
		if s.IsExport {
			p.print("export ")
		}
		p.print("enum ")
		p.print(s.Name)
		p.printSpace()
		p.print("{")
		p.printNewline()
		p.indent++
		for _, value := range s.Values {
			p.printIndent()
			if canPrintIdentifier(value.Name) {
				p.print(value.Name)
			} else {
				p.printQuoted(value.Name)
			}
			if value.Value != nil {
				p.printSpace()
				p.print("=")
				p.printSpace()
				p.printExpr(*value.Value, js_ast.LComma)
			}
			p.print(",")
			p.printNewline()
		}
		p.indent--
		p.printIndent()
		p.print("}")
		p.printNewline()

	case *js_ast.SIf:
		p.printIndent()
		p.print("if")
		p.printSpace()
		p.print("(")
		p.printExpr(s.Test, js_ast.LLowest)
		p.print(")")
		if s.No == nil {
			p.printBody(s.Yes)
			return
		}
		if _, yesIsBlock := s.Yes.Data.(*js_ast.SBlock); yesIsBlock {
			p.printSpace()
			p.printStmtInline(s.Yes)
			p.printSpace()
		} else {
			p.printNewline()
			p.indent++
			p.printStmt(s.Yes)
			p.indent--
			p.printIndent()
		}
		p.print("else")
		if _, noIsBlock := s.No.Data.(*js_ast.SBlock); noIsBlock {
			p.printSpace()
			p.printStmtInline(*s.No)
			p.printNewline()
		} else {
			p.printNewline()
			p.indent++
			p.printStmt(*s.No)
			p.indent--
		}

	case *js_ast.SFor:
		p.printIndent()
		p.print("for")
		p.printSpace()
		p.print("(")
		if s.Init != nil {
			switch init := s.Init.Data.(type) {
			case *js_ast.SLocal:
				p.print(init.Kind.String())
				p.print(" ")
				p.printDecls(init.Decls)
			case *js_ast.SExpr:
				p.printExpr(init.Value, js_ast.LLowest)
			}
		}
		p.print(";")
		p.printSpace()
		if s.Test != nil {
			p.printExpr(*s.Test, js_ast.LLowest)
		}
		p.print(";")
		p.printSpace()
		if s.Update != nil {
			p.printExpr(*s.Update, js_ast.LLowest)
		}
		p.print(")")
		p.printBody(s.Body)

	case *js_ast.SWhile:
		p.printIndent()
		p.print("while")
		p.printSpace()
		p.print("(")
		p.printExpr(s.Test, js_ast.LLowest)
		p.print(")")
		p.printBody(s.Body)

	case *js_ast.SReturn:
		p.printIndent()
		p.print("return")
		if s.Value != nil {
			p.print(" ")
			p.printExpr(*s.Value, js_ast.LLowest)
		}
		p.printSemicolonAfterStatement()

	case *js_ast.SThrow:
		p.printIndent()
		p.print("throw ")
		p.printExpr(s.Value, js_ast.LLowest)
		p.printSemicolonAfterStatement()

	case *js_ast.SExportClause:
		p.printIndent()
		p.print("export")
		p.printSpace()
		p.print("{")
		for i, item := range s.Items {
			if i != 0 {
				p.print(",")
			}
			p.printSpace()
			p.print(item.Name)
			if item.Alias != item.Name {
				p.print(" as ")
				p.print(item.Alias)
			}
		}
		p.printSpace()
		p.print("}")
		p.printSemicolonAfterStatement()

	case *js_ast.SExportDefault:
		p.printIndent()
		p.print("export default ")
		if s.Value.Expr != nil {
			p.printExpr(*s.Value.Expr, js_ast.LComma)
			p.printSemicolonAfterStatement()
			return
		}
		switch inner := s.Value.Stmt.Data.(type) {
		case *js_ast.SFunction:
			if inner.Fn.IsAsync {
				p.print("async ")
			}
			p.printFn(inner.Fn, "function")
			p.printNewline()
		case *js_ast.SClass:
			p.printDecorators(inner.Class.Decorators, true)
			p.printClass(inner.Class)
			p.printNewline()
		default:
			panic("Internal error: unexpected default export statement")
		}

	default:
		panic("Internal error: unexpected statement in printStmt")
	}
}

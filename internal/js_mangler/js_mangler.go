package js_mangler

import (
	"sort"

	"github.com/dlclark/regexp2"

	"github.com/lihuan-bot/swc/internal/js_ast"
)

// MangleProps renames property names matching a pattern to short generated
// names, consistently across the whole module: every dot access and every
// non-computed object or class member key sharing an original name maps to
// the same minified name. The tree is rewritten in place; the caller hands
// over ownership. The returned map records original name -> minified name.
//
// The pattern is a JS-flavored regex so the same configuration value works
// for tooling written against the JavaScript implementations of this option.
func MangleProps(tree *js_ast.AST, pattern *regexp2.Regexp, minifier *js_ast.NameMinifier) map[string]string {
	if minifier == nil {
		minifier = &js_ast.DefaultNameMinifier
	}

	m := &propMangler{
		pattern:  pattern,
		counts:   make(map[string]int),
		reserved: make(map[string]bool),
	}

	// First pass: find every renamable occurrence and reserve the names that
	// must not be produced by renaming
	m.collect = true
	m.visitStmts(tree.Stmts)

	// Frequent properties get the shortest names. Ties keep first-seen order
	// so output is deterministic.
	order := m.order
	counts := m.counts
	sort.SliceStable(order, func(i int, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	renamed := make(map[string]string, len(order))
	next := 0
	for _, original := range order {
		var name string
		for {
			name = minifier.NumberToMinifiedName(next)
			next++
			if !m.reserved[name] && !isShortKeyword(name) {
				break
			}
		}
		m.reserved[name] = true
		renamed[original] = name
	}

	// Second pass: apply the mapping
	m.collect = false
	m.renamed = renamed
	m.visitStmts(tree.Stmts)

	return renamed
}

// Generated names this short can collide with keywords
func isShortKeyword(name string) bool {
	switch name {
	case "do", "if", "in":
		return true
	}
	return false
}

// Never renamed regardless of the pattern, since the runtime gives these
// names meaning
func isUnmanglable(name string) bool {
	switch name {
	case "constructor", "prototype", "__proto__":
		return true
	}
	return false
}

type propMangler struct {
	pattern  *regexp2.Regexp
	collect  bool
	counts   map[string]int
	order    []string
	reserved map[string]bool
	renamed  map[string]string
}

// visitName is called with every property-name site in the module. During
// collection it classifies the name; during rewriting it applies the map.
func (m *propMangler) visitName(name *string) {
	if isUnmanglable(*name) {
		return
	}
	if m.collect {
		matched, err := m.pattern.MatchString(*name)
		if err != nil || !matched {
			m.reserved[*name] = true
			return
		}
		if m.counts[*name] == 0 {
			m.order = append(m.order, *name)
		}
		m.counts[*name]++
		return
	}
	if minified, ok := m.renamed[*name]; ok {
		*name = minified
	}
}

func (m *propMangler) visitStmts(stmts []js_ast.Stmt) {
	for i := range stmts {
		m.visitStmt(&stmts[i])
	}
}

func (m *propMangler) visitStmt(stmt *js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		m.visitStmts(s.Stmts)

	case *js_ast.SExpr:
		m.visitExpr(&s.Value)

	case *js_ast.SExportDefault:
		if s.Value.Expr != nil {
			m.visitExpr(s.Value.Expr)
		}
		if s.Value.Stmt != nil {
			m.visitStmt(s.Value.Stmt)
		}

	case *js_ast.SEnum:
		for i := range s.Values {
			if s.Values[i].Value != nil {
				m.visitExpr(s.Values[i].Value)
			}
		}

	case *js_ast.SFunction:
		m.visitFn(&s.Fn)

	case *js_ast.SClass:
		m.visitClass(&s.Class)

	case *js_ast.SIf:
		m.visitExpr(&s.Test)
		m.visitStmt(&s.Yes)
		if s.No != nil {
			m.visitStmt(s.No)
		}

	case *js_ast.SFor:
		if s.Init != nil {
			m.visitStmt(s.Init)
		}
		if s.Test != nil {
			m.visitExpr(s.Test)
		}
		if s.Update != nil {
			m.visitExpr(s.Update)
		}
		m.visitStmt(&s.Body)

	case *js_ast.SWhile:
		m.visitExpr(&s.Test)
		m.visitStmt(&s.Body)

	case *js_ast.SReturn:
		if s.Value != nil {
			m.visitExpr(s.Value)
		}

	case *js_ast.SThrow:
		m.visitExpr(&s.Value)

	case *js_ast.SLocal:
		for i := range s.Decls {
			if s.Decls[i].Value != nil {
				m.visitExpr(s.Decls[i].Value)
			}
		}
	}
}

func (m *propMangler) visitExpr(expr *js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EArray:
		for i := range e.Items {
			m.visitExpr(&e.Items[i])
		}

	case *js_ast.EUnary:
		m.visitExpr(&e.Value)

	case *js_ast.EBinary:
		m.visitExpr(&e.Left)
		m.visitExpr(&e.Right)

	case *js_ast.ENew:
		m.visitExpr(&e.Target)
		for i := range e.Args {
			m.visitExpr(&e.Args[i])
		}

	case *js_ast.ECall:
		m.visitExpr(&e.Target)
		for i := range e.Args {
			m.visitExpr(&e.Args[i])
		}

	case *js_ast.EDot:
		m.visitName(&e.Name)
		m.visitExpr(&e.Target)

	case *js_ast.EIndex:
		m.visitExpr(&e.Target)
		m.visitExpr(&e.Index)

	case *js_ast.EArrow:
		m.visitStmts(e.Body.Stmts)

	case *js_ast.EFunction:
		m.visitFn(&e.Fn)

	case *js_ast.EClass:
		m.visitClass(&e.Class)

	case *js_ast.EObject:
		for i := range e.Properties {
			m.visitProperty(&e.Properties[i])
		}

	case *js_ast.ESpread:
		m.visitExpr(&e.Value)

	case *js_ast.EIf:
		m.visitExpr(&e.Test)
		m.visitExpr(&e.Yes)
		m.visitExpr(&e.No)
	}
}

func (m *propMangler) visitFn(fn *js_ast.Fn) {
	for i := range fn.Args {
		if fn.Args[i].Default != nil {
			m.visitExpr(fn.Args[i].Default)
		}
	}
	m.visitStmts(fn.Body.Stmts)
}

func (m *propMangler) visitProperty(prop *js_ast.Property) {
	if prop.IsComputed {
		m.visitExpr(&prop.Key)
	} else if key, ok := prop.Key.Data.(*js_ast.EString); ok && prop.Kind != js_ast.PropertySpread {
		m.visitName(&key.Value)
	}
	if prop.Value != nil {
		m.visitExpr(prop.Value)
	}
	if prop.Initializer != nil {
		m.visitExpr(prop.Initializer)
	}
}

func (m *propMangler) visitClass(class *js_ast.Class) {
	for i := range class.Decorators {
		m.visitExpr(&class.Decorators[i])
	}
	if class.Extends != nil {
		m.visitExpr(class.Extends)
	}
	for i := range class.Properties {
		m.visitProperty(&class.Properties[i])
	}
}

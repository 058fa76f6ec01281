package js_lints

import (
	"github.com/lihuan-bot/swc/internal/js_ast"
	"github.com/lihuan-bot/swc/internal/logger"
)

// Reaction controls what a triggered rule does with its finding
type Reaction uint8

const (
	ReactionOff Reaction = iota
	ReactionWarning
	ReactionError
)

type Options struct {
	NoAlert Reaction
}

// Run applies all enabled rules to one module. Rules never modify the tree;
// findings go through the logger.
func Run(log logger.Log, source *logger.Source, tree js_ast.AST, options Options) {
	if options.NoAlert != ReactionOff {
		lint := &noAlert{
			log:              log,
			source:           source,
			reaction:         options.NoAlert,
			topLevelDeclared: collectTopLevelDecls(tree.Stmts),
		}
		lint.visitStmts(tree.Stmts)
	}
}

// collectTopLevelDecls gathers every name bound at module scope, so rules can
// tell a global apart from something the module itself declared.
func collectTopLevelDecls(stmts []js_ast.Stmt) map[string]bool {
	declared := make(map[string]bool)
	for _, stmt := range stmts {
		switch s := stmt.Data.(type) {
		case *js_ast.SLocal:
			for _, decl := range s.Decls {
				declared[decl.Name] = true
			}

		case *js_ast.SFunction:
			if s.Fn.Name != "" {
				declared[s.Fn.Name] = true
			}

		case *js_ast.SClass:
			if s.Class.Name != "" {
				declared[s.Class.Name] = true
			}

		case *js_ast.SEnum:
			declared[s.Name] = true
		}
	}
	return declared
}

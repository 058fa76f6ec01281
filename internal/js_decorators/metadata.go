package js_decorators

import (
	"github.com/lihuan-bot/swc/internal/js_ast"
	"github.com/lihuan-bot/swc/internal/logger"
	"github.com/lihuan-bot/swc/internal/runtime"
)

// These transforms run over a decorated class before lowering and only add
// decorators, so the lowering machinery below them handles everything they
// emit. applyMetadata mirrors TypeScript's "emitDecoratorMetadata" mode;
// applyParamMetadata always runs because constructor parameter decorators
// are part of the proposal itself, not of the metadata extension.

// applyParamMetadata lifts constructor parameter decorators up to class-level
// "__param(index, decorator)" decorators. The wrapper returned by __param
// receives the class and replays the original decorator with the parameter
// index, which is how the legacy proposal exposes constructor parameters.
func (l *lowerer) applyParamMetadata(loc logger.Loc, class js_ast.Class) js_ast.Class {
	for i, prop := range class.Properties {
		if !js_ast.IsConstructor(prop) {
			continue
		}
		fnData, ok := prop.Value.Data.(*js_ast.EFunction)
		if !ok {
			continue
		}
		fn := fnData.Fn
		fn.Args = append([]js_ast.Arg{}, fn.Args...)
		changed := false
		for index := range fn.Args {
			for _, dec := range fn.Args[index].Decorators {
				class.Decorators = append(class.Decorators, l.helperCall(dec.Loc, runtime.Param,
					js_ast.Expr{Loc: dec.Loc, Data: &js_ast.ENumber{Value: float64(index)}},
					dec,
				))
				changed = true
			}
			fn.Args[index].Decorators = nil
		}
		if changed {
			value := js_ast.Expr{Loc: prop.Value.Loc, Data: &js_ast.EFunction{Fn: fn}}
			class.Properties[i].Value = &value
		}
		break
	}
	return class
}

// applyMetadata attaches "design:type" decorators to every decorated member
// and "design:paramtypes" to a decorated class with a constructor. Types are
// inferred from initializer shapes since the AST here is already type-erased;
// enum references use the kinds collected before lowering started.
func (l *lowerer) applyMetadata(loc logger.Loc, class js_ast.Class) js_ast.Class {
	for i := range class.Properties {
		prop := &class.Properties[i]
		if len(prop.Decorators) == 0 || js_ast.IsConstructor(*prop) {
			continue
		}
		var designType js_ast.Expr
		if prop.IsMethod {
			designType = ident(loc, "Function")
		} else {
			designType = l.inferType(loc, prop.Initializer)
		}
		prop.Decorators = append(prop.Decorators, l.helperCall(loc, runtime.Metadata,
			js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: "design:type"}},
			designType,
		))
	}

	if len(class.Decorators) > 0 {
		for _, prop := range class.Properties {
			if !js_ast.IsConstructor(prop) {
				continue
			}
			fnData, ok := prop.Value.Data.(*js_ast.EFunction)
			if !ok || len(fnData.Fn.Args) == 0 {
				break
			}
			paramTypes := make([]js_ast.Expr, len(fnData.Fn.Args))
			for i, arg := range fnData.Fn.Args {
				paramTypes[i] = l.inferType(loc, arg.Default)
			}
			class.Decorators = append(class.Decorators, l.helperCall(loc, runtime.Metadata,
				js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: "design:paramtypes"}},
				js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: paramTypes, IsSingleLine: true}},
			))
			break
		}
	}

	return class
}

// inferType guesses the runtime constructor for a value expression. Without
// type annotations only literal shapes and known enum references can be
// classified; everything else degrades to Object, which is what TypeScript
// emits for untypeable positions.
func (l *lowerer) inferType(loc logger.Loc, value *js_ast.Expr) js_ast.Expr {
	if value == nil {
		return ident(loc, "Object")
	}
	switch e := value.Data.(type) {
	case *js_ast.EString:
		return ident(loc, "String")

	case *js_ast.ENumber:
		return ident(loc, "Number")

	case *js_ast.EBoolean:
		return ident(loc, "Boolean")

	case *js_ast.EArray:
		return ident(loc, "Array")

	case *js_ast.ERegExp:
		return ident(loc, "RegExp")

	case *js_ast.EArrow, *js_ast.EFunction:
		return ident(loc, "Function")

	case *js_ast.EUnary:
		if e.Op == js_ast.UnOpNeg || e.Op == js_ast.UnOpPos {
			return l.inferType(loc, &e.Value)
		}

	case *js_ast.ENew:
		if id, ok := e.Target.Data.(*js_ast.EIdentifier); ok {
			return ident(loc, id.Name)
		}

	case *js_ast.EDot:
		// Enum member access like "Color.Red"
		if id, ok := e.Target.Data.(*js_ast.EIdentifier); ok {
			if kind, ok := l.enums[id.Name]; ok {
				switch kind {
				case EnumKindString:
					return ident(loc, "String")
				case EnumKindNumber:
					return ident(loc, "Number")
				default:
					return ident(loc, "Object")
				}
			}
		}
	}
	return ident(loc, "Object")
}

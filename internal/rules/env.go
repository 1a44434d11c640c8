package rules

import (
	"fmt"
	"sync"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"
)

// Registry manages the CEL environment and caches compiled programs.
type Registry struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]cel.Program
}

// NewRegistry initializes the CEL environment with summoner variables and functions.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		ext.Strings(),
		ext.Lists(),
		cel.Variable("hero", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("template", cel.MapType(cel.StringType, cel.AnyType)),

		cel.Function("adjusted_cost",
			cel.Overload("adjusted_cost_int_string",
				[]*cel.Type{cel.IntType, cel.StringType},
				cel.IntType,
				cel.BinaryBinding(func(cost, formation ref.Val) ref.Val {
					c, ok := cost.Value().(int64)
					if !ok {
						return types.NewErr("adjusted_cost: cost must be an int")
					}
					f, ok := formation.Value().(string)
					if !ok {
						return types.NewErr("adjusted_cost: formation must be a string")
					}
					return types.Int(summoner.AdjustedCost(int(c), summoner.Formation(f)))
				}),
			),
		),
		cel.Function("capacity",
			cel.Overload("capacity_string_int",
				[]*cel.Type{cel.StringType, cel.IntType},
				cel.IntType,
				cel.BinaryBinding(func(formation, level ref.Val) ref.Val {
					f, ok := formation.Value().(string)
					if !ok {
						return types.NewErr("capacity: formation must be a string")
					}
					l, ok := level.Value().(int64)
					if !ok {
						return types.NewErr("capacity: level must be an int")
					}
					return types.Int(summoner.Capacity(summoner.Formation(f), int(l)))
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env, programs: make(map[string]cel.Program)}, nil
}

func (r *Registry) program(expression string) (cel.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prog, ok := r.programs[expression]; ok {
		return prog, nil
	}
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	r.programs[expression] = prog
	return prog, nil
}

// Compile checks that an expression is valid without evaluating it.
func (r *Registry) Compile(expression string) error {
	_, err := r.program(expression)
	return err
}

// Eval executes a CEL expression against the provided context.
func (r *Registry) Eval(expression string, context map[string]any) (any, error) {
	prog, err := r.program(expression)
	if err != nil {
		return nil, err
	}
	out, _, err := prog.Eval(context)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

// Allowed evaluates a boolean gate. An empty expression always allows.
func (r *Registry) Allowed(expression string, context map[string]any) (bool, error) {
	if expression == "" {
		return true, nil
	}
	out, err := r.Eval(expression, context)
	if err != nil {
		return false, err
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("expression %q must evaluate to a bool, got %T", expression, out)
	}
	return ok, nil
}

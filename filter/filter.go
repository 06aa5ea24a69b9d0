package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over record fields.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile parses an expression into a Filter. Record fields are free
// variables, so unknown names are allowed at compile time; the expression
// must produce a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // record fields resolve at match time
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the original expression text.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one record. Records that are not
// JSON objects never match.
func (f *Filter) Match(record any) (bool, error) {
	fields, ok := record.(map[string]any)
	if !ok {
		return false, nil
	}

	// Helpers first so record fields of the same name win.
	env := make(map[string]any, len(fields)+16)
	addHelperFunctions(env)
	for key, value := range fields {
		env[key] = value
	}

	// Accessor for keys that are not valid identifiers.
	env["field"] = func(name string) any {
		return fields[name]
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate filter: %w", err)
	}

	// AsBool cannot pin the type of expressions over undefined
	// variables, so the result is checked at run time.
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression returned %T, want bool", result)
	}
	return matched, nil
}

// helperFunctions creates the static helper set used during compilation
func helperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Current time
	env["now"] = time.Now
}

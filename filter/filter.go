// Package filter compiles expr-language predicates over user search
// results, so command-line callers can narrow result sets with
// expressions like:
//
//	Verified && contains(Name, "builder")
//	hadName("Telamon")
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/Archasion/arlox/roblox/users"
)

// Filter is a compiled predicate over user search results. A Filter is
// immutable and safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into a reusable Filter. The expression
// must evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Compile with the static environment for validation
	program, err := expr.Compile(expression,
		expr.Env(staticEnvironment()),
		expr.AllowUndefinedVariables(), // Allow user properties
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

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a user. Evaluation failures count
// as no match.
func (f *Filter) Match(user users.SearchResult) bool {
	result, err := expr.Run(f.program, runtimeEnvironment(user))
	if err != nil {
		return false
	}

	// Result is guaranteed to be bool due to AsBool() during compilation
	return result.(bool)
}

// Apply returns the subset of results matching the filter, preserving
// order.
func (f *Filter) Apply(results []users.SearchResult) []users.SearchResult {
	matched := make([]users.SearchResult, 0, len(results))
	for _, result := range results {
		if f.Match(result) {
			matched = append(matched, result)
		}
	}
	return matched
}

// staticEnvironment holds the helper functions available at compile time
func staticEnvironment() map[string]any {
	env := make(map[string]any, 16)
	addHelperFunctions(env)
	return env
}

// runtimeEnvironment combines the helpers with one user's properties
func runtimeEnvironment(user users.SearchResult) map[string]any {
	env := make(map[string]any, 16)
	addHelperFunctions(env)

	env["ID"] = user.ID
	env["Name"] = user.Name
	env["DisplayName"] = user.DisplayName
	env["Verified"] = user.HasVerifiedBadge
	env["PreviousUsernames"] = user.PreviousUsernames

	// hadName reports whether the account ever held the given username.
	env["hadName"] = func(name string) bool {
		for _, previous := range user.PreviousUsernames {
			if strings.EqualFold(previous, name) {
				return true
			}
		}
		return false
	}

	return env
}

// addHelperFunctions adds the shared helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers, all case-insensitive
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

package policyopa

import "github.com/open-policy-agent/opa/ast"

// Verdict policies are pure functions over their input. Anything that can
// reach the network, the clock or the environment is forbidden.
var allowedBuiltins = map[string]struct{}{
	"eq":              {},
	"equal":           {},
	"neq":             {},
	"lt":              {},
	"lte":             {},
	"gt":              {},
	"gte":             {},
	"plus":            {},
	"minus":           {},
	"mul":             {},
	"div":             {},
	"count":           {},
	"sum":             {},
	"max":             {},
	"min":             {},
	"sort":            {},
	"concat":          {},
	"contains":        {},
	"startswith":      {},
	"endswith":        {},
	"lower":           {},
	"upper":           {},
	"trim":            {},
	"split":           {},
	"sprintf":         {},
	"format_int":      {},
	"to_number":       {},
	"is_string":       {},
	"is_number":       {},
	"is_boolean":      {},
	"is_null":         {},
	"is_array":        {},
	"is_object":       {},
	"object.get":      {},
	"object.keys":     {},
	"array.concat":    {},
	"array.slice":     {},
	"internal.member_2": {},
	"internal.member_3": {},
}

func filterBuiltins(builtins []*ast.Builtin) []*ast.Builtin {
	out := make([]*ast.Builtin, 0, len(builtins))
	for _, builtin := range builtins {
		if builtin == nil {
			continue
		}
		if _, ok := allowedBuiltins[builtin.Name]; ok {
			out = append(out, builtin)
		}
	}
	return out
}

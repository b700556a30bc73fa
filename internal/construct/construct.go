// Package construct evaluates user-supplied compose, groups and
// keyed_groups expressions against host variables. It is the concrete
// implementation of the inventory.Evaluator strategy; the expression
// language is expr (expr-lang), evaluated with the hostvars mapping as the
// environment, so expressions can reference any attribute of the raw record
// under "openstack" as well as composed variables.
package construct

import (
	"fmt"

	"github.com/expr-lang/expr"

	"openstack-inventory/internal/inventory"
)

// WarnFunc receives diagnostics about expressions that failed to evaluate.
// Bad expressions never abort a pass; the host simply doesn't get the
// variable or group.
type WarnFunc func(format string, args ...any)

type Evaluator struct {
	warn WarnFunc
}

func NewEvaluator(warn WarnFunc) *Evaluator {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Evaluator{warn: warn}
}

// Compose evaluates every compose expression and returns the resulting
// variables. Failing expressions are skipped with a warning.
func (e *Evaluator) Compose(exprs map[string]string, hostvars map[string]any) map[string]any {
	out := map[string]any{}
	for name, src := range exprs {
		value, err := e.eval(src, hostvars)
		if err != nil {
			e.warn("could not compose variable %q: %v", name, err)
			continue
		}
		out[name] = value
	}
	return out
}

// ComposedGroups returns the groups whose conditional evaluates to true for
// this host.
func (e *Evaluator) ComposedGroups(groups map[string]string, hostvars map[string]any) []string {
	out := []string{}
	for name, src := range groups {
		value, err := e.eval(src, hostvars)
		if err != nil {
			e.warn("could not evaluate group %q condition: %v", name, err)
			continue
		}
		member, ok := value.(bool)
		if !ok {
			e.warn("group %q condition did not return a boolean", name)
			continue
		}
		if member {
			out = append(out, name)
		}
	}
	return out
}

// KeyedGroups evaluates each keyed-group key expression and builds the
// group name from prefix, separator and the key's value. Hosts whose key
// yields nothing fall back to the default value, if any, and are skipped
// otherwise.
func (e *Evaluator) KeyedGroups(specs []inventory.KeyedGroup, hostvars map[string]any) []string {
	out := []string{}
	for _, spec := range specs {
		if spec.Key == "" {
			continue
		}
		name := ""
		value, err := e.eval(spec.Key, hostvars)
		if err == nil && value != nil {
			name = fmt.Sprintf("%v", value)
		} else if err != nil {
			e.warn("could not evaluate keyed group key %q: %v", spec.Key, err)
		}
		if name == "" {
			name = spec.DefaultValue
		}
		if name == "" {
			continue
		}
		out = append(out, keyedGroupName(spec, name))
	}
	return out
}

func keyedGroupName(spec inventory.KeyedGroup, value string) string {
	separator := spec.Separator
	if separator == "" {
		separator = "_"
	}
	if spec.Prefix == "" {
		return value
	}
	return spec.Prefix + separator + value
}

func (e *Evaluator) eval(src string, hostvars map[string]any) (any, error) {
	program, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return expr.Run(program, hostvars)
}

package departures

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is an optional boolean expression evaluated against every DepartureRecord,
// eg. `TransportType == "TRAM" && LineWheelChairAccessible == 1`
type Filter struct {
	Expression string

	program *vm.Program
}

func CompileFilter(expression string) (*Filter, error) {
	if expression == "" {
		return nil, nil
	}

	program, err := expr.Compile(expression, expr.Env(DepartureRecord{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}

	return &Filter{
		Expression: expression,
		program:    program,
	}, nil
}

func (f *Filter) Match(record *DepartureRecord) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}

	output, err := expr.Run(f.program, *record)
	if err != nil {
		return false, fmt.Errorf("run filter %q: %w", f.Expression, err)
	}

	matches, _ := output.(bool)

	return matches, nil
}

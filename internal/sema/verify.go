package sema

import (
	"errors"
	"fmt"

	"github.com/sable-lang/sable/internal/ast"
)

// Verify checks the structural consistency of a checked unit: the stage
// marker is set, no flat sequence expression survived folding, and every
// conversion node carries a type. Violations indicate a checker bug, not a
// problem in the user's source, so they come back as errors rather than
// diagnostics.
func Verify(unit *ast.Unit) error {
	if unit.Stage != ast.StageChecked {
		return fmt.Errorf("sema: unit %q verified at stage %s", unit.Filename, unit.Stage)
	}

	var errs []error
	ast.Walk(unit, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.SequenceExpr:
			errs = append(errs, fmt.Errorf("sema: unfolded sequence expression at %s", v.Span()))
		case *ast.ConvertExpr:
			if v.Type() == nil {
				errs = append(errs, fmt.Errorf("sema: untyped conversion at %s", v.Span()))
			}
		case *ast.FuncExpr:
			if v.Sig == nil {
				errs = append(errs, fmt.Errorf("sema: function without signature at %s", v.Span()))
			}
		}
		return true
	})
	return errors.Join(errs...)
}

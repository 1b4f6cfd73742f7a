package service

import (
	"github.com/agbru/bncalc/internal/calc"
	"github.com/agbru/bncalc/pkg/models"
)

// ToResponse converts an evaluation outcome into its JSON document. A
// non-nil err is reported in the Error field alongside whatever the
// evaluator produced before failing.
func ToResponse(res calc.Result, err error) models.CalculationResponse {
	resp := models.CalculationResponse{
		Op:       res.Op,
		Layout:   ToLayout(res.Layout),
		Operands: toValues(res.Operands),
		Outputs:  toValues(res.Outputs),
		Cmp:      res.Cmp,
		Overflow: res.Overflow,
		Duration: res.Duration.String(),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// ToLayout converts a layout description.
func ToLayout(l calc.LayoutInfo) models.Layout {
	return models.Layout{Bits: l.Bits, WordBits: l.WordBits, Words: l.Words, HexDigits: l.HexDigits}
}

// ToOperations converts the operation registry.
func ToOperations(ops []calc.Operation) models.OperationsResponse {
	resp := models.OperationsResponse{Operations: make([]models.Operation, len(ops))}
	for i, op := range ops {
		resp.Operations[i] = models.Operation{
			Name:        op.Name,
			Arity:       op.Arity,
			Outputs:     op.Outputs,
			Description: op.Description,
		}
	}
	return resp
}

func toValues(outs []calc.Output) []models.Value {
	if len(outs) == 0 {
		return nil
	}
	vs := make([]models.Value, len(outs))
	for i, o := range outs {
		vs[i] = models.Value{Name: o.Name, Hex: o.Hex, Decimal: o.Decimal}
	}
	return vs
}

package model

import "github.com/shopspring/decimal"

// Operator is a price comparison operator for user alerts.
type Operator string

const (
	OpGT Operator = ">"
	OpLT Operator = "<"
	OpGE Operator = ">="
	OpLE Operator = "<="
	OpEQ Operator = "=="
)

// Operators lists the supported comparison operators.
var Operators = []Operator{OpGT, OpLT, OpGE, OpLE, OpEQ}

// ParseOperator validates a user-supplied operator token.
// Unicode forms are accepted as aliases of the ASCII ones.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case ">":
		return OpGT, true
	case "<":
		return OpLT, true
	case ">=", "≥":
		return OpGE, true
	case "<=", "≤":
		return OpLE, true
	case "==", "=":
		return OpEQ, true
	}
	return "", false
}

// Holds reports whether `price op target` is true.
func (o Operator) Holds(price, target decimal.Decimal) bool {
	cmp := price.Cmp(target)
	switch o {
	case OpGT:
		return cmp > 0
	case OpLT:
		return cmp < 0
	case OpGE:
		return cmp >= 0
	case OpLE:
		return cmp <= 0
	case OpEQ:
		return cmp == 0
	}
	return false
}

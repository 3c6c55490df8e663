// Package query provides composable filter expressions, ordering, offset
// paging and row projections executed through gorm.
package query

// Column identifies a table column. Columns are declared once per schema and
// referenced by every filter, order and projection that touches them.
type Column struct {
	Table string
	Name  string
}

// String returns the qualified column name (e.g., "members.age").
func (c Column) String() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

// Expr is an immutable boolean filter expression.
// A nil Expr matches every row.
type Expr interface {
	isExpr()
}

// AndExpr is the conjunction of its clauses. An AndExpr without clauses
// matches every row.
type AndExpr struct {
	Clauses []Expr
}

// EqExpr matches rows whose column equals Value. A nil Value matches NULL.
type EqExpr struct {
	Column Column
	Value  any
}

// RangeExpr matches rows whose column lies within [Min, Max].
// A nil bound is unbounded on that side.
type RangeExpr struct {
	Column Column
	Min    any
	Max    any
}

// CmpOp is a strict comparison operator.
type CmpOp string

// Supported strict comparison operators.
const (
	OpLt CmpOp = "<"
	OpGt CmpOp = ">"
	OpNe CmpOp = "<>"
)

// CmpExpr matches rows where "Column Op Value" holds.
type CmpExpr struct {
	Column Column
	Op     CmpOp
	Value  any
}

func (AndExpr) isExpr()   {}
func (EqExpr) isExpr()    {}
func (RangeExpr) isExpr() {}
func (CmpExpr) isExpr()   {}

// And combines clauses with logical AND. Nil clauses are dropped and nested
// conjunctions are flattened.
func And(clauses ...Expr) AndExpr {
	flat := make([]Expr, 0, len(clauses))
	for _, c := range clauses {
		switch v := c.(type) {
		case nil:
			continue
		case AndExpr:
			flat = append(flat, And(v.Clauses...).Clauses...)
		default:
			flat = append(flat, v)
		}
	}
	return AndExpr{Clauses: flat}
}

// Eq returns an equality constraint.
func Eq(col Column, value any) EqExpr {
	return EqExpr{Column: col, Value: value}
}

// Range returns an inclusive range constraint. Pass nil for an open bound.
func Range(col Column, minValue, maxValue any) RangeExpr {
	return RangeExpr{Column: col, Min: minValue, Max: maxValue}
}

// Goe returns "col >= value".
func Goe(col Column, value any) RangeExpr {
	return Range(col, value, nil)
}

// Loe returns "col <= value".
func Loe(col Column, value any) RangeExpr {
	return Range(col, nil, value)
}

// Lt returns "col < value".
func Lt(col Column, value any) CmpExpr {
	return CmpExpr{Column: col, Op: OpLt, Value: value}
}

// Gt returns "col > value".
func Gt(col Column, value any) CmpExpr {
	return CmpExpr{Column: col, Op: OpGt, Value: value}
}

// Ne returns "col <> value". A nil value matches non-NULL columns.
func Ne(col Column, value any) CmpExpr {
	return CmpExpr{Column: col, Op: OpNe, Value: value}
}

// IsEmpty reports whether e places no constraint on rows.
func IsEmpty(e Expr) bool {
	sql, _ := Compile(e)
	return sql == ""
}

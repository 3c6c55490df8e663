package query

import (
	"strings"

	"gorm.io/gorm"
)

// Compile renders e as a SQL condition with "?" placeholders.
// An expression that matches every row compiles to an empty string.
func Compile(e Expr) (string, []any) {
	switch v := e.(type) {
	case nil:
		return "", nil
	case AndExpr:
		parts := make([]string, 0, len(v.Clauses))
		var args []any
		for _, c := range v.Clauses {
			sql, cArgs := Compile(c)
			if sql == "" {
				continue
			}
			parts = append(parts, sql)
			args = append(args, cArgs...)
		}
		return strings.Join(parts, " AND "), args
	case EqExpr:
		if v.Value == nil {
			return v.Column.String() + " IS NULL", nil
		}
		return v.Column.String() + " = ?", []any{v.Value}
	case RangeExpr:
		col := v.Column.String()
		switch {
		case v.Min != nil && v.Max != nil:
			return col + " >= ? AND " + col + " <= ?", []any{v.Min, v.Max}
		case v.Min != nil:
			return col + " >= ?", []any{v.Min}
		case v.Max != nil:
			return col + " <= ?", []any{v.Max}
		default:
			return "", nil
		}
	case CmpExpr:
		if v.Value == nil && v.Op == OpNe {
			return v.Column.String() + " IS NOT NULL", nil
		}
		return v.Column.String() + " " + string(v.Op) + " ?", []any{v.Value}
	default:
		return "", nil
	}
}

// Apply adds e as a WHERE condition to db. Empty expressions leave db unchanged.
func Apply(db *gorm.DB, e Expr) *gorm.DB {
	sql, args := Compile(e)
	if sql == "" {
		return db
	}
	return db.Where(sql, args...)
}

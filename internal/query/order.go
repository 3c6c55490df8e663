package query

import (
	"strings"

	"gorm.io/gorm"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is a single ORDER BY term.
type Order struct {
	Column    Column
	Direction Direction
	NullsLast bool
}

// OrderAsc returns an ascending order on col.
func OrderAsc(col Column) Order {
	return Order{Column: col, Direction: Asc}
}

// OrderDesc returns a descending order on col.
func OrderDesc(col Column) Order {
	return Order{Column: col, Direction: Desc}
}

// WithNullsLast returns a copy of o that sorts NULL values after all others.
func (o Order) WithNullsLast() Order {
	o.NullsLast = true
	return o
}

// SQL renders o as an ORDER BY fragment. Nulls-last is expressed with a CASE
// term so that it works on both PostgreSQL and SQLite.
func (o Order) SQL() string {
	dir := "ASC"
	if o.Direction == Desc {
		dir = "DESC"
	}
	col := o.Column.String()
	if o.NullsLast {
		return "CASE WHEN " + col + " IS NULL THEN 1 ELSE 0 END, " + col + " " + dir
	}
	return col + " " + dir
}

// ApplyOrders appends orders to db in sequence.
func ApplyOrders(db *gorm.DB, orders []Order) *gorm.DB {
	for _, o := range orders {
		db = db.Order(o.SQL())
	}
	return db
}

// ParseOrders parses a sort string such as "username:desc,age:asc:nullslast"
// into orders. Only keys present in allowed are accepted; malformed terms,
// unknown keys and unknown directions are skipped.
func ParseOrders(sort string, allowed map[string]Column) []Order {
	if strings.TrimSpace(sort) == "" {
		return nil
	}

	var orders []Order
	for _, term := range strings.Split(sort, ",") {
		parts := strings.Split(term, ":")
		if len(parts) < 2 || len(parts) > 3 {
			continue
		}

		col, ok := allowed[strings.TrimSpace(parts[0])]
		if !ok {
			continue
		}

		dir := Direction(strings.ToLower(strings.TrimSpace(parts[1])))
		if dir != Asc && dir != Desc {
			continue
		}

		o := Order{Column: col, Direction: dir}
		if len(parts) == 3 {
			if !strings.EqualFold(strings.TrimSpace(parts[2]), "nullslast") {
				continue
			}
			o.NullsLast = true
		}
		orders = append(orders, o)
	}

	return orders
}

package sqlite

import (
	"strings"
	"time"
)

// entity describes how one domain type maps onto its table. The generic
// table uses it for every query, so adding an entity means adding a
// descriptor, not a repository.
type entity[T any] struct {
	name    string   // table name
	columns []string // every column except id, in values/targets order

	id      func(e *T) *string
	values  func(e *T) []any // column values for INSERT and UPDATE
	targets func(e *T) []any // scan destinations for SELECT

	// defaults fills unset optional fields before validation. May be nil.
	defaults func(e *T)
	validate func(e *T) error

	// stamp assigns server-owned fields. creating is false on update.
	// May be nil.
	stamp func(e *T, at time.Time, creating bool)

	// merge carries server-owned state from the stored row into an update.
	// May be nil.
	merge func(prev, next *T)
}

func (d *entity[T]) selectSQL() string {
	return "SELECT id, " + strings.Join(d.columns, ", ") + " FROM " + d.name
}

func (d *entity[T]) insertSQL() string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(d.columns)+1), ", ")
	return "INSERT INTO " + d.name + " (id, " + strings.Join(d.columns, ", ") + ") VALUES (" + marks + ")"
}

func (d *entity[T]) updateSQL() string {
	sets := make([]string, len(d.columns))
	for i, c := range d.columns {
		sets[i] = c + " = ?"
	}
	return "UPDATE " + d.name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
}

func (d *entity[T]) deleteSQL() string {
	return "DELETE FROM " + d.name + " WHERE id = ?"
}

// Package query builds parameterized SQL fragments from optional request
// filters. Filter values are always passed as bound arguments, never spliced
// into the SQL text.
package query

import (
	"fmt"
	"strings"
)

// Builder accumulates WHERE-clause predicates and their bound arguments for a
// single SELECT over one table.
type Builder struct {
	table   string
	cols    string
	where   string
	args    []interface{}
	idx     int
	orderBy string
	limit   int
}

// New creates a Builder for the given table and select-list.
func New(table, cols string) *Builder {
	return &Builder{table: table, cols: cols, idx: 1}
}

// Idx returns the next available placeholder index.
func (b *Builder) Idx() int { return b.idx }

// Add appends a raw predicate (without leading "AND") with its bound args.
func (b *Builder) Add(clause string, args ...interface{}) {
	b.where += " AND " + clause
	b.args = append(b.args, args...)
	b.idx += len(args)
}

// Eq appends an equality predicate. Empty values are skipped so that absent
// filters never contribute a clause.
func (b *Builder) Eq(column, value string) {
	if value == "" {
		return
	}
	b.Add(fmt.Sprintf("%s = $%d", column, b.idx), value)
}

// EqBool appends an equality predicate on a boolean column from a flag value.
// Accepted truthy forms are "1", "true", "yes"; anything else is false.
func (b *Builder) EqBool(column, value string) {
	if value == "" {
		return
	}
	b.Add(fmt.Sprintf("%s = $%d", column, b.idx), truthy(value))
}

// Contains appends a case-insensitive substring predicate.
func (b *Builder) Contains(column, value string) {
	if value == "" {
		return
	}
	b.Add(fmt.Sprintf("%s ILIKE $%d", column, b.idx), "%"+escapeLike(value)+"%")
}

// Prefix appends a case-insensitive prefix predicate.
func (b *Builder) Prefix(column, value string) {
	if value == "" {
		return
	}
	b.Add(fmt.Sprintf("%s ILIKE $%d", column, b.idx), escapeLike(value)+"%")
}

// DateEq appends an exact-date predicate against a date column.
func (b *Builder) DateEq(column, value string) {
	if value == "" {
		return
	}
	b.Add(fmt.Sprintf("%s = $%d", column, b.idx), value)
}

// DateRange appends an inclusive range predicate. Either bound may be empty.
func (b *Builder) DateRange(column, from, to string) {
	if from != "" {
		b.Add(fmt.Sprintf("%s >= $%d", column, b.idx), from)
	}
	if to != "" {
		b.Add(fmt.Sprintf("%s <= $%d", column, b.idx), to)
	}
}

// OrderBy sets the ORDER BY clause (without the keyword).
func (b *Builder) OrderBy(orderBy string) { b.orderBy = orderBy }

// Limit caps the row count of the data query. Zero means unbounded.
func (b *Builder) Limit(n int) { b.limit = n }

// CountSQL returns the matching-row count query.
func (b *Builder) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1%s", b.table, b.where)
}

// CountArgs returns the bound arguments for CountSQL.
func (b *Builder) CountArgs() []interface{} { return b.args }

// SQL returns the data query with ORDER BY and the optional LIMIT bound as a
// parameter.
func (b *Builder) SQL() string {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1%s", b.cols, b.table, b.where)
	if b.orderBy != "" {
		sql += " ORDER BY " + b.orderBy
	}
	if b.limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", b.idx)
	}
	return sql
}

// Args returns the bound arguments for SQL.
func (b *Builder) Args() []interface{} {
	if b.limit > 0 {
		out := make([]interface{}, len(b.args)+1)
		copy(out, b.args)
		out[len(b.args)] = b.limit
		return out
	}
	return b.args
}

// PageSQL returns the data query with LIMIT/OFFSET placeholders appended.
func (b *Builder) PageSQL() string {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1%s", b.cols, b.table, b.where)
	if b.orderBy != "" {
		sql += " ORDER BY " + b.orderBy
	}
	sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", b.idx, b.idx+1)
	return sql
}

// PageArgs returns the bound arguments for PageSQL.
func (b *Builder) PageArgs(limit, offset int) []interface{} {
	out := make([]interface{}, len(b.args)+2)
	copy(out, b.args)
	out[len(b.args)] = limit
	out[len(b.args)+1] = offset
	return out
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// escapeLike neutralizes LIKE wildcards in user input so a literal "%" or "_"
// matches itself.
func escapeLike(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, "%", `\%`)
	v = strings.ReplaceAll(v, "_", `\_`)
	return v
}

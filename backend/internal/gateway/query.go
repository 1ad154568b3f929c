package gateway

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
)

type Filter struct {
	Column string
	Op     Op
	Value  any
}

type Order struct {
	Column    string
	Ascending bool
}

// Embed joins a single parent row through a foreign key on the base table.
// Hint names the constraint when more than one relation links the same
// tables; LocalColumn is the referencing column on the base table.
type Embed struct {
	Alias       string
	Table       string
	Hint        string
	LocalColumn string
	Columns     []string
}

func (e Embed) Key() string {
	if e.Alias != "" {
		return e.Alias
	}
	return e.Table
}

type Query struct {
	Table   string
	Columns []string
	Embeds  []Embed
	Filters []Filter
	Order   *Order
	Limit   int
}

func From(table string) Query {
	return Query{Table: table}
}

func (q Query) Select(columns ...string) Query {
	q.Columns = append([]string(nil), columns...)
	return q
}

func (q Query) Embed(e Embed) Query {
	q.Embeds = append(append([]Embed(nil), q.Embeds...), e)
	return q
}

func (q Query) Eq(column string, value any) Query {
	return q.where(Filter{Column: column, Op: OpEq, Value: value})
}

func (q Query) Gte(column string, value any) Query {
	return q.where(Filter{Column: column, Op: OpGte, Value: value})
}

func (q Query) OrderBy(column string, ascending bool) Query {
	q.Order = &Order{Column: column, Ascending: ascending}
	return q
}

func (q Query) WithLimit(limit int) Query {
	q.Limit = limit
	return q
}

func (q Query) where(f Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), f)
	return q
}

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func (q Query) Validate() error {
	if !ValidIdentifier(q.Table) {
		return fmt.Errorf("%w: table %q", ErrInvalidQuery, q.Table)
	}
	for _, c := range q.Columns {
		if c != "*" && !ValidIdentifier(c) {
			return fmt.Errorf("%w: column %q", ErrInvalidQuery, c)
		}
	}
	for _, e := range q.Embeds {
		if !ValidIdentifier(e.Table) || !ValidIdentifier(e.LocalColumn) {
			return fmt.Errorf("%w: embed %q", ErrInvalidQuery, e.Table)
		}
		if e.Alias != "" && !ValidIdentifier(e.Alias) {
			return fmt.Errorf("%w: embed alias %q", ErrInvalidQuery, e.Alias)
		}
		for _, c := range e.Columns {
			if !ValidIdentifier(c) {
				return fmt.Errorf("%w: embed column %q", ErrInvalidQuery, c)
			}
		}
	}
	for _, f := range q.Filters {
		if !ValidIdentifier(f.Column) {
			return fmt.Errorf("%w: filter column %q", ErrInvalidQuery, f.Column)
		}
		if f.Op != OpEq && f.Op != OpGte {
			return fmt.Errorf("%w: filter op %q", ErrInvalidQuery, f.Op)
		}
	}
	if q.Order != nil && !ValidIdentifier(q.Order.Column) {
		return fmt.Errorf("%w: order column %q", ErrInvalidQuery, q.Order.Column)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidQuery)
	}
	return nil
}

// FormatValue renders a filter value the way the backend expects it in a
// query string.
func FormatValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return "null"
	case string:
		return typed
	case time.Time:
		return typed.UTC().Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case fmt.Stringer:
		return typed.String()
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}

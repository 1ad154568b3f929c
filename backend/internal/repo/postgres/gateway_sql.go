package postgres

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
)

const baseAlias = "t"

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func col(alias, name string) string {
	return alias + "." + ident(name)
}

// buildSelect renders q as one jsonb value per row. Embeds are nested under
// their key as correlated single-row lookups so row order stays with the
// outer ORDER BY.
func buildSelect(q gateway.Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(rowObject(q))
	b.WriteString(" FROM ")
	b.WriteString(ident(q.Table))
	b.WriteString(" ")
	b.WriteString(baseAlias)

	args := make([]any, 0, len(q.Filters))
	b.WriteString(whereClause(q.Filters, &args))

	if q.Order != nil {
		direction := "DESC"
		if q.Order.Ascending {
			direction = "ASC"
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(col(baseAlias, q.Order.Column))
		b.WriteString(" ")
		b.WriteString(direction)
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.Limit))
	}

	return b.String(), args, nil
}

func buildCount(q gateway.Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}

	args := make([]any, 0, len(q.Filters))
	sql := "SELECT count(*) FROM " + ident(q.Table) + " " + baseAlias + whereClause(q.Filters, &args)
	return sql, args, nil
}

func buildUpdate(table string, id string, patch map[string]any) (string, []any, error) {
	if !gateway.ValidIdentifier(table) || strings.TrimSpace(id) == "" || len(patch) == 0 {
		return "", nil, fmt.Errorf("%w: update %s", gateway.ErrInvalidQuery, table)
	}

	keys, err := sortedKeys(patch)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, key := range keys {
		args = append(args, patch[key])
		sets = append(sets, ident(key)+" = $"+strconv.Itoa(len(args)))
	}
	args = append(args, id)

	sql := "UPDATE " + ident(table) + " SET " + strings.Join(sets, ", ") +
		" WHERE " + ident("id") + " = $" + strconv.Itoa(len(args))
	return sql, args, nil
}

func buildInsert(table string, row map[string]any) (string, []any, error) {
	if !gateway.ValidIdentifier(table) || len(row) == 0 {
		return "", nil, fmt.Errorf("%w: insert %s", gateway.ErrInvalidQuery, table)
	}

	keys, err := sortedKeys(row)
	if err != nil {
		return "", nil, err
	}

	columns := make([]string, 0, len(keys))
	placeholders := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, key := range keys {
		args = append(args, row[key])
		columns = append(columns, ident(key))
		placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
	}

	sql := "INSERT INTO " + ident(table) + " (" + strings.Join(columns, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ")"
	return sql, args, nil
}

// buildRPC calls the procedure with named arguments and casts the result to
// text, which also covers void procedures.
func buildRPC(name string, params map[string]any) (string, []any, error) {
	if !gateway.ValidIdentifier(name) {
		return "", nil, fmt.Errorf("%w: rpc %q", gateway.ErrInvalidQuery, name)
	}

	keys, err := sortedKeys(params)
	if err != nil {
		return "", nil, err
	}

	named := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, key := range keys {
		args = append(args, params[key])
		named = append(named, ident(key)+" => $"+strconv.Itoa(len(args)))
	}

	sql := "SELECT " + ident(name) + "(" + strings.Join(named, ", ") + ")::text"
	return sql, args, nil
}

func rowObject(q gateway.Query) string {
	var base string
	if len(q.Columns) == 0 || (len(q.Columns) == 1 && q.Columns[0] == "*") {
		base = "to_jsonb(" + baseAlias + ")"
	} else {
		base = jsonObject(baseAlias, q.Columns)
	}

	if len(q.Embeds) == 0 {
		return base
	}

	parts := []string{base}
	for i, e := range q.Embeds {
		alias := "e" + strconv.Itoa(i)
		var inner string
		if len(e.Columns) == 0 {
			inner = "to_jsonb(" + alias + ")"
		} else {
			inner = jsonObject(alias, e.Columns)
		}
		lookup := "(SELECT " + inner + " FROM " + ident(e.Table) + " " + alias +
			" WHERE " + col(alias, "id") + " = " + col(baseAlias, e.LocalColumn) + " LIMIT 1)"
		parts = append(parts, "jsonb_build_object('"+e.Key()+"', "+lookup+")")
	}
	return strings.Join(parts, " || ")
}

func jsonObject(alias string, columns []string) string {
	pairs := make([]string, 0, len(columns))
	for _, c := range columns {
		pairs = append(pairs, "'"+c+"', "+col(alias, c))
	}
	return "jsonb_build_object(" + strings.Join(pairs, ", ") + ")"
}

func whereClause(filters []gateway.Filter, args *[]any) string {
	if len(filters) == 0 {
		return ""
	}

	conds := make([]string, 0, len(filters))
	for _, f := range filters {
		*args = append(*args, f.Value)
		operator := "="
		if f.Op == gateway.OpGte {
			operator = ">="
		}
		conds = append(conds, col(baseAlias, f.Column)+" "+operator+" $"+strconv.Itoa(len(*args)))
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func sortedKeys(values map[string]any) ([]string, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		if !gateway.ValidIdentifier(key) {
			return nil, fmt.Errorf("%w: column %q", gateway.ErrInvalidQuery, key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

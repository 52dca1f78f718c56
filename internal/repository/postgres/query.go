package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"ledger/internal/record"
)

// ident quotes a table or column name for PostgreSQL.
func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func identList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
	}
	return strings.Join(quoted, ", ")
}

// buildInsert renders an INSERT of rec into table, returning the given columns.
// Columns are emitted in sorted key order so the statement is stable.
func buildInsert(table string, rec record.Record, returning []string) (string, []any) {
	keys := rec.Keys()
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = rec[k]
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		ident(table), identList(keys), strings.Join(placeholders, ", "), identList(returning))
	return q, args
}

// buildUpdate renders an UPDATE assigning every key of rec, restricted to whereCol = whereVal.
func buildUpdate(table string, rec record.Record, whereCol string, whereVal any) (string, []any) {
	keys := rec.Keys()
	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, k := range keys {
		sets[i] = fmt.Sprintf("%s = $%d", ident(k), i+1)
		args = append(args, rec[k])
	}
	args = append(args, whereVal)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		ident(table), strings.Join(sets, ", "), ident(whereCol), len(args))
	return q, args
}

// scanRecord reads the current row into a Record keyed by column name. NULL columns are left out.
func scanRecord(rows *sql.Rows) (record.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	rec := make(record.Record, len(cols))
	for i, c := range cols {
		if vals[i] == nil {
			continue
		}
		rec[c] = vals[i]
	}
	return rec, nil
}

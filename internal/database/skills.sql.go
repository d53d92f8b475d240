package database

import (
	"context"
)

const listSkillNames = `-- name: ListSkillNames :many
SELECT name FROM skills ORDER BY position, name
`

func (q *Queries) ListSkillNames(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listSkillNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		items = append(items, name)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

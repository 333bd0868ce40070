package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// itemsTable implements types.ItemTable.
type itemsTable struct {
	s *session
}

const selectItem = "SELECT id, description, priority, owner, deadline, progress, team_id FROM items"

func scanItem(row rowScanner) (*types.Item, error) {
	var it types.Item
	var priority, teamID sql.NullInt64
	err := row.Scan(&it.ID, &it.Description, &priority, &it.Owner, &it.Deadline, &it.Progress, &teamID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	if priority.Valid {
		p := int(priority.Int64)
		it.Priority = &p
	}
	if teamID.Valid {
		id := teamID.Int64
		it.TeamID = &id
	}
	return &it, nil
}

func (t *itemsTable) query(ctx context.Context, query string, args ...any) ([]types.Item, error) {
	rows, err := t.s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	defer rows.Close()

	items := []types.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (t *itemsTable) Create(ctx context.Context, in types.ItemCreate) (*types.Item, error) {
	deadline := types.Today()
	if in.Deadline != nil {
		deadline = *in.Deadline
	}

	res, err := t.s.tx.ExecContext(ctx,
		`INSERT INTO items (description, priority, owner, deadline, progress, team_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.Description, nullableInt(in.Priority), in.Owner, deadline, in.Progress, nullableInt64(in.TeamID))
	if err != nil {
		return nil, t.s.translate(fmt.Errorf("inserting item: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading item id: %w", err)
	}
	return t.Get(ctx, id)
}

func (t *itemsTable) Get(ctx context.Context, id int64) (*types.Item, error) {
	return scanItem(t.s.tx.QueryRowContext(ctx, selectItem+" WHERE id = ?", id))
}

func (t *itemsTable) List(ctx context.Context, page types.Page) ([]types.Item, error) {
	args, err := pageArgs(page)
	if err != nil {
		return nil, err
	}
	return t.query(ctx, selectItem+" ORDER BY id LIMIT ? OFFSET ?", args...)
}

func (t *itemsTable) ListUrgent(ctx context.Context, before types.Date, page types.Page) ([]types.Item, error) {
	args, err := pageArgs(page)
	if err != nil {
		return nil, err
	}
	args = append([]any{before}, args...)
	return t.query(ctx, selectItem+" WHERE deadline <= ? ORDER BY id LIMIT ? OFFSET ?", args...)
}

func (t *itemsTable) ListByTeam(ctx context.Context, teamID int64) ([]types.Item, error) {
	return t.query(ctx, selectItem+" WHERE team_id = ? ORDER BY id", teamID)
}

func (t *itemsTable) Update(ctx context.Context, id int64, patch types.ItemUpdate) (*types.Item, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if _, err := t.Get(ctx, id); err != nil {
		return nil, err
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if v, ok := patch.Description.Get(); ok {
		set("description", v)
	}
	if v, ok := patch.Priority.Get(); ok {
		set("priority", nullableInt(v))
	}
	if v, ok := patch.Owner.Get(); ok {
		set("owner", v)
	}
	if v, ok := patch.Deadline.Get(); ok {
		set("deadline", v)
	}
	if v, ok := patch.Progress.Get(); ok {
		set("progress", v)
	}
	if v, ok := patch.TeamID.Get(); ok {
		set("team_id", nullableInt64(v))
	}

	if len(sets) > 0 {
		args = append(args, id)
		if _, err := t.s.tx.ExecContext(ctx,
			"UPDATE items SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
			return nil, t.s.translate(fmt.Errorf("updating item: %w", err))
		}
	}
	return t.Get(ctx, id)
}

func (t *itemsTable) Delete(ctx context.Context, id int64) error {
	res, err := t.s.tx.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func nullableInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

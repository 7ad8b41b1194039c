package tracker

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, client_id, applied_on::text, url, platform, company, role, status, created_at, updated_at`

// Create inserts a new entry.
func (r *PGRepo) Create(ctx context.Context, e Entry) error {
	const query = `
INSERT INTO tracker_entries (
    id,
    client_id,
    applied_on,
    url,
    platform,
    company,
    role,
    status,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		e.ID,
		e.ClientID,
		e.Date,
		e.URL,
		e.Platform,
		e.Company,
		e.Role,
		string(e.Status),
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

// Get returns one entry of a client.
func (r *PGRepo) Get(ctx context.Context, clientID, id string) (Entry, error) {
	query := `SELECT ` + selectColumns + `
FROM tracker_entries
WHERE id = $1 AND client_id = $2`
	if !validID(id) {
		return Entry{}, ErrNotFound
	}
	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, id, clientID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return e, nil
}

// List returns a client's entries, newest first.
func (r *PGRepo) List(ctx context.Context, clientID string) ([]Entry, error) {
	query := `SELECT ` + selectColumns + `
FROM tracker_entries
WHERE client_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Update overwrites the mutable fields of an entry.
func (r *PGRepo) Update(ctx context.Context, e Entry) error {
	const query = `
UPDATE tracker_entries
SET applied_on = $3, url = $4, platform = $5, company = $6, role = $7, status = $8, updated_at = $9
WHERE id = $1 AND client_id = $2`
	if !validID(e.ID) {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(
		ctx,
		query,
		e.ID,
		e.ClientID,
		e.Date,
		e.URL,
		e.Platform,
		e.Company,
		e.Role,
		string(e.Status),
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes an entry.
func (r *PGRepo) Delete(ctx context.Context, clientID, id string) error {
	const query = `DELETE FROM tracker_entries WHERE id = $1 AND client_id = $2`
	if !validID(id) {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, query, id, clientID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var status string
	err := row.Scan(
		&e.ID,
		&e.ClientID,
		&e.Date,
		&e.URL,
		&e.Platform,
		&e.Company,
		&e.Role,
		&status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	e.Status = Status(status)
	return e, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

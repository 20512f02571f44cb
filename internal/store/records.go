package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mjcarter/shortlist/internal/model"
)

// marshalRecord serializes a record to the persisted JSON document.
// HTML escaping is disabled so stored documents match exported documents
// byte for byte.
func marshalRecord(r *model.ApplicationRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("marshal record %d: %w", r.ID, err)
	}
	// Encoder appends a trailing newline; the document column stores none.
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// GetAll returns a full snapshot of every record. Order is unspecified;
// callers sort. Returns an empty slice, not nil, for an empty store.
func (s *Store) GetAll(ctx context.Context) ([]*model.ApplicationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM applications`)
	if err != nil {
		return nil, fmt.Errorf("get all: %w", err)
	}
	defer rows.Close()

	records := []*model.ApplicationRecord{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("get all: scan: %w", err)
		}
		var r model.ApplicationRecord
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("get all: decode record: %w", err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get all: iterate: %w", err)
	}
	return records, nil
}

// Add inserts a new record. Fails with ErrDuplicateKey if the id exists.
func (s *Store) Add(ctx context.Context, r *model.ApplicationRecord) error {
	data, err := marshalRecord(r)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (id, data)
		VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, r.ID, data)
	if err != nil {
		return fmt.Errorf("add record %d: %w: %v", r.ID, ErrTransactionFailed, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("add record %d: %w: %v", r.ID, ErrTransactionFailed, err)
	}
	if n == 0 {
		return fmt.Errorf("add record %d: %w", r.ID, ErrDuplicateKey)
	}
	return nil
}

// Update upserts the full record by id. The caller always passes a
// complete record, so the stored document is replaced wholesale; fields
// the caller did not change are carried in the document it passed.
func (s *Store) Update(ctx context.Context, r *model.ApplicationRecord) error {
	data, err := marshalRecord(r)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO applications (id, data)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, r.ID, data)
	if err != nil {
		return fmt.Errorf("update record %d: %w: %v", r.ID, ErrTransactionFailed, err)
	}
	return nil
}

// Delete permanently removes the record. Idempotent: deleting a missing
// id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete record %d: %w: %v", id, ErrTransactionFailed, err)
	}
	return nil
}

// ClearAll wipes every record. Permitted on the sandbox store only; used
// to reseed demo data.
func (s *Store) ClearAll(ctx context.Context) error {
	if s.mode != Sandbox {
		return fmt.Errorf("clear all on %s store: %w", s.mode, ErrNotSandbox)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM applications`); err != nil {
		return fmt.Errorf("clear all: %w: %v", ErrTransactionFailed, err)
	}
	return nil
}

// Count returns the number of stored records. Diagnostic helper.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

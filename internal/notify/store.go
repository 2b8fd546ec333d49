package notify

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/csslab/internal/db"
)

// ListFilter controls which toasts are returned by List.
type ListFilter struct {
	Kind      Kind
	Delivered *bool
	Limit     int
}

// Store persists toasts so a page that was not connected when a toast fired
// can still pick it up.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a toast, filling in ID and CreatedAt when empty, and returns
// the stored value.
func (s *Store) Create(ctx context.Context, t Toast) (Toast, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Kind == "" {
		t.Kind = KindSuccess
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	delivered := 0
	if t.Delivered {
		delivered = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO toasts (id, kind, message, delivered, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, string(t.Kind), t.Message, delivered, t.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return t, fmt.Errorf("inserting toast: %w", err)
	}
	return t, nil
}

// GetByID retrieves a single toast.
func (s *Store) GetByID(ctx context.Context, id string) (*Toast, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, message, delivered, created_at
		FROM toasts WHERE id = ?`, id)
	return scanInto(row)
}

// List returns toasts matching the filter, oldest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Toast, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Delivered != nil {
		v := 0
		if *filter.Delivered {
			v = 1
		}
		clauses = append(clauses, "delivered = ?")
		args = append(args, v)
	}

	query := "SELECT id, kind, message, delivered, created_at FROM toasts"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at ASC, rowid ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying toasts: %w", err)
	}
	defer rows.Close()

	var result []Toast
	for rows.Next() {
		t, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	return result, rows.Err()
}

// GetPending returns all undelivered toasts.
func (s *Store) GetPending(ctx context.Context) ([]Toast, error) {
	delivered := false
	return s.List(ctx, ListFilter{Delivered: &delivered})
}

// MarkDelivered sets delivered=1 for the given toast.
func (s *Store) MarkDelivered(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE toasts SET delivered = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking toast delivered: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("toast %s not found", id)
	}
	return nil
}

// PruneDelivered deletes every delivered toast and returns how many
// rows were removed.
func (s *Store) PruneDelivered(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM toasts WHERE delivered = 1")
	if err != nil {
		return 0, fmt.Errorf("pruning delivered toasts: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Toast, error) {
	var (
		t         Toast
		kind      string
		delivered int
		ts        string
	)

	if err := sc.Scan(&t.ID, &kind, &t.Message, &delivered, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning toast: %w", err)
	}

	t.Kind = Kind(kind)
	t.Delivered = delivered != 0

	if parsed, err := time.Parse(time.DateTime, ts); err == nil {
		t.CreatedAt = parsed
	} else if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
		t.CreatedAt = parsed
	}

	return &t, nil
}

package repository // repository holds data access logic for stored layouts

import (
	"context"      // context carries deadlines and cancellation into queries
	"database/sql" // sql provides DB primitives
	"errors"       // errors defines the not-found sentinel
)

// Layout is one stored floor plan: the document shape {name, layoutJson}
// plus row metadata.  LayoutJSON is the JSON-encoded object array exactly
// as the scene codec produced it; the repository never inspects it.
type Layout struct {
	ID         uint64 // layouts.id
	OwnerID    uint64 // layouts.owner_id, references the owning user
	Name       string // layouts.name
	LayoutJSON string // layouts.layout_json, serialized object array
	CreatedAt  string // layouts.created_at
	UpdatedAt  string // layouts.updated_at
}

// LayoutSummary is the listing projection: id, name and freshness, enough
// for the layout-picker screen without shipping whole documents.
type LayoutSummary struct {
	ID        uint64
	Name      string
	UpdatedAt string
}

// ErrLayoutNotFound is returned when a layout lookup or owner-scoped
// write matches no row.
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutRepo provides create/read/update/delete access to the layouts
// table.
type LayoutRepo struct {
	db *sql.DB // underlying database connection
}

// NewLayoutRepo constructs a LayoutRepo with the given DB handle.
func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// Create inserts a new layout and reads the row back so ID and the
// timestamp fields are populated on return.
func (r *LayoutRepo) Create(ctx context.Context, l *Layout) error {
	const qInsert = `INSERT INTO layouts (owner_id, name, layout_json)
	                 VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, l.OwnerID, l.Name, l.LayoutJSON)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)

	const qSelect = `SELECT id, owner_id, name, layout_json, created_at, updated_at
	                 FROM layouts WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, l.ID).
		Scan(&l.ID, &l.OwnerID, &l.Name, &l.LayoutJSON, &l.CreatedAt, &l.UpdatedAt)
}

// GetByID retrieves a layout by id regardless of owner.  Returns
// ErrLayoutNotFound when no row matches; callers treat that as fatal for
// an editing session.
func (r *LayoutRepo) GetByID(ctx context.Context, id uint64) (*Layout, error) {
	const q = `SELECT id, owner_id, name, layout_json, created_at, updated_at
	           FROM layouts WHERE id = ?`
	var l Layout
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&l.ID, &l.OwnerID, &l.Name, &l.LayoutJSON, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return &l, nil
}

// GetByIDAndOwner retrieves a layout only if it belongs to the given
// owner, enforcing resource ownership on write paths.
func (r *LayoutRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*Layout, error) {
	const q = `SELECT id, owner_id, name, layout_json, created_at, updated_at
	           FROM layouts WHERE id = ? AND owner_id = ?`
	var l Layout
	err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&l.ID, &l.OwnerID, &l.Name, &l.LayoutJSON, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns summaries of all layouts, most recently updated first.
// Serves GET /v1/layouts for the listing screen.
func (r *LayoutRepo) List(ctx context.Context) ([]*LayoutSummary, error) {
	const q = `SELECT id, name, updated_at
	           FROM layouts
	           ORDER BY updated_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*LayoutSummary
	for rows.Next() {
		s := new(LayoutSummary)
		if err := rows.Scan(&s.ID, &s.Name, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites name and document of a layout the owner holds, then
// reads the row back to refresh UpdatedAt.  No version check: last save
// wins, single-editor-at-a-time is assumed.
func (r *LayoutRepo) Update(ctx context.Context, l *Layout) error {
	const q = `UPDATE layouts
	           SET name = ?, layout_json = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, l.Name, l.LayoutJSON, l.ID, l.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLayoutNotFound
	}
	const qSelect = `SELECT created_at, updated_at FROM layouts WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, l.ID).Scan(&l.CreatedAt, &l.UpdatedAt)
}

// DeleteByIDAndOwner removes a layout the owner holds.
func (r *LayoutRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE FROM layouts WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLayoutNotFound
	}
	return nil
}

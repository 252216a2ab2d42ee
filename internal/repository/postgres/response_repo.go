package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"weddingrsvp/internal/domain"
)

const responseColumns = `id, event_id, full_name, phone, attendance, message, created_at`

type responseRepository struct {
	DB  *sql.DB
	now func() time.Time
}

func NewResponseRepository(db *sql.DB) domain.ResponseRepository {
	return &responseRepository{
		DB:  db,
		now: storeNow,
	}
}

func (r *responseRepository) Create(ctx context.Context, resp *domain.Response) error {
	id := uuid.NewString()
	createdAt := r.now()
	query := `
		INSERT INTO responses (id, event_id, full_name, phone, attendance, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.DB.ExecContext(ctx, query, id, resp.EventID, resp.FullName, resp.Phone, resp.Attendance, nullString(resp.Message), createdAt); err != nil {
		return err
	}
	resp.ID = id
	resp.CreatedAt = createdAt
	return nil
}

func (r *responseRepository) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM responses WHERE id = $1`
	resp, err := scanResponse(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return resp, nil
}

func (r *responseRepository) List(ctx context.Context, filter domain.ResponseFilter) ([]*domain.Response, error) {
	var where []string
	args := []any{}
	if filter.EventID != nil {
		args = append(args, *filter.EventID)
		where = append(where, fmt.Sprintf("event_id = $%d", len(args)))
	}
	if filter.Attendance != nil {
		args = append(args, *filter.Attendance)
		where = append(where, fmt.Sprintf("attendance = $%d", len(args)))
	}
	query := `SELECT ` + responseColumns + ` FROM responses`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	responses := make([]*domain.Response, 0)
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (r *responseRepository) Update(ctx context.Context, id string, patch domain.ResponsePatch) (*domain.Response, error) {
	var setClauses []string
	args := []any{}
	n := 1
	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.EventID != nil {
		set("event_id", *patch.EventID)
	}
	if patch.FullName != nil {
		set("full_name", *patch.FullName)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.Attendance != nil {
		set("attendance", *patch.Attendance)
	}
	if patch.Message != nil {
		set("message", nullString(*patch.Message))
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE responses SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, responseColumns)
	resp, err := scanResponse(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return resp, nil
}

func (r *responseRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM responses WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanResponse(row rowScanner) (*domain.Response, error) {
	resp := &domain.Response{}
	var messageNull sql.NullString
	if err := row.Scan(&resp.ID, &resp.EventID, &resp.FullName, &resp.Phone, &resp.Attendance, &messageNull, &resp.CreatedAt); err != nil {
		return nil, err
	}
	if messageNull.Valid {
		resp.Message = messageNull.String
	}
	return resp, nil
}

// nullString stores an empty message as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

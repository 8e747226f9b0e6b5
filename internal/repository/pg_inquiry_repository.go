package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deepinsight/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgInquiryRepository is the PostgreSQL implementation of InquiryRepository.
type PgInquiryRepository struct {
	pool *pgxpool.Pool
}

// NewPgInquiryRepository creates a PgInquiryRepository backed by the given pool.
func NewPgInquiryRepository(pool *pgxpool.Pool) *PgInquiryRepository {
	return &PgInquiryRepository{pool: pool}
}

// Ensure PgInquiryRepository implements InquiryRepository at compile time.
var _ InquiryRepository = (*PgInquiryRepository)(nil)

const inquirySelectCols = `id, name, email, company, phone, message, service_types, status, created_at`

func scanInquiry(scan func(...any) error) (*model.Inquiry, error) {
	var inq model.Inquiry
	if err := scan(&inq.ID, &inq.Name, &inq.Email, &inq.Company, &inq.Phone,
		&inq.Message, &inq.ServiceType, &inq.Status, &inq.CreatedAt); err != nil {
		return nil, err
	}
	return &inq, nil
}

// Create inserts a new inquiries row and populates inq.ID from the RETURNING clause.
func (r *PgInquiryRepository) Create(ctx context.Context, inq *model.Inquiry) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO inquiries (name, email, company, phone, message, service_types, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		inq.Name, inq.Email, inq.Company, inq.Phone, inq.Message, inq.ServiceType, inq.Status, inq.CreatedAt,
	).Scan(&inq.ID)
}

// List returns inquiries filtered by status, newest first.
func (r *PgInquiryRepository) List(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, int, error) {
	var conditions []string
	var args []any

	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inquiries `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, opts.Size, model.Offset(opts.Page, opts.Size))
	query := `SELECT ` + inquirySelectCols + ` FROM inquiries ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var inquiries []*model.Inquiry
	for rows.Next() {
		inq, err := scanInquiry(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		inquiries = append(inquiries, inq)
	}
	return inquiries, total, rows.Err()
}

// GetByID returns the inquiry with the given id.
func (r *PgInquiryRepository) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	inq, err := scanInquiry(r.pool.QueryRow(ctx,
		`SELECT `+inquirySelectCols+` FROM inquiries WHERE id = $1`, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return inq, err
}

// UpdateStatus changes the status of one inquiry.
func (r *PgInquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `UPDATE inquiries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

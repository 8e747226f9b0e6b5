package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SqliteInquiryRepository is the SQLite implementation of InquiryRepository.
type SqliteInquiryRepository struct {
	db *sqlx.DB
}

// NewSqliteInquiryRepository creates a SqliteInquiryRepository.
func NewSqliteInquiryRepository(db *sqlx.DB) *SqliteInquiryRepository {
	return &SqliteInquiryRepository{db: db}
}

var _ InquiryRepository = (*SqliteInquiryRepository)(nil)

// inquiryRow maps 1:1 to the inquiries table. service_types is stored as a
// comma separated list because SQLite has no array type.
type inquiryRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Company      string    `db:"company"`
	Phone        string    `db:"phone"`
	Message      string    `db:"message"`
	ServiceTypes string    `db:"service_types"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r inquiryRow) toModel() *model.Inquiry {
	var types []string
	if r.ServiceTypes != "" {
		types = strings.Split(r.ServiceTypes, ",")
	}
	return &model.Inquiry{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Company:     r.Company,
		Phone:       r.Phone,
		Message:     r.Message,
		ServiceType: types,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func (r *SqliteInquiryRepository) Create(ctx context.Context, inq *model.Inquiry) error {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inquiries (id, name, email, company, phone, message, service_types, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, inq.Name, inq.Email, inq.Company, inq.Phone, inq.Message,
		strings.Join(inq.ServiceType, ","), inq.Status, inq.CreatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	inq.ID = id
	return nil
}

func (r *SqliteInquiryRepository) List(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, int, error) {
	where := ""
	var args []any
	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		where = "WHERE status = ?"
		args = append(args, status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM inquiries `+where, args...); err != nil {
		return nil, 0, err
	}

	var rows []inquiryRow
	args = append(args, opts.Size, model.Offset(opts.Page, opts.Size))
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM inquiries `+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		args...); err != nil {
		return nil, 0, err
	}

	inquiries := make([]*model.Inquiry, 0, len(rows))
	for _, row := range rows {
		inquiries = append(inquiries, row.toModel())
	}
	return inquiries, total, nil
}

func (r *SqliteInquiryRepository) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	var row inquiryRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM inquiries WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (r *SqliteInquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return rowsAffectedOne(r.db.ExecContext(ctx, `UPDATE inquiries SET status = ? WHERE id = ?`, status, id))
}

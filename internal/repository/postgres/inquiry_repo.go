package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

type inquiryRepo struct {
	db *pgxpool.Pool
}

// NewInquiryRepository creates the submitted-inquiries repository
func NewInquiryRepository(db *pgxpool.Pool) domain.InquiryRepository {
	return &inquiryRepo{db: db}
}

func (r *inquiryRepo) Create(ctx context.Context, inq *domain.Inquiry) error {
	query := `
		INSERT INTO inquiries (
			id, name, email, phone, company,
			project_type, budget, timeline, message,
			preferred_contact, communication_frequency, newsletter,
			attachment_names, from_estimator, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	if inq.CreatedAt.IsZero() {
		inq.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, query,
		inq.ID,
		inq.Name,
		inq.Email,
		inq.Phone,
		inq.Company,
		inq.ProjectType,
		inq.Budget,
		inq.Timeline,
		inq.Message,
		inq.PreferredContact,
		inq.CommunicationFrequency,
		inq.Newsletter,
		pq.Array(inq.AttachmentNames),
		inq.FromEstimator,
		inq.CreatedAt,
	)
	return err
}

func (r *inquiryRepo) List(ctx context.Context) ([]domain.Inquiry, error) {
	query := `
		SELECT
			id, name, email, phone, company,
			project_type, budget, timeline, message,
			preferred_contact, communication_frequency, newsletter,
			attachment_names, from_estimator, created_at
		FROM inquiries
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inquiries := []domain.Inquiry{}
	for rows.Next() {
		var inq domain.Inquiry
		err := rows.Scan(
			&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Company,
			&inq.ProjectType, &inq.Budget, &inq.Timeline, &inq.Message,
			&inq.PreferredContact, &inq.CommunicationFrequency, &inq.Newsletter,
			pq.Array(&inq.AttachmentNames), &inq.FromEstimator, &inq.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, inq)
	}
	return inquiries, rows.Err()
}

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

type estimateRepo struct {
	db *pgxpool.Pool
}

// NewEstimateRepository creates the saved-estimates repository
func NewEstimateRepository(db *pgxpool.Pool) domain.EstimateRepository {
	return &estimateRepo{db: db}
}

// Append inserts a new saved estimate snapshot. The list is append-only:
// there is no dedup, update, or eviction.
func (r *estimateRepo) Append(ctx context.Context, e *domain.SavedEstimate) error {
	query := `
		INSERT INTO saved_estimates (
			id, project_type_id, project_type_name, feature_names,
			timeline_id, timeline_name, complexity,
			description, special_features, integrations,
			total_price, total_formatted, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, query,
		e.ID,
		e.ProjectTypeID,
		e.ProjectTypeName,
		pq.Array(e.FeatureNames),
		e.TimelineID,
		e.TimelineName,
		e.Requirements.Complexity,
		e.Requirements.Description,
		e.Requirements.SpecialFeatures,
		e.Requirements.Integrations,
		e.TotalPrice,
		e.TotalFormatted,
		e.CreatedAt,
	)
	return err
}

// List returns all saved estimates, newest first
func (r *estimateRepo) List(ctx context.Context) ([]domain.SavedEstimate, error) {
	query := `
		SELECT
			id, project_type_id, project_type_name, feature_names,
			timeline_id, timeline_name, complexity,
			description, special_features, integrations,
			total_price, total_formatted, created_at
		FROM saved_estimates
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	estimates := []domain.SavedEstimate{}
	for rows.Next() {
		var e domain.SavedEstimate
		err := rows.Scan(
			&e.ID, &e.ProjectTypeID, &e.ProjectTypeName, pq.Array(&e.FeatureNames),
			&e.TimelineID, &e.TimelineName, &e.Requirements.Complexity,
			&e.Requirements.Description, &e.Requirements.SpecialFeatures, &e.Requirements.Integrations,
			&e.TotalPrice, &e.TotalFormatted, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, e)
	}
	return estimates, rows.Err()
}

package usecase

import (
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/apperror"
)

type catalogUsecase struct {
	catalog domain.CatalogRepository
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(catalog domain.CatalogRepository) domain.CatalogUsecase {
	return &catalogUsecase{catalog: catalog}
}

func (u *catalogUsecase) ListProjectTypes() []domain.ProjectType {
	return u.catalog.ProjectTypes()
}

// ListFeatureCategories returns the categories eligible for the project
// type. A zero-value id returns the full catalog.
func (u *catalogUsecase) ListFeatureCategories(projectType domain.ProjectTypeID) ([]domain.FeatureCategory, error) {
	if projectType != "" {
		if _, ok := u.catalog.ProjectTypeByID(projectType); !ok {
			return nil, apperror.NotFound("Unknown project type: " + string(projectType))
		}
	}
	return u.catalog.CategoriesFor(projectType), nil
}

func (u *catalogUsecase) ListTimelineOptions() []domain.TimelineOption {
	return u.catalog.TimelineOptions()
}

func (u *catalogUsecase) ListComplexityLevels() []domain.ComplexityInfo {
	return u.catalog.ComplexityLevels()
}

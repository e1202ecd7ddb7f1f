package memory

import (
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

// catalogRepo serves the immutable pricing catalog from in-code data.
// Entries are fixed reference data, not user-created.
type catalogRepo struct {
	projectTypes []domain.ProjectType
	categories   []domain.FeatureCategory
	timelines    []domain.TimelineOption
	complexity   []domain.ComplexityInfo

	projectTypeIndex map[domain.ProjectTypeID]int
	featureIndex     map[domain.FeatureID]*domain.Feature
	timelineIndex    map[domain.TimelineID]int
}

// NewCatalogRepository creates the catalog repository
func NewCatalogRepository() domain.CatalogRepository {
	r := &catalogRepo{
		projectTypes: projectTypes,
		categories:   featureCategories,
		timelines:    timelineOptions,
		complexity:   complexityLevels,

		projectTypeIndex: make(map[domain.ProjectTypeID]int),
		featureIndex:     make(map[domain.FeatureID]*domain.Feature),
		timelineIndex:    make(map[domain.TimelineID]int),
	}

	for i, pt := range r.projectTypes {
		r.projectTypeIndex[pt.ID] = i
	}
	for ci := range r.categories {
		for fi := range r.categories[ci].Features {
			f := &r.categories[ci].Features[fi]
			r.featureIndex[f.ID] = f
		}
	}
	for i, tl := range r.timelines {
		r.timelineIndex[tl.ID] = i
	}

	return r
}

func (r *catalogRepo) ProjectTypes() []domain.ProjectType {
	return r.projectTypes
}

func (r *catalogRepo) ProjectTypeByID(id domain.ProjectTypeID) (*domain.ProjectType, bool) {
	i, ok := r.projectTypeIndex[id]
	if !ok {
		return nil, false
	}
	return &r.projectTypes[i], true
}

func (r *catalogRepo) CategoriesFor(id domain.ProjectTypeID) []domain.FeatureCategory {
	if id == "" {
		return r.categories
	}

	pt, ok := r.ProjectTypeByID(id)
	if !ok {
		return r.categories
	}

	eligible := make(map[domain.FeatureCategoryID]bool, len(pt.Categories))
	for _, cid := range pt.Categories {
		eligible[cid] = true
	}

	out := make([]domain.FeatureCategory, 0, len(pt.Categories))
	for _, cat := range r.categories {
		if eligible[cat.ID] {
			out = append(out, cat)
		}
	}
	return out
}

func (r *catalogRepo) FeatureByID(id domain.FeatureID) (*domain.Feature, bool) {
	f, ok := r.featureIndex[id]
	return f, ok
}

func (r *catalogRepo) FeatureEligible(projectType domain.ProjectTypeID, feature domain.FeatureID) bool {
	f, ok := r.featureIndex[feature]
	if !ok {
		return false
	}
	for _, cat := range r.CategoriesFor(projectType) {
		if cat.ID == f.CategoryID {
			return true
		}
	}
	return false
}

func (r *catalogRepo) TimelineOptions() []domain.TimelineOption {
	return r.timelines
}

func (r *catalogRepo) TimelineOptionByID(id domain.TimelineID) (*domain.TimelineOption, bool) {
	i, ok := r.timelineIndex[id]
	if !ok {
		return nil, false
	}
	return &r.timelines[i], true
}

func (r *catalogRepo) ComplexityLevels() []domain.ComplexityInfo {
	return r.complexity
}

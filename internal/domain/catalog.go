package domain

// ============================================================================
// Project Types
// ============================================================================

// ProjectTypeID identifies a project type catalog entry
type ProjectTypeID string

const (
	ProjectLandingPage ProjectTypeID = "landing-page"
	ProjectWebApp      ProjectTypeID = "web-app"
	ProjectEcommerce   ProjectTypeID = "ecommerce"
)

// ProjectType is an immutable catalog entry describing a kind of project
// a client can order. BasePrice is in whole USD, BaseDays is the baseline
// development duration before features and timeline scaling.
type ProjectType struct {
	ID           ProjectTypeID       `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	BasePrice    float64             `json:"base_price"`
	BaseDays     int                 `json:"base_days"`
	TimelineText string              `json:"timeline"`
	Includes     []string            `json:"includes"`
	Categories   []FeatureCategoryID `json:"categories"`
}

// ============================================================================
// Features
// ============================================================================

// FeatureCategoryID identifies a group of related add-on features
type FeatureCategoryID string

const (
	CategoryAuthentication FeatureCategoryID = "authentication"
	CategoryPayments       FeatureCategoryID = "payments"
	CategoryAdmin          FeatureCategoryID = "admin"
	CategoryContent        FeatureCategoryID = "content"
)

// FeatureID identifies an add-on feature catalog entry
type FeatureID string

// Feature is an immutable catalog entry for an optional add-on.
// TimelineText is the human-readable duration ("4-6 days"); the leading
// number is what feeds the duration estimate.
type Feature struct {
	ID           FeatureID         `json:"id"`
	CategoryID   FeatureCategoryID `json:"category_id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Price        float64           `json:"price"`
	TimelineText string            `json:"timeline"`
}

// FeatureCategory groups features for display and eligibility filtering
type FeatureCategory struct {
	ID       FeatureCategoryID `json:"id"`
	Name     string            `json:"name"`
	Features []Feature         `json:"features"`
}

// ============================================================================
// Timeline Options
// ============================================================================

// TimelineID identifies a delivery-speed option
type TimelineID string

const (
	TimelineUrgent   TimelineID = "urgent"
	TimelineStandard TimelineID = "standard"
	TimelineFlexible TimelineID = "flexible"
)

// TimelineOption is an immutable catalog entry describing a delivery speed.
// PriceMultiplier scales the subtotal; DurationMultiplier scales the
// estimated duration in days.
type TimelineOption struct {
	ID                 TimelineID `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	DurationText       string     `json:"duration"`
	PriceMultiplier    float64    `json:"price_multiplier"`
	DurationMultiplier float64    `json:"duration_multiplier"`
	Perks              []string   `json:"perks"`
}

// ============================================================================
// Complexity Levels
// ============================================================================

// ComplexityLevel represents the declared project complexity
type ComplexityLevel string

const (
	ComplexitySimple     ComplexityLevel = "simple"
	ComplexityMedium     ComplexityLevel = "medium"
	ComplexityComplex    ComplexityLevel = "complex"
	ComplexityEnterprise ComplexityLevel = "enterprise"
)

// ValidComplexityLevels returns all valid complexity levels
func ValidComplexityLevels() []ComplexityLevel {
	return []ComplexityLevel{ComplexitySimple, ComplexityMedium, ComplexityComplex, ComplexityEnterprise}
}

// IsValid checks if the complexity level is valid
func (c ComplexityLevel) IsValid() bool {
	for _, valid := range ValidComplexityLevels() {
		if c == valid {
			return true
		}
	}
	return false
}

// PriceMultiplier returns the price multiplier for the level.
// Unknown levels fall back to 1.0, same as an unset selection.
func (c ComplexityLevel) PriceMultiplier() float64 {
	switch c {
	case ComplexitySimple:
		return 0.8
	case ComplexityComplex:
		return 1.4
	case ComplexityEnterprise:
		return 2.0
	default:
		return 1.0
	}
}

// ComplexityInfo is the display form of a complexity level
type ComplexityInfo struct {
	Value       ComplexityLevel `json:"value"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Multiplier  float64         `json:"multiplier"`
}

// ============================================================================
// Repository / Usecase Interfaces
// ============================================================================

// CatalogRepository provides read-only access to the pricing catalog
type CatalogRepository interface {
	ProjectTypes() []ProjectType
	ProjectTypeByID(id ProjectTypeID) (*ProjectType, bool)

	// CategoriesFor returns the feature categories eligible for the given
	// project type. A zero-value id returns all categories.
	CategoriesFor(id ProjectTypeID) []FeatureCategory
	FeatureByID(id FeatureID) (*Feature, bool)
	FeatureEligible(projectType ProjectTypeID, feature FeatureID) bool

	TimelineOptions() []TimelineOption
	TimelineOptionByID(id TimelineID) (*TimelineOption, bool)

	ComplexityLevels() []ComplexityInfo
}

// CatalogUsecase exposes the catalog to the delivery layer
type CatalogUsecase interface {
	ListProjectTypes() []ProjectType
	ListFeatureCategories(projectType ProjectTypeID) ([]FeatureCategory, error)
	ListTimelineOptions() []TimelineOption
	ListComplexityLevels() []ComplexityInfo
}

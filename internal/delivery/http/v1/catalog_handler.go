package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/delivery/http/response"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

type CatalogHandler struct {
	catalogUC domain.CatalogUsecase
}

// NewCatalogHandler registers the read-only pricing catalog routes
func NewCatalogHandler(r *gin.RouterGroup, catalogUC domain.CatalogUsecase) {
	handler := &CatalogHandler{catalogUC: catalogUC}

	catalog := r.Group("/catalog")
	{
		catalog.GET("/project-types", handler.ListProjectTypes)
		catalog.GET("/features", handler.ListFeatures)
		catalog.GET("/timelines", handler.ListTimelines)
		catalog.GET("/complexity-levels", handler.ListComplexityLevels)
	}
}

// ListProjectTypes godoc
// @Summary      List project types
// @Description  Returns the project types a client can order, with base prices
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ProjectType}
// @Router       /catalog/project-types [get]
func (h *CatalogHandler) ListProjectTypes(c *gin.Context) {
	response.Success(c, http.StatusOK, "Project types retrieved", h.catalogUC.ListProjectTypes())
}

// ListFeatures godoc
// @Summary      List feature categories
// @Description  Returns add-on features grouped by category. Pass project_type to filter to the categories eligible for that type.
// @Tags         catalog
// @Produce      json
// @Param        project_type  query     string  false  "Project type id"
// @Success      200           {object}  response.Response{data=[]domain.FeatureCategory}
// @Failure      404           {object}  response.Response
// @Router       /catalog/features [get]
func (h *CatalogHandler) ListFeatures(c *gin.Context) {
	projectType := domain.ProjectTypeID(c.Query("project_type"))

	categories, err := h.catalogUC.ListFeatureCategories(projectType)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Feature categories retrieved", categories)
}

// ListTimelines godoc
// @Summary      List timeline options
// @Description  Returns the delivery-speed options with price and duration multipliers
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.TimelineOption}
// @Router       /catalog/timelines [get]
func (h *CatalogHandler) ListTimelines(c *gin.Context) {
	response.Success(c, http.StatusOK, "Timeline options retrieved", h.catalogUC.ListTimelineOptions())
}

// ListComplexityLevels godoc
// @Summary      List complexity levels
// @Description  Returns the complexity levels with their price multipliers
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ComplexityInfo}
// @Router       /catalog/complexity-levels [get]
func (h *CatalogHandler) ListComplexityLevels(c *gin.Context) {
	response.Success(c, http.StatusOK, "Complexity levels retrieved", h.catalogUC.ListComplexityLevels())
}

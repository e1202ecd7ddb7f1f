package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/config"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/delivery/http/middleware"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/delivery/http/response"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/usecase"
)

type RouterDeps struct {
	CatalogUC   domain.CatalogUsecase
	EstimatorUC domain.EstimatorUsecase
	InquiryUC   domain.InquiryUsecase
	HealthUC    usecase.HealthUsecase
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		response.Success(c, http.StatusOK, "System operational", status)
	})

	NewCatalogHandler(v1, deps.CatalogUC)
	NewEstimatorHandler(v1, deps.EstimatorUC)
	NewInquiryHandler(v1, deps.InquiryUC, deps.Config.MaxUploadBytes())

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

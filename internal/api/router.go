package api

import (
	"github.com/gin-gonic/gin"

	"github.com/deepakm/resumatch/internal/api/handler"
	"github.com/deepakm/resumatch/internal/api/middleware"
	"github.com/deepakm/resumatch/internal/logger"
	"github.com/deepakm/resumatch/internal/repository"
	"github.com/deepakm/resumatch/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	workflowService *service.WorkflowService,
	jdRepo *repository.JDRepository,
	resumeRepo *repository.ResumeRepository,
	comparisonRepo *repository.ComparisonRepository,
	log *logger.Logger,
	cors middleware.CORSConfig,
	mode string,
) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cors))

	healthHandler := handler.NewHealthHandler()
	jdHandler := handler.NewJDHandler(jdRepo)
	resumeHandler := handler.NewResumeHandler(resumeRepo)
	workflowHandler := handler.NewWorkflowHandler(workflowService, resumeRepo)
	resultsHandler := handler.NewResultsHandler(comparisonRepo)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Job descriptions
		v1.POST("/jd", jdHandler.UploadJD)
		v1.GET("/jd/:id", jdHandler.GetJD)

		// Resumes
		v1.POST("/resumes", resumeHandler.UploadResume)

		// Workflows
		v1.POST("/workflows", workflowHandler.CreateWorkflow)
		v1.GET("/workflows/:id", workflowHandler.GetWorkflow)
		v1.POST("/workflows/:id/run", workflowHandler.RunWorkflow)

		// Results
		v1.GET("/results/:jd_id", resultsHandler.ListByJD)
	}

	return r
}

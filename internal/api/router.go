package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/answerhub/forum-api/internal/api/handler"
	"github.com/answerhub/forum-api/internal/api/middleware"
	"github.com/answerhub/forum-api/internal/core/ports"
)

// RouterConfig carries the wired services and infrastructure handles the
// router needs. Services are built in main so the router stays testable.
type RouterConfig struct {
	Users     ports.UserService
	Questions ports.QuestionService
	Answers   ports.AnswerService
	DB        *mongo.Database
	Redis     *redis.Client
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("forum"))
	e.Use(middleware.BearerToken())

	userHandler := handler.NewUserHandler(cfg.Users)
	questionHandler := handler.NewQuestionHandler(cfg.Questions)
	answerHandler := handler.NewAnswerHandler(cfg.Answers)

	// --- User routes ---
	e.POST("/user/signup", userHandler.Signup)
	e.POST("/user/signin", userHandler.Signin)
	e.POST("/user/signout", userHandler.Signout)
	e.GET("/userprofile/:userId", userHandler.Profile)
	e.DELETE("/admin/user/:userId", userHandler.AdminDelete)

	// --- Question routes ---
	e.POST("/question/create", questionHandler.Create)
	e.GET("/question/all", questionHandler.GetAll)
	e.GET("/question/all/:userId", questionHandler.GetAllByUser)
	e.PUT("/question/edit/:questionId", questionHandler.Edit)
	e.DELETE("/question/delete/:questionId", questionHandler.Delete)

	// --- Answer routes ---
	e.POST("/question/:questionId/answer/create", answerHandler.Create)
	e.GET("/answer/all/:questionId", answerHandler.GetAllByQuestion)
	e.PUT("/answer/edit/:answerId", answerHandler.Edit)
	e.DELETE("/answer/delete/:answerId", answerHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

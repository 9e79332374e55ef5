package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fitai/cmd/fx/ai_fx"
	"fitai/cmd/fx/auth_fx"
	"fitai/cmd/fx/chat_fx"
	"fitai/cmd/fx/controllers_fx"
	"fitai/cmd/fx/core_fx"
	"fitai/cmd/fx/db_fx"
	"fitai/cmd/fx/exercises_fx"
	"fitai/cmd/fx/mail_fx"
	"fitai/cmd/fx/nutrition_fx"
	"fitai/cmd/fx/sms_fx"
	"fitai/cmd/fx/subscriptions_fx"
	"fitai/cmd/fx/usage_fx"
	"fitai/cmd/fx/users_fx"
	"fitai/cmd/fx/workouts_fx"
	"fitai/docs"
	"fitai/internal/api/controllers"
	"fitai/internal/models/db_models"
	"fitai/internal/services"
	"fitai/pkg/config"
	"fitai/pkg/middleware"
	"fitai/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		core_fx.Module,
		db_fx.Module,
		ai_fx.Module,
		mail_fx.Module,
		sms_fx.Module,
		usage_fx.Module,
		auth_fx.Module,
		users_fx.Module,
		workouts_fx.Module,
		nutrition_fx.Module,
		chat_fx.Module,
		subscriptions_fx.Module,
		exercises_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.SugaredLogger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Infow("starting HTTP server", "port", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					logger.Fatalw("failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Infow("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	tokens *utils.TokenManager,
	usageService services.UsageServiceInterface,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	workoutController *controllers.WorkoutController,
	nutritionController *controllers.NutritionController,
	chatController *controllers.ChatController,
	subscriptionController *controllers.SubscriptionController,
	exerciseController *controllers.ExerciseController,
) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, tokens, usageService,
		authController, userController, workoutController,
		nutritionController, chatController, subscriptionController,
		exerciseController)

	return r
}

func RegisterRoutes(
	r *gin.Engine,
	tokens *utils.TokenManager,
	usageService services.UsageServiceInterface,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	workoutController *controllers.WorkoutController,
	nutritionController *controllers.NutritionController,
	chatController *controllers.ChatController,
	subscriptionController *controllers.SubscriptionController,
	exerciseController *controllers.ExerciseController,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api-docs.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docs.Spec())
	})

	api := r.Group("/api/v1")
	authRequired := middleware.JWTAuthMiddleware(tokens)

	authGroup := api.Group("/auth")
	authGroup.POST("/send-code", authController.SendCode)
	authGroup.POST("/verify-code", authController.VerifyCode)
	authGroup.POST("/email/signup", authController.SignUpEmail)
	authGroup.POST("/email/verify", authController.VerifyEmail)
	authGroup.POST("/email/login", authController.LoginEmail)
	authGroup.POST("/forgot-password", authController.ForgotPassword)
	authGroup.POST("/reset-password", authController.ResetPassword)

	usersGroup := api.Group("/users", authRequired)
	usersGroup.GET("/me", userController.GetProfile)
	usersGroup.PATCH("/me", userController.UpdateProfile)
	usersGroup.DELETE("/me", userController.DeleteAccount)
	usersGroup.POST("/me/complete-profile", userController.CompleteProfile)
	usersGroup.GET("/me/schedule", userController.GetWeeklySchedule)
	usersGroup.GET("/me/progress-photos", userController.ListProgressPhotos)
	usersGroup.POST("/me/progress-photos", userController.UploadProgressPhoto)

	workoutsGroup := api.Group("/workouts", authRequired)
	workoutsGroup.POST("/generate", workoutController.GeneratePlan)
	workoutsGroup.GET("/active", workoutController.GetActiveProgram)
	workoutsGroup.POST("/log", workoutController.LogWorkout)

	nutritionGroup := api.Group("/nutrition", authRequired)
	nutritionGroup.POST("/meal-plan",
		middleware.CheckUsageLimit(usageService, db_models.CategoryRecipeGeneration),
		nutritionController.GenerateMealPlan)
	nutritionGroup.GET("/recipes",
		middleware.CheckUsageLimit(usageService, db_models.CategoryRecipeGeneration),
		nutritionController.SearchRecipes)
	nutritionGroup.POST("/analyze-food",
		middleware.CheckUsageLimit(usageService, db_models.CategoryImageAnalysis),
		nutritionController.AnalyzeFood)

	chatGroup := api.Group("/chat", authRequired)
	chatGroup.POST("/message",
		middleware.CheckUsageLimit(usageService, db_models.CategoryAIChat),
		chatController.SendMessage)
	chatGroup.GET("/history", chatController.GetHistory)
	chatGroup.DELETE("/history", chatController.ClearHistory)

	subscriptionsGroup := api.Group("/subscriptions")
	subscriptionsGroup.POST("/webhook", subscriptionController.StripeWebhook)
	subscriptionsGroup.GET("/me", authRequired, subscriptionController.GetSubscription)
	subscriptionsGroup.POST("/checkout", authRequired, subscriptionController.CreateCheckout)
	subscriptionsGroup.POST("/cancel", authRequired, subscriptionController.CancelSubscription)

	exercisesGroup := api.Group("/exercises", authRequired)
	exercisesGroup.GET("", exerciseController.Search)
	exercisesGroup.GET("/:id", exerciseController.GetByID)
}

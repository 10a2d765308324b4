package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles everything the handlers depend on.
type Services struct {
	Auth    service.AuthService
	Client  service.ClientService
	Trainer service.TrainerService
	Workout service.WorkoutService
	Meal    service.MealService
	Weight  service.WeightService
	Goal    service.GoalService
	Report  service.ReportService
}

func SetupRoutes(router *gin.Engine, allowedOrigins []string, svc Services) {
	RegisterValidators()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := NewAuthHandler(svc.Auth)
	clientHandler := NewClientHandler(svc.Client)
	trainerHandler := NewTrainerHandler(svc.Trainer)
	workoutHandler := NewWorkoutHandler(svc.Workout)
	mealHandler := NewMealHandler(svc.Meal)
	weightHandler := NewWeightHandler(svc.Weight)
	goalHandler := NewGoalHandler(svc.Goal)
	reportHandler := NewReportHandler(svc.Report)

	authMiddleware := AuthMiddleware(svc.Auth)

	apiGroup := router.Group("/api")

	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "FitTrack API is running"})
	})

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		account := protected.Group("/auth")
		{
			account.GET("/me", authHandler.Me)
			account.PUT("/profile", authHandler.UpdateProfile)
			account.GET("/trainers", authHandler.ListTrainers)

			account.POST("/profile/avatar/upload-url", authHandler.AvatarUploadURL)
			account.PUT("/profile/avatar", authHandler.SetAvatar)
			account.GET("/profile/avatar", authHandler.AvatarURL)

			account.POST("/trainer-request", clientHandler.RequestTrainer)
			account.GET("/trainer-request/my-request", clientHandler.MyRequest)
			account.DELETE("/trainer-request/:requestId", clientHandler.CancelRequest)
			account.DELETE("/profile/trainer", clientHandler.RemoveTrainer)
			account.GET("/my-plans", clientHandler.MyPlans)
			account.GET("/my-plans/:planId", clientHandler.MyPlan)
		}

		workouts := protected.Group("/workouts")
		{
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.POST("", workoutHandler.CreateWorkout)
			workouts.GET("/stats/summary", workoutHandler.WorkoutStats)
			workouts.GET("/:id", workoutHandler.GetWorkout)
			workouts.PUT("/:id", workoutHandler.UpdateWorkout)
			workouts.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		meals := protected.Group("/meals")
		{
			meals.GET("", mealHandler.ListMeals)
			meals.POST("", mealHandler.CreateMeal)
			meals.GET("/today", mealHandler.TodayMeals)
			meals.GET("/stats/summary", mealHandler.MealStats)
			meals.GET("/:id", mealHandler.GetMeal)
			meals.PUT("/:id", mealHandler.UpdateMeal)
			meals.DELETE("/:id", mealHandler.DeleteMeal)
		}

		weight := protected.Group("/weight")
		{
			weight.GET("", weightHandler.ListWeights)
			weight.POST("", weightHandler.CreateWeight)
			weight.GET("/latest", weightHandler.LatestWeight)
			weight.GET("/stats/progress", weightHandler.WeightProgress)
			weight.GET("/:id", weightHandler.GetWeight)
			weight.PUT("/:id", weightHandler.UpdateWeight)
			weight.DELETE("/:id", weightHandler.DeleteWeight)
		}

		goals := protected.Group("/goals")
		{
			goals.GET("", goalHandler.ListGoals)
			goals.POST("", goalHandler.CreateGoal)
			goals.GET("/:id", goalHandler.GetGoal)
			goals.PUT("/:id", goalHandler.UpdateGoal)
			goals.PUT("/:id/progress", goalHandler.UpdateGoalProgress)
			goals.DELETE("/:id", goalHandler.DeleteGoal)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/summary", reportHandler.Summary)
			reports.GET("/weekly", reportHandler.Weekly)
			reports.GET("/daily-calories", reportHandler.DailyCalories)
		}

		// Trainer-only routes
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(service.ErrTrainersOnly, domain.RoleTrainer))
		{
			trainerGroup.GET("/clients", trainerHandler.GetClients)
			trainerGroup.GET("/clients/:clientId", trainerHandler.GetClientDetail)
			trainerGroup.POST("/clients/:clientId/assign", trainerHandler.AssignClient)

			trainerGroup.GET("/requests", trainerHandler.GetRequests)
			trainerGroup.PUT("/requests/:requestId/approve", trainerHandler.ApproveRequest)
			trainerGroup.PUT("/requests/:requestId/reject", trainerHandler.RejectRequest)

			trainerGroup.GET("/plans", trainerHandler.GetPlans)
			trainerGroup.POST("/plans", trainerHandler.CreatePlan)
			trainerGroup.GET("/plans/:planId", trainerHandler.GetPlan)
			trainerGroup.PUT("/plans/:planId", trainerHandler.UpdatePlan)
			trainerGroup.DELETE("/plans/:planId", trainerHandler.DeletePlan)
		}
	}
}

package router

import (
	"stackit/internal/handlers"
	"stackit/internal/middleware"
	"stackit/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Services bundles everything the routes need.
type Services struct {
	DB            *gorm.DB
	Users         *services.UserService
	Questions     *services.QuestionService
	Answers       *services.AnswerService
	Votes         *services.VoteService
	Notifications *services.NotificationService
	Reputation    *services.ReputationService
}

func RegisterRoutes(r *gin.Engine, s Services) {
	authHandler := handlers.NewAuthHandler(s.Users)
	questionHandler := handlers.NewQuestionHandler(s.Questions)
	answerHandler := handlers.NewAnswerHandler(s.Answers)
	voteHandler := handlers.NewVoteHandler(s.Votes)
	notificationHandler := handlers.NewNotificationHandler(s.Notifications)
	userHandler := handlers.NewUserHandler(s.Users, s.Reputation)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LoadUser(s.Users, s.Notifications))

	// 公共路由
	api.GET("/health", handlers.Health(s.DB))
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/questions", questionHandler.List)
	api.GET("/questions/hot", questionHandler.Hot)
	api.GET("/questions/:id", questionHandler.Detail)
	api.GET("/answers/question/:questionId", answerHandler.List)

	api.GET("/users/leaderboard", userHandler.Leaderboard)
	api.GET("/users/:id", userHandler.Profile)
	api.GET("/users/:id/reputation", userHandler.Reputation)

	// 受保护路由
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/auth/me", authHandler.Me)

		authorized.POST("/questions", questionHandler.Create)
		authorized.PUT("/questions/:id", questionHandler.Update)
		authorized.DELETE("/questions/:id", questionHandler.Delete)
		authorized.PUT("/questions/:id/accept/:answerId", answerHandler.AcceptForQuestion)

		authorized.POST("/answers", answerHandler.Create)
		authorized.PUT("/answers/:id", answerHandler.Update)
		authorized.PUT("/answers/:id/accept", answerHandler.Accept)
		authorized.DELETE("/answers/:id", answerHandler.Delete)

		authorized.POST("/votes/:kind/:id", voteHandler.Vote)
		authorized.GET("/votes/:kind/:id/status", voteHandler.Status)

		authorized.PUT("/users/:id", userHandler.UpdateProfile)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		authorized.PUT("/notifications/read-all", notificationHandler.ReadAll)
		authorized.PUT("/notifications/:id/read", notificationHandler.Read)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)
	}
}

package api

import (
	"alcyxob/win-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	staticDir string,
	syncService service.SyncService,
	challengeService service.ChallengeService,
) {
	syncHandler := NewSyncHandler(syncService)
	challengeHandler := NewChallengeHandler(challengeService)
	userIDMiddleware := UserIDMiddleware()

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	{
		// --- Whole-snapshot sync ---
		apiGroup.POST("/sync", syncHandler.Upload)
		apiGroup.POST("/users", syncHandler.CreateUser)

		syncUser := apiGroup.Group("/sync/:userId")
		syncUser.Use(userIDMiddleware)
		{
			syncUser.GET("", syncHandler.Download)
			syncUser.DELETE("", syncHandler.Delete)
			syncUser.GET("/export", syncHandler.Export)
		}
	}

	// --- Challenge operations ---
	user := router.Group("/api/v1/users/:userId")
	user.Use(userIDMiddleware)
	{
		user.GET("/challenge", challengeHandler.GetChallenge)
		user.POST("/challenge/start", challengeHandler.StartChallenge)
		user.PUT("/goal", challengeHandler.SetGoal)

		user.PATCH("/days/:day/checklist", challengeHandler.SetChecklistItem)
		user.PUT("/days/:day/journal", challengeHandler.SubmitJournal)
		user.POST("/days/:day/end", challengeHandler.EndDay)

		user.POST("/todos", challengeHandler.AddTodo)
		user.PATCH("/todos/:id", challengeHandler.SetTodoCompleted)
		user.DELETE("/todos/:id", challengeHandler.RemoveTodo)

		user.POST("/reminders", challengeHandler.AddReminder)
		user.PATCH("/reminders/:id", challengeHandler.SetReminderCompleted)
		user.DELETE("/reminders/:id", challengeHandler.RemoveReminder)
	}

	// --- Static client ---
	router.NoRoute(StaticHandler(staticDir))
}

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/platform/authz"
	"github.com/campuspolls/election-backend/internal/report"
	"github.com/campuspolls/election-backend/internal/user"
	"github.com/campuspolls/election-backend/internal/vote"
)

// SetupRoutes registers every API route of the application.
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Authentication
		auth := api.Group("/auth")
		{
			auth.POST("/login", user.Login)
			auth.POST("/logout", user.RequireAuth(), user.Logout)
			auth.GET("/me", user.RequireAuth(), user.Me)
		}

		// Voter-facing election routes
		elections := api.Group("/elections", user.RequireAuth())
		{
			elections.GET("", election.ListElections)
			elections.GET("/:id", vote.GetBallot)
			elections.POST("/:id/vote", vote.SubmitVote)
			elections.GET("/:id/results", report.GetResults)
		}

		// Admin surface, gated through the authorization table
		admin := api.Group("/admin", user.RequireAuth())
		{
			adminElections := admin.Group("/elections", user.RequirePermission(authz.ActionManageElections))
			{
				adminElections.POST("", election.CreateElectionHandler)
				adminElections.PUT("/:id", election.UpdateElectionHandler)
				adminElections.POST("/:id/close", election.CloseElectionHandler)
				adminElections.DELETE("/:id", election.DeleteElectionHandler)
			}
			admin.GET("/elections/:id/reconcile",
				user.RequirePermission(authz.ActionReconcile), report.ReconcileHandler)

			candidates := admin.Group("", user.RequirePermission(authz.ActionManageCandidates))
			{
				candidates.POST("/elections/:id/candidates", election.AddCandidateHandler)
				candidates.PUT("/candidates/:id", election.UpdateCandidateHandler)
				candidates.DELETE("/candidates/:id", election.DeleteCandidateHandler)
				candidates.POST("/candidates/:id/fields", election.AddFieldHandler)
				candidates.DELETE("/fields/:id", election.DeleteFieldHandler)
			}

			users := admin.Group("/users", user.RequirePermission(authz.ActionManageUsers))
			{
				users.POST("/import", user.ImportUsers)
				users.DELETE("/:id", user.DeleteUser)
			}
		}
	}
}

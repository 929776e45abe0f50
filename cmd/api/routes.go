package main

import (
	"wellness-platform/internal/auth"
	"wellness-platform/internal/httpapi"
	"wellness-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, authMW gin.HandlerFunc, h httpapi.Handlers, gw *httpapi.Gateway) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// AUTH routes (token issuance).
	// NOTE: This is a placeholder login route; real credential validation is not implemented.
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(authMW)
	{
		v1.GET("/me", func(c *gin.Context) {
			uid, _ := auth.UserID(c.Request.Context())
			wid, _ := auth.WorkspaceID(c.Request.Context())
			role, _ := auth.Role(c.Request.Context())
			c.JSON(200, gin.H{"user_id": uid, "workspace_id": wid, "role": role})
		})

		// CALL routes
		calls := v1.Group("/calls")
		calls.Use(rbac.RequireWorkspace())
		{
			// persistent signaling channel; attaches the user for invites
			calls.GET("/ws", gw.Handle)

			calls.GET("/ringtone", h.Ringtone)

			calls.POST("/:appointment_id/start", h.StartCall)
			calls.POST("/:appointment_id/answer", h.AnswerCall)
			calls.POST("/:appointment_id/decline", h.DeclineCall)
			calls.POST("/:appointment_id/end", h.EndCall)
			calls.POST("/:appointment_id/dismiss", h.DismissCall)
			calls.POST("/:appointment_id/controls", h.CallControl)
			calls.GET("/:appointment_id/status", h.CallStatus)
		}

		// REPORT routes
		// Clients see their own calls in the UI; aggregates are practice-side.
		reports := v1.Group("/reports")
		reports.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleNutritionist)...)
		{
			reports.GET("/calls/summary", h.CallSummary)
		}
	}
}

package httpapi

import (
	"errors"
	"net/http"
	"time"

	"wellness-platform/internal/appointments"
	"wellness-platform/internal/auth"
	"wellness-platform/internal/call"
	"wellness-platform/internal/history"
	"wellness-platform/internal/media"
	"wellness-platform/internal/rbac"
	"wellness-platform/internal/ringtone"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth    *auth.Manager
	Calls   *call.Manager
	History *history.Service
}

// --- Auth ---

type loginRequest struct {
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
	Role        string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.WorkspaceID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, workspace_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.WorkspaceID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Calls ---

func identity(c *gin.Context) (userID, workspaceID string, ok bool) {
	userID, err := auth.UserID(c.Request.Context())
	if err != nil || userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id required"})
		return "", "", false
	}
	workspaceID, err = auth.WorkspaceID(c.Request.Context())
	if err != nil || workspaceID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "workspace_id required"})
		return "", "", false
	}
	return userID, workspaceID, true
}

func writeCallError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appointments.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
	case errors.Is(err, appointments.ErrNotParticipant):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not a participant of this appointment"})
	case errors.Is(err, call.ErrNoSession):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no active call"})
	case errors.Is(err, call.ErrBusy):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "a call is already active for this appointment"})
	case errors.Is(err, call.ErrRoomFull):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "room is full"})
	case errors.Is(err, media.ErrPermissionDenied), errors.Is(err, media.ErrDeviceUnavailable):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "call operation failed"})
	}
}

// StartCall places an outgoing call for an appointment. Consultations are
// originated by the practice side; clients answer.
func (h Handlers) StartCall(c *gin.Context) {
	userID, workspaceID, ok := identity(c)
	if !ok {
		return
	}
	role, _ := auth.Role(c.Request.Context())
	if !rbac.CanHostCall(role) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role may not start consultations"})
		return
	}
	v, err := h.Calls.StartCall(c.Request.Context(), workspaceID, c.Param("appointment_id"), userID)
	if err != nil {
		writeCallError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h Handlers) AnswerCall(c *gin.Context) {
	userID, workspaceID, ok := identity(c)
	if !ok {
		return
	}
	v, err := h.Calls.Answer(c.Request.Context(), workspaceID, c.Param("appointment_id"), userID)
	if err != nil {
		writeCallError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h Handlers) DeclineCall(c *gin.Context) {
	userID, workspaceID, ok := identity(c)
	if !ok {
		return
	}
	v, err := h.Calls.Decline(c.Request.Context(), workspaceID, c.Param("appointment_id"), userID)
	if err != nil {
		writeCallError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h Handlers) EndCall(c *gin.Context) {
	userID, workspaceID, ok := identity(c)
	if !ok {
		return
	}
	v, err := h.Calls.EndCall(c.Request.Context(), workspaceID, c.Param("appointment_id"), userID)
	if err != nil {
		writeCallError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h Handlers) DismissCall(c *gin.Context) {
	userID, workspaceID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Calls.Dismiss(c.Request.Context(), workspaceID, c.Param("appointment_id"), userID); err != nil {
		writeCallError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) CallStatus(c *gin.Context) {
	userID, workspaceID, ok := identity(c)
	if !ok {
		return
	}
	v, found := h.Calls.Status(workspaceID, c.Param("appointment_id"), userID)
	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no active call"})
		return
	}
	c.JSON(http.StatusOK, v)
}

type controlRequest struct {
	Action string `json:"action"`
}

// CallControl flips one in-call media toggle: mute, video or screen_share.
func (h Handlers) CallControl(c *gin.Context) {
	userID, workspaceID, ok := identity(c)
	if !ok {
		return
	}
	var req controlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	aptID := c.Param("appointment_id")
	var (
		v   call.View
		err error
	)
	switch req.Action {
	case "mute":
		v, err = h.Calls.ToggleMute(workspaceID, aptID, userID)
	case "video":
		v, err = h.Calls.ToggleVideo(workspaceID, aptID, userID)
	case "screen_share":
		v, err = h.Calls.ToggleScreenShare(workspaceID, aptID, userID)
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "action must be mute, video or screen_share"})
		return
	}
	if err != nil {
		writeCallError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Ringtone serves the generated call-progress audio so clients need no
// bundled asset. kind=ringback is what a caller hears; kind=ringtone is the
// callee alert.
func (h Handlers) Ringtone(c *gin.Context) {
	var cadence ringtone.Cadence
	switch c.DefaultQuery("kind", "ringback") {
	case "ringback":
		cadence = ringtone.Ringback()
	case "ringtone":
		cadence = ringtone.Ringtone()
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "kind must be ringback or ringtone"})
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "audio/wav", ringtone.WAV(8000, cadence))
}

// --- Reports ---

// CallSummary aggregates call outcomes for the caller's workspace.
func (h Handlers) CallSummary(c *gin.Context) {
	if h.History == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "history not configured"})
		return
	}
	_, workspaceID, ok := identity(c)
	if !ok {
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
		return
	}

	sum, err := h.History.Summarize(c.Request.Context(), workspaceID, history.TimeRange{From: from, To: to})
	if err != nil {
		if errors.Is(err, history.ErrInvalidRequest) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid time range"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Convenience middleware bundles.

func RequireWorkspaceAndAnyRole(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{rbac.RequireWorkspace(), rbac.RequireAnyRole(roles...)}
}

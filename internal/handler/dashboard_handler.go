package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizxmentor-backend/internal/middleware"
	"github.com/stemsi/quizxmentor-backend/internal/response"
	"github.com/stemsi/quizxmentor-backend/internal/service"
)

// DashboardHandler handles the user dashboard and admin stats endpoints.
type DashboardHandler struct {
	statsService *service.StatsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

// GetDashboard godoc
// GET /api/dashboard
// Returns the current user and their counters.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	stats, err := h.statsService.UserDashboard(c.Request.Context(), sess.UserID)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  sess.Profile(),
		"stats": stats,
	})
}

// GetAdminStats godoc
// GET /api/admin/stats
// Returns bank size, registered users, and quiz attempts across all users.
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.statsService.AdminStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

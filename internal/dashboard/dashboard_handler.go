package dashboard

import (
	"strconv"

	"assetdesk/pkg/api"

	"github.com/gin-gonic/gin"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 50
)

type DashboardHandler struct {
	Repository DashboardRepository
}

func NewDashboardHandler(repository DashboardRepository) *DashboardHandler {
	return &DashboardHandler{Repository: repository}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", h.GetStats)
	router.GET("/dashboard/recent", h.GetRecentActivity)
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.Repository.GetStats()
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, stats)
}

func (h *DashboardHandler) GetRecentActivity(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = defaultActivityLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	entries, err := h.Repository.GetRecentActivity(limit)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, entries)
}

package maintenance

import (
	"net/http"
	"strconv"

	"assetdesk/pkg/api"
	"assetdesk/pkg/models"
	"assetdesk/pkg/security"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	service *MaintenanceService
}

func NewMaintenanceHandler(service *MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/maintenance", h.ListLogs)
	router.POST("/maintenance", h.CreateLog)
	router.PATCH("/maintenance/:id/status", h.UpdateStatus)
}

func (h *MaintenanceHandler) ListLogs(c *gin.Context) {
	logs, err := h.service.ListLogs()
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"maintenance": logs})
}

func (h *MaintenanceHandler) CreateLog(c *gin.Context) {
	var req models.MaintenanceCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	claims, _ := security.CurrentClaims(c)

	created, err := h.service.CreateLog(req, claims)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.Created(c, gin.H{"maintenance": created})
}

func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	logID, err := strconv.Atoi(c.Param("id"))
	if err != nil || logID == 0 {
		api.Fail(c, http.StatusBadRequest, "Maintenance id required")
		return
	}

	var patch models.MaintenanceStatusPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	claims, _ := security.CurrentClaims(c)

	updated, err := h.service.UpdateStatus(logID, patch, claims)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"maintenance": updated})
}

package requests

import (
	"net/http"
	"strconv"

	"assetdesk/pkg/api"
	"assetdesk/pkg/models"
	"assetdesk/pkg/security"

	"github.com/gin-gonic/gin"
)

type RequestsHandler struct {
	service *RequestService
}

func NewRequestsHandler(service *RequestService) *RequestsHandler {
	return &RequestsHandler{service: service}
}

func (h *RequestsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/requests", h.ListRequests)
	router.POST("/requests", h.CreateRequest)
	router.PATCH("/requests/:id/status", h.UpdateStatus)
}

func (h *RequestsHandler) ListRequests(c *gin.Context) {
	claims, _ := security.CurrentClaims(c)

	requests, err := h.service.ListRequests(c.Query("status"), claims)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"requests": requests})
}

func (h *RequestsHandler) CreateRequest(c *gin.Context) {
	var req models.BorrowingRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	claims, _ := security.CurrentClaims(c)

	created, err := h.service.CreateRequest(req, claims)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.Created(c, gin.H{"request": created})
}

func (h *RequestsHandler) UpdateStatus(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil || requestID == 0 {
		api.Fail(c, http.StatusBadRequest, "Request id required")
		return
	}

	var patch models.RequestStatusPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	claims, _ := security.CurrentClaims(c)

	updated, err := h.service.UpdateStatus(requestID, patch, claims)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"request": updated})
}

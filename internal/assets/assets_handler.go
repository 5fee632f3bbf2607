package assets

import (
	"net/http"
	"strconv"

	"assetdesk/internal/repository"
	"assetdesk/pkg/api"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/gin-gonic/gin"
)

type AssetsHandler struct {
	service *AssetService
}

func NewAssetsHandler(service *AssetService) *AssetsHandler {
	return &AssetsHandler{service: service}
}

func (h *AssetsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assets", h.ListAssets)
	router.GET("/assets/tag/:tag", h.GetAssetByTag)
	router.PATCH("/assets/:id/status", h.UpdateAssetStatus)
	router.POST("/assets", security.Authorize(roles.Admin), h.CreateAsset)
	router.PATCH("/assets/:id", security.Authorize(roles.Admin), h.UpdateAsset)
	router.DELETE("/assets/:id", security.Authorize(roles.Admin), h.RemoveAsset)
}

func (h *AssetsHandler) ListAssets(c *gin.Context) {
	filters := repository.NewQueryBuilder()
	for _, key := range []string{"status", "condition", "category", "department"} {
		if value := c.Query(key); value != "" {
			filters.AddCondition(key, value)
		}
	}

	assets, err := h.service.ListAssets(filters)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"assets": assets})
}

func (h *AssetsHandler) GetAssetByTag(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		api.Fail(c, http.StatusBadRequest, "Asset tag required")
		return
	}

	asset, err := h.service.GetAssetByTag(tag)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"asset": asset})
}

func (h *AssetsHandler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	claims, _ := security.CurrentClaims(c)

	asset, err := h.service.CreateAsset(req, claims)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.Created(c, gin.H{"asset": asset})
}

func (h *AssetsHandler) UpdateAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID == 0 {
		api.Fail(c, http.StatusBadRequest, "Asset id required")
		return
	}

	var patch models.AssetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	asset, err := h.service.UpdateAsset(assetID, patch)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"asset": asset})
}

func (h *AssetsHandler) UpdateAssetStatus(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID == 0 {
		api.Fail(c, http.StatusBadRequest, "Asset id required")
		return
	}

	var patch models.AssetStatusPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	asset, err := h.service.UpdateAssetStatus(assetID, patch)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"asset": asset})
}

func (h *AssetsHandler) RemoveAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID == 0 {
		api.Fail(c, http.StatusBadRequest, "Asset id required")
		return
	}

	if err := h.service.DeleteAsset(assetID); err != nil {
		api.Error(c, err)
		return
	}

	api.Message(c, "Asset deleted successfully")
}

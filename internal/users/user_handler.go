package users

import (
	"net/http"
	"strconv"

	"assetdesk/pkg/api"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/gin-gonic/gin"
)

const minPasswordLength = 8

type UsersHandler struct {
	Repository UserRepository
}

func NewHandler(r UserRepository) *UsersHandler {
	return &UsersHandler{Repository: r}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("", security.Authorize(roles.Admin))
	admin.GET("/users", h.ListUsers)
	admin.POST("/users", h.CreateUser)
	admin.PATCH("/users/:id", h.UpdateUser)
}

func (h *UsersHandler) ListUsers(c *gin.Context) {
	users, err := h.Repository.GetUsers()
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"users": users})
}

func (h *UsersHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		api.Fail(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		api.Fail(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		api.Error(c, err)
		return
	}

	userID, err := h.Repository.PersistUser(req, passwordHash)
	if err != nil {
		api.Error(c, err)
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.Created(c, gin.H{"user": user})
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID == 0 {
		api.Fail(c, http.StatusBadRequest, "User id required")
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	changes := &models.UserChanges{
		Name:  req.Name,
		Email: req.Email,
	}

	if req.Role != nil {
		roleID, err := h.Repository.ResolveRole(*req.Role)
		if err != nil {
			api.Error(c, err)
			return
		}
		changes.RoleID = &roleID
	}

	if req.Department != nil {
		departmentID, err := h.Repository.ResolveDepartment(*req.Department)
		if err != nil {
			api.Error(c, err)
			return
		}
		changes.DepartmentID = departmentID
	}

	if req.Status != nil {
		active := models.IsActiveStatus(*req.Status)
		changes.Active = &active
	}

	if !changes.HasChanges() {
		api.Fail(c, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.Repository.UpdateUser(userID, changes); err != nil {
		api.Error(c, err)
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"user": user})
}

package auth

import (
	"errors"
	"net/http"
	"strconv"

	"assetdesk/internal/users"
	"assetdesk/pkg/api"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/gin-gonic/gin"
)

const minPasswordLength = 8

type AuthHandler struct {
	Users  users.UserRepository
	Resets ResetRepository
}

func NewAuthHandler(userRepository users.UserRepository, resetRepository ResetRepository) *AuthHandler {
	return &AuthHandler{Users: userRepository, Resets: resetRepository}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *AuthHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/auth/login", h.Login)
	router.POST("/auth/register", h.Register)
	router.POST("/auth/forgot", h.RequestPasswordReset)
}

// RegisterRoutes mounts the admin-only password reset endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("", security.Authorize(roles.Admin))
	admin.GET("/auth/forgot", h.ListPasswordResets)
	admin.PATCH("/auth/forgot/:id", h.ResolvePasswordReset)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Email == "" || payload.Password == "" {
		api.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.Users.FindByEmail(payload.Email)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			api.Error(c, custom_error.ErrInvalidCredentials)
			return
		}
		api.Error(c, err)
		return
	}

	if !security.VerifyPassword(user.PasswordHash, payload.Password) {
		api.Error(c, custom_error.ErrInvalidCredentials)
		return
	}

	if !user.Active {
		api.Error(c, custom_error.ErrAccountDisabled)
		return
	}

	token, err := security.GenerateJWT(security.Claims{
		UserID:     user.ID,
		Role:       roles.Role(user.Role),
		Email:      user.Email,
		Department: departmentOf(user.Department),
		Name:       user.Name,
	})
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, gin.H{"user": user, "token": token})
}

// Register is intentionally not available; accounts are provisioned by
// administrators.
func (h *AuthHandler) Register(c *gin.Context) {
	api.Fail(c, http.StatusNotImplemented, "Registration is disabled. Contact an administrator.")
}

// RequestPasswordReset files a reset request for the account behind the
// given email. Admin accounts cannot use self-service reset.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Email == "" {
		api.Fail(c, http.StatusBadRequest, "Email required")
		return
	}

	user, err := h.Users.FindByEmail(payload.Email)
	if err != nil {
		api.Error(c, err)
		return
	}

	role := roles.Normalize(user.Role)
	if role != roles.Clerk && role != roles.DepartmentHead {
		api.Fail(c, http.StatusForbidden, "Only clerks and department heads can request a password reset")
		return
	}

	if err := h.Resets.CreateReset(user.ID, user.Email, role.String()); err != nil {
		api.Error(c, err)
		return
	}

	api.Message(c, "Password reset request submitted")
}

func (h *AuthHandler) ListPasswordResets(c *gin.Context) {
	resets, err := h.Resets.GetPendingResets()
	if err != nil {
		api.Error(c, err)
		return
	}

	api.OK(c, resets)
}

func (h *AuthHandler) ResolvePasswordReset(c *gin.Context) {
	resetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid reset request ID")
		return
	}

	var payload struct {
		Password string `json:"password"`
	}
	if err = c.ShouldBindJSON(&payload); err != nil || len(payload.Password) < minPasswordLength {
		api.Fail(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	reset, err := h.Resets.GetReset(resetID)
	if err != nil {
		api.Error(c, err)
		return
	}

	if reset.Status != "PENDING" {
		api.Fail(c, http.StatusBadRequest, "Already processed")
		return
	}

	passwordHash, err := security.HashPassword(payload.Password)
	if err != nil {
		api.Error(c, err)
		return
	}

	if err = h.Resets.ResolveReset(resetID, reset.UserID, passwordHash); err != nil {
		api.Error(c, err)
		return
	}

	api.Message(c, "Password reset completed")
}

func departmentOf(department *string) string {
	if department == nil {
		return ""
	}
	return *department
}

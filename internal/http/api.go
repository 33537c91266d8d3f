package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/marahateeq/user-api/internal/domain"
	"github.com/marahateeq/user-api/internal/repository"
	"github.com/marahateeq/user-api/internal/service"
)

const (
	serviceName    = "user-api"
	serviceVersion = "1.0.0"

	requestIDHeader = "X-Request-ID"
)

// Handler wires HTTP routes to the user service.
type Handler struct {
	users   service.UserService
	logger  *logrus.Logger
	origins []string
	devMode bool
}

func NewHandler(users service.UserService, logger *logrus.Logger, corsOrigins string, devMode bool) *Handler {
	var origins []string
	for _, o := range strings.Split(corsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return &Handler{
		users:   users,
		logger:  logger,
		origins: origins,
		devMode: devMode,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestIDMiddleware())
	router.Use(h.corsMiddleware())
	router.Use(h.recoveryMiddleware())

	router.GET("/health", h.health)
	router.GET("/users", h.listUsers)
	router.GET("/users/:id", h.getUser)
	router.POST("/users", h.createUser)
	router.PUT("/users/:id", h.updateUser)
	router.DELETE("/users/:id", h.deleteUser)

	router.NoRoute(h.endpointNotFound)
	router.NoMethod(h.endpointNotFound)
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

// UserResponse is the JSON shape of a single user.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "healthy",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.requestLogger(c).Errorf("list users: %v", err)
		h.fail(c, http.StatusInternalServerError, "Failed to fetch users", err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(resp),
		"users":   resp,
	})
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.fail(c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.requestLogger(c).Errorf("get user %d: %v", id, err)
		h.fail(c, http.StatusInternalServerError, "Failed to fetch user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userToResponse(*user),
	})
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Email == "" {
		h.fail(c, http.StatusBadRequest, "Username and email are required", nil)
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Username, req.Email, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRequiredFields):
			h.fail(c, http.StatusBadRequest, "Username and email are required", nil)
		case errors.Is(err, repository.ErrConflict):
			h.requestLogger(c).Warnf("duplicate user creation attempt: %s", req.Username)
			h.fail(c, http.StatusConflict, "Username or email already exists", nil)
		default:
			h.requestLogger(c).Errorf("create user: %v", err)
			h.fail(c, http.StatusInternalServerError, "Failed to create user", err)
		}
		return
	}

	h.requestLogger(c).Infof("created user: %s (ID: %d)", user.Username, user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"user_id": user.ID,
	})
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "No data provided", nil)
		return
	}

	update := service.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}
	if err := h.users.Update(c.Request.Context(), id, update); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate):
			h.fail(c, http.StatusBadRequest, "No data provided", nil)
		case errors.Is(err, repository.ErrNotFound):
			h.fail(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, repository.ErrConflict):
			h.fail(c, http.StatusConflict, "Username or email already exists", nil)
		default:
			h.requestLogger(c).Errorf("update user %d: %v", id, err)
			h.fail(c, http.StatusInternalServerError, "Failed to update user", err)
		}
		return
	}

	h.requestLogger(c).Infof("updated user ID: %d", id)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
	})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.fail(c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.requestLogger(c).Errorf("delete user %d: %v", id, err)
		h.fail(c, http.StatusInternalServerError, "Failed to delete user", err)
		return
	}

	h.requestLogger(c).Infof("deleted user ID: %d", id)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

func (h *Handler) endpointNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   "Endpoint not found",
	})
}

// userID parses the :id path segment. A non-numeric segment is treated the
// same as an unmatched route and answered with the fixed 404 envelope.
func (h *Handler) userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.endpointNotFound(c)
		return 0, false
	}
	return id, true
}

// fail writes a failure envelope. Internal error text reaches the client
// only in dev mode, and only for 500s.
func (h *Handler) fail(c *gin.Context, status int, message string, err error) {
	body := gin.H{
		"success": false,
		"error":   message,
	}
	if h.devMode && err != nil && status == http.StatusInternalServerError {
		body["detail"] = err.Error()
	}
	c.JSON(status, body)
}

func (h *Handler) requestLogger(c *gin.Context) *logrus.Entry {
	return h.logger.WithField("request_id", c.Writer.Header().Get(requestIDHeader))
}

func (h *Handler) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := h.allowedOrigin(c.GetHeader("Origin")); origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			if origin != "*" {
				c.Writer.Header().Set("Vary", "Origin")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) allowedOrigin(requestOrigin string) string {
	for _, o := range h.origins {
		if o == "*" {
			return "*"
		}
		if o == requestOrigin {
			return requestOrigin
		}
	}
	return ""
}

// recoveryMiddleware turns an escaped panic into the fixed 500 envelope; the
// underlying failure is logged server-side only.
func (h *Handler) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.requestLogger(c).Errorf("internal server error: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
	})
}

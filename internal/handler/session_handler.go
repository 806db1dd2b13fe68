package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/identity"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/store"
)

type SessionHandler struct {
	store     *store.Store
	jwtSecret string
	logger    *zap.Logger
}

func NewSessionHandler(st *store.Store, jwtSecret string, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{store: st, jwtSecret: jwtSecret, logger: logger}
}

// SignIn verifies the bearer token and switches the store to that user,
// which opens the remote mirror subscription.
func (h *SessionHandler) SignIn(c *gin.Context) {
	tokenStr := identity.ExtractToken(c.Request)
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
		return
	}

	userID, err := identity.ParseToken(tokenStr, h.jwtSecret)
	if err != nil {
		h.logger.Warn("SignIn: token rejected", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	h.store.SetUserID(userID)
	h.logger.Info("User signed in", zap.String("user_id", userID))
	c.JSON(http.StatusOK, gin.H{"userId": userID})
}

// SignOut clears the user id; the store tears down its subscription.
func (h *SessionHandler) SignOut(c *gin.Context) {
	prev := h.store.UserID()
	h.store.SetUserID("")
	if prev != "" {
		h.logger.Info("User signed out", zap.String("user_id", prev))
	}
	c.Status(http.StatusNoContent)
}

// CategoryHandler covers the mutable tag set.
type CategoryHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewCategoryHandler(st *store.Store, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{store: st, logger: logger}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.store.Categories()})
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) AddCategory(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	h.store.AddCategory(req.Name)
	c.JSON(http.StatusCreated, gin.H{"categories": h.store.Categories()})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	h.store.DeleteCategory(c.Param("name"))
	c.JSON(http.StatusOK, gin.H{"categories": h.store.Categories()})
}

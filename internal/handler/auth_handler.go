package handler

import (
	"errors"
	"net/http"

	"collegedate/config"
	"collegedate/internal/auth"
	"collegedate/internal/domain"
	"collegedate/internal/models"
	"collegedate/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	cfg         *config.Config
	profileRepo *repository.ProfileRepository
}

func NewAuthHandler(cfg *config.Config, profileRepo *repository.ProfileRepository) *AuthHandler {
	return &AuthHandler{cfg: cfg, profileRepo: profileRepo}
}

// Register provisions a profile and issues an access token. Quota-bound
// profiles start with the default free-swipe allowance; quota-exempt profiles
// never consume quota so they start at zero.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email      string `json:"email" binding:"required,email"`
		FullName   string `json:"full_name" binding:"required"`
		Gender     string `json:"gender" binding:"required,oneof=male female"`
		University string `json:"university"`
		Bio        string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.Profile{
		Email:      req.Email,
		FullName:   req.FullName,
		Gender:     req.Gender,
		Role:       domain.RoleUser,
		University: req.University,
		Bio:        req.Bio,
	}
	if p.QuotaBound() {
		p.FreeSwipeQuota = domain.FreeSwipeQuotaDefault
	}
	if err := h.profileRepo.Create(p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	token, err := auth.GenerateAccessToken(&h.cfg.JWT, p.ID, p.Email, p.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profile": p, "access_token": token})
}

// Token re-issues an access token for an existing profile. Credential
// verification lives with the identity provider in front of this service.
func (h *AuthHandler) Token(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.profileRepo.GetByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if p.IsBlocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "profile is blocked"})
		return
	}
	token, err := auth.GenerateAccessToken(&h.cfg.JWT, p.ID, p.Email, p.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

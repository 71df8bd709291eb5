package handler

import (
	"net/http"
	"strconv"

	"collegedate/internal/domain"
	"collegedate/internal/middleware"
	"collegedate/internal/repository"

	"github.com/gin-gonic/gin"
)

type DiscoveryHandler struct {
	profileRepo *repository.ProfileRepository
	swipeRepo   *repository.SwipeRepository
}

func NewDiscoveryHandler(profileRepo *repository.ProfileRepository, swipeRepo *repository.SwipeRepository) *DiscoveryHandler {
	return &DiscoveryHandler{profileRepo: profileRepo, swipeRepo: swipeRepo}
}

// Discover returns opposite-gender, unblocked profiles the viewer has not
// swiped on yet.
func (h *DiscoveryHandler) Discover(c *gin.Context) {
	userID := middleware.GetUserID(c)
	viewer, err := h.profileRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	targetGender := domain.GenderFemale
	if viewer.Gender == domain.GenderFemale {
		targetGender = domain.GenderMale
	}
	seen, err := h.swipeRepo.SwipedIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "discover failed"})
		return
	}
	profiles, err := h.profileRepo.ListDiscoverable(userID, targetGender, seen, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "discover failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

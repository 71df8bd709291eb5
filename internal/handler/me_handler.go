package handler

import (
	"net/http"
	"strconv"

	"collegedate/internal/middleware"
	"collegedate/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	profileRepo      *repository.ProfileRepository
	conversationRepo *repository.ConversationRepository
}

func NewMeHandler(profileRepo *repository.ProfileRepository, conversationRepo *repository.ConversationRepository) *MeHandler {
	return &MeHandler{profileRepo: profileRepo, conversationRepo: conversationRepo}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	p, err := h.profileRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListConversations returns the caller's conversations. Message content is
// written by the chat service; this core only owns creation and listing.
func (h *MeHandler) ListConversations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.conversationRepo.ListByParticipant(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": list})
}

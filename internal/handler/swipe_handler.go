package handler

import (
	"errors"
	"net/http"

	"collegedate/internal/middleware"
	"collegedate/internal/service"

	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	swipeSvc *service.SwipeService
}

func NewSwipeHandler(swipeSvc *service.SwipeService) *SwipeHandler {
	return &SwipeHandler{swipeSvc: swipeSvc}
}

// Create handles POST /swipes. A free swipe is recorded immediately; a
// quota-exhausted right-swipe answers 402 with a minted payment intent that
// the client takes to the provider's checkout.
func (h *SwipeHandler) Create(c *gin.Context) {
	swiperID := middleware.GetUserID(c)
	var req struct {
		SwipedID  uint   `json:"swiped_id" binding:"required"`
		Direction string `json:"direction" binding:"required,oneof=left right"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.swipeSvc.Swipe(c.Request.Context(), swiperID, req.SwipedID, req.Direction)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTargetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyLiked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSelfSwipe),
			errors.Is(err, service.ErrTargetBlocked),
			errors.Is(err, service.ErrSwiperBlocked),
			errors.Is(err, service.ErrInvalidDirection):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "swipe failed"})
		}
		return
	}
	if out.Decision == service.DecisionPaid {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"status":   "payment_required",
			"tx_ref":   out.IntentRef,
			"amount":   out.Amount,
			"currency": "NGN",
		})
		return
	}
	resp := gin.H{"status": "recorded", "swipe": out.Swipe}
	if out.Conversation != nil {
		resp["conversation_id"] = out.Conversation.ID
	}
	c.JSON(http.StatusCreated, resp)
}

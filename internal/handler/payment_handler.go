package handler

import (
	"errors"
	"net/http"

	"collegedate/internal/service"
	"collegedate/pkg/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentSvc *service.PaymentService
}

func NewPaymentHandler(paymentSvc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Verify handles POST /payments/verify — the client-initiated confirmation
// channel. The declared amount is never trusted; confirmation re-verifies
// with the provider. Racing with the webhook for the same reference is fine:
// whichever channel loses gets ALREADY_PROCESSED and still reports success.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req struct {
		TransactionRef string `json:"transaction_ref" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "transaction_ref required"})
		return
	}
	out, err := h.paymentSvc.Confirm(c.Request.Context(), req.TransactionRef, "", 0)
	if err != nil {
		if out != nil && out.Result == service.ConfirmRejected {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": rejectionMessage(err)})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "payment verification unavailable, retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"transaction_id":    out.TransactionID,
		"already_processed": out.Result == service.ConfirmAlreadyProcessed,
	})
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidReference):
		return "invalid transaction reference"
	case errors.Is(err, service.ErrAmountBelowPrice):
		return "confirmed amount below swipe price"
	case errors.Is(err, service.ErrChargeNotSuccessful), errors.Is(err, payment.ErrVerificationFailed):
		return "payment verification failed"
	default:
		return "payment rejected"
	}
}

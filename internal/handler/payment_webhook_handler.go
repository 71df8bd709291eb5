package handler

import (
	"crypto/hmac"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"collegedate/config"
	"collegedate/internal/domain"
	"collegedate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FlutterwaveEvent is the provider's webhook payload for charge events.
type FlutterwaveEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID     int64   `json:"id"`
		TxRef  string  `json:"tx_ref"`
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
	} `json:"data"`
}

type PaymentWebhookHandler struct {
	paymentSvc *service.PaymentService
	cfg        *config.Config
	log        *logrus.Logger
}

func NewPaymentWebhookHandler(paymentSvc *service.PaymentService, cfg *config.Config, log *logrus.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{paymentSvc: paymentSvc, cfg: cfg, log: log}
}

// Handle processes the provider webhook — the asynchronous confirmation
// channel. Business-logic outcomes (rejected, already processed) are
// acknowledged with 200 so the provider does not redeliver forever; only
// auth/transport failures and transient errors answer non-2xx. Redelivery
// after a transient failure is safe because confirmation is idempotent.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return
	}
	if h.cfg.Flutterwave.WebhookHash != "" {
		sig := c.GetHeader("verif-hash")
		if !hmac.Equal([]byte(sig), []byte(h.cfg.Flutterwave.WebhookHash)) {
			h.log.WithField("ip", c.ClientIP()).Warn("webhook signature mismatch")
			c.JSON(http.StatusUnauthorized, gin.H{"status": "unauthorized"})
			return
		}
	}
	var payload FlutterwaveEvent
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error"})
		return
	}
	if payload.Event != "charge.completed" || payload.Data.Status != "successful" {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}
	txRef := payload.Data.TxRef
	if !strings.HasPrefix(txRef, domain.IntentPrefix+"_") || len(strings.Split(txRef, "_")) < 4 {
		h.log.WithField("tx_ref", txRef).Debug("webhook ignoring non-swipe reference")
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}
	chargeID := ""
	if payload.Data.ID != 0 {
		chargeID = strconv.FormatInt(payload.Data.ID, 10)
	}
	out, err := h.paymentSvc.Confirm(c.Request.Context(), txRef, chargeID, int64(payload.Data.Amount))
	if err != nil {
		if out != nil && out.Result == service.ConfirmRejected {
			h.log.WithError(err).WithField("tx_ref", txRef).Warn("webhook charge rejected")
			c.JSON(http.StatusOK, gin.H{"status": "success"})
			return
		}
		h.log.WithError(err).WithField("tx_ref", txRef).Error("webhook confirm failed, provider will redeliver")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	h.log.WithFields(logrus.Fields{"tx_ref": txRef, "result": out.Result}).Info("webhook processed")
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

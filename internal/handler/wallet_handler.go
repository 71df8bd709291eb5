package handler

import (
	"net/http"
	"strconv"

	"collegedate/internal/middleware"
	"collegedate/internal/repository"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletRepo      *repository.WalletRepository
	transactionRepo *repository.TransactionRepository
	profileRepo     *repository.ProfileRepository
}

func NewWalletHandler(
	walletRepo *repository.WalletRepository,
	transactionRepo *repository.TransactionRepository,
	profileRepo *repository.ProfileRepository,
) *WalletHandler {
	return &WalletHandler{walletRepo: walletRepo, transactionRepo: transactionRepo, profileRepo: profileRepo}
}

// GetBalance returns the caller's wallet. Wallets exist for quota-exempt
// profiles only; quota-bound callers have no earnings side.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	profile, err := h.profileRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if profile.QuotaBound() {
		c.JSON(http.StatusForbidden, gin.H{"error": "wallets are for recipients only"})
		return
	}
	w, err := h.walletRepo.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "wallet error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":         w.Balance,
		"total_earned":    w.TotalEarned,
		"total_withdrawn": w.TotalWithdrawn,
	})
}

// GetTransactions lists payments received by the caller, newest first.
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.transactionRepo.ListByRecipient(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": list})
}

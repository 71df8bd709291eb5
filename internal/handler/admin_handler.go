package handler

import (
	"errors"
	"net/http"
	"strconv"

	"collegedate/internal/repository"
	"collegedate/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the operator surface: withdrawal settlement,
// transaction review and profile blocking.
type AdminHandler struct {
	withdrawalSvc   *service.WithdrawalService
	withdrawalRepo  *repository.WithdrawalRepository
	transactionRepo *repository.TransactionRepository
	profileRepo     *repository.ProfileRepository
}

func NewAdminHandler(
	withdrawalSvc *service.WithdrawalService,
	withdrawalRepo *repository.WithdrawalRepository,
	transactionRepo *repository.TransactionRepository,
	profileRepo *repository.ProfileRepository,
) *AdminHandler {
	return &AdminHandler{
		withdrawalSvc:   withdrawalSvc,
		withdrawalRepo:  withdrawalRepo,
		transactionRepo: transactionRepo,
		profileRepo:     profileRepo,
	}
}

func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	status := c.DefaultQuery("status", "pending")
	list, err := h.withdrawalRepo.ListByStatus(status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": list})
}

func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	w, err := h.withdrawalSvc.Approve(c.Request.Context(), uint(id))
	if err != nil {
		h.renderWithdrawalError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	w, err := h.withdrawalSvc.Reject(c.Request.Context(), uint(id))
	if err != nil {
		h.renderWithdrawalError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *AdminHandler) ProcessWithdrawal(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	w, err := h.withdrawalSvc.Process(c.Request.Context(), uint(id))
	if err != nil {
		h.renderWithdrawalError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *AdminHandler) renderWithdrawalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWithdrawalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance at approval time"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "withdrawal update failed"})
	}
}

func (h *AdminHandler) ListTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.transactionRepo.ListRecent(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": list})
}

// BlockProfile toggles is_blocked; blocked profiles disappear from discovery
// and cannot be swiped on.
func (h *AdminHandler) BlockProfile(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req struct {
		IsBlocked *bool `json:"is_blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.profileRepo.SetBlocked(uint(id), *req.IsBlocked); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_blocked": *req.IsBlocked})
}

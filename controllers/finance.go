package controllers

import (
	"errors"
	"net/http"
	"snapagenda-backend/config"
	"snapagenda-backend/models"
	"snapagenda-backend/services"
	"snapagenda-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentInput struct {
	AmountPaid float64 `json:"amountPaid" binding:"required"`
}

type ExpenseInput struct {
	Description string    `json:"description" binding:"required"`
	Amount      float64   `json:"amount" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Category    string    `json:"category"`
	Status      string    `json:"status" binding:"omitempty,oneof=pending paid"`
}

func transactionFilter(c *gin.Context) (services.TransactionFilter, bool) {
	filter := services.TransactionFilter{
		Period: services.Period(c.DefaultQuery("period", "all")),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if pro := c.Query("professional"); pro != "" && pro != "all" {
		proUUID, err := uuid.Parse(pro)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
			return filter, false
		}
		filter.ProfessionalID = &proUUID
	}
	return filter, true
}

func loadTransactions(userUUID uuid.UUID) ([]models.FinancialTransaction, error) {
	var txs []models.FinancialTransaction
	err := config.DB.Preload("Appointment").Preload("Appointment.Professional").
		Where("user_id = ?", userUUID).
		Order("date DESC").
		Find(&txs).Error
	return txs, err
}

// GetTransactions lists ledger records matching the query filters
func GetTransactions(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	filter, ok := transactionFilter(c)
	if !ok {
		return
	}

	txs, err := loadTransactions(userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	filtered := services.FilterTransactions(txs, filter, time.Now())
	if filtered == nil {
		filtered = []models.FinancialTransaction{}
	}

	c.JSON(http.StatusOK, filtered)
}

// GetLedgerSummary returns the derived statistics for the current filters
func GetLedgerSummary(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	filter, ok := transactionFilter(c)
	if !ok {
		return
	}

	txs, err := loadTransactions(userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	c.JSON(http.StatusOK, services.Summarize(txs, filter, time.Now()))
}

// RecordPayment settles a pending transaction, splitting off a fiado
// remainder when the paid amount is below the original
func RecordPayment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	txUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ledgerSvc.RecordPayment(userUUID, txUUID, input.AmountPaid)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrAmountExceedsOriginal),
			errors.Is(err, services.ErrNotPending):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// RevertPayment puts a paid transaction back to pending, folding a
// fiado remainder back in when one exists
func RevertPayment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	txUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	entry, err := ledgerSvc.RevertPayment(userUUID, txUUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotPaid):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to revert payment")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// CreateExpense inserts a standalone expense record
func CreateExpense(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ledgerSvc.CreateExpense(userUUID, services.ExpenseInput{
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Category:    input.Category,
		Status:      input.Status,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateExpense edits a standalone expense record
func UpdateExpense(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	txUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	var input ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ledgerSvc.UpdateExpense(userUUID, txUUID, services.ExpenseInput{
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Category:    input.Category,
		Status:      input.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// MarkExpensePaid flips a pending expense to paid
func MarkExpensePaid(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	txUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	if err := ledgerSvc.MarkExpensePaid(userUUID, txUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense marked as paid"})
}

// DeleteTransaction hard deletes a ledger record
func DeleteTransaction(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	txUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	if err := ledgerSvc.DeleteTransaction(userUUID, txUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete transaction")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// POST /api/expenses
func (s *server) createExpense(c *gin.Context) {
	var expense Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense.ID = uuid.NewString()
	expense.UserID = c.GetString(userIDKey)
	expense.CreatedAt = time.Now().UTC()
	if expense.Date == "" {
		expense.Date = expense.CreatedAt.Format("2006-01-02")
	}

	if err := s.store.CreateExpense(c.Request.Context(), &expense); err != nil {
		s.log.Error("add expense", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add expense"})
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GET /api/expenses/plan/:planId
func (s *server) listExpenses(c *gin.Context) {
	expenses, err := s.store.ListExpenses(c.Request.Context(), c.GetString(userIDKey), c.Param("planId"))
	if err != nil {
		s.log.Error("list expenses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GET /api/expenses/plan/:planId/summary
func (s *server) expenseSummary(c *gin.Context) {
	expenses, err := s.store.ListExpenses(c.Request.Context(), c.GetString(userIDKey), c.Param("planId"))
	if err != nil {
		s.log.Error("expense summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expense summary"})
		return
	}

	c.JSON(http.StatusOK, summarize(expenses))
}

// PUT /api/expenses/:id
func (s *server) updateExpense(c *gin.Context) {
	var update expenseUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if update.Category != nil && !expenseCategories[*update.Category] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	if update.Amount != nil && *update.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
		return
	}

	set := update.fields()
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	expense, err := s.store.UpdateExpense(c.Request.Context(), c.GetString(userIDKey), c.Param("id"), set)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		s.log.Error("update expense", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DELETE /api/expenses/:id
func (s *server) deleteExpense(c *gin.Context) {
	err := s.store.DeleteExpense(c.Request.Context(), c.GetString(userIDKey), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		s.log.Error("delete expense", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

package main

import (
	"net/http"
	"time"

	"personalfinance/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Expense tracker handler functions

// resolveTracker finds the tracker addressed by the :expenseId path segment:
// a UUID, or a numeric 1-based list position for the legacy surface.
func resolveTracker(acct *ledger.Account, ref string) (*ledger.ExpenseTracker, error) {
	if index, ok := parseIndex(ref); ok {
		return acct.TrackerByIndex(index)
	}
	return acct.Tracker(ref)
}

// @Summary List expense trackers
// @Description Retrieve all expense trackers owned by the user
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {array} ledger.ExpenseTracker "List of expense trackers"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/expenses [get]
func listTrackers(c *gin.Context) {
	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, acct.ExpenseTrackers)
}

// @Summary Create expense tracker
// @Description Create a new expense tracker with the given allocation
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param tracker body TrackerRequest true "Tracker data"
// @Success 201 {object} map[string]interface{} "Expense added successfully"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/expenses [post]
func createTracker(c *gin.Context) {
	var req TrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if req.ModeOfPayment == "" {
		req.ModeOfPayment = "Cash"
	}
	if err := enumValidator.PaymentMode(req.ModeOfPayment); err != nil {
		respondStoreError(c, err)
		return
	}

	now := time.Now().UTC()
	tracker := ledger.ExpenseTracker{
		ID:              uuid.NewString(),
		Name:            req.Name,
		CurrentAmount:   req.CurrentAmount,
		UsedValue:       0,
		ExpiryOrRenewal: req.ExpiryOrRenewal,
		ModeOfPayment:   req.ModeOfPayment,
		Transactions:    []ledger.Transaction{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := store.AddTracker(c.Request.Context(), c.Param("username"), tracker); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Expense added successfully",
		"expenseTracker": tracker,
	})
}

// @Summary Get expense tracker
// @Description Retrieve a specific expense tracker by id or 1-based position
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param expenseId path string true "Tracker ID or position"
// @Success 200 {object} ledger.ExpenseTracker "Expense tracker"
// @Failure 400 {object} map[string]interface{} "Invalid position"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/expenses/{expenseId} [get]
func getTracker(c *gin.Context) {
	acct, ok := accountFromPath(c)
	if !ok {
		return
	}

	tracker, err := resolveTracker(acct, c.Param("expenseId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracker)
}

// @Summary Update expense tracker
// @Description Update a tracker's metadata or remaining allocation; omitted fields are left unchanged
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param expenseId path string true "Tracker ID or position"
// @Param tracker body TrackerUpdateRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Expense updated successfully"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/expenses/{expenseId} [put]
func updateTracker(c *gin.Context) {
	var req TrackerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	tracker, err := resolveTracker(acct, c.Param("expenseId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if req.ModeOfPayment != nil {
		if err := enumValidator.PaymentMode(*req.ModeOfPayment); err != nil {
			respondStoreError(c, err)
			return
		}
	}

	updated, err := store.UpdateTracker(c.Request.Context(), acct.Username, tracker.ID, ledger.TrackerUpdate{
		Name:            req.Name,
		CurrentAmount:   req.CurrentAmount,
		ExpiryOrRenewal: req.ExpiryOrRenewal,
		ModeOfPayment:   req.ModeOfPayment,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Expense updated successfully",
		"expense": updated,
	})
}

// @Summary Delete expense tracker
// @Description Delete a specific expense tracker
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param expenseId path string true "Tracker ID or position"
// @Success 200 {object} map[string]interface{} "Expense deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid position"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/expenses/{expenseId} [delete]
func deleteTracker(c *gin.Context) {
	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	tracker, err := resolveTracker(acct, c.Param("expenseId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := store.DeleteTracker(c.Request.Context(), acct.Username, tracker.ID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// @Summary Allocate funds to expense tracker
// @Description Move money from the account balance into a tracker. The balance drops by the amount and gains a negative ledger entry; the tracker's used value rises, its remaining allocation drops, and its ledger gains a matching positive entry. Both sides commit atomically or not at all.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param expenseId path string true "Tracker ID or position"
// @Param allocation body AllocationRequest true "Amount and description"
// @Success 200 {object} map[string]interface{} "Funds allocated successfully"
// @Failure 400 {object} map[string]interface{} "Allocation exceeded or insufficient balance"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 409 {object} map[string]interface{} "Concurrent update detected"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/expenses/{expenseId}/allocate [post]
func allocateToTracker(c *gin.Context) {
	var req AllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	tracker, err := resolveTracker(acct, c.Param("expenseId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	updated, err := store.Allocate(c.Request.Context(), acct.Username, tracker.ID, req.Amount, req.Description)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	updatedTracker, err := updated.Tracker(tracker.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Funds allocated successfully",
		"currentBalance": updated.CurrentBalance,
		"expenseTracker": updatedTracker,
	})
}

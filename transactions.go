package main

import (
	"net/http"

	"personalfinance/ledger"

	"github.com/gin-gonic/gin"
)

// Account ledger handler functions

// resolveTransaction finds the ledger entry addressed by the :ref path
// segment: a UUID, or a numeric 1-based list position for the legacy surface.
func resolveTransaction(acct *ledger.Account, ref string) (*ledger.Transaction, error) {
	if index, ok := parseIndex(ref); ok {
		return acct.TransactionByIndex(index)
	}
	return acct.Transaction(ref)
}

// @Summary List transactions
// @Description Retrieve the account's ledger entries in insertion order
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {array} ledger.Transaction "List of transactions"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/transactions [get]
func listTransactions(c *gin.Context) {
	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, acct.Transactions)
}

// @Summary Add transaction
// @Description Append a ledger entry to the account. The balance moves by exactly the signed amount in the same commit.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param transaction body TransactionRequest true "Description and signed amount"
// @Success 201 {object} map[string]interface{} "Transaction added successfully"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/transactions [post]
func createTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	tx := ledger.NewTransaction(req.Description, req.Amount)
	updated, err := store.AppendTransaction(c.Request.Context(), c.Param("username"), tx)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Transaction added successfully",
		"transaction":    tx,
		"currentBalance": updated.CurrentBalance,
	})
}

// @Summary Get transaction
// @Description Retrieve a specific ledger entry by id or 1-based position
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param ref path string true "Transaction ID or position"
// @Success 200 {object} ledger.Transaction "Transaction"
// @Failure 400 {object} map[string]interface{} "Invalid position"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/transactions/{ref} [get]
func getTransaction(c *gin.Context) {
	acct, ok := accountFromPath(c)
	if !ok {
		return
	}

	tx, err := resolveTransaction(acct, c.Param("ref"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// @Summary Update transaction
// @Description Rewrite a ledger entry's description or amount. The balance is adjusted by the amount delta so it keeps matching the ledger sum; the entry's date is preserved.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param ref path string true "Transaction ID or position"
// @Param transaction body TransactionUpdateRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Transaction updated successfully"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 409 {object} map[string]interface{} "Concurrent update detected"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/transactions/{ref} [put]
func updateTransaction(c *gin.Context) {
	var req TransactionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	tx, err := resolveTransaction(acct, c.Param("ref"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	description := tx.Description
	amount := tx.Amount
	if req.Description != nil {
		description = *req.Description
	}
	if req.Amount != nil {
		amount = *req.Amount
	}

	updated, err := store.UpdateTransaction(c.Request.Context(), acct.Username, tx.ID, description, amount)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction updated successfully",
		"transaction": updated,
	})
}

// @Summary Delete transaction
// @Description Delete a ledger entry and reverse its amount from the balance
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param ref path string true "Transaction ID or position"
// @Success 200 {object} map[string]interface{} "Transaction deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid position"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 409 {object} map[string]interface{} "Concurrent update detected"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/transactions/{ref} [delete]
func deleteTransaction(c *gin.Context) {
	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	tx, err := resolveTransaction(acct, c.Param("ref"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := store.DeleteTransaction(c.Request.Context(), acct.Username, tx.ID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

package main

import (
	"net/http"
	"time"

	"personalfinance/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Investment handler functions

// resolveInvestment finds the investment addressed by the :investmentId path
// segment: a UUID, or the sequential numeric investmentId for the legacy
// surface.
func resolveInvestment(acct *ledger.Account, ref string) (*ledger.Investment, error) {
	if seq, ok := parseIndex(ref); ok {
		return acct.InvestmentBySequence(seq)
	}
	return acct.Investment(ref)
}

// @Summary List investments
// @Description Retrieve all investments owned by the user
// @Tags investments
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {array} ledger.Investment "List of investments"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/investments [get]
func listInvestments(c *gin.Context) {
	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, acct.Investments)
}

// @Summary Create investment
// @Description Create a new investment position. currentValue defaults to baseValue when omitted.
// @Tags investments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param investment body InvestmentRequest true "Investment data"
// @Success 201 {object} map[string]interface{} "Investment added successfully"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/investments [post]
func createInvestment(c *gin.Context) {
	var req InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := enumValidator.InvestmentType(req.Type); err != nil {
		respondStoreError(c, err)
		return
	}
	if req.CurrentValue == 0 {
		req.CurrentValue = req.BaseValue
	}

	now := time.Now().UTC()
	investment := ledger.Investment{
		ID:             uuid.NewString(),
		Type:           req.Type,
		RateOfInterest: req.RateOfInterest,
		BaseValue:      req.BaseValue,
		CurrentValue:   req.CurrentValue,
		Transactions:   []ledger.Transaction{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	added, err := store.AddInvestment(c.Request.Context(), c.Param("username"), investment)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Investment added successfully",
		"investment": added,
	})
}

// @Summary Get investment
// @Description Retrieve a specific investment by id or sequential investmentId
// @Tags investments
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param investmentId path string true "Investment ID"
// @Success 200 {object} ledger.Investment "Investment"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/investments/{investmentId} [get]
func getInvestment(c *gin.Context) {
	acct, ok := accountFromPath(c)
	if !ok {
		return
	}

	investment, err := resolveInvestment(acct, c.Param("investmentId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, investment)
}

// @Summary Update investment
// @Description Update an investment's type or rate of interest; omitted fields are left unchanged
// @Tags investments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param investmentId path string true "Investment ID"
// @Param investment body InvestmentUpdateRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Investment updated successfully"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/investments/{investmentId} [put]
func updateInvestment(c *gin.Context) {
	var req InvestmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	investment, err := resolveInvestment(acct, c.Param("investmentId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if req.Type != nil {
		if err := enumValidator.InvestmentType(*req.Type); err != nil {
			respondStoreError(c, err)
			return
		}
	}

	updated, err := store.UpdateInvestment(c.Request.Context(), acct.Username, investment.ID, ledger.InvestmentUpdate{
		Type:           req.Type,
		RateOfInterest: req.RateOfInterest,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Investment updated successfully",
		"investment": updated,
	})
}

// @Summary Delete investment
// @Description Delete a specific investment
// @Tags investments
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param investmentId path string true "Investment ID"
// @Success 200 {object} map[string]interface{} "Investment deleted successfully"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/investments/{investmentId} [delete]
func deleteInvestment(c *gin.Context) {
	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	investment, err := resolveInvestment(acct, c.Param("investmentId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := store.DeleteInvestment(c.Request.Context(), acct.Username, investment.ID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}

// @Summary Fund investment
// @Description Add money to an investment's current value and record a ledger entry on the position. With fromBalance the amount is drawn from the account balance in the same atomic commit; otherwise the funding is external and the balance is untouched.
// @Tags investments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param investmentId path string true "Investment ID"
// @Param funding body FundingRequest true "Amount, description and funding source"
// @Success 200 {object} map[string]interface{} "Investment funded successfully"
// @Failure 400 {object} map[string]interface{} "Validation failed or insufficient balance"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 409 {object} map[string]interface{} "Concurrent update detected"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /{username}/investments/{investmentId}/fund [post]
func fundInvestment(c *gin.Context) {
	var req FundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	acct, ok := accountFromPath(c)
	if !ok {
		return
	}
	investment, err := resolveInvestment(acct, c.Param("investmentId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	updated, err := store.FundInvestment(c.Request.Context(), acct.Username, investment.ID, req.Amount, req.Description, req.FromBalance)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	updatedInvestment, err := updated.Investment(investment.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Investment funded successfully",
		"currentBalance": updated.CurrentBalance,
		"investment":     updatedInvestment,
	})
}

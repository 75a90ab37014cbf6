package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Get current user profile
// @Description Retrieve the authenticated user's account summary
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse "Account summary"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /users [get]
func getProfile(c *gin.Context) {
	acct, err := store.Account(c.Request.Context(), c.GetString("username"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Username:       acct.Username,
		Name:           acct.Name,
		Email:          acct.Email,
		MonthlyIncome:  acct.MonthlyIncome,
		CurrentBalance: acct.CurrentBalance,
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"personalfinance/ledger"

	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"
)

// Default enum values, overridable through configuration at startup.
var (
	DefaultInvestmentTypes = []string{"RD", "FD", "MF", "Gold", "Real Estate"}
	DefaultPaymentModes    = []string{"Cash", "Credit Card", "Debit Card", "Net Banking", "UPI", "Others"}
)

// Validator checks domain values against an injected set of allowed enum
// values.
type Validator struct {
	investmentTypes []string
	paymentModes    []string
}

// NewValidator builds a validator from the allowed value sets.
func NewValidator(investmentTypes, paymentModes []string) *Validator {
	return &Validator{investmentTypes: investmentTypes, paymentModes: paymentModes}
}

// InvestmentType validates an investment type value.
func (v *Validator) InvestmentType(value string) error {
	if contains(v.investmentTypes, value) {
		return nil
	}
	return fmt.Errorf("%w: invalid investment option %q", ledger.ErrValidation, value)
}

// PaymentMode validates a mode-of-payment value.
func (v *Validator) PaymentMode(value string) error {
	if contains(v.paymentModes, value) {
		return nil
	}
	return fmt.Errorf("%w: invalid payment method %q", ledger.ErrValidation, value)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// handleStoreError converts ledger and persistence errors to appropriate HTTP
// responses
func handleStoreError(err error) (statusCode int, message string) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, ledger.ErrDuplicate):
		return http.StatusConflict, "Resource already exists"
	case errors.Is(err, ledger.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ledger.ErrAllocationExceeded):
		return http.StatusBadRequest, "Amount exceeds the tracker's remaining allocation"
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return http.StatusBadRequest, "Insufficient account balance"
	case errors.Is(err, ledger.ErrIndexOutOfRange):
		return http.StatusBadRequest, "Invalid index count"
	case errors.Is(err, ledger.ErrConflict):
		return http.StatusConflict, "Concurrent update detected, please retry"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// respondStoreError logs the error and writes the mapped status and message.
func respondStoreError(c *gin.Context, err error) {
	log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	statusCode, message := handleStoreError(err)
	c.JSON(statusCode, gin.H{"message": message})
}

// respondValidationError writes a 400 with one message per failed field.
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  bindingErrors(err),
	})
}

// bindingErrors flattens binding failures into client-facing messages.
func bindingErrors(err error) []string {
	var fieldErrors govalidator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{"Invalid request body"}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			messages = append(messages, "Invalid email address")
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return messages
}

// accountFromPath loads the account addressed by the :username path segment,
// writing the error response itself when the lookup fails.
func accountFromPath(c *gin.Context) (*ledger.Account, bool) {
	acct, err := store.Account(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondStoreError(c, err)
		return nil, false
	}
	return acct, true
}

// parseIndex interprets a path segment as a legacy 1-based position. Non
// numeric segments are UUIDs and handled by the caller.
func parseIndex(ref string) (int, bool) {
	index, err := strconv.Atoi(ref)
	if err != nil {
		return 0, false
	}
	return index, true
}

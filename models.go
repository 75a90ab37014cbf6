package main

import (
	"time"

	"personalfinance/ledger"
)

// Request and response shapes for the HTTP surface. Domain types live in the
// ledger package.

// RegisterRequest is the payload for creating a new user account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for obtaining an access token
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileResponse is the authenticated user's account summary
type ProfileResponse struct {
	Username       string                 `json:"username"`
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	MonthlyIncome  []ledger.MonthlyIncome `json:"monthlyIncome"`
	CurrentBalance float64                `json:"currentBalance"`
}

// TrackerRequest is the payload for creating an expense tracker
type TrackerRequest struct {
	Name            string     `json:"name" binding:"required"`
	CurrentAmount   float64    `json:"currentAmount" binding:"required,gt=0"`
	ExpiryOrRenewal *time.Time `json:"expiryOrRenewal"`
	ModeOfPayment   string     `json:"modeOfPayment"`
}

// TrackerUpdateRequest carries the updatable tracker fields; nil fields are
// left unchanged
type TrackerUpdateRequest struct {
	Name            *string    `json:"name"`
	CurrentAmount   *float64   `json:"currentAmount"`
	ExpiryOrRenewal *time.Time `json:"expiryOrRenewal"`
	ModeOfPayment   *string    `json:"modeOfPayment"`
}

// AllocationRequest is the payload for moving money from the account balance
// into an expense tracker
type AllocationRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
}

// InvestmentRequest is the payload for creating an investment position
type InvestmentRequest struct {
	Type           string  `json:"type" binding:"required"`
	RateOfInterest float64 `json:"rateOfInterest"`
	BaseValue      float64 `json:"baseValue" binding:"required,gt=0"`
	CurrentValue   float64 `json:"currentValue" binding:"omitempty,gt=0"`
}

// InvestmentUpdateRequest carries the updatable investment fields
type InvestmentUpdateRequest struct {
	Type           *string  `json:"type"`
	RateOfInterest *float64 `json:"rateOfInterest"`
}

// FundingRequest is the payload for adding money to an investment.
// FromBalance selects whether the amount is drawn from the account balance or
// funded externally.
type FundingRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
	FromBalance bool    `json:"fromBalance"`
}

// TransactionRequest is the payload for appending a ledger entry
type TransactionRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
}

// TransactionUpdateRequest carries the updatable ledger entry fields
type TransactionUpdateRequest struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
}

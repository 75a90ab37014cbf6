package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Error kinds reported by ledger operations. Storage backends and HTTP
// handlers translate these into their own error surfaces.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrAllocationExceeded  = errors.New("allocation exceeded")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrConflict            = errors.New("concurrent update conflict")
	ErrDuplicate           = errors.New("already exists")
)

// Transaction is an immutable ledger entry owned by exactly one parent list.
type Transaction struct {
	ID          string    `json:"id" bson:"id"`
	Description string    `json:"description" bson:"description"`
	Amount      float64   `json:"amount" bson:"amount"`
	Date        time.Time `json:"date" bson:"date"`
}

// MonthlyIncome is a recurring income source declared on an account.
type MonthlyIncome struct {
	Amount float64 `json:"amount" bson:"amount"`
	Source string  `json:"source,omitempty" bson:"source,omitempty"`
}

// ExpenseTracker is a sub-budget owned by one account. CurrentAmount is the
// remaining allocation and UsedValue the cumulative spend; every allocation
// moves the same amount between the two.
type ExpenseTracker struct {
	ID              string        `json:"id" bson:"id"`
	Name            string        `json:"name" bson:"name"`
	CurrentAmount   float64       `json:"currentAmount" bson:"currentAmount"`
	UsedValue       float64       `json:"usedValue" bson:"usedValue"`
	ExpiryOrRenewal *time.Time    `json:"expiryOrRenewal,omitempty" bson:"expiryOrRenewal,omitempty"`
	ModeOfPayment   string        `json:"modeOfPayment" bson:"modeOfPayment"`
	Transactions    []Transaction `json:"transactions" bson:"transactions"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// Investment is a position owned by one account. CurrentValue is BaseValue
// plus the sum of the position's transaction amounts.
type Investment struct {
	ID             string        `json:"id" bson:"id"`
	InvestmentID   int           `json:"investmentId" bson:"investmentId"`
	Type           string        `json:"type" bson:"type"`
	RateOfInterest float64       `json:"rateOfInterest" bson:"rateOfInterest"`
	BaseValue      float64       `json:"baseValue" bson:"baseValue"`
	CurrentValue   float64       `json:"currentValue" bson:"currentValue"`
	Transactions   []Transaction `json:"transactions" bson:"transactions"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// Account is a user's ledger: a running balance, its own transaction list and
// the owned sub-entities. CurrentBalance always equals the sum of the
// account's own transaction amounts.
type Account struct {
	ID              string           `json:"id" bson:"_id"`
	Name            string           `json:"name" bson:"name"`
	Username        string           `json:"username" bson:"username"`
	Email           string           `json:"email" bson:"email"`
	Password        string           `json:"-" bson:"password"`
	MonthlyIncome   []MonthlyIncome  `json:"monthlyIncome" bson:"monthlyIncome"`
	CurrentBalance  float64          `json:"currentBalance" bson:"currentBalance"`
	RateOfInterest  float64          `json:"rateOfInterest" bson:"rateOfInterest"`
	Transactions    []Transaction    `json:"transactions" bson:"transactions"`
	ExpenseTrackers []ExpenseTracker `json:"expenseTrackers" bson:"expenseTrackers"`
	Investments     []Investment     `json:"investments" bson:"investments"`
	InvestmentSeq   int              `json:"-" bson:"investmentSeq"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// NewTransaction creates an immutable ledger entry stamped with the current
// time. Positive amounts are inflows, negative amounts outflows.
func NewTransaction(description string, amount float64) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
		Date:        time.Now().UTC(),
	}
}

// NewAccount creates an account with a zero balance and empty sub-entity
// lists. Password must already be hashed by the caller.
func NewAccount(name, username, email, hashedPassword string) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:              uuid.NewString(),
		Name:            name,
		Username:        username,
		Email:           email,
		Password:        hashedPassword,
		MonthlyIncome:   []MonthlyIncome{},
		Transactions:    []Transaction{},
		ExpenseTrackers: []ExpenseTracker{},
		Investments:     []Investment{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AppendTransaction appends a ledger entry to the account and moves the
// balance by exactly the entry's amount.
func (a *Account) AppendTransaction(tx Transaction) error {
	if tx.Amount == 0 {
		return fmt.Errorf("%w: amount must be non-zero", ErrValidation)
	}
	a.Transactions = append(a.Transactions, tx)
	a.CurrentBalance += tx.Amount
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Transaction returns the account ledger entry with the given id.
func (a *Account) Transaction(id string) (*Transaction, error) {
	for i := range a.Transactions {
		if a.Transactions[i].ID == id {
			return &a.Transactions[i], nil
		}
	}
	return nil, ErrNotFound
}

// TransactionByIndex returns the ledger entry at the given 1-based position.
func (a *Account) TransactionByIndex(index int) (*Transaction, error) {
	if index < 1 || index > len(a.Transactions) {
		return nil, ErrIndexOutOfRange
	}
	return &a.Transactions[index-1], nil
}

// UpdateTransaction rewrites a ledger entry's description and amount. The
// balance is adjusted by the amount delta so the sum invariant holds. The
// entry's date is preserved.
func (a *Account) UpdateTransaction(id, description string, amount float64) (*Transaction, error) {
	if amount == 0 {
		return nil, fmt.Errorf("%w: amount must be non-zero", ErrValidation)
	}
	tx, err := a.Transaction(id)
	if err != nil {
		return nil, err
	}
	a.CurrentBalance += amount - tx.Amount
	tx.Description = description
	tx.Amount = amount
	a.UpdatedAt = time.Now().UTC()
	return tx, nil
}

// RemoveTransaction deletes a ledger entry and reverses its amount from the
// balance.
func (a *Account) RemoveTransaction(id string) error {
	for i := range a.Transactions {
		if a.Transactions[i].ID == id {
			a.CurrentBalance -= a.Transactions[i].Amount
			a.Transactions = append(a.Transactions[:i], a.Transactions[i+1:]...)
			a.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

// Tracker returns the expense tracker with the given id.
func (a *Account) Tracker(id string) (*ExpenseTracker, error) {
	for i := range a.ExpenseTrackers {
		if a.ExpenseTrackers[i].ID == id {
			return &a.ExpenseTrackers[i], nil
		}
	}
	return nil, ErrNotFound
}

// TrackerByIndex returns the expense tracker at the given 1-based position.
func (a *Account) TrackerByIndex(index int) (*ExpenseTracker, error) {
	if index < 1 || index > len(a.ExpenseTrackers) {
		return nil, ErrIndexOutOfRange
	}
	return &a.ExpenseTrackers[index-1], nil
}

// AddTracker attaches a new expense tracker to the account.
func (a *Account) AddTracker(t ExpenseTracker) {
	a.ExpenseTrackers = append(a.ExpenseTrackers, t)
	a.UpdatedAt = time.Now().UTC()
}

// TrackerUpdate carries the editable tracker fields; nil fields are left
// unchanged. Aggregates and the ledger are never part of an update, so a
// metadata edit cannot clobber a concurrent allocation.
type TrackerUpdate struct {
	Name            *string
	CurrentAmount   *float64
	ExpiryOrRenewal *time.Time
	ModeOfPayment   *string
}

// PatchTracker applies the non-nil fields of the update to the tracker with
// the given id.
func (a *Account) PatchTracker(id string, u TrackerUpdate) (*ExpenseTracker, error) {
	t, err := a.Tracker(id)
	if err != nil {
		return nil, err
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.CurrentAmount != nil {
		t.CurrentAmount = *u.CurrentAmount
	}
	if u.ExpiryOrRenewal != nil {
		t.ExpiryOrRenewal = u.ExpiryOrRenewal
	}
	if u.ModeOfPayment != nil {
		t.ModeOfPayment = *u.ModeOfPayment
	}
	now := time.Now().UTC()
	t.UpdatedAt = now
	a.UpdatedAt = now
	return t, nil
}

// RemoveTracker deletes the expense tracker with the given id.
func (a *Account) RemoveTracker(id string) error {
	for i := range a.ExpenseTrackers {
		if a.ExpenseTrackers[i].ID == id {
			a.ExpenseTrackers = append(a.ExpenseTrackers[:i], a.ExpenseTrackers[i+1:]...)
			a.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

// CheckAllocation validates the preconditions of moving amount from the
// account to the tracker without mutating anything. It reports the first
// violated rule so callers can surface a precise error before committing.
func (a *Account) CheckAllocation(t *ExpenseTracker, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if amount > t.CurrentAmount {
		return ErrAllocationExceeded
	}
	if amount > a.CurrentBalance {
		return ErrInsufficientBalance
	}
	return nil
}

// Allocate moves amount from the account balance into the tracker as one
// unit: the balance drops by amount and gains a negative ledger entry, the
// tracker's used value rises and its remaining allocation drops by the same
// amount, and the tracker ledger gains a positive entry with the caller's
// description. No state changes when a precondition fails.
func (a *Account) Allocate(trackerID string, amount float64, description string) (*ExpenseTracker, error) {
	t, err := a.Tracker(trackerID)
	if err != nil {
		return nil, err
	}
	if err := a.CheckAllocation(t, amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a.CurrentBalance -= amount
	a.Transactions = append(a.Transactions, NewTransaction("Move money to expense: "+t.Name, -amount))
	t.CurrentAmount -= amount
	t.UsedValue += amount
	t.Transactions = append(t.Transactions, NewTransaction(description, amount))
	t.UpdatedAt = now
	a.UpdatedAt = now
	return t, nil
}

// Investment returns the investment with the given id.
func (a *Account) Investment(id string) (*Investment, error) {
	for i := range a.Investments {
		if a.Investments[i].ID == id {
			return &a.Investments[i], nil
		}
	}
	return nil, ErrNotFound
}

// InvestmentBySequence returns the investment with the given sequential
// investmentId.
func (a *Account) InvestmentBySequence(seq int) (*Investment, error) {
	for i := range a.Investments {
		if a.Investments[i].InvestmentID == seq {
			return &a.Investments[i], nil
		}
	}
	return nil, ErrNotFound
}

// AddInvestment attaches a new investment, assigning it the next sequential
// investmentId on this account.
func (a *Account) AddInvestment(inv Investment) Investment {
	a.InvestmentSeq++
	inv.InvestmentID = a.InvestmentSeq
	a.Investments = append(a.Investments, inv)
	a.UpdatedAt = time.Now().UTC()
	return inv
}

// InvestmentUpdate carries the editable investment fields; nil fields are
// left unchanged. Values and the position's ledger are never part of an
// update, so a metadata edit cannot clobber a concurrent funding.
type InvestmentUpdate struct {
	Type           *string
	RateOfInterest *float64
}

// PatchInvestment applies the non-nil fields of the update to the investment
// with the given id.
func (a *Account) PatchInvestment(id string, u InvestmentUpdate) (*Investment, error) {
	inv, err := a.Investment(id)
	if err != nil {
		return nil, err
	}
	if u.Type != nil {
		inv.Type = *u.Type
	}
	if u.RateOfInterest != nil {
		inv.RateOfInterest = *u.RateOfInterest
	}
	now := time.Now().UTC()
	inv.UpdatedAt = now
	a.UpdatedAt = now
	return inv, nil
}

// RemoveInvestment deletes the investment with the given id.
func (a *Account) RemoveInvestment(id string) error {
	for i := range a.Investments {
		if a.Investments[i].ID == id {
			a.Investments = append(a.Investments[:i], a.Investments[i+1:]...)
			a.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

// FundInvestment adds amount to an investment's current value and records a
// ledger entry on the position. With fromBalance the money is drawn from the
// account in the same unit: the balance check applies and the account ledger
// gains a matching negative entry. Without it the funding is external and the
// account balance is untouched.
func (a *Account) FundInvestment(id string, amount float64, description string, fromBalance bool) (*Investment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	inv, err := a.Investment(id)
	if err != nil {
		return nil, err
	}
	if fromBalance && amount > a.CurrentBalance {
		return nil, ErrInsufficientBalance
	}

	now := time.Now().UTC()
	if fromBalance {
		a.CurrentBalance -= amount
		a.Transactions = append(a.Transactions, NewTransaction(fmt.Sprintf("Fund investment #%d", inv.InvestmentID), -amount))
	}
	inv.CurrentValue += amount
	inv.Transactions = append(inv.Transactions, NewTransaction(description, amount))
	inv.UpdatedAt = now
	a.UpdatedAt = now
	return inv, nil
}

// Clone returns a deep copy of the account, so storage backends can hand out
// snapshots without sharing mutable slices.
func (a *Account) Clone() *Account {
	cp := *a
	cp.MonthlyIncome = append([]MonthlyIncome(nil), a.MonthlyIncome...)
	cp.Transactions = append([]Transaction(nil), a.Transactions...)
	cp.ExpenseTrackers = make([]ExpenseTracker, len(a.ExpenseTrackers))
	for i, t := range a.ExpenseTrackers {
		t.Transactions = append([]Transaction(nil), t.Transactions...)
		cp.ExpenseTrackers[i] = t
	}
	cp.Investments = make([]Investment, len(a.Investments))
	for i, inv := range a.Investments {
		inv.Transactions = append([]Transaction(nil), inv.Transactions...)
		cp.Investments[i] = inv
	}
	return &cp
}

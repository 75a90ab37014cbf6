package db

import (
	"context"

	"personalfinance/ledger"
)

// Store is the persistence contract consumed by the HTTP handlers. Every
// mutation of an account's aggregates must be committed atomically per
// account: either through a conditional single-document write (Mongo) or a
// serialized critical section (Memory). Business-rule violations are reported
// with the ledger error kinds and leave no partial state behind.
type Store interface {
	// CreateAccount persists a new account. ledger.ErrDuplicate when the
	// username or email is already taken.
	CreateAccount(ctx context.Context, acct *ledger.Account) error

	// Account returns the account with the given username, or
	// ledger.ErrNotFound.
	Account(ctx context.Context, username string) (*ledger.Account, error)

	// AppendTransaction appends a ledger entry and moves the balance by its
	// amount in one commit. Returns the updated account.
	AppendTransaction(ctx context.Context, username string, tx ledger.Transaction) (*ledger.Account, error)

	// UpdateTransaction rewrites an entry's description and amount, adjusting
	// the balance by the delta in the same commit.
	UpdateTransaction(ctx context.Context, username, txID, description string, amount float64) (*ledger.Transaction, error)

	// DeleteTransaction removes an entry and reverses its amount from the
	// balance in the same commit.
	DeleteTransaction(ctx context.Context, username, txID string) error

	// AddTracker attaches a new expense tracker to the account.
	AddTracker(ctx context.Context, username string, t ledger.ExpenseTracker) error

	// UpdateTracker applies the non-nil fields of the update to the stored
	// tracker. Aggregates and the ledger are untouched, so a metadata edit
	// never races a concurrent allocation. Returns the updated tracker.
	UpdateTracker(ctx context.Context, username, trackerID string, u ledger.TrackerUpdate) (*ledger.ExpenseTracker, error)

	// DeleteTracker removes the tracker with the given id.
	DeleteTracker(ctx context.Context, username, trackerID string) error

	// Allocate moves amount from the account balance into the tracker as one
	// atomic commit (see ledger.Account.Allocate for the rules). Returns the
	// updated account. ledger.ErrConflict when a concurrent mutation
	// invalidated the preconditions between check and commit.
	Allocate(ctx context.Context, username, trackerID string, amount float64, description string) (*ledger.Account, error)

	// AddInvestment attaches a new investment, assigning its sequential
	// investmentId, and returns it.
	AddInvestment(ctx context.Context, username string, inv ledger.Investment) (*ledger.Investment, error)

	// UpdateInvestment applies the non-nil fields of the update to the stored
	// investment. Values and the position's ledger are untouched, so a
	// metadata edit never races a concurrent funding. Returns the updated
	// investment.
	UpdateInvestment(ctx context.Context, username, investmentID string, u ledger.InvestmentUpdate) (*ledger.Investment, error)

	// DeleteInvestment removes the investment with the given id.
	DeleteInvestment(ctx context.Context, username, investmentID string) error

	// FundInvestment adds amount to the investment's current value, optionally
	// drawing it from the account balance in the same commit. Returns the
	// updated account.
	FundInvestment(ctx context.Context, username, investmentID string, amount float64, description string, fromBalance bool) (*ledger.Account, error)

	// Close releases the backend's resources.
	Close(ctx context.Context) error
}

package db

import (
	"context"
	"sync"

	"personalfinance/ledger"
)

// Memory is an in-process Store keyed by username. A single mutex serializes
// every mutation, which is the per-account single-writer answer to the
// lost-update race. It backs the handler tests and is selectable with
// DATA_BACKEND=memory.
type Memory struct {
	mu       sync.Mutex
	accounts map[string]*ledger.Account
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]*ledger.Account)}
}

func (m *Memory) CreateAccount(ctx context.Context, acct *ledger.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[acct.Username]; ok {
		return ledger.ErrDuplicate
	}
	for _, existing := range m.accounts {
		if existing.Email == acct.Email {
			return ledger.ErrDuplicate
		}
	}
	m.accounts[acct.Username] = acct.Clone()
	return nil
}

func (m *Memory) Account(ctx context.Context, username string) (*ledger.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return acct.Clone(), nil
}

func (m *Memory) AppendTransaction(ctx context.Context, username string, tx ledger.Transaction) (*ledger.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	if err := acct.AppendTransaction(tx); err != nil {
		return nil, err
	}
	return acct.Clone(), nil
}

func (m *Memory) UpdateTransaction(ctx context.Context, username, txID, description string, amount float64) (*ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	tx, err := acct.UpdateTransaction(txID, description, amount)
	if err != nil {
		return nil, err
	}
	cp := *tx
	return &cp, nil
}

func (m *Memory) DeleteTransaction(ctx context.Context, username, txID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return ledger.ErrNotFound
	}
	return acct.RemoveTransaction(txID)
}

func (m *Memory) AddTracker(ctx context.Context, username string, t ledger.ExpenseTracker) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return ledger.ErrNotFound
	}
	acct.AddTracker(t)
	return nil
}

func (m *Memory) UpdateTracker(ctx context.Context, username, trackerID string, u ledger.TrackerUpdate) (*ledger.ExpenseTracker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	t, err := acct.PatchTracker(trackerID, u)
	if err != nil {
		return nil, err
	}
	cp := *t
	cp.Transactions = append([]ledger.Transaction(nil), t.Transactions...)
	return &cp, nil
}

func (m *Memory) DeleteTracker(ctx context.Context, username, trackerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return ledger.ErrNotFound
	}
	return acct.RemoveTracker(trackerID)
}

func (m *Memory) Allocate(ctx context.Context, username, trackerID string, amount float64, description string) (*ledger.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	if _, err := acct.Allocate(trackerID, amount, description); err != nil {
		return nil, err
	}
	return acct.Clone(), nil
}

func (m *Memory) AddInvestment(ctx context.Context, username string, inv ledger.Investment) (*ledger.Investment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	added := acct.AddInvestment(inv)
	return &added, nil
}

func (m *Memory) UpdateInvestment(ctx context.Context, username, investmentID string, u ledger.InvestmentUpdate) (*ledger.Investment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	inv, err := acct.PatchInvestment(investmentID, u)
	if err != nil {
		return nil, err
	}
	cp := *inv
	cp.Transactions = append([]ledger.Transaction(nil), inv.Transactions...)
	return &cp, nil
}

func (m *Memory) DeleteInvestment(ctx context.Context, username, investmentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return ledger.ErrNotFound
	}
	return acct.RemoveInvestment(investmentID)
}

func (m *Memory) FundInvestment(ctx context.Context, username, investmentID string, amount float64, description string, fromBalance bool) (*ledger.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	if _, err := acct.FundInvestment(investmentID, amount, description, fromBalance); err != nil {
		return nil, err
	}
	return acct.Clone(), nil
}

func (m *Memory) Close(context.Context) error {
	return nil
}

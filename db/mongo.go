package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"personalfinance/ledger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo persists accounts as single documents with embedded sub-entities, so
// every paired balance mutation is one conditional document update that the
// server applies atomically. Preconditions are re-checked in the update
// filter; a write that matches nothing after the checks passed means a
// concurrent mutation won the race.
type Mongo struct {
	client   *mongo.Client
	accounts *mongo.Collection
}

// ConnectMongo connects to the given MongoDB and prepares the accounts
// collection with unique indexes on username and email.
func ConnectMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	accounts := client.Database(database).Collection("accounts")
	_, err = accounts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return nil, fmt.Errorf("creating indexes: %w", err)
	}

	return &Mongo{client: client, accounts: accounts}, nil
}

func (m *Mongo) CreateAccount(ctx context.Context, acct *ledger.Account) error {
	_, err := m.accounts.InsertOne(ctx, acct)
	if mongo.IsDuplicateKeyError(err) {
		return ledger.ErrDuplicate
	}
	return err
}

func (m *Mongo) Account(ctx context.Context, username string) (*ledger.Account, error) {
	var acct ledger.Account
	err := m.accounts.FindOne(ctx, bson.M{"username": username}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (m *Mongo) AppendTransaction(ctx context.Context, username string, tx ledger.Transaction) (*ledger.Account, error) {
	if tx.Amount == 0 {
		return nil, fmt.Errorf("%w: amount must be non-zero", ledger.ErrValidation)
	}
	update := bson.M{
		"$push": bson.M{"transactions": tx},
		"$inc":  bson.M{"currentBalance": tx.Amount},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return m.findOneAndUpdate(ctx, bson.M{"username": username}, update, ledger.ErrNotFound)
}

func (m *Mongo) UpdateTransaction(ctx context.Context, username, txID, description string, amount float64) (*ledger.Transaction, error) {
	if amount == 0 {
		return nil, fmt.Errorf("%w: amount must be non-zero", ledger.ErrValidation)
	}
	acct, err := m.Account(ctx, username)
	if err != nil {
		return nil, err
	}
	old, err := acct.Transaction(txID)
	if err != nil {
		return nil, err
	}

	// The filter pins the old amount so the balance delta stays correct if a
	// concurrent update slipped in between the read and this write.
	filter := bson.M{
		"username":     username,
		"transactions": bson.M{"$elemMatch": bson.M{"id": txID, "amount": old.Amount}},
	}
	update := bson.M{
		"$set": bson.M{
			"transactions.$.description": description,
			"transactions.$.amount":      amount,
			"updatedAt":                  time.Now().UTC(),
		},
		"$inc": bson.M{"currentBalance": amount - old.Amount},
	}
	updated, err := m.findOneAndUpdate(ctx, filter, update, ledger.ErrConflict)
	if err != nil {
		return nil, err
	}
	return updated.Transaction(txID)
}

func (m *Mongo) DeleteTransaction(ctx context.Context, username, txID string) error {
	acct, err := m.Account(ctx, username)
	if err != nil {
		return err
	}
	old, err := acct.Transaction(txID)
	if err != nil {
		return err
	}

	filter := bson.M{
		"username":     username,
		"transactions": bson.M{"$elemMatch": bson.M{"id": txID, "amount": old.Amount}},
	}
	update := bson.M{
		"$pull": bson.M{"transactions": bson.M{"id": txID}},
		"$inc":  bson.M{"currentBalance": -old.Amount},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := m.accounts.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ledger.ErrConflict
	}
	return nil
}

func (m *Mongo) AddTracker(ctx context.Context, username string, t ledger.ExpenseTracker) error {
	update := bson.M{
		"$push": bson.M{"expenseTrackers": t},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := m.accounts.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (m *Mongo) UpdateTracker(ctx context.Context, username, trackerID string, u ledger.TrackerUpdate) (*ledger.ExpenseTracker, error) {
	now := time.Now().UTC()
	// Only the edited fields are written. The tracker's aggregates and ledger
	// never appear in the $set, so a concurrent allocation cannot be erased.
	set := bson.M{"expenseTrackers.$.updatedAt": now, "updatedAt": now}
	if u.Name != nil {
		set["expenseTrackers.$.name"] = *u.Name
	}
	if u.CurrentAmount != nil {
		set["expenseTrackers.$.currentAmount"] = *u.CurrentAmount
	}
	if u.ExpiryOrRenewal != nil {
		set["expenseTrackers.$.expiryOrRenewal"] = *u.ExpiryOrRenewal
	}
	if u.ModeOfPayment != nil {
		set["expenseTrackers.$.modeOfPayment"] = *u.ModeOfPayment
	}

	filter := bson.M{"username": username, "expenseTrackers.id": trackerID}
	acct, err := m.findOneAndUpdate(ctx, filter, bson.M{"$set": set}, ledger.ErrNotFound)
	if err != nil {
		return nil, err
	}
	return acct.Tracker(trackerID)
}

func (m *Mongo) DeleteTracker(ctx context.Context, username, trackerID string) error {
	update := bson.M{
		"$pull": bson.M{"expenseTrackers": bson.M{"id": trackerID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := m.accounts.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (m *Mongo) Allocate(ctx context.Context, username, trackerID string, amount float64, description string) (*ledger.Account, error) {
	// Read first so business-rule violations get a precise error kind before
	// anything is committed.
	acct, err := m.Account(ctx, username)
	if err != nil {
		return nil, err
	}
	tracker, err := acct.Tracker(trackerID)
	if err != nil {
		return nil, err
	}
	if err := acct.CheckAllocation(tracker, amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	accountTx := ledger.NewTransaction("Move money to expense: "+tracker.Name, -amount)
	trackerTx := ledger.NewTransaction(description, amount)

	// Both preconditions live in the filter, so the dual mutation commits only
	// against a state that still satisfies them.
	filter := bson.M{
		"username":       username,
		"currentBalance": bson.M{"$gte": amount},
		"expenseTrackers": bson.M{"$elemMatch": bson.M{
			"id":            trackerID,
			"currentAmount": bson.M{"$gte": amount},
		}},
	}
	update := bson.M{
		"$inc": bson.M{
			"currentBalance":                  -amount,
			"expenseTrackers.$.currentAmount": -amount,
			"expenseTrackers.$.usedValue":     amount,
		},
		"$push": bson.M{
			"transactions":                   accountTx,
			"expenseTrackers.$.transactions": trackerTx,
		},
		"$set": bson.M{"updatedAt": now, "expenseTrackers.$.updatedAt": now},
	}
	return m.findOneAndUpdate(ctx, filter, update, ledger.ErrConflict)
}

func (m *Mongo) AddInvestment(ctx context.Context, username string, inv ledger.Investment) (*ledger.Investment, error) {
	// Reserve the next sequential investmentId atomically, then attach.
	seqUpdate := bson.M{"$inc": bson.M{"investmentSeq": 1}}
	acct, err := m.findOneAndUpdate(ctx, bson.M{"username": username}, seqUpdate, ledger.ErrNotFound)
	if err != nil {
		return nil, err
	}
	inv.InvestmentID = acct.InvestmentSeq

	update := bson.M{
		"$push": bson.M{"investments": inv},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := m.accounts.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ledger.ErrNotFound
	}
	return &inv, nil
}

func (m *Mongo) UpdateInvestment(ctx context.Context, username, investmentID string, u ledger.InvestmentUpdate) (*ledger.Investment, error) {
	now := time.Now().UTC()
	// Field-level writes for the same reason as UpdateTracker: the position's
	// value and ledger stay out of reach of a metadata edit.
	set := bson.M{"investments.$.updatedAt": now, "updatedAt": now}
	if u.Type != nil {
		set["investments.$.type"] = *u.Type
	}
	if u.RateOfInterest != nil {
		set["investments.$.rateOfInterest"] = *u.RateOfInterest
	}

	filter := bson.M{"username": username, "investments.id": investmentID}
	acct, err := m.findOneAndUpdate(ctx, filter, bson.M{"$set": set}, ledger.ErrNotFound)
	if err != nil {
		return nil, err
	}
	return acct.Investment(investmentID)
}

func (m *Mongo) DeleteInvestment(ctx context.Context, username, investmentID string) error {
	update := bson.M{
		"$pull": bson.M{"investments": bson.M{"id": investmentID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := m.accounts.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (m *Mongo) FundInvestment(ctx context.Context, username, investmentID string, amount float64, description string, fromBalance bool) (*ledger.Account, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ledger.ErrValidation)
	}
	acct, err := m.Account(ctx, username)
	if err != nil {
		return nil, err
	}
	inv, err := acct.Investment(investmentID)
	if err != nil {
		return nil, err
	}
	if fromBalance && amount > acct.CurrentBalance {
		return nil, ledger.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	filter := bson.M{
		"username":    username,
		"investments": bson.M{"$elemMatch": bson.M{"id": investmentID}},
	}
	inc := bson.M{"investments.$.currentValue": amount}
	push := bson.M{"investments.$.transactions": ledger.NewTransaction(description, amount)}
	if fromBalance {
		filter["currentBalance"] = bson.M{"$gte": amount}
		inc["currentBalance"] = -amount
		push["transactions"] = ledger.NewTransaction(fmt.Sprintf("Fund investment #%d", inv.InvestmentID), -amount)
	}
	update := bson.M{
		"$inc":  inc,
		"$push": push,
		"$set":  bson.M{"updatedAt": now, "investments.$.updatedAt": now},
	}
	return m.findOneAndUpdate(ctx, filter, update, ledger.ErrConflict)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// findOneAndUpdate runs a conditional update returning the post-image,
// translating the no-match case into the given error kind.
func (m *Mongo) findOneAndUpdate(ctx context.Context, filter, update bson.M, noMatch error) (*ledger.Account, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var acct ledger.Account
	err := m.accounts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, noMatch
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

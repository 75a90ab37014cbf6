package main

import (
	"net/http"
	"testing"

	"personalfinance/ledger"
)

// createTestTransaction appends a ledger entry through the API and returns it
// with the reported balance
func createTestTransaction(t *testing.T, username, token, description string, amount float64) (ledger.Transaction, float64) {
	t.Helper()

	resp := makeJSONRequest(t, "POST", "/api/"+username+"/transactions", map[string]interface{}{
		"description": description,
		"amount":      amount,
	}, token)
	assertStatusCode(t, http.StatusCreated, resp.Code)

	var body struct {
		Transaction    ledger.Transaction `json:"transaction"`
		CurrentBalance float64            `json:"currentBalance"`
	}
	assertNoError(t, parseJSONResponse(resp, &body))
	if body.Transaction.ID == "" {
		t.Fatal("Expected the created transaction to carry an id")
	}
	return body.Transaction, body.CurrentBalance
}

// TestCreateTransaction tests the POST /api/:username/transactions endpoint
func TestCreateTransaction(t *testing.T) {
	resetTestData()
	token := registerTestUser(t, "jane_doe")

	t.Run("should move the balance by the signed amount", func(t *testing.T) {
		_, balance := createTestTransaction(t, "jane_doe", token, "Salary", 2500)
		if balance != 2500 {
			t.Errorf("Expected balance 2500, got %v", balance)
		}

		_, balance = createTestTransaction(t, "jane_doe", token, "Rent", -800)
		if balance != 1700 {
			t.Errorf("Expected balance 1700, got %v", balance)
		}
	})

	t.Run("should reject a zero amount", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/jane_doe/transactions", map[string]interface{}{
			"description": "Nothing",
			"amount":      0,
		}, token)

		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("should reject a missing description", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/jane_doe/transactions", map[string]interface{}{
			"amount": 100,
		}, token)

		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})
}

// TestGetTransactions tests listing and addressing ledger entries
func TestGetTransactions(t *testing.T) {
	resetTestData()
	token := registerTestUser(t, "jane_doe")
	first, _ := createTestTransaction(t, "jane_doe", token, "Salary", 2500)
	createTestTransaction(t, "jane_doe", token, "Rent", -800)

	t.Run("should list entries in insertion order", func(t *testing.T) {
		resp := makeRequest("GET", "/api/jane_doe/transactions", nil, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var entries []ledger.Transaction
		assertNoError(t, parseJSONResponse(resp, &entries))
		if len(entries) != 2 {
			t.Fatalf("Expected 2 entries, got %d", len(entries))
		}
		if entries[0].Description != "Salary" || entries[1].Description != "Rent" {
			t.Errorf("Entries out of order: %v, %v", entries[0].Description, entries[1].Description)
		}
	})

	t.Run("should fetch an entry by id", func(t *testing.T) {
		resp := makeRequest("GET", "/api/jane_doe/transactions/"+first.ID, nil, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var tx ledger.Transaction
		assertNoError(t, parseJSONResponse(resp, &tx))
		if tx.Amount != 2500 {
			t.Errorf("Expected amount 2500, got %v", tx.Amount)
		}
	})

	t.Run("should fetch an entry by 1-based position", func(t *testing.T) {
		resp := makeRequest("GET", "/api/jane_doe/transactions/2", nil, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var tx ledger.Transaction
		assertNoError(t, parseJSONResponse(resp, &tx))
		if tx.Description != "Rent" {
			t.Errorf("Expected 'Rent', got '%s'", tx.Description)
		}
	})

	t.Run("should reject position zero and out-of-range positions", func(t *testing.T) {
		resp := makeRequest("GET", "/api/jane_doe/transactions/0", nil, token)
		assertStatusCode(t, http.StatusBadRequest, resp.Code)

		resp = makeRequest("GET", "/api/jane_doe/transactions/3", nil, token)
		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})
}

// TestUpdateTransaction tests the PUT /api/:username/transactions/:ref endpoint
func TestUpdateTransaction(t *testing.T) {
	resetTestData()
	token := registerTestUser(t, "jane_doe")
	tx, _ := createTestTransaction(t, "jane_doe", token, "Salary", 2000)

	t.Run("should adjust the balance by the amount delta", func(t *testing.T) {
		resp := makeJSONRequest(t, "PUT", "/api/jane_doe/transactions/"+tx.ID, map[string]interface{}{
			"amount": 2200,
		}, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var body struct {
			Transaction ledger.Transaction `json:"transaction"`
		}
		assertNoError(t, parseJSONResponse(resp, &body))

		if body.Transaction.Amount != 2200 {
			t.Errorf("Expected amount 2200, got %v", body.Transaction.Amount)
		}
		// Description untouched, original date preserved
		if body.Transaction.Description != "Salary" {
			t.Errorf("Expected description to be untouched, got '%s'", body.Transaction.Description)
		}
		if !body.Transaction.Date.Equal(tx.Date) {
			t.Errorf("Expected date %v to be preserved, got %v", tx.Date, body.Transaction.Date)
		}

		resp = makeRequest("GET", "/api/users", nil, token)
		var profile ProfileResponse
		assertNoError(t, parseJSONResponse(resp, &profile))
		if profile.CurrentBalance != 2200 {
			t.Errorf("Expected balance 2200, got %v", profile.CurrentBalance)
		}
	})

	t.Run("should return 404 for an unknown id", func(t *testing.T) {
		resp := makeJSONRequest(t, "PUT", "/api/jane_doe/transactions/no-such-id", map[string]interface{}{
			"amount": 100,
		}, token)

		assertStatusCode(t, http.StatusNotFound, resp.Code)
	})
}

// TestDeleteTransaction tests the DELETE /api/:username/transactions/:ref endpoint
func TestDeleteTransaction(t *testing.T) {
	resetTestData()
	token := registerTestUser(t, "jane_doe")
	tx, _ := createTestTransaction(t, "jane_doe", token, "Salary", 2000)
	createTestTransaction(t, "jane_doe", token, "Bonus", 500)

	t.Run("should reverse the amount from the balance", func(t *testing.T) {
		resp := makeRequest("DELETE", "/api/jane_doe/transactions/"+tx.ID, nil, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		resp = makeRequest("GET", "/api/users", nil, token)
		var profile ProfileResponse
		assertNoError(t, parseJSONResponse(resp, &profile))
		if profile.CurrentBalance != 500 {
			t.Errorf("Expected balance 500, got %v", profile.CurrentBalance)
		}

		resp = makeRequest("GET", "/api/jane_doe/transactions", nil, token)
		var entries []ledger.Transaction
		assertNoError(t, parseJSONResponse(resp, &entries))
		if len(entries) != 1 {
			t.Errorf("Expected 1 entry after deletion, got %d", len(entries))
		}
	})

	t.Run("should return 404 for an already deleted entry", func(t *testing.T) {
		resp := makeRequest("DELETE", "/api/jane_doe/transactions/"+tx.ID, nil, token)
		assertStatusCode(t, http.StatusNotFound, resp.Code)
	})
}

package main

import (
	"net/http"
	"testing"

	"personalfinance/ledger"
)

// createTestInvestment creates an investment through the API and returns it
func createTestInvestment(t *testing.T, username, token, invType string, baseValue float64) ledger.Investment {
	t.Helper()

	resp := makeJSONRequest(t, "POST", "/api/"+username+"/investments", map[string]interface{}{
		"type":      invType,
		"baseValue": baseValue,
	}, token)
	assertStatusCode(t, http.StatusCreated, resp.Code)

	var body struct {
		Investment ledger.Investment `json:"investment"`
	}
	assertNoError(t, parseJSONResponse(resp, &body))
	if body.Investment.ID == "" {
		t.Fatal("Expected the created investment to carry an id")
	}
	return body.Investment
}

// TestCreateInvestment tests the POST /api/:username/investments endpoint
func TestCreateInvestment(t *testing.T) {
	resetTestData()
	token := registerTestUser(t, "jane_doe")

	t.Run("should create investment with sequential ids", func(t *testing.T) {
		first := createTestInvestment(t, "jane_doe", token, "FD", 1000)
		second := createTestInvestment(t, "jane_doe", token, "Gold", 500)

		if first.InvestmentID != 1 {
			t.Errorf("Expected investmentId 1, got %d", first.InvestmentID)
		}
		if second.InvestmentID != 2 {
			t.Errorf("Expected investmentId 2, got %d", second.InvestmentID)
		}
	})

	t.Run("should default currentValue to baseValue", func(t *testing.T) {
		inv := createTestInvestment(t, "jane_doe", token, "RD", 750)

		if inv.CurrentValue != 750 {
			t.Errorf("Expected currentValue 750, got %v", inv.CurrentValue)
		}
	})

	t.Run("should reject an unknown investment type", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/jane_doe/investments", map[string]interface{}{
			"type":      "Crypto",
			"baseValue": 1000,
		}, token)

		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("should reject a non-positive base value", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/jane_doe/investments", map[string]interface{}{
			"type":      "FD",
			"baseValue": 0,
		}, token)

		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})
}

// TestGetInvestments tests listing and addressing investments
func TestGetInvestments(t *testing.T) {
	resetTestData()
	token := registerTestUser(t, "jane_doe")
	first := createTestInvestment(t, "jane_doe", token, "FD", 1000)
	createTestInvestment(t, "jane_doe", token, "Gold", 500)

	t.Run("should list all investments", func(t *testing.T) {
		resp := makeRequest("GET", "/api/jane_doe/investments", nil, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var investments []ledger.Investment
		assertNoError(t, parseJSONResponse(resp, &investments))
		if len(investments) != 2 {
			t.Errorf("Expected 2 investments, got %d", len(investments))
		}
	})

	t.Run("should fetch an investment by id", func(t *testing.T) {
		resp := makeRequest("GET", "/api/jane_doe/investments/"+first.ID, nil, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var inv ledger.Investment
		assertNoError(t, parseJSONResponse(resp, &inv))
		if inv.Type != "FD" {
			t.Errorf("Expected type 'FD', got '%s'", inv.Type)
		}
	})

	t.Run("should fetch an investment by its sequence number", func(t *testing.T) {
		resp := makeRequest("GET", "/api/jane_doe/investments/2", nil, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var inv ledger.Investment
		assertNoError(t, parseJSONResponse(resp, &inv))
		if inv.Type != "Gold" {
			t.Errorf("Expected type 'Gold', got '%s'", inv.Type)
		}
	})

	t.Run("should return 404 for an unused sequence number", func(t *testing.T) {
		resp := makeRequest("GET", "/api/jane_doe/investments/9", nil, token)
		assertStatusCode(t, http.StatusNotFound, resp.Code)
	})
}

// TestUpdateAndDeleteInvestment tests PUT and DELETE on investments
func TestUpdateAndDeleteInvestment(t *testing.T) {
	resetTestData()
	token := registerTestUser(t, "jane_doe")
	inv := createTestInvestment(t, "jane_doe", token, "FD", 1000)

	t.Run("should update only the supplied fields", func(t *testing.T) {
		resp := makeJSONRequest(t, "PUT", "/api/jane_doe/investments/"+inv.ID, map[string]interface{}{
			"rateOfInterest": 7.5,
		}, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		resp = makeRequest("GET", "/api/jane_doe/investments/"+inv.ID, nil, token)
		var got ledger.Investment
		assertNoError(t, parseJSONResponse(resp, &got))

		if got.RateOfInterest != 7.5 {
			t.Errorf("Expected rateOfInterest 7.5, got %v", got.RateOfInterest)
		}
		if got.Type != "FD" {
			t.Errorf("Expected type to be untouched, got '%s'", got.Type)
		}
	})

	t.Run("should reject an unknown type on update", func(t *testing.T) {
		resp := makeJSONRequest(t, "PUT", "/api/jane_doe/investments/"+inv.ID, map[string]interface{}{
			"type": "Crypto",
		}, token)

		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("should delete the investment", func(t *testing.T) {
		resp := makeRequest("DELETE", "/api/jane_doe/investments/"+inv.ID, nil, token)
		assertStatusCode(t, http.StatusOK, resp.Code)

		resp = makeRequest("GET", "/api/jane_doe/investments/"+inv.ID, nil, token)
		assertStatusCode(t, http.StatusNotFound, resp.Code)
	})
}

// TestFundInvestment tests the POST /api/:username/investments/:investmentId/fund endpoint
func TestFundInvestment(t *testing.T) {
	resetTestData()
	token := registerTestUser(t, "jane_doe")
	seedBalance(t, "jane_doe", token, 1000)
	inv := createTestInvestment(t, "jane_doe", token, "MF", 1000)

	t.Run("should grow the position on external funding", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/jane_doe/investments/"+inv.ID+"/fund", map[string]interface{}{
			"amount":      200,
			"description": "top-up",
		}, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var body struct {
			CurrentBalance float64           `json:"currentBalance"`
			Investment     ledger.Investment `json:"investment"`
		}
		assertNoError(t, parseJSONResponse(resp, &body))

		if body.Investment.CurrentValue != 1200 {
			t.Errorf("Expected currentValue 1200, got %v", body.Investment.CurrentValue)
		}
		if len(body.Investment.Transactions) != 1 {
			t.Fatalf("Expected 1 position ledger entry, got %d", len(body.Investment.Transactions))
		}
		// External funding leaves the account balance alone
		if body.CurrentBalance != 1000 {
			t.Errorf("Expected balance 1000, got %v", body.CurrentBalance)
		}
	})

	t.Run("should draw from the balance when requested", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/jane_doe/investments/"+inv.ID+"/fund", map[string]interface{}{
			"amount":      300,
			"description": "monthly deposit",
			"fromBalance": true,
		}, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var body struct {
			CurrentBalance float64           `json:"currentBalance"`
			Investment     ledger.Investment `json:"investment"`
		}
		assertNoError(t, parseJSONResponse(resp, &body))

		if body.CurrentBalance != 700 {
			t.Errorf("Expected balance 700, got %v", body.CurrentBalance)
		}
		if body.Investment.CurrentValue != 1500 {
			t.Errorf("Expected currentValue 1500, got %v", body.Investment.CurrentValue)
		}

		// The account ledger gained the matching negative entry
		resp = makeRequest("GET", "/api/jane_doe/transactions", nil, token)
		var entries []ledger.Transaction
		assertNoError(t, parseJSONResponse(resp, &entries))
		last := entries[len(entries)-1]
		if last.Amount != -300 {
			t.Errorf("Expected account entry amount -300, got %v", last.Amount)
		}
	})

	t.Run("should reject balance funding beyond the balance", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/jane_doe/investments/"+inv.ID+"/fund", map[string]interface{}{
			"amount":      5000,
			"description": "too much",
			"fromBalance": true,
		}, token)

		assertStatusCode(t, http.StatusBadRequest, resp.Code)

		// Nothing moved
		resp = makeRequest("GET", "/api/jane_doe/investments/"+inv.ID, nil, token)
		var got ledger.Investment
		assertNoError(t, parseJSONResponse(resp, &got))
		if got.CurrentValue != 1500 {
			t.Errorf("Position changed on a failed funding: %v", got.CurrentValue)
		}
	})
}

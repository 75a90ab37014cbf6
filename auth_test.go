package main

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"
)

// TestRegister tests the POST /api/register endpoint
func TestRegister(t *testing.T) {
	resetTestData()

	t.Run("should register user and return token", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/register", map[string]interface{}{
			"name":     "Jane Doe",
			"username": "jane_doe",
			"email":    "jane@example.com",
			"password": "password123",
		}, "")

		assertStatusCode(t, http.StatusCreated, resp.Code)

		var body map[string]interface{}
		assertNoError(t, parseJSONResponse(resp, &body))

		if body["message"] != "User registered successfully" {
			t.Errorf("Unexpected message: %v", body["message"])
		}
		if token, _ := body["token"].(string); token == "" {
			t.Error("Expected a token in the response")
		}

		// Refresh token arrives as an HTTP-only cookie
		cookies := resp.Result().Cookies()
		var found bool
		for _, cookie := range cookies {
			if cookie.Name == "refreshToken" && cookie.Value != "" && cookie.HttpOnly {
				found = true
			}
		}
		if !found {
			t.Error("Expected an HTTP-only refreshToken cookie")
		}
	})

	t.Run("should reject duplicate username", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/register", map[string]interface{}{
			"name":     "Other Jane",
			"username": "jane_doe",
			"email":    "other@example.com",
			"password": "password123",
		}, "")

		assertStatusCode(t, http.StatusConflict, resp.Code)
	})

	t.Run("should reject duplicate email", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/register", map[string]interface{}{
			"name":     "Other Jane",
			"username": "other_jane",
			"email":    "jane@example.com",
			"password": "password123",
		}, "")

		assertStatusCode(t, http.StatusConflict, resp.Code)
	})

	t.Run("should reject invalid email and short password", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/register", map[string]interface{}{
			"name":     "Bad Input",
			"username": "bad_input",
			"email":    "not-an-email",
			"password": "short",
		}, "")

		assertStatusCode(t, http.StatusBadRequest, resp.Code)

		var body map[string]interface{}
		assertNoError(t, parseJSONResponse(resp, &body))

		if body["message"] != "Validation failed" {
			t.Errorf("Unexpected message: %v", body["message"])
		}
		errs, _ := body["errors"].([]interface{})
		if len(errs) != 2 {
			t.Errorf("Expected 2 field errors, got %v", body["errors"])
		}
	})

	t.Run("should reject invalid JSON", func(t *testing.T) {
		resp := makeRequest("POST", "/api/register", bytes.NewBufferString("invalid json"), "")

		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})
}

// TestLogin tests the POST /api/login endpoint
func TestLogin(t *testing.T) {
	resetTestData()
	registerTestUser(t, "jane_doe")

	t.Run("should log in with valid credentials", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/login", map[string]interface{}{
			"username": "jane_doe",
			"password": "password123",
		}, "")

		assertStatusCode(t, http.StatusOK, resp.Code)

		var body map[string]interface{}
		assertNoError(t, parseJSONResponse(resp, &body))

		if token, _ := body["token"].(string); token == "" {
			t.Error("Expected a token in the response")
		}
	})

	t.Run("should reject unknown username", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/login", map[string]interface{}{
			"username": "nobody",
			"password": "password123",
		}, "")

		assertStatusCode(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("should reject wrong password", func(t *testing.T) {
		resp := makeJSONRequest(t, "POST", "/api/login", map[string]interface{}{
			"username": "jane_doe",
			"password": "wrongpassword",
		}, "")

		assertStatusCode(t, http.StatusUnauthorized, resp.Code)
	})
}

// TestAuthMiddleware tests token verification and ownership checks
func TestAuthMiddleware(t *testing.T) {
	resetTestData()
	token := registerTestUser(t, "jane_doe")
	registerTestUser(t, "john_doe")

	t.Run("should reject requests without a token", func(t *testing.T) {
		resp := makeRequest("GET", "/api/users", nil, "")

		assertStatusCode(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("should reject a malformed token", func(t *testing.T) {
		resp := makeRequest("GET", "/api/users", nil, "not.a.token")

		assertStatusCode(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		expired, err := signToken("jane_doe", -time.Minute)
		assertNoError(t, err)

		resp := makeRequest("GET", "/api/users", nil, expired)

		assertStatusCode(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("should reject access to another user's resources", func(t *testing.T) {
		resp := makeRequest("GET", "/api/john_doe/transactions", nil, token)

		assertStatusCode(t, http.StatusForbidden, resp.Code)

		var body map[string]interface{}
		assertNoError(t, parseJSONResponse(resp, &body))
		if body["message"] != "Not Authorized" {
			t.Errorf("Unexpected message: %v", body["message"])
		}
	})

	t.Run("should return the profile for a valid token", func(t *testing.T) {
		resp := makeRequest("GET", "/api/users", nil, token)

		assertStatusCode(t, http.StatusOK, resp.Code)

		var profile ProfileResponse
		assertNoError(t, parseJSONResponse(resp, &profile))

		if profile.Username != "jane_doe" {
			t.Errorf("Expected username 'jane_doe', got '%s'", profile.Username)
		}
		if profile.Email != "jane_doe@example.com" {
			t.Errorf("Expected email 'jane_doe@example.com', got '%s'", profile.Email)
		}
		if strings.Contains(resp.Body.String(), "password") {
			t.Error("Profile response must not expose the password hash")
		}
	})
}

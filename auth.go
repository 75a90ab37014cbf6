package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"personalfinance/ledger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Authentication: registration, login and the JWT middleware. The rest of the
// API only ever sees the verified username placed on the request context.

// @Summary Register a new user
// @Description Create a user account with a zero balance and return an access token. A refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{} "User registered successfully"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 409 {object} map[string]interface{} "Username or email already taken"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /register [post]
func register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	acct := ledger.NewAccount(req.Name, req.Username, req.Email, string(hashed))
	if err := store.CreateAccount(c.Request.Context(), acct); err != nil {
		if errors.Is(err, ledger.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "User with this username or email already exists"})
			return
		}
		respondStoreError(c, err)
		return
	}

	token, err := signToken(req.Username, tokenTTL)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	refresh, err := signToken(req.Username, refreshTTL)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("refreshToken", refresh, int(refreshTTL.Seconds()), "/", "", true, true)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
	})
}

// @Summary Log in
// @Description Verify credentials and return a JWT access token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} map[string]interface{} "Unknown username"
// @Failure 401 {object} map[string]interface{} "Wrong password"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /login [post]
func login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	acct, err := store.Account(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid username"})
			return
		}
		respondStoreError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	token, err := signToken(acct.Username, tokenTTL)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// signToken issues an HS256 JWT carrying the username.
func signToken(username string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// verifyToken authenticates the bearer token and stores the verified username
// on the request context.
func verifyToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
		return
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}
	username, _ := claims["username"].(string)
	if username == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	c.Set("username", username)
	c.Next()
}

// verifyAccountOwner ensures the authenticated user only touches their own
// resources.
func verifyAccountOwner(c *gin.Context) {
	if c.Param("username") != c.GetString("username") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not Authorized"})
		return
	}
	c.Next()
}

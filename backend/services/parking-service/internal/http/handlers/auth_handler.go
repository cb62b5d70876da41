package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"parkhub/backend/services/parking-service/internal/auth"
)

// Operator is a configured operator account.
type Operator struct {
	Username     string
	PasswordHash string
}

// AuthHandler issues operator tokens.
type AuthHandler struct {
	operators map[string]Operator
	tokens    *auth.TokenService
	hasher    auth.Hasher
	logger    *zap.Logger
}

// NewAuthHandler builds the login handler for the configured operators.
func NewAuthHandler(operators []Operator, tokens *auth.TokenService, hasher auth.Hasher, logger *zap.Logger) *AuthHandler {
	byName := make(map[string]Operator, len(operators))
	for _, op := range operators {
		byName[op.Username] = op
	}
	return &AuthHandler{operators: byName, tokens: tokens, hasher: hasher, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin handles POST /auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	operator, ok := h.operators[req.Username]
	if !ok || h.hasher.Compare(operator.PasswordHash, req.Password) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.GenerateToken(operator.Username)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

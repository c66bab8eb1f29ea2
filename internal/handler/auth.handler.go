package handler

import (
	"encoding/json"
	"net/http"

	"banking-service/internal/usecase"
	"banking-service/pkg/response"
)

type AuthHandler struct {
	auth *usecase.AuthService
}

func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.auth.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}
	if err := h.auth.Logout(r.Context(), token); err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SamarthKasar123/Primewave/services"
)

type LoginHandler struct {
	Service *services.AuthService
}

func NewLoginHandler(service *services.AuthService) *LoginHandler {
	return &LoginHandler{Service: service}
}

func (h *LoginHandler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, services.Invalid("Invalid request payload"))
		return
	}

	result, err := h.Service.RegisterClient(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *LoginHandler) LoginClient(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, services.Invalid("Invalid request payload"))
		return
	}

	result, err := h.Service.LoginClient(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoginHandler) LoginManager(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, services.Invalid("Invalid request payload"))
		return
	}

	result, err := h.Service.LoginManager(r.Context(), body.Username, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

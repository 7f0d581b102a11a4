package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-pairing/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary Вход организатора
// @Tags auth
// @Description Проверяет пароль организатора и выдает JWT (HS256, 24 часа).
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Пароль организатора"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} map[string]string "Пустой пароль"
// @Failure 401 {object} map[string]string "Неверный пароль"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Password == "" {
		badRequestResponse(w, r, errors.New("password is required"))
		return
	}

	res, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, res, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/tournament-pairing/models"
	"github.com/Dosada05/tournament-pairing/services"
)

type RoundHandler struct {
	tournamentService services.TournamentService
}

func NewRoundHandler(ts services.TournamentService) *RoundHandler {
	return &RoundHandler{tournamentService: ts}
}

type selectWinnerInput struct {
	Winner string `json:"winner"`
}

type roundResponse struct {
	Round *models.Round `json:"round"`
}

// Current godoc
// @Summary Текущий раунд
// @Tags rounds
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 200 {object} roundResponse "round равен null, если раунд не идет"
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/round [get]
func (h *RoundHandler) Current(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.tournamentService.CurrentRound(r.Context(), id)
	h.respondRound(w, r, round, err)
}

// SelectWinner godoc
// @Summary Выбрать победителя пары
// @Tags rounds
// @Description Результат сразу засчитывается; повторный выбор того же победителя ничего не меняет.
// @Accept json
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Param index path int true "Номер пары в раунде (с 0)"
// @Param body body selectWinnerInput true "Имя победителя"
// @Success 200 {object} roundResponse
// @Failure 404 {object} map[string]string "Пара не найдена"
// @Failure 409 {object} map[string]string "У пары уже другой победитель"
// @Failure 422 {object} map[string]string "Победитель не из этой пары или пара с BYE"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/round/pairings/{index}/winner [put]
func (h *RoundHandler) SelectWinner(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getIndexFromURL(r, "index")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input selectWinnerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.Winner = strings.TrimSpace(input.Winner)
	if input.Winner == "" {
		badRequestResponse(w, r, errors.New("winner is required"))
		return
	}

	round, err := h.tournamentService.SelectWinner(r.Context(), id, index, input.Winner)
	h.respondRound(w, r, round, err)
}

// RevertSelection godoc
// @Summary Отменить выбор победителя
// @Tags rounds
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Param index path int true "Номер пары в раунде (с 0)"
// @Success 200 {object} roundResponse
// @Failure 409 {object} map[string]string "Победитель не выбран"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/round/pairings/{index}/winner [delete]
func (h *RoundHandler) RevertSelection(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getIndexFromURL(r, "index")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.tournamentService.RevertSelection(r.Context(), id, index)
	h.respondRound(w, r, round, err)
}

// Finalize godoc
// @Summary Завершить раунд
// @Tags rounds
// @Description Переходит к следующему раунду или завершает турнир. Во время тай-брейка расставляет 2 и 3 места.
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 200 {object} services.Status
// @Failure 409 {object} map[string]string "Не у всех пар есть победитель"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/round/finalize [post]
func (h *RoundHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	st, err := h.tournamentService.FinalizeRound(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, st, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) respondRound(w http.ResponseWriter, r *http.Request, round *models.Round, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, roundResponse{Round: round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

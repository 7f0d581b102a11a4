package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-pairing/brackets"
	"github.com/Dosada05/tournament-pairing/models" // Для статусов
	"github.com/Dosada05/tournament-pairing/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

type thresholdInput struct {
	Threshold int `json:"threshold"`
}

// Create godoc
// @Summary Создать турнир
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body services.CreateTournamentInput true "Название и порог выбывания (по умолчанию из конфигурации)"
// @Success 201 {object} services.Status
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 422 {object} map[string]string "Порог меньше 1"
// @Security BearerAuth
// @Router /tournaments [post]
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	st, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, st, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary Список турниров
// @Tags tournaments
// @Produce json
// @Param status query string false "not_started | in_progress | finished | tiebreak"
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /tournaments [get]
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	var input services.ListTournamentsInput

	if s := r.URL.Query().Get("status"); s != "" {
		status := models.TournamentStatus(s)
		switch status {
		case models.StatusNotStarted, models.StatusInProgress, models.StatusFinished, models.StatusTiebreak:
			input.Status = &status
		default:
			badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
	}

	var err error
	if input.Limit, err = queryInt(r, "limit", 0); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Offset, err = queryInt(r, "offset", 0); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.tournamentService.List(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get godoc
// @Summary Состояние турнира
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 200 {object} services.Status
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	st, err := h.tournamentService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, st, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Удалить турнир
// @Tags tournaments
// @Param tournamentID path int true "ID турнира"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID} [delete]
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetThreshold godoc
// @Summary Изменить порог выбывания
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Param body body thresholdInput true "Новый порог (>= 1)"
// @Success 200 {object} services.Status
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/threshold [put]
func (h *TournamentHandler) SetThreshold(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input thresholdInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	st, err := h.tournamentService.SetThreshold(r.Context(), id, input.Threshold)
	h.respondStatus(w, r, st, err)
}

// Begin godoc
// @Summary Начать турнир (раунд 1)
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 200 {object} services.Status
// @Failure 409 {object} map[string]string "Турнир уже идет"
// @Failure 422 {object} map[string]string "Меньше двух активных участников"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/begin [post]
func (h *TournamentHandler) Begin(w http.ResponseWriter, r *http.Request) {
	h.statusAction(w, r, h.tournamentService.Begin)
}

// StartTiebreak godoc
// @Summary Начать доп. матч за 2-3 место
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 200 {object} services.Status
// @Failure 409 {object} map[string]string "Тай-брейк недоступен"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/tiebreak [post]
func (h *TournamentHandler) StartTiebreak(w http.ResponseWriter, r *http.Request) {
	h.statusAction(w, r, h.tournamentService.StartTiebreak)
}

// ResetScores godoc
// @Summary Сбросить результаты (состав сохраняется)
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 200 {object} services.Status
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/reset-scores [post]
func (h *TournamentHandler) ResetScores(w http.ResponseWriter, r *http.Request) {
	h.statusAction(w, r, h.tournamentService.ResetScores)
}

// Reset godoc
// @Summary Полный сброс турнира вместе с составом
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 200 {object} services.Status
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/reset [post]
func (h *TournamentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.statusAction(w, r, h.tournamentService.Reset)
}

// Standings godoc
// @Summary Таблица участников
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Param active query bool false "Только активные"
// @Param team query string false "Только участники команды"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/standings [get]
func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	filter := brackets.StandingsFilter{Team: r.URL.Query().Get("team")}
	switch r.URL.Query().Get("active") {
	case "", "false", "0":
	case "true", "1":
		filter.ActiveOnly = true
	default:
		badRequestResponse(w, r, errors.New("invalid active query parameter"))
		return
	}

	standings, err := h.tournamentService.Standings(r.Context(), id, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TeamPoints godoc
// @Summary Очки команд (сумма побед минус поражений)
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/team-points [get]
func (h *TournamentHandler) TeamPoints(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	points, err := h.tournamentService.TeamPoints(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": points}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) statusAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id int64) (*services.Status, error)) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	st, err := action(r.Context(), id)
	h.respondStatus(w, r, st, err)
}

func (h *TournamentHandler) respondStatus(w http.ResponseWriter, r *http.Request, st *services.Status, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, st, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

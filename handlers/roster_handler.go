package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-pairing/services"
)

const maxRosterBytes = 1_048_576

type RosterHandler struct {
	tournamentService services.TournamentService
}

func NewRosterHandler(ts services.TournamentService) *RosterHandler {
	return &RosterHandler{tournamentService: ts}
}

type sampleTeamsInput struct {
	Teams   int `json:"teams"`
	PerTeam int `json:"per_team"`
}

// AddCompetitor godoc
// @Summary Добавить участника
// @Tags roster
// @Accept json
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Param body body services.AddCompetitorInput true "Имя и команда"
// @Success 201 {object} models.Competitor
// @Failure 409 {object} map[string]string "Имя уже занято"
// @Failure 422 {object} map[string]string "Пустое имя"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/competitors [post]
func (h *RosterHandler) AddCompetitor(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AddCompetitorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	c, err := h.tournamentService.AddCompetitor(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, c, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveCompetitor godoc
// @Summary Удалить участника
// @Tags roster
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Param name path string true "Имя участника"
// @Success 200 {object} services.Status
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Участник играет тай-брейк"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/competitors/{name} [delete]
func (h *RosterHandler) RemoveCompetitor(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	// chi отдает параметр из RawPath, если он задан; иначе он уже декодирован
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		name, err = url.PathUnescape(name)
	}
	if err != nil || name == "" {
		badRequestResponse(w, r, errors.New("invalid competitor name in URL path"))
		return
	}

	st, err := h.tournamentService.RemoveCompetitor(r.Context(), id, name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, st, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddSampleTeams godoc
// @Summary Заполнить тестовыми командами
// @Tags roster
// @Accept json
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Param body body sampleTeamsInput true "Количество команд и участников в команде"
// @Success 200 {object} services.Status
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/competitors/sample [post]
func (h *RosterHandler) AddSampleTeams(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input sampleTeamsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	st, err := h.tournamentService.AddSampleTeams(r.Context(), id, input.Teams, input.PerTeam)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, st, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Import godoc
// @Summary Загрузить состав из CSV
// @Tags roster
// @Description Тело запроса: CSV с заголовком Name,Team,Wins,Losses. Текущий раунд сбрасывается.
// @Accept text/csv
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 200 {object} services.Status
// @Failure 400 {object} map[string]string "Некорректный CSV"
// @Failure 409 {object} map[string]string "Повторяющиеся имена"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/roster [put]
func (h *RosterHandler) Import(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxRosterBytes)
	st, err := h.tournamentService.ImportRoster(r.Context(), id, body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, st, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Export godoc
// @Summary Скачать состав в CSV
// @Tags roster
// @Produce text/csv
// @Param tournamentID path int true "ID турнира"
// @Success 200 {string} string "CSV"
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/roster.csv [get]
func (h *RosterHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.tournamentService.ExportRoster(r.Context(), id, &buf); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="tournament-%d-roster.csv"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// PublishRoster godoc
// @Summary Выгрузить снимок состава в хранилище
// @Tags roster
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 201 {object} storage.UploadResult
// @Failure 503 {object} map[string]string "Экспорт не настроен"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/roster/export [post]
func (h *RosterHandler) PublishRoster(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.tournamentService.PublishRoster(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PublishStandings godoc
// @Summary Выгрузить снимок таблицы в хранилище
// @Tags roster
// @Produce json
// @Param tournamentID path int true "ID турнира"
// @Success 201 {object} storage.UploadResult
// @Failure 503 {object} map[string]string "Экспорт не настроен"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/standings/export [post]
func (h *RosterHandler) PublishStandings(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.tournamentService.PublishStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package routes_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-pairing/brackets"
	"github.com/Dosada05/tournament-pairing/broadcast"
	"github.com/Dosada05/tournament-pairing/handlers"
	"github.com/Dosada05/tournament-pairing/models"
	"github.com/Dosada05/tournament-pairing/routes"
	"github.com/Dosada05/tournament-pairing/services"
	"github.com/Dosada05/tournament-pairing/storage"
	"github.com/Dosada05/tournament-pairing/utils"
)

const testSecret = "routes-test-secret"

// stubService answers only the calls a test configures; anything else panics
// through the nil embedded interface.
type stubService struct {
	services.TournamentService

	get          func(id int64) (*services.Status, error)
	create       func(in services.CreateTournamentInput) (*services.Status, error)
	selectWinner func(id int64, index int, winner string) (*models.Round, error)
	standings    func(id int64, f brackets.StandingsFilter) ([]models.Standing, error)
	importRoster func(id int64, body string) (*services.Status, error)
	exportRoster func(id int64, w io.Writer) error
	finalize     func(id int64) (*services.Status, error)
	publish      func(id int64) error
	remove       func(id int64, name string) (*services.Status, error)
}

func (s *stubService) Get(_ context.Context, id int64) (*services.Status, error) {
	return s.get(id)
}

func (s *stubService) Create(_ context.Context, in services.CreateTournamentInput) (*services.Status, error) {
	return s.create(in)
}

func (s *stubService) SelectWinner(_ context.Context, id int64, index int, winner string) (*models.Round, error) {
	return s.selectWinner(id, index, winner)
}

func (s *stubService) Standings(_ context.Context, id int64, f brackets.StandingsFilter) ([]models.Standing, error) {
	return s.standings(id, f)
}

func (s *stubService) ImportRoster(_ context.Context, id int64, r io.Reader) (*services.Status, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return s.importRoster(id, string(b))
}

func (s *stubService) ExportRoster(_ context.Context, id int64, w io.Writer) error {
	return s.exportRoster(id, w)
}

func (s *stubService) FinalizeRound(_ context.Context, id int64) (*services.Status, error) {
	return s.finalize(id)
}

func (s *stubService) RemoveCompetitor(_ context.Context, id int64, name string) (*services.Status, error) {
	return s.remove(id, name)
}

func (s *stubService) PublishStandings(_ context.Context, id int64) (*storage.UploadResult, error) {
	return nil, s.publish(id)
}

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, in services.LoginInput) (*services.LoginResult, error) {
	if in.Password != "letmein" {
		return nil, services.ErrInvalidCredentials
	}
	return &services.LoginResult{Token: "t"}, nil
}

func newRouter(t *testing.T, svc *stubService) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	hub := broadcast.NewHub()
	routes.SetupRoutes(
		router,
		routes.Options{JWTSecret: testSecret, AllowedOrigins: []string{"*"}},
		handlers.NewAuthHandler(stubAuth{}),
		handlers.NewTournamentHandler(svc),
		handlers.NewRoundHandler(svc),
		handlers.NewRosterHandler(svc),
		handlers.NewWebSocketHandler(hub, svc, []string{"*"}),
	)
	return router
}

func organizerToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWT([]byte(testSecret), utils.RoleOrganizer, time.Hour, time.Now())
	require.NoError(t, err)
	return token
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newRouter(t, &stubService{})

	paths := []struct{ method, path string }{
		{http.MethodPost, "/tournaments"},
		{http.MethodDelete, "/tournaments/1"},
		{http.MethodPost, "/tournaments/1/begin"},
		{http.MethodPut, "/tournaments/1/round/pairings/0/winner"},
		{http.MethodPost, "/tournaments/1/round/finalize"},
		{http.MethodPut, "/tournaments/1/roster"},
		{http.MethodPost, "/tournaments/1/standings/export"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := do(t, h, p.method, p.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestLoginRoute(t *testing.T) {
	h := newRouter(t, &stubService{})

	rec := do(t, h, http.MethodPost, "/auth/login", `{"password":"letmein"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", `{"password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTournament(t *testing.T) {
	var got services.CreateTournamentInput
	svc := &stubService{
		create: func(in services.CreateTournamentInput) (*services.Status, error) {
			got = in
			return &services.Status{Tournament: &models.Tournament{ID: 7, Name: in.Name, Threshold: 2}}, nil
		},
	}
	h := newRouter(t, svc)

	rec := do(t, h, http.MethodPost, "/tournaments", `{"name":"Spring Open","threshold":2}`, organizerToken(t))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Spring Open", got.Name)
	require.NotNil(t, got.Threshold)
	assert.Equal(t, 2, *got.Threshold)

	var body services.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.Tournament.ID)

	rec = do(t, h, http.MethodPost, "/tournaments", `{"name":"x","unknown":1}`, organizerToken(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServiceErrorsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown tournament", services.ErrTournamentNotFound, http.StatusNotFound},
		{"unknown pairing", brackets.ErrPairingNotFound, http.StatusNotFound},
		{"already selected", brackets.ErrAlreadySelected, http.StatusConflict},
		{"winner not in pairing", brackets.ErrInvalidWinner, http.StatusUnprocessableEntity},
		{"bye pairing", brackets.ErrByeNotSelectable, http.StatusUnprocessableEntity},
		{"stalled round", brackets.ErrRoundStalled, http.StatusConflict},
		{"storage failure", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{
				selectWinner: func(int64, int, string) (*models.Round, error) {
					return nil, fmt.Errorf("select winner: %w", tt.err)
				},
			}
			h := newRouter(t, svc)
			rec := do(t, h, http.MethodPut, "/tournaments/3/round/pairings/1/winner", `{"winner":"Ann"}`, organizerToken(t))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSelectWinnerPassesPathParams(t *testing.T) {
	svc := &stubService{
		selectWinner: func(id int64, index int, winner string) (*models.Round, error) {
			assert.Equal(t, int64(3), id)
			assert.Equal(t, 1, index)
			assert.Equal(t, "Ann", winner)
			return &models.Round{Number: 1, Pairings: []models.Pairing{{Comp1: "Bob", Comp2: "Ann", Selected: "Ann", Applied: true}}}, nil
		},
	}
	h := newRouter(t, svc)

	rec := do(t, h, http.MethodPut, "/tournaments/3/round/pairings/1/winner", `{"winner":" Ann "}`, organizerToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"selected": "Ann"`)

	rec = do(t, h, http.MethodPut, "/tournaments/3/round/pairings/-1/winner", `{"winner":"Ann"}`, organizerToken(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/tournaments/3/round/pairings/0/winner", `{"winner":"  "}`, organizerToken(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStandingsQuery(t *testing.T) {
	var got brackets.StandingsFilter
	svc := &stubService{
		standings: func(_ int64, f brackets.StandingsFilter) ([]models.Standing, error) {
			got = f
			return []models.Standing{{Rank: 1, Name: "Ann", Team: "Red", Active: true}}, nil
		},
	}
	h := newRouter(t, svc)

	rec := do(t, h, http.MethodGet, "/tournaments/1/standings?active=true&team=Red", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.ActiveOnly)
	assert.Equal(t, "Red", got.Team)

	rec = do(t, h, http.MethodGet, "/tournaments/1/standings?active=maybe", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRosterImportAndExport(t *testing.T) {
	var imported string
	svc := &stubService{
		importRoster: func(_ int64, body string) (*services.Status, error) {
			imported = body
			return &services.Status{Tournament: &models.Tournament{ID: 1}, ActiveCount: 1}, nil
		},
		exportRoster: func(_ int64, w io.Writer) error {
			_, err := io.WriteString(w, "Name,Team,Wins,Losses\nAnn,Red,0,0\n")
			return err
		},
	}
	h := newRouter(t, svc)

	csv := "Name,Team,Wins,Losses\nAnn,Red,0,0\n"
	rec := do(t, h, http.MethodPut, "/tournaments/1/roster", csv, organizerToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, csv, imported)

	rec = do(t, h, http.MethodGet, "/tournaments/1/roster.csv", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "tournament-1-roster.csv")
	assert.Equal(t, csv, rec.Body.String())
}

func TestFinalizeIncompleteRound(t *testing.T) {
	svc := &stubService{
		finalize: func(int64) (*services.Status, error) {
			return nil, brackets.ErrIncompleteRound
		},
	}
	h := newRouter(t, svc)

	rec := do(t, h, http.MethodPost, "/tournaments/1/round/finalize", "", organizerToken(t))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRemoveCompetitorDecodesNameOnce(t *testing.T) {
	var got []string
	svc := &stubService{
		remove: func(id int64, name string) (*services.Status, error) {
			got = append(got, name)
			return &services.Status{Tournament: &models.Tournament{ID: id}}, nil
		},
	}
	h := newRouter(t, svc)

	for _, path := range []string{
		"/tournaments/1/competitors/100%25",
		"/tournaments/1/competitors/Ann%20Lee",
		"/tournaments/1/competitors/A%2FB",
		"/tournaments/1/competitors/50%25%2F50",
	} {
		rec := do(t, h, http.MethodDelete, path, "", organizerToken(t))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Equal(t, []string{"100%", "Ann Lee", "A/B", "50%/50"}, got)
}

func TestExportDisabled(t *testing.T) {
	svc := &stubService{publish: func(int64) error { return services.ErrExportDisabled }}
	h := newRouter(t, svc)

	rec := do(t, h, http.MethodPost, "/tournaments/1/standings/export", "", organizerToken(t))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWebSocketUnknownTournament(t *testing.T) {
	svc := &stubService{
		get: func(int64) (*services.Status, error) { return nil, services.ErrTournamentNotFound },
	}
	h := newRouter(t, svc)

	rec := do(t, h, http.MethodGet, "/ws/tournaments/9", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newRouter(t, &stubService{})
	rec := do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

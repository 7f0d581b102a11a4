package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Dosada05/tournament-pairing/models"
	"github.com/Dosada05/tournament-pairing/rosterio"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeJSON = "application/json"
)

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag,omitempty"`
}

// FileUploader кладет снимок в объектное хранилище и отдает публичную ссылку.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	GetPublicURL(key string) string
}

// Exporter publishes roster and standings snapshots of a tournament.
type Exporter struct {
	uploader FileUploader
	now      func() time.Time
}

func NewExporter(uploader FileUploader) *Exporter {
	return &Exporter{uploader: uploader, now: time.Now}
}

// RosterKey is roster/<id>/<yyyy-mm-dd>.csv; a later export on the same day
// replaces the earlier one.
func RosterKey(tournamentID int64, at time.Time) string {
	return fmt.Sprintf("roster/%d/%s.csv", tournamentID, at.UTC().Format("2006-01-02"))
}

func StandingsKey(tournamentID int64, at time.Time) string {
	return fmt.Sprintf("standings/%d/%s.json", tournamentID, at.UTC().Format("20060102T150405Z"))
}

func (e *Exporter) ExportRoster(ctx context.Context, tournamentID int64, competitors []*models.Competitor) (*UploadResult, error) {
	var buf bytes.Buffer
	if err := rosterio.Write(&buf, competitors); err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}
	return e.uploader.Upload(ctx, RosterKey(tournamentID, e.now()), ContentTypeCSV, &buf)
}

type standingsSnapshot struct {
	TournamentID int64                   `json:"tournament_id"`
	Name         string                  `json:"name"`
	Status       models.TournamentStatus `json:"status"`
	RoundNumber  int                     `json:"round_number"`
	ExportedAt   time.Time               `json:"exported_at"`
	Standings    []models.Standing       `json:"standings"`
	TeamPoints   []models.TeamPoints     `json:"team_points"`
}

func (e *Exporter) ExportStandings(ctx context.Context, t *models.Tournament, standings []models.Standing, teams []models.TeamPoints) (*UploadResult, error) {
	at := e.now()
	data, err := json.Marshal(standingsSnapshot{
		TournamentID: t.ID,
		Name:         t.Name,
		Status:       t.Status,
		RoundNumber:  t.RoundNumber,
		ExportedAt:   at.UTC(),
		Standings:    standings,
		TeamPoints:   teams,
	})
	if err != nil {
		return nil, fmt.Errorf("encode standings: %w", err)
	}
	return e.uploader.Upload(ctx, StandingsKey(t.ID, at), ContentTypeJSON, bytes.NewReader(data))
}

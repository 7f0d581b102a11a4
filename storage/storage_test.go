package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-pairing/models"
)

type fakeS3 struct {
	puts map[string][]byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts[*in.Key] = data
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func newTestUploader(base string) (*cloudflareR2Uploader, *fakeS3) {
	fake := &fakeS3{puts: map[string][]byte{}}
	return &cloudflareR2Uploader{s3Client: fake, bucketName: "exports", publicBaseURL: base}, fake
}

func TestR2Upload(t *testing.T) {
	u, fake := newTestUploader("https://cdn.example.com/pub/")

	res, err := u.Upload(context.Background(), "roster/1/2026-01-02.csv", ContentTypeCSV, bytesReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.example.com/pub/roster/1/2026-01-02.csv", res.Location)
	assert.Equal(t, []byte("x"), fake.puts["roster/1/2026-01-02.csv"])

	fake.err = errors.New("boom")
	_, err = u.Upload(context.Background(), "k", ContentTypeCSV, bytesReader("x"))
	assert.ErrorContains(t, err, "boom")
}

func TestGetPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "a/b.csv", "https://cdn.example.com/a/b.csv"},
		{"https://cdn.example.com/", "/a/b.csv", "https://cdn.example.com/a/b.csv"},
		{"https://cdn.example.com/pub", "a.json", "https://cdn.example.com/pub/a.json"},
		{"", "a.json", ""},
		{"https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		u, _ := newTestUploader(tt.base)
		assert.Equal(t, tt.want, u.GetPublicURL(tt.key), "%s + %s", tt.base, tt.key)
	}
}

func TestR2ConfigValidation(t *testing.T) {
	assert.False(t, CloudflareR2UploaderConfig{}.Enabled())

	partial := CloudflareR2UploaderConfig{BucketName: "b"}
	assert.True(t, partial.Enabled())
	_, err := NewCloudflareR2Uploader(context.Background(), partial)
	assert.Error(t, err)
}

type recordingUploader struct {
	key, contentType string
	body             []byte
}

func (r *recordingUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*UploadResult, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	r.key, r.contentType, r.body = key, contentType, body
	return &UploadResult{Key: key, Location: r.GetPublicURL(key)}, nil
}

func (r *recordingUploader) GetPublicURL(key string) string { return "https://files/" + key }

func TestExporter(t *testing.T) {
	up := &recordingUploader{}
	e := NewExporter(up)
	e.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	res, err := e.ExportRoster(context.Background(), 9, []*models.Competitor{{Name: "Ann", Team: "Red", Wins: 1}})
	require.NoError(t, err)
	assert.Equal(t, "roster/9/2026-03-04.csv", res.Key)
	assert.Equal(t, ContentTypeCSV, up.contentType)
	assert.Equal(t, "Name,Team,Wins,Losses\n\"Ann\",\"Red\",1,0\n", string(up.body))

	tr := models.NewTournament("Open", 2)
	tr.ID = 9
	res, err = e.ExportStandings(context.Background(), tr,
		[]models.Standing{{Rank: 1, Name: "Ann", Wins: 1, Active: true}},
		[]models.TeamPoints{{Team: "Red", Points: 1}})
	require.NoError(t, err)
	assert.Equal(t, "standings/9/20260304T050607Z.json", res.Key)
	assert.Equal(t, ContentTypeJSON, up.contentType)

	var snap map[string]any
	require.NoError(t, json.Unmarshal(up.body, &snap))
	assert.Equal(t, "Open", snap["name"])
	assert.Len(t, snap["standings"], 1)
}

func bytesReader(s string) io.Reader { return strings.NewReader(s) }

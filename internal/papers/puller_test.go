package papers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/logger"
)

// dailyPageHTML mimics the daily papers page. The second title carries a
// decomposed accent (e + combining acute) to exercise NFC normalization.
const dailyPageHTML = "<!DOCTYPE html>\n" +
	"<html><body>\n" +
	"<nav><a href=\"/models\">Models</a></nav>\n" +
	"<div class=\"w-full\">\n" +
	"  <article><h3><a href=\"/papers/2501.11111\">First Paper</a></h3></article>\n" +
	"  <article><h3><a href=\"/papers/2501.22222\">Caf\u0065\u0301 Learning</a></h3></article>\n" +
	"  <article><h3><a href=\"/papers/2501.33333\">Third Paper</a></h3></article>\n" +
	"</div>\n" +
	"</body></html>\n"

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func testPuller(t *testing.T, server *httptest.Server, perDay int) *Puller {
	t.Helper()
	return New(Config{
		UserAgent:       "paperbot-test/1.0",
		Timeout:         5 * time.Second,
		MaxResponseSize: 1024 * 1024,
		PapersURL:       server.URL + "/papers/date/",
		ArxivURL:        server.URL,
		PapersPerDay:    perDay,
		DownloadDelay:   0,
	}, testLogger(t))
}

func dailyPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/papers/date/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dailyPageHTML)
	})
	mux.HandleFunc("/pdf/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pdf/2501.33333.pdf" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "%PDF-1.5 fake content")
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestPaper_Filename(t *testing.T) {
	paper := Paper{
		ArxivID: "2501.11111",
		Date:    time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC),
		Number:  2,
	}

	assert.Equal(t, "20260822_paper2_2501.11111.pdf", paper.Filename())
}

func TestDailyPapers_ParsesAnchors(t *testing.T) {
	server := dailyPageServer(t)
	puller := testPuller(t, server, 5)

	date := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	papers, err := puller.DailyPapers(context.Background(), date)

	require.NoError(t, err)
	require.Len(t, papers, 3)
	assert.Equal(t, "2501.11111", papers[0].ArxivID)
	assert.Equal(t, "First Paper", papers[0].Title)
	assert.Equal(t, 1, papers[0].Number)
	assert.Equal(t, "2501.22222", papers[1].ArxivID)
	assert.Equal(t, "Caf\u00e9 Learning", papers[1].Title)
	assert.Equal(t, date, papers[2].Date)
	assert.Equal(t, 3, papers[2].Number)
}

func TestDailyPapers_HonorsPapersPerDay(t *testing.T) {
	server := dailyPageServer(t)
	puller := testPuller(t, server, 2)

	papers, err := puller.DailyPapers(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Len(t, papers, 2)
}

func TestDailyPapers_HTTPErrorIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	puller := testPuller(t, server, 5)

	_, err := puller.DailyPapers(context.Background(), time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestDownloadPDF_WritesFile(t *testing.T) {
	server := dailyPageServer(t)
	puller := testPuller(t, server, 5)
	dir := t.TempDir()

	paper := Paper{ArxivID: "2501.11111", Date: time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC), Number: 1}
	path, downloaded, err := puller.DownloadPDF(context.Background(), paper, dir)

	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.Equal(t, filepath.Join(dir, "20260822_paper1_2501.11111.pdf"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "%PDF")
}

func TestDownloadPDF_SkipsExistingFile(t *testing.T) {
	server := dailyPageServer(t)
	puller := testPuller(t, server, 5)
	dir := t.TempDir()

	paper := Paper{ArxivID: "2501.11111", Date: time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC), Number: 1}
	existing := filepath.Join(dir, paper.Filename())
	require.NoError(t, os.WriteFile(existing, []byte("already here"), 0644))

	path, downloaded, err := puller.DownloadPDF(context.Background(), paper, dir)

	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Equal(t, existing, path)

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "already here", string(content))
}

func TestDownloadPDF_MissingUpstreamIsNotFatal(t *testing.T) {
	server := dailyPageServer(t)
	puller := testPuller(t, server, 5)

	paper := Paper{ArxivID: "2501.33333", Date: time.Now(), Number: 3}
	path, downloaded, err := puller.DownloadPDF(context.Background(), paper, t.TempDir())

	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Empty(t, path)
}

func TestPullRange_DownloadsRange(t *testing.T) {
	server := dailyPageServer(t)
	puller := testPuller(t, server, 5)
	dir := t.TempDir()

	start := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)

	report, err := puller.PullRange(context.Background(), start, end, dir)

	require.NoError(t, err)
	assert.Equal(t, 6, report.Found)
	// 2501.33333 has no PDF upstream on either day.
	assert.Equal(t, 4, report.Downloaded)
	assert.Zero(t, report.Skipped)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestPullRange_SecondRunSkipsExisting(t *testing.T) {
	server := dailyPageServer(t)
	puller := testPuller(t, server, 5)
	dir := t.TempDir()

	date := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	_, err := puller.PullRange(context.Background(), date, date, dir)
	require.NoError(t, err)

	report, err := puller.PullRange(context.Background(), date, date, dir)
	require.NoError(t, err)
	assert.Zero(t, report.Downloaded)
	assert.Equal(t, 2, report.Skipped)
}

func TestPullRange_BadDateIsSkipped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/papers/date/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	puller := testPuller(t, server, 5)

	date := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	report, err := puller.PullRange(context.Background(), date, date, t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Found)
}

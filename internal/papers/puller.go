// Package papers pulls daily AI papers: it scrapes the Hugging Face daily
// papers page for arXiv IDs and downloads the PDFs from arXiv.
package papers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/logger"
)

// paperLinkSelector matches the paper anchors on the daily papers page.
const paperLinkSelector = "div.w-full h3 a"

// Config holds the puller settings.
type Config struct {
	UserAgent       string
	Timeout         time.Duration
	MaxResponseSize int64
	PapersURL       string // daily index base URL, date appended as YYYY-MM-DD
	ArxivURL        string // arXiv base URL
	PapersPerDay    int    // how many anchors to take from each daily page
	DownloadDelay   time.Duration
}

// Paper is one entry scraped from a daily papers page.
type Paper struct {
	ArxivID string
	Title   string
	Date    time.Time
	Number  int // 1-based position on the daily page
}

// Filename returns the canonical PDF filename YYYYMMDD_paperN_<arxivid>.pdf.
func (p Paper) Filename() string {
	return fmt.Sprintf("%s_paper%d_%s.pdf", p.Date.Format("20060102"), p.Number, p.ArxivID)
}

// Report summarizes a pull run.
type Report struct {
	Found      int // papers listed on the daily pages
	Downloaded int // PDFs fetched this run
	Skipped    int // PDFs already present on disk
	Failed     int // dates or downloads that errored
}

// Puller scrapes daily paper pages and downloads PDFs.
type Puller struct {
	cfg    Config
	client *http.Client
	logger *logger.Logger
}

// New creates a Puller.
func New(cfg Config, log *logger.Logger) *Puller {
	return &Puller{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: log,
	}
}

// DailyPapers fetches the daily papers page for the given date and returns
// up to PapersPerDay entries. The arXiv ID is the last path segment of each
// paper link; titles are unicode-normalized anchor text.
func (p *Puller) DailyPapers(ctx context.Context, date time.Time) ([]Paper, error) {
	url := p.cfg.PapersURL + date.Format("2006-01-02")
	p.logger.InfoCtx(ctx, "fetching papers", logger.Field{Key: "url", Value: url})

	body, err := p.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(body, p.cfg.MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to parse papers page %s: %w", url, err)
	}

	var papers []Paper
	doc.Find(paperLinkSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(papers) >= p.cfg.PapersPerDay {
			return false
		}

		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}

		segments := strings.Split(strings.TrimSuffix(href, "/"), "/")
		id := segments[len(segments)-1]
		if id == "" {
			return true
		}

		papers = append(papers, Paper{
			ArxivID: id,
			Title:   norm.NFC.String(strings.TrimSpace(sel.Text())),
			Date:    date,
			Number:  len(papers) + 1,
		})
		return true
	})

	p.logger.InfoCtx(ctx, "papers found",
		logger.Field{Key: "date", Value: date.Format("2006-01-02")},
		logger.Field{Key: "count", Value: len(papers)})
	return papers, nil
}

// DownloadPDF fetches the PDF for a paper into destDir. It returns the file
// path and whether a new file was written; a file already on disk is skipped
// and a PDF missing upstream (non-200) is logged and reported as neither
// downloaded nor failed, so one withdrawn paper does not fail the day.
func (p *Puller) DownloadPDF(ctx context.Context, paper Paper, destDir string) (string, bool, error) {
	path := filepath.Join(destDir, paper.Filename())

	if _, err := os.Stat(path); err == nil {
		p.logger.InfoCtx(ctx, "file already exists, skipping download",
			logger.Field{Key: "path", Value: path})
		return path, false, nil
	}

	url := fmt.Sprintf("%s/pdf/%s.pdf", strings.TrimSuffix(p.cfg.ArxivURL, "/"), paper.ArxivID)
	p.logger.InfoCtx(ctx, "downloading pdf", logger.Field{Key: "url", Value: url})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("request failed for %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.WarnCtx(ctx, "pdf not available",
			logger.Field{Key: "arxiv_id", Value: paper.ArxivID},
			logger.Field{Key: "status", Value: resp.StatusCode})
		return "", false, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := io.Copy(file, io.LimitReader(resp.Body, p.cfg.MaxResponseSize)); err != nil {
		file.Close()
		os.Remove(path)
		return "", false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", false, fmt.Errorf("failed to close %s: %w", path, err)
	}

	p.logger.InfoCtx(ctx, "downloaded", logger.Field{Key: "path", Value: path})
	return path, true, nil
}

// PullRange pulls papers for every date from start to end inclusive. A date
// whose page cannot be fetched is logged and skipped; downloads within a day
// are sequential with a politeness delay between them.
func (p *Puller) PullRange(ctx context.Context, start, end time.Time, destDir string) (Report, error) {
	var report Report

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return report, fmt.Errorf("failed to create output directory %s: %w", destDir, err)
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		papers, err := p.DailyPapers(ctx, date)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			p.logger.ErrorCtx(ctx, "failed to get paper links", err,
				logger.Field{Key: "date", Value: date.Format("2006-01-02")})
			report.Failed++
			continue
		}
		report.Found += len(papers)

		for i, paper := range papers {
			path, downloaded, err := p.DownloadPDF(ctx, paper, destDir)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return report, ctx.Err()
				}
				p.logger.ErrorCtx(ctx, "download failed", err,
					logger.Field{Key: "arxiv_id", Value: paper.ArxivID})
				report.Failed++
			case downloaded:
				report.Downloaded++
			case path != "":
				report.Skipped++
			}

			// No delay after the last paper of the day.
			if i < len(papers)-1 {
				if err := sleepCtx(ctx, p.cfg.DownloadDelay); err != nil {
					return report, err
				}
			}
		}
	}

	return report, nil
}

// get performs a GET request and returns the body on HTTP 200.
func (p *Puller) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed for %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// sleepCtx waits for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Package summary renders markdown summaries for downloaded papers from
// their arXiv abstract pages.
package summary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/wasilibs/go-re2"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/logger"
)

// failedExtractNote is written into a summary when the abstract page cannot
// be fetched or converted, so the run still produces one file per paper.
const failedExtractNote = "_Failed to extract paper content._"

var (
	spaceRun   = re2.MustCompile(`[ \t]+`)
	newlineRun = re2.MustCompile(`\n{3,}`)
)

// Config holds the generator settings.
type Config struct {
	UserAgent       string
	Timeout         time.Duration
	MaxResponseSize int64
	ArxivURL        string // arXiv base URL
	PapersURL       string // daily index base URL, used to derive paper page links
}

// Generator fetches arXiv abstract pages and writes markdown summaries.
type Generator struct {
	cfg       Config
	client    *http.Client
	converter *md.Converter
	logger    *logger.Logger
}

// New creates a Generator.
func New(cfg Config, log *logger.Logger) *Generator {
	opts := &md.Options{
		HeadingStyle:    "atx",
		CodeBlockStyle:  "fenced",
		EmDelimiter:     "*",
		StrongDelimiter: "**",
	}

	converter := md.NewConverter("", true, opts)
	converter.Keep("a", "img")
	converter.AddRules(md.Rule{
		Filter: []string{"nav", "footer", "aside", "script", "style"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			empty := ""
			return &empty
		},
	})

	return &Generator{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		converter: converter,
		logger:    log,
	}
}

// Generate writes the markdown summary for one paper into outDir. The output
// file shares the PDF's base name with an .md extension; an existing file is
// left as is. A paper whose abstract cannot be fetched still gets a summary
// with a fallback note.
func (g *Generator) Generate(ctx context.Context, pdf PDF, outDir string) (string, bool, error) {
	base := strings.TrimSuffix(filepath.Base(pdf.Path), ".pdf")
	outPath := filepath.Join(outDir, base+".md")

	if _, err := os.Stat(outPath); err == nil {
		g.logger.InfoCtx(ctx, "summary already exists, skipping",
			logger.Field{Key: "path", Value: outPath})
		return outPath, false, nil
	}

	content, err := g.abstractMarkdown(ctx, pdf.ArxivID)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		g.logger.WarnCtx(ctx, "failed to extract abstract, writing fallback note",
			logger.Field{Key: "arxiv_id", Value: pdf.ArxivID},
			logger.Field{Key: "error", Value: err.Error()})
		content = failedExtractNote
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Paper: %s\n\n", pdf.ArxivID)
	fmt.Fprintf(&b, "- Date: %s\n", pdf.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Position: %d\n", pdf.Number)
	fmt.Fprintf(&b, "- arXiv: %s/abs/%s\n", strings.TrimSuffix(g.cfg.ArxivURL, "/"), pdf.ArxivID)
	fmt.Fprintf(&b, "- Paper page: %s\n\n", g.paperPageURL(pdf.ArxivID))
	b.WriteString(content)
	b.WriteString("\n")

	if err := os.WriteFile(outPath, []byte(b.String()), 0644); err != nil {
		return "", false, fmt.Errorf("failed to write summary %s: %w", outPath, err)
	}

	g.logger.InfoCtx(ctx, "summary written", logger.Field{Key: "path", Value: outPath})
	return outPath, true, nil
}

// GenerateRange writes summaries for every PDF in papersDir dated between
// start and end inclusive. Per-paper failures are logged and skipped; the
// count of newly written summaries is returned.
func (g *Generator) GenerateRange(ctx context.Context, papersDir, outDir string, start, end time.Time) (int, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create summaries directory %s: %w", outDir, err)
	}

	pdfs, err := ListPDFs(papersDir, start, end)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, pdf := range pdfs {
		_, wrote, err := g.Generate(ctx, pdf, outDir)
		if err != nil {
			if ctx.Err() != nil {
				return written, ctx.Err()
			}
			g.logger.ErrorCtx(ctx, "summary generation failed", err,
				logger.Field{Key: "arxiv_id", Value: pdf.ArxivID})
			continue
		}
		if wrote {
			written++
		}
	}
	return written, nil
}

// abstractMarkdown fetches the arXiv abstract page and renders it to markdown.
func (g *Generator) abstractMarkdown(ctx context.Context, arxivID string) (string, error) {
	url := fmt.Sprintf("%s/abs/%s", strings.TrimSuffix(g.cfg.ArxivURL, "/"), arxivID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", g.cfg.UserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed for %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, g.cfg.MaxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	markdown, err := g.converter.ConvertString(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	markdown = spaceRun.ReplaceAllString(markdown, " ")
	markdown = newlineRun.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), nil
}

// paperPageURL derives the daily papers site link for a paper from the
// configured index URL by dropping its date path segment.
func (g *Generator) paperPageURL(arxivID string) string {
	base := strings.TrimSuffix(g.cfg.PapersURL, "/")
	base = strings.TrimSuffix(base, "/date")
	return base + "/" + arxivID
}

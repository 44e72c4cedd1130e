package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wasilibs/go-re2"
)

// pdfNamePattern matches the canonical PDF filename YYYYMMDD_paperN_<arxivid>.pdf.
var pdfNamePattern = re2.MustCompile(`^(\d{8})_paper(\d+)_(.+)\.pdf$`)

// PDF is a downloaded paper identified from its filename.
type PDF struct {
	Path    string
	ArxivID string
	Date    time.Time
	Number  int
}

// ParseFilename extracts the date, paper number and arXiv ID from a PDF path.
func ParseFilename(path string) (PDF, error) {
	name := filepath.Base(path)
	matches := pdfNamePattern.FindStringSubmatch(name)
	if matches == nil {
		return PDF{}, fmt.Errorf("filename %s does not match the paper naming scheme", name)
	}

	date, err := time.Parse("20060102", matches[1])
	if err != nil {
		return PDF{}, fmt.Errorf("invalid date in filename %s: %w", name, err)
	}

	number, err := strconv.Atoi(matches[2])
	if err != nil {
		return PDF{}, fmt.Errorf("invalid paper number in filename %s: %w", name, err)
	}

	return PDF{
		Path:    path,
		ArxivID: matches[3],
		Date:    date,
		Number:  number,
	}, nil
}

// ListPDFs returns the papers in dir whose filename date falls between start
// and end inclusive. The bounds are compared by calendar date, so midnights
// in any time zone select the same files. Files that do not match the naming
// scheme are ignored.
func ListPDFs(dir string, start, end time.Time) ([]PDF, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read papers directory %s: %w", dir, err)
	}

	startKey := start.Format("20060102")
	endKey := end.Format("20060102")

	var pdfs []PDF
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		pdf, err := ParseFilename(entry.Name())
		if err != nil {
			continue
		}
		if key := pdf.Date.Format("20060102"); key < startKey || key > endKey {
			continue
		}

		pdf.Path = filepath.Join(dir, entry.Name())
		pdfs = append(pdfs, pdf)
	}
	return pdfs, nil
}

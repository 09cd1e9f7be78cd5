package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdfsift/pdfsift/internal/common"
)

// Result holds extracted page texts plus lightweight file metadata.
type Result struct {
	Pages     []string
	PageCount int
	ByteSize  int64
}

// ValidateFile checks that path points to a readable .pdf file before any
// parsing happens, so callers can report input problems without opening
// the document.
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return common.NewAppError("FILE_ERROR", fmt.Sprintf("file not found: %s", path), common.ErrNotFound)
		}
		return common.NewAppError("FILE_ERROR", fmt.Sprintf("cannot access file: %s", path), err)
	}
	if info.IsDir() {
		return common.NewAppError("FILE_ERROR", fmt.Sprintf("not a file: %s", path), common.ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return common.NewAppError("FILE_ERROR", fmt.Sprintf("not a PDF file: %s", path), common.ErrInvalidInput)
	}
	return nil
}

// ExtractFile reads the PDF at path and returns its text page by page.
func ExtractFile(path string, logger *slog.Logger) (*Result, error) {
	if err := ValidateFile(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewAppError("FILE_ERROR", fmt.Sprintf("cannot read file: %s", path), err)
	}
	return Extract(data, logger)
}

// Extract parses an in-memory PDF. Pages that fail text extraction are
// skipped with a warning so one bad page does not sink the document; the
// error is non-nil only when the file cannot be parsed at all or yields no
// text anywhere.
func Extract(data []byte, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, common.NewAppError("PDF_ERROR", "cannot parse PDF", err)
	}

	pageCount := reader.NumPage()
	res := &Result{
		Pages:     make([]string, 0, pageCount),
		PageCount: pageCount,
		ByteSize:  int64(len(data)),
	}

	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("extract.page_failed", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		res.Pages = append(res.Pages, text)
	}

	if len(res.Pages) == 0 {
		return nil, common.NewAppError("PDF_ERROR", "no text could be extracted from PDF", nil)
	}
	return res, nil
}

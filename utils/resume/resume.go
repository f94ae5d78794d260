package resume

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Limits defines the validation limits for resume uploads
type Limits struct {
	MaxFileSizeMB int
	MaxPages      int
}

// DefaultLimits keeps resumes small: a placement resume longer than a
// few pages is almost certainly an upload mistake.
var DefaultLimits = Limits{
	MaxFileSizeMB: 5,
	MaxPages:      10,
}

// ValidationResult contains the result of resume validation
type ValidationResult struct {
	Valid     bool
	PageCount int
	FileSize  int64
	Error     string
}

// ValidateFile validates an uploaded resume against the given limits.
// A non-nil error means the file could not be read at all; validation
// failures are reported through the result.
func ValidateFile(file *multipart.FileHeader, limits Limits) (*ValidationResult, []byte, error) {
	result := &ValidationResult{
		FileSize: file.Size,
	}

	maxSize := int64(limits.MaxFileSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		result.Error = fmt.Sprintf("Resume exceeds maximum allowed size of %dMB", limits.MaxFileSizeMB)
		return result, nil, nil
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		result.Error = "Only PDF resumes are supported"
		return result, nil, nil
	}

	fileContent, err := file.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer fileContent.Close()

	content, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	ValidateBytes(content, limits, result)
	return result, content, nil
}

// ValidateBytes validates resume content in place
func ValidateBytes(content []byte, limits Limits, result *ValidationResult) {
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		result.Error = "Invalid PDF file: missing PDF header"
		return
	}

	pageCount, err := pageCount(content)
	if err != nil {
		result.Error = fmt.Sprintf("Failed to read PDF: %v", err)
		return
	}
	result.PageCount = pageCount

	if pageCount == 0 {
		result.Error = "PDF has no pages"
		return
	}
	if pageCount > limits.MaxPages {
		result.Error = fmt.Sprintf("Resume has %d pages, which exceeds the maximum of %d pages", pageCount, limits.MaxPages)
		return
	}

	result.Valid = true
}

// pageCount returns the number of pages in a PDF, stripping any trailing
// garbage after the last %%EOF marker first.
func pageCount(content []byte) (int, error) {
	content = trimAfterEOF(content)
	reader := bytes.NewReader(content)

	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF: %w", err)
	}

	return pdfReader.NumPage(), nil
}

func trimAfterEOF(content []byte) []byte {
	eofMarker := []byte("%%EOF")
	lastEOF := bytes.LastIndex(content, eofMarker)
	if lastEOF == -1 {
		return content
	}

	end := lastEOF + len(eofMarker)
	for end < len(content) && (content[end] == '\n' || content[end] == '\r') {
		end++
	}
	if end < len(content) {
		return content[:end]
	}
	return content
}

package resume

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"
)

func TestValidateFileSizeLimit(t *testing.T) {
	// Size and extension checks run before the file is ever opened, so a
	// bare header is enough here.
	header := &multipart.FileHeader{
		Filename: "resume.pdf",
		Size:     6 * 1024 * 1024,
	}

	result, content, err := ValidateFile(header, DefaultLimits)
	if err != nil {
		t.Fatalf("ValidateFile() error = %v", err)
	}
	if result.Valid {
		t.Error("oversized file should not be valid")
	}
	if !strings.Contains(result.Error, "maximum allowed size") {
		t.Errorf("Error = %q, want size message", result.Error)
	}
	if content != nil {
		t.Error("content should not be read for an oversized file")
	}
}

func TestValidateFileExtension(t *testing.T) {
	header := &multipart.FileHeader{
		Filename: "resume.docx",
		Size:     1024,
	}

	result, _, err := ValidateFile(header, DefaultLimits)
	if err != nil {
		t.Fatalf("ValidateFile() error = %v", err)
	}
	if result.Valid {
		t.Error("non-PDF file should not be valid")
	}
	if result.Error != "Only PDF resumes are supported" {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestValidateBytesMissingHeader(t *testing.T) {
	result := &ValidationResult{}
	ValidateBytes([]byte("this is not a pdf"), DefaultLimits, result)

	if result.Valid {
		t.Error("content without PDF header should not be valid")
	}
	if result.Error != "Invalid PDF file: missing PDF header" {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestValidateBytesUnparseable(t *testing.T) {
	result := &ValidationResult{}
	ValidateBytes([]byte("%PDF-1.7 but nothing else"), DefaultLimits, result)

	if result.Valid {
		t.Error("truncated PDF should not be valid")
	}
	if result.Error == "" {
		t.Error("expected a parse error message")
	}
}

func TestTrimAfterEOF(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			name: "no marker is untouched",
			in:   []byte("%PDF-1.7 content"),
			want: []byte("%PDF-1.7 content"),
		},
		{
			name: "trailing garbage is dropped",
			in:   []byte("%PDF-1.7 content %%EOF\ngarbage bytes"),
			want: []byte("%PDF-1.7 content %%EOF\n"),
		},
		{
			name: "clean ending is untouched",
			in:   []byte("%PDF-1.7 content %%EOF\n"),
			want: []byte("%PDF-1.7 content %%EOF\n"),
		},
		{
			name: "last marker wins",
			in:   []byte("%%EOF middle %%EOF\r\ntrailer junk"),
			want: []byte("%%EOF middle %%EOF\r\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trimAfterEOF(tt.in); !bytes.Equal(got, tt.want) {
				t.Errorf("trimAfterEOF() = %q, want %q", got, tt.want)
			}
		})
	}
}

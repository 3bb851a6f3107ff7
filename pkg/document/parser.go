package document

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// SupportedExtensions lists the upload formats the tutor can ingest.
var SupportedExtensions = []string{".pdf", ".txt", ".csv", ".md"}

// Supported reports whether the filename has an ingestable extension.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ExtractText extracts plain text from a supported document.
func ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractTextFromPDF(data)
	case ".txt", ".md":
		return normalizeWhitespace(string(data)), nil
	case ".csv":
		return extractTextFromCSV(data)
	default:
		return "", ErrUnsupportedFormat
	}
}

func extractTextFromPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	r, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

// extractTextFromCSV renders each record as "header: value" lines so rows stay
// meaningful as retrieval chunks.
func extractTextFromCSV(data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}
	header := records[0]
	var b strings.Builder
	for _, row := range records[1:] {
		for i, field := range row {
			name := ""
			if i < len(header) {
				name = strings.TrimSpace(header[i])
			}
			if name == "" {
				name = "column " + strconv.Itoa(i+1)
			}
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(strings.TrimSpace(field))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return normalizeWhitespace(b.String()), nil
}

func normalizeWhitespace(s string) string {
	// Collapse excessive whitespace and trim
	re := regexp.MustCompile(`[ \t\r\f\v]+`)
	s = re.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", " ")
	// Preserve newlines but collapse runs
	reN := regexp.MustCompile(`\n{2,}`)
	s = reN.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

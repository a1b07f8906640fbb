package services_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma593y/seeklyzer/internal/pipeline"
	"github.com/ma593y/seeklyzer/internal/services"
)

func TestExtractText_RejectsNonPDFExtension(t *testing.T) {
	parser := services.NewPDFParserService()

	_, err := parser.ExtractText("resume.docx")

	assert.ErrorIs(t, err, pipeline.ErrUnsupportedFormat)
}

func TestExtractTextFromBytes_RejectsNonPDFExtension(t *testing.T) {
	parser := services.NewPDFParserService()

	_, err := parser.ExtractTextFromBytes("resume.txt", []byte("plain text"))

	assert.ErrorIs(t, err, pipeline.ErrUnsupportedFormat)
}

func TestExtractTextFromBytes_CorruptDataFailsExtraction(t *testing.T) {
	parser := services.NewPDFParserService()

	_, err := parser.ExtractTextFromBytes("resume.pdf", []byte("%PDF-1.4 this is not a real pdf"))

	assert.ErrorIs(t, err, pipeline.ErrExtractionFailed)
}

func TestExtractText_MissingFileFailsExtraction(t *testing.T) {
	parser := services.NewPDFParserService()

	_, err := parser.ExtractText(filepath.Join(t.TempDir(), "absent.pdf"))

	assert.ErrorIs(t, err, pipeline.ErrExtractionFailed)
}

func TestExtractText_GarbageFileFailsExtraction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0644))

	parser := services.NewPDFParserService()

	_, err := parser.ExtractText(path)

	assert.ErrorIs(t, err, pipeline.ErrExtractionFailed)
}

// zeroPagePDF assembles a structurally valid PDF with an empty page tree,
// computing xref offsets as objects are appended.
func zeroPagePDF() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n",
	}

	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefPos)

	return buf.Bytes()
}

func TestExtractTextFromBytes_ZeroPagePDFHasNoText(t *testing.T) {
	parser := services.NewPDFParserService()

	_, err := parser.ExtractTextFromBytes("empty.pdf", zeroPagePDF())

	assert.ErrorIs(t, err, pipeline.ErrNoTextFound)
	assert.NotErrorIs(t, err, pipeline.ErrExtractionFailed)
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   \n\t ", ""},
		{"hello   world", "hello world"},
		{"  line one\n\nline two\t\tend  ", "line one line two end"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, services.CollapseWhitespace(tt.in))
	}
}

package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ma593y/seeklyzer/internal/pipeline"
)

type PDFParserService interface {
	ExtractText(filePath string) (*ExtractedText, error)
	ExtractTextFromBytes(filename string, data []byte) (*ExtractedText, error)
}

type ExtractedText struct {
	Text      string
	PageCount int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func (p *pdfParserService) ExtractText(filePath string) (*ExtractedText, error) {
	if ext := strings.ToLower(filepath.Ext(filePath)); ext != ".pdf" {
		return nil, fmt.Errorf("%w: %s", pipeline.ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrExtractionFailed, err)
	}

	return extract(data)
}

func (p *pdfParserService) ExtractTextFromBytes(filename string, data []byte) (*ExtractedText, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".pdf" {
		return nil, fmt.Errorf("%w: %s", pipeline.ErrUnsupportedFormat, ext)
	}

	return extract(data)
}

func extract(data []byte) (result *ExtractedText, err error) {
	// The pdf package panics on some corrupt inputs.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", pipeline.ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrExtractionFailed, err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep going with the remaining pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := CollapseWhitespace(textBuilder.String())
	if text == "" {
		return nil, fmt.Errorf("%w: %d pages scanned", pipeline.ErrNoTextFound, totalPage)
	}

	return &ExtractedText{
		Text:      text,
		PageCount: totalPage,
	}, nil
}

// CollapseWhitespace flattens all whitespace runs to a single space and
// trims the ends.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

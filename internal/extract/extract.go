package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-tailor/internal/apperr"
)

// Format is a supported resume document format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatText Format = "txt"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// Extensions lists the accepted file extensions, for error messages.
const Extensions = ".docx, .pdf, or .txt"

// DetectFormat maps a declared format (file name, extension or MIME type) to a Format.
func DetectFormat(declared string) (Format, error) {
	clean := strings.ToLower(strings.TrimSpace(declared))
	if clean == "" {
		return "", apperr.UnsupportedFormat("file format is required; use " + Extensions)
	}
	if strings.HasPrefix(clean, "application/") || strings.HasPrefix(clean, "text/") {
		switch strings.TrimSpace(strings.Split(clean, ";")[0]) {
		case mimePDF:
			return FormatPDF, nil
		case mimeDOCX:
			return FormatDOCX, nil
		case mimeText:
			return FormatText, nil
		}
		return "", apperr.UnsupportedFormat(fmt.Sprintf("unsupported file type: %s. Use %s", clean, Extensions))
	}

	ext := filepath.Ext(clean)
	if ext == "" {
		ext = "." + strings.TrimPrefix(clean, ".")
	}
	switch ext {
	case ".docx":
		return FormatDOCX, nil
	case ".pdf":
		return FormatPDF, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", apperr.UnsupportedFormat(fmt.Sprintf("unsupported file type: %s. Use %s", ext, Extensions))
	}
}

// Normalize converts an uploaded document into plain text.
// It fails with an unsupported-format error for unknown formats and an extraction error
// when the payload is corrupt or yields no text.
func Normalize(ctx context.Context, data []byte, declared string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	format, err := DetectFormat(declared)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	default:
		text = extractText(data)
	}
	if err != nil {
		return "", apperr.Extraction(fmt.Sprintf("could not read %s file", format), err)
	}
	if strings.TrimSpace(text) == "" {
		return "", apperr.Extraction(fmt.Sprintf("no text content found in %s file", format), nil)
	}
	return text, nil
}

func extractText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

func extractPDF(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty pdf data")
	}
	// The pdf package panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("pdf parse panic: %v", rec)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent())
}

// stripDocxXML flattens WordprocessingML into text, one line per paragraph,
// dropping empty paragraphs.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var (
		out  []string
		para strings.Builder
		inT  bool
	)
	flush := func() {
		if line := strings.TrimSpace(para.String()); line != "" {
			out = append(out, line)
		}
		para.Reset()
	}
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inT = true
			case "tab":
				para.WriteString("\t")
			}
		case xml.CharData:
			if inT {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inT = false
			case "p":
				flush()
			case "br":
				para.WriteString("\n")
			}
		}
	}
	flush()
	return strings.Join(out, "\n"), nil
}

// Package document turns uploaded resume files into plain text.
package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Kind is a supported document format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "text"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

const wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// DetectKind decides how to read an upload. The declared content type wins,
// then the file extension, then the bytes themselves.
func DetectKind(filename, contentType string, data []byte) (Kind, error) {
	if kind, ok := kindFromMIME(contentType); ok {
		return kind, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	case ".txt":
		return KindText, nil
	}

	detected := mimetype.Detect(data)
	for _, candidate := range []string{MIMEPDF, MIMEDOCX, MIMEText} {
		if detected.Is(candidate) {
			kind, _ := kindFromMIME(candidate)
			return kind, nil
		}
	}

	return "", &UnsupportedTypeError{Filename: filename, ContentType: contentType}
}

func kindFromMIME(contentType string) (Kind, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch mediaType {
	case MIMEPDF:
		return KindPDF, true
	case MIMEDOCX:
		return KindDOCX, true
	case MIMEText:
		return KindText, true
	}
	return "", false
}

// Extract detects the document kind and returns its text.
func Extract(filename, contentType string, data []byte) (string, error) {
	kind, err := DetectKind(filename, contentType, data)
	if err != nil {
		return "", err
	}
	return ExtractText(kind, data)
}

// ExtractText returns the text of a document of a known kind. Lines of the
// source document are kept as lines of the result.
func ExtractText(kind Kind, data []byte) (string, error) {
	switch kind {
	case KindText:
		if !utf8.Valid(data) {
			return "", &ReadError{Kind: kind, Err: errors.New("text is not valid UTF-8")}
		}
		return string(data), nil
	case KindPDF:
		return extractPDFText(data)
	case KindDOCX:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported document kind: %q", kind)
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ReadError{Kind: KindPDF, Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ReadError{Kind: KindPDF, Err: err}
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		textBuilder.WriteString(pageText(page.Content().Text))
	}
	if strings.TrimSpace(textBuilder.String()) != "" {
		return textBuilder.String(), nil
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", &ReadError{Kind: KindPDF, Err: err}
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", &ReadError{Kind: KindPDF, Err: err}
	}
	return buf.String(), nil
}

// A horizontal gap wider than this share of the font size separates words.
const pdfWordGap = 0.15

// pageText lays out the glyphs of one page in content order. A baseline
// change starts a new line; a whitespace glyph or a gap to the right of the
// previous glyph becomes a single space.
func pageText(glyphs []pdf.Text) string {
	var (
		b       strings.Builder
		started bool
		space   bool
		lastY   float64
		nextX   float64
		size    float64
	)
	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			space = started
			continue
		}
		if started {
			lineTolerance := math.Max(math.Max(size, g.FontSize)/2, 1)
			switch {
			case math.Abs(g.Y-lastY) > lineTolerance:
				b.WriteByte('\n')
			case space || g.X-nextX > math.Max(g.FontSize, 1)*pdfWordGap:
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
		started, space = true, false
		lastY, nextX, size = g.Y, g.X+g.W, g.FontSize
	}
	if started {
		b.WriteByte('\n')
	}
	return b.String()
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ReadError{Kind: KindDOCX, Err: err}
	}
	defer doc.Close()

	paragraphs, err := paragraphText(doc.Editable().GetContent())
	if err != nil {
		return "", &ReadError{Kind: KindDOCX, Err: err}
	}
	return strings.Join(paragraphs, "\n"), nil
}

// paragraphText walks WordprocessingML and returns the text of every
// non-blank w:p element, tables included.
func paragraphText(body string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(body))
	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				depth--
				if depth == 0 && strings.TrimSpace(current.String()) != "" {
					paragraphs = append(paragraphs, current.String())
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}

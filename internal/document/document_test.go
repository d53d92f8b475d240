package document

import (
	"errors"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/muhammadolammi/skillmatch/internal/document/documenttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		data        []byte
		want        Kind
	}{
		{name: "declared pdf", filename: "cv", contentType: "application/pdf", want: KindPDF},
		{name: "declared docx", filename: "cv", contentType: MIMEDOCX, want: KindDOCX},
		{name: "declared text with charset", filename: "cv", contentType: "text/plain; charset=utf-8", want: KindText},
		{name: "pdf extension", filename: "CV.PDF", contentType: "application/octet-stream", want: KindPDF},
		{name: "docx extension", filename: "resume.docx", want: KindDOCX},
		{name: "txt extension", filename: "resume.txt", want: KindText},
		{name: "sniffed pdf", filename: "upload", data: []byte("%PDF-1.4\n%âãÏÓ\n"), want: KindPDF},
		{name: "sniffed text", filename: "upload", data: []byte("Python developer with Docker"), want: KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectKind(tt.filename, tt.contentType, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectKind_Unsupported(t *testing.T) {
	_, err := DetectKind("photo.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "photo.png", unsupported.Filename)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestExtract_DOCX(t *testing.T) {
	data := documenttest.DOCX("Jane Doe", "", "Skills", "Python, Docker & Kubernetes")

	text, err := Extract("resume.docx", MIMEDOCX, data)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills\nPython, Docker & Kubernetes", text)
}

func TestExtract_PDF(t *testing.T) {
	data := documenttest.PDFLines("Jane Doe", "Skills", "Python", "Docker")

	text, err := Extract("resume.pdf", MIMEPDF, data)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills\nPython\nDocker\n", text)
}

func TestExtractText_PDFLayout(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "separate text blocks",
			content: "BT /F1 12 Tf 72 720 Td (Python) Tj ET\nBT /F1 12 Tf 72 700 Td (Docker) Tj ET",
			want:    "Python\nDocker\n",
		},
		{
			name:    "gap on one line",
			content: "BT /F1 12 Tf 72 720 Td (Python) Tj 60 0 Td (Docker) Tj ET",
			want:    "Python Docker\n",
		},
		{
			name:    "text matrix",
			content: "BT /F1 12 Tf 1 0 0 1 72 720 Tm (Git) Tj 1 0 0 1 72 700 Tm (Linux) Tj ET",
			want:    "Git\nLinux\n",
		},
		{
			name:    "next line operator",
			content: "BT /F1 12 Tf 14 TL 72 720 Td (AWS) Tj T* (GCP) Tj ET",
			want:    "AWS\nGCP\n",
		},
		{
			name:    "no text",
			content: "BT ET",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText(KindPDF, documenttest.PDF(tt.content))

			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestPageText(t *testing.T) {
	glyphs := []pdf.Text{
		{FontSize: 10, X: 72, Y: 700, W: 6, S: "G"},
		{FontSize: 10, X: 78, Y: 700, W: 5, S: "o"},
		{FontSize: 10, X: 83, Y: 700, W: 3, S: " "},
		{FontSize: 10, X: 86, Y: 700, W: 6, S: "S"},
		{FontSize: 10, X: 92, Y: 700, W: 6, S: "Q"},
		{FontSize: 10, X: 98, Y: 700, W: 5, S: "L"},
		{FontSize: 10, X: 72, Y: 688, W: 5, S: "R"},
		{FontSize: 10, X: 77, Y: 688, W: 5, S: "E"},
		{FontSize: 10, X: 90, Y: 688, W: 5, S: "S"},
		{FontSize: 10, X: 95, Y: 688, W: 5, S: "T"},
		{FontSize: 10, X: 72, Y: 676, W: 0, S: "\n"},
	}

	assert.Equal(t, "Go SQL\nRE ST\n", pageText(glyphs))
	assert.Empty(t, pageText(nil))
}

func TestExtract_Text(t *testing.T) {
	text, err := Extract("resume.txt", "", []byte("Go\nSQL"))

	require.NoError(t, err)
	assert.Equal(t, "Go\nSQL", text)
}

func TestExtractText_InvalidUTF8(t *testing.T) {
	_, err := ExtractText(KindText, []byte{0xff, 0xfe, 0xfd})

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, KindText, readErr.Kind)
}

func TestExtractText_BrokenDocuments(t *testing.T) {
	for _, kind := range []Kind{KindPDF, KindDOCX} {
		t.Run(string(kind), func(t *testing.T) {
			_, err := ExtractText(kind, []byte("definitely not a document"))

			var readErr *ReadError
			require.ErrorAs(t, err, &readErr)
			assert.Equal(t, kind, readErr.Kind)
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestExtractText_UnknownKind(t *testing.T) {
	_, err := ExtractText(Kind("rtf"), nil)
	assert.ErrorContains(t, err, "unsupported document kind")
}

func TestParagraphText(t *testing.T) {
	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Skills</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Git</w:t><w:tab/><w:t>Linux</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>AWS</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:t xml:space="preserve">   </w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got, err := paragraphText(body)

	require.NoError(t, err)
	assert.Equal(t, []string{"Skills", "Git\tLinux", "AWS"}, got)
}

func TestParagraphText_Malformed(t *testing.T) {
	_, err := paragraphText(`<w:document xmlns:w="x"><w:body>`)
	assert.Error(t, err)
}

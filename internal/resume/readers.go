package resume

import (
	"bytes"
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/lukasjarosch/go-docx"
)

const docxBody = "word/document.xml"

var (
	paragraphEndRe = regexp.MustCompile(`</w:p>|<w:br/>`)
	xmlTagRe       = regexp.MustCompile(`<[^>]+>`)
)

// readPDF returns the document text one row per line, pages separated by a
// newline.
func readPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return "", err
		}
		sb.WriteString("\n")
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// readDOCX returns the text of the main document part, one paragraph per
// line.
func readDOCX(data []byte) (string, error) {
	doc, err := docx.OpenBytes(data)
	if err != nil {
		return "", err
	}
	body := doc.GetFile(docxBody)
	if body == nil {
		return "", errors.New("docx: missing " + docxBody)
	}

	text := paragraphEndRe.ReplaceAllString(string(body), "\n")
	text = xmlTagRe.ReplaceAllString(text, "")
	return html.UnescapeString(text), nil
}

func readPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("text resume is not valid UTF-8")
	}
	return string(data), nil
}

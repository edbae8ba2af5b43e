// Package resume pulls best-effort contact details out of an uploaded
// resume. Extraction never fails: anything it cannot read degrades to a
// guess from the file name.
package resume

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mockinterview/backend/internal/domain/interview"
)

// File is an uploaded resume.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

const maxNameLen = 60

var (
	extRe       = regexp.MustCompile(`\.[^.]+$`)
	separatorRe = regexp.MustCompile(`[-_]`)
	nameCutRe   = regexp.MustCompile(`[,|\-]`)
)

type textReader func(data []byte) (string, error)

// Extractor reads resumes.
type Extractor struct {
	logger  *zap.Logger
	readers map[string]textReader
}

func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		logger: logger,
		readers: map[string]textReader{
			".pdf":  readPDF,
			".docx": readDOCX,
			".txt":  readPlain,
			".md":   readPlain,
		},
	}
}

// Extract returns whatever contact fields it can find in f.
func (e *Extractor) Extract(ctx context.Context, f File) interview.Contact {
	read, ok := e.reader(f)
	if !ok {
		return FromFilename(f.Name)
	}

	text, err := safeRead(read, f.Data)
	if err != nil {
		e.logger.Warn("resume parse failed, falling back to file name",
			zap.String("file", f.Name),
			zap.Error(err),
		)
		return FromFilename(f.Name)
	}
	if err := ctx.Err(); err != nil {
		return FromFilename(f.Name)
	}
	return ExtractFields(text)
}

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extByMediaType = map[string]string{
	MediaTypePDF:  ".pdf",
	MediaTypeDOCX: ".docx",
	"text/plain":  ".txt",
}

// reader picks the decoder by file extension, then by media type.
func (e *Extractor) reader(f File) (textReader, bool) {
	if read, ok := e.readers[strings.ToLower(filepath.Ext(f.Name))]; ok {
		return read, true
	}
	read, ok := e.readers[extByMediaType[f.MediaType]]
	return read, ok
}

// Uploadable reports whether f is a PDF or DOCX, judged by media type or
// extension.
func Uploadable(f File) bool {
	ext := strings.ToLower(filepath.Ext(f.Name))
	return f.MediaType == MediaTypePDF || f.MediaType == MediaTypeDOCX || ext == ".pdf" || ext == ".docx"
}

// Metadata describes f without keeping its content.
func Metadata(f File) *interview.ResumeMeta {
	return &interview.ResumeMeta{
		Name: f.Name,
		Type: f.MediaType,
		Size: int64(len(f.Data)),
	}
}

// safeRead turns a panicking decoder into an error. The PDF reader panics
// on some malformed documents.
func safeRead(read textReader, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return read(data)
}

// FromFilename guesses a name from the file name: extension dropped, dashes
// and underscores as spaces, first three words.
func FromFilename(name string) interview.Contact {
	base := extRe.ReplaceAllString(filepath.Base(name), "")
	parts := strings.Fields(separatorRe.ReplaceAllString(base, " "))
	if len(parts) > 3 {
		parts = parts[:3]
	}
	if len(parts) == 0 {
		return interview.Contact{}
	}
	guess := strings.Join(parts, " ")
	return interview.Contact{Name: &guess}
}

// ExtractFields finds the first email, the first phone number and a name
// guess in text. The name is the first non-empty line that is neither an
// email nor a phone line.
func ExtractFields(text string) interview.Contact {
	var c interview.Contact
	if email := interview.FindEmail(text); email != "" {
		c.Email = &email
	}
	if phone := strings.TrimSpace(interview.FindPhone(text)); phone != "" {
		c.Phone = &phone
	}

	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "@") || interview.FindPhone(line) != "" {
			continue
		}
		head := nameCutRe.Split(line, 2)[0]
		if name := titleCase(truncateRunes(head, maxNameLen)); name != "" {
			c.Name = &name
		}
		break
	}
	return c
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

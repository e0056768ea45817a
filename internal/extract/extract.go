package extract

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDOC  = "application/msword"

	// Non-data-URI payloads are treated as already-plain text and truncated.
	maxPlainTextLen = 10000
)

// ErrExtractionFailed marks resume payloads that could not be decoded at all.
// Callers must check for it with errors.Is before scoring; an empty string
// with a nil error means the document simply had no text.
var ErrExtractionFailed = errors.New("resume text extraction failed")

// FromResumeData converts a stored resume payload into plain text.
// The payload is either raw text or a data-URI string
// ("data:<mime>;base64,<payload>"). Parse failures never propagate as
// panics; they surface as ErrExtractionFailed.
func FromResumeData(data string) (string, error) {
	if !strings.HasPrefix(data, "data:") {
		if len(data) > maxPlainTextLen {
			return data[:maxPlainTextLen], nil
		}
		return data, nil
	}

	mimeType, payload, err := splitDataURI(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	switch {
	case mimeType == mimePDF:
		text, err := fromPDF(payload)
		if err != nil {
			return "", fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, err)
		}
		return text, nil
	case mimeType == mimeDOCX || mimeType == mimeDOC:
		text, err := fromDOCX(payload)
		if err != nil {
			return "", fmt.Errorf("%w: docx: %v", ErrExtractionFailed, err)
		}
		return text, nil
	case mimeType == "text/plain":
		return string(payload), nil
	default:
		return bestEffort(mimeType, payload), nil
	}
}

// bestEffort handles well-formed data URIs with unrecognized MIME types:
// try the PDF parser, then the DOCX parser, then decode permissively.
func bestEffort(mimeType string, payload []byte) string {
	if strings.Contains(mimeType, "pdf") {
		if text, err := fromPDF(payload); err == nil {
			return text
		}
	}
	if strings.Contains(mimeType, "word") || strings.Contains(mimeType, "doc") {
		if text, err := fromDOCX(payload); err == nil {
			return text
		}
	}
	if text, err := fromPDF(payload); err == nil {
		return text
	}
	if text, err := fromDOCX(payload); err == nil {
		return text
	}
	return strings.ToValidUTF8(string(payload), "")
}

func splitDataURI(data string) (mimeType string, payload []byte, err error) {
	comma := strings.Index(data, ",")
	if comma < 0 {
		return "", nil, errors.New("malformed data URI: no payload separator")
	}
	header := data[len("data:"):comma]
	mimeType = strings.ToLower(strings.TrimSpace(strings.Split(header, ";")[0]))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data[comma+1:]))
	if err != nil {
		return "", nil, fmt.Errorf("base64 decode: %w", err)
	}
	return mimeType, decoded, nil
}

// fromPDF renders each page's text content and concatenates in page order.
// The pdf library panics on some malformed inputs, so parse failures of any
// kind are converted into a plain error here.
func fromPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// fromDOCX concatenates paragraph texts in document order, newline-joined.
func fromDOCX(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("docx parse panic: %v", r)
		}
	}()

	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// Package encode turns stored attachments into transport-ready request
// parts: text-like files become delineated text parts, everything else is
// carried inline as base64 with its mime type.
package encode

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"geovision-backend/internal/inputs"
	"geovision-backend/internal/llm"
	"geovision-backend/internal/shared/storage/object"
)

// Inline payloads above this size are not accepted by the backend; oversized
// PDFs fall back to extracted text instead.
const defaultMaxInlineBytes = 20 << 20

// Error reports a single attachment that could not be encoded. The file name
// always survives into the message so the failure is attributable.
type Error struct {
	FileName string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("encode attachment %q: %v", e.FileName, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var encErr *Error
	ok := errors.As(err, &encErr)
	return encErr, ok
}

// Encoder resolves attachments against the object store.
type Encoder struct {
	Store          object.ObjectStore
	MaxInlineBytes int64
}

// NewEncoder constructs an Encoder with the default inline size cap.
func NewEncoder(store object.ObjectStore) *Encoder {
	return &Encoder{Store: store, MaxInlineBytes: defaultMaxInlineBytes}
}

// Encode reads the attachment's bytes and produces exactly one Part.
// Text-like files (declared text/* mime or csv/json/md/txt extension) are
// decoded and prefixed with a marker naming the source file; all other files
// become base64 inline data. PDFs over the inline cap degrade to extracted
// text. Any read or decode failure is returned as *Error.
func (e *Encoder) Encode(ctx context.Context, att inputs.Attachment) (llm.Part, error) {
	data, err := e.read(ctx, att.StorageKey)
	if err != nil {
		return nil, &Error{FileName: att.FileName, Err: err}
	}

	if inputs.IsTextLike(att.MimeType, att.FileName) {
		if !utf8.Valid(data) {
			return nil, &Error{FileName: att.FileName, Err: fmt.Errorf("unsupported text encoding")}
		}
		return llm.TextPart{Text: delineate(att.FileName, string(data))}, nil
	}

	maxInline := e.MaxInlineBytes
	if maxInline <= 0 {
		maxInline = defaultMaxInlineBytes
	}
	if att.Kind == inputs.KindPDF && int64(len(data)) > maxInline {
		text, err := extractPDFText(data)
		if err != nil {
			return nil, &Error{FileName: att.FileName, Err: fmt.Errorf("pdf text fallback: %w", err)}
		}
		return llm.TextPart{Text: delineate(att.FileName, text)}, nil
	}

	return llm.BinaryPart{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: att.MimeType,
	}, nil
}

func (e *Encoder) read(ctx context.Context, storageKey string) ([]byte, error) {
	body, err := e.Store.Open(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return data, nil
}

func delineate(fileName, content string) string {
	return fmt.Sprintf("--- Attachment: %s ---\n%s", fileName, content)
}

func extractPDFText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package encode

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"geovision-backend/internal/inputs"
	"geovision-backend/internal/llm"
	"geovision-backend/internal/shared/storage/object"
	"geovision-backend/internal/shared/storage/object/local"
)

func newTestStore(t *testing.T) object.ObjectStore {
	t.Helper()
	return local.New(t.TempDir())
}

func putObject(t *testing.T, store object.ObjectStore, key string, data []byte) {
	t.Helper()
	if _, err := store.SaveWithKey(context.Background(), key, "", bytes.NewReader(data)); err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
}

func TestEncodeTextAttachment(t *testing.T) {
	store := newTestStore(t)
	content := "sample,Au_ppm\nGX-01,0.35\n"
	putObject(t, store, "owner/assays.csv", []byte(content))

	enc := NewEncoder(store)
	part, err := enc.Encode(context.Background(), inputs.Attachment{
		ID:         "a1",
		FileName:   "assays.csv",
		MimeType:   "text/csv",
		Kind:       inputs.KindText,
		StorageKey: "owner/assays.csv",
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	text, ok := part.(llm.TextPart)
	if !ok {
		t.Fatalf("expected TextPart, got %T", part)
	}
	if !strings.Contains(text.Text, "assays.csv") {
		t.Errorf("text part should name the source file, got %q", text.Text)
	}
	if !strings.Contains(text.Text, content) {
		t.Errorf("text part should carry file content, got %q", text.Text)
	}
}

func TestEncodeBinaryAttachment(t *testing.T) {
	store := newTestStore(t)
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	putObject(t, store, "owner/outcrop.png", payload)

	enc := NewEncoder(store)
	part, err := enc.Encode(context.Background(), inputs.Attachment{
		ID:         "a2",
		FileName:   "outcrop.png",
		MimeType:   "image/png",
		Kind:       inputs.KindImage,
		StorageKey: "owner/outcrop.png",
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	bin, ok := part.(llm.BinaryPart)
	if !ok {
		t.Fatalf("expected BinaryPart, got %T", part)
	}
	if bin.MimeType != "image/png" {
		t.Errorf("mime type = %q, want image/png", bin.MimeType)
	}
	decoded, err := base64.StdEncoding.DecodeString(bin.Data)
	if err != nil {
		t.Fatalf("data is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("decoded payload does not round-trip")
	}
}

func TestEncodeInvalidTextEncoding(t *testing.T) {
	store := newTestStore(t)
	putObject(t, store, "owner/notes.txt", []byte{0xff, 0xfe, 0xfd})

	enc := NewEncoder(store)
	_, err := enc.Encode(context.Background(), inputs.Attachment{
		ID:         "a3",
		FileName:   "notes.txt",
		MimeType:   "text/plain",
		Kind:       inputs.KindText,
		StorageKey: "owner/notes.txt",
	})
	if err == nil {
		t.Fatal("expected encoding error for invalid utf-8")
	}
	encErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if encErr.FileName != "notes.txt" {
		t.Errorf("error file name = %q, want notes.txt", encErr.FileName)
	}
	if !strings.Contains(err.Error(), "notes.txt") {
		t.Errorf("error message should name the file, got %q", err.Error())
	}
}

func TestEncodeMissingObject(t *testing.T) {
	store := newTestStore(t)
	enc := NewEncoder(store)

	_, err := enc.Encode(context.Background(), inputs.Attachment{
		ID:         "a4",
		FileName:   "ghost.pdf",
		MimeType:   "application/pdf",
		Kind:       inputs.KindPDF,
		StorageKey: "owner/ghost.pdf",
	})
	if err == nil {
		t.Fatal("expected error for missing object")
	}
	var encErr *Error
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if encErr.FileName != "ghost.pdf" {
		t.Errorf("error file name = %q, want ghost.pdf", encErr.FileName)
	}
}

func TestEncodeOversizedNonPDFStaysInline(t *testing.T) {
	store := newTestStore(t)
	payload := bytes.Repeat([]byte{0xab}, 64)
	putObject(t, store, "owner/scene.tif", payload)

	enc := &Encoder{Store: store, MaxInlineBytes: 16}
	part, err := enc.Encode(context.Background(), inputs.Attachment{
		ID:         "a5",
		FileName:   "scene.tif",
		MimeType:   "image/tiff",
		Kind:       inputs.KindImage,
		StorageKey: "owner/scene.tif",
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, ok := part.(llm.BinaryPart); !ok {
		t.Fatalf("expected BinaryPart, got %T", part)
	}
}

package gemini

import (
	"context"
	"encoding/base64"
	"testing"

	"geovision-backend/internal/llm"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(context.Background(), "", "gemini-2.5-flash"); err == nil {
		t.Error("empty api key should be rejected")
	}
	if _, err := NewClient(context.Background(), "key", ""); err == nil {
		t.Error("empty model should be rejected")
	}
}

func TestToGenaiPart(t *testing.T) {
	p, err := toGenaiPart(llm.TextPart{Text: "hello"})
	if err != nil {
		t.Fatalf("text part: %v", err)
	}
	if p.Text != "hello" {
		t.Errorf("text = %q", p.Text)
	}

	raw := []byte{1, 2, 3}
	p, err = toGenaiPart(llm.BinaryPart{
		Data:     base64.StdEncoding.EncodeToString(raw),
		MimeType: "image/png",
	})
	if err != nil {
		t.Fatalf("binary part: %v", err)
	}
	if p.InlineData == nil || p.InlineData.MIMEType != "image/png" {
		t.Fatalf("inline data = %+v", p.InlineData)
	}
	if string(p.InlineData.Data) != string(raw) {
		t.Error("inline data should be decoded bytes")
	}

	if _, err := toGenaiPart(llm.BinaryPart{Data: "not base64!!!", MimeType: "image/png"}); err == nil {
		t.Error("invalid base64 should be rejected")
	}
}

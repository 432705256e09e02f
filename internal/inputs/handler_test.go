package inputs

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"geovision-backend/internal/shared/storage/object/local"
)

type testSessions struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func (s *testSessions) StoreFor(sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stores == nil {
		s.stores = make(map[string]*Store)
	}
	if st, ok := s.stores[sessionID]; ok {
		return st
	}
	st := NewStore()
	s.stores[sessionID] = st
	return st
}

func newTestRouter(t *testing.T) (*gin.Engine, *testSessions) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := &testSessions{}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("sessionId", "s1")
		c.Next()
	})
	NewHandler(NewService(local.New(t.TempDir())), sessions).RegisterRoutes(r.Group("/api/v1"))
	return r, sessions
}

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestHandlerSetText(t *testing.T) {
	r, sessions := newTestRouter(t)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/inputs/field/text",
		bytes.NewBufferString(`{"text":"sheeted quartz veins"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("set text: %d %s", resp.Code, resp.Body.String())
	}
	if got := sessions.StoreFor("s1").Text(CategoryField); got != "sheeted quartz veins" {
		t.Errorf("stored text = %q", got)
	}
}

func TestHandlerSetTextUnknownCategory(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/inputs/seismic/text",
		bytes.NewBufferString(`{"text":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("unknown category: %d, want 400", resp.Code)
	}
}

func TestHandlerUploadAndSnapshot(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := multipartBody(t, "files", "assays.csv", []byte("sample,Au_ppm\n"))
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inputs/geochemistry/attachments", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Attachments []Attachment `json:"attachments"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal upload response: %v", err)
	}
	if len(created.Attachments) != 1 || created.Attachments[0].FileName != "assays.csv" {
		t.Fatalf("attachments = %+v", created.Attachments)
	}

	resp = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/inputs", nil)
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("snapshot: %d", resp.Code)
	}

	var snap struct {
		Categories map[string]struct {
			Text        string       `json:"text"`
			Attachments []Attachment `json:"attachments"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if len(snap.Categories) != 5 {
		t.Errorf("snapshot categories = %d, want 5", len(snap.Categories))
	}
	if got := len(snap.Categories["geochemistry"].Attachments); got != 1 {
		t.Errorf("geochemistry attachments = %d, want 1", got)
	}
}

func TestHandlerRemoveMissingAttachment(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/inputs/field/attachments/nope", nil)
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Errorf("remove missing: %d, want 404", resp.Code)
	}
}

func TestHandlerClear(t *testing.T) {
	r, sessions := newTestRouter(t)
	sessions.StoreFor("s1").SetText(CategoryField, "notes")

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inputs/clear", nil)
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("clear: %d", resp.Code)
	}
	if sessions.StoreFor("s1").Text(CategoryField) != "" {
		t.Error("text should be cleared")
	}
}

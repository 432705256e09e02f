package inputs

import (
	"path/filepath"
	"strings"
	"time"
)

// Category identifies one of the five observational domains. The set is
// closed and the declaration order is the canonical ordering used everywhere
// a request payload or summary is assembled.
type Category string

const (
	CategoryField         Category = "field"
	CategoryHandSpecimen  Category = "handSpecimen"
	CategoryMicroscopy    Category = "microscopy"
	CategoryGeochemistry  Category = "geochemistry"
	CategoryRemoteSensing Category = "remoteSensing"
)

// Categories returns the five categories in canonical order.
func Categories() []Category {
	return []Category{
		CategoryField,
		CategoryHandSpecimen,
		CategoryMicroscopy,
		CategoryGeochemistry,
		CategoryRemoteSensing,
	}
}

// ParseCategory validates a raw category string.
func ParseCategory(raw string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == strings.TrimSpace(raw) {
			return c, true
		}
	}
	return "", false
}

// Kind classifies an attachment for preview and encoding decisions.
type Kind string

const (
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"
	KindText  Kind = "text"
	KindOther Kind = "other"
)

var textExtensions = map[string]struct{}{
	".csv":  {},
	".json": {},
	".md":   {},
	".txt":  {},
}

// ClassifyKind derives the attachment kind from the mime type, falling back
// to the file extension for text-like files served with a generic mime type.
func ClassifyKind(mimeType, fileName string) Kind {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch {
	case strings.HasPrefix(clean, "image/"):
		return KindImage
	case clean == "application/pdf":
		return KindPDF
	case strings.HasPrefix(clean, "text/"):
		return KindText
	}
	if _, ok := textExtensions[strings.ToLower(filepath.Ext(fileName))]; ok {
		return KindText
	}
	return KindOther
}

// IsTextLike reports whether an attachment should be decoded as text when it
// is turned into a request part.
func IsTextLike(mimeType, fileName string) bool {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if strings.HasPrefix(clean, "text/") {
		return true
	}
	_, ok := textExtensions[strings.ToLower(filepath.Ext(fileName))]
	return ok
}

// Attachment is one stored file pending inclusion in an analysis request.
// PreviewKey is set only for images and owns exactly one derived preview
// object in the object store.
type Attachment struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	Kind       Kind      `json:"kind"`
	StorageKey string    `json:"-"`
	PreviewKey string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Snapshot is an immutable copy of the store contents taken at submission
// time. Later edits to the live store never reach a snapshot.
type Snapshot struct {
	Texts       map[Category]string
	Attachments map[Category][]Attachment
}

// Text returns the snapshot text for a category (empty when unset).
func (s Snapshot) Text(c Category) string { return s.Texts[c] }

// AllAttachments returns every attachment in canonical category order and
// insertion order within each category.
func (s Snapshot) AllAttachments() []Attachment {
	var out []Attachment
	for _, c := range Categories() {
		out = append(out, s.Attachments[c]...)
	}
	return out
}

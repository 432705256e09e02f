package inputs

import (
	"testing"
)

func att(id, name string) Attachment {
	return Attachment{ID: id, FileName: name, MimeType: "image/png", Kind: KindImage}
}

func TestSetTextLastWriteWins(t *testing.T) {
	store := NewStore()
	store.SetText(CategoryField, "first")
	store.SetText(CategoryField, "second")
	if got := store.Text(CategoryField); got != "second" {
		t.Errorf("Text = %q, want second", got)
	}
}

func TestAddSkipsDuplicateIDsAcrossCategories(t *testing.T) {
	store := NewStore()
	store.Add(CategoryField, att("a1", "one.png"))
	store.Add(CategoryMicroscopy, att("a1", "dup.png"), att("a2", "two.png"))

	if got := len(store.Attachments(CategoryField)); got != 1 {
		t.Errorf("field attachments = %d, want 1", got)
	}
	micro := store.Attachments(CategoryMicroscopy)
	if len(micro) != 1 || micro[0].ID != "a2" {
		t.Errorf("microscopy attachments = %+v, want only a2", micro)
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	store := NewStore()
	store.Add(CategoryField, att("a1", "1"), att("a2", "2"), att("a3", "3"))

	removed, ok := store.Remove(CategoryField, "a2")
	if !ok || removed.ID != "a2" {
		t.Fatalf("Remove = %+v, %v", removed, ok)
	}

	list := store.Attachments(CategoryField)
	if len(list) != 2 || list[0].ID != "a1" || list[1].ID != "a3" {
		t.Errorf("order after removal = %+v, want [a1 a3]", list)
	}

	if _, ok := store.Remove(CategoryField, "a2"); ok {
		t.Error("second removal of same id should be a no-op")
	}
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	store := NewStore()
	store.Add(CategoryField, att("a1", "1"))
	if _, ok := store.Remove(CategoryGeochemistry, "a1"); ok {
		t.Error("removing from the wrong category should not match")
	}
	if got := len(store.Attachments(CategoryField)); got != 1 {
		t.Errorf("field attachments = %d, want 1", got)
	}
}

func TestClearReturnsEverythingOnce(t *testing.T) {
	store := NewStore()
	store.SetText(CategoryField, "notes")
	store.Add(CategoryField, att("a1", "1"))
	store.Add(CategoryRemoteSensing, att("a2", "2"))

	removed := store.Clear()
	if len(removed) != 2 {
		t.Fatalf("Clear removed %d attachments, want 2", len(removed))
	}
	if store.Text(CategoryField) != "" {
		t.Error("text should be reset after Clear")
	}
	if again := store.Clear(); len(again) != 0 {
		t.Errorf("second Clear removed %d attachments, want 0", len(again))
	}

	// ids are free again after clear
	store.Add(CategoryField, att("a1", "1"))
	if got := len(store.Attachments(CategoryField)); got != 1 {
		t.Errorf("re-add after clear: attachments = %d, want 1", got)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	store := NewStore()
	store.SetText(CategoryGeochemistry, "Au 0.3 ppm")
	store.Add(CategoryField, att("a1", "1"))

	snap := store.Snapshot()
	store.SetText(CategoryGeochemistry, "changed")
	store.Add(CategoryField, att("a2", "2"))
	store.Remove(CategoryField, "a1")

	if got := snap.Text(CategoryGeochemistry); got != "Au 0.3 ppm" {
		t.Errorf("snapshot text mutated: %q", got)
	}
	if got := len(snap.Attachments[CategoryField]); got != 1 {
		t.Errorf("snapshot attachments mutated: %d", got)
	}
}

func TestAllAttachmentsCanonicalOrder(t *testing.T) {
	store := NewStore()
	store.Add(CategoryRemoteSensing, att("r1", "r"))
	store.Add(CategoryField, att("f1", "f"), att("f2", "f2"))
	store.Add(CategoryGeochemistry, att("g1", "g"))

	all := store.Snapshot().AllAttachments()
	want := []string{"f1", "f2", "g1", "r1"}
	if len(all) != len(want) {
		t.Fatalf("AllAttachments len = %d, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, all[i].ID, id)
		}
	}
}

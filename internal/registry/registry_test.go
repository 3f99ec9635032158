package registry

import (
	"context"
	"errors"
	"testing"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { reg.Close() })
	return reg
}

func TestUploadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	reg := openTestRegistry(t)

	first, existed, err := reg.Upload(ctx, "Guía HTA", "HTA", "contenido de la guía")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if existed {
		t.Error("first upload reported as existing")
	}

	second, existed, err := reg.Upload(ctx, "Guía HTA", "HTA", "contenido de la guía")
	if err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	if !existed {
		t.Error("second upload not reported as existing")
	}
	if first.ID != second.ID {
		t.Errorf("ids differ: %s vs %s", first.ID, second.ID)
	}

	docs, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("expected 1 stored document, got %d", len(docs))
	}
}

func TestUploadRejectsBlankFields(t *testing.T) {
	ctx := context.Background()
	reg := openTestRegistry(t)

	if _, _, err := reg.Upload(ctx, "  ", "HTA", "contenido"); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("blank title: got %v, want ErrInvalidDocument", err)
	}
	if _, _, err := reg.Upload(ctx, "Guía", "HTA", "\n\t "); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("blank content: got %v, want ErrInvalidDocument", err)
	}
}

func TestGetUnknownID(t *testing.T) {
	ctx := context.Background()
	reg := openTestRegistry(t)

	if _, err := reg.Get(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMarkIndexed(t *testing.T) {
	ctx := context.Background()
	reg := openTestRegistry(t)

	doc, _, err := reg.Upload(ctx, "Guía DMT2", "DIABETES", "contenido de diabetes")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.Indexed() {
		t.Error("new document should not be indexed")
	}

	if err := reg.MarkIndexed(ctx, doc.ID); err != nil {
		t.Fatalf("MarkIndexed: %v", err)
	}

	got, err := reg.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Indexed() {
		t.Error("document should be marked indexed")
	}

	if err := reg.MarkIndexed(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

package chunker

import (
	"strings"
	"testing"
)

func TestSplitRejectsInvalidParams(t *testing.T) {
	if _, err := Split("texto", 0, 0); err == nil {
		t.Error("expected error for size 0")
	}
	if _, err := Split("texto", -5, 0); err == nil {
		t.Error("expected error for negative size")
	}
	if _, err := Split("texto", 10, 10); err == nil {
		t.Error("expected error for overlap == size")
	}
	if _, err := Split("texto", 10, -1); err == nil {
		t.Error("expected error for negative overlap")
	}
}

func TestSplitEmptyText(t *testing.T) {
	spans, err := Split("", 100, 10)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("expected no spans for empty text, got %d", len(spans))
	}
}

func TestSplitShortTextSinglePiece(t *testing.T) {
	spans, err := Split("presión arterial", 100, 10)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(spans) != 1 || spans[0] != "presión arterial" {
		t.Errorf("expected the text back as one span, got %#v", spans)
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("La meta de presión arterial es 140/90 mmHg.\n\n", 40)

	first, err := Split(text, 120, 20)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	second, err := Split(text, 120, 20)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("span %d differs", i)
		}
	}
}

func TestSplitSpanBounds(t *testing.T) {
	text := strings.Repeat("control glucémico y seguimiento del paciente ", 60)
	size, overlap := 90, 15

	spans, err := Split(text, size, overlap)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(spans) < 2 {
		t.Fatalf("expected multiple spans, got %d", len(spans))
	}
	for i, s := range spans {
		if s == "" {
			t.Errorf("span %d is empty", i)
		}
		if n := len([]rune(s)); n > size {
			t.Errorf("span %d has %d runes, exceeds size %d", i, n, size)
		}
	}
}

func TestSplitReconstructsOriginal(t *testing.T) {
	text := strings.Repeat("El tratamiento inicial recomendado es la metformina en monoterapia. ", 30)
	overlap := 10

	spans, err := Split(text, 80, overlap)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	rebuilt := spans[0]
	for _, s := range spans[1:] {
		rebuilt += string([]rune(s)[overlap:])
	}
	if rebuilt != text {
		t.Error("concatenation with overlap removed does not reconstruct the original")
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	text := "Primer párrafo sobre diagnóstico.\n\nSegundo párrafo sobre tratamiento farmacológico inicial."

	spans, err := Split(text, 60, 0)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(spans) < 2 {
		t.Fatalf("expected a split, got %d spans", len(spans))
	}
	if !strings.HasSuffix(spans[0], "\n\n") {
		t.Errorf("expected first span to end at the paragraph break, got %q", spans[0])
	}
}

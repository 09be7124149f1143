package layout

import (
	"testing"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// Helper to create a layout element
func makeElement(id int, class model.ClassLabel, x1, y1, x2, y2 float64) model.LayoutElement {
	return model.LayoutElement{
		ID:                 id,
		Class:              class,
		BBox:               model.NewBBox(x1, y1, x2, y2),
		DetectorConfidence: 0.9,
	}
}

// Helper to create an anchor element with OCR text
func makeAnchor(id int, x1, y1 float64, text string) model.LayoutElement {
	elem := makeElement(id, model.ClassQuestionNumber, x1, y1, x1+40, y1+30)
	return elem.WithOCR(text, 0.95)
}

func checkPartition(t *testing.T, columns []model.ColumnRange, pageWidth float64) {
	t.Helper()
	if len(columns) == 0 {
		t.Fatal("expected at least one column range")
	}
	if columns[0].XStart != 0 {
		t.Errorf("first column starts at %v, want 0", columns[0].XStart)
	}
	if columns[len(columns)-1].XEnd != pageWidth {
		t.Errorf("last column ends at %v, want %v", columns[len(columns)-1].XEnd, pageWidth)
	}
	for i, col := range columns {
		if col.Index != i {
			t.Errorf("column %d has index %d", i, col.Index)
		}
		if col.XStart >= col.XEnd {
			t.Errorf("column %d is empty or inverted: [%v, %v)", i, col.XStart, col.XEnd)
		}
		if i > 0 && columns[i-1].XEnd != col.XStart {
			t.Errorf("gap or overlap between column %d and %d: %v vs %v",
				i-1, i, columns[i-1].XEnd, col.XStart)
		}
	}
}

func TestColumnDetector_NoAnchors(t *testing.T) {
	detector := NewColumnDetector()

	columns := detector.Detect(nil, 1200)

	if len(columns) != 1 {
		t.Fatalf("expected 1 column for zero anchors, got %d", len(columns))
	}
	checkPartition(t, columns, 1200)
}

func TestColumnDetector_SingleAnchor(t *testing.T) {
	detector := NewColumnDetector()

	columns := detector.Detect([]float64{80}, 1200)

	if len(columns) != 1 {
		t.Fatalf("expected 1 column for a single anchor, got %d", len(columns))
	}
	checkPartition(t, columns, 1200)
}

func TestColumnDetector_SingleColumn(t *testing.T) {
	detector := NewColumnDetector()

	// Four anchors hugging the same left edge: no gap reaches the
	// adaptive threshold, so there must be no false split.
	columns := detector.Detect([]float64{50, 52, 48, 50}, 1200)

	if len(columns) != 1 {
		t.Fatalf("expected 1 column, got %d", len(columns))
	}
	checkPartition(t, columns, 1200)
}

func TestColumnDetector_TwoColumns(t *testing.T) {
	detector := NewColumnDetector()

	// Anchors at x=50 and x=650 on a 1200px page. The adaptive gap is
	// clamp(120, 50, 800) = 120, so the 600px gap splits the page with a
	// boundary at the midpoint 350.
	columns := detector.Detect([]float64{50, 50, 650, 650}, 1200)

	if len(columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(columns))
	}
	checkPartition(t, columns, 1200)

	if columns[0].XEnd != 350 {
		t.Errorf("boundary at %v, want 350", columns[0].XEnd)
	}
}

func TestColumnDetector_ThreeColumns(t *testing.T) {
	detector := NewColumnDetector()

	columns := detector.Detect([]float64{50, 450, 850}, 1200)

	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(columns))
	}
	checkPartition(t, columns, 1200)
}

func TestColumnDetector_MarginGapIgnored(t *testing.T) {
	config := DefaultColumnConfig()
	config.MaxGap = 400
	detector := NewColumnDetectorWithConfig(config)

	// The 600px gap exceeds MaxGap and is treated as a page margin
	// artifact, not a column gutter.
	columns := detector.Detect([]float64{50, 650}, 1200)

	if len(columns) != 1 {
		t.Fatalf("expected 1 column when the gap exceeds MaxGap, got %d", len(columns))
	}
}

func TestColumnDetector_AdaptiveGapClamping(t *testing.T) {
	detector := NewColumnDetector()

	tests := []struct {
		name      string
		pageWidth float64
		want      float64
	}{
		{"clamped to MinGap", 300, 50},
		{"proportional", 1200, 120},
		{"clamped to MaxGap", 10000, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detector.AdaptiveGap(tt.pageWidth); got != tt.want {
				t.Errorf("AdaptiveGap(%v) = %v, want %v", tt.pageWidth, got, tt.want)
			}
		})
	}
}

func TestColumnDetector_Deterministic(t *testing.T) {
	detector := NewColumnDetector()
	xs := []float64{650, 50, 450, 50, 650}

	first := detector.Detect(xs, 1200)
	second := detector.Detect(xs, 1200)

	if len(first) != len(second) {
		t.Fatalf("column counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("column %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestColumnFor(t *testing.T) {
	columns := []model.ColumnRange{
		{Index: 0, XStart: 0, XEnd: 300},
		{Index: 1, XStart: 300, XEnd: 600},
	}

	tests := []struct {
		name string
		bbox model.BBox
		want int
	}{
		{"fully left", model.NewBBox(50, 0, 150, 30), 0},
		{"fully right", model.NewBBox(350, 0, 450, 30), 1},
		{"straddling, majority left", model.NewBBox(100, 0, 350, 30), 0},
		{"straddling, majority right", model.NewBBox(250, 0, 550, 30), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColumnFor(columns, tt.bbox); got != tt.want {
				t.Errorf("ColumnFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColumnFor_NoColumns(t *testing.T) {
	if got := ColumnFor(nil, model.NewBBox(0, 0, 10, 10)); got != 0 {
		t.Errorf("ColumnFor with no columns = %d, want 0", got)
	}
}

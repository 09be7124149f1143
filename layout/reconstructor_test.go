package layout

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// singleColumnPage is four numbered questions stacked in one column, each
// followed by a body text block. Input order is shuffled on purpose.
func singleColumnPage() []model.LayoutElement {
	return []model.LayoutElement{
		makeAnchor(3, 50, 250, "3."),
		makeElement(13, model.ClassQuestionText, 100, 250, 500, 290),
		makeAnchor(1, 50, 50, "1."),
		makeElement(11, model.ClassQuestionText, 100, 50, 500, 90),
		makeAnchor(4, 50, 350, "4."),
		makeElement(14, model.ClassQuestionText, 100, 350, 500, 390),
		makeAnchor(2, 50, 150, "2."),
		makeElement(12, model.ClassQuestionText, 100, 150, 500, 190),
	}
}

// twoColumnPage is the classic failure case for naive top-to-bottom sorting:
// questions 1-2 in the left column, 3-4 in the right, with the rows of the
// two columns interleaved vertically.
func twoColumnPage() []model.LayoutElement {
	return []model.LayoutElement{
		makeAnchor(1, 50, 50, "1."),
		makeAnchor(3, 650, 50, "3."),
		makeAnchor(2, 50, 400, "2."),
		makeAnchor(4, 650, 400, "4."),
		makeElement(11, model.ClassQuestionText, 100, 50, 540, 90),
		makeElement(13, model.ClassQuestionText, 700, 50, 1140, 90),
		makeElement(12, model.ClassQuestionText, 100, 400, 540, 440),
		makeElement(14, model.ClassQuestionText, 700, 400, 1140, 440),
	}
}

func checkGroupOrder(t *testing.T, doc *model.StructuredDocument, want []int) {
	t.Helper()
	if doc.GroupCount() != len(want) {
		t.Fatalf("GroupCount() = %d, want %d", doc.GroupCount(), len(want))
	}
	for i, id := range want {
		if got := doc.Groups[i].Anchor.Element.ID; got != id {
			t.Fatalf("group %d anchor id = %d, want %d", i, got, id)
		}
	}
}

func TestReconstructor_SingleColumnPage(t *testing.T) {
	elements := singleColumnPage()

	doc, err := NewReconstructor().Reconstruct(elements, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}

	if doc.ColumnCount() != 1 {
		t.Errorf("ColumnCount() = %d, want 1", doc.ColumnCount())
	}
	checkGroupOrder(t, doc, []int{1, 2, 3, 4})

	for i, g := range doc.Groups {
		if g.Anchor.QuestionNumber != i+1 {
			t.Errorf("group %d question number = %d, want %d", i, g.Anchor.QuestionNumber, i+1)
		}
		if len(g.Children) != 1 {
			t.Fatalf("group %d has %d children, want 1", i, len(g.Children))
		}
		if got := g.Children[0].ID; got != g.Anchor.Element.ID+10 {
			t.Errorf("group %d child id = %d, want %d", i, got, g.Anchor.Element.ID+10)
		}
	}
	if len(doc.Unassigned) != 0 {
		t.Errorf("Unassigned = %v, want none", doc.Unassigned)
	}
}

func TestReconstructor_TwoColumnPageColumnMajor(t *testing.T) {
	elements := twoColumnPage()

	doc, err := NewReconstructor().Reconstruct(elements, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}

	if !doc.IsMultiColumn() {
		t.Fatalf("IsMultiColumn() = false, columns = %v", doc.Columns)
	}
	if doc.ColumnCount() != 2 {
		t.Errorf("ColumnCount() = %d, want 2", doc.ColumnCount())
	}
	// The left column reads out completely before the right column.
	checkGroupOrder(t, doc, []int{1, 2, 3, 4})

	for i, g := range doc.Groups {
		wantColumn := 0
		if i >= 2 {
			wantColumn = 1
		}
		if g.ColumnIndex != wantColumn {
			t.Errorf("group %d column = %d, want %d", i, g.ColumnIndex, wantColumn)
		}
	}
}

// Every input element must come back exactly once: as an anchor, a child,
// or unassigned.
func TestReconstructor_Completeness(t *testing.T) {
	elements := twoColumnPage()
	elements = append(elements,
		makeElement(90, model.ClassFigure, 700, 150, 1100, 350),
		makeElement(91, model.ClassChoices, 100, 450, 540, 600),
	)

	doc, err := NewReconstructor().Reconstruct(elements, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}

	if doc.ElementCount() != len(elements) {
		t.Fatalf("ElementCount() = %d, want %d", doc.ElementCount(), len(elements))
	}
	seen := make(map[int]bool)
	for _, e := range doc.Elements() {
		if seen[e.ID] {
			t.Fatalf("element %d appears more than once", e.ID)
		}
		seen[e.ID] = true
	}
	for _, e := range elements {
		if !seen[e.ID] {
			t.Errorf("element %d missing from output", e.ID)
		}
	}
}

func TestReconstructor_Deterministic(t *testing.T) {
	elements := twoColumnPage()
	r := NewReconstructor()

	first, err := r.Reconstruct(elements, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Reconstruct(elements, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different documents")
	}
}

func TestReconstructor_NoAnchorsIsNotAnError(t *testing.T) {
	elements := []model.LayoutElement{
		makeElement(1, model.ClassPlainText, 50, 50, 500, 90),
		makeElement(2, model.ClassPlainText, 50, 150, 500, 190),
		makeElement(3, model.ClassFigure, 50, 250, 500, 500),
		makeElement(4, model.ClassPlainText, 50, 550, 500, 590),
		makeElement(5, model.ClassPlainText, 50, 650, 500, 690),
	}

	doc, err := NewReconstructor().Reconstruct(elements, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}

	if doc.GroupCount() != 0 {
		t.Errorf("GroupCount() = %d, want 0", doc.GroupCount())
	}
	if len(doc.Unassigned) != len(elements) {
		t.Fatalf("Unassigned has %d elements, want %d", len(doc.Unassigned), len(elements))
	}
	for i, e := range doc.Unassigned {
		if e.ID != elements[i].ID {
			t.Errorf("Unassigned[%d].ID = %d, want %d (input order)", i, e.ID, elements[i].ID)
		}
	}
	if doc.ColumnCount() != 1 {
		t.Errorf("ColumnCount() = %d, want 1", doc.ColumnCount())
	}
}

// An anchor-class element whose text carries no usable number is not thrown
// away: it becomes an ordinary child of the nearest group.
func TestReconstructor_RejectedAnchorDemotedToChild(t *testing.T) {
	elements := []model.LayoutElement{
		makeAnchor(1, 50, 50, "1."),
		makeAnchor(2, 50, 120, "see below"),
		makeElement(11, model.ClassQuestionText, 100, 50, 500, 90),
	}

	doc, err := NewReconstructor().Reconstruct(elements, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}

	if doc.GroupCount() != 1 {
		t.Fatalf("GroupCount() = %d, want 1", doc.GroupCount())
	}
	if got := doc.Groups[0].ElementCount(); got != 3 {
		t.Errorf("group element count = %d, want 3", got)
	}
	found := false
	for _, c := range doc.Groups[0].Children {
		if c.ID == 2 {
			found = true
		}
	}
	if !found {
		t.Error("rejected anchor 2 is not among the group's children")
	}
}

// Two anchors claiming the same number in the same column: the stronger one
// keeps the number, the weaker one survives as a child.
func TestReconstructor_DuplicateNumbersResolved(t *testing.T) {
	strong := makeAnchor(1, 50, 50, "3.")
	weak := makeAnchor(2, 50, 300, "3.")
	weak.DetectorConfidence = 0.7

	doc, err := NewReconstructor().Reconstruct([]model.LayoutElement{strong, weak}, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}

	if doc.GroupCount() != 1 {
		t.Fatalf("GroupCount() = %d, want 1", doc.GroupCount())
	}
	g := doc.Groups[0]
	if g.Anchor.Element.ID != 1 {
		t.Errorf("winning anchor id = %d, want 1", g.Anchor.Element.ID)
	}
	if len(g.Children) != 1 || g.Children[0].ID != 2 {
		t.Errorf("children = %v, want the demoted anchor 2", g.Children)
	}
}

func TestReconstructor_StrategyOverride(t *testing.T) {
	elements := twoColumnPage()

	config := DefaultConfig()
	config.Strategy = StrategyLocal
	doc, err := NewReconstructorWithConfig(config).Reconstruct(elements, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}

	// The greedy walk reads the top row first, then drops down the right
	// column, unlike the column-major auto result.
	checkGroupOrder(t, doc, []int{1, 3, 4, 2})
}

func TestReconstructor_InvalidGeometry(t *testing.T) {
	elements := []model.LayoutElement{
		makeElement(1, model.ClassQuestionText, 500, 50, 100, 90), // X2 < X1
	}

	_, err := NewReconstructor().Reconstruct(elements, 1200, 1600)
	if !errors.Is(err, model.ErrInvalidGeometry) {
		t.Fatalf("err = %v, want ErrInvalidGeometry", err)
	}
	var geomErr *model.GeometryError
	if !errors.As(err, &geomErr) {
		t.Fatalf("err = %v, want *GeometryError", err)
	}
	if geomErr.ElementID != 1 {
		t.Errorf("ElementID = %d, want 1", geomErr.ElementID)
	}
}

func TestReconstructor_InvalidPageSize(t *testing.T) {
	_, err := NewReconstructor().Reconstruct(nil, 0, 1600)
	if !errors.Is(err, model.ErrInvalidPageSize) {
		t.Fatalf("err = %v, want ErrInvalidPageSize", err)
	}
}

func TestReconstructor_DuplicateElementID(t *testing.T) {
	elements := []model.LayoutElement{
		makeAnchor(7, 50, 50, "1."),
		makeElement(7, model.ClassQuestionText, 100, 50, 500, 90),
	}

	_, err := NewReconstructor().Reconstruct(elements, 1200, 1600)
	if !errors.Is(err, model.ErrDuplicateElementID) {
		t.Fatalf("err = %v, want ErrDuplicateElementID", err)
	}
}

func TestReconstructor_EmptyInput(t *testing.T) {
	doc, err := NewReconstructor().Reconstruct(nil, 1200, 1600)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ElementCount() != 0 {
		t.Errorf("ElementCount() = %d, want 0", doc.ElementCount())
	}
	if doc.GroupCount() != 0 {
		t.Errorf("GroupCount() = %d, want 0", doc.GroupCount())
	}
}

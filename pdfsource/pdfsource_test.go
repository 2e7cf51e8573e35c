package pdfsource

import (
	"reflect"
	"testing"

	pdflib "github.com/ledongthuc/pdf"
)

func TestMediaBoxFallback(t *testing.T) {
	w, h := mediaBox(pdflib.Page{})
	if w != defaultPageWidth || h != defaultPageHeight {
		t.Errorf("expected letter fallback, got %gx%g", w, h)
	}
}

func TestEmptyPagesSorted(t *testing.T) {
	s := &Source{empty: map[int]bool{7: true, 2: true, 5: true}}
	got := s.EmptyPages()
	want := []int{2, 5, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EmptyPages() = %v, want %v", got, want)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open("no-such-file.pdf"); err == nil {
		t.Fatal("expected error opening missing file")
	}
}

package parse

import (
	"math"
	"testing"
)

func TestScales_QuarterInch(t *testing.T) {
	scales := Scales(`SCALE: 1/4" = 1'-0"`)
	if len(scales) != 1 {
		t.Fatalf("got %d scales %v, want 1", len(scales), scales)
	}
	s := scales[0]
	if s.DrawingInches != 0.25 {
		t.Errorf("DrawingInches = %v, want 0.25", s.DrawingInches)
	}
	if s.RealFeet != 1 {
		t.Errorf("RealFeet = %v, want 1", s.RealFeet)
	}
	if s.FeetPerInch != 4 {
		t.Errorf("FeetPerInch = %v, want 4", s.FeetPerInch)
	}
}

func TestScales_EngineeringScale(t *testing.T) {
	scales := Scales(`1" = 20'`)
	if len(scales) != 1 {
		t.Fatalf("got %d scales %v, want 1", len(scales), scales)
	}
	if scales[0].FeetPerInch != 20 {
		t.Errorf("FeetPerInch = %v, want 20", scales[0].FeetPerInch)
	}
}

func TestScales_ThreeSixteenths(t *testing.T) {
	scales := Scales(`3/16"=1'-0"`)
	if len(scales) != 1 {
		t.Fatalf("got %d scales %v, want 1", len(scales), scales)
	}
	want := 1.0 / (3.0 / 16.0)
	if math.Abs(scales[0].FeetPerInch-want) > 0.0001 {
		t.Errorf("FeetPerInch = %v, want %v", scales[0].FeetPerInch, want)
	}
}

func TestScales_NotToScale(t *testing.T) {
	for _, input := range []string{"DETAIL N.T.S.", "SECTION NTS", "NOT TO SCALE"} {
		scales := Scales(input)
		if len(scales) != 1 || !scales[0].NotToScale {
			t.Errorf("Scales(%q) = %v, want one not-to-scale entry", input, scales)
		}
	}
}

func TestScales_None(t *testing.T) {
	if scales := Scales("WALL SCHEDULE"); len(scales) != 0 {
		t.Errorf("Scales = %v, want none", scales)
	}
}

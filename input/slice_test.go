package input

import (
	"slices"
	"testing"
)

var (
	_ SliceCursor[int, []int] = Slice[int]{}
	_ BorrowCursor[int]       = Slice[int]{}
)

func TestSliceAdvance(t *testing.T) {
	in := Slice[int]{10, 20, 30}

	off, tok, ok := in.Advance(0)
	if off != 1 || tok != 10 || !ok {
		t.Errorf("Advance(0) = (%d, %d, %v), want (1, 10, true)", off, tok, ok)
	}
	off, tok, ok = in.Advance(2)
	if off != 3 || tok != 30 || !ok {
		t.Errorf("Advance(2) = (%d, %d, %v), want (3, 30, true)", off, tok, ok)
	}
	off, tok, ok = in.Advance(3)
	if off != 3 || tok != 0 || ok {
		t.Errorf("Advance(3) = (%d, %d, %v), want (3, 0, false)", off, tok, ok)
	}
}

func TestSliceAdvancePastEnd(t *testing.T) {
	in := Slice[int]{10}
	for _, off := range []Offset{1, 2, 7, 100} {
		got, tok, ok := in.Advance(off)
		if got != off || tok != 0 || ok {
			t.Errorf("Advance(%d) = (%d, %d, %v), want (%d, 0, false)", off, got, tok, ok, off)
		}
	}
}

func TestSliceSlice(t *testing.T) {
	in := Slice[int]{10, 20, 30}
	if got := in.Slice(1, 3); !slices.Equal(got, []int{20, 30}) {
		t.Errorf("Slice(1, 3) = %v, want [20 30]", got)
	}
	if got := in.SliceFrom(1); !slices.Equal(got, []int{20, 30}) {
		t.Errorf("SliceFrom(1) = %v, want [20 30]", got)
	}
}

func TestSliceAdvanceRefMatchesAdvance(t *testing.T) {
	in := Slice[string]{"a", "b"}
	for off := Offset(0); int(off) <= len(in); off++ {
		wantOff, want, wantOK := in.Advance(off)
		gotOff, ref := in.AdvanceRef(off)
		if gotOff != wantOff {
			t.Errorf("AdvanceRef(%d) offset = %d, Advance gives %d", off, gotOff, wantOff)
		}
		if wantOK != (ref != nil) {
			t.Errorf("AdvanceRef(%d) ref = %v, Advance ok = %v", off, ref, wantOK)
		}
		if ref != nil && *ref != want {
			t.Errorf("AdvanceRef(%d) token = %q, Advance gives %q", off, *ref, want)
		}
	}
}

func TestSliceAdvanceRefAliasesBacking(t *testing.T) {
	in := Slice[int]{10, 20, 30}
	_, ref := in.AdvanceRef(1)
	if ref != &in[1] {
		t.Errorf("AdvanceRef(1) = %p, want backing element %p", ref, &in[1])
	}
}

package stylus

import (
	"errors"
	"testing"
)

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must(42, nil) = %v, want 42", got)
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}

func TestMustRender(t *testing.T) {
	remainder := MustRender([]int{1, 2}, []Warning{{Code: WarnMissingGlyph}}, nil)
	if len(remainder) != 2 {
		t.Errorf("MustRender remainder = %v, want both elements", remainder)
	}
}

func TestMustRenderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRender did not panic on error")
		}
	}()
	MustRender([]int(nil), nil, errors.New("boom"))
}

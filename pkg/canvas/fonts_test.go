package canvas

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
)

func TestFontManager_Face(t *testing.T) {
	fm, err := NewFontManagerFromBytes(nil)
	if err != nil {
		t.Fatal(err)
	}

	a, err := fm.Face(20)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := fm.Face(20.001)
	if a != b {
		t.Error("sizes within 1/64 px should share a face")
	}
	c, _ := fm.Face(21)
	if a == c {
		t.Error("different sizes share a face")
	}
}

func TestFontManager_FacesExpire(t *testing.T) {
	fm, err := NewFontManagerFromBytes(nil)
	if err != nil {
		t.Fatal(err)
	}
	fm.faces = cache.New(time.Millisecond, 0)

	first, err := fm.Face(31.25)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	second, err := fm.Face(31.25)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("expired face was reused")
	}
}

package assets

import (
	"testing"
)

func TestLoadImage(t *testing.T) {
	cases := []struct {
		path        string
		w, h        int
		placeholder bool
	}{
		{"ship.png", 32, 24, false},
		{"assets/block.png", 64, 16, false},
		{"/somewhere/game/assets/ship.png", 32, 24, false},
		{"missing.png", 1, 1, true},
		{"", 1, 1, true},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			img, err := LoadImage(c.path)
			if IsPlaceholder(err) != c.placeholder {
				t.Fatalf("placeholder = %v, err = %v", IsPlaceholder(err), err)
			}
			if img == nil {
				t.Fatalf("LoadImage must always return an image")
			}
			if b := img.Bounds(); b.Dx() != c.w || b.Dy() != c.h {
				t.Fatalf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), c.w, c.h)
			}
		})
	}
}

func TestLoadSheet(t *testing.T) {
	frames, err := LoadSheet("coin-Sheet.png", 16, 16, 0, 0)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("frames = %d, want 4", len(frames))
	}

	frames, err = LoadSheet("coin-Sheet.png", 100, 100, 0, 0)
	if !IsPlaceholder(err) || len(frames) != 1 {
		t.Fatalf("oversized cells should give a placeholder, got %d frames, err %v", len(frames), err)
	}
}

func TestNamesListsEmbeddedImages(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range Names() {
		seen[n] = true
	}
	for _, want := range []string{"ship.png", "coin-Sheet.png", "block.png", "orb-Sheet.png"} {
		if !seen[want] {
			t.Errorf("missing embedded asset %s", want)
		}
	}
}

package media

import (
	"image"
	"testing"
)

func TestScaleDownKeepsAspect(t *testing.T) {
	cases := []struct {
		w, h         int
		wantW, wantH int
	}{
		{1024, 512, 512, 256},
		{512, 1024, 256, 512},
		{2048, 2048, 512, 512},
		{300, 200, 300, 200}, // already small, untouched
		{5000, 10, 512, 1},
	}

	for _, tc := range cases {
		src := image.NewRGBA(image.Rect(0, 0, tc.w, tc.h))
		dst := scaleDown(src, avatarMaxDim)

		b := dst.Bounds()
		if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
			t.Errorf("scaleDown(%dx%d) = %dx%d, want %dx%d",
				tc.w, tc.h, b.Dx(), b.Dy(), tc.wantW, tc.wantH)
		}
	}
}

func TestDisabledStoreRejectsUploads(t *testing.T) {
	s := &Store{}
	if s.Enabled() {
		t.Fatal("zero-value store should be disabled")
	}
}

package cubemap

import "testing"

func TestDetectType(t *testing.T) {
	cases := []struct {
		w, h int
		want Layout
	}{
		{800, 600, HCross},
		{600, 800, VCross},
		{1024, 512, LatLong},
		{100, 600, VStrip},
		{700, 500, Unknown},
	}
	for _, c := range cases {
		if got := DetectType(c.w, c.h); got != c.want {
			t.Errorf("DetectType(%d,%d) = %v, want %v", c.w, c.h, got, c.want)
		}
	}
}

func TestDetectTypeRoundTrip(t *testing.T) {
	layouts := []struct {
		layout Layout
		dims   func(f int) (w, h int)
	}{
		{HCross, func(f int) (int, int) { return 4 * f, 3 * f }},
		{VCross, func(f int) (int, int) { return 3 * f, 4 * f }},
		{LatLong, func(f int) (int, int) { return 2 * f, f }},
		{VStrip, func(f int) (int, int) { return f, 6 * f }},
	}
	for f := 2; f <= 32; f++ {
		for _, l := range layouts {
			w, h := l.dims(f)
			if got := DetectType(w, h); got != l.layout {
				t.Errorf("F=%d layout=%v: DetectType(%d,%d) = %v, want %v", f, l.layout, w, h, got, l.layout)
			}
		}
	}
}

func TestFaceSize(t *testing.T) {
	em, err := New(HCross, 16, 12, 3, make([]byte, 16*12*3))
	if err != nil {
		t.Fatal(err)
	}
	if got := em.FaceSize(); got != 4 {
		t.Errorf("FaceSize() = %d, want 4", got)
	}
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	if _, err := New(HCross, 15, 12, 3, make([]byte, 15*12*3)); err == nil {
		t.Error("expected error for non-square-face hcross dimensions")
	}
	if _, err := New(HCross, 16, 12, 5, make([]byte, 16*12*5)); err == nil {
		t.Error("expected error for invalid channel count")
	}
}

func TestPixelRoundTripHCross(t *testing.T) {
	const faceSize = 4
	em, err := New(HCross, 4*faceSize, 3*faceSize, 3, make([]byte, 4*faceSize*3*faceSize*3))
	if err != nil {
		t.Fatal(err)
	}
	for face := Face(0); face < NumFaces; face++ {
		if err := em.SetPixel(1, 2, face, 0.5, 0.25, 1.0); err != nil {
			t.Fatalf("face %v: SetPixel: %v", face, err)
		}
		r, g, b, err := em.GetPixel(1, 2, face)
		if err != nil {
			t.Fatalf("face %v: GetPixel: %v", face, err)
		}
		if !closeEnough(r, 0.5, 1.0/255) || !closeEnough(g, 0.25, 1.0/255) || b != 1.0 {
			t.Errorf("face %v: round trip = (%v,%v,%v)", face, r, g, b)
		}
	}
}

package engine

import "testing"

var defaultCenter = Point{Lat: 42.8038, Lng: 23.8097}

func TestCaptureStartsInFromMode(t *testing.T) {
	controls := &fakeControls{}
	c := NewCaptureController(&fakeTileMap{}, controls, defaultCenter)

	if c.Mode() != ModeFrom {
		t.Fatalf("expected initial mode %q, got %q", ModeFrom, c.Mode())
	}
	if controls.active != ModeFrom {
		t.Fatalf("expected active control %q, got %q", ModeFrom, controls.active)
	}
}

func TestCaptureCreatesBothMarkersDetached(t *testing.T) {
	m := &fakeTileMap{}
	c := NewCaptureController(m, &fakeControls{}, defaultCenter)

	if len(m.created) != 2 {
		t.Fatalf("expected 2 markers created, got %d", len(m.created))
	}
	if len(m.added) != 0 {
		t.Fatalf("expected no markers attached before first click, got %d", len(m.added))
	}
	for _, mode := range []CaptureMode{ModeFrom, ModeTo} {
		pos, attached := c.MarkerPosition(mode)
		if attached {
			t.Fatalf("marker %q attached before any click", mode)
		}
		if pos != defaultCenter {
			t.Fatalf("marker %q at %+v, want default center", mode, pos)
		}
	}
}

func TestCaptureClickAttachesMarkerOnce(t *testing.T) {
	m := &fakeTileMap{}
	c := NewCaptureController(m, &fakeControls{}, defaultCenter)

	first := Point{Lat: 42.81, Lng: 23.82}
	second := Point{Lat: 42.82, Lng: 23.83}

	if mode := c.Click(first); mode != ModeFrom {
		t.Fatalf("expected click captured under %q, got %q", ModeFrom, mode)
	}
	c.Click(second)

	if len(m.added) != 1 {
		t.Fatalf("expected marker attached exactly once, got %d attachments", len(m.added))
	}
	pos, attached := c.MarkerPosition(ModeFrom)
	if !attached {
		t.Fatal("expected from marker attached after click")
	}
	if pos != second {
		t.Fatalf("expected marker repositioned to %+v, got %+v", second, pos)
	}
}

func TestCaptureClickLeavesOtherMarkerUntouched(t *testing.T) {
	c := NewCaptureController(&fakeTileMap{}, &fakeControls{}, defaultCenter)

	c.Click(Point{Lat: 42.81, Lng: 23.82})

	pos, attached := c.MarkerPosition(ModeTo)
	if attached {
		t.Fatal("to marker must stay detached after a from click")
	}
	if pos != defaultCenter {
		t.Fatalf("to marker moved to %+v", pos)
	}
}

func TestCaptureModeSwitchIsIdempotent(t *testing.T) {
	controls := &fakeControls{}
	c := NewCaptureController(&fakeTileMap{}, controls, defaultCenter)

	c.SetMode(ModeTo)
	c.SetMode(ModeTo)

	if c.Mode() != ModeTo {
		t.Fatalf("expected mode %q, got %q", ModeTo, c.Mode())
	}
	if controls.active != ModeTo {
		t.Fatalf("expected active control %q, got %q", ModeTo, controls.active)
	}
}

func TestCaptureRejectsUnknownMode(t *testing.T) {
	c := NewCaptureController(&fakeTileMap{}, &fakeControls{}, defaultCenter)

	c.SetMode(CaptureMode("via"))

	if c.Mode() != ModeFrom {
		t.Fatalf("unknown mode changed state to %q", c.Mode())
	}
}

func TestCaptureModesKeepSeparateMarkers(t *testing.T) {
	m := &fakeTileMap{}
	c := NewCaptureController(m, &fakeControls{}, defaultCenter)

	fromPoint := Point{Lat: 42.81, Lng: 23.82}
	toPoint := Point{Lat: 42.91, Lng: 23.72}

	c.Click(fromPoint)
	c.SetMode(ModeTo)
	c.Click(toPoint)

	if got, _ := c.MarkerPosition(ModeFrom); got != fromPoint {
		t.Fatalf("from marker at %+v, want %+v", got, fromPoint)
	}
	if got, _ := c.MarkerPosition(ModeTo); got != toPoint {
		t.Fatalf("to marker at %+v, want %+v", got, toPoint)
	}
	if len(m.added) != 2 {
		t.Fatalf("expected both markers attached, got %d", len(m.added))
	}
}

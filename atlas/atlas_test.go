package atlas

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/milk9111/animsheet/component"
)

func TestGrid(t *testing.T) {
	cases := []struct {
		name    string
		bounds  image.Rectangle
		fw, fh  int
		opts    GridOptions
		wantLen int
		index   int
		wantAt  image.Point
	}{
		{"single_row", image.Rect(0, 0, 96, 16), 16, 16, GridOptions{}, 6, 5, image.Pt(80, 0)},
		{"wraps_rows", image.Rect(0, 0, 64, 48), 16, 16, GridOptions{}, 12, 5, image.Pt(16, 16)},
		{"count_cap", image.Rect(0, 0, 64, 48), 16, 16, GridOptions{Count: 7}, 7, 6, image.Pt(32, 16)},
		{"count_over_max", image.Rect(0, 0, 32, 16), 16, 16, GridOptions{Count: 99}, 2, 1, image.Pt(16, 0)},
		{"margin_spacing", image.Rect(0, 0, 54, 36), 16, 16, GridOptions{Margin: 1, Spacing: 2}, 6, 4, image.Pt(19, 19)},
		{"offset_bounds", image.Rect(100, 50, 132, 66), 16, 16, GridOptions{}, 2, 1, image.Pt(116, 50)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := NewGrid(c.bounds, c.fw, c.fh, c.opts)
			if err != nil {
				t.Fatalf("NewGrid: %v", err)
			}
			if g.Len() != c.wantLen {
				t.Fatalf("expected %d frames, got %d", c.wantLen, g.Len())
			}
			f, err := g.FrameAt(c.index)
			if err != nil {
				t.Fatalf("FrameAt(%d): %v", c.index, err)
			}
			if f.Offset != c.wantAt || f.Width != c.fw || f.Height != c.fh {
				t.Fatalf("expected %v %dx%d, got %+v", c.wantAt, c.fw, c.fh, f)
			}
			if _, err := g.FrameAt(c.wantLen); !errors.Is(err, component.ErrFrameOutOfRange) {
				t.Fatalf("expected out of range, got %v", err)
			}
		})
	}
}

func TestGridInvalid(t *testing.T) {
	cases := []struct {
		name   string
		bounds image.Rectangle
		w, h   int
		opts   GridOptions
	}{
		{"zero_width", image.Rect(0, 0, 32, 32), 0, 16, GridOptions{}},
		{"sheet_smaller_than_frame", image.Rect(0, 0, 8, 8), 16, 16, GridOptions{}},
		{"spacing_cancels_frame", image.Rect(0, 0, 32, 32), 4, 4, GridOptions{Spacing: -4}},
		{"negative_spacing", image.Rect(0, 0, 32, 32), 4, 4, GridOptions{Spacing: -1}},
		{"negative_margin", image.Rect(0, 0, 32, 32), 4, 4, GridOptions{Margin: -2}},
		{"margin_wider_than_sheet", image.Rect(0, 0, 10, 10), 4, 4, GridOptions{Margin: 10}},
		{"margin_leaves_no_cell", image.Rect(0, 0, 10, 10), 4, 4, GridOptions{Margin: 4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if g, err := NewGrid(c.bounds, c.w, c.h, c.opts); err == nil {
				t.Fatalf("expected error, got grid of %d frames", g.Len())
			}
		})
	}
}

func TestGridFramesStayInsideSheet(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	g, err := NewGrid(bounds, 4, 4, GridOptions{Margin: 1, Spacing: 0})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Len() != 4 {
		t.Fatalf("expected 4 frames, got %d", g.Len())
	}
	for i := 0; i < g.Len(); i++ {
		f, err := g.FrameAt(i)
		if err != nil {
			t.Fatal(err)
		}
		if !f.Rect().In(bounds) {
			t.Fatalf("frame %d rect %v outside %v", i, f.Rect(), bounds)
		}
	}
}

func TestGridIsNotNamed(t *testing.T) {
	g, err := NewGrid(image.Rect(0, 0, 32, 16), 16, 16, GridOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := any(g).(component.NamedFrameSource); ok {
		t.Fatalf("grid must not resolve names")
	}
	sheet, err := component.NewAnimationSheet(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	err = sheet.DefineSequence("walk", component.FrameNames("walk_0"), 0)
	if !errors.Is(err, component.ErrUnsupportedLookupKind) {
		t.Fatalf("expected ErrUnsupportedLookupKind, got %v", err)
	}
}

const hashAtlas = `{
	"frames": {
		"walk_1": {"frame": {"x": 32, "y": 0, "w": 32, "h": 48}, "rotated": false, "trimmed": false},
		"walk_0": {"frame": {"x": 0, "y": 0, "w": 32, "h": 48}, "rotated": false, "trimmed": false},
		"die_0":  {"frame": {"x": 64, "y": 0, "w": 48, "h": 32}, "rotated": true, "trimmed": true,
			"spriteSourceSize": {"x": 2, "y": 1, "w": 48, "h": 32}, "sourceSize": {"w": 52, "h": 34}}
	},
	"meta": {"app": "https://www.codeandweb.com/texturepacker", "version": "1.0",
		"image": "hero.png", "format": "RGBA8888", "size": {"w": 128, "h": 64}, "scale": "1"}
}`

const arrayAtlas = `{"frames":[
{"filename":"a","frame":{"x":0,"y":0,"w":8,"h":8},"rotated":false},
{"filename":"b","frame":{"x":8,"y":0,"w":8,"h":8},"rotated":false}
],"meta":{"image":"tiny.png"}}`

func TestLoadTextureAtlasHash(t *testing.T) {
	a, err := LoadTextureAtlas([]byte(hashAtlas))
	if err != nil {
		t.Fatalf("LoadTextureAtlas: %v", err)
	}
	if a.Len() != 3 {
		t.Fatalf("expected 3 frames, got %d", a.Len())
	}
	names := a.Names()
	if names[0] != "walk_1" || names[1] != "walk_0" || names[2] != "die_0" {
		t.Fatalf("expected file order, got %v", names)
	}
	if a.Meta.Image != "hero.png" || a.Meta.Size.W != 128 {
		t.Fatalf("unexpected meta %+v", a.Meta)
	}

	die, err := a.FrameByName("die_0")
	if err != nil {
		t.Fatal(err)
	}
	if die.Angle != -math.Pi/2 || die.Offset != image.Pt(64, 0) || die.Width != 32 || die.Height != 48 {
		t.Fatalf("unexpected rotated frame %+v", die)
	}
	walk, err := a.FrameAt(1)
	if err != nil {
		t.Fatal(err)
	}
	if walk.Name != "walk_0" || walk.Angle != 0 {
		t.Fatalf("unexpected frame %+v", walk)
	}
	if _, err := a.FrameByName("nope"); !errors.Is(err, component.ErrUnknownFrame) {
		t.Fatalf("expected ErrUnknownFrame, got %v", err)
	}
}

func TestLoadTextureAtlasArray(t *testing.T) {
	a, err := LoadTextureAtlas([]byte(arrayAtlas))
	if err != nil {
		t.Fatalf("LoadTextureAtlas: %v", err)
	}
	if a.Len() != 2 || a.Meta.Image != "tiny.png" {
		t.Fatalf("unexpected atlas %+v", a)
	}
	b, err := a.FrameByName("b")
	if err != nil || b.Offset.X != 8 {
		t.Fatalf("unexpected frame b %+v err=%v", b, err)
	}
}

func TestLoadTextureAtlasErrors(t *testing.T) {
	cases := map[string]string{
		"not_object":  `[1, 2]`,
		"no_frames":   `{"meta": {}}`,
		"empty":       `{"frames": {}}`,
		"bad_frames":  `{"frames": 3}`,
		"unnamed":     `{"frames": [{"frame": {"x": 0, "y": 0, "w": 1, "h": 1}}]}`,
		"duplicate":   `{"frames": [{"filename": "a"}, {"filename": "a"}]}`,
		"invalid_doc": `{"frames": [`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadTextureAtlas([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTextureAtlasDrivesSheet(t *testing.T) {
	a, err := LoadTextureAtlas([]byte(hashAtlas))
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := component.NewAnimationSheet(a, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := sheet.DefineSequence("walk", component.FrameNames("walk_0", "walk_1"), 120); err != nil {
		t.Fatalf("DefineSequence: %v", err)
	}
	if err := sheet.SetActiveSequence("walk"); err != nil {
		t.Fatal(err)
	}
	if sheet.Frame().Name != "walk_0" {
		t.Fatalf("expected walk_0, got %q", sheet.Frame().Name)
	}
	if !sheet.Tick(120) || sheet.Frame().Name != "walk_1" {
		t.Fatalf("expected walk_1 after a frame, got %q", sheet.Frame().Name)
	}
}

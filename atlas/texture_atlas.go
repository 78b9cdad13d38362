package atlas

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/milk9111/animsheet/component"
	"gopkg.in/yaml.v3"
)

// Rect is a pixel rectangle as written by texture packers.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Size is a width/height pair.
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Meta is the atlas header.
type Meta struct {
	App     string `yaml:"app"`
	Version string `yaml:"version"`
	Image   string `yaml:"image"`
	Format  string `yaml:"format"`
	Size    Size   `yaml:"size"`
}

// FrameEntry is one packed region.
type FrameEntry struct {
	Filename         string `yaml:"filename"`
	Frame            Rect   `yaml:"frame"`
	Rotated          bool   `yaml:"rotated"`
	Trimmed          bool   `yaml:"trimmed"`
	SpriteSourceSize Rect   `yaml:"spriteSourceSize"`
	SourceSize       Size   `yaml:"sourceSize"`
}

// TextureAtlas is a packed atlas whose frames can be resolved by ordinal or
// by name. Ordinal order is the order frames appear in the file.
type TextureAtlas struct {
	Meta   Meta
	frames []component.Frame
	index  map[string]int
}

// LoadTextureAtlas parses a TexturePacker JSON atlas in either the hash or
// the array layout. YAML documents with the same shape are accepted too.
func LoadTextureAtlas(data []byte) (*TextureAtlas, error) {
	// JSON strings cannot hold raw tabs, so this only touches indentation
	data = bytes.ReplaceAll(data, []byte("\t"), []byte(" "))

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("atlas: parse: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("atlas: expected an object at the top level")
	}
	root := doc.Content[0]

	a := &TextureAtlas{index: make(map[string]int)}
	var framesNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "frames":
			framesNode = val
		case "meta":
			if err := val.Decode(&a.Meta); err != nil {
				return nil, fmt.Errorf("atlas: meta: %w", err)
			}
		}
	}
	if framesNode == nil {
		return nil, fmt.Errorf("atlas: missing frames")
	}

	switch framesNode.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(framesNode.Content); i += 2 {
			var entry FrameEntry
			if err := framesNode.Content[i+1].Decode(&entry); err != nil {
				return nil, fmt.Errorf("atlas: frame %q: %w", framesNode.Content[i].Value, err)
			}
			entry.Filename = framesNode.Content[i].Value
			if err := a.add(entry); err != nil {
				return nil, err
			}
		}
	case yaml.SequenceNode:
		for i, n := range framesNode.Content {
			var entry FrameEntry
			if err := n.Decode(&entry); err != nil {
				return nil, fmt.Errorf("atlas: frame %d: %w", i, err)
			}
			if err := a.add(entry); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("atlas: frames must be an object or an array")
	}

	if len(a.frames) == 0 {
		return nil, fmt.Errorf("atlas: no frames: %w", component.ErrEmptySource)
	}
	return a, nil
}

func (a *TextureAtlas) add(e FrameEntry) error {
	if e.Filename == "" {
		return fmt.Errorf("atlas: frame %d has no name", len(a.frames))
	}
	if _, dup := a.index[e.Filename]; dup {
		return fmt.Errorf("atlas: duplicate frame %q", e.Filename)
	}
	f := component.Frame{
		Name:   e.Filename,
		Offset: image.Pt(e.Frame.X, e.Frame.Y),
		Width:  e.Frame.W,
		Height: e.Frame.H,
	}
	if e.Rotated {
		// packers report the upright size; the stored region is turned 90 degrees
		f.Width, f.Height = e.Frame.H, e.Frame.W
		f.Angle = -math.Pi / 2
	}
	a.index[e.Filename] = len(a.frames)
	a.frames = append(a.frames, f)
	return nil
}

// Len returns the number of frames.
func (a *TextureAtlas) Len() int { return len(a.frames) }

// FrameAt returns the frame at ordinal i in file order.
func (a *TextureAtlas) FrameAt(i int) (component.Frame, error) {
	if i < 0 || i >= len(a.frames) {
		return component.Frame{}, fmt.Errorf("atlas: frame %d of %d: %w", i, len(a.frames), component.ErrFrameOutOfRange)
	}
	return a.frames[i], nil
}

// FrameByName returns the named frame.
func (a *TextureAtlas) FrameByName(name string) (component.Frame, error) {
	i, ok := a.index[name]
	if !ok {
		return component.Frame{}, fmt.Errorf("atlas: %q: %w", name, component.ErrUnknownFrame)
	}
	return a.frames[i], nil
}

// Names returns frame names in file order.
func (a *TextureAtlas) Names() []string {
	names := make([]string, len(a.frames))
	for i, f := range a.frames {
		names[i] = f.Name
	}
	return names
}

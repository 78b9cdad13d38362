package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	animation "github.com/milk9111/animsheet/component"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// AnimatorComponentSpec describes an animation sheet: where its frames come
// from and which sequences it defines.
type AnimatorComponentSpec struct {
	Atlas             string           `yaml:"atlas"`
	Grid              *GridSpec        `yaml:"grid"`
	DefaultDurationMs float64          `yaml:"default_duration_ms"`
	Initial           string           `yaml:"initial"`
	Speed             float64          `yaml:"speed"`
	Paused            bool             `yaml:"paused"`
	Sequences         []SequenceSpec   `yaml:"sequences"`
	Events            []FrameEventSpec `yaml:"events"`
}

// GridSpec cuts a sheet image into equal cells.
type GridSpec struct {
	Image   string `yaml:"image"`
	FrameW  int    `yaml:"frame_w"`
	FrameH  int    `yaml:"frame_h"`
	Margin  int    `yaml:"margin"`
	Spacing int    `yaml:"spacing"`
	Count   int    `yaml:"count"`
}

type SequenceSpec struct {
	Name       string         `yaml:"name"`
	Frames     []FrameRefSpec `yaml:"frames"`
	DurationMs float64        `yaml:"duration_ms"`
	OnLoop     *OnLoopSpec    `yaml:"on_loop"`
}

// OnLoopSpec picks at most one of chain or script.
type OnLoopSpec struct {
	Chain  string `yaml:"chain"`
	Script string `yaml:"script"`
}

type FrameEventSpec struct {
	Sequence string `yaml:"sequence"`
	Frame    int    `yaml:"frame"`
	Type     string `yaml:"type"`
	Payload  string `yaml:"payload"`
}

// FrameRefSpec accepts an ordinal (3), a name ("die_0") or a mapping with
// either plus a per-frame delay ({name: die_1, delay: 250}).
type FrameRefSpec struct {
	Index   int
	Name    string
	DelayMs float64
	named   bool
}

func (f *FrameRefSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return f.setScalar(value)
	case yaml.MappingNode:
		var raw struct {
			Index *int    `yaml:"index"`
			Name  string  `yaml:"name"`
			Delay float64 `yaml:"delay"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		switch {
		case raw.Name != "" && raw.Index != nil:
			return fmt.Errorf("line %d: frame has both name and index", value.Line)
		case raw.Name != "":
			f.Name, f.named = raw.Name, true
		case raw.Index != nil:
			f.Index = *raw.Index
		default:
			return fmt.Errorf("line %d: frame needs a name or an index", value.Line)
		}
		if raw.Delay < 0 {
			return fmt.Errorf("line %d: negative frame delay", value.Line)
		}
		f.DelayMs = raw.Delay
		return nil
	default:
		return fmt.Errorf("line %d: frame must be an index, a name or a mapping", value.Line)
	}
}

func (f *FrameRefSpec) setScalar(value *yaml.Node) error {
	if value.ShortTag() == "!!int" {
		i, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		f.Index = i
		return nil
	}
	if value.Value == "" {
		return fmt.Errorf("line %d: empty frame name", value.Line)
	}
	f.Name, f.named = value.Value, true
	return nil
}

// Ref converts the spec into a frame reference.
func (f FrameRefSpec) Ref() animation.FrameRef {
	var ref animation.FrameRef
	if f.named {
		ref = animation.FrameName(f.Name)
	} else {
		ref = animation.FrameIndex(f.Index)
	}
	if f.DelayMs > 0 {
		ref = ref.WithDelay(f.DelayMs)
	}
	return ref
}

// ViewerSpec holds presentation hints for the viewer binary.
type ViewerSpec struct {
	Background *YAMLColor `yaml:"background"`
	Zoom       float64    `yaml:"zoom"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

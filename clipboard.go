package main

import (
	"fmt"
	"log"
	"sync"

	animation "github.com/milk9111/animsheet/component"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// FrameDescriptor is what the copy action puts on the clipboard: enough to
// paste the current frame into a prefab or a bug report.
type FrameDescriptor struct {
	Prefab   string  `yaml:"prefab"`
	Sequence string  `yaml:"sequence"`
	Index    int     `yaml:"index"`
	Name     string  `yaml:"name,omitempty"`
	X        int     `yaml:"x"`
	Y        int     `yaml:"y"`
	W        int     `yaml:"w"`
	H        int     `yaml:"h"`
	Rotated  bool    `yaml:"rotated,omitempty"`
	DelayMs  float64 `yaml:"delay_ms"`
}

func DescribeFrame(prefab string, sheet *animation.AnimationSheet) FrameDescriptor {
	f := sheet.Frame()
	d := FrameDescriptor{
		Prefab:   prefab,
		Sequence: sheet.ActiveSequence(),
		Index:    sheet.FrameIndex(),
		Name:     f.Name,
		X:        f.Offset.X,
		Y:        f.Offset.Y,
		W:        f.Width,
		H:        f.Height,
		Rotated:  f.Angle != 0,
	}
	if seq, ok := sheet.Sequence(d.Sequence); ok {
		d.DelayMs = seq.Delays[d.Index]
	}
	return d
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// CopyFrame writes the descriptor of the current frame to the system
// clipboard as YAML.
func CopyFrame(prefab string, sheet *animation.AnimationSheet) (string, error) {
	data, err := yaml.Marshal(DescribeFrame(prefab, sheet))
	if err != nil {
		return "", fmt.Errorf("copy frame: %w", err)
	}
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
		if clipboardErr != nil {
			log.Printf("[Clipboard] unavailable: %v", clipboardErr)
		}
	})
	if clipboardErr != nil {
		return string(data), fmt.Errorf("copy frame: %w", clipboardErr)
	}
	clipboard.Write(clipboard.FmtText, data)
	return string(data), nil
}

// Command spsa previews a plain spritesheet without writing a prefab: every
// cell of the grid plays in order at a fixed frame duration.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animsheet/atlas"
	animation "github.com/milk9111/animsheet/component"
	"github.com/milk9111/animsheet/ecs/render"
	"github.com/milk9111/animsheet/ecs/system"
	"gopkg.in/yaml.v3"
)

const screenSize = 512

type demoGame struct {
	image *ebiten.Image
	sheet *animation.AnimationSheet
	clock system.Clock
	zoom  float64
}

func (g *demoGame) Update() error {
	g.sheet.Tick(g.clock.DeltaMs())
	return nil
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	f := g.sheet.Frame()
	w, h := render.UprightSize(f)
	render.DrawFrame(screen, g.image, f, render.Placement{
		X:       screenSize / 2 / g.zoom,
		Y:       screenSize / 2 / g.zoom,
		OriginX: w / 2,
		OriginY: h / 2,
		Zoom:    g.zoom,
	})
}

func (g *demoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenSize, screenSize
}

type frameRow struct {
	Index int `yaml:"index"`
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	W     int `yaml:"w"`
	H     int `yaml:"h"`
}

func main() {
	path := flag.String("image", "assets/hero.png", "spritesheet to preview")
	frameW := flag.Int("fw", 32, "frame width in pixels")
	frameH := flag.Int("fh", 32, "frame height in pixels")
	margin := flag.Int("margin", 0, "pixels around the grid")
	spacing := flag.Int("spacing", 0, "pixels between cells")
	count := flag.Int("count", 0, "number of frames (0 means every cell)")
	durationMs := flag.Float64("ms", animation.DefaultFrameDurationMs, "milliseconds per frame")
	zoom := flag.Float64("zoom", 4, "display scale")
	dump := flag.Bool("dump", false, "print the frame table as YAML and exit")
	flag.Parse()

	src, err := render.DecodeImage(*path)
	if err != nil {
		log.Fatal(err)
	}
	grid, err := atlas.NewGrid(src.Bounds(), *frameW, *frameH, atlas.GridOptions{
		Margin:  *margin,
		Spacing: *spacing,
		Count:   *count,
	})
	if err != nil {
		log.Fatal(err)
	}

	if *dump {
		rows := make([]frameRow, 0, grid.Len())
		for i := 0; i < grid.Len(); i++ {
			f, err := grid.FrameAt(i)
			if err != nil {
				log.Fatal(err)
			}
			rows = append(rows, frameRow{Index: i, X: f.Offset.X, Y: f.Offset.Y, W: f.Width, H: f.Height})
		}
		enc := yaml.NewEncoder(os.Stdout)
		if err := enc.Encode(rows); err != nil {
			log.Fatal(err)
		}
		return
	}

	sheet, err := animation.NewAnimationSheet(grid, *durationMs)
	if err != nil {
		log.Fatal(err)
	}
	g := &demoGame{
		image: ebiten.NewImageFromImage(src),
		sheet: sheet,
		clock: system.TPSClock{},
		zoom:  *zoom,
	}
	ebiten.SetWindowSize(screenSize, screenSize)
	ebiten.SetWindowTitle(fmt.Sprintf("spsa - %s (%d frames)", *path, grid.Len()))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

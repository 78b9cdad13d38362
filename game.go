package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/animsheet/common"
	animation "github.com/milk9111/animsheet/component"
	"github.com/milk9111/animsheet/ecs"
	"github.com/milk9111/animsheet/ecs/component"
	"github.com/milk9111/animsheet/ecs/entity"
	"github.com/milk9111/animsheet/ecs/system"
	"github.com/milk9111/animsheet/prefabs"
	"golang.org/x/image/font/basicfont"
)

const (
	minSpeed    = 0.125
	maxSpeed    = 8
	eventLogLen = 6
)

var sequenceKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

type Options struct {
	Prefab   string
	Debug    bool
	Speed    float64
	Watch    bool
	Settings *SettingsStore
}

type Game struct {
	prefab string

	world     *ecs.World
	entity    ecs.Entity
	animation *system.AnimationSystem
	render    *system.RenderSystem
	reload    *system.HotReloadSystem
	watcher   *prefabs.Watcher

	background color.Color
	zoom       float64

	ui       *ViewerUI
	face     ebtext.Face
	settings *SettingsStore
	status   string
	events   []string
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadEntityBuildSpec(opts.Prefab)
	if err != nil {
		return nil, err
	}

	g := &Game{
		prefab:     opts.Prefab,
		world:      ecs.NewWorld(),
		background: color.NRGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xff},
		zoom:       2,
		face:       ebtext.NewGoXFace(basicfont.Face7x13),
		settings:   opts.Settings,
	}
	if spec.Viewer.Background != nil {
		g.background = spec.Viewer.Background.Color
	}
	if spec.Viewer.Zoom > 0 {
		g.zoom = spec.Viewer.Zoom
	}

	g.entity, err = entity.BuildEntityFromSpec(g.world, opts.Prefab, spec)
	if err != nil {
		return nil, err
	}

	g.animation = system.NewAnimationSystem(system.TPSClock{})
	g.render = system.NewRenderSystem()
	g.render.Debug = opts.Debug
	g.world.AddSystem(g.animation)
	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("[Viewer] hot reload disabled: %v", err)
		} else {
			g.reload = system.NewHotReloadSystemFromWatcher(g.watcher)
			g.world.AddSystem(g.reload)
		}
	}
	g.world.AddSystem(g.render)

	speed := 1.0
	if saved, ok, err := g.settings.Load(g.prefab); err != nil {
		log.Printf("[Viewer] %v", err)
	} else if ok {
		if saved.Speed > 0 {
			speed = saved.Speed
		}
		g.render.Debug = g.render.Debug || saved.Debug
		if anim := g.animator(); anim != nil {
			if err := anim.Restore(saved.Sheet); err != nil {
				log.Printf("[Viewer] restore %s: %v", g.prefab, err)
			}
		}
	}
	if opts.Speed > 0 {
		speed = opts.Speed
	}
	g.animation.Scale = common.Clamp(speed, minSpeed, maxSpeed)

	g.ui = NewViewerUI(g)
	if anim := g.animator(); anim != nil {
		g.ui.SetPaused(anim.Sheet.Paused())
	}
	return g, nil
}

func (g *Game) animator() *component.Animator {
	anim, ok := ecs.Get(g.world, g.entity, component.AnimatorComponent.Kind())
	if !ok || anim.Sheet == nil {
		return nil
	}
	return anim
}

func (g *Game) sequenceNames() []string {
	anim := g.animator()
	if anim == nil {
		return nil
	}
	return anim.Sheet.SequenceNames()
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Close()
		return ebiten.Termination
	}

	g.handleKeys()
	g.ui.Update()
	g.world.Update()
	g.collectEvents()

	if !ecs.IsAlive(g.world, g.entity) {
		g.respawn()
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.step(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyFrame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if anim := g.animator(); anim != nil {
			g.play(anim.Sheet.ActiveSequence())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.animation.Scale = common.Clamp(g.animation.Scale*2, minSpeed, maxSpeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.animation.Scale = common.Clamp(g.animation.Scale/2, minSpeed, maxSpeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.render.Debug = !g.render.Debug
	}

	names := g.sequenceNames()
	for i, key := range sequenceKeys {
		if i < len(names) && inpututil.IsKeyJustPressed(key) {
			g.play(names[i])
		}
	}
}

func (g *Game) togglePause() {
	anim := g.animator()
	if anim == nil {
		return
	}
	if anim.Sheet.Paused() {
		anim.Sheet.Resume()
	} else {
		anim.Sheet.Pause()
	}
	g.ui.SetPaused(anim.Sheet.Paused())
}

// step seeks one frame and pauses so the frame stays on screen.
func (g *Game) step(delta int) {
	anim := g.animator()
	if anim == nil {
		return
	}
	anim.Sheet.Pause()
	anim.Sheet.SetFrameIndex(anim.Sheet.FrameIndex() + delta)
	if sprite, ok := ecs.Get(g.world, g.entity, component.SpriteComponent.Kind()); ok {
		system.SyncSprite(anim, sprite)
	}
	g.ui.SetPaused(true)
}

func (g *Game) play(name string) {
	anim := g.animator()
	if anim == nil {
		return
	}
	if err := anim.Play(name); err != nil {
		g.status = err.Error()
		return
	}
	g.status = "playing " + name
}

func (g *Game) copyFrame() {
	anim := g.animator()
	if anim == nil {
		return
	}
	text, err := CopyFrame(g.prefab, anim.Sheet)
	if err != nil {
		log.Printf("[Viewer] %v\n%s", err, text)
		g.status = "clipboard unavailable, frame logged"
		return
	}
	g.status = "frame copied"
}

func (g *Game) collectEvents() {
	for _, ev := range g.world.Events.Drain() {
		line := ev.Type
		if evt, ok := ev.Data.(animation.AnimationEvent); ok {
			line = fmt.Sprintf("%s %s[%s]", evt.Type, evt.Sequence, evt.Payload)
		}
		if g.render.Debug {
			log.Printf("[Viewer] event %s", line)
		}
		g.events = append(g.events, line)
	}
	if n := len(g.events); n > eventLogLen {
		g.events = g.events[n-eventLogLen:]
	}
}

// respawn rebuilds the previewed entity after a loop script destroyed it.
func (g *Game) respawn() {
	e, err := entity.BuildEntity(g.world, g.prefab)
	if err != nil {
		log.Printf("[Viewer] respawn %s: %v", g.prefab, err)
		return
	}
	g.entity = e
	g.status = "respawned"
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	// center world origin on screen
	camX := -common.BaseWidth / 2 / g.zoom
	camY := -common.BaseHeight / 2 / g.zoom
	g.world.Draw(screen, camX, camY, g.zoom)

	g.drawHUD(screen)
	g.ui.Draw(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := []string{g.prefab}
	if anim := g.animator(); anim != nil {
		s := anim.Sheet
		seq, _ := s.Sequence(s.ActiveSequence())
		f := s.Frame()
		lines = append(lines,
			fmt.Sprintf("sequence %s  frame %d/%d %s", s.ActiveSequence(), s.FrameIndex()+1, seq.Len(), f.Name),
			fmt.Sprintf("region %d,%d %dx%d  next in %.0fms", f.Offset.X, f.Offset.Y, f.Width, f.Height, s.RemainingMs()),
		)
		var flags []string
		if s.Paused() {
			flags = append(flags, "paused")
		}
		if s.Held() {
			flags = append(flags, "held")
		}
		if chain, ok := s.LoopPolicy().Chain(); ok {
			flags = append(flags, "chains to "+chain)
		}
		if len(flags) > 0 {
			lines = append(lines, strings.Join(flags, ", "))
		}
	}
	lines = append(lines, fmt.Sprintf("speed x%.3g  FPS %.1f", g.animation.Scale, ebiten.ActualFPS()))
	if g.reload != nil && g.reload.Reloaded > 0 {
		lines = append(lines, fmt.Sprintf("reloaded %d times", g.reload.Reloaded))
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}
	if len(g.events) > 0 {
		lines = append(lines, "", "events:")
		lines = append(lines, g.events...)
	}
	lines = append(lines, "", "space pause  <- -> step  1-9 play  r restart  c copy  up/down speed  d debug")

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, strings.Join(lines, "\n"), g.face, op)
}

// Close saves the viewer state for the next run and stops watching files.
func (g *Game) Close() {
	if anim := g.animator(); anim != nil {
		err := g.settings.Save(g.prefab, ViewerSettings{
			Speed: g.animation.Scale,
			Debug: g.render.Debug,
			Sheet: anim.Sheet.Snapshot(),
		})
		if err != nil {
			log.Printf("[Viewer] %v", err)
		}
	}
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("[Viewer] close watcher: %v", err)
		}
		g.watcher = nil
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

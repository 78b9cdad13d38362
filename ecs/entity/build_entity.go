package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/animsheet/ecs"
	"github.com/milk9111/animsheet/ecs/component"
	"github.com/milk9111/animsheet/ecs/render"
	"github.com/milk9111/animsheet/ecs/system"
	"github.com/milk9111/animsheet/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":    addTransform,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"animator":     addAnimator,
}

// The animator goes last so it can fill in the sprite it drives.
var componentBuildOrder = []string{
	"transform",
	"sprite",
	"render_layer",
	"animator",
}

// BuildEntity creates an entity from the prefab at prefabPath.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec)
}

// BuildEntityFromSpec creates an entity from an already loaded prefab. The
// entity is destroyed again if any component fails to build.
func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	names := make([]string, 0, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" {
		img, err := render.LoadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	sprite.FacingLeft = spec.FacingLeft
	sprite.Hidden = spec.Hidden

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type animatorSpec = prefabs.AnimatorComponentSpec

func addAnimator(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}

	src, imagePath, err := prefabs.BuildFrameSource(spec, prefabs.AssetBounds)
	if err != nil {
		return err
	}
	sheet, policies, err := prefabs.BuildAnimationSheet(spec, src, system.ScriptResolver(w, e))
	if err != nil {
		return err
	}
	events, err := prefabs.BuildEventMap(spec)
	if err != nil {
		return err
	}

	anim := &component.Animator{
		Sheet:    sheet,
		Policies: policies,
		Prefab:   ctx.PrefabPath,
		Speed:    spec.Speed,
	}
	system.QueueEvents(w, e, anim)
	system.BindEvents(anim, events)

	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		if sprite.Image == nil && imagePath != "" {
			img, err := render.LoadImage(imagePath)
			if err != nil {
				return fmt.Errorf("load image %q: %w", imagePath, err)
			}
			sprite.Image = img
		}
		system.SyncSprite(anim, sprite)
	}

	return ecs.Add(w, e, component.AnimatorComponent.Kind(), anim)
}

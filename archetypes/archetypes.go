package archetypes

import (
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
	)
	Laser = newArchetype(
		tags.Laser,
		components.Laser,
	)
	Spinner = newArchetype(
		tags.Spinner,
		components.Spinner,
	)
	Session = newArchetype(
		components.Session,
	)
	Playback = newArchetype(
		components.Playback,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}

package world

import (
	"github.com/google/uuid"

	"github.com/zeusync/tds/internal/core/events/bus"
	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/observability/log"
)

// Event types published by the world.
const (
	EventBulletSpawned  = "bullet.spawned"
	EventBulletRejected = "bullet.rejected"
	EventBulletRicochet = "bullet.ricochet"
	EventBulletStopped  = "bullet.stopped"
	EventExplosion      = "world.explosion"
)

const eventSource = "world"

// BulletEvent is the payload of every bullet.* event. ID is nil for
// rejected spawns.
type BulletEvent struct {
	ID  uuid.UUID
	Pos geometry.Vec2
	Vel geometry.Vec2
	// HitLine is set for ricochets.
	HitLine *geometry.Line
}

// ExplosionEvent is the payload of world.explosion.
type ExplosionEvent struct {
	At       geometry.Vec2
	Shrapnel int
}

func (w *World) publish(typ string, data any) {
	if w.bus == nil {
		return
	}
	if err := w.bus.Publish(bus.NewEvent(typ, eventSource, w.frame, data)); err != nil {
		w.logger.Warn("event handler failed", log.String("event", typ), log.Error(err))
	}
}

package ecs

import "time"

// VisualBridge is the capability set the Presentation-phase intent
// processor forwards to (§6): the core never interprets these calls, it
// only guarantees at-most-once, in-order delivery per channel per tick.
type VisualBridge interface {
	OnPositionChanged(e Entity, x, y, z float64)
	OnEntitySpawned(e Entity)
	OnEntityDestroyed(e Entity)
	OnHealthChanged(e Entity, current, max float64)
	OnAnimationTriggered(e Entity, name string)
	OnSoundTriggered(e Entity, name string)
}

// PositionChangedIntent is published by movement-adjacent systems and
// forwarded to VisualBridge.OnPositionChanged.
type PositionChangedIntent struct {
	Entity  Entity
	X, Y, Z float64
}

// HealthChangedIntent is forwarded to VisualBridge.OnHealthChanged.
type HealthChangedIntent struct {
	Entity       Entity
	Current, Max float64
}

// AnimationTriggeredIntent is forwarded to VisualBridge.OnAnimationTriggered.
type AnimationTriggeredIntent struct {
	Entity Entity
	Name   string
}

// SoundTriggeredIntent is forwarded to VisualBridge.OnSoundTriggered.
type SoundTriggeredIntent struct {
	Entity Entity
	Name   string
}

// BridgeSystem is the Presentation-phase intent processor: every tick it
// drains the fixed set of channels above (plus EntitySpawned/
// EntityDestroyed, which the World publishes on its own) and forwards each
// value to the bridge, in publish order, exactly once (§6, §8 S4).
type BridgeSystem struct {
	bridge VisualBridge
	order  int
}

// NewBridgeSystem builds the intent processor. bridge must not be nil.
func NewBridgeSystem(bridge VisualBridge, order int) (*BridgeSystem, error) {
	if bridge == nil {
		return nil, InvalidArgumentError{Message: "NewBridgeSystem: bridge must not be nil"}
	}
	return &BridgeSystem{bridge: bridge, order: order}, nil
}

func (s *BridgeSystem) Phase() Phase { return Presentation }
func (s *BridgeSystem) Order() int   { return s.order }

// Update drains every fixed intent channel on w and forwards each value to
// the bridge. dt is unused; the processor is purely a drain, not a
// simulation step.
func (s *BridgeSystem) Update(w *World, _ time.Duration) {
	Events[PositionChangedIntent](w).ConsumeAll(func(i PositionChangedIntent) {
		s.bridge.OnPositionChanged(i.Entity, i.X, i.Y, i.Z)
	})
	Events[EntitySpawned](w).ConsumeAll(func(i EntitySpawned) {
		s.bridge.OnEntitySpawned(i.Entity)
	})
	Events[EntityDestroyed](w).ConsumeAll(func(i EntityDestroyed) {
		s.bridge.OnEntityDestroyed(i.Entity)
	})
	Events[HealthChangedIntent](w).ConsumeAll(func(i HealthChangedIntent) {
		s.bridge.OnHealthChanged(i.Entity, i.Current, i.Max)
	})
	Events[AnimationTriggeredIntent](w).ConsumeAll(func(i AnimationTriggeredIntent) {
		s.bridge.OnAnimationTriggered(i.Entity, i.Name)
	})
	Events[SoundTriggeredIntent](w).ConsumeAll(func(i SoundTriggeredIntent) {
		s.bridge.OnSoundTriggered(i.Entity, i.Name)
	})
}

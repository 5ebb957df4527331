package ecs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	kind string
	x    float64
}

type fakeBridge struct {
	calls []recordedCall
}

func (b *fakeBridge) OnPositionChanged(e Entity, x, y, z float64) {
	b.calls = append(b.calls, recordedCall{kind: "position", x: x})
}
func (b *fakeBridge) OnEntitySpawned(Entity)                    {}
func (b *fakeBridge) OnEntityDestroyed(Entity)                  {}
func (b *fakeBridge) OnHealthChanged(Entity, float64, float64)  {}
func (b *fakeBridge) OnAnimationTriggered(Entity, string)       {}
func (b *fakeBridge) OnSoundTriggered(Entity, string)           {}

type publishTwiceSystem struct{}

func (publishTwiceSystem) Phase() Phase { return Update }
func (publishTwiceSystem) Order() int   { return 0 }
func (publishTwiceSystem) Update(w *World, _ time.Duration) {
	Events[PositionChangedIntent](w).Publish(PositionChangedIntent{X: 1})
	Events[PositionChangedIntent](w).Publish(PositionChangedIntent{X: 2})
}

// S4 Intent pipeline.
func TestIntentPipelineForwardsInPublishOrder(t *testing.T) {
	w := NewWorld()
	bridge := &fakeBridge{}
	bs, err := NewBridgeSystem(bridge, 0)
	require.NoError(t, err)

	sched := Factory.NewScheduler()
	sched.Register(publishTwiceSystem{})
	sched.Register(bs)

	sched.Tick(w, 0)

	require.Len(t, bridge.calls, 2)
	require.Equal(t, 1.0, bridge.calls[0].x)
	require.Equal(t, 2.0, bridge.calls[1].x)
	require.Equal(t, 0, Events[PositionChangedIntent](w).Len())
}

func TestNewBridgeSystemRejectsNilBridge(t *testing.T) {
	_, err := NewBridgeSystem(nil, 0)
	require.Error(t, err)
	require.IsType(t, InvalidArgumentError{}, err)
}

package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetParentAndParent(t *testing.T) {
	w := NewWorld()
	parent, _ := w.CreateEntity(PositionComponent)
	child, _ := w.CreateEntity(PositionComponent)

	require.NoError(t, w.SetParent(child, parent, nil))
	require.Equal(t, parent, w.Parent(child))
}

func TestSetParentTwiceFails(t *testing.T) {
	w := NewWorld()
	parentA, _ := w.CreateEntity(PositionComponent)
	parentB, _ := w.CreateEntity(PositionComponent)
	child, _ := w.CreateEntity(PositionComponent)

	require.NoError(t, w.SetParent(child, parentA, nil))
	err := w.SetParent(child, parentB, nil)
	require.Error(t, err)
	require.IsType(t, EntityRelationError{}, err)
}

func TestParentInvalidatedAfterRecycle(t *testing.T) {
	w := NewWorld()
	parent, _ := w.CreateEntity(PositionComponent)
	child, _ := w.CreateEntity(PositionComponent)
	require.NoError(t, w.SetParent(child, parent, nil))

	require.NoError(t, w.DestroyEntity(parent))
	w.CreateEntity(PositionComponent) // recycles parent's slot with a new version

	require.False(t, w.Parent(child).Valid())
}

func TestDestroyCallbackFires(t *testing.T) {
	w := NewWorld()
	e, _ := w.CreateEntity(PositionComponent)

	var destroyed Entity
	require.NoError(t, w.SetDestroyCallback(e, func(got Entity) { destroyed = got }))
	require.NoError(t, w.DestroyEntity(e))

	require.Equal(t, e, destroyed)
}

func TestComponentsAsString(t *testing.T) {
	w := NewWorld()
	e, _ := w.CreateEntity(PositionComponent, VelocityComponent)
	require.Equal(t, "[Position, Velocity]", w.ComponentsAsString(e))
}

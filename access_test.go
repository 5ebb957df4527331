package ecs

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetHasMustGetComponent(t *testing.T) {
	w := NewWorld()
	e, err := w.CreateEntity(PositionComponent)
	require.NoError(t, err)
	require.NoError(t, AddComponent(w, e, PositionComponent, Position{X: 1}))

	require.True(t, HasComponent(w, e, PositionComponent))
	require.False(t, HasComponent(w, e, VelocityComponent))

	pos, ok := GetComponent(w, e, PositionComponent)
	require.True(t, ok)
	require.Equal(t, Position{X: 1}, *pos)

	_, ok = GetComponent(w, e, VelocityComponent)
	require.False(t, ok)

	require.Equal(t, Position{X: 1}, *MustGetComponent(w, e, PositionComponent))
}

func TestMustGetComponentPanicsWhenAbsent(t *testing.T) {
	w := NewWorld()
	e, _ := w.CreateEntity(PositionComponent)
	require.Panics(t, func() {
		MustGetComponent(w, e, VelocityComponent)
	})
}

// Exercises the lock-then-drain discipline structural mutation relies on:
// CreateEntity/AddComponent/etc. refuse to run immediately while the World
// is locked by an in-progress query walk.
func TestStructuralMutationRejectedWhileLocked(t *testing.T) {
	w := NewWorld()
	e, err := w.CreateEntity(PositionComponent)
	require.NoError(t, err)

	q := Factory.NewQuery().With(PositionComponent).Compile()
	for range w.Query(q) {
		require.True(t, w.Locked())
		_, err := w.CreateEntity(PositionComponent)
		require.Equal(t, LockedWorldError{}, err)
		require.Equal(t, LockedWorldError{}, w.DestroyEntity(e))
		require.Equal(t, LockedWorldError{}, AddComponent(w, e, VelocityComponent, Velocity{}))
		require.Equal(t, LockedWorldError{}, RemoveComponent(w, e, PositionComponent))
	}
	require.False(t, w.Locked())
}

func TestEnqueuedOperationsDrainAfterQueryWalk(t *testing.T) {
	w := NewWorld()
	e, err := w.CreateEntity(PositionComponent)
	require.NoError(t, err)

	q := Factory.NewQuery().With(PositionComponent).Compile()
	for range w.Query(q) {
		EnqueueAddComponent(w, e, VelocityComponent, Velocity{X: 5})
	}

	require.True(t, HasComponent(w, e, VelocityComponent))
	vel, ok := GetComponent(w, e, VelocityComponent)
	require.True(t, ok)
	require.Equal(t, Velocity{X: 5}, *vel)
}

func TestEnqueueCreateAndDestroyDuringLock(t *testing.T) {
	w := NewWorld()
	e, err := w.CreateEntity(PositionComponent)
	require.NoError(t, err)

	var spawned Entity
	q := Factory.NewQuery().With(PositionComponent).Compile()
	for range w.Query(q) {
		w.EnqueueCreateEntity(PositionComponent)
		w.EnqueueDestroyEntity(e)
	}

	require.Equal(t, 1, w.TotalMatched(q))
	for chunk := range w.Query(q) {
		for row := 0; row < chunk.Count(); row++ {
			spawned, _ = chunk.Entity(row)
		}
	}
	require.NotEqual(t, e, spawned)

	_, _, err = w.directory.locate(e)
	require.Error(t, err)
}

// encodeHealth is a minimal ComponentEncoder used to exercise the snapshot
// registered-codec path end to end.
func encodeHealth(value any) ([]byte, error) {
	h := value.(Health)
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(h.Current))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(h.Max))
	return buf, nil
}

func TestSnapshotWithRegisteredEncoderReportsKindAsUnsupported(t *testing.T) {
	w := NewWorld()
	e, err := w.CreateEntity(HealthComponent)
	require.NoError(t, err)
	require.NoError(t, AddComponent(w, e, HealthComponent, Health{Current: 10, Max: 20}))

	codecs := NewSnapshotCodecs()
	RegisterEncoder[Health](codecs, encodeHealth)

	blob, err := Snapshot(w, codecs, false, 0)
	require.NoError(t, err)

	result, err := Restore(blob, codecs)
	require.NoError(t, err)
	require.Contains(t, result.UnsupportedKinds, "Health")
	require.Equal(t, 1, totalEntities(result.World))
}

package ecs

import (
	"sort"
	"time"
)

// Phase orders a system relative to every other phase: every Update system
// runs before any PostUpdate system, which runs before any Presentation
// system (§4.7).
type Phase int

const (
	Update Phase = iota
	PostUpdate
	Presentation
)

// System is one unit of per-tick logic registered with a Scheduler. Go has
// no compile-time "const trait", so the (Phase, Order) pair spec.md reads
// off the system's declaration is instead reported through methods, the
// way Salamander5876-AnimoEngine's System reports Priority()/Enabled()
// rather than exposing them as struct fields queried by the manager.
type System interface {
	Phase() Phase
	Order() int
	Update(w *World, dt time.Duration)
}

// systemStats is the timing window recorded per system (§4.7): current,
// peak, a rolling average over the last statsWindow frames, and a
// monotonic frame counter.
type systemStats struct {
	current        time.Duration
	peak           time.Duration
	frameCount     uint64
	window         [statsWindow]time.Duration
	windowFilled   int
	windowPosition int
}

const statsWindow = 30

func (s *systemStats) record(d time.Duration) {
	s.current = d
	if d > s.peak {
		s.peak = d
	}
	s.frameCount++
	s.window[s.windowPosition] = d
	s.windowPosition = (s.windowPosition + 1) % statsWindow
	if s.windowFilled < statsWindow {
		s.windowFilled++
	}
}

func (s *systemStats) rollingAverage() time.Duration {
	if s.windowFilled == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < s.windowFilled; i++ {
		total += s.window[i]
	}
	return total / time.Duration(s.windowFilled)
}

// SystemStats is the read-only snapshot exposed to callers inspecting a
// system's timing (§4.7 current/peak/rolling_average/frame_count).
type SystemStats struct {
	Current        time.Duration
	Peak           time.Duration
	RollingAverage time.Duration
	FrameCount     uint64
}

type registeredSystem struct {
	system System
	order  int // registration sequence, the tiebreaker after (Phase, Order)
	stats  systemStats
}

// Scheduler runs registered systems in deterministic (Phase, Order,
// registration sequence) order every tick (§4.7), recording per-system
// timing along the way.
type Scheduler struct {
	systems []*registeredSystem
	nextSeq int
	sorted  bool
}

func newScheduler() *Scheduler {
	return &Scheduler{}
}

// Register adds sys to the schedule. Systems are re-sorted lazily before
// the next Tick, so registration order within a call burst doesn't matter
// beyond the stable tiebreak it ultimately provides.
func (s *Scheduler) Register(sys System) {
	s.systems = append(s.systems, &registeredSystem{system: sys, order: s.nextSeq})
	s.nextSeq++
	s.sorted = false
}

func (s *Scheduler) ensureSorted() {
	if s.sorted {
		return
	}
	sort.SliceStable(s.systems, func(i, j int) bool {
		a, b := s.systems[i], s.systems[j]
		if a.system.Phase() != b.system.Phase() {
			return a.system.Phase() < b.system.Phase()
		}
		if a.system.Order() != b.system.Order() {
			return a.system.Order() < b.system.Order()
		}
		return a.order < b.order
	})
	s.sorted = true
}

// Tick runs every registered system once, in schedule order, against w.
func (s *Scheduler) Tick(w *World, dt time.Duration) {
	s.ensureSorted()
	for _, rs := range s.systems {
		start := time.Now()
		rs.system.Update(w, dt)
		rs.stats.record(time.Since(start))
	}
}

// StatsFor returns the recorded timing for sys, if it is registered.
func (s *Scheduler) StatsFor(sys System) (SystemStats, bool) {
	for _, rs := range s.systems {
		if rs.system == sys {
			return SystemStats{
				Current:        rs.stats.current,
				Peak:           rs.stats.peak,
				RollingAverage: rs.stats.rollingAverage(),
				FrameCount:     rs.stats.frameCount,
			}, true
		}
	}
	return SystemStats{}, false
}

//go:build !debug

package exec

// NodeTiming is the debug-build timing record type; present in non-debug
// builds only so NodeTimings' return type is always valid. It is never
// populated here — no timer calls are compiled in at all, so disabled
// builds pay nothing.
type NodeTiming struct {
	NodeIndex int
	Backward  bool
	Duration  int64
}

func (m *Model[T]) beginForwardSweep() {}

func (m *Model[T]) timeForward(_ int, run func()) {
	run()
}

func (m *Model[T]) timeBackward(_ int, run func()) {
	run()
}

// NodeTimings always returns nil outside debug builds.
func (m *Model[T]) NodeTimings() []NodeTiming {
	return nil
}

package confirmation

// Metrics receives workflow events; implemented by internal/metrics.
type Metrics interface {
	RequestCreated()
	RequestResolved(decision string)
	ResolveConflict()
}

type noopMetrics struct{}

func (noopMetrics) RequestCreated()        {}
func (noopMetrics) RequestResolved(string) {}
func (noopMetrics) ResolveConflict()       {}

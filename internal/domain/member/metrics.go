package member

// Metrics receives issuance events; implemented by internal/metrics.
type Metrics interface {
	CodeIssued(role string)
	CodeCollision()
}

type noopMetrics struct{}

func (noopMetrics) CodeIssued(string) {}
func (noopMetrics) CodeCollision()    {}

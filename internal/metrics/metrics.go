package metrics

type Counter interface {
	Inc()
}

type Metrics struct {
	Estimates      Counter
	Rejected       Counter
	RequestsFailed Counter
}

type noopCounter struct{}

func (noopCounter) Inc() {}

func NewNoop() *Metrics {
	n := noopCounter{}
	return &Metrics{
		Estimates:      n,
		Rejected:       n,
		RequestsFailed: n,
	}
}

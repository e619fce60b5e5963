package metrics

import (
	"math/rand"
)

var (
	sampleMethods   = []string{"GET", "POST", "PUT", "DELETE"}
	sampleEndpoints = []string{"/api/users", "/api/orders", "/api/products"}
)

// Sampler generates demonstration metric values so a freshly started stack
// has something to answer questions about.
type Sampler struct {
	collectors *Collectors
}

func NewSampler(collectors *Collectors) *Sampler {
	return &Sampler{collectors: collectors}
}

// Tick refreshes the demo gauges and records a synthetic request. Safe for
// concurrent use; the top-level rand functions and the collectors are both
// internally synchronized.
func (s *Sampler) Tick() {
	s.collectors.CPUUsage.Set(10 + rand.Float64()*80)
	s.collectors.MemoryUsage.Set(1e9 + rand.Float64()*7e9)

	s.collectors.RequestCount.WithLabelValues(
		sampleMethods[rand.Intn(len(sampleMethods))],
		sampleEndpoints[rand.Intn(len(sampleEndpoints))],
	).Inc()
	s.collectors.RequestLatency.Observe(0.1 + rand.Float64()*1.9)
}

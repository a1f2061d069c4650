package bough

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

// Stats counts scene activity. Counters are written by the goroutine that
// calls Scene.Update and may be read from any goroutine.
type Stats struct {
	Frames        atomic.Uint64 // Update calls
	FramesEmitted atomic.Uint64 // leaf frames delivered to OnFrame
	PhaseEvents   atomic.Uint64 // applied phase events
	DataUpdates   atomic.Uint64 // SetData calls after mount
	Errors        atomic.Uint64 // leaves whose animation failed to configure
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Frames        uint64
	FramesEmitted uint64
	PhaseEvents   uint64
	DataUpdates   uint64
	Errors        uint64
}

// Snapshot loads every counter.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Frames:        s.Frames.Load(),
		FramesEmitted: s.FramesEmitted.Load(),
		PhaseEvents:   s.PhaseEvents.Load(),
		DataUpdates:   s.DataUpdates.Load(),
		Errors:        s.Errors.Load(),
	}
}

// collector exposes Stats as Prometheus counters.
type collector struct {
	stats *Stats
	descs []*prometheus.Desc
}

// NewCollector returns a prometheus.Collector reading stats on every scrape.
func NewCollector(stats *Stats) prometheus.Collector {
	d := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("bough", "scene", name), help, nil, nil)
	}
	return &collector{
		stats: stats,
		descs: []*prometheus.Desc{
			d("updates_total", "Scene.Update calls."),
			d("frames_emitted_total", "Leaf frames delivered to renderers."),
			d("phase_events_total", "Applied transition phase events."),
			d("data_updates_total", "Trees received after mount."),
			d("errors_total", "Leaves rendered without animation after a configuration error."),
		},
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs {
		ch <- d
	}
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.stats.Snapshot()
	values := []uint64{snap.Frames, snap.FramesEmitted, snap.PhaseEvents, snap.DataUpdates, snap.Errors}
	for i, d := range c.descs {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(values[i]))
	}
}

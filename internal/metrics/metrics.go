// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exposes session-lifecycle counters over Prometheus,
// the way every comparable UDP/AEAD gateway carries them beside its
// protocol core.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder implements runtime.MetricsRecorder against prometheus counters.
// It satisfies that interface structurally, so this package does not
// import runtime and runtime does not import Prometheus.
type Recorder struct {
	sessionsStarted   prometheus.Counter
	sessionsCompleted prometheus.Counter
	sessionsCanceled  prometheus.Counter
	bytesTransferred  prometheus.Counter
}

// New registers and returns a Recorder against reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the global registry.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "filexfer",
			Name:      "sessions_started_total",
			Help:      "Number of sessions that received at least one frame.",
		}),
		sessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "filexfer",
			Name:      "sessions_completed_total",
			Help:      "Number of transfers that reached End.",
		}),
		sessionsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "filexfer",
			Name:      "sessions_canceled_total",
			Help:      "Number of transfers that reached Cancel.",
		}),
		bytesTransferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "filexfer",
			Name:      "bytes_transferred_total",
			Help:      "Sum of chunk bytes read or written across all sessions.",
		}),
	}
	reg.MustRegister(r.sessionsStarted, r.sessionsCompleted, r.sessionsCanceled, r.bytesTransferred)
	return r
}

func (r *Recorder) SessionStarted()   { r.sessionsStarted.Inc() }
func (r *Recorder) SessionCompleted() { r.sessionsCompleted.Inc() }
func (r *Recorder) SessionCanceled()  { r.sessionsCanceled.Inc() }
func (r *Recorder) BytesTransferred(n int) {
	r.bytesTransferred.Add(float64(n))
}

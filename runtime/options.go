// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"code.hybscloud.com/filexfer/wire"
)

// Options configures a Session or Server. Zero value is never used
// directly; NewSession/NewServer start from defaultOptions and apply overrides.
type Options struct {
	FS        afero.Fs
	ChunkSize int
	Logger    *logrus.Logger
	Metrics   MetricsRecorder
}

type Option func(*Options)

var defaultOptions = Options{
	FS:        afero.NewOsFs(),
	ChunkSize: wire.FILEChunkSize,
	Logger:    logrus.StandardLogger(),
	Metrics:   noopMetrics{},
}

// WithFS overrides the filesystem the streamer opens files against. Tests
// pass an afero.MemMapFs; production leaves the default afero.NewOsFs().
func WithFS(fs afero.Fs) Option {
	return func(o *Options) { o.FS = fs }
}

// WithChunkSize overrides the size of the chunks the download reader
// yields. Chunk counts and the ChunkSize field of Ready responses always
// use wire.FILEChunkSize, so any other value makes a download disagree
// with the counts it advertises; config.Load accepts only
// wire.FILEChunkSize.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

// WithLogger overrides the structured logger.
func WithLogger(l *logrus.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics overrides the metrics recorder. Defaults to a no-op so tests
// and callers that don't care about Prometheus never need a registry.
func WithMetrics(m MetricsRecorder) Option {
	return func(o *Options) { o.Metrics = m }
}

// MetricsRecorder is the subset of session-lifecycle signals the runtime
// reports. internal/metrics implements this against prometheus client
// counters; tests use a no-op or a scripted fake.
type MetricsRecorder interface {
	SessionStarted()
	SessionCompleted()
	SessionCanceled()
	BytesTransferred(n int)
}

type noopMetrics struct{}

func (noopMetrics) SessionStarted()        {}
func (noopMetrics) SessionCompleted()      {}
func (noopMetrics) SessionCanceled()       {}
func (noopMetrics) BytesTransferred(n int) {}

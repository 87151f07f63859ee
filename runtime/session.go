// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package runtime implements the session runtime (C7) and server accept
// loop (C8): it glues the secure envelope, the frame codec, the protocol
// state machine, and the chunked file streamer together into one
// request/response cycle per datagram.
package runtime

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"code.hybscloud.com/filexfer/envelope"
	"code.hybscloud.com/filexfer/filestream"
	"code.hybscloud.com/filexfer/internal/logging"
	"code.hybscloud.com/filexfer/session"
	"code.hybscloud.com/filexfer/wire"
)

// Transport is everything a Session needs from the network: one inbound
// datagram at a time from a single peer, and a way to answer it. The
// server accept loop (C8) implements this per peer atop one shared
// net.PacketConn; tests implement it with a scripted fake.
type Transport interface {
	Receive() ([]byte, error)
	Send([]byte) error
}

// errNoResponseToRetry reports a CRC-mismatched datagram arriving before the
// session has ever transmitted a response: there is nothing to resend, so
// the "resend the last transmitted response" contract (spec.md §9) cannot
// be honored and the session ends rather than emitting an empty datagram.
var errNoResponseToRetry = errors.New("runtime: crc mismatch with no prior response to retry")

// streamer is the tagged-variant slot DESIGN NOTES recommends: at most one
// of reader/writer is non-nil at any time, and it lives in the runtime, not
// the context, so dropping the Session closes the file.
type streamer struct {
	reader *filestream.Reader
	writer *filestream.Writer
}

// Session runs one peer's request/response cycle to completion. It owns
// the streamer and the session context and never shares them; the cipher
// may be shared, since Server hands one Cipher to all of its sessions.
type Session struct {
	opts      Options
	cipher    *envelope.Cipher
	transport Transport
	ctx       *session.Context
	stream    streamer
	log       *logrus.Entry
}

// NewSession constructs a Session for one peer. sessionID is the wire-level
// uint8 identity carried in Ready responses; the correlation ID minted here
// is a separate, log-only trace ID and never touches the wire.
func NewSession(sessionID uint8, transport Transport, cipher *envelope.Cipher, opts ...Option) *Session {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return newSessionWithOptions(sessionID, transport, cipher, o)
}

func newSessionWithOptions(sessionID uint8, transport Transport, cipher *envelope.Cipher, o Options) *Session {
	corrID := uuid.New()
	return &Session{
		opts:      o,
		cipher:    cipher,
		transport: transport,
		ctx:       session.New(sessionID),
		log: o.Logger.WithFields(logrus.Fields{
			"correlation_id": corrID.String(),
			"session_id":     sessionID,
		}),
	}
}

// Run drives the session loop until the protocol terminates the
// session (Close or a protocol error) or a transport/fatal envelope error
// ends it abnormally. End and Cancel finish the current transfer and the
// loop goes on to the next datagram. A nil return means the session ended
// the way the protocol specifies, not that every transfer succeeded.
//
// ctx carries the session's logger (see internal/logging): Run attaches
// the correlation-id entry minted at construction time and retrieves it
// back via logging.FromContext, the same Context/Cid() round trip
// ossrs-go-oryx-lib/logger uses, rather than reaching into a struct field.
func (s *Session) Run(ctx context.Context) error {
	ctx = logging.WithLogger(ctx, s.log)
	log := logging.FromContext(ctx)

	s.opts.Metrics.SessionStarted()
	defer log.Debug("session loop exited")

	var plain []byte
	needDatagram := true

	for {
		if needDatagram {
			datagram, err := s.transport.Receive()
			if err != nil {
				log.WithError(err).Warn("transport receive failed")
				return err
			}

			pt, err := s.cipher.Unwrap(datagram)
			if err != nil {
				if errors.Is(err, envelope.ErrCRCMismatch) {
					if len(s.ctx.Response) == 0 {
						log.Warn("crc mismatch with no prior response to retry, ending session")
						return errNoResponseToRetry
					}
					log.Debug("crc mismatch, resending last response")
					if sendErr := s.send(ctx); sendErr != nil {
						return sendErr
					}
					continue
				}
				log.WithError(err).Warn("envelope open failed, ending session")
				return err
			}
			plain = pt
		}

		frame, err := wire.Parse(plain)
		if err != nil {
			session.ParseFailed(s.ctx, err)
			return s.send(ctx)
		}

		act := session.Handle(s.ctx, frame)
		needDatagram = true

		switch act.Kind {
		case session.ActionSendError:
			log.WithField("err_msg", s.ctx.ErrMsg).Info("protocol error, ending session")
			return s.send(ctx)

		case session.ActionRequestFileInfoRead:
			reader, err := filestream.NewReader(s.opts.FS, s.ctx.Path, s.opts.ChunkSize)
			if err != nil {
				s.ctx.Response = session.BuildErrorResponse(s.ctx, err.Error())
				if sendErr := s.send(ctx); sendErr != nil {
					return sendErr
				}
				continue
			}
			s.stream.reader = reader
			s.ctx.FileOpen = true
			s.ctx.FileSize = reader.Size()
			s.ctx.ChunkCount = session.ChunkCountFromSize(s.ctx.FileSize)
			needDatagram = false

		case session.ActionRequestFileInfoWrite:
			writer, err := filestream.NewWriter(s.opts.FS, s.ctx.Path)
			if err != nil {
				s.ctx.Response = session.BuildErrorResponse(s.ctx, err.Error())
				if sendErr := s.send(ctx); sendErr != nil {
					return sendErr
				}
				continue
			}
			s.stream.writer = writer
			s.ctx.FileOpen = true
			s.ctx.ChunkCount = session.ChunkCountFromSize(s.ctx.FileSize)
			needDatagram = false

		case session.ActionSendResponse:
			if err := s.send(ctx); err != nil {
				return err
			}
			terminate, err := s.dispatchNext(act.Next)
			if err != nil {
				log.WithError(err).Warn("post-response I/O failed")
				return err
			}
			if terminate {
				return nil
			}
		}
	}
}

// send wraps ctx.Response through the secure envelope (C3) and transmits
// it. Every outbound datagram goes through this path; spec.md §4.7 requires
// all transmissions to be CRC+AEAD wrapped, not just inbound frames to be
// unwrapped. A Wrap failure is the fatal EnvelopeError spec.md §4.2
// describes: the caller tears down the session.
func (s *Session) send(ctx context.Context) error {
	datagram, err := s.cipher.Wrap(s.ctx.Response)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Warn("envelope seal failed, ending session")
		return err
	}
	return s.transport.Send(datagram)
}

func (s *Session) dispatchNext(next session.NextAction) (terminate bool, err error) {
	switch next {
	case session.NextNone:
		return false, nil
	case session.NextTerminate:
		return true, nil
	case session.NextReadData:
		return false, s.prefetchChunk()
	case session.NextWriteData:
		return false, s.commitChunk()
	case session.NextEnd:
		return false, s.finishTransfer(false)
	case session.NextCancel:
		return false, s.finishTransfer(true)
	default:
		return false, nil
	}
}

// prefetchChunk pulls the chunk that will back the *next* Sent response and
// advances current_chunk_id accordingly. It is a no-op past the last chunk.
func (s *Session) prefetchChunk() error {
	if s.ctx.CurrentChunkID >= s.ctx.ChunkCount {
		return nil
	}
	chunk, ok, err := s.stream.reader.Next()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.ctx.DataChunk = chunk
	s.ctx.IncrementCurrentChunkID()
	s.opts.Metrics.BytesTransferred(len(chunk))
	return nil
}

func (s *Session) commitChunk() error {
	if err := s.stream.writer.Write(s.ctx.DataChunk); err != nil {
		return err
	}
	s.opts.Metrics.BytesTransferred(len(s.ctx.DataChunk))
	s.ctx.IncrementCurrentChunkID()
	return nil
}

// finishTransfer tears down the streamer on End (durable finish) or Cancel
// (discard and delete, upload only: Cancel of an in-progress upload
// additionally deletes the partially-written file).
func (s *Session) finishTransfer(cancel bool) error {
	var err error
	path := s.ctx.Path

	if s.stream.writer != nil {
		if cancel {
			err = s.stream.writer.Close()
			if rmErr := filestream.Remove(s.opts.FS, path); rmErr != nil && err == nil {
				err = rmErr
			}
		} else {
			err = s.stream.writer.Finish()
		}
	}
	if s.stream.reader != nil {
		if closeErr := s.stream.reader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	s.stream = streamer{}

	if cancel {
		s.opts.Metrics.SessionCanceled()
	} else {
		s.opts.Metrics.SessionCompleted()
	}
	s.ctx.Reset()
	return err
}

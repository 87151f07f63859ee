// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package runtime

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"code.hybscloud.com/filexfer/envelope"
	"code.hybscloud.com/filexfer/wire"
)

// receiveBufferSize accommodates one maximal chunk ciphertext plus
// AEAD/CRC/nonce/frame-header overhead. Datagrams larger than this are
// truncated by the transport and will fail CRC, by design.
const receiveBufferSize = wire.FILEChunkSize + 1500

// Server serves one already-bound UDP socket and derives a Session per peer address on
// first contact. It does not change any single-session behavior;
// it only demultiplexes datagrams arriving on the shared socket.
type Server struct {
	conn   net.PacketConn
	cipher *envelope.Cipher
	opts   Options

	mu            sync.Mutex
	sessions      map[string]*peerSession
	nextSessionID uint8
}

type peerSession struct {
	inbox   chan []byte
	session *Session
}

// NewServer constructs a Server bound to conn, encrypting/decrypting with
// the given 32-byte shared key.
func NewServer(conn net.PacketConn, key []byte, opts ...Option) (*Server, error) {
	cipher, err := envelope.New(key)
	if err != nil {
		return nil, err
	}
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		conn:     conn,
		cipher:   cipher,
		opts:     o,
		sessions: make(map[string]*peerSession),
	}, nil
}

// Serve reads datagrams off the socket until it errors (including a
// deliberate Close from another goroutine) and routes each to its peer's
// Session, spawning one on first contact. ctx is attached to every spawned
// Session's logger (see internal/logging) and carried down into its Run
// loop.
func (srv *Server) Serve(ctx context.Context) error {
	buf := make([]byte, receiveBufferSize)
	for {
		n, addr, err := srv.conn.ReadFrom(buf)
		if err != nil {
			return err
		}
		datagram := make([]byte, n)
		copy(datagram, buf[:n])
		srv.dispatch(ctx, addr, datagram)
	}
}

// Close shuts down the listening socket, ending any in-flight Serve call.
func (srv *Server) Close() error { return srv.conn.Close() }

func (srv *Server) dispatch(ctx context.Context, addr net.Addr, datagram []byte) {
	srv.mu.Lock()
	peer, ok := srv.sessions[addr.String()]
	if !ok {
		peer = srv.spawnPeerLocked(ctx, addr)
	}
	srv.mu.Unlock()

	select {
	case peer.inbox <- datagram:
	default:
		// Peer already has a buffered request outstanding; the protocol is
		// strictly request/response per session, so a second concurrent
		// datagram before the first is handled indicates a confused or
		// retrying client. Drop it; CRC-retry covers transport loss, and a
		// genuinely new request will arrive again once the peer catches up.
		srv.opts.Logger.WithField("peer", addr.String()).Debug("dropped datagram: session busy")
	}
}

func (srv *Server) spawnPeerLocked(ctx context.Context, addr net.Addr) *peerSession {
	inbox := make(chan []byte, 1)
	transport := &packetTransport{conn: srv.conn, addr: addr, inbox: inbox}

	srv.nextSessionID++
	sess := newSessionWithOptions(srv.nextSessionID, transport, srv.cipher, srv.opts)
	peer := &peerSession{inbox: inbox, session: sess}
	srv.sessions[addr.String()] = peer

	go func() {
		err := sess.Run(ctx)
		if err != nil && !errors.Is(err, io.EOF) {
			srv.opts.Logger.WithError(err).WithField("peer", addr.String()).Info("session ended")
		}
		srv.mu.Lock()
		delete(srv.sessions, addr.String())
		srv.mu.Unlock()
	}()

	return peer
}

// packetTransport adapts one peer's slice of a shared net.PacketConn to the
// Transport interface a Session expects.
type packetTransport struct {
	conn  net.PacketConn
	addr  net.Addr
	inbox <-chan []byte
}

func (t *packetTransport) Receive() ([]byte, error) {
	datagram, ok := <-t.inbox
	if !ok {
		return nil, io.EOF
	}
	return datagram, nil
}

func (t *packetTransport) Send(b []byte) error {
	_, err := t.conn.WriteTo(b, t.addr)
	return err
}

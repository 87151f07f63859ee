// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

// NextAction tells the runtime what to do after it has transmitted the
// response a SendResponse Action carries.
type NextAction uint8

const (
	NextNone NextAction = iota
	NextTerminate
	NextReadData
	NextWriteData
	NextEnd
	NextCancel
)

// ActionKind distinguishes the four shapes an Action can take.
type ActionKind uint8

const (
	// ActionSendError transmits ctx.Response (an Error frame) and, in the
	// current core behaviour, ends the session.
	ActionSendError ActionKind = iota

	// ActionRequestFileInfoRead tells the runtime to open a Reader for
	// ctx.Path, populate ctx.FileSize/ctx.ChunkCount, set ctx.FileOpen, and
	// re-invoke Handle with the same inbound frame; it does not itself
	// touch ctx.DataChunk. The re-invoked Handle call finds FileOpen true
	// and DataChunk still empty, so it answers with Ready and a NextReadData
	// Action (NextNone, with Started set, for an empty file); only then,
	// after the Ready response has gone out, does the
	// runtime prefetch the first chunk into ctx.DataChunk. The repeated
	// Start that follows finds DataChunk already populated and gets the
	// first Sent.
	ActionRequestFileInfoRead

	// ActionRequestFileInfoWrite is the Upload-side counterpart of
	// ActionRequestFileInfoRead: the runtime opens a Writer and derives
	// ctx.ChunkCount from the FileSize already present in ctx.
	ActionRequestFileInfoWrite

	// ActionSendResponse transmits ctx.Response and then performs Next.
	ActionSendResponse
)

// Action is the state machine's verdict for one inbound frame: what the
// runtime must do before it can move on to the next datagram.
type Action struct {
	Kind ActionKind
	Next NextAction
}

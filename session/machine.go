// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "code.hybscloud.com/filexfer/wire"

// BuildErrorResponse records msg as ctx.ErrMsg and renders it as an Error
// frame. Used by the runtime for filesystem failures on the two-phase
// dispatch path: constructor errors are surfaced as Error frames, not
// fatal session termination, as opposed to the protocol-level failures
// Handle/ParseFailed produce via ActionSendError.
func BuildErrorResponse(ctx *Context, msg string) []byte {
	ctx.ErrMsg = msg
	return buildError(ctx)
}

// ParseFailed reports guard 1 of the transition table: the runtime calls
// this instead of Handle when wire.Parse itself rejected the inbound
// datagram. The response is addressed using the session's existing
// current method, since no frame was successfully parsed to adopt one from.
func ParseFailed(ctx *Context, parseErr error) Action {
	return fail(ctx, parseErr.Error())
}

// Handle is the protocol state machine (C6). It consumes one parsed inbound
// frame plus the session context, validates the frame against the current
// state, mutates ctx, and returns the Action the runtime must perform next.
// Handle never touches the filesystem or the network; RequestFileInfoRead
// and RequestFileInfoWrite tell the runtime to do that and re-invoke Handle
// on the same frame once the streamer is open.
func Handle(ctx *Context, f wire.Frame) Action {
	if ctx.Started {
		if f.Method != ctx.CurrentMethod {
			return fail(ctx, msgMethodMismatchWithSession)
		}
	} else {
		ctx.CurrentMethod = f.Method
	}

	if len(f.Fields) == 0 || f.Fields[0].Tag != wire.Command {
		return fail(ctx, msgFirstFieldMustBeCommand)
	}
	if len(f.Fields[0].Payload) != 1 {
		return fail(ctx, msgUnknownCommand)
	}
	cmd := wire.CommandCode(f.Fields[0].Payload[0])
	if !cmd.Valid() {
		return fail(ctx, msgUnknownCommand)
	}

	switch ctx.CurrentMethod {
	case wire.Close:
		return handleClose(ctx, f)
	case wire.Download:
		switch cmd {
		case wire.CmdStart:
			return handleDownloadStart(ctx, f)
		case wire.CmdNext:
			return handleDownloadNext(ctx, f)
		case wire.CmdRetry:
			return handleDownloadRetry(ctx, f)
		case wire.CmdEnd:
			return handleEnd(ctx, f)
		case wire.CmdCancel:
			return handleCancel(ctx, f)
		default:
			return fail(ctx, msgInvalidRequestOrNotStarted)
		}
	case wire.Upload:
		switch cmd {
		case wire.CmdStart:
			return handleUploadStart(ctx, f)
		case wire.CmdSend:
			return handleUploadSend(ctx, f)
		case wire.CmdEnd:
			return handleEnd(ctx, f)
		case wire.CmdCancel:
			return handleCancel(ctx, f)
		default:
			return fail(ctx, msgInvalidRequestOrNotStarted)
		}
	default:
		return fail(ctx, msgInvalidRequestOrNotStarted)
	}
}

func fail(ctx *Context, msg string) Action {
	ctx.ErrMsg = msg
	ctx.Response = buildError(ctx)
	return Action{Kind: ActionSendError, Next: NextNone}
}

func handleClose(ctx *Context, f wire.Frame) Action {
	if ctx.Started {
		return fail(ctx, msgInvalidRequestOrNotStarted)
	}
	if len(f.Fields) != 1 {
		return fail(ctx, msgWrongFieldCountForMethod)
	}
	ctx.Response = buildOk(ctx)
	return Action{Kind: ActionSendResponse, Next: NextTerminate}
}

// handleDownloadStart implements both halves of the two-phase Download
// Start row: the first pass (file not yet open) asks the runtime to open a
// reader; the re-invoked pass (file_open true) inspects whether the runtime
// already prefetched a chunk to decide between a bare Ready and a Ready
// immediately followed by a prefetch, or — on the third pass, once a chunk
// is sitting in ctx.DataChunk — the first Sent.
func handleDownloadStart(ctx *Context, f wire.Frame) Action {
	if ctx.Started {
		return fail(ctx, msgInvalidRequestOrNotStarted)
	}

	if !ctx.FileOpen {
		if len(f.Fields) != 2 {
			return fail(ctx, msgWrongFieldCountForMethod)
		}
		if f.Fields[1].Tag != wire.Path {
			return fail(ctx, msgSecondFieldMustBePath)
		}
		path, err := wire.DecodeASCIIPath(f.Fields[1].Payload)
		if err != nil {
			return fail(ctx, msgPathDecodeFailed)
		}
		ctx.Path = path
		return Action{Kind: ActionRequestFileInfoRead}
	}

	if len(ctx.DataChunk) == 0 {
		if ctx.ChunkCount == 0 {
			ctx.Started = true
			ctx.Response = buildReadyDownload(ctx)
			return Action{Kind: ActionSendResponse, Next: NextNone}
		}
		ctx.Response = buildReadyDownload(ctx)
		return Action{Kind: ActionSendResponse, Next: NextReadData}
	}

	ctx.Started = true
	ctx.Response = buildSent(ctx)
	return Action{Kind: ActionSendResponse, Next: NextReadData}
}

func handleDownloadNext(ctx *Context, f wire.Frame) Action {
	if !ctx.Started {
		return fail(ctx, msgInvalidRequestOrNotStarted)
	}
	if len(f.Fields) != 1 {
		return fail(ctx, msgWrongFieldCountForMethod)
	}
	if ctx.CurrentChunkID > ctx.ChunkCount {
		return fail(ctx, msgChunkIdOutOfRange)
	}
	ctx.Response = buildSent(ctx)
	if ctx.CurrentChunkID < ctx.ChunkCount {
		return Action{Kind: ActionSendResponse, Next: NextReadData}
	}
	return Action{Kind: ActionSendResponse, Next: NextNone}
}

// handleDownloadRetry re-sends the previously transmitted frame verbatim.
// By the time a Retry arrives, ctx.DataChunk/CurrentChunkID have already
// advanced to the chunk staged for the *next* report, so rebuilding a Sent
// frame from current context would report the wrong chunk; ctx.Response
// still holds the exact bytes last put on the wire.
func handleDownloadRetry(ctx *Context, f wire.Frame) Action {
	if !ctx.Started {
		return fail(ctx, msgInvalidRequestOrNotStarted)
	}
	if len(f.Fields) != 1 {
		return fail(ctx, msgWrongFieldCountForMethod)
	}
	return Action{Kind: ActionSendResponse, Next: NextNone}
}

func handleUploadStart(ctx *Context, f wire.Frame) Action {
	if ctx.Started {
		return fail(ctx, msgInvalidRequestOrNotStarted)
	}

	if !ctx.FileOpen {
		if len(f.Fields) != 3 {
			return fail(ctx, msgWrongFieldCountForMethod)
		}
		if f.Fields[1].Tag != wire.Path {
			return fail(ctx, msgSecondFieldMustBePath)
		}
		path, err := wire.DecodeASCIIPath(f.Fields[1].Payload)
		if err != nil {
			return fail(ctx, msgPathDecodeFailed)
		}
		if f.Fields[2].Tag != wire.FileSize {
			return fail(ctx, msgThirdFieldMustBeFileSize)
		}
		size, err := wire.DecodeUint64(f.Fields[2].Payload)
		if err != nil {
			return fail(ctx, msgIntegerDecodeFailed)
		}
		ctx.Path = path
		ctx.FileSize = size
		return Action{Kind: ActionRequestFileInfoWrite}
	}

	ctx.Started = true
	ctx.Response = buildReadyUpload(ctx)
	return Action{Kind: ActionSendResponse, Next: NextNone}
}

func handleUploadSend(ctx *Context, f wire.Frame) Action {
	if !ctx.Started {
		return fail(ctx, msgInvalidRequestOrNotStarted)
	}
	if len(f.Fields) != 3 {
		return fail(ctx, msgWrongFieldCountForMethod)
	}
	if f.Fields[1].Tag != wire.ChunkID {
		return fail(ctx, msgSecondFieldMustBeChunkID)
	}
	parsedID, err := wire.DecodeUint64(f.Fields[1].Payload)
	if err != nil {
		return fail(ctx, msgIntegerDecodeFailed)
	}
	if f.Fields[2].Tag != wire.DataChunk {
		return fail(ctx, msgThirdFieldMustBeDataChunk)
	}

	expected := uint64(ctx.CurrentChunkID) + 1
	if expected > uint64(ctx.ChunkCount) {
		return fail(ctx, msgChunkIdOutOfRange)
	}
	if parsedID != expected {
		return fail(ctx, msgChunkIdMismatch(expected, parsedID))
	}

	ctx.DataChunk = f.Fields[2].Payload
	ctx.Response = buildReceived(ctx)
	return Action{Kind: ActionSendResponse, Next: NextWriteData}
}

func handleEnd(ctx *Context, f wire.Frame) Action {
	if !ctx.Started {
		return fail(ctx, msgInvalidRequestOrNotStarted)
	}
	if len(f.Fields) != 1 {
		return fail(ctx, msgWrongFieldCountForMethod)
	}
	if ctx.CurrentChunkID != ctx.ChunkCount {
		return fail(ctx, msgChunksNotComplete)
	}
	ctx.Started = false
	ctx.Response = buildOk(ctx)
	return Action{Kind: ActionSendResponse, Next: NextEnd}
}

func handleCancel(ctx *Context, f wire.Frame) Action {
	if !ctx.Started {
		return fail(ctx, msgInvalidRequestOrNotStarted)
	}
	if len(f.Fields) != 1 {
		return fail(ctx, msgWrongFieldCountForMethod)
	}
	ctx.Started = false
	ctx.Response = buildOk(ctx)
	return Action{Kind: ActionSendResponse, Next: NextCancel}
}

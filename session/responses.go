// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "code.hybscloud.com/filexfer/wire"

// statusField builds the one-byte Status field every outbound response
// carries.
func statusField(s wire.StatusCode) wire.Field {
	return wire.Field{Tag: wire.Status, Payload: []byte{byte(s)}}
}

func intField(tag wire.FieldTag, n uint64) wire.Field {
	return wire.Field{Tag: tag, Payload: wire.EncodeUint64(n)}
}

// buildError renders ctx.ErrMsg as an Error status frame.
func buildError(ctx *Context) []byte {
	return wire.Serialize(wire.Frame{
		Method: ctx.CurrentMethod,
		Fields: []wire.Field{
			statusField(wire.StatusError),
			{Tag: wire.ErrorMsg, Payload: []byte(ctx.ErrMsg)},
		},
	})
}

// buildReadyDownload renders the Ready response for a download Start.
func buildReadyDownload(ctx *Context) []byte {
	return wire.Serialize(wire.Frame{
		Method: ctx.CurrentMethod,
		Fields: []wire.Field{
			statusField(wire.StatusReady),
			intField(wire.SessionID, uint64(ctx.SessionID)),
			intField(wire.FileSize, ctx.FileSize),
			intField(wire.ChunkSize, wire.FILEChunkSize),
			intField(wire.ChunksCount, uint64(ctx.ChunkCount)),
		},
	})
}

// buildReadyUpload renders the Ready response for an upload Start.
func buildReadyUpload(ctx *Context) []byte {
	return wire.Serialize(wire.Frame{
		Method: ctx.CurrentMethod,
		Fields: []wire.Field{
			statusField(wire.StatusReady),
			intField(wire.SessionID, uint64(ctx.SessionID)),
			intField(wire.ChunkSize, wire.FILEChunkSize),
			intField(wire.ChunksCount, uint64(ctx.ChunkCount)),
		},
	})
}

// buildSent renders a Sent response carrying ctx.CurrentChunkID and
// ctx.DataChunk.
func buildSent(ctx *Context) []byte {
	return wire.Serialize(wire.Frame{
		Method: ctx.CurrentMethod,
		Fields: []wire.Field{
			statusField(wire.StatusSent),
			intField(wire.ChunkID, uint64(ctx.CurrentChunkID)),
			{Tag: wire.DataChunk, Payload: ctx.DataChunk},
		},
	})
}

// buildReceived renders a bare Received response.
func buildReceived(ctx *Context) []byte {
	return wire.Serialize(wire.Frame{
		Method: ctx.CurrentMethod,
		Fields: []wire.Field{statusField(wire.StatusReceived)},
	})
}

// buildOk renders a bare Ok response.
func buildOk(ctx *Context) []byte {
	return wire.Serialize(wire.Frame{
		Method: ctx.CurrentMethod,
		Fields: []wire.Field{statusField(wire.StatusOk)},
	})
}

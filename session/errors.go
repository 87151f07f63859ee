// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "fmt"

// Error taxonomy strings. Each is the exact ErrMsg payload the machine
// writes into ctx before returning ActionSendError; wording is part of the
// wire contract, not freely rewritable.
const (
	msgWrongFieldCountForMethod     = "wrong field count for method"
	msgFirstFieldMustBeCommand      = "first field must be Command"
	msgUnknownCommand               = "unknown command"
	msgMethodMismatchWithSession    = "method does not match session"
	msgSecondFieldMustBePath        = "second field must be Path"
	msgThirdFieldMustBeFileSize     = "third field must be FileSize"
	msgSecondFieldMustBeChunkID     = "second field must be ChunkID"
	msgThirdFieldMustBeDataChunk    = "third field must be DataChunk"
	msgPathDecodeFailed             = "path decode failed"
	msgIntegerDecodeFailed          = "integer decode failed"
	msgChunkIdOutOfRange            = "chunk_id out of range"
	msgChunksNotComplete            = "chunks not complete"
	msgInvalidRequestOrNotStarted   = "invalid request or method not started"
)

// msgChunkIdMismatch renders the ChunkIdMismatch(expected, got) message.
// The "Excepted" spelling is the wire contract's exact wording, not a typo
// to be fixed.
func msgChunkIdMismatch(expected, got uint64) string {
	return fmt.Sprintf("Excepted %d in chunk_id, but found %d", expected, got)
}

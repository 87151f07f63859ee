// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire_test

import (
	"bytes"
	"testing"

	"code.hybscloud.com/filexfer/wire"
)

func sampleFrame() wire.Frame {
	return wire.Frame{
		Method: wire.Download,
		Fields: []wire.Field{
			{Tag: wire.Command, Payload: []byte{byte(wire.CmdStart)}},
			{Tag: wire.Path, Payload: []byte("a.txt")},
		},
	}
}

func TestParseSerialize_RoundTrip(t *testing.T) {
	cases := []wire.Frame{
		sampleFrame(),
		{Method: wire.Close, Fields: []wire.Field{{Tag: wire.Command, Payload: []byte{byte(wire.CmdStart)}}}},
		{Method: wire.Standard, Fields: nil},
		{
			Method: wire.Upload,
			Fields: []wire.Field{
				{Tag: wire.Command, Payload: []byte{byte(wire.CmdSend)}},
				{Tag: wire.ChunkID, Payload: wire.EncodeUint64(1)},
				{Tag: wire.DataChunk, Payload: bytes.Repeat([]byte{0xAB}, 64512)},
			},
		},
	}
	for i, want := range cases {
		b := wire.Serialize(want)
		got, err := wire.Parse(b)
		if err != nil {
			t.Fatalf("case %d: parse: %v", i, err)
		}
		if got.Method != want.Method || len(got.Fields) != len(want.Fields) {
			t.Fatalf("case %d: shape mismatch: got %+v want %+v", i, got, want)
		}
		for j := range want.Fields {
			if got.Fields[j].Tag != want.Fields[j].Tag || !bytes.Equal(got.Fields[j].Payload, want.Fields[j].Payload) {
				t.Fatalf("case %d field %d: got %+v want %+v", i, j, got.Fields[j], want.Fields[j])
			}
		}
	}
}

func TestSerialize_ExactSize(t *testing.T) {
	f := sampleFrame()
	b := wire.Serialize(f)
	want := 2 + (3 + 1 + 1) + (3 + 1 + 5)
	if len(b) != want {
		t.Fatalf("size = %d, want %d", len(b), want)
	}
}

func TestParse_HeaderTooShort(t *testing.T) {
	for _, b := range [][]byte{nil, {}, {0x02}} {
		if _, err := wire.Parse(b); err != wire.ErrHeaderTooShort {
			t.Fatalf("input %v: err = %v, want ErrHeaderTooShort", b, err)
		}
	}
}

func TestParse_UnknownMethod(t *testing.T) {
	b := []byte{0xFF, 0x00}
	if _, err := wire.Parse(b); err != wire.ErrUnknownMethod {
		t.Fatalf("err = %v, want ErrUnknownMethod", err)
	}
}

func TestParse_UnknownFieldType(t *testing.T) {
	b := wire.Serialize(sampleFrame())
	// Corrupt the first field's tag byte (offset 2) to an undefined value.
	b[2] = 0xFF
	if _, err := wire.Parse(b); err != wire.ErrUnknownFieldType {
		t.Fatalf("err = %v, want ErrUnknownFieldType", err)
	}
}

func TestParse_DuplicateField(t *testing.T) {
	f := wire.Frame{
		Method: wire.Download,
		Fields: []wire.Field{
			{Tag: wire.Command, Payload: []byte{byte(wire.CmdStart)}},
			{Tag: wire.Command, Payload: []byte{byte(wire.CmdNext)}},
		},
	}
	if _, err := wire.Parse(wire.Serialize(f)); err != wire.ErrDuplicateField {
		t.Fatalf("err = %v, want ErrDuplicateField", err)
	}
}

func TestParse_FieldTooShort(t *testing.T) {
	b := wire.Serialize(sampleFrame())
	// Truncate right after declaring one more field than exists.
	b = b[:3]
	if _, err := wire.Parse(b); err != wire.ErrFieldTooShort {
		t.Fatalf("err = %v, want ErrFieldTooShort", err)
	}
}

func TestParse_BadFieldLength(t *testing.T) {
	t.Run("length_below_two", func(t *testing.T) {
		b := []byte{byte(wire.Download), 0x01, byte(wire.Command), 0x00, 0x01, 0x00}
		if _, err := wire.Parse(b); err != wire.ErrBadFieldLength {
			t.Fatalf("err = %v, want ErrBadFieldLength", err)
		}
	})
	t.Run("payload_runs_past_buffer", func(t *testing.T) {
		b := []byte{byte(wire.Download), 0x01, byte(wire.Command), 0x00, 0xFF}
		if _, err := wire.Parse(b); err != wire.ErrBadFieldLength {
			t.Fatalf("err = %v, want ErrBadFieldLength", err)
		}
	})
	t.Run("bad_terminator", func(t *testing.T) {
		b := wire.Serialize(sampleFrame())
		// Terminator of the first field (Command, payload length 1) is at offset 2+3+1=6.
		b[6] = 0x01
		if _, err := wire.Parse(b); err != wire.ErrBadFieldLength {
			t.Fatalf("err = %v, want ErrBadFieldLength", err)
		}
	})
}

func TestParse_TrailingBytes(t *testing.T) {
	b := append(wire.Serialize(sampleFrame()), 0x00)
	if _, err := wire.Parse(b); err != wire.ErrTrailingBytes {
		t.Fatalf("err = %v, want ErrTrailingBytes", err)
	}
}

func TestFrame_FieldLookup(t *testing.T) {
	f := sampleFrame()
	fld, ok := f.Field(wire.Path)
	if !ok || string(fld.Payload) != "a.txt" {
		t.Fatalf("Field(Path) = %+v, %v", fld, ok)
	}
	if _, ok := f.Field(wire.CRC); ok {
		t.Fatalf("Field(CRC) unexpectedly found")
	}
}

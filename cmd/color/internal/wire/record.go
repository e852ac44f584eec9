// Package wire defines the Exchange Record and its on-the-wire framing.
//
// Frame layout:
//
//	| 'C' 'L' 'R' | version (1B) | payload length (4B, big-endian) | CBOR payload |
//
// The payload is a fixed-order CBOR array:
// [userName, colorSentFromClient, colorSentFromServer, messageToClient, colorCount].
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
)

const (
	// Version is the only frame version this package reads and writes.
	Version byte = 1

	headerLen = 8

	// MaxPayloadLen guards against corrupt or hostile length fields.
	MaxPayloadLen = 64 << 10
)

var magic = [3]byte{'C', 'L', 'R'}

// Record is the message exchanged by client and server.
// The server-settable fields stay empty until the server has processed the record.
type Record struct {
	UserName            string
	ColorSentFromClient string
	ColorSentFromServer string
	MessageToClient     string
	ColorCount          uint64
}

// recordV1 is the version 1 payload. Field order is part of the protocol.
type recordV1 struct {
	_                   struct{} `cbor:",toarray"`
	UserName            string
	ColorSentFromClient string
	ColorSentFromServer string
	MessageToClient     string
	ColorCount          uint64
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(fmt.Sprintf("wire: cbor encode mode: %v", err))
	}
	// Text fields are free-form, so strings round-trip byte for byte
	// even when they are not valid UTF-8.
	decMode, err = cbor.DecOptions{
		UTF8:             cbor.UTF8DecodeInvalid,
		MaxArrayElements: 16,
		MaxMapPairs:      16,
		MaxNestedLevels:  4,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("wire: cbor decode mode: %v", err))
	}
}

// Marshal returns the complete frame for r.
func Marshal(r *Record) ([]byte, error) {
	payload, err := encMode.Marshal(recordV1{
		UserName:            r.UserName,
		ColorSentFromClient: r.ColorSentFromClient,
		ColorSentFromServer: r.ColorSentFromServer,
		MessageToClient:     r.MessageToClient,
		ColorCount:          r.ColorCount,
	})
	if err != nil {
		return nil, core.NewError(core.KindEncode, "encode", err)
	}
	if len(payload) > MaxPayloadLen {
		return nil, core.NewError(core.KindFraming, "encode",
			fmt.Errorf("payload too large: %d bytes", len(payload)))
	}

	frame := make([]byte, headerLen+len(payload))
	copy(frame[0:3], magic[:])
	frame[3] = Version
	binary.BigEndian.PutUint32(frame[4:8], uint32(len(payload)))
	copy(frame[headerLen:], payload)
	return frame, nil
}

// Encode writes one framed record to w in a single Write call.
func Encode(w io.Writer, r *Record) error {
	frame, err := Marshal(r)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return core.NewError(core.KindIO, "write", err)
	}
	return nil
}

// Decode reads exactly one framed record from r.
// A stream that ends early yields a KindFraming error, a payload that is not a
// valid record yields KindDecode, and other read failures yield KindIO.
func Decode(r io.Reader) (*Record, error) {
	var header [headerLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, readError("read header", err)
	}
	if !bytes.Equal(header[0:3], magic[:]) {
		return nil, core.NewError(core.KindFraming, "read header",
			fmt.Errorf("bad magic %q", header[0:3]))
	}
	if header[3] != Version {
		return nil, core.NewError(core.KindFraming, "read header",
			fmt.Errorf("unsupported version %d", header[3]))
	}

	n := binary.BigEndian.Uint32(header[4:8])
	if n == 0 || n > MaxPayloadLen {
		return nil, core.NewError(core.KindFraming, "read header",
			fmt.Errorf("invalid payload length: %d", n))
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, readError("read payload", err)
	}
	return Unmarshal(payload)
}

// Unmarshal decodes a version 1 payload (without the frame header).
func Unmarshal(payload []byte) (*Record, error) {
	var v recordV1
	if err := decMode.Unmarshal(payload, &v); err != nil {
		return nil, core.NewError(core.KindDecode, "decode", err)
	}
	return &Record{
		UserName:            v.UserName,
		ColorSentFromClient: v.ColorSentFromClient,
		ColorSentFromServer: v.ColorSentFromServer,
		MessageToClient:     v.MessageToClient,
		ColorCount:          v.ColorCount,
	}, nil
}

func readError(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return core.NewError(core.KindFraming, op, err)
	}
	return core.NewError(core.KindIO, op, err)
}

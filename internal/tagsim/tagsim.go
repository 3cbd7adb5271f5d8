// Package tagsim is a file-backed tag reader technology. A "tag" is a
// single framed record in a device file:
//
//	[1 byte type length][type][2 bytes big-endian payload length][payload]
//
// A missing device file means no tag is in range (the reader retries); an
// empty one means the reader hardware is switched off. The write side is
// used by tests and the hidden simulate command to provision tags.
package tagsim

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/ironiq/gymtap/internal/models"
	"github.com/ironiq/gymtap/internal/ndef"
	"github.com/ironiq/gymtap/internal/tagreader"
)

// FileTechnology implements tagreader.Technology over a device file.
type FileTechnology struct {
	path string
	data []byte // set between Connect and Close
}

func New(path string) *FileTechnology {
	return &FileTechnology{path: path}
}

func (t *FileTechnology) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return fmt.Errorf("no tag in range at %s", t.path)
	}
	if err != nil {
		return fmt.Errorf("failed to acquire tag: %w", err)
	}
	if len(data) == 0 {
		return tagreader.ErrDisabled
	}

	t.data = data
	return nil
}

func (t *FileTechnology) ReadRecord(ctx context.Context) ([]byte, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if t.data == nil {
		return nil, nil, fmt.Errorf("read before acquisition")
	}

	data := t.data
	if len(data) < 1 {
		return nil, nil, tagreader.ErrNoRecord
	}
	typeLen := int(data[0])
	if len(data) < 1+typeLen+2 {
		return nil, nil, fmt.Errorf("truncated tag record header")
	}
	recordType := data[1 : 1+typeLen]

	payloadLen := int(binary.BigEndian.Uint16(data[1+typeLen:]))
	rest := data[1+typeLen+2:]
	if len(rest) < payloadLen {
		return nil, nil, fmt.Errorf("truncated tag record payload: want %d bytes, have %d", payloadLen, len(rest))
	}

	return recordType, rest[:payloadLen], nil
}

func (t *FileTechnology) Close() error {
	t.data = nil
	return nil
}

// Frame renders one record in the device file framing.
func Frame(recordType, payload []byte) ([]byte, error) {
	if len(recordType) > 0xFF {
		return nil, fmt.Errorf("record type too long: %d bytes", len(recordType))
	}
	if len(payload) > 0xFFFF {
		return nil, fmt.Errorf("record payload too long: %d bytes", len(payload))
	}

	out := make([]byte, 0, 3+len(recordType)+len(payload))
	out = append(out, byte(len(recordType)))
	out = append(out, recordType...)
	out = binary.BigEndian.AppendUint16(out, uint16(len(payload)))
	out = append(out, payload...)
	return out, nil
}

// WriteRecord provisions the device file with one raw record.
func WriteRecord(path string, recordType, payload []byte) error {
	framed, err := Frame(recordType, payload)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, framed, 0644); err != nil {
		return fmt.Errorf("failed to write tag device: %w", err)
	}
	return nil
}

// WriteMIME provisions the device file with a MIME-framed payload, the
// format real machines write.
func WriteMIME(path string, p *models.CompactPayload) error {
	recordType, payload, err := ndef.Encode(p)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	return WriteRecord(path, recordType, payload)
}

// WriteText provisions the device file with a text-framed payload, the
// fallback format of machines with older firmware.
func WriteText(path string, p *models.CompactPayload, lang string) error {
	payload, err := ndef.EncodeText(p, lang)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	return WriteRecord(path, []byte("T"), payload)
}

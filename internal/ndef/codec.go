// Package ndef decodes the compact workout payload carried on an
// instrumented machine's contactless tag. A tag holds a single record,
// framed either as a MIME record typed application/json (payload is raw
// UTF-8 JSON) or as an NDEF-style text record (payload is
// [flags][language code][utf8 or utf16 text]).
//
// Decoding is pure and idempotent: same bytes in, same payload out.
package ndef

import (
	"encoding/json"

	"golang.org/x/text/encoding/unicode"

	"github.com/ironiq/gymtap/internal/models"
)

// MIMETypeJSON is the record type of a MIME-framed tag payload.
const MIMETypeJSON = "application/json"

const (
	textFlagUTF16   = 0x80 // bit 7 of the text record flags byte
	textLangLenMask = 0x3F // bits 0-5: language code byte length
)

// Decode turns one raw tag record into a CompactPayload. recordType is the
// record's type field; payload is its payload bytes. Failures are always
// *ParseError, classified by what broke.
func Decode(recordType, payload []byte) (*models.CompactPayload, error) {
	if len(payload) == 0 {
		return nil, parseErrorf(InvalidRecord, nil, "empty record payload")
	}

	var text []byte
	if string(recordType) == MIMETypeJSON {
		// MIME record: payload is the raw JSON, no language prefix.
		text = payload
	} else {
		decoded, err := decodeTextRecord(payload)
		if err != nil {
			return nil, err
		}
		text = decoded
	}

	return decodeJSON(text)
}

// decodeTextRecord unwraps the [flags][lang][text] framing of a text record.
func decodeTextRecord(payload []byte) ([]byte, error) {
	flags := payload[0]
	langLen := int(flags & textLangLenMask)
	if len(payload) < 1+langLen {
		return nil, parseErrorf(InvalidRecord, nil,
			"text record truncated: %d bytes, language code needs %d", len(payload), langLen)
	}

	text := payload[1+langLen:]
	if flags&textFlagUTF16 == 0 {
		return text, nil
	}

	// UTF-16 with optional BOM, big-endian when absent.
	utf8Text, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(text)
	if err != nil {
		return nil, parseErrorf(InvalidRecord, err, "undecodable UTF-16 text")
	}
	return utf8Text, nil
}

// compactWire mirrors CompactPayload with presence-checkable fields so a
// syntactically valid document with missing keys fails as InvalidStructure,
// not InvalidJSON.
type compactWire struct {
	M *string         `json:"m"`
	T *string         `json:"t"`
	A *string         `json:"a"`
	S json.RawMessage `json:"s"`
}

func decodeJSON(text []byte) (*models.CompactPayload, error) {
	var wire compactWire
	if err := json.Unmarshal(text, &wire); err != nil {
		return nil, parseErrorf(InvalidJSON, err, "invalid JSON in tag record")
	}

	if wire.M == nil || wire.T == nil || wire.A == nil || wire.S == nil {
		return nil, parseErrorf(InvalidStructure, nil,
			"compact payload missing required fields (m, t, a, s)")
	}

	var sessions []models.SessionEntry
	if err := json.Unmarshal(wire.S, &sessions); err != nil {
		return nil, parseErrorf(InvalidStructure, err, "invalid sessions array")
	}

	return &models.CompactPayload{
		MachineID:     *wire.M,
		MachineType:   *wire.T,
		NextSessionID: *wire.A,
		Sessions:      sessions,
	}, nil
}

// Encode renders a payload as a MIME record: the exact inverse of the
// Decode MIME path. Used by the tag simulator to provision tags.
func Encode(p *models.CompactPayload) (recordType, payload []byte, err error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	return []byte(MIMETypeJSON), data, nil
}

// EncodeText renders a payload as a UTF-8 text record with the given
// language code, for tags written by firmware that lacks MIME framing.
func EncodeText(p *models.CompactPayload, lang string) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+len(lang)+len(data))
	out = append(out, byte(len(lang)&textLangLenMask))
	out = append(out, lang...)
	out = append(out, data...)
	return out, nil
}

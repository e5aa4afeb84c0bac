package datfile

import (
	"bytes"
	"errors"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/udisondev/l2skilldata/internal/crypto"
)

// Version211 is the only container layout handled by this package.
const Version211 = "Lineage2Ver211"

const (
	blockSize     = 8
	prefixSize    = 8 // payloadSize + recordCount
	checksumSize  = 4
	minBodySize   = 16
	lengthSize    = 4
	maxRecordSize = math.MaxUint32
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Codec converts between container bytes and Documents.
//
// File layout:
//
//	header   version string in UTF-16LE
//	body     Transform(plaintext), len%8 == 0
//
// Plaintext:
//
//	uint32 payloadSize, uint32 recordCount
//	recordCount × (uint32 byteLen, UTF-16LE text)
//	zero padding (0..7 bytes)
//	uint32 checksum (XOR of all 32-bit words is zero)
type Codec struct {
	version   string
	header    []byte
	transform Transform
}

// NewCodec creates a codec for the given version header and body transform.
func NewCodec(version string, t Transform) (*Codec, error) {
	header, err := encodeText(version)
	if err != nil {
		return nil, fmt.Errorf("encoding header %q: %w", version, err)
	}
	return &Codec{version: version, header: header, transform: t}, nil
}

// NewVer211Codec returns the codec for Lineage2Ver211 files.
func NewVer211Codec() (*Codec, error) {
	t, err := NewBlowfishTransform(crypto.DatKeyVer211)
	if err != nil {
		return nil, err
	}
	return NewCodec(Version211, t)
}

// Version returns the version string the codec reads and writes.
func (c *Codec) Version() string { return c.version }

// Decode parses container bytes. It does not modify raw.
func (c *Codec) Decode(raw []byte) (*Document, error) {
	if len(raw) < len(c.header) || !bytes.Equal(raw[:len(c.header)], c.header) {
		return nil, formatErrorf(0, "missing %s header", c.version)
	}

	body := bytes.Clone(raw[len(c.header):])
	if len(body) < minBodySize || len(body)%blockSize != 0 {
		return nil, formatErrorf(len(c.header), "body size %d is not a positive multiple of %d", len(body), blockSize)
	}
	if err := c.rawDecode(body); err != nil {
		return nil, &FormatError{Offset: len(c.header), Reason: "decrypting body", Err: err}
	}

	records, err := parsePlaintext(body, len(c.header))
	if err != nil {
		return nil, err
	}
	return &Document{Version: c.version, Records: records}, nil
}

// Encode builds container bytes for doc. Records are written exactly as
// decoded, so Encode(Decode(b)) reproduces b.
func (c *Codec) Encode(doc *Document) ([]byte, error) {
	var section bytes.Buffer
	var lenBuf [lengthSize]byte
	for _, r := range doc.Records {
		text, err := encodeText(r.Text)
		if err != nil {
			return nil, fmt.Errorf("encoding record %d: %w", r.Ordinal, err)
		}
		if uint64(len(text)) > maxRecordSize {
			return nil, fmt.Errorf("record %d too large: %d bytes", r.Ordinal, len(text))
		}
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(text)))
		section.Write(lenBuf[:])
		section.Write(text)
	}
	if uint64(section.Len()) > maxRecordSize-prefixSize-checksumSize-blockSize {
		return nil, fmt.Errorf("payload too large: %d bytes", section.Len())
	}

	size := prefixSize + section.Len() + checksumSize
	if rem := size % blockSize; rem != 0 {
		size += blockSize - rem
	}

	plain := make([]byte, size)
	binary.LittleEndian.PutUint32(plain[0:], uint32(section.Len()))
	binary.LittleEndian.PutUint32(plain[4:], uint32(len(doc.Records)))
	copy(plain[prefixSize:], section.Bytes())
	crypto.AppendChecksum(plain, 0, size)

	if err := c.rawEncode(plain); err != nil {
		return nil, fmt.Errorf("encrypting body: %w", err)
	}

	out := make([]byte, 0, len(c.header)+len(plain))
	out = append(out, c.header...)
	return append(out, plain...), nil
}

func (c *Codec) rawEncode(body []byte) error { return c.transform.Encrypt(body) }
func (c *Codec) rawDecode(body []byte) error { return c.transform.Decrypt(body) }

// parsePlaintext validates the framing of a decrypted body and extracts its
// records. base is the file offset of plain[0], used in error reports.
func parsePlaintext(plain []byte, base int) ([]Record, error) {
	if !crypto.VerifyChecksum(plain, 0, len(plain)) {
		return nil, formatErrorf(base+len(plain)-checksumSize, "checksum mismatch")
	}

	payloadSize := binary.LittleEndian.Uint32(plain[0:])
	count := binary.LittleEndian.Uint32(plain[4:])

	limit := uint64(len(plain) - prefixSize - checksumSize)
	if uint64(payloadSize) > limit {
		return nil, formatErrorf(base, "payload size %d exceeds body (%d bytes available)", payloadSize, limit)
	}
	end := prefixSize + int(payloadSize)

	padding := plain[end : len(plain)-checksumSize]
	if len(padding) >= blockSize {
		return nil, formatErrorf(base+end, "padding of %d bytes, want fewer than %d", len(padding), blockSize)
	}
	for i, b := range padding {
		if b != 0 {
			return nil, formatErrorf(base+end+i, "non-zero padding byte %#x", b)
		}
	}

	// Each record needs at least its length field.
	if uint64(count) > uint64(payloadSize)/lengthSize {
		return nil, formatErrorf(base+4, "record count %d does not fit payload of %d bytes", count, payloadSize)
	}

	records := make([]Record, 0, count)
	off := prefixSize
	for i := 0; i < int(count); i++ {
		if off+lengthSize > end {
			return nil, formatErrorf(base+off, "record %d: length field past payload end", i)
		}
		n := int(binary.LittleEndian.Uint32(plain[off:]))
		off += lengthSize
		if n > end-off {
			return nil, formatErrorf(base+off, "record %d: length %d past payload end", i, n)
		}
		if n%2 != 0 {
			return nil, formatErrorf(base+off, "record %d: odd UTF-16 length %d", i, n)
		}

		raw := plain[off : off+n]
		text, err := decodeText(raw)
		if err != nil {
			return nil, &FormatError{Offset: base + off, Reason: fmt.Sprintf("record %d", i), Err: err}
		}
		records = append(records, Record{Ordinal: i, Text: text})
		off += n
	}

	if off != end {
		return nil, formatErrorf(base+off, "%d unclaimed bytes after record %d", end-off, count)
	}
	return records, nil
}

// encodeText converts s to UTF-16LE. Invalid UTF-8 is rejected rather than
// replaced with U+FFFD.
func encodeText(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, errors.New("invalid UTF-8 text")
	}
	return utf16le.NewEncoder().Bytes([]byte(s))
}

// decodeText decodes UTF-16LE and rejects input that would not encode back
// to the same bytes (unpaired surrogates are replaced by the decoder).
func decodeText(raw []byte) (string, error) {
	decoded, err := utf16le.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16: %w", err)
	}
	text := string(decoded)

	again, err := encodeText(text)
	if err != nil {
		return "", fmt.Errorf("re-encoding UTF-16: %w", err)
	}
	if !bytes.Equal(again, raw) {
		return "", fmt.Errorf("invalid UTF-16 sequence")
	}
	return text, nil
}

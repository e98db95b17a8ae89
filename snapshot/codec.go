// SPDX-License-Identifier: MIT

package snapshot

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns a Document into bytes and back.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Name() string
}

// JSONCodec writes indented JSON, the format of hand-authored networks.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error)    { return json.MarshalIndent(v, "", "  ") }
func (JSONCodec) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSONCodec) Name() string                    { return "json" }

// MsgPackCodec writes MessagePack.
type MsgPackCodec struct{}

func (MsgPackCodec) Encode(v any) ([]byte, error)    { return msgpack.Marshal(v) }
func (MsgPackCodec) Decode(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (MsgPackCodec) Name() string                    { return "msgpack" }

// CodecByName returns the codec called name ("json" or "msgpack").
func CodecByName(name string) (Codec, error) {
	switch name {
	case "json", "":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgPackCodec{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownCodec)
	}
}

// Compression selects the byte-level compression applied after encoding.
type Compression string

const (
	None Compression = "none"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
)

// ParseCompression validates a compression name; "" means None.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(s); c {
	case "":
		return None, nil
	case None, Gzip, Zstd:
		return c, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownCompression)
	}
}

func (c Compression) compress(data []byte) ([]byte, error) {
	switch c {
	case Gzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()

		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (c Compression) decompress(data []byte) ([]byte, error) {
	switch c {
	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()

		return io.ReadAll(r)
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()

		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

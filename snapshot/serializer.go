// SPDX-License-Identifier: MIT

package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/flowplan/core"
)

// Option configures a Serializer.
type Option func(*Serializer)

// WithCodec selects the codec (default JSONCodec). nil is ignored.
func WithCodec(c Codec) Option {
	return func(s *Serializer) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithCompression selects the compression (default None).
func WithCompression(c Compression) Option {
	return func(s *Serializer) { s.compression = c }
}

// Serializer encodes networks as codec(Document) then compresses the bytes.
// It holds no mutable state and is safe for concurrent use.
type Serializer struct {
	codec       Codec
	compression Compression
}

// NewSerializer returns a JSON, uncompressed serializer adjusted by opts.
func NewSerializer(opts ...Option) *Serializer {
	s := &Serializer{codec: JSONCodec{}, compression: None}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Codec returns the configured codec.
func (s *Serializer) Codec() Codec { return s.codec }

// Compression returns the configured compression.
func (s *Serializer) Compression() Compression { return s.compression }

// Marshal encodes g.
func (s *Serializer) Marshal(g *core.Graph) ([]byte, error) {
	// 1. Encode
	data, err := s.codec.Encode(FromGraph(g))
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s encode: %w", s.codec.Name(), err)
	}

	// 2. Compress
	data, err = s.compression.compress(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s compress: %w", s.compression, err)
	}

	return data, nil
}

// Unmarshal decodes a network written by Marshal with the same settings.
func (s *Serializer) Unmarshal(data []byte) (*core.Graph, error) {
	data, err := s.compression.decompress(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s decompress: %w", s.compression, err)
	}

	var doc Document
	if err := s.codec.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: %s decode: %w", s.codec.Name(), err)
	}

	return doc.Graph()
}

// Save writes the encoded network to w.
func (s *Serializer) Save(w io.Writer, g *core.Graph) error {
	data, err := s.Marshal(g)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("snapshot: write: %w", err)
	}

	return nil
}

// Load reads everything from r and decodes it.
func (s *Serializer) Load(r io.Reader) (*core.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read: %w", err)
	}

	return s.Unmarshal(data)
}

// SaveFile writes the encoded network to path, replacing it.
func (s *Serializer) SaveFile(path string, g *core.Graph) error {
	data, err := s.Marshal(g)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadFile decodes the network stored at path.
func (s *Serializer) LoadFile(path string) (*core.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	return s.Unmarshal(data)
}

// ForPath picks the codec and compression from a file name: a trailing
// ".gz" or ".zst" selects the compression, then ".msgpack" or ".mpk"
// selects MessagePack. Anything else is uncompressed JSON.
func ForPath(path string) *Serializer {
	name := strings.ToLower(filepath.Base(path))
	var opts []Option
	switch {
	case strings.HasSuffix(name, ".gz"):
		opts = append(opts, WithCompression(Gzip))
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		opts = append(opts, WithCompression(Zstd))
		name = strings.TrimSuffix(name, ".zst")
	}
	switch filepath.Ext(name) {
	case ".msgpack", ".mpk":
		opts = append(opts, WithCodec(MsgPackCodec{}))
	}

	return NewSerializer(opts...)
}

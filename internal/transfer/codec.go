package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinoosan/finledger/internal/errs"
)

// Codec encodes and decodes a Snapshot in one file format.
type Codec interface {
	Name() string
	ContentType() string
	Encode(s Snapshot) ([]byte, error)
	Decode(data []byte) (Snapshot, error)
}

// JSONCodec writes indented JSON.
type JSONCodec struct{}

func (JSONCodec) Name() string        { return "json" }
func (JSONCodec) ContentType() string { return "application/json" }

func (JSONCodec) Encode(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(toDTO(s), "", "  ")
}

func (JSONCodec) Decode(data []byte) (Snapshot, error) {
	var f fileDTO
	if err := json.Unmarshal(data, &f); err != nil {
		return Snapshot{}, fmt.Errorf("decode json: %v: %w", err, errs.ErrInvalid)
	}
	return fromDTO(f)
}

// YAMLCodec writes the same three-array document as YAML.
type YAMLCodec struct{}

func (YAMLCodec) Name() string        { return "yaml" }
func (YAMLCodec) ContentType() string { return "application/yaml" }

func (YAMLCodec) Encode(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toDTO(s)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Decode(data []byte) (Snapshot, error) {
	var f fileDTO
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Snapshot{}, fmt.Errorf("decode yaml: %v: %w", err, errs.ErrInvalid)
	}
	return fromDTO(f)
}

// CodecByName resolves "json", "yaml" or "yml".
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: %w", name, errs.ErrInvalid)
	}
}

// CodecForPath picks a codec from the file extension, or from fallback when
// the extension is not a known format.
func CodecForPath(path, fallback string) (Codec, error) {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		if c, err := CodecByName(ext); err == nil {
			return c, nil
		}
	}
	return CodecByName(fallback)
}

package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec names accepted by CodecFor.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Codec turns the slot document into bytes and back.
type Codec interface {
	Name() string
	// Ext is appended to the storage key to form the slot name.
	Ext() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Formats lists the supported codec names.
func Formats() []string {
	return []string{FormatJSON, FormatYAML}
}

// CodecFor returns the codec with the given name.
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatJSON:
		return JSONCodec{}, nil
	case FormatYAML, "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown storage format %q (expected %s)", name, strings.Join(Formats(), "|"))
	}
}

// JSONCodec writes 2-space indented JSON with a trailing newline.
type JSONCodec struct{}

func (JSONCodec) Name() string { return FormatJSON }
func (JSONCodec) Ext() string  { return ".json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// YAMLCodec reads and writes YAML documents.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return FormatYAML }
func (YAMLCodec) Ext() string  { return ".yaml" }

func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

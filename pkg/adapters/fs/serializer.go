package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/inspekt/pkg/core"
	"gopkg.in/yaml.v3"
)

// Metadata is the on-disk shape of a record's metadata artifact.
// Category stays a string here so stray values can be read and reported
// instead of failing the whole file.
type Metadata struct {
	PhotoRef       string `json:"photoRef" yaml:"photoRef"`
	TechnicianName string `json:"technicianName,omitempty" yaml:"technicianName,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	LocationLabel  string `json:"locationLabel,omitempty" yaml:"locationLabel,omitempty"`
	Category       string `json:"category" yaml:"category"`
	Timestamp      string `json:"timestamp" yaml:"timestamp"`
	CreatedAt      int64  `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// TimestampLayout is the ISO-8601 layout of Metadata.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NewMetadata converts a record to its on-disk shape.
func NewMetadata(rec core.CaptureRecord) Metadata {
	return Metadata{
		PhotoRef:       rec.PhotoRef,
		TechnicianName: rec.TechnicianName,
		Description:    rec.Description,
		LocationLabel:  rec.LocationLabel,
		Category:       rec.Category.String(),
		Timestamp:      rec.CreatedAt.Time().Format(TimestampLayout),
		CreatedAt:      int64(rec.CreatedAt),
	}
}

// Serializer defines how to read and write a specific metadata format.
type Serializer interface {
	// Parse reads from r and returns the metadata.
	Parse(r io.Reader) (*Metadata, error)
	// Serialize converts the metadata to bytes.
	Serialize(m Metadata) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Parse(r io.Reader) (*Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var m Metadata
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return &m, nil
}

func (s *JSONSerializer) Serialize(m Metadata) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML files.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (*Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return &m, nil
}

func (s *YAMLSerializer) Serialize(m Metadata) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

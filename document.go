package trajectory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the version of the project document format written by
// [Serialize].
const SchemaVersion = 1

// Format is an encoding of project documents.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForPath picks the format of a project file by its extension:
// ".yaml" and ".yml" for YAML, ".json" for JSON.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Document is the persistent form of a project: its metadata, the angle
// limit of every axis and the control points of every curve. The edit
// history is not part of a project.
//
// Numeric fields are pointers so that missing fields can be told apart from
// zero values.
type Document struct {
	Version     *int                       `yaml:"version" json:"version"`
	ID          string                     `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string                     `yaml:"name,omitempty" json:"name,omitempty"`
	DurationMs  *float64                   `yaml:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	AngleLimits map[string]DocumentLimit   `yaml:"angle_limits" json:"angle_limits"`
	Curves      map[string][]DocumentPoint `yaml:"curves" json:"curves"`
}

// DocumentLimit is the persistent form of an [AngleLimit].
type DocumentLimit struct {
	Min *float64 `yaml:"min" json:"min"`
	Max *float64 `yaml:"max" json:"max"`
}

// DocumentPoint is the persistent form of a [ControlPoint]. Handles are not
// persisted.
type DocumentPoint struct {
	Time  *float64 `yaml:"time" json:"time"`
	Value *float64 `yaml:"value" json:"value"`
}

func ptr[T any](v T) *T { return &v }

// Serialize returns the document of a session's project.
func Serialize(s *Session) Document {
	doc := Document{
		Version:     ptr(SchemaVersion),
		ID:          s.id.String(),
		Name:        s.name,
		DurationMs:  ptr(s.playback.Duration()),
		AngleLimits: make(map[string]DocumentLimit, NumAxes),
		Curves:      make(map[string][]DocumentPoint, NumAxes),
	}
	for _, a := range AllAxes {
		l := s.limits[a]
		doc.AngleLimits[a.Key()] = DocumentLimit{Min: ptr(l.Min), Max: ptr(l.Max)}
		pts := make([]DocumentPoint, 0, s.axes[a].Len())
		for _, pt := range s.axes[a].points {
			pts = append(pts, DocumentPoint{Time: ptr(pt.Time), Value: ptr(pt.Value)})
		}
		doc.Curves[a.Key()] = pts
	}
	return doc
}

// Deserialize builds a new session from a project document. The session
// starts with an empty history. Options apply as for [NewSession]; the
// document's limits, identifier, name and duration take precedence over
// them.
//
// Deserialize fails with an error matching [ErrSchemaVersion] for unknown
// document versions and with an error matching [ErrMalformedDocument] if
// the document is structurally invalid. On failure no session is returned.
func Deserialize(doc Document, opts ...Option) (*Session, error) {
	if doc.Version == nil {
		return nil, malformedf("missing version")
	}
	if *doc.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrSchemaVersion, *doc.Version)
	}

	limits, err := doc.limits()
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithLimits(limits), WithName(doc.Name))
	if doc.ID != "" {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, malformedf("id: %s", err)
		}
		opts = append(opts, WithID(id))
	}
	if doc.DurationMs != nil {
		if d := *doc.DurationMs; d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, malformedf("duration_ms %g must be positive", d)
		}
		opts = append(opts, WithDuration(*doc.DurationMs))
	}

	s, err := NewSession(opts...)
	if err != nil {
		return nil, err
	}

	if doc.Curves == nil {
		return nil, malformedf("missing curves")
	}
	for key := range doc.Curves {
		if _, err := ParseAxis(key); err != nil {
			return nil, malformedf("curves: %s", err)
		}
	}
	for _, a := range AllAxes {
		pts, ok := doc.Curves[a.Key()]
		if !ok {
			return nil, malformedf("curves: missing %s", a.Key())
		}
		c := s.axes[a]
		for i, dp := range pts {
			if dp.Time == nil || dp.Value == nil {
				return nil, malformedf("curves.%s[%d]: time and value are required", a.Key(), i)
			}
			if _, ok := c.near(*dp.Time, -1); ok {
				return nil, malformedf("curves.%s[%d]: duplicate time %g ms", a.Key(), i, *dp.Time)
			}
			if _, _, err := c.add(*dp.Time, *dp.Value, 0); err != nil {
				return nil, malformedf("curves.%s[%d]: %s", a.Key(), i, err)
			}
		}
	}
	return s, nil
}

func (doc Document) limits() (Limits, error) {
	var ls Limits
	if doc.AngleLimits == nil {
		return ls, malformedf("missing angle_limits")
	}
	for key := range doc.AngleLimits {
		if _, err := ParseAxis(key); err != nil {
			return ls, malformedf("angle_limits: %s", err)
		}
	}
	for _, a := range AllAxes {
		dl, ok := doc.AngleLimits[a.Key()]
		if !ok {
			return ls, malformedf("angle_limits: missing %s", a.Key())
		}
		if dl.Min == nil || dl.Max == nil {
			return ls, malformedf("angle_limits.%s: min and max are required", a.Key())
		}
		ls[a] = AngleLimit{Min: *dl.Min, Max: *dl.Max}
		if err := ls[a].Validate(); err != nil {
			return ls, malformedf("angle_limits.%s: %s", a.Key(), err)
		}
	}
	return ls, nil
}

// Marshal encodes a document.
func Marshal(doc Document, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// Unmarshal decodes a document. Unknown fields and values of the wrong type,
// such as non-numeric angles, fail with an error matching
// [ErrMalformedDocument]. Unmarshal does not validate the document's
// contents; [Deserialize] does.
func Unmarshal(data []byte, f Format) (Document, error) {
	var doc Document
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return Document{}, malformedf("empty document")
			}
			return Document{}, malformedf("%s", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, malformedf("%s", err)
		}
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	return doc, nil
}

// Save serializes a session's project and encodes it.
func Save(s *Session, f Format) ([]byte, error) {
	return Marshal(Serialize(s), f)
}

// Load decodes a project and deserializes it into a new session.
func Load(data []byte, f Format, opts ...Option) (*Session, error) {
	doc, err := Unmarshal(data, f)
	if err != nil {
		return nil, err
	}
	return Deserialize(doc, opts...)
}

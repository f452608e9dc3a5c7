// Package netfile reads network definition files. A definition names the
// network, lists its stations and stops with their service areas, and picks
// the node selection policy and the route strategy tree.
package netfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/randytsao24/navnet/internal/location"
	"github.com/randytsao24/navnet/internal/models"
)

// Definition is the decoded form of a network file
type Definition struct {
	Name      string       `yaml:"name" json:"name" validate:"required"`
	Version   int64        `yaml:"version" json:"version" validate:"gte=0"`
	CreatedAt time.Time    `yaml:"createdAt,omitempty" json:"createdAt,omitempty"`
	Selection string       `yaml:"selection,omitempty" json:"selection,omitempty" validate:"omitempty,oneof=findFirst findAny"`
	Strategy  StrategySpec `yaml:"strategy" json:"strategy"`
	Stations  []StationDef `yaml:"stations" json:"stations" validate:"dive"`
	Stops     []StopDef    `yaml:"stops" json:"stops" validate:"dive"`
}

// StrategySpec is one node of the route strategy tree
type StrategySpec struct {
	Type     string         `yaml:"type" json:"type" validate:"required,oneof=direct dijkstra cached firstOption minimumFare quickSelect competing"`
	TTL      string         `yaml:"ttl,omitempty" json:"ttl,omitempty"`
	Capacity int            `yaml:"capacity,omitempty" json:"capacity,omitempty" validate:"gte=0"`
	Workers  int            `yaml:"workers,omitempty" json:"workers,omitempty" validate:"gte=0"`
	Children []StrategySpec `yaml:"children,omitempty" json:"children,omitempty" validate:"dive"`
}

// StationDef declares a station
type StationDef struct {
	ID           string               `yaml:"id" json:"id" validate:"required"`
	Position     *location.Point      `yaml:"position,omitempty" json:"position,omitempty"`
	Area         *AreaSpec            `yaml:"area,omitempty" json:"area,omitempty"`
	Connections  []models.RouteOption `yaml:"connections,omitempty" json:"connections,omitempty" validate:"dive"`
	Destinations []models.RouteOption `yaml:"destinations,omitempty" json:"destinations,omitempty" validate:"dive"`
}

// StopDef declares a stop
type StopDef struct {
	ID       string          `yaml:"id" json:"id" validate:"required"`
	Position *location.Point `yaml:"position,omitempty" json:"position,omitempty"`
	Area     *AreaSpec       `yaml:"area,omitempty" json:"area,omitempty"`
}

// AreaSpec is one node of a service area tree. Which fields apply depends on
// Type: areas for outside (exactly one), intersection and union; center and
// meters for radius; min and max for bound; vertices for polygon.
type AreaSpec struct {
	Type     string           `yaml:"type" json:"type" validate:"required,oneof=global empty outside intersection union radius bound polygon"`
	Areas    []AreaSpec       `yaml:"areas,omitempty" json:"areas,omitempty" validate:"dive"`
	Center   *location.Point  `yaml:"center,omitempty" json:"center,omitempty"`
	Meters   float64          `yaml:"meters,omitempty" json:"meters,omitempty" validate:"gte=0"`
	Min      *location.Point  `yaml:"min,omitempty" json:"min,omitempty"`
	Max      *location.Point  `yaml:"max,omitempty" json:"max,omitempty"`
	Vertices []location.Point `yaml:"vertices,omitempty" json:"vertices,omitempty" validate:"dive"`
}

// Format is the encoding of a network file
type Format int

const (
	YAML Format = iota
	JSON
)

// FormatOf picks the format from a file extension; anything but .json is YAML
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// Load reads and validates a network file
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading network file: %w", err)
	}
	def, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a network definition
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing network JSON: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing network YAML: %w", err)
		}
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks field level constraints. Cross references between nodes
// are checked when the graph is built.
func (d *Definition) Validate() error {
	v := validator.New()
	v.RegisterStructValidation(validatePoint, location.Point{})
	if err := v.Struct(d); err != nil {
		return fmt.Errorf("invalid network definition: %w", err)
	}
	return nil
}

// validatePoint rejects NaN coordinates, which range tags let through
func validatePoint(sl validator.StructLevel) {
	p := sl.Current().Interface().(location.Point)
	if math.IsNaN(p.Lat) {
		sl.ReportError(p.Lat, "Lat", "lat", "number", "")
	}
	if math.IsNaN(p.Lng) {
		sl.ReportError(p.Lng, "Lng", "lng", "number", "")
	}
}

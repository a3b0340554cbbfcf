package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoTrips is returned when a trip list is empty.
var ErrNoTrips = errors.New("no trips to evaluate")

// Trip is one entry of a batch.
type Trip struct {
	From       string  `yaml:"from,omitempty" json:"from,omitempty"`
	To         string  `yaml:"to,omitempty" json:"to,omitempty"`
	DistanceKm float64 `yaml:"distance_km" json:"distance_km"`
	Purpose    string  `yaml:"purpose" json:"purpose"`
}

// tripFile is the YAML document layout.
type tripFile struct {
	Trips []Trip `yaml:"trips"`
}

// LoadTrips reads a YAML trip file.
func LoadTrips(path string) ([]Trip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trip file %s: %w", path, err)
	}
	trips, err := ParseTrips(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("trip file %s: %w", path, err)
	}
	return trips, nil
}

// ParseTrips decodes a YAML trip document. Unknown fields are rejected so
// typos such as "distance" surface instead of silently becoming zero.
func ParseTrips(r io.Reader) ([]Trip, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var tf tripFile
	if err := dec.Decode(&tf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTrips
		}
		return nil, fmt.Errorf("parsing trips: %w", err)
	}
	if len(tf.Trips) == 0 {
		return nil, ErrNoTrips
	}
	return tf.Trips, nil
}

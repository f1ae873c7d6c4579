// Package manifest describes a sensor network declaratively in YAML and
// builds it through a sosa.Session.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for manifests that fail validation.
var ErrInvalid = errors.New("invalid manifest")

// Manifest is the root of a network description.
type Manifest struct {
	Properties  []Property   `yaml:"properties"`
	Features    []Feature    `yaml:"features"`
	Procedures  []Procedure  `yaml:"procedures"`
	Platforms   []Platform   `yaml:"platforms"`
	Collections []Collection `yaml:"collections"`
}

// Property describes an observable property. An empty IRI mints a node.
type Property struct {
	ID    string `yaml:"id"`
	IRI   string `yaml:"iri"`
	Label string `yaml:"label"`
}

// Feature describes a feature of interest. With an IRI, label and comment are
// ignored and only the type is asserted.
type Feature struct {
	ID       string `yaml:"id"`
	IRI      string `yaml:"iri"`
	Label    string `yaml:"label"`
	Comment  string `yaml:"comment"`
	Ultimate bool   `yaml:"ultimate"`
}

// Procedure describes a standalone procedure.
type Procedure struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Comment string `yaml:"comment"`
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
}

// Platform describes a platform and everything it hosts.
type Platform struct {
	ID        string     `yaml:"id"`
	Label     string     `yaml:"label"`
	Comment   string     `yaml:"comment"`
	Sensors   []Sensor   `yaml:"sensors"`
	Actuators []Actuator `yaml:"actuators"`
	Samplers  []Sampler  `yaml:"samplers"`
}

// Sensor describes a hosted sensor.
type Sensor struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Observes    []string `yaml:"observes"`
}

// Actuator describes a hosted actuator.
type Actuator struct {
	ID              string  `yaml:"id"`
	Label           string  `yaml:"label"`
	Comment         string  `yaml:"comment"`
	AttachProcedure bool    `yaml:"attach_procedure"`
	AttachProperty  bool    `yaml:"attach_property"`
	Actuations      []Event `yaml:"actuations"`
}

// Sampler describes a hosted sampler.
type Sampler struct {
	ID              string  `yaml:"id"`
	Label           string  `yaml:"label"`
	Comment         string  `yaml:"comment"`
	AttachProcedure bool    `yaml:"attach_procedure"`
	Samplings       []Event `yaml:"samplings"`
}

// Event describes a sampling or an actuation.
type Event struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Comment string `yaml:"comment"`
	Feature string `yaml:"feature"`
	Result  any    `yaml:"result"`
}

// Collection describes an observation collection and its observations.
type Collection struct {
	ID               string        `yaml:"id"`
	Comment          string        `yaml:"comment"`
	UltimateFeature  string        `yaml:"ultimate_feature"`
	ObservedProperty string        `yaml:"observed_property"`
	UsedProcedure    string        `yaml:"used_procedure"`
	Observations     []Observation `yaml:"observations"`
}

// Observation describes one observation. Sensor and Feature are manifest ids
// or absolute IRIs.
type Observation struct {
	Sensor  string `yaml:"sensor"`
	Feature string `yaml:"feature"`
	Result  any    `yaml:"result"`
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads a manifest from a YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadGlob loads every file matching pattern (** supported) and merges them
// in path order.
func LoadGlob(pattern string) (*Manifest, []string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob error: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no manifests match %q", pattern)
	}
	sort.Strings(matches)

	merged := &Manifest{}
	for _, path := range matches {
		m, err := Load(path)
		if err != nil {
			return nil, nil, err
		}
		merged.Merge(m)
	}
	if err := merged.Validate(); err != nil {
		return nil, nil, err
	}
	return merged, matches, nil
}

// Merge appends other's entries to m.
func (m *Manifest) Merge(other *Manifest) {
	m.Properties = append(m.Properties, other.Properties...)
	m.Features = append(m.Features, other.Features...)
	m.Procedures = append(m.Procedures, other.Procedures...)
	m.Platforms = append(m.Platforms, other.Platforms...)
	m.Collections = append(m.Collections, other.Collections...)
}

// Validate checks that every entity has an id and that ids are unique.
func (m *Manifest) Validate() error {
	seen := make(map[string]string)
	claim := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%w: %s without id", ErrInvalid, kind)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: id %q used by both %s and %s", ErrInvalid, id, prev, kind)
		}
		seen[id] = kind
		return nil
	}

	for _, p := range m.Properties {
		if err := claim("property", p.ID); err != nil {
			return err
		}
	}
	for _, f := range m.Features {
		if err := claim("feature", f.ID); err != nil {
			return err
		}
	}
	for _, p := range m.Procedures {
		if err := claim("procedure", p.ID); err != nil {
			return err
		}
	}
	for _, p := range m.Platforms {
		if err := claim("platform", p.ID); err != nil {
			return err
		}
		for _, s := range p.Sensors {
			if err := claim("sensor", s.ID); err != nil {
				return err
			}
		}
		for _, a := range p.Actuators {
			if err := claim("actuator", a.ID); err != nil {
				return err
			}
			for _, e := range a.Actuations {
				if err := claim("actuation", e.ID); err != nil {
					return err
				}
			}
		}
		for _, s := range p.Samplers {
			if err := claim("sampler", s.ID); err != nil {
				return err
			}
			for _, e := range s.Samplings {
				if err := claim("sampling", e.ID); err != nil {
					return err
				}
			}
		}
	}
	for _, c := range m.Collections {
		if err := claim("collection", c.ID); err != nil {
			return err
		}
		for i, o := range c.Observations {
			if o.Sensor == "" {
				return fmt.Errorf("%w: collection %q observation %d has no sensor", ErrInvalid, c.ID, i)
			}
			if o.Result == nil {
				return fmt.Errorf("%w: collection %q observation %d has no result", ErrInvalid, c.ID, i)
			}
		}
	}
	return nil
}

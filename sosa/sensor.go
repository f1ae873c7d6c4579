package sosa

import (
	"fmt"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
)

// Sensor observes properties and can be hosted by a platform.
type Sensor struct {
	node
	backRef
	s          *Session
	properties []identifier.ID
}

// NewSensor creates a sensor described by description, observing props.
// The description is the sensor's comment; sensors carry no label.
func (s *Session) NewSensor(description string, props ...Node) (*Sensor, error) {
	sensor := &Sensor{
		node: node{id: s.alloc.Mint(), comment: description, epoch: s.currentEpoch()},
		s:    s,
	}

	var b batch
	b.add(sensor.id, ssn.RDFType, quad.IRI(ssn.ClassSensor))
	b.add(sensor.id, ssn.RDFSComment, quad.String(description))
	for _, prop := range props {
		id, err := propertyID(prop)
		if err != nil {
			return nil, fmt.Errorf("create sensor: %w", err)
		}
		if indexOf(sensor.properties, id) >= 0 {
			continue
		}
		b.link(sensor.id, ssn.PropObserves, id)
		sensor.properties = append(sensor.properties, id)
	}

	if err := s.assert(b, props...); err != nil {
		return nil, fmt.Errorf("create sensor: %w", err)
	}
	s.logger.Debug("Created sensor", "id", sensor.id.String(), "observes", len(sensor.properties))
	return sensor, nil
}

// SensorID implements SensorRole.
func (sn *Sensor) SensorID() identifier.ID { return sn.id }

// Description returns the sensor description.
func (sn *Sensor) Description() string { return sn.comment }

// Platform returns the hosting platform, or the zero ID.
func (sn *Sensor) Platform() identifier.ID { return sn.owner }

// Properties returns the observed property identifiers.
func (sn *Sensor) Properties() []identifier.ID { return cloneIDs(sn.properties) }

// Observe records that the sensor observes prop. Observing the same property
// twice is a no-op.
func (sn *Sensor) Observe(prop Node) error {
	id, err := propertyID(prop)
	if err != nil {
		return err
	}
	if err := sn.s.live(sn, prop); err != nil {
		return err
	}
	if indexOf(sn.properties, id) >= 0 {
		return nil
	}

	var b batch
	b.link(sn.id, ssn.PropObserves, id)
	if err := sn.s.assert(b); err != nil {
		return fmt.Errorf("observe %s: %w", id, err)
	}
	sn.properties = append(sn.properties, id)
	return nil
}

func propertyID(prop Node) (identifier.ID, error) {
	if isNilNode(prop) {
		return identifier.ID{}, fmt.Errorf("%w: nil property", ErrInvalidIdentifier)
	}
	id := prop.ID()
	if id.IsZero() {
		return identifier.ID{}, fmt.Errorf("%w: zero property identifier", ErrInvalidIdentifier)
	}
	return id, nil
}

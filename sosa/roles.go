package sosa

import (
	"fmt"

	"github.com/c360studio/sosagraph/identifier"
)

// Role names a kind of hosted entity.
type Role string

const (
	RoleSensor   Role = "sensor"
	RoleActuator Role = "actuator"
	RoleSampler  Role = "sampler"
)

// Roles lists every hosting role.
func Roles() []Role {
	return []Role{RoleSensor, RoleActuator, RoleSampler}
}

// SensorRole is implemented by entities that can be hosted as a sensor.
type SensorRole interface {
	SensorID() identifier.ID
}

// ActuatorRole is implemented by entities that can be hosted as an actuator.
type ActuatorRole interface {
	ActuatorID() identifier.ID
}

// SamplerRole is implemented by entities that can be hosted as a sampler.
type SamplerRole interface {
	SamplerID() identifier.ID
}

// roleTarget checks that n exposes the capability of role and can carry a
// back-reference.
func roleTarget(role Role, n Node) (attachable, error) {
	if isNilNode(n) {
		return nil, fmt.Errorf("%w: nil %s", ErrRoleMismatch, role)
	}

	var ok bool
	switch role {
	case RoleSensor:
		_, ok = n.(SensorRole)
	case RoleActuator:
		_, ok = n.(ActuatorRole)
	case RoleSampler:
		_, ok = n.(SamplerRole)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrRoleMismatch, role)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a %s", ErrRoleMismatch, n, role)
	}

	a, ok := n.(attachable)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot be hosted", ErrRoleMismatch, n)
	}
	return a, nil
}

package sosa

import (
	"fmt"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
)

// Platform hosts sensors, actuators and samplers.
type Platform struct {
	node
	s       *Session
	members map[Role][]identifier.ID
}

// NewPlatform creates a platform.
func (s *Session) NewPlatform(comment, label string) (*Platform, error) {
	var b batch
	p := &Platform{
		node:    s.newNode(&b, ssn.ClassPlatform, label, comment),
		s:       s,
		members: make(map[Role][]identifier.ID),
	}
	if err := s.assert(b); err != nil {
		return nil, fmt.Errorf("create platform: %w", err)
	}
	s.logger.Debug("Created platform", "id", p.id.String(), "label", label)
	return p, nil
}

// Add hosts n in the given role. n must expose the role's capability.
func (p *Platform) Add(role Role, n Node) error {
	target, err := roleTarget(role, n)
	if err != nil {
		return err
	}
	list := p.members[role]
	if err := p.s.attach(p, &list, target, hostsRel); err != nil {
		return fmt.Errorf("host %s %s: %w", role, target.ID(), err)
	}
	p.members[role] = list
	p.s.logger.Debug("Platform hosts", "platform", p.id.String(), "role", string(role), "id", target.ID().String())
	return nil
}

// Remove stops hosting n. Both the hosts and isHostedBy triples are retracted.
func (p *Platform) Remove(role Role, n Node) error {
	target, err := roleTarget(role, n)
	if err != nil {
		return err
	}
	list := p.members[role]
	if err := p.s.detach(p, &list, target, hostsRel); err != nil {
		return fmt.Errorf("unhost %s %s: %w", role, target.ID(), err)
	}
	p.members[role] = list
	p.s.logger.Debug("Platform released", "platform", p.id.String(), "role", string(role), "id", target.ID().String())
	return nil
}

// Members returns a copy of the identifiers hosted in role.
func (p *Platform) Members(role Role) []identifier.ID {
	return cloneIDs(p.members[role])
}

// Hosts reports whether id is hosted in any role.
func (p *Platform) Hosts(id identifier.ID) bool {
	for _, ids := range p.members {
		if indexOf(ids, id) >= 0 {
			return true
		}
	}
	return false
}

// Typed shorthands for Add and Remove.

func (p *Platform) AddSensor(sensor Node) error        { return p.Add(RoleSensor, sensor) }
func (p *Platform) RemoveSensor(sensor Node) error     { return p.Remove(RoleSensor, sensor) }
func (p *Platform) AddActuator(actuator Node) error    { return p.Add(RoleActuator, actuator) }
func (p *Platform) RemoveActuator(actuator Node) error { return p.Remove(RoleActuator, actuator) }
func (p *Platform) AddSampler(sampler Node) error      { return p.Add(RoleSampler, sampler) }
func (p *Platform) RemoveSampler(sampler Node) error   { return p.Remove(RoleSampler, sampler) }

// Sensors, Actuators and Samplers return copies of the per-role member lists.

func (p *Platform) Sensors() []identifier.ID   { return p.Members(RoleSensor) }
func (p *Platform) Actuators() []identifier.ID { return p.Members(RoleActuator) }
func (p *Platform) Samplers() []identifier.ID  { return p.Members(RoleSampler) }

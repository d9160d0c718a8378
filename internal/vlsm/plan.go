package vlsm

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Lucop1911/vlsm/internal/ipam"
	"github.com/Lucop1911/vlsm/internal/print/human"
	"gopkg.in/yaml.v3"
)

// Plan is a subnet plan document. It declares the base network to divide
// and the named host requirements to carve out of it, for example:
//
//	base: 10.0.0.0/24
//	subnets:
//	- name: engineering
//	  hosts: 50
//	- name: sales
//	  hosts: 20
//
// Host counts accept the usual unit suffixes, so "1.5K" reads as 1500.
type Plan struct {
	Base    Nullable[ipam.Network] `json:"base"`
	Subnets []PlanSubnet           `json:"subnets"`
}

// PlanSubnet is one named host requirement of a subnet plan.
type PlanSubnet struct {
	Name  string      `json:"name"`
	Hosts human.Count `json:"hosts"`
}

// LoadPlan reads the subnet plan at the given path.
func LoadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := ReadPlan(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ReadPlan reads and parses a subnet plan.
func ReadPlan(r io.Reader) (*Plan, error) {
	p := new(Plan)
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("the plan file is empty")
		}
		return nil, err
	}
	if len(p.Subnets) == 0 {
		return nil, errors.New("the plan does not declare any subnets")
	}
	names := make(map[string]struct{}, len(p.Subnets))
	for i, s := range p.Subnets {
		if s.Name == "" {
			return nil, fmt.Errorf("the subnet at index %d has no name", i)
		}
		if s.Hosts < 0 {
			return nil, fmt.Errorf("subnet %q requests a negative host count", s.Name)
		}
		if _, exists := names[s.Name]; exists {
			return nil, fmt.Errorf("duplicate subnet name: %q", s.Name)
		}
		names[s.Name] = struct{}{}
	}
	return p, nil
}

// Requirements converts the plan subnets into allocation requirements,
// rounding fractional host counts to the nearest integer.
func (p *Plan) Requirements() []ipam.Requirement {
	reqs := make([]ipam.Requirement, len(p.Subnets))
	for i, s := range p.Subnets {
		reqs[i] = ipam.Requirement{
			Label: s.Name,
			Hosts: uint64(math.Round(float64(s.Hosts))),
		}
	}
	return reqs
}

package ipam

import (
	"cmp"
	"slices"

	"go4.org/netipx"
)

// Requirement names a subnet to allocate and the number of hosts it must
// serve.
type Requirement struct {
	Label string
	Hosts uint64
}

// Subnet is one placed allocation: the network assigned to a requirement.
type Subnet struct {
	Label     string
	Network   Network
	Requested uint64
}

// Hosts returns the number of addresses the subnet can assign to hosts, which
// is at least the requested count.
func (s Subnet) Hosts() uint64 {
	return s.Network.Hosts()
}

// Result is the outcome of a successful allocation. Subnets appear in
// placement order, from the largest requirement to the smallest.
type Result struct {
	Base    Network
	Subnets []Subnet
}

// Allocated returns the total number of addresses claimed by subnets.
func (r *Result) Allocated() uint64 {
	var total uint64
	for _, s := range r.Subnets {
		total += s.Network.Size()
	}
	return total
}

// Utilization returns the fraction of the base network claimed by subnets.
func (r *Result) Utilization() float64 {
	return float64(r.Allocated()) / float64(r.Base.Size())
}

// Free returns the address space of the base network not claimed by any
// subnet, deaggregated into the smallest list of CIDR blocks in address
// order.
func (r *Result) Free() []Network {
	var b netipx.IPSetBuilder
	b.AddPrefix(r.Base.Prefix4())
	for _, s := range r.Subnets {
		b.RemovePrefix(s.Network.Prefix4())
	}
	set, err := b.IPSet()
	if err != nil {
		return nil
	}
	prefixes := set.Prefixes()
	free := make([]Network, 0, len(prefixes))
	for _, p := range prefixes {
		n, err := NewNetwork(AddrToIPv4(p.Addr()), p.Bits())
		if err != nil {
			continue
		}
		free = append(free, n)
	}
	return free
}

// Find returns the subnet allocated for a label.
func (r *Result) Find(label string) (Subnet, bool) {
	for _, s := range r.Subnets {
		if s.Label == label {
			return s, true
		}
	}
	return Subnet{}, false
}

// Allocate carves the base network into subnets serving each requirement.
//
// Every requirement is first sized to the smallest block able to serve its
// host count. Requirements are then placed from the largest to the smallest
// so that each block lands on an address aligned to its own size, leaving no
// gaps between placements; requirements with equal host counts keep their
// relative order. The operation is atomic: when any subnet cannot be sized or
// placed, no result is returned at all.
func Allocate(base Network, reqs []Requirement) (*Result, error) {
	type placement struct {
		req    Requirement
		prefix int
		size   uint64
	}

	placements := make([]placement, len(reqs))
	for i, req := range reqs {
		prefix, err := PrefixForHosts(req.Hosts)
		if err != nil {
			return nil, &SizingError{Label: req.Label, Err: err}
		}
		size, _ := BlockSize(prefix)
		placements[i] = placement{req: req, prefix: prefix, size: size}
	}

	slices.SortStableFunc(placements, func(a, b placement) int {
		return cmp.Compare(b.req.Hosts, a.req.Hosts)
	})

	var (
		cursor  = uint64(base.Addr())
		limit   = uint64(base.Broadcast())
		subnets = make([]Subnet, len(placements))
	)
	for i, p := range placements {
		start := alignUp(cursor, p.size)

		var available uint64
		if cursor <= limit {
			available = limit - cursor + 1
		}
		if start > limit || limit-start+1 < p.size {
			return nil, &ExhaustedError{
				Label:     p.req.Label,
				Needed:    p.size,
				Available: available,
			}
		}

		network, _ := NewNetwork(IPv4(start), p.prefix)
		subnets[i] = Subnet{
			Label:     p.req.Label,
			Network:   network,
			Requested: p.req.Hosts,
		}
		cursor = start + p.size
	}

	return &Result{Base: base, Subnets: subnets}, nil
}

// alignUp rounds n up to the next multiple of size, which must be a power of
// two.
func alignUp(n, size uint64) uint64 {
	return (n + size - 1) &^ (size - 1)
}

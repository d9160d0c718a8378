package ipam

import (
	"encoding"
	"flag"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Network is an IPv4 network in CIDR notation. The address is always the
// network address: constructors mask host bits away, so two values compare
// equal exactly when they designate the same block.
type Network struct {
	addr   IPv4
	prefix int
}

// NewNetwork constructs the network of the given prefix length that addr
// belongs to.
func NewNetwork(addr IPv4, prefix int) (Network, error) {
	network, err := NetworkAddress(addr, prefix)
	if err != nil {
		return Network{}, err
	}
	return Network{addr: network, prefix: prefix}, nil
}

// ParseNetwork parses a network in CIDR notation. Host bits are silently
// masked away: "10.0.0.77/24" designates the same network as "10.0.0.0/24".
func ParseNetwork(s string) (Network, error) {
	addr, prefix, ok := strings.Cut(s, "/")
	if !ok {
		return Network{}, fmt.Errorf("malformed network: %q: expected CIDR notation like 192.168.1.0/24", s)
	}
	ip, err := ParseIPv4(addr)
	if err != nil {
		return Network{}, err
	}
	p, err := strconv.Atoi(prefix)
	if err != nil {
		return Network{}, fmt.Errorf("malformed prefix length: %q: %w", prefix, ErrInvalidPrefix)
	}
	return NewNetwork(ip, p)
}

func (n Network) String() string {
	return n.addr.String() + "/" + strconv.Itoa(n.prefix)
}

// Addr returns the network address.
func (n Network) Addr() IPv4 { return n.addr }

// Prefix returns the prefix length.
func (n Network) Prefix() int { return n.prefix }

// Mask returns the netmask of the network.
func (n Network) Mask() IPv4 {
	mask, _ := Mask(n.prefix)
	return mask
}

// Wildcard returns the host mask of the network, the complement of the
// netmask.
func (n Network) Wildcard() IPv4 {
	return ^n.Mask()
}

// Broadcast returns the last address of the network.
func (n Network) Broadcast() IPv4 {
	broadcast, _ := BroadcastAddress(n.addr, n.prefix)
	return broadcast
}

// Size returns the total number of addresses in the network.
func (n Network) Size() uint64 {
	size, _ := BlockSize(n.prefix)
	return size
}

// Hosts returns the number of addresses assignable to hosts in the network.
func (n Network) Hosts() uint64 {
	hosts, _ := UsableHosts(n.prefix)
	return hosts
}

// Range returns the first and last host addresses of the network.
func (n Network) Range() (first, last IPv4) {
	first, last, _ = UsableRange(n.addr, n.prefix)
	return first, last
}

func (n Network) Contains(ip IPv4) bool {
	return n.addr <= ip && ip <= n.Broadcast()
}

func (n Network) Overlaps(other Network) bool {
	return n.addr <= other.Broadcast() && other.addr <= n.Broadcast()
}

// Prefix4 converts the network to a netip.Prefix.
func (n Network) Prefix4() netip.Prefix {
	return netip.PrefixFrom(n.addr.Addr(), n.prefix)
}

func (n *Network) Set(s string) error {
	p, err := ParseNetwork(s)
	if err != nil {
		return err
	}
	*n = p
	return nil
}

func (n Network) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Network) UnmarshalText(b []byte) error {
	return n.Set(string(b))
}

func (n Network) MarshalYAML() (any, error) {
	return n.String(), nil
}

func (n *Network) UnmarshalYAML(y *yaml.Node) error {
	var s string
	if err := y.Decode(&s); err != nil {
		return err
	}
	return n.Set(s)
}

var (
	_ fmt.Stringer = Network{}
	_ flag.Value   = (*Network)(nil)

	_ yaml.Marshaler   = Network{}
	_ yaml.Unmarshaler = (*Network)(nil)

	_ encoding.TextMarshaler   = Network{}
	_ encoding.TextUnmarshaler = (*Network)(nil)
)

// Package ipam implements the IPv4 arithmetic used to plan address space:
// netmask and broadcast computation, host capacity sizing, and the carving of
// a network into aligned subnets.
//
// Addresses are manipulated as 32 bit unsigned integers so that alignment and
// capacity checks reduce to integer arithmetic; conversions to netip.Addr are
// provided at the edges for interoperability with the standard library.
package ipam

import (
	"encoding"
	"fmt"
	"math/bits"
	"net/netip"

	yaml "gopkg.in/yaml.v3"
)

const addrBits = 32

// IPv4 is an IPv4 address represented as a 32 bit unsigned integer, with the
// most significant byte holding the first octet of the dotted-quad form.
type IPv4 uint32

// ParseIPv4 parses an IPv4 address in dotted-quad form.
func ParseIPv4(s string) (IPv4, error) {
	a, err := netip.ParseAddr(s)
	if err != nil || !a.Is4() {
		return 0, fmt.Errorf("malformed IPv4 address: %q", s)
	}
	return AddrToIPv4(a), nil
}

// AddrToIPv4 converts a netip.Addr carrying an IPv4 address.
func AddrToIPv4(a netip.Addr) IPv4 {
	b := a.As4()
	return IPv4(b[0])<<24 | IPv4(b[1])<<16 | IPv4(b[2])<<8 | IPv4(b[3])
}

func (ip IPv4) String() string {
	return ip.Addr().String()
}

// Addr converts the address to a netip.Addr.
func (ip IPv4) Addr() netip.Addr {
	return netip.AddrFrom4([4]byte{byte(ip >> 24), byte(ip >> 16), byte(ip >> 8), byte(ip)})
}

func (ip IPv4) MarshalText() ([]byte, error) {
	return []byte(ip.String()), nil
}

func (ip *IPv4) UnmarshalText(b []byte) error {
	p, err := ParseIPv4(string(b))
	if err != nil {
		return err
	}
	*ip = p
	return nil
}

func (ip IPv4) MarshalYAML() (any, error) {
	return ip.String(), nil
}

func (ip *IPv4) UnmarshalYAML(y *yaml.Node) error {
	var s string
	if err := y.Decode(&s); err != nil {
		return err
	}
	return ip.UnmarshalText([]byte(s))
}

// Mask returns the netmask of a prefix length, with the top prefix bits set.
func Mask(prefix int) (IPv4, error) {
	if prefix < 0 || prefix > addrBits {
		return 0, fmt.Errorf("/%d: %w", prefix, ErrInvalidPrefix)
	}
	if prefix == 0 {
		return 0, nil
	}
	return IPv4(^uint32(0) << (addrBits - prefix)), nil
}

// MaskPrefix returns the prefix length of a dotted-quad netmask. The mask
// must have contiguous ones.
func MaskPrefix(mask IPv4) (int, error) {
	prefix := bits.OnesCount32(uint32(mask))
	if m, _ := Mask(prefix); m != mask {
		return 0, fmt.Errorf("%q: %w", mask, ErrInvalidMask)
	}
	return prefix, nil
}

// NetworkAddress returns the first address of the network that ip belongs to.
func NetworkAddress(ip IPv4, prefix int) (IPv4, error) {
	mask, err := Mask(prefix)
	if err != nil {
		return 0, err
	}
	return ip & mask, nil
}

// BroadcastAddress returns the last address of the network that ip belongs to.
func BroadcastAddress(ip IPv4, prefix int) (IPv4, error) {
	mask, err := Mask(prefix)
	if err != nil {
		return 0, err
	}
	return ip&mask | ^mask, nil
}

// BlockSize returns the total number of addresses in a network of the given
// prefix length. The value is returned as uint64 because a /0 network holds
// one more address than fits in uint32.
func BlockSize(prefix int) (uint64, error) {
	if prefix < 0 || prefix > addrBits {
		return 0, fmt.Errorf("/%d: %w", prefix, ErrInvalidPrefix)
	}
	return 1 << (addrBits - prefix), nil
}

// UsableHosts returns the number of addresses assignable to hosts in a
// network of the given prefix length. Networks of /30 and larger lose two
// addresses to the network and broadcast identifiers; a /31 is a
// point-to-point pair with both addresses usable, and a /32 designates a
// single host.
func UsableHosts(prefix int) (uint64, error) {
	size, err := BlockSize(prefix)
	if err != nil {
		return 0, err
	}
	switch prefix {
	case addrBits:
		return 1, nil
	case addrBits - 1:
		return 2, nil
	default:
		return size - 2, nil
	}
}

// UsableRange returns the first and last host addresses of the network that
// ip belongs to. For /31 networks the range spans both addresses, and for /32
// networks it degenerates to the address itself.
func UsableRange(ip IPv4, prefix int) (first, last IPv4, err error) {
	network, err := NetworkAddress(ip, prefix)
	if err != nil {
		return 0, 0, err
	}
	broadcast, _ := BroadcastAddress(ip, prefix)
	if prefix >= addrBits-1 {
		return network, broadcast, nil
	}
	return network + 1, broadcast - 1, nil
}

var (
	_ fmt.Stringer = IPv4(0)

	_ yaml.Marshaler   = IPv4(0)
	_ yaml.Unmarshaler = (*IPv4)(nil)

	_ encoding.TextMarshaler   = IPv4(0)
	_ encoding.TextUnmarshaler = (*IPv4)(nil)
)

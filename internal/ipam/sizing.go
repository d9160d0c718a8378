package ipam

import "fmt"

const maxHosts = 1<<addrBits - 2

// PrefixForHosts returns the longest prefix whose network serves at least the
// requested number of hosts.
//
// A single host is given a /31, the two addresses of which are both usable on
// point-to-point links (RFC 3021). Larger requirements account for the
// network and broadcast identifiers, so two hosts take a /30 and the largest
// requirement a /0 can serve is 2^32-2 hosts.
func PrefixForHosts(hosts uint64) (int, error) {
	switch {
	case hosts == 0:
		return 0, ErrZeroHostRequest
	case hosts == 1:
		return addrBits - 1, nil
	case hosts > maxHosts:
		return 0, fmt.Errorf("%d hosts: %w", hosts, ErrRequirementTooLarge)
	}
	prefix := addrBits - 2
	for size := uint64(4); size-2 < hosts; size <<= 1 {
		prefix--
	}
	return prefix, nil
}

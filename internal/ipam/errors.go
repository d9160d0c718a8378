package ipam

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPrefix is returned when a prefix length falls outside of the
	// range of valid IPv4 prefixes.
	ErrInvalidPrefix = errors.New("invalid prefix length: must be between 0 and 32")

	// ErrInvalidMask is returned when a dotted-quad netmask does not have
	// contiguous ones.
	ErrInvalidMask = errors.New("invalid netmask: ones must be contiguous")

	// ErrZeroHostRequest is returned when a subnet is requested for zero
	// hosts.
	ErrZeroHostRequest = errors.New("a subnet must be requested for at least one host")

	// ErrRequirementTooLarge is returned when no IPv4 network is large enough
	// to serve the number of hosts requested.
	ErrRequirementTooLarge = errors.New("host requirement exceeds the capacity of the IPv4 address space")

	// ErrExhausted is returned when the base network does not have enough
	// address space left to place a subnet.
	ErrExhausted = errors.New("base network exhausted")
)

// SizingError reports a requirement that could not be converted to a prefix
// length.
type SizingError struct {
	Label string
	Err   error
}

func (e *SizingError) Error() string {
	return fmt.Sprintf("sizing subnet %q: %s", e.Label, e.Err)
}

func (e *SizingError) Unwrap() error {
	return e.Err
}

// ExhaustedError reports the first requirement that did not fit in the base
// network, the size of the block it needed, and the number of addresses that
// were left.
type ExhaustedError struct {
	Label     string
	Needed    uint64
	Available uint64
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("placing subnet %q: %d addresses needed, %d available: %s", e.Label, e.Needed, e.Available, ErrExhausted)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrExhausted
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Lucop1911/vlsm/internal/ipam"
	"github.com/Lucop1911/vlsm/internal/print/jsonprint"
	"github.com/Lucop1911/vlsm/internal/print/textprint"
	"github.com/Lucop1911/vlsm/internal/print/yamlprint"
	"github.com/Lucop1911/vlsm/internal/stream"
	"github.com/Lucop1911/vlsm/internal/vlsm"
)

const infoUsage = `
Usage:	vlsm info [options] <network>...

   The info command reports the addressing facts of one or more IPv4 networks
   given in CIDR notation: netmask, wildcard mask, broadcast address, usable
   host range, and capacity.

   Host bits are silently masked away, so 'vlsm info 10.0.0.77/26' describes
   the network containing that address.

Example:

   $ vlsm info 10.0.0.64/26
   Network:     10.0.0.64/26
   Netmask:     255.255.255.192
   Wildcard:    0.0.0.63
   Broadcast:   10.0.0.127
   First host:  10.0.0.65
   Last host:   10.0.0.126
   Hosts:       62
   Size:        64

Options:
   -c, --config path    Path to the vlsm configuration file (overrides VLSMCONFIG)
   -h, --help           Show this usage information
   -o, --output format  Output format, one of: text, json, yaml
`

func info(ctx context.Context, args []string) error {
	var output outputFormat

	flagSet := newFlagSet("vlsm info", infoUsage)
	customVar(flagSet, &output, "o", "output")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		perror(`Expected at least one network as argument, like 'vlsm info 10.0.0.64/26'`)
		return exitCode(2)
	}

	config, err := vlsm.LoadConfig()
	if err != nil {
		return err
	}
	if output == "" {
		if err := output.Set(config.OutputFormat()); err != nil {
			return err
		}
	}

	var lookup func(string) (any, error)
	switch output {
	case "json", "yaml":
		lookup = lookupNetwork
	default:
		lookup = describeNetwork
	}

	readers := make([]stream.Reader[any], len(args))
	for i, arg := range args {
		readers[i] = stream.ReaderFunc[any](func(values []any) (int, error) {
			v, err := lookup(arg)
			if err != nil {
				return 0, err
			}
			values[0] = v
			return 1, io.EOF
		})
	}

	var writer stream.WriteCloser[any]
	switch output {
	case "json":
		writer = jsonprint.NewWriter[any](os.Stdout)
	case "yaml":
		writer = yamlprint.NewWriter[any](os.Stdout)
	default:
		writer = textprint.NewWriter[any](os.Stdout)
	}
	defer writer.Close()

	_, err = stream.Copy[any](writer, stream.MultiReader[any](readers...))
	return err
}

// networkInfo is the output schema of the info command.
type networkInfo struct {
	Network   ipam.Network `json:"network"    yaml:"network"`
	Netmask   ipam.IPv4    `json:"netmask"    yaml:"netmask"`
	Wildcard  ipam.IPv4    `json:"wildcard"   yaml:"wildcard"`
	Broadcast ipam.IPv4    `json:"broadcast"  yaml:"broadcast"`
	FirstHost ipam.IPv4    `json:"first_host" yaml:"first_host"`
	LastHost  ipam.IPv4    `json:"last_host"  yaml:"last_host"`
	Hosts     uint64       `json:"hosts"      yaml:"hosts"`
	Size      uint64       `json:"size"       yaml:"size"`
}

func lookupNetwork(s string) (any, error) {
	network, err := ipam.ParseNetwork(s)
	if err != nil {
		return nil, err
	}
	first, last := network.Range()
	return networkInfo{
		Network:   network,
		Netmask:   network.Mask(),
		Wildcard:  network.Wildcard(),
		Broadcast: network.Broadcast(),
		FirstHost: first,
		LastHost:  last,
		Hosts:     network.Hosts(),
		Size:      network.Size(),
	}, nil
}

func describeNetwork(s string) (any, error) {
	v, err := lookupNetwork(s)
	if err != nil {
		return nil, err
	}
	return networkDescriptor(v.(networkInfo)), nil
}

type networkDescriptor networkInfo

func (d networkDescriptor) Format(w fmt.State, _ rune) {
	fmt.Fprintf(w, "Network:     %s\n", d.Network)
	fmt.Fprintf(w, "Netmask:     %s\n", d.Netmask)
	fmt.Fprintf(w, "Wildcard:    %s\n", d.Wildcard)
	fmt.Fprintf(w, "Broadcast:   %s\n", d.Broadcast)
	fmt.Fprintf(w, "First host:  %s\n", d.FirstHost)
	fmt.Fprintf(w, "Last host:   %s\n", d.LastHost)
	fmt.Fprintf(w, "Hosts:       %d\n", d.Hosts)
	fmt.Fprintf(w, "Size:        %d\n", d.Size)
}

package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/Lucop1911/vlsm/internal/ipam"
	"github.com/Lucop1911/vlsm/internal/print/human"
	"github.com/Lucop1911/vlsm/internal/print/jsonprint"
	"github.com/Lucop1911/vlsm/internal/print/textprint"
	"github.com/Lucop1911/vlsm/internal/print/yamlprint"
	"github.com/Lucop1911/vlsm/internal/stream"
	"github.com/Lucop1911/vlsm/internal/vlsm"
)

const allocateUsage = `
Usage:	vlsm allocate [options] [<name=hosts>...]

   The allocate command divides a base IPv4 network into subnets, each sized
   for the number of hosts it must serve. Requirements are placed from the
   largest to the smallest so that every subnet starts on a boundary aligned
   to its own size and no space is lost between placements.

   Requirements are given as arguments of the form <name=hosts>, or read from
   a YAML plan file with the -f option. Host counts accept unit suffixes, so
   'office=1.5K' requests a subnet for 1500 hosts.

   The allocation is atomic: when any requirement cannot be satisfied, the
   command reports the failure and writes no placements at all.

Examples:

   $ vlsm allocate -b 10.0.0.0/24 engineering=50 sales=20 guests=10
   SUBNET       NETWORK       NETMASK          FIRST HOST  LAST HOST   HOSTS  REQUESTED
   engineering  10.0.0.0/26   255.255.255.192  10.0.0.1    10.0.0.62   62     50
   sales        10.0.0.64/27  255.255.255.224  10.0.0.65   10.0.0.94   30     20
   guests       10.0.0.96/28  255.255.255.240  10.0.0.97   10.0.0.110  14     10

   160 of 256 addresses allocated (62.5%)

   $ vlsm allocate -b 10.0.0.0/24 -q engineering=50 sales=20
   10.0.0.0/26
   10.0.0.64/27

Options:
   -b, --base network   Base network to divide, in CIDR notation
   -c, --config path    Path to the vlsm configuration file (overrides VLSMCONFIG)
   -f, --file path      Read the subnet plan from a YAML file
       --free           Also report the free blocks left over by the allocation
   -h, --help           Show this usage information
   -o, --output format  Output format, one of: text, json, yaml
   -q, --quiet          Only display the subnet networks
`

func allocate(ctx context.Context, args []string) error {
	var (
		base     ipam.Network
		planPath human.Path
		free     bool
		quiet    bool
		output   outputFormat
	)

	flagSet := newFlagSet("vlsm allocate", allocateUsage)
	customVar(flagSet, &base, "b", "base")
	customVar(flagSet, &planPath, "f", "file")
	boolVar(flagSet, &free, "free")
	boolVar(flagSet, &quiet, "q", "quiet")
	customVar(flagSet, &output, "o", "output")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
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

	var reqs []ipam.Requirement
	switch {
	case planPath != "":
		if len(args) > 0 {
			perror(`Subnet requirements cannot be passed as arguments when reading a plan file (see 'vlsm help allocate')`)
			return exitCode(2)
		}
		path, err := planPath.Resolve()
		if err != nil {
			return err
		}
		plan, err := vlsm.LoadPlan(path)
		if err != nil {
			return err
		}
		if planBase, ok := plan.Base.Value(); ok && base == (ipam.Network{}) {
			base = planBase
		}
		reqs = plan.Requirements()
	case len(args) > 0:
		reqs = make([]ipam.Requirement, len(args))
		for i, arg := range args {
			req, err := parseRequirement(arg)
			if err != nil {
				perror(err)
				return exitCode(2)
			}
			reqs[i] = req
		}
	default:
		perror(`Expected subnet requirements as arguments, like 'vlsm allocate -b 10.0.0.0/24 engineering=50'`)
		return exitCode(2)
	}

	if base == (ipam.Network{}) {
		perror(`No base network was given; pass one with -b or declare it in the plan file`)
		return exitCode(2)
	}

	result, err := ipam.Allocate(base, reqs)
	if err != nil {
		return err
	}

	toRow := func(s ipam.Subnet) (subnetRow, error) {
		first, last := s.Network.Range()
		return subnetRow{
			Subnet:    s.Label,
			Network:   s.Network,
			Netmask:   s.Network.Mask(),
			FirstHost: first,
			LastHost:  last,
			Hosts:     s.Hosts(),
			Requested: s.Requested,
		}, nil
	}

	var writer stream.WriteCloser[ipam.Subnet]
	switch output {
	case "json":
		writer = newRowWriter(jsonprint.NewWriter[subnetRow](os.Stdout), toRow)
	case "yaml":
		writer = newRowWriter(yamlprint.NewWriter[subnetRow](os.Stdout), toRow)
	default:
		if quiet {
			writer = newTableWriter(os.Stdout, quiet, nil, func(s ipam.Subnet) (networkRow, error) {
				return networkRow{Network: s.Network}, nil
			})
		} else {
			writer = newTableWriter(os.Stdout, quiet, nil, toRow)
		}
	}

	if _, err := stream.Copy[ipam.Subnet](writer, stream.NewReader(result.Subnets...)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	if output == "text" && !quiet {
		fmt.Printf("\n%d of %d addresses allocated (%s)\n",
			result.Allocated(),
			result.Base.Size(),
			human.Ratio(result.Utilization()))
	}

	if free {
		toFreeRow := func(n ipam.Network) (freeRow, error) {
			return freeRow{Network: n, Size: n.Size()}, nil
		}

		var writer stream.WriteCloser[ipam.Network]
		switch output {
		case "json":
			writer = newRowWriter(jsonprint.NewWriter[freeRow](os.Stdout), toFreeRow)
		case "yaml":
			writer = newRowWriter(yamlprint.NewWriter[freeRow](os.Stdout), toFreeRow)
		default:
			if !quiet {
				fmt.Println()
			}
			writer = newTableWriter(os.Stdout, quiet, nil, toFreeRow)
		}

		if _, err := stream.Copy[ipam.Network](writer, stream.NewReader(result.Free()...)); err != nil {
			return err
		}
		if err := writer.Close(); err != nil {
			return err
		}
	}
	return nil
}

// subnetRow is the output schema of the allocate command, one row per placed
// subnet.
type subnetRow struct {
	Subnet    string       `text:"SUBNET"     json:"subnet"     yaml:"subnet"`
	Network   ipam.Network `text:"NETWORK"    json:"network"    yaml:"network"`
	Netmask   ipam.IPv4    `text:"NETMASK"    json:"netmask"    yaml:"netmask"`
	FirstHost ipam.IPv4    `text:"FIRST HOST" json:"first_host" yaml:"first_host"`
	LastHost  ipam.IPv4    `text:"LAST HOST"  json:"last_host"  yaml:"last_host"`
	Hosts     uint64       `text:"HOSTS"      json:"hosts"      yaml:"hosts"`
	Requested uint64       `text:"REQUESTED"  json:"requested"  yaml:"requested"`
}

// networkRow is the quiet output schema, one network per line.
type networkRow struct {
	Network ipam.Network `text:"NETWORK" json:"network" yaml:"network"`
}

// freeRow is the output schema of the --free option, one row per block of
// unallocated address space.
type freeRow struct {
	Network ipam.Network `text:"FREE BLOCK" json:"network" yaml:"network"`
	Size    uint64       `text:"SIZE"       json:"size"    yaml:"size"`
}

// parseRequirement parses a <name=hosts> command line argument.
func parseRequirement(arg string) (ipam.Requirement, error) {
	name, hosts, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return ipam.Requirement{}, fmt.Errorf("malformed subnet requirement: %q: expected <name=hosts>", arg)
	}
	count, err := human.ParseCount(hosts)
	if err != nil {
		return ipam.Requirement{}, fmt.Errorf("malformed subnet requirement: %q: %w", arg, err)
	}
	if count < 0 {
		return ipam.Requirement{}, fmt.Errorf("subnet %q requests a negative host count", name)
	}
	return ipam.Requirement{Label: name, Hosts: uint64(math.Round(float64(count)))}, nil
}

func newTableWriter[T1, T2 any](w io.Writer, quiet bool, orderBy func(T1, T1) int, conv func(T2) (T1, error)) stream.WriteCloser[T2] {
	opts := []textprint.TableOption[T1]{
		textprint.OrderBy(orderBy),
	}
	if quiet {
		opts = append(opts,
			textprint.Header[T1](false),
			textprint.List[T1](true),
		)
	}
	tw := textprint.NewTableWriter[T1](w, opts...)
	cw := stream.ConvertWriter[T1](tw, conv)
	return stream.NewWriteCloser(cw, tw)
}

func newRowWriter[T1, T2 any](w stream.WriteCloser[T1], conv func(T2) (T1, error)) stream.WriteCloser[T2] {
	return stream.NewWriteCloser(stream.ConvertWriter[T1](w, conv), w)
}

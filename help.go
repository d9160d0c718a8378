package main

import (
	"context"
	"fmt"
	"strings"
)

const helpUsage = `
Usage:	vlsm <command> [options]

Commands:
   allocate  Divide a base network into subnets sized for host requirements
   config    View or edit the vlsm configuration
   help      Show usage information about vlsm commands
   info      Show addressing details of IPv4 networks
   shell     Start an interactive subnet calculator
   version   Show the vlsm version information

Global Options:
   -c, --config path  Path to the vlsm configuration file (overrides VLSMCONFIG)
   -h, --help         Show usage information

For a description of each command, run 'vlsm help <command>'.
`

func help(ctx context.Context, args []string) error {
	flagSet := newFlagSet("vlsm help", helpUsage)

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Println(strings.TrimSpace(helpUsage))
		return nil
	}

	var text string
	switch cmd := args[0]; cmd {
	case "allocate":
		text = allocateUsage
	case "config":
		text = configUsage
	case "help":
		text = helpUsage
	case "info":
		text = infoUsage
	case "shell":
		text = shellUsage
	case "version":
		text = versionUsage
	default:
		return usageError("vlsm help %s: unknown command", cmd)
	}

	fmt.Println(strings.TrimSpace(text))
	return nil
}

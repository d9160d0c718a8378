package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Lucop1911/vlsm/internal/ipam"
	"github.com/Lucop1911/vlsm/internal/vlsm"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

const shellUsage = `
Usage:	vlsm shell [options]

   The shell command starts an interactive subnet calculator. Each line of
   input names a network, either in CIDR notation or as an address and
   netmask pair, and the shell responds with its addressing facts:

      vlsm> 192.168.1.10/24
      vlsm> 192.168.1.10 255.255.255.0

   The prompt is customizable with the shell.prompt configuration key (see
   'vlsm help config'). Type 'exit' or 'quit' (or press ctrl-d) to leave.

Options:
   -c, --config path  Path to the vlsm configuration file (overrides VLSMCONFIG)
   -h, --help         Show this usage information
`

func shell(ctx context.Context, args []string) error {
	flagSet := newFlagSet("vlsm shell", shellUsage)

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		perror(`The shell command does not take arguments (see 'vlsm help shell')`)
		return exitCode(2)
	}

	config, err := vlsm.LoadConfig()
	if err != nil {
		return err
	}
	prompt := config.ShellPrompt()

	// Control sequences would garble the output when it is piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		pterm.DisableStyling()
	}

	fmt.Fprintln(os.Stdout, pterm.LightCyan("vlsm interactive shell"))
	fmt.Fprintln(os.Stdout, "Enter <address>/<prefix> or <address> <netmask> to describe a network.")
	fmt.Fprintln(os.Stdout, "Type 'exit' or 'quit' to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, prompt)

		if !scanner.Scan() {
			// The input ended without an exit command, move past the prompt
			// before leaving.
			fmt.Fprintln(os.Stdout)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			fmt.Fprintln(os.Stdout, pterm.LightYellow("Exiting..."))
			return nil
		}

		if err := evalShellLine(os.Stdout, line); err != nil {
			fmt.Fprintln(os.Stdout, pterm.LightRed("error: "+err.Error()))
		}
	}

	fmt.Fprintln(os.Stdout, pterm.LightYellow("Exiting..."))
	return scanner.Err()
}

// evalShellLine parses a network given in CIDR notation or as an address and
// netmask pair, and writes its addressing facts.
func evalShellLine(w io.Writer, line string) error {
	var addrText string
	var prefix int

	switch fields := strings.Fields(line); len(fields) {
	case 1:
		s, p, ok := strings.Cut(fields[0], "/")
		if !ok {
			return fmt.Errorf("malformed input: %q: expected <address>/<prefix> or <address> <netmask>", line)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("malformed prefix length: %q: %w", p, ipam.ErrInvalidPrefix)
		}
		addrText, prefix = s, n
	case 2:
		mask, err := ipam.ParseIPv4(fields[1])
		if err != nil {
			return err
		}
		n, err := ipam.MaskPrefix(mask)
		if err != nil {
			return err
		}
		addrText, prefix = fields[0], n
	default:
		return fmt.Errorf("malformed input: %q: expected <address>/<prefix> or <address> <netmask>", line)
	}

	addr, err := ipam.ParseIPv4(addrText)
	if err != nil {
		return err
	}
	mask, err := ipam.Mask(prefix)
	if err != nil {
		return err
	}

	// The prefix was validated by Mask just above.
	network, _ := ipam.NetworkAddress(addr, prefix)
	broadcast, _ := ipam.BroadcastAddress(addr, prefix)
	first, last, _ := ipam.UsableRange(addr, prefix)

	// Printf width specifiers would count the color escape bytes, so the
	// labels carry their own padding.
	fmt.Fprintln(w)
	fmt.Fprintln(w, pterm.LightCyan("Results:"))
	fmt.Fprintf(w, "%s%s\n", pterm.LightCyan("IP Address:        "), pterm.LightGreen(addr.String()))
	fmt.Fprintf(w, "%s%s\n", pterm.LightCyan("Subnet Mask:       "), pterm.LightGreen(mask.String()))
	fmt.Fprintf(w, "%s%s\n", pterm.LightCyan("Network Address:   "), pterm.LightGreen(network.String()))
	fmt.Fprintf(w, "%s%s\n", pterm.LightCyan("Broadcast Address: "), pterm.LightGreen(broadcast.String()))
	fmt.Fprintf(w, "%s%s - %s\n", pterm.LightCyan("Usable Range:      "), pterm.LightGreen(first.String()), pterm.LightGreen(last.String()))
	fmt.Fprintln(w)
	return nil
}

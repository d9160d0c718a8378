package main

// Notes on program structure
// --------------------------
//
// vlsm uses subcommands to invoke specific functionalities of the program.
// Each subcommand is implemented by a function named after the command, in a
// file of the same name (e.g. the "help" command is implemented by the help
// function in help.go).
//
// The usage message for each command is declared by a constant starting with
// the command name and followed by the suffix "Usage". For example, the usage
// message for the "help" command is declared by the constant helpUsage.
//
// The usage message contains a "Usage:	vlsm <command>" section presenting
// the structure of the command. Note the tabulation separating "Usage:" and
// "vlsm".

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"slices"
	"strings"

	"github.com/Lucop1911/vlsm/internal/print/human"
	"github.com/Lucop1911/vlsm/internal/vlsm"
)

const rootUsage = `vlsm - Variable Length Subnet Mask calculator

   vlsm divides IPv4 networks into right-sized subnets. Given a base network
   and the number of hosts each subnet must serve, it places the largest
   requirements first so that every subnet lands on its natural block boundary
   and no space is lost to alignment.

Example:

   $ vlsm allocate -b 10.0.0.0/24 engineering=50 sales=20 guests=10
   SUBNET       NETWORK       ...

   $ vlsm info 10.0.0.64/26
   Network:     10.0.0.64/26
   ...

For a list of commands available, run 'vlsm help'.`

// root is the vlsm entrypoint.
func root(ctx context.Context, args ...string) int {
	if path := os.Getenv("VLSMCONFIG"); path != "" {
		vlsm.ConfigPath = human.Path(path)
	} else {
		vlsm.ConfigPath = vlsm.DefaultConfigPath
	}

	var (
		// Secret options, we don't document them since they are only used for
		// development. Since they are not part of the public interface we may
		// remove or change the syntax at any time.
		cpuProfile human.Path
		memProfile human.Path
	)

	flagSet := newFlagSet("vlsm", helpUsage)
	customVar(flagSet, &cpuProfile, "cpuprofile")
	customVar(flagSet, &memProfile, "memprofile")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if args = flagSet.Args(); len(args) == 0 {
		fmt.Println(rootUsage)
		return 0
	}

	if cpuProfile != "" {
		path, _ := cpuProfile.Resolve()
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARN: could not create CPU profile: %s\n", err)
		} else {
			defer f.Close()
			_ = pprof.StartCPUProfile(f)
			defer pprof.StopCPUProfile()
		}
	}

	if memProfile != "" {
		path, _ := memProfile.Resolve()
		defer func() {
			f, err := os.Create(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "WARN: could not create memory profile: %s\n", err)
			} else {
				defer f.Close()
				runtime.GC()
				_ = pprof.WriteHeapProfile(f)
			}
		}()
	}

	cmd, args := args[0], args[1:]

	var err error
	switch cmd {
	case "allocate":
		err = allocate(ctx, args)
	case "config":
		err = config(ctx, args)
	case "help":
		err = help(ctx, args)
	case "info":
		err = info(ctx, args)
	case "shell":
		err = shell(ctx, args)
	case "version":
		err = version(ctx, args)
	default:
		err = unknown(ctx, cmd)
	}

	switch e := err.(type) {
	case nil:
		return 0
	case exitCode:
		return int(e)
	case usage:
		fmt.Fprintf(os.Stderr, "%s\n", e)
		return 2
	default:
		fmt.Fprintf(os.Stderr, "ERR: vlsm %s: %s\n", cmd, err)
		return 1
	}
}

// exitCode is an error type returned from command functions to indicate the
// exit code that should be returned by the program.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit: %d", e)
}

// usage is an error type returned from command functions to indicate a usage
// error.
//
// Usage errors cause the program to exit with status code 2.
type usage string

func usageError(msg string, args ...any) error {
	return usage(fmt.Sprintf(msg, args...))
}

func (e usage) Error() string {
	return string(e)
}

func setEnum[T ~string](enum *T, typ string, value string, options ...string) error {
	for _, option := range options {
		if option == value {
			*enum = T(option)
			return nil
		}
	}
	return fmt.Errorf("unsupported %s: %q (not one of %s)", typ, value, strings.Join(options, ", "))
}

type outputFormat string

func (o outputFormat) String() string {
	return string(o)
}

func (o *outputFormat) Set(value string) error {
	return setEnum(o, "output format", value, "text", "json", "yaml")
}

func newFlagSet(cmd, usage string) *flag.FlagSet {
	usage = strings.TrimSpace(usage)
	flagSet := flag.NewFlagSet(cmd, flag.ContinueOnError)
	flagSet.Usage = func() { fmt.Println(usage) }
	customVar(flagSet, &vlsm.ConfigPath, "c", "config")
	return flagSet
}

// parseFlags is a greedy parser which consumes all options known to f and
// returns the remaining arguments.
func parseFlags(f *flag.FlagSet, args []string) ([]string, error) {
	var unknownArgs []string
	for {
		if err := f.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				// The flag set already printed the usage message.
				return nil, exitCode(0)
			}
			// The flag set already reported the parse error.
			return nil, exitCode(2)
		}
		if args = f.Args(); len(args) == 0 {
			return unknownArgs, nil
		}
		i := slices.IndexFunc(args, func(s string) bool {
			return strings.HasPrefix(s, "-")
		})
		if i < 0 {
			i = len(args)
		} else if args[i] == "-" {
			i++
		}
		if i == 0 {
			// The parser stopped on a "--" terminator, everything after it is
			// passed through as-is.
			return append(unknownArgs, args...), nil
		}
		unknownArgs = append(unknownArgs, args[:i]...)
		args = args[i:]
	}
}

func boolVar(f *flag.FlagSet, dst *bool, name string, alias ...string) {
	f.BoolVar(dst, name, *dst, "")
	for _, name := range alias {
		f.BoolVar(dst, name, *dst, "")
	}
}

func customVar(f *flag.FlagSet, dst flag.Value, name string, alias ...string) {
	f.Var(dst, name, "")
	for _, name := range alias {
		f.Var(dst, name, "")
	}
}

func perror(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
}

func perrorf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
}

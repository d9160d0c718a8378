package main

import (
	"context"
)

const unknownCommand = `vlsm %s: unknown command
For a list of commands available, run 'vlsm help'.
`

func unknown(ctx context.Context, cmd string) error {
	return usageError(unknownCommand, cmd)
}

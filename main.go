package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(root(context.Background(), os.Args[1:]...))
}

// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program toon reads TOON documents and converts, queries, patches, and
// compares them.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

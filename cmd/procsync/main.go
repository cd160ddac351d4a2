// Copyright 2025 The procsync authors. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/procsync/procsync/cmd/procsync/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

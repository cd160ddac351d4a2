// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "procsync",
	ReportTimestamp: true,
})

// abortProcess terminates the process after an unrecoverable locking protocol
// violation. The violated lock is already broken at this point: continuing
// would deadlock every participant. It is a variable, so tests can intercept
// the termination.
var abortProcess = func() {
	os.Exit(1)
}

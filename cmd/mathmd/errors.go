package main

import "errors"

// Sentinel errors for the CLI, classified by exitCodeFor.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrMultipleInputs     = errors.New("several inputs cannot be written to stdout")
	ErrConflictingOutput  = errors.New("--output and --in-place are mutually exclusive")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrNotCanonical       = errors.New("not canonical")
)

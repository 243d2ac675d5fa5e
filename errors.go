package tonekit

import "errors"

// ErrCommandQueueFull is returned by every command-submission method when
// the control-to-audio command ring has no free slot, per spec.md §7.
// Producer retries are the caller's choice; the engine never retries on
// its own.
var ErrCommandQueueFull = errors.New("tonekit: command queue full")

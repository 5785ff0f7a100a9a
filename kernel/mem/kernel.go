// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

// Package mem implements a pure-Go polyhedral B-rep kernel.
//
// mem is the always-available fallback and test kernel: it models solids as
// polyline-bounded faces (a closed polyline edge stands in for a closed
// curve, so circular seams classify the same way they do in a full kernel)
// and implements the subset of the kernel surface that the engine and its
// tests exercise. Boolean operations are supported for coaxial prismatic
// solids only; outside that envelope mem reports kernel.ErrIncomplete, which
// is the same signal a full kernel emits for an unresolved boolean.
//
// mem tracks its live handle count, so tests can assert exact
// acquire/release pairing.
package mem

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gocad/brep/kernel"
)

func init() {
	kernel.Register("mem", kernel.PrioritySoftware, func() kernel.Kernel {
		return New()
	})
}

// Model tolerances. tightTol is the coincidence tolerance reported by
// Tolerance(); circleSegments is the construction-time discretization of
// circular profile edges.
const (
	tightTol       = 1e-7
	circleSegments = 64
	arcSegments    = 16
)

// Kernel is a pure-Go polyhedral geometry kernel.
type Kernel struct {
	log  atomic.Pointer[slog.Logger]
	live atomic.Int64
}

// New creates a mem kernel.
func New() *Kernel {
	k := &Kernel{}
	k.log.Store(slog.New(nopHandler{}))
	return k
}

// Name returns the kernel identifier.
func (k *Kernel) Name() string { return "mem" }

// Tolerance returns the tight model tolerance.
func (k *Kernel) Tolerance() float64 { return tightTol }

// SetLogger configures the kernel's logger. Pass nil to silence it.
func (k *Kernel) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	k.log.Store(l)
}

func (k *Kernel) logger() *slog.Logger { return k.log.Load() }

// Live returns the number of currently allocated handles. It is zero when
// every handle issued by this kernel has been released.
func (k *Kernel) Live() int64 { return k.live.Load() }

// nopHandler discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler   { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler        { return nopHandler{} }

// Package brep is the integration layer between an interactive solid
// modeler and a boundary-representation geometry kernel.
//
// # Overview
//
// brep manages kernel shape handles correctly rather than implementing
// geometry itself: it provides the reference-counted shape registry, the
// primitive and modification operations (booleans with a relaxed-tolerance
// retry, fillet/chamfer, face push/pull), the topology reconstruction
// engine that rebuilds a valid solid after vertex displacement, and the
// tessellation pipeline that turns a shape into a render mesh plus
// topology index maps.
//
// # Quick Start
//
//	import (
//	    "github.com/gocad/brep"
//	    "github.com/gocad/brep/kernel"
//	    _ "github.com/gocad/brep/kernel/mem"
//	)
//
//	k := kernel.MustDefault()
//	box, err := brep.Box(k, brep.P3(0, 0, 0), 4, 4, 2)
//	if err != nil {
//	    // ...
//	}
//	defer box.Release()
//
//	mesh, err := brep.Tessellate(k, box, brep.ProfileHigh)
//
// # Kernels
//
// The kernel package defines the binding seam; backends register
// themselves in an init function and are selected by priority, so a
// cgo-backed kernel can be dropped in beside the built-in pure-Go one
// (kernel/mem).
//
// # Handle lifetime
//
// Kernel shapes are native resources with manual lifetimes. Every shape
// returned by an operation is owned by the caller and must be released
// exactly once, either directly or by storing it in a Registry and using
// Retain/Release pairing. Functions in this package release every
// intermediate handle they allocate on every path, including error paths.
//
// # Topology indices
//
// Face/edge/vertex indices used by Fillet, Chamfer, PushPull and the mesh
// maps are positions in the kernel's deterministic per-instance iteration
// order. They are valid only against the exact shape instance they were
// produced from; any rebuild invalidates them and callers must re-resolve.
package brep

// Version is the release version of the library.
const Version = "0.1.0-alpha.1"

package brep

import (
	"fmt"
	"math"

	"github.com/gocad/brep/kernel"
)

// moveTolerance is the rounded-coordinate tolerance used to match move
// records against shape vertices. The move matcher and the rebuild vertex
// cache share it, so the two can never disagree about vertex identity.
const moveTolerance = 1e-4

// Reconstruction defaults. The face-loss ratio is a heuristic threshold,
// not a correctness bound; crossing it logs a warning and nothing more.
const (
	DefaultSewTolerance  = 1e-5
	DefaultFaceLossRatio = 0.8
)

// moveKey is a position rounded onto the move-tolerance grid.
type moveKey [3]int64

func keyAt(p Point3) moveKey {
	return moveKey{
		int64(math.Round(p.X / moveTolerance)),
		int64(math.Round(p.Y / moveTolerance)),
		int64(math.Round(p.Z / moveTolerance)),
	}
}

// RebuildOptions tunes the reconstruction engine. The zero value selects
// the defaults.
type RebuildOptions struct {
	// SewTolerance is the positional tolerance handed to the kernel's
	// stitching facility by the sewing fallback.
	SewTolerance float64

	// FaceLossRatio is the fraction of the original face count below
	// which the result is logged as degraded.
	FaceLossRatio float64
}

func (o RebuildOptions) withDefaults() RebuildOptions {
	if o.SewTolerance <= 0 {
		o.SewTolerance = DefaultSewTolerance
	}
	if o.FaceLossRatio <= 0 {
		o.FaceLossRatio = DefaultFaceLossRatio
	}
	return o
}

// segment is one straight boundary piece of a face, after moves applied.
type segment struct {
	a, b Point3
}

// facePlan is the classification of one source face.
type facePlan struct {
	face   kernel.Shape // source handle, owned by the rebuild scope
	curved bool         // outer boundary has a closed-curve seam or too few usable vertices
	moved  bool         // at least one boundary vertex (outer or hole) matched a move
	segs   []segment    // straight outer segments in traversal order
	holes  []holePlan
}

// holePlan is the classification of one inner (hole) loop of a face. An
// untouched hole is carried verbatim through the rebuild via its source
// wire; only a hole with a moved vertex is reconstructed from segments.
type holePlan struct {
	wire   kernel.Shape // source wire handle, owned by the rebuild scope
	curved bool
	moved  bool
	segs   []segment
}

// rebuildStrategy is one entry of the ordered fallback chain.
type rebuildStrategy struct {
	name  string
	build func() (kernel.Shape, error)
}

// Rebuild produces a new shape with the given vertex moves applied,
// preserving untouched curved geometry and keeping tolerance as tight as
// the source allows. The source shape is untouched; the caller owns the
// result.
//
// Strategy chain, first success wins:
//
//  1. Classify every face by walking its boundary with moves applied.
//  2. If any face is curved: preserve-original — untouched faces are kept
//     identically, only faces with a moved vertex are rebuilt from their
//     straight-edge boundary.
//  3. All faces planar: shared-topology construction — position-keyed
//     vertex cache plus canonical-direction edge cache, so adjacent faces
//     share edges from construction and tolerance stays tight.
//  4. Sewing fallback — independent faces handed to the kernel's
//     stitching facility. Lower quality: stitching widens tolerance,
//     which cascades into later boolean failures, so it runs last.
//
// A result with a suspicious face count or a failing validity check is
// logged and returned anyway; only zero usable faces is a TopologyError.
func Rebuild(k kernel.Kernel, s kernel.Shape, moves []VertexMove, opts RebuildOptions) (kernel.Shape, error) {
	o := opts.withDefaults()
	sc := newScope()
	defer sc.Close()

	moveMap := make(map[moveKey]Point3, len(moves))
	for _, m := range moves {
		moveMap[keyAt(m.From)] = m.To
	}

	faces, err := k.SubShapes(s, kernel.KindFace)
	if err != nil {
		return nil, fmt.Errorf("brep: rebuild: %w", err)
	}
	sc.trackAll(faces)
	if len(faces) == 0 {
		return nil, &TopologyError{Moves: len(moves), Reason: fmt.Errorf("source has no faces: %w", kernel.ErrDegenerate)}
	}

	plans := make([]facePlan, len(faces))
	anyCurved := false
	for i, f := range faces {
		p, err := planFace(sc, k, f, moveMap)
		if err != nil {
			return nil, fmt.Errorf("brep: rebuild: classify face %d: %w", i, err)
		}
		plans[i] = p
		anyCurved = anyCurved || p.curved
	}

	var chain []rebuildStrategy
	if anyCurved {
		chain = []rebuildStrategy{
			{"preserve-original", func() (kernel.Shape, error) { return preserveOriginal(sc, k, plans) }},
		}
	} else {
		chain = []rebuildStrategy{
			{"shared-topology", func() (kernel.Shape, error) { return sharedTopology(sc, k, plans) }},
			{"sewing", func() (kernel.Shape, error) { return sewFallback(sc, k, plans, o.SewTolerance) }},
		}
	}

	var out kernel.Shape
	var lastErr error
	for _, st := range chain {
		res, err := st.build()
		if err != nil {
			Logger().Warn("brep: rebuild strategy failed", "strategy", st.name, "err", err)
			lastErr = err
			continue
		}
		Logger().Debug("brep: rebuild strategy succeeded", "strategy", st.name, "moves", len(moves))
		out = res
		break
	}
	if out == nil {
		return nil, &TopologyError{Moves: len(moves), Reason: lastErr}
	}
	sc.track(out)

	checkRebuilt(k, out, len(faces), o.FaceLossRatio)
	return sc.detach(out), nil
}

// planFace walks one face's boundaries in order, applying moves, and
// classifies the face. A boundary segment whose endpoints collapse within
// tolerance marks its loop curved (a closed-curve seam, e.g. a circle)
// and is skipped — it must never become a zero-length edge, which the
// kernel rejects. Inner (hole) loops are planned individually so an
// untouched hole ring survives the rebuild verbatim.
func planFace(sc *scope, k kernel.Kernel, f kernel.Shape, moveMap map[moveKey]Point3) (facePlan, error) {
	p := facePlan{face: f}

	w, err := k.OuterWire(f)
	if err != nil {
		return p, err
	}
	sc.track(w)

	apply := func(pt Point3) (Point3, bool) {
		if to, ok := moveMap[keyAt(pt)]; ok {
			return to, true
		}
		return pt, false
	}
	segs, curved, moved, err := planWire(sc, k, w, apply)
	if err != nil {
		return p, err
	}
	p.segs, p.curved, p.moved = segs, curved, moved

	inner, err := k.InnerWires(f)
	if err != nil {
		return p, err
	}
	sc.trackAll(inner)
	for _, hw := range inner {
		segs, curved, moved, err := planWire(sc, k, hw, apply)
		if err != nil {
			return p, err
		}
		p.holes = append(p.holes, holePlan{wire: hw, curved: curved, moved: moved, segs: segs})
		p.moved = p.moved || moved
	}
	return p, nil
}

// planWire walks one wire's edges in traversal order with moves applied.
func planWire(sc *scope, k kernel.Kernel, w kernel.Shape, apply func(Point3) (Point3, bool)) (segs []segment, curved, moved bool, err error) {
	edges, _, err := k.WireEdges(w)
	if err != nil {
		return nil, false, false, err
	}
	sc.trackAll(edges)

	for _, e := range edges {
		a, b, err := k.EdgeEnds(e)
		if err != nil {
			return nil, false, false, err
		}
		var ma, mb bool
		a, ma = apply(a)
		b, mb = apply(b)
		moved = moved || ma || mb
		if a.Near(b, moveTolerance) {
			curved = true
			continue
		}
		segs = append(segs, segment{a, b})
	}
	if len(segs) < 3 {
		curved = true
	}
	return segs, curved, moved, nil
}

// preserveOriginal keeps faces with no moved vertex byte-identical from
// the source and rebuilds only the touched faces from their straight-edge
// boundaries, re-attaching each face's hole rings. This is what keeps
// fillets, cylindrical faces and untouched through-holes alive through a
// move that never touched them.
func preserveOriginal(sc *scope, k kernel.Kernel, plans []facePlan) (kernel.Shape, error) {
	builder := newFaceBuilder(sc, k, true)

	var faces []kernel.Shape
	for i, p := range plans {
		if !p.moved {
			faces = append(faces, p.face)
			continue
		}
		if len(p.segs) < 3 {
			Logger().Warn("brep: dropping moved face with too few usable vertices", "face", i, "segments", len(p.segs))
			continue
		}
		f, err := builder.face(p)
		if err != nil {
			return nil, fmt.Errorf("rebuild face %d: %w", i, err)
		}
		faces = append(faces, f)
	}
	return assembleShell(sc, k, faces)
}

// sharedTopology rebuilds every face over a shared vertex cache and a
// canonical-direction edge cache. Each boundary segment reuses the
// canonical edge — reversed when traversed against its creation
// direction — so adjacent faces share edges from construction and never
// introduce a second independent edge for one boundary.
func sharedTopology(sc *scope, k kernel.Kernel, plans []facePlan) (kernel.Shape, error) {
	builder := newFaceBuilder(sc, k, true)

	var faces []kernel.Shape
	for i, p := range plans {
		f, err := builder.face(p)
		if err != nil {
			return nil, fmt.Errorf("rebuild face %d: %w", i, err)
		}
		faces = append(faces, f)
	}
	return assembleShell(sc, k, faces)
}

// sewFallback builds each face independently (vertex cache only, one new
// edge per boundary segment) and hands the disjoint faces to the kernel's
// stitching-plus-healing facility.
func sewFallback(sc *scope, k kernel.Kernel, plans []facePlan, tol float64) (kernel.Shape, error) {
	builder := newFaceBuilder(sc, k, false)

	var faces []kernel.Shape
	for i, p := range plans {
		f, err := builder.face(p)
		if err != nil {
			Logger().Warn("brep: sewing fallback dropping face", "face", i, "err", err)
			continue
		}
		faces = append(faces, f)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("no usable faces: %w", kernel.ErrIncomplete)
	}

	sewn, err := k.Sew(faces, tol)
	if err != nil {
		return nil, fmt.Errorf("sew: %w", err)
	}
	if sewn.Kind() != kernel.KindShell {
		return sewn, nil
	}
	sc.track(sewn)
	solid, err := k.SolidFromShell(sewn)
	if err != nil {
		Logger().Warn("brep: sewn shell did not close into a solid", "err", err)
		return sc.detach(sewn), nil
	}
	return solid, nil
}

// faceBuilder constructs faces from straight segments over shared caches.
type faceBuilder struct {
	sc         *scope
	k          kernel.Kernel
	shareEdges bool
	verts      map[moveKey]kernel.Shape
	edges      map[[2]moveKey]kernel.Shape
}

func newFaceBuilder(sc *scope, k kernel.Kernel, shareEdges bool) *faceBuilder {
	return &faceBuilder{
		sc:         sc,
		k:          k,
		shareEdges: shareEdges,
		verts:      make(map[moveKey]kernel.Shape),
		edges:      make(map[[2]moveKey]kernel.Shape),
	}
}

func (b *faceBuilder) vertex(p Point3) (kernel.Shape, error) {
	key := keyAt(p)
	if v, ok := b.verts[key]; ok {
		return v, nil
	}
	v, err := b.k.Vertex(p)
	if err != nil {
		return nil, err
	}
	b.sc.track(v)
	b.verts[key] = v
	return v, nil
}

// edge returns an oriented edge for segment a→b. With sharing enabled,
// the second traversal of a boundary yields a reversed reference to the
// canonical edge instead of a new one.
func (b *faceBuilder) edge(from, to Point3) (kernel.Shape, error) {
	ka, kb := keyAt(from), keyAt(to)
	if b.shareEdges {
		if e, ok := b.edges[[2]moveKey{ka, kb}]; ok {
			return e, nil
		}
		if e, ok := b.edges[[2]moveKey{kb, ka}]; ok {
			r, err := b.k.Reversed(e)
			if err != nil {
				return nil, err
			}
			b.sc.track(r)
			return r, nil
		}
	}
	va, err := b.vertex(from)
	if err != nil {
		return nil, err
	}
	vb, err := b.vertex(to)
	if err != nil {
		return nil, err
	}
	e, err := b.k.Edge(va, vb)
	if err != nil {
		return nil, err
	}
	b.sc.track(e)
	if b.shareEdges {
		b.edges[[2]moveKey{ka, kb}] = e
	}
	return e, nil
}

func (b *faceBuilder) face(p facePlan) (kernel.Shape, error) {
	w, err := b.wire(p.segs)
	if err != nil {
		return nil, err
	}
	var holes []kernel.Shape
	for _, h := range p.holes {
		hw, err := b.holeWire(h)
		if err != nil {
			return nil, err
		}
		holes = append(holes, hw)
	}
	f, err := b.k.Face(w, holes...)
	if err != nil {
		return nil, err
	}
	b.sc.track(f)
	return f, nil
}

func (b *faceBuilder) wire(segs []segment) (kernel.Shape, error) {
	edges := make([]kernel.Shape, len(segs))
	for i, s := range segs {
		e, err := b.edge(s.a, s.b)
		if err != nil {
			return nil, err
		}
		edges[i] = e
	}
	w, err := b.k.Wire(edges)
	if err != nil {
		return nil, err
	}
	b.sc.track(w)
	return w, nil
}

// holeWire resolves one hole loop of a rebuilt face. An untouched hole
// keeps its source wire, so its geometry and tolerance survive verbatim;
// a hole with moved straight vertices is reconstructed over the shared
// caches. A moved closed-curve ring cannot be reconstructed from straight
// segments, so the move is refused and the ring kept as-is.
func (b *faceBuilder) holeWire(h holePlan) (kernel.Shape, error) {
	if !h.moved {
		return h.wire, nil
	}
	if h.curved || len(h.segs) < 3 {
		Logger().Warn("brep: move on a closed-curve hole ring ignored, keeping original ring")
		return h.wire, nil
	}
	return b.wire(h.segs)
}

// assembleShell turns faces into a shell, fixes its orientation, and
// attempts solid promotion. A shell that will not close is still
// renderable, so it is returned rather than failing; it just is not
// boolean-safe.
func assembleShell(sc *scope, k kernel.Kernel, faces []kernel.Shape) (kernel.Shape, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("no usable faces: %w", kernel.ErrIncomplete)
	}
	shell, err := k.Shell(faces)
	if err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}
	sc.track(shell)

	fixed, err := k.FixShellOrientation(shell)
	if err != nil {
		Logger().Warn("brep: shell orientation fix failed", "err", err)
		fixed = shell
	} else {
		sc.track(fixed)
	}

	solid, err := k.SolidFromShell(fixed)
	if err != nil {
		Logger().Warn("brep: shell did not close into a solid", "err", err)
		return sc.detach(fixed), nil
	}
	return solid, nil
}

// checkRebuilt logs degraded results: a face count below the loss ratio
// or a failing kernel validity check. Neither aborts — rendering proceeds
// regardless, and a later boolean on a degraded shape fails through its
// own error path.
func checkRebuilt(k kernel.Kernel, out kernel.Shape, origFaces int, lossRatio float64) {
	subs, err := k.SubShapes(out, kernel.KindFace)
	if err == nil {
		n := len(subs)
		for _, s := range subs {
			s.Release()
		}
		if float64(n) < lossRatio*float64(origFaces) {
			Logger().Warn("brep: rebuilt face count dropped",
				"faces", n, "original", origFaces, "threshold", lossRatio)
		}
	}
	if err := k.Validate(out); err != nil {
		Logger().Warn("brep: rebuilt shape failed validity check", "err", err)
	}
}

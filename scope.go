package brep

import "github.com/gocad/brep/kernel"

// scope collects kernel handles allocated inside one engine function and
// releases them all when the function exits, on every path. The function
// result is detached before returning so ownership transfers to the
// caller; everything else is cleaned up by the deferred Close.
//
// Usage:
//
//	sc := newScope()
//	defer sc.Close()
//	w := sc.track(mustWire(...))
//	...
//	return sc.detach(result), nil
type scope struct {
	shapes []kernel.Shape
}

func newScope() *scope { return &scope{} }

// track registers a handle for release at scope exit and returns it
// unchanged. Tracking nil is a no-op, which keeps error paths simple.
func (s *scope) track(sh kernel.Shape) kernel.Shape {
	if sh != nil {
		s.shapes = append(s.shapes, sh)
	}
	return sh
}

// trackAll registers a slice of handles and returns it unchanged.
func (s *scope) trackAll(shs []kernel.Shape) []kernel.Shape {
	for _, sh := range shs {
		s.track(sh)
	}
	return shs
}

// detach removes a handle from the scope without releasing it. The caller
// takes ownership. Detaching a handle that was never tracked is a no-op.
func (s *scope) detach(sh kernel.Shape) kernel.Shape {
	for i, t := range s.shapes {
		if t == sh {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			break
		}
	}
	return sh
}

// Close releases every still-tracked handle in reverse allocation order.
func (s *scope) Close() {
	for i := len(s.shapes) - 1; i >= 0; i-- {
		s.shapes[i].Release()
	}
	s.shapes = nil
}

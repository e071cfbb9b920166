package search

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/DrSkyle/linkpath/pkg/graph"
)

// errNoLeg stops the sibling leg once one leg is known to be absent.
var errNoLeg = errors.New("search: leg absent")

// Through returns a path from start to end that visits middle.
//
// The legs start→middle and middle→end are searched independently and
// concurrently, then joined with middle appearing once. The result is
// shortest among paths constrained to pass through middle. It is not the
// global shortest start→end path, which may avoid middle and be shorter.
// If either leg is unreachable ok is false.
//
// Options apply to each leg separately, so MaxDepth bounds each leg. A leg
// that comes up empty cancels the other.
func Through(ctx context.Context, g graph.Reader, start, middle, end graph.ID, opts ...Option) (Path, bool, error) {
	var (
		leg1, leg2 Path
		ok1, ok2   bool
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		leg1, ok1, err = ShortestPath(egCtx, g, start, middle, opts...)
		if err == nil && !ok1 {
			return errNoLeg
		}
		return err
	})
	eg.Go(func() error {
		var err error
		leg2, ok2, err = ShortestPath(egCtx, g, middle, end, opts...)
		if err == nil && !ok2 {
			return errNoLeg
		}
		return err
	})
	if err := eg.Wait(); err != nil {
		if errors.Is(err, errNoLeg) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return Join(leg1, leg2), true, nil
}

// Join concatenates two legs that share a boundary vertex, dropping the
// duplicate. The caller guarantees leg1.End() == leg2.Start().
func Join(leg1, leg2 Path) Path {
	out := make(Path, 0, len(leg1)+len(leg2)-1)
	out = append(out, leg1...)
	return append(out, leg2[1:]...)
}

package client

import (
	"context"
	"sync/atomic"
)

// VisitorCounter tracks the current visitor at most once per counter and
// reads the site-wide total afterwards.
type VisitorCounter struct {
	c       *Client
	tracked atomic.Bool
}

// NewVisitorCounter returns a counter that has not tracked anyone yet.
func NewVisitorCounter(c *Client) *VisitorCounter {
	return &VisitorCounter{c: c}
}

// Tracked reports whether a visit has been attempted.
func (v *VisitorCounter) Tracked() bool { return v.tracked.Load() }

// Count returns the visitor total. Only the first call, even among concurrent
// callers, attempts to record a visit; later calls only read. A failed attempt
// is not repeated. When recording fails the count is read instead, and the
// error is returned only if that read fails as well.
func (v *VisitorCounter) Count(ctx context.Context) (int64, error) {
	if v.tracked.CompareAndSwap(false, true) {
		res, err := v.c.TrackVisitor(ctx)
		if err == nil {
			return res.TotalVisitors, nil
		}
		v.c.log.Warn().Err(err).Msg("track visitor failed; reading count")
	}

	res, err := v.c.VisitorCount(ctx)
	if err != nil {
		return 0, err
	}
	return res.TotalVisitors, nil
}

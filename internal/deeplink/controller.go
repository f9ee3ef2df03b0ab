package deeplink

import (
	"log/slog"
	"sync"

	"github.com/katalogapp/katalog-server/internal/domain"
)

// Scheduler defers a function until the current event's side effects
// have settled. Clearing the fragment can itself move the viewport, so
// scroll restoration must never run synchronously with it.
type Scheduler func(fn func())

// Controller tracks the at-most-one selected record and the scroll
// offset captured when it was opened.
type Controller struct {
	mu       sync.Mutex
	schedule Scheduler
	log      *slog.Logger

	selectedID string
	scroll     float64
	hasScroll  bool
}

// NewController builds a controller. A nil scheduler defers via a
// fresh goroutine.
func NewController(schedule Scheduler, log *slog.Logger) *Controller {
	if schedule == nil {
		schedule = func(fn func()) { go fn() }
	}
	return &Controller{schedule: schedule, log: log}
}

// Resolve looks up the record a fragment addresses. A missing,
// malformed or unmatched fragment resolves to nil without error; a
// match becomes the selected record. Externally initiated fragment
// changes (back/forward navigation) go through here too.
func (c *Controller) Resolve(ds *domain.Dataset, fragment string) *domain.Record {
	recID, ok := ParseFragment(fragment)
	if !ok {
		return nil
	}
	rec := ds.Lookup(recID)
	if rec == nil {
		if c.log != nil {
			c.log.Debug("deep link misses dataset", "id", recID)
		}
		return nil
	}

	c.mu.Lock()
	c.selectedID = rec.ID
	c.mu.Unlock()
	return rec
}

// Select makes the record the current selection, capturing the scroll
// offset into the single-slot memory and returning the fragment that
// addresses the record.
func (c *Controller) Select(rec *domain.Record, scrollOffset float64) string {
	c.mu.Lock()
	c.selectedID = rec.ID
	c.scroll = scrollOffset
	c.hasScroll = true
	c.mu.Unlock()
	return FormatFragment(rec.ID)
}

// Deselect clears the selection and schedules restore with the last
// captured offset. restore is never called synchronously and not at
// all when nothing was captured.
func (c *Controller) Deselect(restore func(offset float64)) {
	c.mu.Lock()
	c.selectedID = ""
	offset, ok := c.scroll, c.hasScroll
	c.hasScroll = false
	c.mu.Unlock()

	if !ok || restore == nil {
		return
	}
	c.schedule(func() { restore(offset) })
}

// PendingScroll reports the offset captured by the last Select without
// consuming the slot.
func (c *Controller) PendingScroll() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scroll, c.hasScroll
}

// SelectedID returns the currently selected record identifier, or "".
func (c *Controller) SelectedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

package filter

import (
	"sync"
	"time"

	"github.com/tair/storefront/internal/catalog/domain"
)

// DefaultDebounceWait is the quiescence window for as-you-type input
const DefaultDebounceWait = 350 * time.Millisecond

// Debouncer runs the most recently triggered function once no new trigger
// has arrived for the wait window.
type Debouncer struct {
	wait time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	seq     uint64
}

// NewDebouncer creates a debouncer; a non-positive wait uses DefaultDebounceWait
func NewDebouncer(wait time.Duration) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounceWait
	}
	return &Debouncer{wait: wait}
}

// Trigger cancels any pending call and schedules fn after the wait window
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = fn
	d.timer = time.AfterFunc(d.wait, func() { d.fire(seq) })
}

// fire ignores timers that were superseded after they started waiting on the lock
func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// Flush runs the pending call now. It reports whether there was one.
func (d *Debouncer) Flush() bool {
	fn := d.take()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Stop drops the pending call without running it
func (d *Debouncer) Stop() {
	d.take()
}

// Pending reports whether a call is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) take() func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	fn := d.pending
	d.pending = nil
	return fn
}

// DebouncedUpdater coalesces rapid patches to a store. Patches submitted
// inside one window are merged, later fields winning, and applied as a
// single update once input goes quiet.
type DebouncedUpdater struct {
	store     *Store
	debouncer *Debouncer

	mu      sync.Mutex
	pending domain.Patch
}

// NewDebouncedUpdater wraps store with a debouncer of the given wait
func NewDebouncedUpdater(store *Store, wait time.Duration) *DebouncedUpdater {
	return &DebouncedUpdater{
		store:     store,
		debouncer: NewDebouncer(wait),
	}
}

// Submit queues p and restarts the quiescence window
func (u *DebouncedUpdater) Submit(p domain.Patch) {
	u.mu.Lock()
	u.pending = u.pending.Merge(p)
	u.mu.Unlock()

	u.debouncer.Trigger(u.apply)
}

// Apply updates the store at once. Queued fields that p also sets are
// dropped so the pending window cannot overwrite them later.
func (u *DebouncedUpdater) Apply(p domain.Patch) domain.Criteria {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.pending = u.pending.Without(p)
	if u.pending.IsEmpty() {
		u.debouncer.Stop()
	}
	return u.store.Update(p)
}

// Flush applies queued input immediately
func (u *DebouncedUpdater) Flush() {
	u.debouncer.Flush()
}

// Stop discards queued input
func (u *DebouncedUpdater) Stop() {
	u.debouncer.Stop()

	u.mu.Lock()
	u.pending = domain.Patch{}
	u.mu.Unlock()
}

// Pending reports whether input is waiting for the window to close
func (u *DebouncedUpdater) Pending() bool {
	return u.debouncer.Pending()
}

// apply holds mu across the store update so it is ordered against Apply
func (u *DebouncedUpdater) apply() {
	u.mu.Lock()
	defer u.mu.Unlock()

	p := u.pending
	u.pending = domain.Patch{}
	if !p.IsEmpty() {
		u.store.Update(p)
	}
}

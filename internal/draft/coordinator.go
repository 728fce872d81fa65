// ABOUTME: Draft/save coordinator decoupling rapid edits from store writes.
// ABOUTME: One shared debounce timer; flush on note switch, save, teardown.

package draft

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lumenote/lumenote/internal/models"
	"github.com/rs/zerolog"
)

// DefaultDelay is how long the coordinator waits after the last edit before
// persisting. Any edit to any note restarts the shared timer, so bursts
// across notes coalesce into one flush.
const DefaultDelay = 5 * time.Second

// Saver is the slice of the store the coordinator needs.
type Saver interface {
	UpsertNote(*models.Note) error
	GetNoteByID(uuid.UUID) (*models.Note, error)
}

// Coordinator buffers in-memory note edits and debounces persistence.
// There is at most one pending timer system-wide and at most one persist
// in flight per note: Schedule always cancels the previous timer, and
// Flush cancels it before writing.
type Coordinator struct {
	mu      sync.Mutex
	store   Saver
	delay   time.Duration
	timer   *time.Timer
	pending map[uuid.UUID]*models.Note // snapshots, overwritten per edit
	log     zerolog.Logger

	// onSaved receives the store's canonical copy after each persist so the
	// owner can pick up the new version number. Called without locks held.
	onSaved func(*models.Note)
}

func NewCoordinator(store Saver, onSaved func(*models.Note), log zerolog.Logger) *Coordinator {
	return &Coordinator{
		store:   store,
		delay:   DefaultDelay,
		pending: make(map[uuid.UUID]*models.Note),
		onSaved: onSaved,
		log:     log,
	}
}

// SetDelay overrides the debounce interval, for tests.
func (c *Coordinator) SetDelay(d time.Duration) {
	c.mu.Lock()
	c.delay = d
	c.mu.Unlock()
}

// Schedule records the note's latest state and (re)starts the shared
// debounce timer. note is copied; later mutations by the caller do not
// alter the snapshot until the next Schedule.
func (c *Coordinator) Schedule(note *models.Note) {
	snapshot := *note

	c.mu.Lock()
	c.pending[note.ID] = &snapshot
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.fire)
	c.mu.Unlock()
}

// HasPending reports whether the note has an unsaved draft.
func (c *Coordinator) HasPending(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// Flush cancels the note's share of the pending timer and persists it
// immediately. Used on note switch, explicit save, and teardown so a
// draft never silently outlives its editing context. No-op when the note
// has no pending draft.
func (c *Coordinator) Flush(id uuid.UUID) error {
	c.mu.Lock()
	note, ok := c.pending[id]
	if !ok {
		c.mu.Unlock()
		return nil
	}
	delete(c.pending, id)
	if len(c.pending) == 0 && c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	return c.persist(note)
}

// FlushAll persists every pending draft; used at teardown.
func (c *Coordinator) FlushAll() error {
	notes := c.takeAll()
	var firstErr error
	for _, note := range notes {
		if err := c.persist(note); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CancelPending drops one note's draft without persisting it; used when
// the note itself is being deleted.
func (c *Coordinator) CancelPending(id uuid.UUID) {
	c.mu.Lock()
	delete(c.pending, id)
	if len(c.pending) == 0 && c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
}

// CancelAll drops every draft without persisting; used when the working
// set is about to be replaced wholesale.
func (c *Coordinator) CancelAll() {
	c.mu.Lock()
	c.pending = make(map[uuid.UUID]*models.Note)
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
}

func (c *Coordinator) fire() {
	for _, note := range c.takeAll() {
		if err := c.persist(note); err != nil {
			// Background path: log and re-mark dirty so a later edit or
			// explicit flush retries.
			c.log.Warn().Err(err).Str("note", note.ID.String()).Msg("debounced save failed")
			c.mu.Lock()
			if _, ok := c.pending[note.ID]; !ok {
				c.pending[note.ID] = note
			}
			c.mu.Unlock()
		}
	}
}

func (c *Coordinator) takeAll() []*models.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	notes := make([]*models.Note, 0, len(c.pending))
	for _, n := range c.pending {
		notes = append(notes, n)
	}
	c.pending = make(map[uuid.UUID]*models.Note)
	return notes
}

func (c *Coordinator) persist(note *models.Note) error {
	if err := c.store.UpsertNote(note); err != nil {
		return err
	}
	canonical, err := c.store.GetNoteByID(note.ID)
	if err != nil {
		return err
	}
	if c.onSaved != nil {
		c.onSaved(canonical)
	}
	return nil
}

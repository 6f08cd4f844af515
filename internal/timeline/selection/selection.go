// Package selection tracks the selected clip and routes the delete key.
package selection

import (
	"log/slog"

	"github.com/dshills/adreel/internal/input/focus"
	"github.com/dshills/adreel/internal/input/key"
	"github.com/dshills/adreel/internal/input/listen"
	"github.com/dshills/adreel/internal/logging"
)

// DefaultDeleteKeys are the keys that delete the selected clip.
var DefaultDeleteKeys = []key.Key{key.KeyDelete, key.KeyBackspace}

// Controller mirrors the host-owned selection and turns delete keys into
// delete requests. An empty id means nothing is selected.
type Controller struct {
	selected   string
	onSelect   func(id string)
	onDelete   func(id string)
	focus      *focus.Tracker
	deleteKeys []key.Key
	logger     *slog.Logger
}

// New creates a controller. onSelect and onDelete must be non-nil; the
// surface validates them before constructing a controller. A nil focus
// tracker means no text entry can ever hold focus.
func New(onSelect, onDelete func(id string), tracker *focus.Tracker, deleteKeys []key.Key, logger *slog.Logger) *Controller {
	if tracker == nil {
		tracker = focus.NewTracker()
	}
	if len(deleteKeys) == 0 {
		deleteKeys = DefaultDeleteKeys
	}
	return &Controller{
		onSelect:   onSelect,
		onDelete:   onDelete,
		focus:      tracker,
		deleteKeys: deleteKeys,
		logger:     logging.WithComponent(logger, "selection"),
	}
}

// Sync records the host's current selection.
func (c *Controller) Sync(id string) {
	c.selected = id
}

// Selected returns the selected clip id, or "" when none.
func (c *Controller) Selected() string {
	return c.selected
}

// IsSelected reports whether id is the selected clip.
func (c *Controller) IsSelected(id string) bool {
	return id != "" && c.selected == id
}

// Select asks the host to select id. The local mirror is updated at once so
// a key pressed before the host re-renders acts on the new selection.
func (c *Controller) Select(id string) {
	c.selected = id
	c.onSelect(id)
}

// Clear asks the host to clear the selection.
func (c *Controller) Clear() {
	c.Select("")
}

// Delete requests deletion of id, as the inline delete affordance does.
func (c *Controller) Delete(id string) {
	if id == "" {
		return
	}
	c.logger.Info("delete requested", "clip_id", id)
	c.onDelete(id)
}

// SetDeleteKeys replaces the keys that trigger deletion.
func (c *Controller) SetDeleteKeys(keys []key.Key) {
	if len(keys) == 0 {
		keys = DefaultDeleteKeys
	}
	c.deleteKeys = keys
}

// HandleKey deletes the selected clip when ev is a delete key, a clip is
// selected and no text entry has focus. It reports whether it consumed ev.
func (c *Controller) HandleKey(ev key.Event) bool {
	if !ev.Is(c.deleteKeys...) {
		return false
	}
	if c.selected == "" {
		return false
	}
	if c.focus.TextEntryFocused() {
		c.logger.Debug("delete key ignored while typing", "focus", c.focus.Current().ID)
		return false
	}
	c.Delete(c.selected)
	return true
}

// Attach registers the controller's key handler with reg and returns the
// release function. Callers defer the release so the listener is removed
// on every exit path.
func (c *Controller) Attach(reg *listen.Registry) (release func()) {
	return reg.Add(c.HandleKey)
}

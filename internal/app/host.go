package app

import (
	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/plugin"
)

// The methods in this file are the callbacks the timeline surface and the
// overlay report through, and the API the plugin host drives. Each one
// updates host state and then mirrors the change to the script.

var _ plugin.API = (*Application)(nil)

// UpdateItem applies a patch to a clip. Patches for clips the store no
// longer holds are dropped.
func (app *Application) UpdateItem(id string, p clip.Patch) {
	if _, err := app.store.Update(id, p); err != nil {
		app.metrics.RecordStoreError()
		app.logger.Warn("update ignored", "clip_id", id, "patch", p.String(), "error", err)
		return
	}
	app.logger.Debug("clip updated", "clip_id", id, "patch", p.String())
	app.mirror(func(h *plugin.Host) error { return h.OnPatch(id, p) })
}

// Delete removes a clip. Deleting the selected clip clears the selection.
func (app *Application) Delete(id string) {
	if err := app.store.Delete(id); err != nil {
		app.metrics.RecordStoreError()
		app.logger.Warn("delete ignored", "clip_id", id, "error", err)
		return
	}
	if app.selected == id {
		app.selected = ""
	}
	app.logger.Info("clip deleted", "clip_id", id)
	app.mirror(func(h *plugin.Host) error { return h.OnDelete(id) })
}

// Select sets the selection. An empty id clears it; an unknown id is
// ignored.
func (app *Application) Select(id string) {
	if id != "" {
		if _, ok := app.store.Get(id); !ok {
			app.logger.Warn("select ignored", "clip_id", id, "error", clip.ErrNotFound)
			return
		}
	}
	if app.selected == id {
		return
	}
	app.selected = id
	app.logger.Debug("selection changed", "clip_id", id)
	app.mirror(func(h *plugin.Host) error { return h.OnSelect(id) })
}

// Seek moves the playhead. Negative frames clamp to zero.
func (app *Application) Seek(frame int) {
	app.currentTime = max(0, frame)
	app.logger.Debug("seek", "frame", app.currentTime)
	app.mirror(func(h *plugin.Host) error { return h.OnSeek(app.currentTime) })
}

// Clips returns the current clip sequence.
func (app *Application) Clips() []*clip.Clip {
	return app.store.Items()
}

// mirror runs fn against the plugin host, if one is loaded, and logs a
// failing hook without interrupting the edit that triggered it.
func (app *Application) mirror(fn func(h *plugin.Host) error) {
	if app.plugins == nil {
		return
	}
	if err := fn(app.plugins); err != nil {
		app.hookFailed(err)
	}
}

func (app *Application) hookFailed(err error) {
	app.metrics.RecordHookError()
	app.logger.Warn("plugin hook failed", "error", err)
}

// duration is the frame count the playhead wraps at: the configured
// default or the end of the last clip, whichever is later.
func (app *Application) duration() int {
	d := app.config.Timeline.DefaultDuration
	for _, c := range app.store.Items() {
		d = max(d, clip.Normalize(c).End())
	}
	return d
}

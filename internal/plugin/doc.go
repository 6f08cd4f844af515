// Package plugin runs user Lua scripts that observe and steer the timeline.
//
// A script defines any of these global hook functions:
//
//	on_patch(id, patch)   -- after a clip patch is applied
//	on_select(id)         -- after the selection changes ("" clears)
//	on_delete(id)         -- after a clip is deleted
//	on_seek(frame)        -- after the playhead moves
//	on_key(name)          -- before the timeline sees a key; return true to consume it
//
// and may call back into the host through the timeline table:
//
//	timeline.seek(frame)
//	timeline.select(id)
//	timeline.delete(id)
//	timeline.clips()      -- array of clip tables
//	timeline.log(msg)
//
// Scripts run in a restricted state: only the base, table, string and math
// libraries are opened, and file loading is removed. Each hook call is
// bounded by a timeout. Hooks never re-enter: callbacks a hook triggers
// through the timeline table are not mirrored back to the script.
package plugin

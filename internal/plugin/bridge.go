package plugin

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/adreel/internal/clip"
)

// clipTable converts a clip to a Lua table using the wire field names.
func clipTable(L *lua.LState, c *clip.Clip) *lua.LTable {
	p := clip.Normalize(c)
	t := L.NewTable()
	t.RawSetString("id", lua.LString(c.ID))
	t.RawSetString("type", lua.LString(c.Kind.String()))
	t.RawSetString("startAt", lua.LNumber(p.StartAt))
	t.RawSetString("durationInFrames", lua.LNumber(p.Duration))
	t.RawSetString("trackIndex", lua.LNumber(p.Track))
	t.RawSetString("title", lua.LString(c.Title))
	t.RawSetString("content", lua.LString(c.Content))
	if c.Kind == clip.KindText {
		t.RawSetString("style", styleTable(L, c.Style.Resolved()))
	}
	return t
}

func styleTable(L *lua.LState, st clip.ResolvedStyle) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("x", lua.LNumber(st.X))
	t.RawSetString("y", lua.LNumber(st.Y))
	t.RawSetString("color", lua.LString(st.Color))
	t.RawSetString("fontSize", lua.LString(st.FontSize))
	t.RawSetString("fontWeight", lua.LString(st.FontWeight))
	return t
}

// patchTable converts a patch to a table holding only the fields it sets.
func patchTable(L *lua.LState, p clip.Patch) *lua.LTable {
	t := L.NewTable()
	if p.StartAt != nil {
		t.RawSetString("startAt", lua.LNumber(*p.StartAt))
	}
	if p.DurationInFrames != nil {
		t.RawSetString("durationInFrames", lua.LNumber(*p.DurationInFrames))
	}
	if p.TrackIndex != nil {
		t.RawSetString("trackIndex", lua.LNumber(*p.TrackIndex))
	}
	if p.Content != nil {
		t.RawSetString("content", lua.LString(*p.Content))
	}
	if p.Style != nil {
		t.RawSetString("style", styleTable(L, p.Style.Resolved()))
	}
	return t
}

// checkFrame reads argument n as a frame number, rounding fractions.
func checkFrame(L *lua.LState, n int) int {
	f := float64(L.CheckNumber(n))
	return int(math.Floor(f + 0.5))
}

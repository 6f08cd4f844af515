// Package clip provides the clip records placed on the timeline and the
// collection that owns them.
//
// # Core Types
//
// Clip is a placed video, audio or text segment. Its positional fields are
// frame based:
//
//	c := clip.Clip{
//	    ID:               "intro",
//	    Kind:             clip.KindVideo,
//	    StartAt:          100,
//	    DurationInFrames: 150,
//	    TrackIndex:       1,
//	}
//
// Records arriving from external collaborators may omit positional fields.
// Normalize fills them once per read so that every consumer sees the same
// defaults (0 for start and track, DefaultDuration for duration).
//
// # Patches
//
// A Patch names only the fields a gesture changed. Store.Update applies a
// patch copy-on-write: the matching record is replaced by a new value and
// every other record keeps its identity, so consumers can skip unchanged
// clips by comparing pointers.
package clip

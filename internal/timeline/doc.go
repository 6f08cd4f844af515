// Package timeline implements the timeline surface: it lays out lanes,
// clips and the playhead, hit-tests pointer events against that layout and
// routes them to the drag machine and the selection controller.
//
// # Ownership
//
// The host owns the clip collection, the selection and the current time.
// It passes them in as Props on every render and receives changes back
// through Callbacks:
//
//	s, err := timeline.New(timeline.DefaultConfig(), timeline.Callbacks{
//	    UpdateItem: store.Update,
//	    DeleteItem: store.Delete,
//	    Select:     host.Select,
//	    Seek:       host.Seek,
//	})
//	layout := s.Render(timeline.Props{Items: store.Items(), CurrentTime: t})
//
// # Lifecycle
//
// Mount registers the delete-key listener; the returned function removes
// it. Run wraps a mounted lifetime so the listener is released on every
// exit path, including panics.
package timeline

// Package watcher turns files dropped into a directory, and optionally a
// cron schedule, into upload requests.
//
// File contents are never read. A dropped file only contributes its name
// and size to the Upload passed to the Uploader.
//
// Example usage:
//
//	ctrl := state.NewController(gen, state.Options{})
//	defer ctrl.Close()
//
//	w, err := watcher.New(ctrl, watcher.Options{Dir: "/srv/drop", Schedule: "0 * * * *"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
package watcher

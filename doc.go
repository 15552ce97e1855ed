// Package tinystore provides a small embeddable in-memory record store
// with durable snapshotting.
//
// A Store holds an unordered, duplicate-free collection of values of a
// single comparable element type. It supports create/update/destroy
// mutations, projection-based linear search, and whole-store persistence
// to a single self-describing binary file.
//
// # Quick start
//
//	store := tinystore.New[tinystore.Record]("GAME")
//
//	rec := tinystore.NewRecord("Player")
//	if err := store.Create(rec); err != nil {
//	    log.Fatal(err)
//	}
//
//	found, err := tinystore.Find(store, func(r tinystore.Record) string { return r.Model }, "Player")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(found.UUID)
//
//	if err := store.Save(); err != nil { // writes GAME.tsdb
//	    log.Fatal(err)
//	}
//
// Reopen later with Open, which loads the file if it exists and bootstraps a
// fresh store otherwise:
//
//	store, err := tinystore.Open[tinystore.Record]("GAME.tsdb", false)
//
// # Element types
//
// The element type must be comparable; Go's map semantics provide the
// structural equality and hashing the container relies on, so two elements
// that compare equal can never coexist in a store. For persistence the type
// must also round-trip exactly through the configured codec (see the codec
// package). Record is a ready-made element type with uuid/model/attributes
// fields, but any comparable struct works.
//
// # Duplicate policy
//
// The container never stores two equal elements, regardless of
// configuration. WithStrictDuplicates only controls whether an attempted
// duplicate insert is reported as ErrDuplicateFound or silently ignored.
//
// # Concurrency and durability
//
// A Store performs no internal locking: every operation runs to completion
// on the caller's goroutine, and exclusive single-writer ownership is the
// caller's responsibility. Wrap the store behind your own mutex if you need
// concurrent access. Snapshots are written atomically (temp file + rename),
// but there is no write-ahead log; anything created after the last Save is
// lost on crash. Do not use tinystore where strong durability guarantees
// are required.
package tinystore

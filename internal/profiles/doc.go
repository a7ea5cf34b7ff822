// Package profiles holds the loyalty Profile record and Store, the
// authoritative in-process collection of profiles.
//
// A Store mirrors its whole collection, as one JSON array, to a single key of
// a kv.Repository and reports the full post-change collection to one
// observer after Initialize and after every successful mutation.
//
// Lifecycle:
//
//	Uninitialized -> Initializing -> Ready
//
// Create, Update and Delete fail with ErrNotInitialized until Initialize has
// completed. A mutation is committed to memory only after the durable write
// succeeds, so a reported ErrPersistence leaves the previous collection
// intact in both places.
package profiles

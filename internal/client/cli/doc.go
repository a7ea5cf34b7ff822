// Package cli provides the interactive Pchela loyalty command-line client.
//
// The client works against a local profiles.Store: it registers profiles,
// lets the user pick the active one, places orders from the catalog and
// shows points, discount progress and order history.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

// Package cli provides the interactive Equiply command-line client.
//
// It wires configuration, local storage, the session machinery, and an
// interactive REPL. On startup the client is classified as desktop or
// mobile from its user agent, which selects where credentials live
// (cookies vs the local key-value store). A session controller keeps the
// prompt in sync with auth state and reacts to token changes from other
// processes.
//
// Key features:
//   - Login / Register / Logout with persistent login throttling
//   - Transparent token refresh and single 401 retry on API calls
//   - Workspace listing and creation
//   - AI chat sessions: completions, history, stats
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

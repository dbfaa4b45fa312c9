// Package core provides the foundational domain types and interfaces shared by
// chatmem packages. It defines the core abstractions for:
//
//   - Memory stores (per-session, size bounded logs of text entries)
//   - Content (role based message segments exchanged with models)
//   - Events (immutable reply records produced by agents)
//   - Turns (the data an agent instruction is rendered with)
//
// Implementation concerns (file persistence, provider SDKs, agents) live in
// leaf packages; this package only exposes small types and interfaces so
// backends can be swapped at wiring time.
package core

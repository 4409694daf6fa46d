// Package viewer implements the document navigation and evidence
// highlighting engine behind the pagemark document view.
//
// All state lives in a Session scoped to one loaded document source. The
// session is mutated only inside discrete event handlers (page render
// completion, text layer completion, user input, deep-link changes) driven
// by the hosting Bubbletea update loop, so no locking is needed. Swapping
// the document source discards the session entirely; a new one is created
// with a fresh identity so late events from the old document are ignored.
package viewer

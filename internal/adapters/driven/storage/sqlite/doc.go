// Package sqlite provides SQLite-backed persistence for completed reviews.
package sqlite

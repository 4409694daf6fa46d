// Package domain contains the core business entities for pagemark.
// It has no dependencies on adapters or external libraries.
package domain

// Package renderers provides implementations of the Renderer interface
// for various document formats. Each renderer knows how to report a page
// count and extract per-page text fragments for a specific MIME type.
//
// Renderers are registered with the Registry at startup.
package renderers

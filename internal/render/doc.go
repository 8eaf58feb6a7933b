// Package render turns a title and a plain-text body into a report document.
//
// A Renderer first asks its PaginatedBackend to lay the document out as PDF. When
// the backend is missing or fails, the same content is written as Markdown next to
// the requested path. Both strategies write atomically, so a partial PDF never
// appears on disk.
package render

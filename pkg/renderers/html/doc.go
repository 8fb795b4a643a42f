// Package html renders array editor views and dialog requests as HTML
// fragments. Templates are pongo2 files embedded in the package; a go-theme
// selection contributes CSS variables and template overrides. Drag state is
// projected into data-index, data-indicator and data-dragging attributes.
package html

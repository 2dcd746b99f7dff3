// Package template exposes the template-engine seam renderers depend on so
// the concrete engine can be swapped without touching renderer code.
package template

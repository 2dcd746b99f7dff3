// Package catalog holds the form definitions the engine can render.
//
// Definitions arrive from YAML config files, from OpenAPI imports, or from
// code, and are looked up by entity name. The package ships an embedded
// catalog covering the standard clinical record types so the engine works
// out of the box.
package catalog

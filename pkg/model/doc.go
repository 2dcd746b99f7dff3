// Package model defines the field descriptor vocabulary shared by the
// catalog, layout and renderer packages: the closed field-type set, option
// lists, and the per-entity form definition.
package model

// Package engine ties the catalog, renderer registry and theme selection
// together behind a single Generate call.
package engine

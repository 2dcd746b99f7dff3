// Package openapi imports field definitions from OpenAPI 3 documents.
//
// Clinical backends usually publish an OpenAPI description of their record
// types. Rather than hand-maintaining a parallel catalog, this package maps
// component schemas onto form fields: property types, formats, enums and
// validation bounds become the matching field configuration. Backends can
// fine-tune the mapping through the x-medforms extension.
package openapi

// Package specialties provides the medical-specialty option source: a baked
// specialty list, search helpers, a process-local cache that absorbs
// specialties created on the fly from combobox fields, and a small net/http
// handler that returns JSON options for dynamic form inputs.
//
// The default handler responds to GET and HEAD requests and supports query
// and limit parameters to filter results. The backing data is loaded from
// the embedded list under data/specialties.txt and extended by the cache.
package specialties

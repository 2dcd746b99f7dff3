package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed configs/*.yaml
var configFS embed.FS

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// ConfigsFS exposes the embedded entity configs, mainly so callers can
// layer their own files on top when building a custom registry.
func ConfigsFS() fs.FS {
	sub, err := fs.Sub(configFS, "configs")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default returns the registry built from the embedded entity configs.
// The embedded files are validated in tests, so a load failure here is a
// packaging bug and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		registry, err := Load(configFS)
		if err != nil {
			panic(err)
		}
		defaultRegistry = registry
	})
	return defaultRegistry
}

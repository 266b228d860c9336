/*
Package pnmview is a library for previewing, converting and cataloguing
Netpbm images.

Decoding is done by the netpbm package; this package supplies the pieces
around it: reading files, writing the decoded raster out in a common format,
re-decoding a file as it changes and scanning directory trees into a
catalog.
*/
package pnmview

import (
	"errors"
	"log"
	"path/filepath"
	"strings"
)

var errNoCatalog = errors.New("pnmview: no catalog")

var extensions = map[string]struct{}{
	".pbm": {},
	".pgm": {},
	".ppm": {},
	".pnm": {},
	".pam": {},
}

// IsNetpbm reports whether the filename has one of the usual Netpbm
// extensions.
func IsNetpbm(name string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

type Viewer struct {
	catalog *Catalog
	config  *Config
	logger  *log.Logger
}

// New returns a Viewer. catalog may be nil if Scan is not used and a nil
// config means DefaultConfig.
func New(catalog *Catalog, config *Config, logger *log.Logger) *Viewer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Viewer{
		catalog: catalog,
		config:  config,
		logger:  logger,
	}
}

package pnmview

import (
	"fmt"
	"os"

	"github.com/bodgit/pnmview/netpbm"
)

// Load reads and decodes the Netpbm image at file.
func (v *Viewer) Load(file string) (*netpbm.Raster, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	m, err := netpbm.DecodeBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	v.logger.Printf("Decoded \"%s\" as %s, %dx%d\n", file, m.Format, m.Width, m.Height)

	return m, nil
}

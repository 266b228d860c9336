package pnmview

import (
	"sync"

	"github.com/bodgit/pnmview/netpbm"
)

// Preview holds what a viewer should currently show for a file: the last
// image that decoded successfully and, if the most recent attempt failed,
// its error message. A failure never replaces the image.
type Preview struct {
	mu      sync.RWMutex
	raster  *netpbm.Raster
	message string
}

// Update decodes b. On success the image is replaced and any message
// cleared; on failure the previous image is kept and the message set.
func (p *Preview) Update(b []byte) error {
	m, err := netpbm.DecodeBytes(b)
	if err != nil {
		p.Fail(err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.raster = m
	p.message = ""

	return nil
}

// Fail records err, for example a read error, without touching the image.
func (p *Preview) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = err.Error()
}

// Raster returns the last successfully decoded image, or nil.
func (p *Preview) Raster() *netpbm.Raster {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.raster
}

// Message returns the error message of the most recent failed update, or
// an empty string if it succeeded.
func (p *Preview) Message() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.message
}

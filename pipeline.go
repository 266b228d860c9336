package pnmview

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/pnmview/netpbm"
)

// Files larger than this are not decoded by Scan
const maxFileSize = 16 << (10 * 2)

func (v *Viewer) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !IsNetpbm(file) {
				return nil
			}

			// Ignore any file greater than 16 MB
			if info.Size() > maxFileSize {
				v.logger.Printf("Skipping \"%s\", %d bytes is too large\n", file, info.Size())
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (v *Viewer) catalogFile(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha1.New()
	b, err := io.ReadAll(io.TeeReader(f, h))
	if err != nil {
		return err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	old, err := v.catalog.Find(file)
	if err != nil {
		return err
	}
	if old != nil && old.SHA1 == sha {
		v.logger.Printf("Skipping unchanged \"%s\"\n", file)
		return nil
	}

	e := Entry{
		Path: file,
		SHA1: sha,
	}

	m, err := netpbm.DecodeBytes(b)
	if err != nil {
		v.logger.Printf("Failed to decode \"%s\": %v\n", file, err)
		e.Error = err.Error()
	} else {
		v.logger.Printf("Decoded \"%s\" as %s, %dx%d\n", file, m.Format, m.Width, m.Height)
		e.Format = m.Format.String()
		e.Width = m.Width
		e.Height = m.Height
	}

	return v.catalog.Record(e)
}

func (v *Viewer) fileWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := v.catalogFile(file); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path decoding every Netpbm file found and records the results
// in the catalog. Files whose contents have not changed since they were
// last recorded are skipped. A file that fails to decode is recorded with
// its error message rather than stopping the scan.
func (v *Viewer) Scan(path string) error {
	if v.catalog == nil {
		return errNoCatalog
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := v.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < v.config.Workers; i++ {
		errc, err := v.fileWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}

package refresh

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrAlreadyRunning reports that a refresh is in flight; scheduled checks
// treat it as a skip, manual triggers surface it to the caller.
var ErrAlreadyRunning = errors.New("a refresh is already running")

// Status is a snapshot of the pipeline for the status endpoint.
type Status struct {
	Running         bool       `json:"running"`
	LastSuccess     *time.Time `json:"last_success,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	DatasetModified *time.Time `json:"dataset_modified,omitempty"`
}

// Pipeline downloads the registry archive and atomically swaps the extracted
// files into place. It is the sole writer of the dataset files.
type Pipeline struct {
	cfg        Config
	masterPath string
	refPath    string
	mirror     *Mirror
	logger     *zap.Logger

	running atomic.Bool

	mu          sync.Mutex
	lastSuccess *time.Time
	lastError   string
}

// swapPair tracks one extracted file on its way into place.
type swapPair struct {
	tmp    string
	target string
	hadOld bool
}

// NewPipeline creates a refresh pipeline targeting the given registry files.
// mirror may be nil.
func NewPipeline(cfg Config, masterPath, refPath string, mirror *Mirror, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		masterPath: masterPath,
		refPath:    refPath,
		mirror:     mirror,
		logger:     logger,
	}
}

// Run executes one refresh: download, extract, swap, optional mirror push.
// At most one run proceeds at a time; concurrent calls get ErrAlreadyRunning.
// On any failure the previous dataset generation remains intact and servable.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer p.running.Store(false)

	err := p.run(ctx)

	p.mu.Lock()
	if err != nil {
		p.lastError = err.Error()
	} else {
		now := time.Now().UTC()
		p.lastSuccess = &now
		p.lastError = ""
	}
	p.mu.Unlock()
	return err
}

func (p *Pipeline) run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("Dataset refresh started", zap.String("url", p.cfg.ArchiveURL))

	archive, err := p.download(ctx)
	if err != nil {
		return fmt.Errorf("failed to download dataset archive: %w", err)
	}
	defer os.Remove(archive)

	pairs, err := p.extract(archive)
	if err != nil {
		removeTemps(pairs)
		return fmt.Errorf("failed to extract dataset archive: %w", err)
	}

	if err := p.swap(pairs); err != nil {
		removeTemps(pairs)
		return err
	}

	p.logger.Info("Dataset refresh complete", zap.Duration("took", time.Since(start)))

	if p.mirror != nil {
		// The local swap already succeeded; a mirror failure is logged,
		// not rolled back.
		if err := p.mirror.Push(ctx, p.masterPath, p.refPath); err != nil {
			p.logger.Warn("Mirror push failed", zap.Error(err))
		}
	}
	return nil
}

// download fetches the archive to a temporary file in the data directory,
// following at most MaxRedirects redirects under the configured total timeout.
// The temp file lives on the same volume as the targets so later renames stay
// atomic.
func (p *Pipeline) download(ctx context.Context) (string, error) {
	client := &http.Client{
		Timeout: p.cfg.Timeout(),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= p.cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", len(via))
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.ArchiveURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	dir := p.dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, "registry-*.zip")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// extract writes the two required archive entries next to their targets.
// A missing entry fails the whole run. On error the returned pairs let the
// caller clean up whatever was already extracted.
func (p *Pipeline) extract(archive string) ([]swapPair, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	wanted := []struct {
		entry  string
		target string
	}{
		{p.cfg.MasterEntry, p.masterPath},
		{p.cfg.RefEntry, p.refPath},
	}

	var pairs []swapPair
	for _, w := range wanted {
		f := findEntry(&zr.Reader, w.entry)
		if f == nil {
			return pairs, fmt.Errorf("archive has no entry %q", w.entry)
		}
		tmp := filepath.Join(p.dataDir(), filepath.Base(w.target)+".tmp")
		if err := extractEntry(f, tmp); err != nil {
			return pairs, err
		}
		pairs = append(pairs, swapPair{tmp: tmp, target: w.target})
	}
	return pairs, nil
}

// swap renames each extracted file into place, setting the current file
// aside as a .old sidecar first. If any rename fails partway, every target
// already swapped is restored to its pre-refresh state before the error is
// returned, so no partial generation is ever observable. Sidecars are
// deleted only after the whole swap succeeds.
func (p *Pipeline) swap(pairs []swapPair) error {
	done := make([]swapPair, 0, len(pairs))
	for i := range pairs {
		pair := &pairs[i]
		old := pair.target + ".old"

		if _, err := os.Stat(pair.target); err == nil {
			if err := os.Rename(pair.target, old); err != nil {
				restore(done)
				return fmt.Errorf("failed to set aside %s: %w", filepath.Base(pair.target), err)
			}
			pair.hadOld = true
		}
		if err := os.Rename(pair.tmp, pair.target); err != nil {
			if pair.hadOld {
				_ = os.Rename(old, pair.target)
			}
			restore(done)
			return fmt.Errorf("failed to swap in %s: %w", filepath.Base(pair.target), err)
		}
		done = append(done, *pair)
	}

	for _, pair := range done {
		if pair.hadOld {
			_ = os.Remove(pair.target + ".old")
		}
	}
	return nil
}

// restore puts already-swapped targets back to their pre-refresh state.
func restore(done []swapPair) {
	for _, pair := range done {
		if pair.hadOld {
			_ = os.Rename(pair.target+".old", pair.target)
		} else {
			_ = os.Remove(pair.target)
		}
	}
}

func removeTemps(pairs []swapPair) {
	for _, pair := range pairs {
		_ = os.Remove(pair.tmp)
	}
}

// Status reports the pipeline's current state.
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	s := Status{
		Running:     p.running.Load(),
		LastSuccess: p.lastSuccess,
		LastError:   p.lastError,
	}
	p.mu.Unlock()

	if fi, err := os.Stat(p.masterPath); err == nil {
		mod := fi.ModTime().UTC()
		s.DatasetModified = &mod
	}
	return s
}

// DatasetAge returns the master file's age, or ok=false when the dataset is
// not provisioned yet.
func (p *Pipeline) DatasetAge() (time.Duration, bool) {
	fi, err := os.Stat(p.masterPath)
	if err != nil {
		return 0, false
	}
	return time.Since(fi.ModTime()), true
}

func (p *Pipeline) dataDir() string {
	return filepath.Dir(p.masterPath)
}

func findEntry(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name || filepath.Base(f.Name) == name {
			return f
		}
	}
	return nil
}

func extractEntry(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}

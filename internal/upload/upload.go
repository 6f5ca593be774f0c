// Package upload simulates a resume upload: synchronous validation, a
// timer-driven progress ramp, and a Resume produced atomically on the
// final completion tick. Progress is advisory only; cancellation
// discards everything and never leaves a partial Resume behind. A real
// implementation would replace the timers with an actual transfer and
// report transport progress through the same callback.
package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobport/jobport/internal/blob"
	"github.com/jobport/jobport/internal/clock"
	"github.com/jobport/jobport/internal/models"
)

var (
	// ErrInvalidFileType rejects anything that is not a PDF or Word document.
	ErrInvalidFileType = errors.New("invalid file type: only PDF and Word documents are accepted")
	// ErrFileTooLarge rejects files over MaxFileSize.
	ErrFileTooLarge = errors.New("file too large: resumes must be 5 MiB or less")
)

// MaxFileSize is the upload size cap.
const MaxFileSize = 5 * 1024 * 1024

var allowedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// File is the candidate resume handed to the simulator.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Validate runs the synchronous checks. It is called before any
// simulated transfer work starts; a rejected file causes no state
// change anywhere.
func Validate(f File) error {
	if !allowedTypes[f.ContentType] {
		return fmt.Errorf("%w (got %q)", ErrInvalidFileType, f.ContentType)
	}
	if len(f.Data) > MaxFileSize {
		return fmt.Errorf("%w (got %d bytes)", ErrFileTooLarge, len(f.Data))
	}
	return nil
}

// Config tunes the simulated transfer. The defaults mirror a short
// believable upload; tests zero them out through a fake clock instead.
type Config struct {
	TickInterval    time.Duration `yaml:"tick_interval"`
	ProgressStep    int           `yaml:"progress_step"`
	CompletionDelay time.Duration `yaml:"completion_delay"`
}

// DefaultConfig reports progress in +10 steps every 200ms with a 500ms
// tail before the Resume materializes.
func DefaultConfig() Config {
	return Config{
		TickInterval:    200 * time.Millisecond,
		ProgressStep:    10,
		CompletionDelay: 500 * time.Millisecond,
	}
}

// Simulator produces Resume records from validated files.
type Simulator struct {
	store  blob.Store
	clock  clock.Clock
	cfg    Config
	logger *slog.Logger
}

func New(store blob.Store, clk clock.Clock, cfg Config, logger *slog.Logger) *Simulator {
	if clk == nil {
		clk = clock.System()
	}
	if cfg.ProgressStep <= 0 {
		cfg.ProgressStep = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{store: store, clock: clk, cfg: cfg, logger: logger}
}

// Upload validates f, walks progress from 0 to 100, then builds the
// Resume after one extra completion delay. The progress callback may be
// nil. The UI disables re-entry while an upload is in flight, so there
// is no concurrency control here; each call is single-flight.
//
// The caller owns the documented side effect of a successful upload:
// persisting the new resume as the user's current one in the identity
// store.
func (s *Simulator) Upload(ctx context.Context, f File, progress func(pct int)) (*models.Resume, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}

	started := s.clock.Now()

	for pct := s.cfg.ProgressStep; pct <= 100; pct += s.cfg.ProgressStep {
		if err := ctx.Err(); err != nil {
			s.logger.Info("upload cancelled", "file", f.Name, "at_pct", pct)
			return nil, err
		}
		select {
		case <-ctx.Done():
			s.logger.Info("upload cancelled", "file", f.Name, "at_pct", pct)
			return nil, ctx.Err()
		case <-s.clock.After(s.cfg.TickInterval):
		}
		if progress != nil {
			progress(pct)
		}
	}

	// One more short delay between 100% and completion, then the Resume
	// is produced atomically; there is never a half-constructed value.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.clock.After(s.cfg.CompletionDelay):
	}

	url, err := s.store.Put(ctx, f.Name, f.ContentType, f.Data)
	if err != nil {
		return nil, fmt.Errorf("store resume bytes: %w", err)
	}

	resume := &models.Resume{
		ID:         "res_" + uuid.NewString(),
		FileName:   f.Name,
		FileURL:    url,
		UploadedAt: s.clock.Now(),
	}
	s.logger.Info("resume uploaded", "file", f.Name, "resume_id", resume.ID,
		"took", s.clock.Now().Sub(started))

	return resume, nil
}

// Package enhance wraps the patch engine with the request-level concerns the
// playground needs: unwrapping model output, enforcing size caps, producing a
// review diff, and structured logging.
package enhance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kvit-s/instrpatch/internal/config"
	"github.com/kvit-s/instrpatch/internal/diffview"
	"github.com/kvit-s/instrpatch/internal/format"
	"github.com/kvit-s/instrpatch/internal/patch"
)

// Service applies model-produced patches to instruction documents.
// Safe for concurrent use: each request operates on its own data.
type Service struct {
	cfg     *config.Config
	logger  *zap.Logger
	applier *patch.Applier
}

// Result carries everything the caller needs after a successful enhancement.
type Result struct {
	Instruction string // the revised document
	Diff        string // display-only unified diff for human review
	Extension   string // suggested file extension for saving
	Hunks       int
}

func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		logger:  logger,
		applier: patch.NewApplier(cfg.Engine.SearchRadius),
	}
}

// Enhance applies rawPatch (the unprocessed body of a model response) to
// original. All failures are expected, user-recoverable input validation:
// the message is meant to be surfaced verbatim so the user can retry.
func (s *Service) Enhance(name, original, rawPatch string) (*Result, error) {
	requestID := uuid.NewString()
	start := time.Now()

	if max := s.cfg.Engine.MaxDocumentBytes(); len(original) > max {
		err := fmt.Errorf("instruction is too large to enhance (%d bytes, limit %d)", len(original), max)
		s.logFailure(requestID, name, start, err)
		return nil, err
	}

	hunks, err := patch.Parse(Unwrap(rawPatch))
	if err != nil {
		s.logFailure(requestID, name, start, err)
		return nil, err
	}
	if len(hunks) > s.cfg.Engine.MaxHunks {
		err := fmt.Errorf("patch has too many hunks (%d, limit %d)", len(hunks), s.cfg.Engine.MaxHunks)
		s.logFailure(requestID, name, start, err)
		return nil, err
	}

	revised, err := s.applier.ApplyHunks(original, hunks)
	if err != nil {
		s.logFailure(requestID, name, start, err)
		return nil, err
	}

	diff, err := diffview.Unified(patch.Normalize(original), revised, name)
	if err != nil {
		// Display-only concern; the enhancement itself succeeded.
		s.logger.Warn("diff rendering failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		diff = ""
	}

	s.logger.Info("enhancement applied",
		zap.String("request_id", requestID),
		zap.String("instruction", name),
		zap.Int("hunks", len(hunks)),
		zap.Int("bytes_in", len(original)),
		zap.Int("bytes_out", len(revised)),
		zap.Duration("duration", time.Since(start)))

	return &Result{
		Instruction: revised,
		Diff:        diff,
		Extension:   format.Detect(name, revised),
		Hunks:       len(hunks),
	}, nil
}

// logFailure records a rejected enhancement. Rejections are expected input
// validation, not defects, so they never log above Info.
func (s *Service) logFailure(requestID, name string, start time.Time, err error) {
	s.logger.Info("enhancement rejected",
		zap.String("request_id", requestID),
		zap.String("instruction", name),
		zap.Duration("duration", time.Since(start)),
		zap.String("reason", err.Error()))
}

// Unwrap strips a single level of Markdown code fencing plus surrounding
// blank lines from a model response, leaving the bare patch text. Content
// that is not fenced comes back with only the blank edges trimmed.
func Unwrap(raw string) string {
	lines := strings.Split(patch.Normalize(raw), "\n")
	lines = trimBlankLines(lines)
	if len(lines) >= 2 &&
		strings.HasPrefix(lines[0], "```") &&
		strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = trimBlankLines(lines[1 : len(lines)-1])
	}
	return strings.Join(lines, "\n")
}

func trimBlankLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

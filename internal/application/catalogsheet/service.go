package catalogsheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/domain/shared"
	applogger "github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Settings bound one generation run
type Settings struct {
	Timeout  time.Duration
	LockTTL  time.Duration
	Location *time.Location
}

// Service generates the catalog sheet for the current catalog, one run at
// a time.
type Service struct {
	items     catalog.ItemRepository
	assembler *Assembler
	lock      catalogsheet.GenerationLock
	settings  Settings
	metrics   *telemetry.SheetMetrics
	logger    *zap.Logger
	now       func() time.Time
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithServiceMetrics records generation outcomes
func WithServiceMetrics(m *telemetry.SheetMetrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source used for the filename and footer
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a new catalog sheet Service
func NewService(items catalog.ItemRepository, assembler *Assembler, lock catalogsheet.GenerationLock, settings Settings, opts ...ServiceOption) *Service {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.LockTTL <= 0 {
		settings.LockTTL = 5 * time.Minute
	}
	s := &Service{
		items:     items,
		assembler: assembler,
		lock:      lock,
		settings:  settings,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds the sheet for every catalog item. It fails with
// shared.ErrGenerationInProgress while another run holds the lock.
func (s *Service) Generate(ctx context.Context, onProgress catalogsheet.ProgressFunc) (*catalogsheet.Document, error) {
	start := time.Now()
	runID := uuid.New().String()
	ctx, log := applogger.WithRunID(ctx, s.logger, runID)
	ctx, span := telemetry.StartSpan(ctx, "catalog_sheet.generate", telemetry.SpanAttrRunID, runID)
	defer span.End()

	release, err := s.lock.TryAcquire(ctx, catalogsheet.LockKey, s.settings.LockTTL)
	if err != nil {
		if errors.Is(err, shared.ErrGenerationInProgress) {
			log.Info("catalog sheet generation refused, another run is active")
			s.metrics.RecordGeneration(ctx, telemetry.OutcomeBusy, time.Since(start), 0)
			return nil, err
		}
		telemetry.RecordError(span, err)
		s.metrics.RecordGeneration(ctx, telemetry.OutcomeFailed, time.Since(start), 0)
		return nil, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	defer func() {
		// release with a fresh context so a cancelled run still frees the lock
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			log.Warn("failed to release generation lock", zap.Error(err))
		}
	}()

	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}

	doc, err := s.generate(ctx, onProgress)
	if err != nil {
		telemetry.RecordError(span, err)
		outcome := telemetry.OutcomeFailed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = telemetry.OutcomeCancelled
		}
		s.metrics.RecordGeneration(ctx, outcome, time.Since(start), 0)
		log.Error("catalog sheet generation failed", zap.String("outcome", outcome), zap.Error(err))
		return nil, err
	}

	s.metrics.RecordGeneration(ctx, telemetry.OutcomeSuccess, time.Since(start), doc.PageCount)
	log.Info("catalog sheet generated",
		zap.String("filename", doc.Filename),
		zap.Int("pages", doc.PageCount),
		zap.Duration("elapsed", time.Since(start)),
	)
	return doc, nil
}

func (s *Service) generate(ctx context.Context, onProgress catalogsheet.ProgressFunc) (*catalogsheet.Document, error) {
	items, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog items: %w", err)
	}
	now := s.now().In(s.settings.Location)
	return s.assembler.Assemble(ctx, items, now, onProgress)
}

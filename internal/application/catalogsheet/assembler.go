// Package catalogsheet assembles the printable catalog sheet and guards its
// generation.
package catalogsheet

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/infrastructure/printing"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generation phases, used for spans, metrics and profiler labels
const (
	PhaseFetch    = "fetch"
	PhaseRender   = "render"
	PhaseFinalize = "finalize"
)

// ImageFetcher resolves an item image reference to an embeddable image.
// It returns nil for placeholders and on any failure.
type ImageFetcher interface {
	FetchEmbeddable(ctx context.Context, ref string) *catalogsheet.Image
}

// SurfaceFactory creates the drawing surface for one document
type SurfaceFactory func(info printing.DocumentInfo) printing.Surface

// Assembler runs the fetch, render and finalize phases for one sheet.
// Each call to Assemble owns its engine and image cache, so an Assembler
// may be shared.
type Assembler struct {
	fetcher     ImageFetcher
	concurrency int
	info        printing.DocumentInfo
	newSurface  SurfaceFactory
	engineOpts  []printing.Option
	metrics     *telemetry.SheetMetrics
	logger      *zap.Logger
}

// AssemblerOption configures an Assembler
type AssemblerOption func(*Assembler)

// WithConcurrency sets how many images are fetched at once. Values below 2
// keep the fetch phase sequential.
func WithConcurrency(n int) AssemblerOption {
	return func(a *Assembler) { a.concurrency = n }
}

// WithDocumentInfo sets the PDF metadata
func WithDocumentInfo(info printing.DocumentInfo) AssemblerOption {
	return func(a *Assembler) { a.info = info }
}

// WithSurfaceFactory replaces the fpdf surface, mainly for tests
func WithSurfaceFactory(f SurfaceFactory) AssemblerOption {
	return func(a *Assembler) { a.newSurface = f }
}

// WithEngineOptions passes options through to every layout engine
func WithEngineOptions(opts ...printing.Option) AssemblerOption {
	return func(a *Assembler) { a.engineOpts = append(a.engineOpts, opts...) }
}

// WithMetrics records phase durations and image outcomes
func WithMetrics(m *telemetry.SheetMetrics) AssemblerOption {
	return func(a *Assembler) { a.metrics = m }
}

// WithAssemblerLogger sets the logger
func WithAssemblerLogger(logger *zap.Logger) AssemblerOption {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssembler creates an Assembler fetching images through fetcher
func NewAssembler(fetcher ImageFetcher, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		fetcher:     fetcher,
		concurrency: 1,
		info:        printing.DocumentInfo{Title: "Catálogo"},
		newSurface: func(info printing.DocumentInfo) printing.Surface {
			return printing.NewSurface(info)
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the sheet for items. now stamps the footer and names the
// file, so callers pass the storefront's local time. onProgress may be nil;
// it receives non-decreasing percentages ending at 100 on success and is
// not called again once an error occurred.
func (a *Assembler) Assemble(ctx context.Context, items []catalog.Item, now time.Time, onProgress catalogsheet.ProgressFunc) (*catalogsheet.Document, error) {
	progress := catalogsheet.NewProgressReporter(onProgress)
	log := a.logger.With(zap.Int("item_count", len(items)))

	images := a.fetchPhase(ctx, items, progress)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("catalog sheet cancelled after fetching images: %w", err)
	}

	engine, err := a.renderPhase(ctx, items, images, progress)
	if err != nil {
		log.Error("catalog sheet render failed", zap.Error(err))
		return nil, err
	}

	doc, err := a.finalizePhase(ctx, engine, now)
	if err != nil {
		log.Error("catalog sheet finalize failed", zap.Error(err))
		return nil, err
	}
	doc.ItemCount = len(items)
	doc.ImagesEmbedded = len(images)
	progress.Report(catalogsheet.Complete)

	log.Info("catalog sheet assembled",
		zap.String("filename", doc.Filename),
		zap.Int("pages", doc.PageCount),
		zap.Int("images_embedded", doc.ImagesEmbedded),
		zap.Int("bytes", doc.Size()),
	)
	return doc, nil
}

// fetchPhase resolves every item image. Failures are isolated per item and
// simply leave the item without an image.
func (a *Assembler) fetchPhase(ctx context.Context, items []catalog.Item, progress *catalogsheet.ProgressReporter) map[string]*catalogsheet.Image {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "catalog_sheet.fetch", telemetry.SpanAttrItemCount, len(items))
	defer span.End()

	var (
		mu     sync.Mutex
		images = make(map[string]*catalogsheet.Image, len(items))
		done   int
	)
	record := func(item catalog.Item, img *catalogsheet.Image) {
		mu.Lock()
		defer mu.Unlock()
		if img != nil {
			img.Name = "item-" + item.ID
			images[item.ID] = img
		}
		done++
		progress.Report(catalogsheet.FetchProgress(done, len(items)))
	}
	fetch := func(ctx context.Context, item catalog.Item) *catalogsheet.Image {
		if !item.HasImage() || ctx.Err() != nil {
			return nil
		}
		return a.fetcher.FetchEmbeddable(ctx, item.ImageRef)
	}

	telemetry.WithPhaseLabel(ctx, PhaseFetch, func(ctx context.Context) {
		if a.concurrency < 2 {
			for _, item := range items {
				record(item, fetch(ctx, item))
			}
			return
		}
		var g errgroup.Group
		g.SetLimit(a.concurrency)
		for _, item := range items {
			g.Go(func() error {
				record(item, fetch(ctx, item))
				return nil
			})
		}
		_ = g.Wait()
	})

	if len(items) == 0 {
		progress.Report(catalogsheet.FetchPhaseEnd)
	}
	elapsed := time.Since(start)
	a.metrics.RecordPhase(ctx, PhaseFetch, elapsed)
	a.metrics.RecordImages(ctx, len(images), len(items)-len(images))
	telemetry.SetAttributes(span, telemetry.SpanAttrImagesFound, len(images))
	return images
}

func (a *Assembler) renderPhase(ctx context.Context, items []catalog.Item, images map[string]*catalogsheet.Image, progress *catalogsheet.ProgressReporter) (*printing.Engine, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "catalog_sheet.render", telemetry.SpanAttrItemCount, len(items))
	defer span.End()

	engine := printing.NewEngine(a.newSurface(a.info), a.engineOpts...)
	var err error
	telemetry.WithPhaseLabel(ctx, PhaseRender, func(ctx context.Context) {
		err = a.render(ctx, engine, items, images, progress)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	a.metrics.RecordPhase(ctx, PhaseRender, time.Since(start))
	return engine, nil
}

func (a *Assembler) render(ctx context.Context, engine *printing.Engine, items []catalog.Item, images map[string]*catalogsheet.Image, progress *catalogsheet.ProgressReporter) error {
	if err := engine.BeginDocument(); err != nil {
		return err
	}

	groups := catalog.GroupByCategory(items)
	span := trace.SpanFromContext(ctx)
	telemetry.SetAttributes(span, telemetry.SpanAttrGroupCount, len(groups))

	drawn := 0
	for _, group := range groups {
		first, err := planRow(engine, group.Items, 0)
		if err != nil {
			return err
		}
		if _, err := engine.EnsureHeaderSpace(first.height); err != nil {
			return err
		}
		if err := engine.DrawCategoryHeader(group.DisplayName, group.Count()); err != nil {
			return err
		}

		for i := 0; i < len(group.Items); i += 2 {
			row := first
			if i > 0 {
				if row, err = planRow(engine, group.Items, i); err != nil {
					return err
				}
			}
			if _, err := engine.EnsureRowSpace(row.height); err != nil {
				return err
			}
			left := group.Items[i]
			if err := engine.DrawCard(left, 0, row.height, row.left, images[left.ID]); err != nil {
				return err
			}
			drawn++
			if row.right != nil {
				right := group.Items[i+1]
				if err := engine.DrawCard(right, 1, row.height, *row.right, images[right.ID]); err != nil {
					return err
				}
				drawn++
			}
			engine.AdvanceRow(row.height)
			progress.Report(catalogsheet.RenderProgress(drawn, len(items)))
		}
		engine.AdvanceCategory()
		telemetry.AddEvent(span, "category_drawn",
			telemetry.SpanAttrCategoryID, group.CategoryID,
			telemetry.SpanAttrItemCount, group.Count(),
		)
	}
	if len(items) == 0 {
		progress.Report(catalogsheet.RenderPhaseEnd)
	}
	return nil
}

// rowPlan holds the plans and height of one row pair, computed once and
// used for both the space check and the drawing.
type rowPlan struct {
	left   catalogsheet.Plan
	right  *catalogsheet.Plan
	height float64
}

func planRow(engine *printing.Engine, items []catalog.Item, i int) (rowPlan, error) {
	left, err := engine.PlanVariants(items[i])
	if err != nil {
		return rowPlan{}, err
	}
	row := rowPlan{left: left}
	if i+1 < len(items) {
		right, err := engine.PlanVariants(items[i+1])
		if err != nil {
			return rowPlan{}, err
		}
		row.right = &right
	}
	row.height = engine.ComputeRowHeight(&row.left, row.right)
	return row, nil
}

func (a *Assembler) finalizePhase(ctx context.Context, engine *printing.Engine, now time.Time) (*catalogsheet.Document, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "catalog_sheet.finalize")
	defer span.End()

	if err := engine.DrawFooter(printing.DefaultFooter(now)); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	var buf bytes.Buffer
	pages, err := engine.Finish(&buf)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	doc := &catalogsheet.Document{
		Filename:    catalogsheet.Filename(now),
		Content:     buf.Bytes(),
		PageCount:   pages,
		GeneratedAt: now,
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPageCount, pages,
		telemetry.SpanAttrFilename, doc.Filename,
	)
	a.metrics.RecordPhase(ctx, PhaseFinalize, time.Since(start))
	return doc, nil
}

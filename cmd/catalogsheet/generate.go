package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	sheetapp "github.com/storefront/backend/internal/application/catalogsheet"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/infrastructure/assets"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/catalogdata"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

type generateOptions struct {
	catalogFile string
	outDir      string
	assetsDir   string
	baseURL     string
	concurrency int
	timezone    string
	quiet       bool
}

func newGenerateCmd(global *globalOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the catalog sheet to a PDF file",
		Long: `Renders the catalog sheet and writes catalogo-YYYY-MM-DD.pdf into the
output directory. Items come from --catalog when given, otherwise from the
configured catalog source.`,
		Example: `  # Render the embedded catalog into the current directory
  catalogsheet generate

  # Render a custom catalog with images from a local build
  catalogsheet generate --catalog ./catalog.yaml --assets-dir ./dist --out ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := global.setup()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync(log)
			}()
			opts.apply(cfg)

			items, closeItems, err := loadItems(cfg, opts.catalogFile, log)
			if err != nil {
				return err
			}
			defer closeItems()

			return runGenerate(cmd, cfg, opts, items, log)
		},
	}

	cmd.Flags().StringVar(&opts.catalogFile, "catalog", "", "Catalog YAML file (default: configured source)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "Output directory")
	cmd.Flags().StringVar(&opts.assetsDir, "assets-dir", "", "Directory for site-relative image paths")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Origin for site-relative image paths not found locally")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Parallel image fetches (default: config)")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "IANA timezone for the filename and footer date")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print progress")

	return cmd
}

// apply overrides configuration with the flags that were set
func (o *generateOptions) apply(cfg *config.Config) {
	if o.assetsDir != "" {
		cfg.Assets.BaseDir = o.assetsDir
	}
	if o.baseURL != "" {
		cfg.Assets.BaseURL = o.baseURL
	}
	if o.concurrency > 0 {
		cfg.Assets.FetchConcurrency = o.concurrency
	}
	if o.timezone != "" {
		cfg.Sheet.Timezone = o.timezone
	}
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, opts *generateOptions, items catalog.ItemRepository, log *zap.Logger) error {
	fetcher := assets.NewFetcher(assets.Config{
		BaseDir:      cfg.Assets.BaseDir,
		BaseURL:      cfg.Assets.BaseURL,
		Timeout:      cfg.Assets.FetchTimeout,
		MaxBytes:     cfg.Assets.MaxBytes,
		MaxDimension: cfg.Assets.MaxDimension,
		Quality:      cfg.Assets.JPEGQuality,
	}, assets.WithLogger(log))

	assembler := sheetapp.NewAssembler(fetcher,
		sheetapp.WithConcurrency(cfg.Assets.FetchConcurrency),
		sheetapp.WithDocumentInfo(printing.DocumentInfo{Title: cfg.Sheet.Title, Creator: "catalogsheet " + version}),
		sheetapp.WithEngineOptions(printing.WithLogger(log)),
		sheetapp.WithAssemblerLogger(log),
	)

	lock := cache.NewInMemoryGenerationLock()
	defer lock.Close()

	service := sheetapp.NewService(items, assembler, lock, sheetapp.Settings{
		Timeout:  cfg.Sheet.Timeout,
		LockTTL:  cfg.Sheet.LockTTL,
		Location: cfg.Sheet.Location(),
	}, sheetapp.WithLogger(log))

	progress := cmd.ErrOrStderr()
	if opts.quiet {
		progress = io.Discard
	}

	started := time.Now()
	doc, err := service.Generate(cmd.Context(), func(percent int) {
		fmt.Fprintf(progress, "\rgenerating catalog sheet... %3d%%", percent)
	})
	fmt.Fprintln(progress)
	if err != nil {
		return fmt.Errorf("catalog sheet generation failed: %w", err)
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(opts.outDir, doc.Filename)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d items, %d images, %d pages, %d bytes in %s\n",
		path, doc.ItemCount, doc.ImagesEmbedded, doc.PageCount, doc.Size(),
		time.Since(started).Round(time.Millisecond))
	return nil
}

// loadItems resolves the catalog source. The returned func releases any
// database connection.
func loadItems(cfg *config.Config, file string, log *zap.Logger) (catalog.ItemRepository, func(), error) {
	noop := func() {}
	switch {
	case file != "":
		items, err := catalogdata.LoadFile(file)
		if err != nil {
			return nil, noop, err
		}
		return catalogdata.NewStaticRepository(items), noop, nil
	case cfg.Catalog.Source == config.CatalogSourceDatabase:
		db, err := persistence.NewDatabase(&cfg.Database,
			persistence.WithLogger(log, logger.MapGormLogLevel(cfg.Log.Level)),
		)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		return persistence.NewGormItemRepository(db.DB), func() { _ = db.Close() }, nil
	default:
		repo, err := catalogdata.NewDefaultRepository()
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil
	}
}

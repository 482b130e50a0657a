// Package verify wires the verification engine to the filesystem: it loads
// the configuration file, builds an engine from it, and drives verification
// over files and directories.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/gnoverse/wv/internal"
	"github.com/gnoverse/wv/internal/smt"
	tt "github.com/gnoverse/wv/internal/types"
	"github.com/gnoverse/wv/scanner"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory when no path is given.
const DefaultConfigFile = ".wv.yaml"

// VerifyEngine is the surface the file processing helpers drive. The
// concrete implementation lives in the internal package.
type VerifyEngine interface {
	Run(ctx context.Context, filename string) (*tt.Report, error)
	RunSource(ctx context.Context, filename string, src []byte) (*tt.Report, error)
}

// Config represents the on-disk configuration of the verifier.
type Config struct {
	Solver        SolverConfig `yaml:"solver"`
	Workers       int          `yaml:"workers"`
	CheckDivision bool         `yaml:"check_division"`
	Cache         CacheConfig  `yaml:"cache"`
}

// SolverConfig selects and bounds the SMT solver backend.
type SolverConfig struct {
	Path    string `yaml:"path"`
	Timeout string `yaml:"timeout"`
}

// CacheConfig controls the on-disk discharge cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		Solver:  SolverConfig{Path: smt.DefaultZ3Path, Timeout: "10s"},
		Workers: runtime.NumCPU(),
		Cache:   CacheConfig{Dir: ".wv-cache"},
	}
}

// New builds an engine from the configuration file at configurationPath.
// An empty path means the default file, which may be absent.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config, logger)
}

// NewFromConfig builds an engine from an already loaded configuration.
func NewFromConfig(config Config, logger *zap.Logger) (*internal.Engine, error) {
	timeout, err := time.ParseDuration(config.Solver.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid solver timeout %q: %w", config.Solver.Timeout, err)
	}

	engine := internal.NewEngine(smt.NewZ3(config.Solver.Path, timeout), logger)
	if config.Workers > 0 {
		engine.SetWorkers(config.Workers)
	}
	engine.SetCheckDivision(config.CheckDivision)

	if config.Cache.Enabled {
		cache, err := internal.NewCache(config.Cache.Dir)
		if err != nil {
			return nil, err
		}
		engine.SetCache(cache)
	}

	return engine, nil
}

// LoadConfig reads the configuration file at configurationPath on top of the
// defaults. An empty path falls back to DefaultConfigFile; its absence is not
// an error, an explicitly named file must exist.
func LoadConfig(configurationPath string) (Config, error) {
	config := DefaultConfig()

	path := configurationPath
	if path == "" {
		path = DefaultConfigFile
	}

	f, err := os.Open(path)
	if err != nil {
		if configurationPath == "" && os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	// an empty configuration file decodes to io.EOF and means defaults
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return config, nil
}

// ProcessFiles verifies every path in order and concatenates the reports.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine VerifyEngine,
	paths []string,
	processor func(context.Context, VerifyEngine, string) (*tt.Report, error),
) ([]*tt.Report, error) {
	var allReports []*tt.Report
	for _, path := range paths {
		reports, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allReports, err
		}
		allReports = append(allReports, reports...)
	}

	return allReports, nil
}

// ProcessPath verifies a single file, or every annotated file under a
// directory. Directory runs are concurrent but the reports come back in
// scan order, and a file that fails to verify at all is logged and skipped
// rather than aborting the rest.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine VerifyEngine,
	path string,
	processor func(context.Context, VerifyEngine, string) (*tt.Report, error),
) ([]*tt.Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		report, err := processor(ctx, engine, path)
		if err != nil {
			return nil, err
		}
		return []*tt.Report{report}, nil
	}

	files, err := scanner.New(path).Scan()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// reports and errors keyed by scan index so output order stays stable
	reports := make([]*tt.Report, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup

	for i, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			report, err := processor(ctx, engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				errs[i] = err
			} else {
				reports[i] = report
			}
			bar.Add(1)
		}(i, file.Path)
	}
	wg.Wait()
	fmt.Println()

	var collected []*tt.Report
	failed := 0
	for i := range files {
		if errs[i] != nil {
			failed++
			continue
		}
		if reports[i] != nil {
			collected = append(collected, reports[i])
		}
	}
	if failed > 0 {
		return collected, fmt.Errorf("%d of %d files could not be verified", failed, len(files))
	}

	return collected, nil
}

// ProcessFile verifies one file with the engine.
func ProcessFile(ctx context.Context, engine VerifyEngine, filePath string) (*tt.Report, error) {
	return engine.Run(ctx, filePath)
}

package verify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tt "github.com/gnoverse/wv/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockVerifyEngine struct {
	mock.Mock
}

func (m *mockVerifyEngine) Run(_ context.Context, filename string) (*tt.Report, error) {
	args := m.Called(filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tt.Report), args.Error(1)
}

func (m *mockVerifyEngine) RunSource(_ context.Context, filename string, src []byte) (*tt.Report, error) {
	args := m.Called(filename, src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tt.Report), args.Error(1)
}

func verifiedReport(filename string) *tt.Report {
	return &tt.Report{Filename: filename, Result: tt.Verified}
}

func setupMockEngine(report *tt.Report, filePath string) *mockVerifyEngine {
	mockEngine := new(mockVerifyEngine)
	mockEngine.On("Run", filePath).Return(report, nil)
	return mockEngine
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expected := verifiedReport("square.wl")
	mockEngine := setupMockEngine(expected, "square.wl")

	report, err := ProcessFile(context.Background(), mockEngine, "square.wl")

	assert.NoError(t, err)
	assert.Equal(t, expected, report)
	mockEngine.AssertExpectations(t)
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	ctx := context.Background()

	tempDir, err := os.MkdirTemp("", "test")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	paths := createTempFiles(t, tempDir, "test1.wl", "test2.wl", "notes.txt")

	mockEngine := new(mockVerifyEngine)
	mockEngine.On("Run", paths[0]).Return(verifiedReport(paths[0]), nil)
	mockEngine.On("Run", paths[1]).Return(verifiedReport(paths[1]), nil)

	reports, err := ProcessPath(ctx, logger, mockEngine, tempDir, ProcessFile)

	assert.NoError(t, err)
	require.Len(t, reports, 2, "the .txt file must not be verified")
	assert.Equal(t, paths[0], reports[0].Filename, "reports must come back in scan order")
	assert.Equal(t, paths[1], reports[1].Filename)
	mockEngine.AssertExpectations(t)
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	ctx := context.Background()

	tempDir, err := os.MkdirTemp("", "test")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	paths := createTempFiles(t, tempDir, "single.wl")
	mockEngine := setupMockEngine(verifiedReport(paths[0]), paths[0])

	reports, err := ProcessPath(ctx, logger, mockEngine, paths[0], ProcessFile)

	assert.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, paths[0], reports[0].Filename)
	mockEngine.AssertExpectations(t)
}

func TestProcessPathMissing(t *testing.T) {
	t.Parallel()

	mockEngine := new(mockVerifyEngine)
	_, err := ProcessPath(context.Background(), zap.NewNop(), mockEngine, "does-not-exist.wl", ProcessFile)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing")
}

func TestProcessPathKeepsGoingOnFileError(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	ctx := context.Background()

	tempDir, err := os.MkdirTemp("", "test")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	paths := createTempFiles(t, tempDir, "bad.wl", "good.wl")

	mockEngine := new(mockVerifyEngine)
	mockEngine.On("Run", paths[0]).Return(nil, errors.New("syntax error"))
	mockEngine.On("Run", paths[1]).Return(verifiedReport(paths[1]), nil)

	reports, err := ProcessPath(ctx, logger, mockEngine, tempDir, ProcessFile)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files")
	require.Len(t, reports, 1)
	assert.Equal(t, paths[1], reports[0].Filename)
	mockEngine.AssertExpectations(t)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	ctx := context.Background()

	tempDir, err := os.MkdirTemp("", "test")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	paths := createTempFiles(t, tempDir, "test1.wl", "test2.wl")

	mockEngine := new(mockVerifyEngine)
	mockEngine.On("Run", paths[0]).Return(verifiedReport(paths[0]), nil)
	mockEngine.On("Run", paths[1]).Return(verifiedReport(paths[1]), nil)

	reports, err := ProcessFiles(ctx, logger, mockEngine, paths, ProcessFile)

	assert.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, paths[0], reports[0].Filename)
	assert.Equal(t, paths[1], reports[1].Filename)
	mockEngine.AssertExpectations(t)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cfgPath := filepath.Join(tempDir, "wv.yaml")
	content := `solver:
  path: /opt/z3/bin/z3
  timeout: 2s
workers: 3
check_division: true
cache:
  enabled: true
  dir: /tmp/wv-cache
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	config, err := LoadConfig(cfgPath)
	assert.NoError(t, err)
	assert.Equal(t, "/opt/z3/bin/z3", config.Solver.Path)
	assert.Equal(t, "2s", config.Solver.Timeout)
	assert.Equal(t, 3, config.Workers)
	assert.True(t, config.CheckDivision)
	assert.True(t, config.Cache.Enabled)
	assert.Equal(t, "/tmp/wv-cache", config.Cache.Dir)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cfgPath := filepath.Join(tempDir, "wv.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("workers: 2\n"), 0o644))

	config, err := LoadConfig(cfgPath)
	assert.NoError(t, err)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, DefaultConfig().Solver.Path, config.Solver.Path)
	assert.Equal(t, DefaultConfig().Solver.Timeout, config.Solver.Timeout)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cfgPath := filepath.Join(tempDir, "wv.yaml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o644))

	config, err := LoadConfig(cfgPath)
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig("does-not-exist.yaml")
	assert.Error(t, err, "an explicitly named configuration file must exist")
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	t.Parallel()

	config, err := LoadConfig("")
	assert.NoError(t, err, "the default configuration file is optional")
	assert.Equal(t, DefaultConfig().Solver.Path, config.Solver.Path)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	engine, err := NewFromConfig(config, zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestNewFromConfigBadTimeout(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Solver.Timeout = "soon"
	_, err := NewFromConfig(config, zap.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid solver timeout")
}

func TestNewFromConfigWithCache(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test")
	assert.NoError(t, err)
	defer os.RemoveAll(tempDir)

	config := DefaultConfig()
	config.Cache.Enabled = true
	config.Cache.Dir = filepath.Join(tempDir, "cache")

	engine, err := NewFromConfig(config, zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, engine)
	assert.DirExists(t, config.Cache.Dir)
}

func createTempFiles(t *testing.T, dir string, fileNames ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		filePath := filepath.Join(dir, fileName)
		_, err := os.Create(filePath)
		assert.NoError(t, err)
		paths = append(paths, filePath)
	}
	return paths
}

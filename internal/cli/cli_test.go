package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/autoplan/internal/config"
	"github.com/aretw0/autoplan/internal/logging"
	"github.com/aretw0/autoplan/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateSource(t *testing.T) {
	assert.Nil(t, TemplateSource(""))
	assert.Equal(t, templates.HTTPSource{URL: "https://example.com/index.json"}, TemplateSource("https://example.com/index.json"))
	assert.Equal(t, templates.FileSource{Path: "index.json"}, TemplateSource("index.json"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewStudio_InProcessMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Index = "../../pkg/templates/testdata/index.json"

	studio, closeFn, err := NewStudio(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer closeFn()

	res := studio.Templates().Search(context.Background(), templates.SearchOptions{})
	assert.Equal(t, 6, res.Total)
}

func TestNewStudio_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()

	studio, closeFn, err := NewStudio(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer closeFn()

	ctx := context.Background()
	require.NoError(t, studio.Memory().Write(ctx, "a", "s", "k", "v", time.Minute))
	assert.True(t, mr.Exists("autoplan:memory:entry:a:s:k"))
}

func TestNewStudio_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Redis.Addr = addr

	_, _, err := NewStudio(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "error connecting to redis")
}

func TestNewStudio_EncryptedRedisMemory(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()
	cfg.Memory.EncryptionKey = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	cfg.Memory.PIIPatterns = []string{"password"}

	studio, closeFn, err := NewStudio(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer closeFn()

	ctx := context.Background()
	require.NoError(t, studio.Memory().Write(ctx, "a", "s", "login", map[string]any{"user": "jdoe", "password": "pw"}, 0))

	raw, err := mr.Get("autoplan:memory:entry:a:s:login")
	require.NoError(t, err)
	assert.NotContains(t, raw, "jdoe")

	got, err := studio.Memory().Read(ctx, "a", "s", "login")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"user": "jdoe", "password": "***"}, got)
}

func TestNewStudio_FileMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Memory.Dir = t.TempDir()

	studio, closeFn, err := NewStudio(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer closeFn()

	ctx := context.Background()
	require.NoError(t, studio.Memory().Write(ctx, "a", "s", "k", "v", 0))
	assert.FileExists(t, filepath.Join(cfg.Memory.Dir, "a", "s.json"))
}

func TestMemoryMiddlewares_RejectsBadKeys(t *testing.T) {
	_, err := MemoryMiddlewares(config.MemoryConfig{EncryptionKey: "not base64!"})
	assert.ErrorContains(t, err, "memory encryption key")

	short := base64.StdEncoding.EncodeToString([]byte("short"))
	_, err = MemoryMiddlewares(config.MemoryConfig{EncryptionKey: base64.StdEncoding.EncodeToString(make([]byte, 32)), FallbackKeys: []string{short}})
	assert.ErrorContains(t, err, "memory fallback key 0")

	mws, err := MemoryMiddlewares(config.MemoryConfig{})
	require.NoError(t, err)
	assert.Empty(t, mws)
}

func TestReadInput(t *testing.T) {
	data, err := ReadInput("-", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", string(data))

	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	data, err = ReadInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	_, err = ReadInput(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestWriters(t *testing.T) {
	v := map[string]any{"title": "Digest", "steps": []int{1, 2}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, v))
	assert.Contains(t, buf.String(), "  \"title\": \"Digest\"")

	buf.Reset()
	require.NoError(t, WriteYAML(&buf, v))
	assert.Contains(t, buf.String(), "title: Digest")

	buf.Reset()
	require.NoError(t, WriteMarkdown(&buf, "# Plain"))
	assert.Equal(t, "# Plain", buf.String(), "non-terminal output is left raw")
	assert.False(t, IsTerminal(&buf))
}

func TestSignalContext_CancelWithoutSignal(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
}

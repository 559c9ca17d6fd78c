package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/config"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/persistence/snapshot"
)

func staticConfig(cfg *config.Config) configLoader {
	return func() (*config.Config, error) { return cfg, nil }
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "snapshot")
}

func TestServeFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cmd := NewServeCommand(staticConfig(cfg))
	require.NoError(t, cmd.ParseFlags([]string{"--address", ":9999", "--data-dir", "/srv/data", "--no-persistence"}))

	opts := &ServeOptions{Address: ":9999", DataDir: "/srv/data", NoPersistence: true}
	opts.apply(cmd, cfg)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "/srv/data", cfg.DataDir)
	assert.False(t, cfg.EnablePersistence)
}

func TestServeFlagsLeaveUnsetValues(t *testing.T) {
	cfg := config.Default()
	cmd := NewServeCommand(staticConfig(cfg))
	require.NoError(t, cmd.ParseFlags(nil))

	(&ServeOptions{}).apply(cmd, cfg)

	assert.Equal(t, config.Default(), cfg)
}

func TestSnapshotCommandPrintsDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := config.Default()

	cmd := NewSnapshotCommand(staticConfig(cfg))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--data-dir", dir})

	require.NoError(t, cmd.Execute())

	var doc snapshot.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Contains(t, doc.Groups, "alpha-lab")
	assert.Len(t, doc.Topics, 3)

	_, err := os.Stat(filepath.Join(dir, snapshot.FileName))
	assert.NoError(t, err)
}

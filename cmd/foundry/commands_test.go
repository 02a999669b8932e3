// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"encoding/json"
	goerrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/strata-foundry/internal/bootstrap"
	"github.com/kraklabs/strata-foundry/internal/config"
	"github.com/kraklabs/strata-foundry/internal/errors"
	foundrytest "github.com/kraklabs/strata-foundry/internal/testing"
	"github.com/kraklabs/strata-foundry/internal/ui"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/services"
	"github.com/kraklabs/strata-foundry/pkg/value"
)

func TestMain(m *testing.M) {
	ui.InitColors(true)
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) (*bootstrap.Database, *foundrytest.FakeEngine) {
	t.Helper()
	engine := foundrytest.NewFakeEngine()
	cfg := &config.Config{Database: config.DatabaseConfig{InMemory: true}}
	db, err := bootstrap.Open(context.Background(), cfg, engine, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
		foundrytest.AssertClean(t, engine)
	})
	return db, engine
}

func seeded(t *testing.T) *bootstrap.Database {
	t.Helper()
	db, _ := newTestDB(t)
	_, err := doSeed(context.Background(), db.Services, sample(), nil)
	require.NoError(t, err)
	return db
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ue *errors.UserError
	require.True(t, goerrors.As(err, &ue), "expected a UserError, got %T: %v", err, err)
	return ue.ExitCode
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db, engine := newTestDB(t)
	data := sample()

	res, err := doSeed(ctx, db.Services, data, nil)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{KV: 14, State: 8, Events: 20, Docs: 4, Branches: 2}, res)
	assert.Equal(t, 49, data.steps())
	assert.Len(t, data.KV, res.KV)
	assert.JSONEq(t, `{"Flush":null}`, engine.LastCommand())

	info, err := db.Services.Admin.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(14), info.TotalKeys)

	n, err := db.Services.Events.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), n)

	alice, err := db.Services.KV.Get(ctx, "user:alice")
	require.NoError(t, err)
	require.NotNil(t, alice)
	assert.Equal(t, value.String("Alice Chen"), alice.Value.(value.Object)["name"])

	exists, err := db.Services.Branches.Exists(ctx, "staging")
	require.NoError(t, err)
	assert.True(t, exists)

	// The branches exist now, so a second seed stops at the first branch.
	_, err = doSeed(ctx, db.Services, data, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ExitDatabase, exitCode(t, err))
	assert.Contains(t, err.Error(), "Cannot create branch experiment")
}

func TestPrintSeed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSeed(&buf, SeedResult{KV: 14, State: 8, Events: 20, Docs: 4, Branches: 2}, false))
	assert.Contains(t, buf.String(), "✓ Sample dataset written")
	assert.Contains(t, buf.String(), "  KV:       14 keys")

	buf.Reset()
	require.NoError(t, printSeed(&buf, SeedResult{KV: 1}, true))
	assert.JSONEq(t, `{"kv":1,"state":0,"events":0,"docs":0,"branches":0}`, buf.String())
}

func TestInspect(t *testing.T) {
	db := seeded(t)

	entries, err := collectInspect(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, entries, len(inspectCommands()))

	byName := map[string]InspectEntry{}
	for i, e := range entries {
		assert.Equal(t, inspectCommands()[i].Name, e.Name, "entries keep command order")
		byName[e.Name] = e
	}

	assert.JSONEq(t, `{"EventLen":{}}`, string(byName["EventLen"].Command))
	assert.JSONEq(t, `{"Uint":20}`, string(byName["EventLen"].Reply))
	assert.JSONEq(t, `{"JsonList":{"limit":1000}}`, string(byName["JsonList"].Command))
	assert.Contains(t, string(byName["KvGet user:alice"].Reply), "Alice Chen")
	assert.Empty(t, byName["BranchList"].Error)

	// The fake engine has no vector store; the failure is reported per entry.
	assert.Contains(t, byName["VectorListCollections"].Error, "does not implement VectorListCollections")
	assert.Nil(t, byName["VectorListCollections"].Reply)

	var buf bytes.Buffer
	printInspect(&buf, db, entries)
	assert.Contains(t, buf.String(), "In-memory database\n==================\n")
	assert.Contains(t, buf.String(), "⚠ 1 of 10 commands failed")
}

func TestExec(t *testing.T) {
	ctx := context.Background()
	db := seeded(t)

	var buf bytes.Buffer
	require.NoError(t, doExec(ctx, &buf, db, `{"KvGet":{"key":"config:max_retries"}}`, false))
	assert.Contains(t, buf.String(), `"MaybeVersioned"`)
	assert.Contains(t, buf.String(), `"Int": 3`)

	buf.Reset()
	require.NoError(t, doExec(ctx, &buf, db, ` {"Ping":null} `, true))
	assert.Contains(t, buf.String(), `"Pong": {`)
	assert.Contains(t, buf.String(), foundrytest.EngineVersion)

	err := doExec(ctx, &buf, db, `{"KvGet":`, false)
	require.Error(t, err)
	assert.Equal(t, errors.ExitDatabase, exitCode(t, err))

	err = doExec(ctx, &buf, db, "   ", false)
	assert.Equal(t, errors.ExitInput, exitCode(t, err))
}

func TestPing(t *testing.T) {
	db, _ := newTestDB(t)

	var buf bytes.Buffer
	require.NoError(t, doPing(context.Background(), &buf, db, true))

	var res PingResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, "strata-foundry-bridge", res.Bridge)
	assert.Equal(t, foundrytest.EngineVersion, res.EngineVersion)

	buf.Reset()
	require.NoError(t, doPing(context.Background(), &buf, &bootstrap.Database{Transport: db.Transport}, false))
	assert.Equal(t, "✓ Bridge strata-foundry-bridge\n", buf.String())
}

func TestKV(t *testing.T) {
	ctx := context.Background()
	db := seeded(t)
	kv := db.Services.KV

	run := func(jsonOutput bool, f kvFlags, args ...string) (string, error) {
		var buf bytes.Buffer
		err := doKV(ctx, &buf, kv, args, f, jsonOutput)
		return buf.String(), err
	}

	out, err := run(false, kvFlags{asString: true}, "put", "greeting", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ greeting = hello")

	out, err = run(true, kvFlags{}, "get", "greeting")
	require.NoError(t, err)
	var entry KVEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "greeting", entry.Key)
	assert.Equal(t, "hello", entry.Value)

	_, err = run(false, kvFlags{}, "put", "n", "{not json")
	assert.Equal(t, errors.ExitInput, exitCode(t, err))

	out, err = run(true, kvFlags{prefix: "user:"}, "list")
	require.NoError(t, err)
	assert.JSONEq(t, `["user:alice","user:bob","user:carol"]`, out)

	out, err = run(false, kvFlags{prefix: "counter:", limit: 2}, "list")
	require.NoError(t, err)
	assert.Equal(t, "counter:api_calls\ncounter:errors\n(2 keys)\n", out)

	_, err = run(false, kvFlags{}, "put", "counter:errors", "38")
	require.NoError(t, err)
	out, err = run(true, kvFlags{}, "history", "counter:errors")
	require.NoError(t, err)
	var hist []KVEntry
	require.NoError(t, json.Unmarshal([]byte(out), &hist))
	require.Len(t, hist, 2)
	assert.EqualValues(t, 38, hist[0].Value)
	assert.EqualValues(t, 37, hist[1].Value)

	out, err = run(false, kvFlags{}, "del", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "✓ Deleted greeting\n", out)

	_, err = run(false, kvFlags{}, "get", "greeting")
	assert.Equal(t, errors.ExitNotFound, exitCode(t, err))

	_, err = run(false, kvFlags{branch: "ghost"}, "get", "user:alice")
	assert.Equal(t, errors.ExitDatabase, exitCode(t, err))

	_, err = run(false, kvFlags{}, "get")
	assert.Equal(t, errors.ExitInput, exitCode(t, err))
	_, err = run(false, kvFlags{}, "scan")
	assert.Equal(t, errors.ExitInput, exitCode(t, err))
}

func TestBranches(t *testing.T) {
	ctx := context.Background()
	db := seeded(t)
	b := db.Services.Branches

	run := func(jsonOutput bool, f branchFlags, args ...string) (string, error) {
		var buf bytes.Buffer
		err := doBranches(ctx, &buf, b, args, f, jsonOutput)
		return buf.String(), err
	}

	out, err := run(false, branchFlags{}, "fork", "default", "feature")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Forked default into feature")

	_, err = db.Services.KV.Put(ctx, "user:dave", value.String("Dave"), services.WithBranch("feature"))
	require.NoError(t, err)

	out, err = run(true, branchFlags{}, "diff", "default", "feature")
	require.NoError(t, err)
	var diff protocol.BranchDiffResult
	require.NoError(t, json.Unmarshal([]byte(out), &diff))
	assert.Equal(t, uint64(1), diff.Summary.TotalAdded)

	out, err = run(false, branchFlags{}, "diff", "default", "feature")
	require.NoError(t, err)
	assert.Contains(t, out, "  + user:dave (kv)")

	out, err = run(false, branchFlags{strategy: "last_writer_wins"}, "merge", "feature", "default")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Merged feature into default")

	_, err = run(false, branchFlags{strategy: "newest"}, "merge", "feature", "default")
	assert.Equal(t, errors.ExitInput, exitCode(t, err))

	out, err = run(false, branchFlags{}, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "BRANCH")
	assert.Contains(t, out, "feature")
	assert.Contains(t, out, "staging")

	out, err = run(true, branchFlags{}, "create", "hotfix")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "hotfix"`)

	_, err = run(false, branchFlags{}, "create", "hotfix")
	assert.Equal(t, errors.ExitDatabase, exitCode(t, err))

	out, err = run(false, branchFlags{}, "delete", "hotfix")
	require.NoError(t, err)
	assert.Equal(t, "✓ Deleted branch hotfix\n", out)

	_, err = run(false, branchFlags{}, "fork", "default")
	assert.Equal(t, errors.ExitInput, exitCode(t, err))
}

func TestInit(t *testing.T) {
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvModelAPIKey, "")
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("bin/"), 0o600))

	var buf bytes.Buffer
	require.NoError(t, doInit(&buf, root, initFlags{durability: "always", logLevel: "debug"}))
	assert.Contains(t, buf.String(), "✓ Created ")

	cfg, err := config.LoadConfig(config.ConfigPath(root))
	require.NoError(t, err)
	assert.Equal(t, protocol.DurabilityAlways, cfg.Database.Options.Durability)
	assert.Equal(t, "debug", cfg.LogLevel)

	gitignore, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "bin/\n\n# Strata foundry\n.strata/\n", string(gitignore))

	err = doInit(&buf, root, initFlags{logLevel: "info"})
	assert.Equal(t, errors.ExitInput, exitCode(t, err))

	require.NoError(t, doInit(&buf, root, initFlags{force: true, inMemory: true, logLevel: "info"}))
	cfg, err = config.LoadConfig(config.ConfigPath(root))
	require.NoError(t, err)
	assert.True(t, cfg.Database.InMemory)

	// .strata/ is already listed; a second init leaves .gitignore alone.
	gitignore2, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, string(gitignore), string(gitignore2))

	err = doInit(&buf, t.TempDir(), initFlags{durability: "sometimes", logLevel: "info"})
	assert.Equal(t, errors.ExitInput, exitCode(t, err))
}

func TestResolveConfig(t *testing.T) {
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvModelAPIKey, "")
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := resolveConfig(GlobalFlags{InMemory: true})
	require.NoError(t, err)
	assert.True(t, cfg.Database.InMemory)

	_, err = resolveConfig(GlobalFlags{ConfigPath: missing})
	assert.Equal(t, errors.ExitConfig, exitCode(t, err))

	cfg, err = resolveConfig(GlobalFlags{ConfigPath: missing, DBPath: "/tmp/db", MetricsAddr: ":9464"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/db", cfg.Database.Path)
	assert.Equal(t, ":9464", cfg.MetricsAddr)

	root := t.TempDir()
	require.NoError(t, config.SaveConfig(config.DefaultConfig(root), config.ConfigPath(root)))
	cfg, err = resolveConfig(GlobalFlags{ConfigPath: config.ConfigPath(root)})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".strata", "data"), cfg.Database.Path)
}

func TestLogLevel(t *testing.T) {
	cfg := &config.Config{LogLevel: "info"}
	assert.Equal(t, "warn", logLevel(GlobalFlags{}, cfg))
	assert.Equal(t, "info", logLevel(GlobalFlags{Verbose: 1}, cfg))
	assert.Equal(t, "debug", logLevel(GlobalFlags{Verbose: 3}, cfg))
	assert.Equal(t, "error", logLevel(GlobalFlags{}, &config.Config{LogLevel: "error"}))
}

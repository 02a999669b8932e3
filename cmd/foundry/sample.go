// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import "github.com/kraklabs/strata-foundry/pkg/value"

type sampleKV struct {
	Key   string
	Value value.Value
}

type sampleEvent struct {
	Type    string
	Payload value.Object
}

// sampleData is the dataset written by `foundry seed`: an agent run with
// users, config, counters, state cells, an event log and a few documents.
type sampleData struct {
	KV       []sampleKV
	State    []sampleKV
	Events   []sampleEvent
	Docs     []sampleKV
	Branches []string
}

func (d sampleData) steps() int {
	// One per write, one per branch, one for the final flush.
	return len(d.KV) + len(d.State) + len(d.Events) + len(d.Docs) + len(d.Branches) + 1
}

func user(name, email string, age int64, role string, active bool) value.Object {
	return value.ObjectOf(
		value.P("name", value.String(name)),
		value.P("email", value.String(email)),
		value.P("age", value.Int(age)),
		value.P("role", value.String(role)),
		value.P("active", value.Bool(active)),
	)
}

func toolCall(tool string, extra ...value.Pair) value.Object {
	return value.ObjectOf(append([]value.Pair{value.P("tool", value.String(tool))}, extra...)...)
}

func sample() sampleData {
	return sampleData{
		KV: []sampleKV{
			{"user:alice", user("Alice Chen", "alice@example.com", 30, "admin", true)},
			{"user:bob", user("Bob Martinez", "bob@example.com", 25, "developer", true)},
			{"user:carol", user("Carol Kim", "carol@example.com", 35, "designer", false)},
			{"config:app_version", value.String("2.1.0")},
			{"config:max_retries", value.Int(3)},
			{"config:timeout_ms", value.Int(5000)},
			{"config:debug_mode", value.Bool(false)},
			{"config:allowed_origins", value.Strings(
				"https://app.strata.dev",
				"https://localhost:3000",
				"https://staging.strata.dev",
			)},
			{"counter:page_views", value.Int(48291)},
			{"counter:api_calls", value.Int(152847)},
			{"counter:errors", value.Int(37)},
			{"cache:trending_topics", value.Strings("rust", "ai-agents", "embedded-databases", "swiftui")},
			{"cache:exchange_rates", value.ObjectOf(
				value.P("USD_EUR", value.Float(0.92)),
				value.P("USD_GBP", value.Float(0.79)),
				value.P("USD_JPY", value.Float(149.85)),
				value.P("updated_at", value.String("2026-02-20T15:00:00Z")),
			)},
			{"session:abc123", value.ObjectOf(
				value.P("user_id", value.String("alice")),
				value.P("created_at", value.String("2026-02-20T14:30:00Z")),
				value.P("expires_at", value.String("2026-02-21T14:30:00Z")),
				value.P("ip", value.String("192.168.1.42")),
			)},
		},

		State: []sampleKV{
			{"agent:status", value.String("idle")},
			{"agent:step_count", value.Int(47)},
			{"agent:last_action", value.String("tool_call: search_docs")},
			{"agent:memory_mb", value.Float(128.5)},
			{"agent:errors_total", value.Int(2)},
			{"agent:last_error", value.ObjectOf(
				value.P("message", value.String("API rate limit exceeded")),
				value.P("code", value.Int(429)),
				value.P("timestamp", value.String("2026-02-20T14:28:00Z")),
			)},
			{"pipeline:stage", value.String("indexing")},
			{"pipeline:progress", value.Float(0.73)},
		},

		Events: []sampleEvent{
			{"system", value.ObjectOf(value.P("action", value.String("startup")), value.P("version", value.String("1.0.0")))},
			{"auth", value.ObjectOf(value.P("action", value.String("login")), value.P("user", value.String("alice")), value.P("method", value.String("api_key")))},
			{"tool_call", toolCall("web_search",
				value.P("query", value.String("rust embedded database benchmarks")), value.P("duration_ms", value.Int(342)), value.P("results", value.Int(15)))},
			{"observation", value.ObjectOf(value.P("content", value.String(
				"Found 15 results about embedded databases. Top result: StrataDB benchmarks show 2.3x improvement.")))},
			{"decision", value.ObjectOf(
				value.P("reasoning", value.String("Results look promising. Will summarize the top 3 findings.")), value.P("confidence", value.Float(0.85)))},
			{"tool_call", toolCall("read_document", value.P("doc_id", value.String("benchmark-report-2026")), value.P("duration_ms", value.Int(89)))},
			{"tool_call", toolCall("read_document", value.P("doc_id", value.String("stratadb-architecture")), value.P("duration_ms", value.Int(124)))},
			{"observation", value.ObjectOf(value.P("content", value.String(
				"Architecture doc describes 6 primitives: KV, Events, State, JSON, Vectors, Branches.")))},
			{"tool_call", toolCall("kv_put", value.P("key", value.String("cache:summary")), value.P("duration_ms", value.Int(3)))},
			{"error", value.ObjectOf(
				value.P("message", value.String("Rate limit exceeded for web_search")), value.P("code", value.Int(429)), value.P("retry_after_ms", value.Int(5000)))},
			{"system", value.ObjectOf(value.P("action", value.String("rate_limit_backoff")), value.P("wait_ms", value.Int(5000)))},
			{"tool_call", toolCall("web_search",
				value.P("query", value.String("strata vs redb vs sqlite comparison")), value.P("duration_ms", value.Int(567)), value.P("results", value.Int(8)))},
			{"observation", value.ObjectOf(value.P("content", value.String(
				"Comparison shows StrataDB excels at branching and time-travel. SQLite wins on raw read throughput.")))},
			{"decision", value.ObjectOf(
				value.P("reasoning", value.String("Have enough data to write the summary. Will generate report.")), value.P("confidence", value.Float(0.92)))},
			{"tool_call", toolCall("generate_text",
				value.P("prompt_tokens", value.Int(2048)), value.P("completion_tokens", value.Int(512)), value.P("duration_ms", value.Int(1843)))},
			{"tool_call", toolCall("json_set", value.P("key", value.String("doc:report")), value.P("duration_ms", value.Int(5)))},
			{"auth", value.ObjectOf(value.P("action", value.String("login")), value.P("user", value.String("bob")), value.P("method", value.String("oauth")))},
			{"tool_call", toolCall("kv_list",
				value.P("prefix", value.String("user:")), value.P("duration_ms", value.Int(2)), value.P("results", value.Int(3)))},
			{"system", value.ObjectOf(value.P("action", value.String("checkpoint")), value.P("step", value.Int(47)))},
			{"system", value.ObjectOf(
				value.P("action", value.String("task_complete")),
				value.P("total_steps", value.Int(47)),
				value.P("total_tool_calls", value.Int(8)),
				value.P("total_tokens", value.Int(4096)),
			)},
		},

		Docs: []sampleKV{
			{"doc:readme", value.ObjectOf(
				value.P("title", value.String("Getting Started with StrataDB")),
				value.P("author", value.String("Alice Chen")),
				value.P("created", value.String("2026-01-15T10:00:00Z")),
				value.P("content", value.String("StrataDB is an embedded database built for AI agents. It provides six data primitives, "+
					"git-like branching, time-travel queries, and optimistic concurrency control.")),
				value.P("tags", value.Strings("docs", "getting-started", "tutorial")),
				value.P("status", value.String("published")),
			)},
			{"doc:changelog", value.ObjectOf(
				value.P("version", value.String("0.5.1")),
				value.P("date", value.String("2026-02-18")),
				value.P("changes", value.ArrayOf(
					change("feature", "Added branch diff and merge support"),
					change("fix", "Fixed WAL compaction causing data loss on crash"),
					change("perf", "2.3x faster vector search with HNSW segment compaction"),
					change("fix", "OCC conflict detection now handles cross-branch reads"),
				)),
				value.P("breaking_changes", value.Bool(false)),
			)},
			{"doc:agent-config", value.ObjectOf(
				value.P("name", value.String("research-agent-v2")),
				value.P("model", value.String("claude-sonnet-4-6")),
				value.P("max_steps", value.Int(100)),
				value.P("tools", value.Strings("web_search", "read_document", "generate_text", "kv_put", "kv_get", "json_set")),
				value.P("temperature", value.Float(0.7)),
				value.P("system_prompt", value.String("You are a research assistant. Find information, analyze it, and produce structured reports.")),
			)},
			{"doc:report", value.ObjectOf(
				value.P("title", value.String("Embedded Database Comparison 2026")),
				value.P("author", value.String("research-agent-v2")),
				value.P("generated_at", value.String("2026-02-20T15:30:00Z")),
				value.P("summary", value.String("Analysis of 5 embedded databases across 12 benchmarks. StrataDB leads in branching, "+
					"time-travel, and hybrid search. SQLite leads in raw read throughput. redb leads in write-heavy workloads.")),
				value.P("databases", value.Strings("StrataDB", "SQLite", "redb", "LMDB", "RocksDB")),
				value.P("recommendation", value.String("StrataDB recommended for AI agent workloads due to native branching and vector search.")),
			)},
		},

		Branches: []string{"experiment", "staging"},
	}
}

func change(kind, description string) value.Object {
	return value.ObjectOf(value.P("type", value.String(kind)), value.P("description", value.String(description)))
}

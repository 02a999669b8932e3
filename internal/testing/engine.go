// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kraklabs/strata-foundry/pkg/ffi"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

// EngineVersion is the version the fake engine reports in Pong and Info.
const EngineVersion = "0.6.0-fake"

// BridgeID is the identifier the fake engine's ping returns.
const BridgeID = "strata-foundry-bridge"

// PanicReply is what the native bridge returns when the engine panics.
const PanicReply = `{"error":{"Internal":{"reason":"panic in Rust bridge"}}}`

// FakeEngine is an in-process ffi.Library. It keeps an allocation ledger
// for every string it hands out and records ownership violations (reads
// after free, double frees, double closes) instead of crashing, so tests
// can assert that the bridge released everything exactly once.
//
// Databases opened by path persist for the lifetime of the FakeEngine, so
// closing and reopening a path sees earlier writes.
type FakeEngine struct {
	mu sync.Mutex

	live     map[ffi.ForeignString]string
	freed    map[ffi.ForeignString]bool
	nextPtr  ffi.ForeignString
	problems []string

	handles    map[ffi.Handle]*fakeDB
	closed     map[ffi.Handle]bool
	nextHandle ffi.Handle
	byPath     map[string]*fakeDB

	commands []string
	scripted []scriptedReply
	gate     chan struct{}

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	waiting     atomic.Int32
}

type scriptedReply struct {
	text string
	null bool
}

// NewFakeEngine returns an engine with no open databases.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		live:       map[ffi.ForeignString]string{},
		freed:      map[ffi.ForeignString]bool{},
		nextPtr:    0x10000,
		handles:    map[ffi.Handle]*fakeDB{},
		closed:     map[ffi.Handle]bool{},
		nextHandle: 1,
		byPath:     map[string]*fakeDB{},
	}
}

// Ping implements ffi.Library.
func (f *FakeEngine) Ping() ffi.ForeignString {
	f.enter()
	defer f.exit()

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allocOK(BridgeID)
}

// Open implements ffi.Library. Paths under /nonexistent fail, as does a
// read-only open of a path that was never created.
func (f *FakeEngine) Open(path string, config *string) ffi.ForeignString {
	f.enter()
	defer f.exit()

	f.mu.Lock()
	defer f.mu.Unlock()

	var opts protocol.OpenOptions
	if config != nil {
		if err := json.Unmarshal([]byte(*config), &opts); err != nil {
			return f.allocError("invalid config JSON: " + err.Error())
		}
		if err := opts.Validate(); err != nil {
			return f.allocError(err.Error())
		}
	}
	if path == "" {
		return f.allocError("path is null or invalid UTF-8")
	}
	if strings.HasPrefix(path, "/nonexistent") {
		return f.allocError(fmt.Sprintf("failed to open %s: No such file or directory (os error 2)", path))
	}

	db, ok := f.byPath[path]
	if !ok {
		if opts.AccessMode == protocol.AccessReadOnly {
			return f.allocError(fmt.Sprintf("database not found at %s (read-only open)", path))
		}
		db = newFakeDB()
		f.byPath[path] = db
	}
	db.configure(opts)
	return f.adopt(db)
}

// OpenMemory implements ffi.Library.
func (f *FakeEngine) OpenMemory() ffi.ForeignString {
	f.enter()
	defer f.exit()

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adopt(newFakeDB())
}

func (f *FakeEngine) adopt(db *fakeDB) ffi.ForeignString {
	h := f.nextHandle
	f.nextHandle++
	f.handles[h] = db
	return f.allocOK(uint64(h))
}

// Close implements ffi.Library.
func (f *FakeEngine) Close(h ffi.Handle) {
	f.enter()
	defer f.exit()

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.handles[h]; !ok {
		if f.closed[h] {
			f.problem("double close of handle %d", h)
		} else {
			f.problem("close of unknown handle %d", h)
		}
		return
	}
	delete(f.handles, h)
	f.closed[h] = true
}

// Execute implements ffi.Library.
func (f *FakeEngine) Execute(h ffi.Handle, command string) ffi.ForeignString {
	f.enter()
	defer f.exit()

	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		f.waiting.Add(1)
		<-gate
		f.waiting.Add(-1)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.commands = append(f.commands, command)

	if len(f.scripted) > 0 {
		r := f.scripted[0]
		f.scripted = f.scripted[1:]
		if r.null {
			return 0
		}
		return f.alloc(r.text)
	}

	db, ok := f.handles[h]
	if !ok {
		if f.closed[h] {
			f.problem("execute on closed handle %d", h)
		}
		return f.allocError("invalid handle")
	}

	cmd, err := protocol.DecodeCommand([]byte(command))
	if err != nil {
		return f.allocError("invalid command JSON: " + err.Error())
	}
	out, err := db.execute(cmd)
	if err != nil {
		return f.allocError(err.Error())
	}
	data, err := protocol.EncodeOutput(out)
	if err != nil {
		return f.allocError("failed to serialize output: " + err.Error())
	}
	return f.alloc(string(data))
}

// Copy implements ffi.Library.
func (f *FakeEngine) Copy(s ffi.ForeignString) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	text, ok := f.live[s]
	if !ok {
		if f.freed[s] {
			f.problem("read after free of string %#x", uintptr(s))
		} else {
			f.problem("read of unknown string %#x", uintptr(s))
		}
		return ""
	}
	return text
}

// Free implements ffi.Library.
func (f *FakeEngine) Free(s ffi.ForeignString) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s.IsNull() {
		return
	}
	if _, ok := f.live[s]; !ok {
		if f.freed[s] {
			f.problem("double free of string %#x", uintptr(s))
		} else {
			f.problem("free of unknown string %#x", uintptr(s))
		}
		return
	}
	delete(f.live, s)
	f.freed[s] = true
}

// ScriptReply makes the next Execute return raw verbatim, regardless of
// the command or handle. Scripted replies are consumed in order.
func (f *FakeEngine) ScriptReply(raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripted = append(f.scripted, scriptedReply{text: raw})
}

// ScriptNullReply makes the next Execute return a NULL string.
func (f *FakeEngine) ScriptNullReply() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripted = append(f.scripted, scriptedReply{null: true})
}

// Hold blocks every Execute until the returned release func is called.
func (f *FakeEngine) Hold() (release func()) {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.gate = nil
			f.mu.Unlock()
			close(gate)
		})
	}
}

// Waiting returns the number of Execute calls blocked by Hold.
func (f *FakeEngine) Waiting() int {
	return int(f.waiting.Load())
}

// Commands returns every command string passed to Execute, in order.
func (f *FakeEngine) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

// LastCommand returns the most recent command passed to Execute.
func (f *FakeEngine) LastCommand() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.commands) == 0 {
		return ""
	}
	return f.commands[len(f.commands)-1]
}

// Outstanding returns the number of strings handed out and not yet freed.
func (f *FakeEngine) Outstanding() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// OpenHandles returns the ids of handles that are open, sorted.
func (f *FakeEngine) OpenHandles() []ffi.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ffi.Handle, 0, len(f.handles))
	for h := range f.handles {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Violations returns every ownership violation recorded so far.
func (f *FakeEngine) Violations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.problems...)
}

// MaxConcurrentCalls returns the largest number of foreign calls that were
// ever in progress at once.
func (f *FakeEngine) MaxConcurrentCalls() int {
	return int(f.maxInFlight.Load())
}

func (f *FakeEngine) enter() {
	n := f.inFlight.Add(1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			return
		}
	}
}

func (f *FakeEngine) exit() {
	f.inFlight.Add(-1)
}

func (f *FakeEngine) alloc(text string) ffi.ForeignString {
	f.nextPtr += 16
	f.live[f.nextPtr] = text
	return f.nextPtr
}

func (f *FakeEngine) allocOK(payload any) ffi.ForeignString {
	data, err := protocol.EncodeOK(payload)
	if err != nil {
		return f.alloc(PanicReply)
	}
	return f.alloc(string(data))
}

func (f *FakeEngine) allocError(reason string) ffi.ForeignString {
	data, err := protocol.EncodeError(protocol.InternalError(reason))
	if err != nil {
		return f.alloc(PanicReply)
	}
	return f.alloc(string(data))
}

func (f *FakeEngine) problem(format string, args ...any) {
	f.problems = append(f.problems, fmt.Sprintf(format, args...))
}

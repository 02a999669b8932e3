// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kraklabs/strata-foundry/pkg/ffi"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

var errNullReply = errors.New("bridge returned a NULL string")

// Transport owns at most one open database handle and runs every foreign
// call on a single worker goroutine locked to its OS thread. Calls are
// executed in the order they were issued.
//
// A context passed to a Transport method bounds how long the caller waits.
// It does not abort a call that has already been queued.
//
// Transport is safe for concurrent use.
type Transport struct {
	*transport
	cleanup runtime.Cleanup
}

// transport is the part of Transport the worker goroutine references, so
// that an abandoned Transport can still be collected and cleaned up.
type transport struct {
	lib    ffi.Library
	logger *slog.Logger
	queue  *callQueue
	done   chan struct{}

	mu     sync.Mutex
	handle ffi.Handle
	open   bool
	// closes counts Close requests. An open submitted before a Close must
	// not leave a handle installed once it runs.
	closes uint64

	shutdownOnce sync.Once
}

// Option configures a Transport.
type Option func(*transport)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTransport starts a transport over lib. Call Shutdown when done; a
// Transport that becomes unreachable closes its handle and stops its worker
// on its own.
func NewTransport(lib ffi.Library, opts ...Option) *Transport {
	tr := &transport{
		lib:    lib,
		logger: slog.Default(),
		queue:  newCallQueue(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(tr)
	}

	go tr.run()

	t := &Transport{transport: tr}
	t.cleanup = runtime.AddCleanup(t, func(tr *transport) {
		tr.logger.Debug("bridge.transport.collected")
		tr.shutdown()
	}, tr)
	return t
}

func (t *transport) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(t.done)

	for {
		c, ok := t.queue.Dequeue()
		if !ok {
			return
		}
		start := time.Now()
		c.fn()
		recordCall(c.op, time.Since(start))
		if c.done != nil {
			close(c.done)
		}
	}
}

// do runs fn on the worker and waits for it or for ctx.
func (t *transport) do(ctx context.Context, op string, fn func()) error {
	c := &call{op: op, fn: fn, done: make(chan struct{})}
	if !t.queue.Enqueue(c) {
		return ErrShutdown
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		t.logger.Debug("bridge.call.abandoned", "op", op, "err", ctx.Err())
		return ctx.Err()
	}
}

// Open opens the database at path. An already open handle is closed first.
// A nil opts uses engine defaults. On failure the transport is left closed.
// The engine validates opts; a rejected option is a KindBridge error.
func (t *Transport) Open(ctx context.Context, path string, opts *protocol.OpenOptions) (ffi.Handle, error) {
	gen := t.closeCount()

	var h ffi.Handle
	var openErr error
	err := t.do(ctx, "open", func() {
		t.closeCurrent()
		config, err := opts.ConfigJSON()
		if err != nil {
			openErr = newLocalError("open", err)
			return
		}
		callID := uuid.NewString()
		t.logger.Debug("bridge.open.start", "call_id", callID, "path", path, "with_config", config != nil)
		h, openErr = t.adopt("open", gen, t.lib.Open(path, config))
		t.logger.Debug("bridge.open.done", "call_id", callID, "handle", uint64(h), "err", openErr)
	})
	if err != nil {
		return 0, err
	}
	return h, openErr
}

// OpenMemory opens an ephemeral in-memory database. An already open handle
// is closed first.
func (t *Transport) OpenMemory(ctx context.Context) (ffi.Handle, error) {
	gen := t.closeCount()

	var h ffi.Handle
	var openErr error
	err := t.do(ctx, "open_memory", func() {
		t.closeCurrent()
		callID := uuid.NewString()
		t.logger.Debug("bridge.open_memory.start", "call_id", callID)
		h, openErr = t.adopt("open_memory", gen, t.lib.OpenMemory())
		t.logger.Debug("bridge.open_memory.done", "call_id", callID, "handle", uint64(h), "err", openErr)
	})
	if err != nil {
		return 0, err
	}
	return h, openErr
}

func (t *transport) closeCount() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closes
}

// adopt decodes an open reply and, on success, installs the handle. If Close
// was called after the open was submitted, the new handle is closed at once
// and the transport stays closed. Must run on the worker.
func (t *transport) adopt(op string, gen uint64, s ffi.ForeignString) (ffi.Handle, error) {
	reply, ok := ffi.TakeString(t.lib, s)
	if !ok {
		return 0, newInvalidResponse(op, "", errNullReply)
	}

	env, ok := protocol.ParseEnvelope([]byte(reply))
	if !ok {
		return 0, newInvalidResponse(op, reply, errors.New("expected an ok or error envelope"))
	}
	if env.IsError() {
		return 0, newBridgeError(op, env.Error)
	}

	var id uint64
	if err := json.Unmarshal(env.OK, &id); err != nil || id == 0 {
		if err == nil {
			err = errors.New("handle id 0")
		}
		return 0, newInvalidResponse(op, reply, fmt.Errorf("decode handle: %w", err))
	}

	h := ffi.Handle(id)
	t.mu.Lock()
	if t.closes != gen {
		t.mu.Unlock()
		t.logger.Debug("bridge.open.superseded", "handle", uint64(h))
		t.lib.Close(h)
		return h, nil
	}
	t.handle, t.open = h, true
	t.mu.Unlock()
	return h, nil
}

// closeCurrent clears and closes the current handle, if any. Must run on
// the worker.
func (t *transport) closeCurrent() {
	t.mu.Lock()
	h, ok := t.handle, t.open
	t.handle, t.open = 0, false
	t.mu.Unlock()

	if ok {
		t.logger.Debug("bridge.close.replace", "handle", uint64(h))
		t.lib.Close(h)
	}
}

// Close releases the open handle, if any. The handle is cleared at once;
// the foreign close runs on the worker after calls queued before it. An
// open queued before Close does not leave its handle installed. Close never
// fails and may be called any number of times.
func (t *Transport) Close() error {
	t.closeHandle()
	return nil
}

func (t *transport) closeHandle() {
	t.mu.Lock()
	h, ok := t.handle, t.open
	t.handle, t.open = 0, false
	t.closes++
	t.mu.Unlock()

	if !ok {
		return
	}
	t.logger.Debug("bridge.close", "handle", uint64(h))
	t.queue.Enqueue(&call{op: "close", fn: func() { t.lib.Close(h) }})
}

// ExecuteRaw sends one command JSON string and returns the raw reply. The
// handle is read when the call reaches the worker, so a call queued behind
// Close fails with a KindNotOpen error.
func (t *Transport) ExecuteRaw(ctx context.Context, command string) (string, error) {
	var reply string
	var callErr error
	err := t.do(ctx, "execute", func() {
		t.mu.Lock()
		h, ok := t.handle, t.open
		t.mu.Unlock()
		if !ok {
			callErr = newNotOpen("")
			return
		}

		callID := uuid.NewString()
		t.logger.Debug("bridge.execute.start", "call_id", callID, "handle", uint64(h), "bytes", len(command))
		r, ok := ffi.TakeString(t.lib, t.lib.Execute(h, command))
		if !ok {
			callErr = newInvalidResponse("", "", errNullReply)
		} else {
			reply = r
		}
		t.logger.Debug("bridge.execute.done", "call_id", callID, "reply_bytes", len(reply), "err", callErr)
	})
	if err != nil {
		return "", err
	}
	return reply, callErr
}

// Ping checks that the native library is loaded. It does not need an open
// handle and returns the bridge identifier.
func (t *Transport) Ping(ctx context.Context) (string, error) {
	var id string
	var pingErr error
	err := t.do(ctx, "ping", func() {
		reply, ok := ffi.TakeString(t.lib, t.lib.Ping())
		if !ok {
			pingErr = newInvalidResponse("ping", "", errNullReply)
			return
		}
		env, ok := protocol.ParseEnvelope([]byte(reply))
		switch {
		case !ok:
			pingErr = newInvalidResponse("ping", reply, errors.New("expected an ok or error envelope"))
		case env.IsError():
			pingErr = newBridgeError("ping", env.Error)
		default:
			if err := json.Unmarshal(env.OK, &id); err != nil {
				pingErr = newInvalidResponse("ping", reply, err)
			}
		}
	})
	if err != nil {
		return "", err
	}
	return id, pingErr
}

// IsOpen reports whether a handle is currently held.
func (t *Transport) IsOpen() bool {
	_, ok := t.Handle()
	return ok
}

// Handle returns the current handle.
func (t *Transport) Handle() (ffi.Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handle, t.open
}

// QueueLen returns the number of calls waiting for the worker.
func (t *Transport) QueueLen() int {
	return t.queue.Len()
}

// Shutdown closes the handle, runs every queued call, and stops the worker.
// Later calls fail with ErrShutdown. Shutdown is idempotent.
func (t *Transport) Shutdown() {
	t.cleanup.Stop()
	t.shutdown()
}

func (t *transport) shutdown() {
	t.shutdownOnce.Do(func() {
		t.closeHandle()
		t.queue.Close()
		<-t.done
		t.logger.Debug("bridge.transport.shutdown")
	})
}

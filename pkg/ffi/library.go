// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ffi

import "errors"

// Handle identifies an open database inside the native library.
type Handle uint64

// ForeignString is a string allocated by the native library. The zero value
// is the NULL pointer.
type ForeignString uintptr

// IsNull reports whether s is the NULL pointer.
func (s ForeignString) IsNull() bool { return s == 0 }

// Library is the C surface of the bridge. Every method maps to exactly one
// foreign call. Implementations are not required to be safe for concurrent
// use.
type Library interface {
	// Ping calls strata_ping.
	Ping() ForeignString

	// Open calls strata_open. A nil config passes a NULL pointer.
	Open(path string, config *string) ForeignString

	// OpenMemory calls strata_open_memory.
	OpenMemory() ForeignString

	// Close calls strata_close.
	Close(h Handle)

	// Execute calls strata_execute.
	Execute(h Handle, command string) ForeignString

	// Copy reads a foreign string into Go memory without releasing it.
	Copy(s ForeignString) string

	// Free calls strata_free_string.
	Free(s ForeignString)
}

// ErrNativeUnavailable is returned by Native when the module was built
// without the native bridge.
var ErrNativeUnavailable = errors.New("strata native bridge not linked (build with cgo and -tags strata)")

// TakeString copies s into a Go string and releases it. It returns false for
// NULL. The foreign string must not be used after this call.
func TakeString(lib Library, s ForeignString) (string, bool) {
	if s.IsNull() {
		return "", false
	}
	defer lib.Free(s)
	return lib.Copy(s), true
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build cgo && strata

package ffi

/*
#cgo LDFLAGS: -lstrata_foundry_bridge
#include <stdint.h>
#include <stdlib.h>

char *strata_ping(void);
char *strata_open(const char *path, const char *config_json);
char *strata_open_memory(void);
void strata_close(uint64_t handle);
char *strata_execute(uint64_t handle, const char *command_json);
void strata_free_string(char *ptr);
*/
import "C"

import "unsafe"

type native struct{}

// Native returns the Library backed by the linked bridge.
func Native() (Library, error) {
	return native{}, nil
}

// Ping calls strata_ping.
func (native) Ping() ForeignString {
	return foreign(C.strata_ping())
}

// Open calls strata_open. A nil config passes a NULL pointer.
func (native) Open(path string, config *string) ForeignString {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	var cConfig *C.char
	if config != nil {
		cConfig = C.CString(*config)
		defer C.free(unsafe.Pointer(cConfig))
	}
	return foreign(C.strata_open(cPath, cConfig))
}

// OpenMemory calls strata_open_memory.
func (native) OpenMemory() ForeignString {
	return foreign(C.strata_open_memory())
}

// Close calls strata_close.
func (native) Close(h Handle) {
	C.strata_close(C.uint64_t(h))
}

// Execute calls strata_execute.
func (native) Execute(h Handle, command string) ForeignString {
	cCmd := C.CString(command)
	defer C.free(unsafe.Pointer(cCmd))
	return foreign(C.strata_execute(C.uint64_t(h), cCmd))
}

// Copy reads a NUL-terminated foreign string into Go memory.
func (native) Copy(s ForeignString) string {
	return C.GoString((*C.char)(unsafe.Pointer(s)))
}

// Free calls strata_free_string.
func (native) Free(s ForeignString) {
	C.strata_free_string((*C.char)(unsafe.Pointer(s)))
}

func foreign(p *C.char) ForeignString {
	return ForeignString(unsafe.Pointer(p))
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !cgo || !strata

package ffi

// Native returns ErrNativeUnavailable in builds without the native bridge.
func Native() (Library, error) {
	return nil, ErrNativeUnavailable
}

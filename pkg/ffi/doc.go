// Copyright 2026 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ffi binds the six C functions exported by the Strata bridge
// library (libstrata_foundry_bridge).
//
// Every complex value crosses the boundary as a NUL-terminated JSON string.
// Strings returned by the library are owned by the library and must be
// released with strata_free_string exactly once; TakeString is the only
// place in this module that reads and releases them.
//
// # Requirements
//
// The native binding requires CGO and the bridge library. Build with:
//
//	CGO_ENABLED=1 go build -tags strata
//
// You may need to set library paths:
//
//	export CGO_LDFLAGS="-L/path/to/strata-foundry-bridge/target/release"
//
// Without the strata build tag, Native returns ErrNativeUnavailable and the
// rest of the module can still be built and tested against any Library
// implementation (see internal/testing.FakeEngine).
//
// # Functions
//
//	strata_ping()                          -> {"ok":"strata-foundry-bridge"}
//	strata_open(path, config_json|NULL)    -> {"ok":<handle>} | {"error":...}
//	strata_open_memory()                   -> {"ok":<handle>} | {"error":...}
//	strata_close(handle)                   -> (nothing)
//	strata_execute(handle, command_json)   -> <Output> | {"error":...}
//	strata_free_string(ptr)                -> (nothing)
//
// Handles are plain integers starting at 1. The library is not assumed to
// be safe for concurrent use; callers serialize access (see pkg/bridge).
package ffi

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

// Package bootstrap opens a Strata database from a foundry config.
//
// Open loads the native bridge, starts a transport, opens the configured
// database and returns the client and service façades over it:
//
//	cfg, err := config.LoadConfig("")
//	if err != nil {
//	    return err
//	}
//	db, err := bootstrap.Open(ctx, cfg, nil, logger)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	version, err := db.Services.KV.Put(ctx, "user:alice", value.String("Alice"))
//
// # Persistent and in-memory databases
//
// With database.in_memory set, the database lives only as long as the
// transport. Otherwise database.path is created if needed (unless the
// database is opened read-only) and database.options are sent as the open
// config. Zero options send no config at all, so the engine picks its own
// defaults.
//
// # Testing
//
// Passing a non-nil ffi.Library replaces the native bridge. Tests pass the
// fake engine from internal/testing.
package bootstrap

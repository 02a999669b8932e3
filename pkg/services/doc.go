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

// Package services exposes one typed façade per Strata primitive.
//
// Every method issues exactly one command through a bridge.Client and
// unwraps the single output variant that command produces. Any other
// variant is a bridge.KindInvalidResponse error naming both. The façades
// hold no state besides the client and do no retries, caching or
// validation.
//
// Branch, space and as-of scoping is passed as functional options:
//
//	set := services.New(client)
//	v, err := set.KV.Put(ctx, "user:alice", value.String("admin"),
//	    services.WithBranch("staging"), services.WithSpace("users"))
//
// Options a command cannot carry are ignored; graph and space commands
// take only a branch, and as-of applies only to reads.
package services

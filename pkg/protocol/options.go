// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"
	"fmt"
)

// AccessMode controls whether a database is opened for writing.
type AccessMode string

const (
	AccessReadWrite AccessMode = "read_write"
	AccessReadOnly  AccessMode = "read_only"
)

// Durability selects the WAL sync policy.
type Durability string

const (
	DurabilityStandard Durability = "standard"
	DurabilityAlways   Durability = "always"
)

// OpenOptions is the optional configuration passed to open. Every field is
// optional; a zero OpenOptions selects engine defaults.
type OpenOptions struct {
	AccessMode     AccessMode `json:"access_mode,omitempty" yaml:"access_mode,omitempty"`
	AutoEmbed      *bool      `json:"auto_embed,omitempty" yaml:"auto_embed,omitempty"`
	Durability     Durability `json:"durability,omitempty" yaml:"durability,omitempty"`
	ModelEndpoint  *string    `json:"model_endpoint,omitempty" yaml:"model_endpoint,omitempty"`
	ModelName      *string    `json:"model_name,omitempty" yaml:"model_name,omitempty"`
	ModelAPIKey    *string    `json:"model_api_key,omitempty" yaml:"model_api_key,omitempty"`
	ModelTimeoutMS *uint64    `json:"model_timeout_ms,omitempty" yaml:"model_timeout_ms,omitempty"`
	EmbedBatchSize *uint64    `json:"embed_batch_size,omitempty" yaml:"embed_batch_size,omitempty"`
}

// Validate rejects enum values the engine does not accept.
func (o *OpenOptions) Validate() error {
	if o == nil {
		return nil
	}
	switch o.AccessMode {
	case "", AccessReadWrite, AccessReadOnly:
	default:
		return fmt.Errorf("invalid access_mode %q (want %q or %q)", o.AccessMode, AccessReadWrite, AccessReadOnly)
	}
	switch o.Durability {
	case "", DurabilityStandard, DurabilityAlways:
	default:
		return fmt.Errorf("invalid durability %q (want %q or %q)", o.Durability, DurabilityStandard, DurabilityAlways)
	}
	return nil
}

// IsZero reports whether no option is set.
func (o *OpenOptions) IsZero() bool {
	return o == nil || *o == OpenOptions{}
}

// ConfigJSON returns the JSON passed as the open call's config argument, or
// nil when the engine defaults should be used (a NULL config pointer). It
// does not validate; the engine rejects bad values itself.
func (o *OpenOptions) ConfigJSON() (*string, error) {
	if o.IsZero() {
		return nil, nil
	}
	data, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("encode open options: %w", err)
	}
	s := string(data)
	return &s, nil
}

// Ptr returns a pointer to v. It is shorthand for optional command fields.
func Ptr[T any](v T) *T {
	return &v
}

// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"context"
	"fmt"

	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

// Client encodes commands, sends them through a Transport and decodes the
// replies into outputs. It does not know which output a command should
// produce; use Expect for that.
type Client struct {
	transport *Transport
}

// NewClient returns a Client over t.
func NewClient(t *Transport) *Client {
	return &Client{transport: t}
}

// Transport returns the underlying transport.
func (c *Client) Transport() *Transport {
	return c.transport
}

// Execute runs cmd and returns whatever output the engine produced.
func (c *Client) Execute(ctx context.Context, cmd protocol.Command) (protocol.Output, error) {
	out, _, err := c.execute(ctx, cmd)
	return out, err
}

func (c *Client) execute(ctx context.Context, cmd protocol.Command) (protocol.Output, string, error) {
	payload, err := protocol.EncodeCommand(cmd)
	if err != nil {
		return nil, "", err
	}
	op := "execute " + cmd.Variant()

	raw, err := c.transport.ExecuteRaw(ctx, string(payload))
	if err != nil {
		return nil, "", withOp(err, op)
	}
	out, err := DecodeReply(raw)
	if err != nil {
		return nil, raw, withOp(err, op)
	}
	return out, raw, nil
}

// ExecuteJSON sends a command given as JSON text, unchecked, and decodes
// the reply.
func (c *Client) ExecuteJSON(ctx context.Context, command string) (protocol.Output, error) {
	raw, err := c.transport.ExecuteRaw(ctx, command)
	if err != nil {
		return nil, withOp(err, "execute")
	}
	out, err := DecodeReply(raw)
	if err != nil {
		return nil, withOp(err, "execute")
	}
	return out, nil
}

// DecodeReply classifies a raw execute reply. An {"error": ...} envelope
// becomes a KindBridge error; an {"ok": ...} envelope is unwrapped; the body
// must then decode as an Output or the result is KindInvalidResponse.
func DecodeReply(raw string) (protocol.Output, error) {
	body := []byte(raw)
	if env, ok := protocol.ParseEnvelope(body); ok {
		if env.IsError() {
			return nil, newBridgeError("", env.Error)
		}
		body = env.OK
	}
	out, err := protocol.DecodeOutput(body)
	if err != nil {
		return nil, newInvalidResponse("", raw, err)
	}
	return out, nil
}

// Expect runs cmd and returns its output as a T. Any other output variant
// is a KindInvalidResponse error naming both variants.
func Expect[T protocol.Output](ctx context.Context, c *Client, cmd protocol.Command) (T, error) {
	var zero T
	if c == nil {
		return zero, fmt.Errorf("execute %s: nil client", cmd.Variant())
	}
	out, raw, err := c.execute(ctx, cmd)
	if err != nil {
		return zero, err
	}
	got, ok := out.(T)
	if !ok {
		return zero, newVariantMismatch("execute "+cmd.Variant(), zero.Variant(), out.Variant(), raw)
	}
	return got, nil
}

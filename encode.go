// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package bendybutt

import (
	"fmt"
)

// Codec binds the message transform to a FieldCodec. The zero value is
// not usable, construct it with NewCodec.
type Codec struct {
	fields FieldCodec
}

// NewCodec returns a codec that runs every field through f.
func NewCodec(f FieldCodec) *Codec {
	return &Codec{fields: f}
}

// StandardCodec encodes and decodes with StandardFields. The package
// level Encode and Decode go through it.
var StandardCodec = NewCodec(StandardFields)

// Encode turns a decoded message into its canonical wire bytes.
func Encode(msg *Message) ([]byte, error) {
	return StandardCodec.Encode(msg)
}

// Encode turns a decoded message into its canonical wire bytes. The
// output is deterministic: the same message always yields the same
// bytes. Any field that fails its tagged conversion aborts the whole
// encode.
func (c *Codec) Encode(msg *Message) ([]byte, error) {
	var content wireContent
	switch v := msg.Content.(type) {
	case PrivateContent:
		box, err := c.fields.EncodeBox(string(v))
		if err != nil {
			return nil, fmt.Errorf("bendybutt: encode content: %w", err)
		}
		content = wireContent{kind: kindPrivate, box: box}
	case FeedContent:
		announcement, err := c.fields.EncodeAnnouncement(v.Announcement)
		if err != nil {
			return nil, fmt.Errorf("bendybutt: encode content: %w", err)
		}
		sig, err := c.fields.EncodeSignature(v.Signature)
		if err != nil {
			return nil, fmt.Errorf("bendybutt: encode content: %w", err)
		}
		content = wireContent{kind: kindFeed, announcement: announcement, signature: sig}
	case nil:
		return nil, fmt.Errorf("%w: message without content", ErrShapeMismatch)
	default:
		return nil, fmt.Errorf("%w: unhandled content variant %T", ErrShapeMismatch, v)
	}

	author, err := c.fields.EncodeFeed(msg.Author)
	if err != nil {
		return nil, fmt.Errorf("bendybutt: encode author: %w", err)
	}
	previous, err := c.fields.EncodeMessage(msg.Previous)
	if err != nil {
		return nil, fmt.Errorf("bendybutt: encode previous: %w", err)
	}
	signature, err := c.fields.EncodeSignature(msg.Signature)
	if err != nil {
		return nil, fmt.Errorf("bendybutt: encode signature: %w", err)
	}

	wm := wireMessage{
		payload: wirePayload{
			author:    author,
			sequence:  msg.Sequence,
			previous:  previous,
			timestamp: msg.Timestamp,
			content:   content,
		},
		signature: signature,
	}
	return wm.MarshalBencode()
}

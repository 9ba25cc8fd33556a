// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package bendybutt

import (
	"fmt"
)

// Decode parses canonical wire bytes back into a decoded message.
func Decode(data []byte) (*Message, error) {
	return StandardCodec.Decode(data)
}

// Decode parses canonical wire bytes back into a decoded message. It
// is the exact inverse of Encode: for every message m that Encode
// accepts, Decode(Encode(m)) returns m again, suffixes included. A
// container of the wrong shape, an unknown tag or a value that cannot
// be projected back into its string form fail the whole decode.
func (c *Codec) Decode(data []byte) (*Message, error) {
	var wm wireMessage
	if err := wm.UnmarshalBencode(data); err != nil {
		return nil, fmt.Errorf("bendybutt: decode: %w", err)
	}

	author, err := c.fields.DecodeFeed(wm.payload.author)
	if err != nil {
		return nil, fmt.Errorf("bendybutt: decode author: %w", err)
	}
	previous, err := c.fields.DecodeMessage(wm.payload.previous)
	if err != nil {
		return nil, fmt.Errorf("bendybutt: decode previous: %w", err)
	}
	signature, err := c.fields.DecodeSignature(wm.signature)
	if err != nil {
		return nil, fmt.Errorf("bendybutt: decode signature: %w", err)
	}

	var content Content
	switch wm.payload.content.kind {
	case kindPrivate:
		box, err := c.fields.DecodeBox(wm.payload.content.box)
		if err != nil {
			return nil, fmt.Errorf("bendybutt: decode content: %w", err)
		}
		content = PrivateContent(box)
	case kindFeed:
		announcement, err := c.fields.DecodeAnnouncement(wm.payload.content.announcement)
		if err != nil {
			return nil, fmt.Errorf("bendybutt: decode content: %w", err)
		}
		sig, err := c.fields.DecodeSignature(wm.payload.content.signature)
		if err != nil {
			return nil, fmt.Errorf("bendybutt: decode content: %w", err)
		}
		content = FeedContent{Announcement: announcement, Signature: sig}
	default:
		return nil, fmt.Errorf("%w: unhandled content variant %d", ErrShapeMismatch, wm.payload.content.kind)
	}

	return &Message{
		Previous:  previous,
		Author:    author,
		Sequence:  wm.payload.sequence,
		Timestamp: wm.payload.timestamp,
		Signature: signature,
		Content:   content,
	}, nil
}

// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package bendybutt implements the message codec for the bendy butt
// meta feed format. It converts between the decoded representation of
// a message (reference strings, sequence, timestamp, signature and
// content) and the canonical bencoded wire bytes, where every
// reference, signature and ciphertext travels in its tagged binary
// form.
//
// The package only transforms representations. It does not verify
// signatures, decrypt boxed content or check feed consistency; that is
// the job of whoever feeds it messages.
package bendybutt

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Message is the decoded form of a single bendy butt message.
//
// Previous and Author are reference strings with their usual suffixes
// (%...bbmsg-v1 and @...bbfeed-v1). An empty Previous marks the first
// message of a feed. Signature is the detached signature over the
// payload in its .sig.ed25519 form.
type Message struct {
	Previous  string
	Author    string
	Sequence  int32
	Timestamp int64
	Signature string
	Content   Content
}

// Content is the closed set of message content variants. The two
// implementations are PrivateContent and FeedContent.
type Content interface {
	contentKind() contentKind
}

type contentKind uint8

const (
	kindPrivate contentKind = iota + 1
	kindFeed
)

// PrivateContent is an encrypted (boxed) message body. The string
// carries the base64 ciphertext plus the suffix naming its box scheme
// (.box or .box2).
type PrivateContent string

func (PrivateContent) contentKind() contentKind { return kindPrivate }

// FeedContent announces a subfeed under a meta feed, together with the
// signature of the subfeed's keypair over the announcement.
type FeedContent struct {
	Announcement FeedAnnouncement `json:"announcement"`
	Signature    string           `json:"signature"`
}

func (FeedContent) contentKind() contentKind { return kindFeed }

// FeedAnnouncement is the payload of a FeedContent message, linking a
// subfeed to its meta feed.
type FeedAnnouncement struct {
	Type     string `json:"type"`
	Subfeed  string `json:"subfeed"`
	Metafeed string `json:"metafeed"`
	Nonce    string `json:"nonce"`
}

type messageJSON struct {
	Previous  string          `json:"previous"`
	Author    string          `json:"author"`
	Sequence  int32           `json:"sequence"`
	Timestamp int64           `json:"timestamp"`
	Signature string          `json:"signature"`
	Content   json.RawMessage `json:"content"`
}

// MarshalJSON renders the decoded message with the usual lowercase
// field names. Private content becomes a plain string, feed content an
// object with announcement and signature.
func (msg Message) MarshalJSON() ([]byte, error) {
	content, err := json.Marshal(msg.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(messageJSON{
		Previous:  msg.Previous,
		Author:    msg.Author,
		Sequence:  msg.Sequence,
		Timestamp: msg.Timestamp,
		Signature: msg.Signature,
		Content:   content,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON. The content variant is
// picked by shape: a JSON string is private content, an object is a
// feed announcement.
func (msg *Message) UnmarshalJSON(data []byte) error {
	var mj messageJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return err
	}

	content := bytes.TrimSpace(mj.Content)
	if len(content) == 0 || bytes.Equal(content, []byte("null")) {
		return fmt.Errorf("bendybutt: message without content")
	}

	switch content[0] {
	case '"':
		var boxed string
		if err := json.Unmarshal(content, &boxed); err != nil {
			return err
		}
		msg.Content = PrivateContent(boxed)
	case '{':
		var fc FeedContent
		if err := json.Unmarshal(content, &fc); err != nil {
			return err
		}
		msg.Content = fc
	default:
		return fmt.Errorf("bendybutt: unhandled content shape in JSON")
	}

	msg.Previous = mj.Previous
	msg.Author = mj.Author
	msg.Sequence = mj.Sequence
	msg.Timestamp = mj.Timestamp
	msg.Signature = mj.Signature
	return nil
}

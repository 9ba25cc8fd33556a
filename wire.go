// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package bendybutt

import (
	"fmt"

	"github.com/zeebo/bencode"
)

// The wire form is three nested fixed-arity lists:
//
//	[ [ author, sequence, previous, timestamp, content ], signature ]
//
// with content either [ box ] or [ announcement, signature ]. Each
// level is its own struct so the field order is fixed by code, not by
// the call sites.

type wireMessage struct {
	payload   wirePayload
	signature []byte
}

func (wm wireMessage) MarshalBencode() ([]byte, error) {
	return bencode.EncodeBytes([]interface{}{wm.payload, wm.signature})
}

func (wm *wireMessage) UnmarshalBencode(input []byte) error {
	var raw []bencode.RawMessage
	if err := bencode.DecodeBytes(input, &raw); err != nil {
		return fmt.Errorf("%w: outer container: %v", ErrShapeMismatch, err)
	}
	if n := len(raw); n != 2 {
		return fmt.Errorf("%w: wanted [payload, signature], got %d elements", ErrShapeMismatch, n)
	}
	if err := bencode.DecodeBytes(raw[0], &wm.payload); err != nil {
		return asShapeErr("payload", err)
	}
	if err := bencode.DecodeBytes(raw[1], &wm.signature); err != nil {
		return fmt.Errorf("%w: signature: %v", ErrShapeMismatch, err)
	}
	return nil
}

type wirePayload struct {
	author    []byte
	sequence  int32
	previous  []byte
	timestamp int64
	content   wireContent
}

func (wp wirePayload) MarshalBencode() ([]byte, error) {
	return bencode.EncodeBytes([]interface{}{
		wp.author,
		wp.sequence,
		wp.previous,
		wp.timestamp,
		wp.content,
	})
}

func (wp *wirePayload) UnmarshalBencode(input []byte) error {
	var raw []bencode.RawMessage
	if err := bencode.DecodeBytes(input, &raw); err != nil {
		return fmt.Errorf("%w: payload container: %v", ErrShapeMismatch, err)
	}
	if n := len(raw); n != 5 {
		return fmt.Errorf("%w: wanted [author, sequence, previous, timestamp, content], got %d elements", ErrShapeMismatch, n)
	}
	if err := bencode.DecodeBytes(raw[0], &wp.author); err != nil {
		return fmt.Errorf("%w: author: %v", ErrShapeMismatch, err)
	}
	if err := bencode.DecodeBytes(raw[1], &wp.sequence); err != nil {
		return fmt.Errorf("%w: sequence: %v", ErrShapeMismatch, err)
	}
	if err := bencode.DecodeBytes(raw[2], &wp.previous); err != nil {
		return fmt.Errorf("%w: previous: %v", ErrShapeMismatch, err)
	}
	if err := bencode.DecodeBytes(raw[3], &wp.timestamp); err != nil {
		return fmt.Errorf("%w: timestamp: %v", ErrShapeMismatch, err)
	}
	if err := bencode.DecodeBytes(raw[4], &wp.content); err != nil {
		return asShapeErr("content", err)
	}
	return nil
}

type wireContent struct {
	kind contentKind

	box []byte // kindPrivate

	announcement []byte // kindFeed
	signature    []byte // kindFeed
}

func (wc wireContent) MarshalBencode() ([]byte, error) {
	switch wc.kind {
	case kindPrivate:
		return bencode.EncodeBytes([]interface{}{wc.box})
	case kindFeed:
		return bencode.EncodeBytes([]interface{}{wc.announcement, wc.signature})
	default:
		return nil, fmt.Errorf("%w: unhandled content variant %d", ErrShapeMismatch, wc.kind)
	}
}

func (wc *wireContent) UnmarshalBencode(input []byte) error {
	var raw []bencode.RawMessage
	if err := bencode.DecodeBytes(input, &raw); err != nil {
		return fmt.Errorf("%w: content container: %v", ErrShapeMismatch, err)
	}
	switch len(raw) {
	case 1:
		wc.kind = kindPrivate
		if err := bencode.DecodeBytes(raw[0], &wc.box); err != nil {
			return fmt.Errorf("%w: boxed content: %v", ErrShapeMismatch, err)
		}
	case 2:
		wc.kind = kindFeed
		if err := bencode.DecodeBytes(raw[0], &wc.announcement); err != nil {
			return fmt.Errorf("%w: announcement: %v", ErrShapeMismatch, err)
		}
		if err := bencode.DecodeBytes(raw[1], &wc.signature); err != nil {
			return fmt.Errorf("%w: content signature: %v", ErrShapeMismatch, err)
		}
	default:
		return fmt.Errorf("%w: wanted 1 or 2 content elements, got %d", ErrShapeMismatch, len(raw))
	}
	return nil
}

// asShapeErr keeps already classified errors from nested levels as
// they are and folds raw bencode errors into ErrShapeMismatch.
func asShapeErr(what string, err error) error {
	if isCodecError(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrShapeMismatch, what, err)
}

// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package bendybutt

import (
	"fmt"

	"github.com/zeebo/bencode"
	refs "go.mindeco.de/ssb-refs"
	"go.mindeco.de/ssb-refs/tfk"

	"go.cryptoscope.co/bendybutt/internal/bfe"
)

// FieldCodec converts single message fields between their external
// string form and the tagged binary form used on the wire. The codec
// core goes through this interface for every field, so tests can swap
// in a fake and the tag table stays a collaborator, not a hardcoded
// part of the transform.
type FieldCodec interface {
	EncodeFeed(ref string) ([]byte, error)
	DecodeFeed(data []byte) (string, error)

	EncodeMessage(ref string) ([]byte, error)
	DecodeMessage(data []byte) (string, error)

	EncodeSignature(sig string) ([]byte, error)
	DecodeSignature(data []byte) (string, error)

	EncodeBox(ciphertext string) ([]byte, error)
	DecodeBox(data []byte) (string, error)

	EncodeAnnouncement(a FeedAnnouncement) ([]byte, error)
	DecodeAnnouncement(data []byte) (FeedAnnouncement, error)
}

// StandardFields is the production FieldCodec: references through
// ssb-refs and its tfk encoding, everything else through the bfe
// primitives.
var StandardFields FieldCodec = stdFields{}

type stdFields struct{}

func (stdFields) EncodeFeed(ref string) ([]byte, error) {
	fr, err := refs.ParseFeedRef(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: feed: %v", ErrSuffixMismatch, err)
	}
	f, err := tfk.FeedFromRef(fr)
	if err != nil {
		return nil, fmt.Errorf("%w: feed: %v", ErrSuffixMismatch, err)
	}
	return f.MarshalBinary()
}

func (stdFields) DecodeFeed(data []byte) (string, error) {
	var f tfk.Feed
	if err := f.UnmarshalBinary(data); err != nil {
		return "", fmt.Errorf("%w: feed: %v", ErrUnknownTag, err)
	}
	fr, err := f.Feed()
	if err != nil {
		return "", fmt.Errorf("%w: feed: %v", ErrProjectionFailure, err)
	}
	return fr.Ref(), nil
}

// EncodeMessage also handles the first-message sentinel: an empty
// reference becomes the tagged nil value.
func (stdFields) EncodeMessage(ref string) ([]byte, error) {
	if ref == "" {
		return bfe.Nil(), nil
	}
	mr, err := refs.ParseMessageRef(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: message: %v", ErrSuffixMismatch, err)
	}
	m, err := tfk.MessageFromRef(mr)
	if err != nil {
		return nil, fmt.Errorf("%w: message: %v", ErrSuffixMismatch, err)
	}
	return m.MarshalBinary()
}

func (stdFields) DecodeMessage(data []byte) (string, error) {
	if bfe.IsNil(data) {
		return "", nil
	}
	var m tfk.Message
	if err := m.UnmarshalBinary(data); err != nil {
		return "", fmt.Errorf("%w: message: %v", ErrUnknownTag, err)
	}
	mr, err := m.Message()
	if err != nil {
		return "", fmt.Errorf("%w: message: %v", ErrProjectionFailure, err)
	}
	return mr.Ref(), nil
}

func (stdFields) EncodeSignature(sig string) ([]byte, error) {
	data, err := bfe.EncodeSignature(sig)
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %v", ErrSuffixMismatch, err)
	}
	return data, nil
}

func (stdFields) DecodeSignature(data []byte) (string, error) {
	sig, err := bfe.DecodeSignature(data)
	if err != nil {
		return "", fmt.Errorf("%w: signature: %v", ErrUnknownTag, err)
	}
	return sig, nil
}

func (stdFields) EncodeBox(ciphertext string) ([]byte, error) {
	data, err := bfe.EncodeBox(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: boxed content: %v", ErrSuffixMismatch, err)
	}
	return data, nil
}

func (stdFields) DecodeBox(data []byte) (string, error) {
	ciphertext, err := bfe.DecodeBox(data)
	if err != nil {
		return "", fmt.Errorf("%w: boxed content: %v", ErrUnknownTag, err)
	}
	return ciphertext, nil
}

// EncodeAnnouncement bencodes the announcement as a dict of tagged
// values and wraps the result in a single tagged blob, so it travels
// through the container like any other field.
func (c stdFields) EncodeAnnouncement(a FeedAnnouncement) ([]byte, error) {
	subfeed, err := c.EncodeFeed(a.Subfeed)
	if err != nil {
		return nil, fmt.Errorf("announcement subfeed: %w", err)
	}
	metafeed, err := c.EncodeFeed(a.Metafeed)
	if err != nil {
		return nil, fmt.Errorf("announcement metafeed: %w", err)
	}
	inner, err := bencode.EncodeBytes(map[string][]byte{
		"type":     bfe.EncodeString(a.Type),
		"subfeed":  subfeed,
		"metafeed": metafeed,
		"nonce":    bfe.EncodeString(a.Nonce),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: announcement: %v", ErrProjectionFailure, err)
	}
	return bfe.EncodeBytes(inner), nil
}

func (c stdFields) DecodeAnnouncement(data []byte) (FeedAnnouncement, error) {
	var a FeedAnnouncement

	inner, err := bfe.DecodeBytes(data)
	if err != nil {
		return a, fmt.Errorf("%w: announcement: %v", ErrUnknownTag, err)
	}
	var dict map[string][]byte
	if err := bencode.DecodeBytes(inner, &dict); err != nil {
		return a, fmt.Errorf("%w: announcement: %v", ErrProjectionFailure, err)
	}

	for _, key := range []string{"type", "subfeed", "metafeed", "nonce"} {
		if _, has := dict[key]; !has {
			return a, fmt.Errorf("%w: announcement without %s", ErrProjectionFailure, key)
		}
	}

	if a.Type, err = bfe.DecodeString(dict["type"]); err != nil {
		return a, fmt.Errorf("%w: announcement type: %v", ErrProjectionFailure, err)
	}
	if a.Subfeed, err = c.DecodeFeed(dict["subfeed"]); err != nil {
		return a, fmt.Errorf("announcement subfeed: %w", err)
	}
	if a.Metafeed, err = c.DecodeFeed(dict["metafeed"]); err != nil {
		return a, fmt.Errorf("announcement metafeed: %w", err)
	}
	if a.Nonce, err = bfe.DecodeString(dict["nonce"]); err != nil {
		return a, fmt.Errorf("%w: announcement nonce: %v", ErrProjectionFailure, err)
	}
	return a, nil
}

// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package bendybutt

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go.cryptoscope.co/bendybutt/internal/bfe"
)

// prefixFields is a FieldCodec stand-in that tags every field with a
// readable prefix instead of real type-format bytes. It lets the
// transform tests run without the tfk tag table and proves the core
// never converts a field on its own.
type prefixFields struct{}

func (prefixFields) encode(prefix, s string) ([]byte, error) {
	return []byte(prefix + s), nil
}

func (prefixFields) decode(prefix string, data []byte) (string, error) {
	if !bytes.HasPrefix(data, []byte(prefix)) {
		return "", fmt.Errorf("%w: fake: wanted prefix %q", ErrUnknownTag, prefix)
	}
	return string(data[len(prefix):]), nil
}

func (f prefixFields) EncodeFeed(ref string) ([]byte, error) { return f.encode("feed:", ref) }
func (f prefixFields) DecodeFeed(d []byte) (string, error)   { return f.decode("feed:", d) }

func (f prefixFields) EncodeMessage(ref string) ([]byte, error) { return f.encode("msg:", ref) }
func (f prefixFields) DecodeMessage(d []byte) (string, error)   { return f.decode("msg:", d) }

func (f prefixFields) EncodeSignature(sig string) ([]byte, error) { return f.encode("sig:", sig) }
func (f prefixFields) DecodeSignature(d []byte) (string, error)   { return f.decode("sig:", d) }

func (f prefixFields) EncodeBox(c string) ([]byte, error) { return f.encode("box:", c) }
func (f prefixFields) DecodeBox(d []byte) (string, error) { return f.decode("box:", d) }

func (f prefixFields) EncodeAnnouncement(a FeedAnnouncement) ([]byte, error) {
	return f.encode("ann:", strings.Join([]string{a.Type, a.Subfeed, a.Metafeed, a.Nonce}, "|"))
}

func (f prefixFields) DecodeAnnouncement(data []byte) (FeedAnnouncement, error) {
	var a FeedAnnouncement
	joined, err := f.decode("ann:", data)
	if err != nil {
		return a, err
	}
	parts := strings.Split(joined, "|")
	if len(parts) != 4 {
		return a, fmt.Errorf("%w: fake: wanted 4 announcement fields, got %d", ErrProjectionFailure, len(parts))
	}
	a.Type, a.Subfeed, a.Metafeed, a.Nonce = parts[0], parts[1], parts[2], parts[3]
	return a, nil
}

func TestCodecGoesThroughFieldCodec(t *testing.T) {
	r := require.New(t)

	codec := NewCodec(prefixFields{})

	msg := &Message{
		Previous:  "some previous",
		Author:    "some author",
		Sequence:  7,
		Timestamp: 1234,
		Signature: "some signature",
		Content: FeedContent{
			Announcement: FeedAnnouncement{
				Type:     "metafeed/add",
				Subfeed:  "sub",
				Metafeed: "meta",
				Nonce:    "nonce",
			},
			Signature: "content signature",
		},
	}

	wire, err := codec.Encode(msg)
	r.NoError(err)

	// every field went through the collaborator
	r.True(bytes.Contains(wire, []byte("feed:some author")))
	r.True(bytes.Contains(wire, []byte("msg:some previous")))
	r.True(bytes.Contains(wire, []byte("sig:some signature")))
	r.True(bytes.Contains(wire, []byte("ann:metafeed/add|sub|meta|nonce")))
	r.True(bytes.Contains(wire, []byte("sig:content signature")))

	decoded, err := codec.Decode(wire)
	r.NoError(err)
	r.Equal(msg, decoded)
}

func TestStandardFieldsRefs(t *testing.T) {
	r := require.New(t)

	data, err := StandardFields.EncodeFeed(testFeedRef)
	r.NoError(err)
	back, err := StandardFields.DecodeFeed(data)
	r.NoError(err)
	r.Equal(testFeedRef, back)

	data, err = StandardFields.EncodeMessage(testMsgRef)
	r.NoError(err)
	back, err = StandardFields.DecodeMessage(data)
	r.NoError(err)
	r.Equal(testMsgRef, back)

	// classic refs keep their own suffix through the round trip
	classic := "@" + strings.Repeat("A", 43) + "=.ed25519"
	data, err = StandardFields.EncodeFeed(classic)
	r.NoError(err)
	back, err = StandardFields.DecodeFeed(data)
	r.NoError(err)
	r.Equal(classic, back)
}

func TestStandardFieldsClassifyDecodeErrors(t *testing.T) {
	r := require.New(t)

	// signature tag where a box belongs
	sigBytes, err := StandardFields.EncodeSignature(testSig)
	r.NoError(err)
	_, err = StandardFields.DecodeBox(sigBytes)
	r.ErrorIs(err, ErrUnknownTag)

	// box tag where an announcement blob belongs
	boxBytes := append([]byte{bfe.TypeEncrypted, bfe.FormatEncryptedBox2}, 0xaa, 0xbb)
	_, err = StandardFields.DecodeAnnouncement(boxBytes)
	r.ErrorIs(err, ErrUnknownTag)

	// announcement blob with a missing key
	blob := bfe.EncodeBytes([]byte("d4:type12:metafeed/adde")) // no subfeed/metafeed/nonce
	_, err = StandardFields.DecodeAnnouncement(blob)
	r.ErrorIs(err, ErrProjectionFailure)

	_, err = StandardFields.DecodeFeed([]byte{0xff, 0xff, 0x00})
	r.ErrorIs(err, ErrUnknownTag)

	_, err = StandardFields.DecodeSignature([]byte{0x04})
	r.ErrorIs(err, ErrUnknownTag)
}

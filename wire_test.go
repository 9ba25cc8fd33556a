// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package bendybutt

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/bencode"
)

func TestDecodeRejectsMalformedContainers(t *testing.T) {
	mustBencode := func(v interface{}) []byte {
		data, err := bencode.EncodeBytes(v)
		require.NoError(t, err)
		return data
	}

	validWire, err := Encode(exampleFeedMessage())
	require.NoError(t, err)

	cases := []struct {
		name  string
		input []byte
	}{
		{"empty input", []byte{}},
		{"not bencode", []byte("hello, world")},
		{"bare integer", []byte("i42e")},
		{"truncated message", validWire[:len(validWire)/2]},
		{"outer list too short", mustBencode([]interface{}{[]byte("x")})},
		{"outer list too long", mustBencode([]interface{}{[]byte("a"), []byte("b"), []byte("c")})},
		{"payload not a list", mustBencode([]interface{}{int64(7), []byte("sig")})},
		{"payload arity wrong", mustBencode([]interface{}{
			[]interface{}{[]byte("author"), int64(1)},
			[]byte("sig"),
		})},
		{"sequence not an integer", mustBencode([]interface{}{
			[]interface{}{[]byte("a"), []byte("not-an-int"), []byte("p"), int64(1), []interface{}{[]byte("c")}},
			[]byte("sig"),
		})},
		{"content arity wrong", mustBencode([]interface{}{
			[]interface{}{[]byte("a"), int64(2), []byte("p"), int64(1), []interface{}{[]byte("x"), []byte("y"), []byte("z")}},
			[]byte("sig"),
		})},
		{"content a dict", mustBencode([]interface{}{
			[]interface{}{[]byte("a"), int64(2), []byte("p"), int64(1), map[string][]byte{"box": []byte("x")}},
			[]byte("sig"),
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := Decode(tc.input)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrShapeMismatch)
			require.Nil(t, msg, "no partial message on failure")
		})
	}
}

func TestWireContentRejectsUnsetVariant(t *testing.T) {
	r := require.New(t)

	var wc wireContent
	_, err := wc.MarshalBencode()
	r.ErrorIs(err, ErrShapeMismatch)
}

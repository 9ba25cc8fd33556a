// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package bfe holds the binary field encoding primitives the codec
// needs beyond what ssb-refs' tfk package offers. tfk stops at feed,
// message and blob references; signatures, boxed ciphertext and the
// generic string/bytes/nil values are encoded here.
//
// Every value is two tag bytes (type, format) followed by the raw
// payload.
package bfe

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Type bytes. Feed, Message and Blob match tfk's Type* constants and
// are listed for completeness; this package only emits the last three.
const (
	TypeFeed uint8 = iota
	TypeMessage
	TypeBlob
	TypeEncryptionKey
	TypeSignature
	TypeEncrypted
	TypeGeneric
)

const (
	FormatSignatureEd25519 uint8 = 0x00

	FormatEncryptedBox1 uint8 = 0x00
	FormatEncryptedBox2 uint8 = 0x01

	FormatGenericString uint8 = 0x00
	FormatGenericBytes  uint8 = 0x01
	FormatGenericNil    uint8 = 0x02
	FormatGenericBool   uint8 = 0x03
)

const (
	suffixSignature = ".sig.ed25519"
	suffixBox1      = ".box"
	suffixBox2      = ".box2"
)

var (
	ErrTooShort    = errors.New("bfe: value too short for a type-format tag")
	ErrUnknownTag  = errors.New("bfe: unknown type-format tag")
	ErrWrongSuffix = errors.New("bfe: string does not carry the expected suffix")
)

func tagged(tipe, format uint8, payload []byte) []byte {
	out := make([]byte, 2, 2+len(payload))
	out[0], out[1] = tipe, format
	return append(out, payload...)
}

func untag(data []byte, tipe, format uint8) ([]byte, error) {
	if len(data) < 2 {
		return nil, ErrTooShort
	}
	if data[0] != tipe || data[1] != format {
		return nil, fmt.Errorf("%w: %x-%x", ErrUnknownTag, data[0], data[1])
	}
	return data[2:], nil
}

// EncodeSignature turns a .sig.ed25519 string into its tagged form.
func EncodeSignature(s string) ([]byte, error) {
	if !strings.HasSuffix(s, suffixSignature) {
		return nil, fmt.Errorf("%w: wanted %s", ErrWrongSuffix, suffixSignature)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSuffix(s, suffixSignature))
	if err != nil {
		return nil, fmt.Errorf("bfe: bad signature base64: %w", err)
	}
	return tagged(TypeSignature, FormatSignatureEd25519, raw), nil
}

// DecodeSignature is the inverse of EncodeSignature.
func DecodeSignature(data []byte) (string, error) {
	raw, err := untag(data, TypeSignature, FormatSignatureEd25519)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw) + suffixSignature, nil
}

// EncodeBox turns boxed ciphertext (.box or .box2 suffixed base64)
// into its tagged form. The suffix picks the encrypted format byte.
func EncodeBox(s string) ([]byte, error) {
	var format uint8
	var body string
	switch {
	case strings.HasSuffix(s, suffixBox2):
		format = FormatEncryptedBox2
		body = strings.TrimSuffix(s, suffixBox2)
	case strings.HasSuffix(s, suffixBox1):
		format = FormatEncryptedBox1
		body = strings.TrimSuffix(s, suffixBox1)
	default:
		return nil, fmt.Errorf("%w: wanted %s or %s", ErrWrongSuffix, suffixBox1, suffixBox2)
	}
	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("bfe: bad ciphertext base64: %w", err)
	}
	return tagged(TypeEncrypted, format, raw), nil
}

// DecodeBox is the inverse of EncodeBox, restoring the scheme suffix
// from the format byte.
func DecodeBox(data []byte) (string, error) {
	if len(data) < 2 {
		return "", ErrTooShort
	}
	if data[0] != TypeEncrypted {
		return "", fmt.Errorf("%w: %x-%x", ErrUnknownTag, data[0], data[1])
	}
	body := base64.StdEncoding.EncodeToString(data[2:])
	switch data[1] {
	case FormatEncryptedBox1:
		return body + suffixBox1, nil
	case FormatEncryptedBox2:
		return body + suffixBox2, nil
	default:
		return "", fmt.Errorf("%w: %x-%x", ErrUnknownTag, data[0], data[1])
	}
}

// EncodeString tags a plain utf8 string.
func EncodeString(s string) []byte {
	return tagged(TypeGeneric, FormatGenericString, []byte(s))
}

// DecodeString is the inverse of EncodeString.
func DecodeString(data []byte) (string, error) {
	raw, err := untag(data, TypeGeneric, FormatGenericString)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// EncodeBytes tags an opaque byte blob.
func EncodeBytes(p []byte) []byte {
	return tagged(TypeGeneric, FormatGenericBytes, p)
}

// DecodeBytes is the inverse of EncodeBytes.
func DecodeBytes(data []byte) ([]byte, error) {
	return untag(data, TypeGeneric, FormatGenericBytes)
}

// Nil returns the tagged nil value, used for the previous link of a
// feed's first message.
func Nil() []byte {
	return []byte{TypeGeneric, FormatGenericNil}
}

// IsNil reports whether data is exactly the tagged nil value.
func IsNil(data []byte) bool {
	return len(data) == 2 && data[0] == TypeGeneric && data[1] == FormatGenericNil
}

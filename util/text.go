// util/text.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"crypto/sha256"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

func Atof(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func IsAllNumbers(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// IsASCII reports whether every rune of s is 7-bit ASCII.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// DecodeLatin1 converts ISO 8859-1 encoded bytes to a UTF-8 string. Every
// byte sequence is valid Latin-1, so this never fails.
func DecodeLatin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// Can't happen: all 256 byte values map to a rune.
		return string(b)
	}
	return string(s)
}

// EncodeLatin1 is the inverse of DecodeLatin1; runes outside of Latin-1
// are replaced with '?'.
func EncodeLatin1(s string) []byte {
	var b []byte
	for _, r := range s {
		if ch, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			b = append(b, ch)
		} else {
			b = append(b, '?')
		}
	}
	return b
}

func Hash(r io.Reader) ([]byte, error) {
	hash := sha256.New()
	_, err := io.Copy(hash, r)
	if err != nil {
		return nil, err
	}
	return hash.Sum(nil), nil
}

// Package hashtree computes the content hash of an election manifest and of
// every object in it.
//
// Each object hashes a fixed tuple of its fields. A field that is absent is
// still hashed, as the marker "null", so that the arity of a tuple never
// depends on the content. Strings are hashed with their byte length in
// front, "len:value", so a separator inside a value or a value spelled
// "null" cannot be read as another tuple. Children are hashed before their
// parents and their digests take the place of the child in the parent's
// tuple.
package hashtree

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"go.dedis.ch/egrecord/group"
)

const (
	separator = "|"
	nullToken = "null"
)

// Element is one entry of a hashed tuple.
type Element struct {
	token string
}

// String returns a string element. The empty string is hashed as absent.
func String(s string) Element {
	if s == "" {
		return Absent()
	}
	return Element{token: strconv.Itoa(len(s)) + ":" + s}
}

// Int returns an integer element, hashed in decimal.
func Int(i int) Element {
	return Element{token: strconv.Itoa(i)}
}

// Bool returns a boolean element.
func Bool(b bool) Element {
	return Element{token: strconv.FormatBool(b)}
}

// Digest returns an element holding an already computed hash.
func Digest(d group.UInt256) Element {
	return Element{token: d.CryptoHashString()}
}

// Seq returns an element for a nested sequence. The sequence is hashed on
// its own and its digest takes its place; an empty sequence is absent.
func Seq(elems ...Element) Element {
	if len(elems) == 0 {
		return Absent()
	}
	return Digest(Hash(elems...))
}

// Strings returns the sequence of the strings.
func Strings(ss []string) Element {
	elems := make([]Element, len(ss))
	for i, s := range ss {
		elems[i] = String(s)
	}
	return Seq(elems...)
}

// Absent returns the marker of a missing field.
func Absent() Element {
	return Element{token: nullToken}
}

// Hash returns the SHA-256 digest of the tuple.
func Hash(elems ...Element) group.UInt256 {
	var b strings.Builder
	b.WriteString(separator)
	for _, e := range elems {
		b.WriteString(e.token)
		b.WriteString(separator)
	}
	return sha256.Sum256([]byte(b.String()))
}

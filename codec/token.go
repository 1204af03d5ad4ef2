package codec

import (
	"bytes"
	"encoding/json"

	"golang.org/x/xerrors"
)

// Token is one scalar as it appears in a document: the content of a JSON
// string, or the literal text of a JSON number or boolean. The zero value
// is JSON null.
type Token struct {
	text   string
	valid  bool
	quoted bool
}

// String returns a token written as a JSON string.
func String(s string) Token {
	return Token{text: s, valid: true, quoted: true}
}

// Number returns a token written as a bare JSON literal. The text must be a
// valid JSON number.
func Number(s string) Token {
	return Token{text: s, valid: true}
}

// IsNull tells whether the token is absent or JSON null.
func (t Token) IsNull() bool {
	return !t.valid
}

// Text returns the text of the token, without quotes.
func (t Token) Text() string {
	return t.text
}

// Quoted tells whether the token was a JSON string.
func (t Token) Quoted() bool {
	return t.quoted
}

// MarshalJSON implements json.Marshaler.
func (t Token) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	if t.quoted {
		return json.Marshal(t.text)
	}
	return []byte(t.text), nil
}

// UnmarshalJSON implements json.Unmarshaler. Objects and arrays are refused.
func (t *Token) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = Token{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = String(s)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return xerrors.Errorf("expected a scalar, got %.20s", b)
	default:
		*t = Token{text: string(b), valid: true}
	}
	return nil
}

package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// parseLiteral parses a string containing only literal data: nested mappings,
// sequences, single- or double-quoted strings, numbers, booleans and null
// (Python-style True/False/None are accepted too). It rejects everything
// else, including trailing commas and any expression syntax, and requires
// the whole input to be consumed.
func parseLiteral(input string) (interface{}, error) {
	s := &literalScanner{src: []rune(input)}
	s.skipSpace()
	value, err := s.parseValue()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.eof() {
		return nil, fmt.Errorf("trailing data at offset %d", s.pos)
	}
	return value, nil
}

type literalScanner struct {
	src []rune
	pos int
}

func (s *literalScanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *literalScanner) peek() rune {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *literalScanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *literalScanner) expect(r rune) error {
	if s.eof() || s.src[s.pos] != r {
		return fmt.Errorf("expected %q at offset %d", r, s.pos)
	}
	s.pos++
	return nil
}

func (s *literalScanner) parseValue() (interface{}, error) {
	if s.eof() {
		return nil, fmt.Errorf("unexpected end of input at offset %d", s.pos)
	}
	switch r := s.peek(); {
	case r == '{':
		return s.parseMapping()
	case r == '[':
		return s.parseSequence()
	case r == '"' || r == '\'':
		return s.parseString()
	case r == '-' || r == '+' || unicode.IsDigit(r):
		return s.parseNumber()
	case unicode.IsLetter(r):
		return s.parseKeyword()
	default:
		return nil, fmt.Errorf("unexpected character %q at offset %d", r, s.pos)
	}
}

func (s *literalScanner) parseMapping() (map[string]interface{}, error) {
	if err := s.expect('{'); err != nil {
		return nil, err
	}
	result := make(map[string]interface{})
	s.skipSpace()
	if s.peek() == '}' {
		s.pos++
		return result, nil
	}
	for {
		s.skipSpace()
		if r := s.peek(); r != '"' && r != '\'' {
			return nil, fmt.Errorf("expected string key at offset %d", s.pos)
		}
		key, err := s.parseString()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if err := s.expect(':'); err != nil {
			return nil, err
		}
		s.skipSpace()
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		result[key] = value
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
			s.skipSpace()
			// a closing brace after a comma is a trailing comma: reject
			if s.peek() == '}' {
				return nil, fmt.Errorf("trailing comma at offset %d", s.pos)
			}
		case '}':
			s.pos++
			return result, nil
		default:
			return nil, fmt.Errorf("expected ',' or '}' at offset %d", s.pos)
		}
	}
}

func (s *literalScanner) parseSequence() ([]interface{}, error) {
	if err := s.expect('['); err != nil {
		return nil, err
	}
	result := make([]interface{}, 0)
	s.skipSpace()
	if s.peek() == ']' {
		s.pos++
		return result, nil
	}
	for {
		s.skipSpace()
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		result = append(result, value)
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
			s.skipSpace()
			if s.peek() == ']' {
				return nil, fmt.Errorf("trailing comma at offset %d", s.pos)
			}
		case ']':
			s.pos++
			return result, nil
		default:
			return nil, fmt.Errorf("expected ',' or ']' at offset %d", s.pos)
		}
	}
}

func (s *literalScanner) parseString() (string, error) {
	quote := s.peek()
	s.pos++
	var b strings.Builder
	for {
		if s.eof() {
			return "", fmt.Errorf("unterminated string at offset %d", s.pos)
		}
		r := s.src[s.pos]
		s.pos++
		switch r {
		case quote:
			return b.String(), nil
		case '\\':
			esc, err := s.parseEscape(quote)
			if err != nil {
				return "", err
			}
			b.WriteRune(esc)
		default:
			b.WriteRune(r)
		}
	}
}

func (s *literalScanner) parseEscape(quote rune) (rune, error) {
	if s.eof() {
		return 0, fmt.Errorf("unterminated escape at offset %d", s.pos)
	}
	r := s.src[s.pos]
	s.pos++
	switch r {
	case quote, '\\', '/':
		return r, nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'u':
		if s.pos+4 > len(s.src) {
			return 0, fmt.Errorf("truncated unicode escape at offset %d", s.pos)
		}
		code, err := strconv.ParseUint(string(s.src[s.pos:s.pos+4]), 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid unicode escape at offset %d", s.pos)
		}
		s.pos += 4
		u := rune(code)
		if utf16.IsSurrogate(u) {
			// require the low surrogate to follow
			if s.pos+6 <= len(s.src) && s.src[s.pos] == '\\' && s.src[s.pos+1] == 'u' {
				low, err := strconv.ParseUint(string(s.src[s.pos+2:s.pos+6]), 16, 32)
				if err == nil {
					if combined := utf16.DecodeRune(u, rune(low)); combined != unicode.ReplacementChar {
						s.pos += 6
						return combined, nil
					}
				}
			}
			return unicode.ReplacementChar, nil
		}
		return u, nil
	default:
		return 0, fmt.Errorf("unsupported escape %q at offset %d", r, s.pos-1)
	}
}

func (s *literalScanner) parseNumber() (interface{}, error) {
	start := s.pos
	if r := s.peek(); r == '-' || r == '+' {
		s.pos++
	}
	digits := 0
	for !s.eof() && unicode.IsDigit(s.src[s.pos]) {
		s.pos++
		digits++
	}
	isFloat := false
	if !s.eof() && s.src[s.pos] == '.' {
		isFloat = true
		s.pos++
		for !s.eof() && unicode.IsDigit(s.src[s.pos]) {
			s.pos++
			digits++
		}
	}
	if !s.eof() && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		isFloat = true
		s.pos++
		if r := s.peek(); r == '-' || r == '+' {
			s.pos++
		}
		expDigits := 0
		for !s.eof() && unicode.IsDigit(s.src[s.pos]) {
			s.pos++
			expDigits++
		}
		if expDigits == 0 {
			return nil, fmt.Errorf("invalid number at offset %d", start)
		}
	}
	if digits == 0 {
		return nil, fmt.Errorf("invalid number at offset %d", start)
	}
	text := string(s.src[start:s.pos])
	if isFloat {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at offset %d", text, start)
		}
		return value, nil
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q at offset %d", text, start)
	}
	return value, nil
}

func (s *literalScanner) parseKeyword() (interface{}, error) {
	start := s.pos
	for !s.eof() && unicode.IsLetter(s.src[s.pos]) {
		s.pos++
	}
	switch word := string(s.src[start:s.pos]); word {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	case "null", "None":
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected identifier %q at offset %d", word, start)
	}
}

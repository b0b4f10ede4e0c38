package model

import (
	"net/http"
	"strings"
)

// HeaderPair is a single outbound header with its original casing preserved.
type HeaderPair struct {
	Name  string
	Value string
}

// HeaderList is an ordered header collection with case-insensitive lookup.
// Unlike http.Header it preserves insertion order and keeps keys whose value
// is the empty string, which the outbound header contract relies on.
type HeaderList struct {
	pairs []HeaderPair
}

// Add appends a pair, keeping any existing pairs with the same name.
func (l *HeaderList) Add(name, value string) {
	l.pairs = append(l.pairs, HeaderPair{Name: name, Value: value})
}

// Set replaces every pair matching name (case-insensitively) with a single
// pair at the position of the first match, or appends when absent.
func (l *HeaderList) Set(name, value string) {
	idx := -1
	kept := l.pairs[:0]
	for _, p := range l.pairs {
		if strings.EqualFold(p.Name, name) {
			if idx < 0 {
				idx = len(kept)
				kept = append(kept, HeaderPair{Name: name, Value: value})
			}
			continue
		}
		kept = append(kept, p)
	}
	l.pairs = kept
	if idx < 0 {
		l.pairs = append(l.pairs, HeaderPair{Name: name, Value: value})
	}
}

// Del removes every pair matching name case-insensitively.
func (l *HeaderList) Del(name string) {
	kept := l.pairs[:0]
	for _, p := range l.pairs {
		if !strings.EqualFold(p.Name, name) {
			kept = append(kept, p)
		}
	}
	l.pairs = kept
}

// Get returns the first value for name and whether the key exists at all.
// The second return distinguishes an empty value from an absent key.
func (l *HeaderList) Get(name string) (string, bool) {
	for _, p := range l.pairs {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Pairs returns the pairs in order. The caller must not mutate the slice.
func (l *HeaderList) Pairs() []HeaderPair {
	return l.pairs
}

// Len returns the number of pairs.
func (l *HeaderList) Len() int {
	return len(l.pairs)
}

// HTTPHeader converts the list into an http.Header for the transport.
// Empty values survive the conversion.
func (l *HeaderList) HTTPHeader() http.Header {
	h := make(http.Header, len(l.pairs))
	for _, p := range l.pairs {
		h[http.CanonicalHeaderKey(p.Name)] = append(h[http.CanonicalHeaderKey(p.Name)], p.Value)
	}
	return h
}

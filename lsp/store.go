package lsp

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dhamidi/ged/gedcom"
)

// Entry is the parsed state of one open document.
type Entry struct {
	URI         string
	Text        string
	Doc         *gedcom.Document
	Diagnostics gedcom.Diagnostics
	// Fatal is set when the text could not be parsed at all; Doc is nil.
	Fatal error
}

// Store keeps parsed documents by URI. Open documents never expire; once
// the editor closes one, its parse is kept for ttl so that reopening the same
// text does not parse it again.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	cleanup := ttl
	if ttl <= 0 {
		ttl, cleanup = gocache.NoExpiration, 0
	}
	return &Store{cache: gocache.New(ttl, cleanup), ttl: ttl}
}

// Update parses text and stores it as the open document uri. Text equal to
// the stored text reuses the earlier parse.
func (s *Store) Update(uri, text string) *Entry {
	if v, ok := s.cache.Get(uri); ok {
		if e := v.(*Entry); e.Text == text {
			s.cache.Set(uri, e, gocache.NoExpiration)
			return e
		}
	}
	e := &Entry{URI: uri, Text: text}
	e.Doc, e.Diagnostics, e.Fatal = gedcom.Parse([]byte(text), gedcom.WithFile(uri))
	s.cache.Set(uri, e, gocache.NoExpiration)
	return e
}

func (s *Store) Get(uri string) (*Entry, bool) {
	v, ok := s.cache.Get(uri)
	if !ok {
		return nil, false
	}
	return v.(*Entry), true
}

// Close starts the expiry of uri. Without a ttl the entry is dropped at once.
func (s *Store) Close(uri string) {
	v, ok := s.cache.Get(uri)
	if !ok {
		return
	}
	if s.ttl == gocache.NoExpiration {
		s.cache.Delete(uri)
		return
	}
	s.cache.Set(uri, v, gocache.DefaultExpiration)
}

func (s *Store) Remove(uri string) {
	s.cache.Delete(uri)
}

func (s *Store) Len() int {
	return s.cache.ItemCount()
}

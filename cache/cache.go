package cache

import (
	"bytes"
	"container/list"
	"fmt"
	"hash"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"
	"time"

	"wcl_check/share"

	"github.com/getsentry/sentry-go"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"
)

// Storage is a JSON cache with a bounded in-memory layer and an optional directory behind it.
// Entries older than ttl are ignored; a zero ttl keeps them forever.
type Storage struct {
	dir        string
	ttl        time.Duration
	maxEntries int

	lock    sync.Mutex
	entries map[string]*list.Element
	order   *list.List

	savingLock sync.RWMutex
	saving     map[string]struct{}

	group singleflight.Group

	now func() time.Time
}

type entry struct {
	key   string
	data  []byte
	saved time.Time
}

func NewStorage(dir string, ttl time.Duration, maxEntries int) *Storage {
	if dir != "" {
		os.MkdirAll(dir, 0700)
	}
	return &Storage{
		dir:        dir,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		saving:     make(map[string]struct{}, 32),
		now:        time.Now,
	}
}

// Key hashes parts into a cache key.
func Key(parts ...interface{}) hash.Hash {
	h := fnv.New128a()
	for _, p := range parts {
		fmt.Fprint(h, p, "|||")
	}
	return h
}

func keyString(h hash.Hash) string {
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Storage) expired(saved time.Time) bool {
	return s.ttl > 0 && s.now().Sub(saved) > s.ttl
}

////////////////////////////////////////////////////////////////////////////////////////////////////

// Load decodes the entry for h into v.
func (s *Storage) Load(h hash.Hash, v interface{}) bool {
	buf := new(bytes.Buffer)
	if !s.LoadRaw(h, buf) {
		return false
	}

	err := jsoniter.NewDecoder(buf).Decode(v)
	if err != nil {
		sentry.CaptureException(err)
		return false
	}
	return true
}

// LoadRaw appends the stored bytes for h to w.
func (s *Storage) LoadRaw(h hash.Hash, w *bytes.Buffer) bool {
	key := keyString(h)

	if data, ok := s.memory(key); ok {
		share.CacheRequests.WithLabelValues("hit").Inc()
		w.Write(data)
		return true
	}

	data, ok := s.disk(key)
	if !ok {
		share.CacheRequests.WithLabelValues("miss").Inc()
		return false
	}

	share.CacheRequests.WithLabelValues("hit").Inc()
	s.remember(key, data, s.now())
	w.Write(data)
	return true
}

func (s *Storage) Save(h hash.Hash, v interface{}) {
	data, err := jsoniter.Marshal(v)
	if err != nil {
		sentry.CaptureException(err)
		return
	}
	s.SaveRaw(h, bytes.NewBuffer(data))
}

func (s *Storage) SaveRaw(h hash.Hash, buf *bytes.Buffer) {
	key := keyString(h)
	data := append([]byte(nil), buf.Bytes()...)

	s.remember(key, data, s.now())

	if s.dir == "" || !s.lockSave(key) {
		return
	}
	defer s.unlockSave(key)

	path := s.path(key)
	err := os.WriteFile(path, data, 0600)
	if err != nil {
		sentry.CaptureException(err)
		os.Remove(path)
	}
}

// Do returns the cached value for h or fills it with fn, running fn once for concurrent callers.
func (s *Storage) Do(h hash.Hash, v interface{}, fn func() (interface{}, error)) error {
	if s.Load(h, v) {
		return nil
	}

	key := keyString(h)
	data, err, _ := s.group.Do(key, func() (interface{}, error) {
		r, err := fn()
		if err != nil {
			return nil, err
		}
		data, err := jsoniter.Marshal(r)
		if err != nil {
			return nil, err
		}
		s.SaveRaw(h, bytes.NewBuffer(data))
		return data, nil
	})
	if err != nil {
		return err
	}
	return jsoniter.Unmarshal(data.([]byte), v)
}

func (s *Storage) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.order.Len()
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func (s *Storage) memory(key string) ([]byte, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if s.expired(e.saved) {
		s.order.Remove(el)
		delete(s.entries, key)
		return nil, false
	}
	s.order.MoveToFront(el)
	return e.data, true
}

func (s *Storage) remember(key string, data []byte, saved time.Time) {
	if s.maxEntries <= 0 {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if el, ok := s.entries[key]; ok {
		e := el.Value.(*entry)
		e.data, e.saved = data, saved
		s.order.MoveToFront(el)
		return
	}

	s.entries[key] = s.order.PushFront(&entry{key: key, data: data, saved: saved})
	for s.order.Len() > s.maxEntries {
		last := s.order.Back()
		s.order.Remove(last)
		delete(s.entries, last.Value.(*entry).key)
	}
}

func (s *Storage) disk(key string) ([]byte, bool) {
	if s.dir == "" || s.checkSkip(key) {
		return nil, false
	}

	path := s.path(key)
	fi, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if s.expired(fi.ModTime()) {
		os.Remove(path)
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		sentry.CaptureException(err)
		return nil, false
	}
	return data, true
}

func (s *Storage) lockSave(key string) bool {
	s.savingLock.Lock()
	defer s.savingLock.Unlock()

	_, ok := s.saving[key]
	if !ok {
		s.saving[key] = struct{}{}
	}
	return !ok
}

func (s *Storage) unlockSave(key string) {
	s.savingLock.Lock()
	defer s.savingLock.Unlock()

	delete(s.saving, key)
}

func (s *Storage) checkSkip(key string) bool {
	s.savingLock.RLock()
	defer s.savingLock.RUnlock()

	_, ok := s.saving[key]
	return ok
}

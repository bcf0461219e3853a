package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/util"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("storage is closed")

const subscriberBuffer = 16

// Store implements Gateway on top of a Backend and fans change events out to
// every subscriber.
type Store struct {
	backend Backend
	log     util.LoggerInterface

	// writeMu orders a save with its own publish so a concurrent reload
	// cannot report a local write as external.
	writeMu sync.Mutex

	mu      sync.Mutex
	known   map[string][]byte
	subs    map[int]chan ChangeEvent
	nextSub int
	closed  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewStore loads the current values and, when the backend can notice writes
// from other processes, starts forwarding them as external change events.
func NewStore(ctx context.Context, backend Backend) (*Store, error) {
	values, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load storage: %w", err)
	}

	s := &Store{
		backend: backend,
		log:     util.Named("storage"),
		known:   values,
		subs:    make(map[int]chan ChangeEvent),
		done:    make(chan struct{}),
	}
	if s.known == nil {
		s.known = make(map[string][]byte)
	}

	if source, ok := backend.(ChangeSource); ok {
		s.wg.Add(1)
		go s.watch(source.Changes())
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context, keys ...string) (Snapshot, error) {
	if len(keys) == 0 {
		keys = model.AllKeys
	}
	if err := s.checkOpen(); err != nil {
		return Snapshot{}, err
	}

	s.writeMu.Lock()
	values, err := s.backend.Load(ctx)
	if err != nil {
		s.writeMu.Unlock()
		return Snapshot{}, fmt.Errorf("load storage: %w", err)
	}
	s.absorb(values, true)
	s.writeMu.Unlock()

	return decodeSnapshot(values, keys)
}

func (s *Store) Set(ctx context.Context, patch Patch) error {
	if patch.Empty() {
		return nil
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	values, err := encodePatch(patch)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.backend.Save(ctx, values); err != nil {
		return fmt.Errorf("save storage: %w", err)
	}

	s.log.Debug("Storage updated.", util.F("keys", patch.Keys()))
	s.absorb(values, false)
	return nil
}

func (s *Store) Subscribe() (<-chan ChangeEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ChangeEvent, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mu.Unlock()

	err := s.backend.Close()
	s.wg.Wait()
	return err
}

func (s *Store) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// absorb merges values into the last known state and publishes the
// difference, if any.
func (s *Store) absorb(values map[string][]byte, external bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, changed := diff(s.known, values)
	for k, v := range values {
		s.known[k] = v
	}
	if !changed || s.closed {
		return
	}
	event.External = external

	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
			s.log.Warn("Change event dropped, subscriber is behind.")
		}
	}
}

func (s *Store) watch(changes <-chan struct{}) {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			s.reload()
		}
	}
}

func (s *Store) reload() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	values, err := s.backend.Load(context.Background())
	if err != nil {
		s.log.Error("Failed to reload storage after external change.", util.F("error", err))
		return
	}
	s.absorb(values, true)
}

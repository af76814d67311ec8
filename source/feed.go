package source

import "sync"

// Feed is a Source fed by its owner through Push and Fail. Samples are
// delivered synchronously on the caller's goroutine to every subscriber.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   map[int]*feedSub[T]
	nextID int
	closed bool
}

type feedSub[T any] struct {
	onSample func(T)
	onError  func(error)
}

type feedSubscription[T any] struct {
	feed *Feed[T]
	id   int
	once sync.Once
}

func (s *feedSubscription[T]) Unsubscribe() {
	s.once.Do(func() {
		s.feed.mu.Lock()
		delete(s.feed.subs, s.id)
		s.feed.mu.Unlock()
	})
}

func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]*feedSub[T])}
}

func (f *Feed[T]) Subscribe(onSample func(T), onError func(error)) (Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrUnavailable
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = &feedSub[T]{onSample: onSample, onError: onError}
	return &feedSubscription[T]{feed: f, id: id}, nil
}

func (f *Feed[T]) Push(v T) {
	for _, s := range f.snapshot() {
		if s.onSample != nil {
			s.onSample(v)
		}
	}
}

func (f *Feed[T]) Fail(err error) {
	for _, s := range f.snapshot() {
		if s.onError != nil {
			s.onError(err)
		}
	}
}

// Close drops all subscribers; later Subscribe calls report ErrUnavailable.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.subs = make(map[int]*feedSub[T])
}

func (f *Feed[T]) snapshot() []*feedSub[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*feedSub[T], 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out
}

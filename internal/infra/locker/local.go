package locker

import (
	"context"
	"fmt"
	"sync"
)

// LocalLocker блокировки внутри одного процесса
// Для каждого помещения создается канал емкостью 1, занятый слот означает удержание блокировки.
// Слот удаляется из таблицы, когда его никто не держит и не ждет.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[int64]*slot
}

type slot struct {
	ch   chan struct{}
	refs int // владелец и ожидающие
}

// NewLocalLocker создает таблицу блокировок
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[int64]*slot)}
}

// Lock ждет освобождения помещения или отмены контекста
func (l *LocalLocker) Lock(ctx context.Context, facilityID int64) (func(), error) {
	s := l.acquire(facilityID)

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(facilityID, s)
		return nil, fmt.Errorf("%w: facility=%d: %v", ErrLockTimeout, facilityID, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(facilityID, s)
		})
	}, nil
}

func (l *LocalLocker) acquire(facilityID int64) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[facilityID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[facilityID] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) release(facilityID int64, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, facilityID)
	}
}

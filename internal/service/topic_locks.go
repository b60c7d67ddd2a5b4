package service

import (
	"sync"

	"github.com/google/uuid"
)

// topicLocks сериализует изменяющие операции над одним путешествием.
// Запись в locks защищена общим мьютексом, сам замок путешествия держится
// на все время операции. Счетчик ссылок не дает карте расти бесконечно.
type topicLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*topicLock
}

type topicLock struct {
	mu   sync.Mutex
	refs int
}

func newTopicLocks() *topicLocks {
	return &topicLocks{
		locks: make(map[uuid.UUID]*topicLock),
	}
}

// lock захватывает замок путешествия, при необходимости создавая его
func (l *topicLocks) lock(id uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &topicLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// unlock освобождает замок путешествия и удаляет его, если ожидающих нет
func (l *topicLocks) unlock(id uuid.UUID) {
	l.mu.Lock()
	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}

package session

import (
	"github.com/fhuszti/resizer-ms-go/internal/port"
	"github.com/moby/locker"
)

// KeyedLocker serialises work on one session id. Idle keys are released by
// the underlying locker.
type KeyedLocker struct {
	l *locker.Locker
}

// compile-time check: *KeyedLocker must satisfy port.SessionLocker
var _ port.SessionLocker = (*KeyedLocker)(nil)

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{l: locker.New()}
}

// Lock blocks until the key is free and returns its unlock func.
func (k *KeyedLocker) Lock(key string) func() {
	k.l.Lock(key)
	return func() {
		_ = k.l.Unlock(key)
	}
}

package port

// SessionLocker serialises reads and writes of a single session.
type SessionLocker interface {
	Lock(key string) func()
}

package metrics

import (
	"sync/atomic"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated     uint64
	UsersUpdated     uint64
	UsersDeleted     uint64
	UserNotFound     uint64
	ValidationFailed uint64
	EventsPublished  uint64
	EventsDropped    uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	usersCreated     uint64
	usersUpdated     uint64
	usersDeleted     uint64
	userNotFound     uint64
	validationFailed uint64
	eventsPublished  uint64
	eventsDropped    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:     atomic.LoadUint64(&m.usersCreated),
		UsersUpdated:     atomic.LoadUint64(&m.usersUpdated),
		UsersDeleted:     atomic.LoadUint64(&m.usersDeleted),
		UserNotFound:     atomic.LoadUint64(&m.userNotFound),
		ValidationFailed: atomic.LoadUint64(&m.validationFailed),
		EventsPublished:  atomic.LoadUint64(&m.eventsPublished),
		EventsDropped:    atomic.LoadUint64(&m.eventsDropped),
	}
}

// IncUserCreated increments user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserUpdated increments user updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	atomic.AddUint64(&m.usersUpdated, 1)
}

// IncUserDeleted increments user deleted counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}

// IncUserNotFound increments the lookup miss counter.
func (m *InMemoryRecorder) IncUserNotFound() {
	atomic.AddUint64(&m.userNotFound, 1)
}

// IncValidationFailed increments the rejected create counter.
func (m *InMemoryRecorder) IncValidationFailed() {
	atomic.AddUint64(&m.validationFailed, 1)
}

// IncEventPublished increments the published or dropped event counter.
func (m *InMemoryRecorder) IncEventPublished(status string) {
	if status == "success" {
		atomic.AddUint64(&m.eventsPublished, 1)
		return
	}
	atomic.AddUint64(&m.eventsDropped, 1)
}

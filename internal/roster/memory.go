// Package roster holds the in-memory activity registry.
package roster

import (
	"context"
	"sync"

	"example.com/mergington/internal/domain"
	"example.com/mergington/internal/observability"
)

// InMemoryRegistry stores activities in memory for the lifetime of the
// process. The mutex keeps rosters consistent under concurrent handlers.
type InMemoryRegistry struct {
	mu         sync.RWMutex
	activities map[string]domain.Activity
}

// NewInMemoryRegistry constructs a registry populated with the school's
// seed activities.
func NewInMemoryRegistry() *InMemoryRegistry {
	return NewInMemoryRegistryFrom(seedActivities())
}

// NewInMemoryRegistryFrom constructs a registry from the given activities.
// The map is used as-is; callers hand over ownership.
func NewInMemoryRegistryFrom(activities map[string]domain.Activity) *InMemoryRegistry {
	if activities == nil {
		activities = make(map[string]domain.Activity)
	}
	for name, activity := range activities {
		observability.SetRosterSize(name, len(activity.Participants))
	}
	return &InMemoryRegistry{activities: activities}
}

// List implements domain.Registry. The returned map and participant slices
// are copies; mutating them does not touch registry state.
func (r *InMemoryRegistry) List(ctx context.Context) (map[string]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.activities))
	for name, activity := range r.activities {
		participants := make([]string, len(activity.Participants))
		copy(participants, activity.Participants)
		activity.Participants = participants
		out[name] = activity
	}
	return out, nil
}

// Signup implements domain.Registry. The new participant is appended at the
// roster tail so that roster order is signup order. MaxParticipants is
// reported but not enforced here.
func (r *InMemoryRegistry) Signup(ctx context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.ErrActivityNotFound
	}
	for _, participant := range activity.Participants {
		if participant == email {
			return domain.ErrAlreadySignedUp
		}
	}

	activity.Participants = append(activity.Participants, email)
	r.activities[name] = activity
	observability.SetRosterSize(name, len(activity.Participants))
	return nil
}

// Unregister implements domain.Registry. The remaining roster keeps its
// relative order.
func (r *InMemoryRegistry) Unregister(ctx context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.ErrActivityNotFound
	}
	for i, participant := range activity.Participants {
		if participant == email {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			r.activities[name] = activity
			observability.SetRosterSize(name, len(activity.Participants))
			return nil
		}
	}
	return domain.ErrNotRegistered
}

// Package domain defines the business logic for the signup service.
package domain

import (
	"context"
	"errors"
)

var (
	// ErrActivityNotFound is returned when an activity name is not in the registry.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp indicates the email already holds a roster spot.
	ErrAlreadySignedUp = errors.New("participant is already signed up")
	// ErrNotRegistered indicates the email holds no roster spot to release.
	ErrNotRegistered = errors.New("participant is not registered for this activity")
)

// Registry captures roster state operations. Implementations must keep
// activity names unique and reject duplicate emails within one roster.
type Registry interface {
	List(ctx context.Context) (map[string]Activity, error)
	Signup(ctx context.Context, activity, email string) error
	Unregister(ctx context.Context, activity, email string) error
}

// Service orchestrates roster workflows.
type Service struct {
	registry Registry
}

// NewService constructs a Service.
func NewService(registry Registry) *Service {
	return &Service{registry: registry}
}

// ListActivities returns a snapshot of every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	return s.registry.List(ctx)
}

// Signup adds email to the tail of the activity's roster. Signup order is
// preserved; a second signup for the same pair fails with ErrAlreadySignedUp.
func (s *Service) Signup(ctx context.Context, activity, email string) error {
	return s.registry.Signup(ctx, activity, email)
}

// Unregister releases email's roster spot for the activity.
func (s *Service) Unregister(ctx context.Context, activity, email string) error {
	return s.registry.Unregister(ctx, activity, email)
}

package storage

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/twig-tracker/twig/internal/model"
)

// shortIDLen is the length of the compact identifier form: the first 8 hex
// characters of the full UUID.
const shortIDLen = 8

// ResolveTask maps a user-supplied token to a task in the store. An
// 8-character token is treated as a short ID (first match wins); anything
// else must parse as a full UUID. Resolution always runs against the
// store's current contents.
func (s *Store) ResolveTask(token string) (*model.Task, error) {
	if len(token) == shortIDLen {
		task := s.FindByShortID(token)
		if task == nil {
			return nil, fmt.Errorf("resolving %q: %w", token, ErrTaskNotFound)
		}
		return task, nil
	}

	id, err := uuid.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("invalid task identifier %q: %w", token, err)
	}
	task := s.GetTask(id)
	if task == nil {
		return nil, fmt.Errorf("resolving %q: %w", token, ErrTaskNotFound)
	}
	return task, nil
}

// ResolveTaskID is ResolveTask returning only the full identifier.
func (s *Store) ResolveTaskID(token string) (uuid.UUID, error) {
	task, err := s.ResolveTask(token)
	if err != nil {
		return uuid.UUID{}, err
	}
	return task.ID, nil
}

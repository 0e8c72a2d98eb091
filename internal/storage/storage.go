// Package storage implements the flat-file document store backing the
// API. All collections live in a single JSON file that is loaded at
// startup and rewritten synchronously after every mutation.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/IsaacFdezPintor/studiosnap/internal/models"
)

// data is the on-disk shape of the store.
type data struct {
	Users    []models.User    `json:"users"`
	Sessions []models.Session `json:"sessions"`
}

// FileStore is a mutex-guarded document store persisted to a single
// JSON file. It implements the user and session repository ports used
// by the service layer. Identifier assignment happens under the store
// mutex, so creates within one process cannot produce duplicate ids.
type FileStore struct {
	path string
	mu   sync.Mutex
	data data
}

// Open loads the store from path. A missing file is not an error: the
// store starts empty and the file is created on the first write.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s.data); err != nil {
		return nil, err
	}
	return s, nil
}

// save rewrites the backing file. The caller must hold s.mu.
func (s *FileStore) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(&s.data)
}

// FindUserByEmail returns the user with the given email, or nil if no
// such user exists. The match is case-sensitive.
func (s *FileStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.Users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

// InsertUser assigns the next identifier (max existing + 1), appends
// the user and persists the store. The stored user is returned.
func (s *FileStore) InsertUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, u := range s.data.Users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	user.ID = maxID + 1
	s.data.Users = append(s.data.Users, user)

	if err := s.save(); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FilterSessionsByOwner returns every session owned by ownerID, in
// store order. The result is never nil.
func (s *FileStore) FilterSessionsByOwner(_ context.Context, ownerID int64) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Session{}
	for _, rec := range s.data.Sessions {
		if rec.UserID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// FindSession returns the session with the given id, or nil if it does
// not exist. Ownership is not checked here; that is the facade's job.
func (s *FileStore) FindSession(_ context.Context, id int64) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.data.Sessions {
		if rec.ID == id {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

// InsertSession assigns the next identifier (max existing + 1),
// appends the record and persists the store.
func (s *FileStore) InsertSession(_ context.Context, rec models.Session) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, existing := range s.data.Sessions {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	rec.ID = maxID + 1
	s.data.Sessions = append(s.data.Sessions, rec)

	if err := s.save(); err != nil {
		return models.Session{}, err
	}
	return rec, nil
}

// UpdateSession replaces the stored record with the same id and
// persists the store. Updating an absent record is a no-op.
func (s *FileStore) UpdateSession(_ context.Context, rec models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.data.Sessions {
		if existing.ID == rec.ID {
			s.data.Sessions[i] = rec
			return s.save()
		}
	}
	return nil
}

// RemoveSession deletes the record with the given id and persists the
// store. Removing an absent record is a no-op.
func (s *FileStore) RemoveSession(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.data.Sessions {
		if existing.ID == id {
			s.data.Sessions = append(s.data.Sessions[:i], s.data.Sessions[i+1:]...)
			return s.save()
		}
	}
	return nil
}

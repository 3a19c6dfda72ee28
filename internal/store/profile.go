// internal/store/profile.go
package store

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/domain/user"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
)

// UserProfile returns a copy of the signed-in profile, or nil
func (s *Store) UserProfile() *user.Profile {
	var profile *user.Profile
	s.read(func(st *State) {
		profile = user.Clone(st.UserProfile)
	})
	return profile
}

// IsAuthenticated reports whether a profile is set
func (s *Store) IsAuthenticated() bool {
	var ok bool
	s.read(func(st *State) {
		ok = st.UserProfile != nil
	})
	return ok
}

// SetProfile replaces the profile; nil signs the user out
func (s *Store) SetProfile(profile *user.Profile) {
	profile = user.Clone(profile)
	s.update(ActionSetProfile, false, func(st *State) {
		st.UserProfile = profile
	})
}

// ClearProfile signs the user out
func (s *Store) ClearProfile() {
	s.update(ActionClearProfile, false, func(st *State) {
		st.UserProfile = nil
	})
}

// LoadProfileFromStorage reads the user blob written by the login flow and
// sets the profile from it. A missing key, a read failure or a malformed blob
// is logged and leaves the current state untouched.
func (s *Store) LoadProfileFromStorage(ctx context.Context) {
	if s.profileReader == nil {
		s.logger.Debug("No profile storage configured, skipping profile load")
		return
	}

	log := s.logger.WithField("key", s.profileKey)

	data, err := s.profileReader.Get(ctx, s.profileKey)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug("No stored user profile")
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to read stored user profile")
		return
	}

	profile, err := user.ParseStoredUser([]byte(data))
	if err != nil {
		log.WithError(err).Error("Failed to parse stored user profile")
		return
	}

	s.update(ActionLoadProfile, false, func(st *State) {
		st.UserProfile = profile
	})

	log.WithFields(logrus.Fields{
		"user_id":   profile.ID,
		"addresses": len(profile.Addresses),
	}).Info("User profile loaded from storage")
}

// AddAddress appends an address to the profile; without a profile it does
// nothing
func (s *Store) AddAddress(address user.Address) {
	s.update(ActionAddAddress, false, func(st *State) {
		st.UserProfile = user.AddAddress(st.UserProfile, address)
	})
}

// UpdateAddress patches the address with id
func (s *Store) UpdateAddress(id string, req user.UpdateAddressRequest) {
	s.update(ActionUpdateAddress, false, func(st *State) {
		st.UserProfile = user.UpdateAddress(st.UserProfile, id, req)
	})
}

// RemoveAddress drops the address with id
func (s *Store) RemoveAddress(id string) {
	s.update(ActionRemoveAddress, false, func(st *State) {
		st.UserProfile = user.RemoveAddress(st.UserProfile, id)
	})
}

// SetDefaultAddressID records id as the default address of the profile
func (s *Store) SetDefaultAddressID(id string) {
	s.update(ActionSetDefaultAddress, false, func(st *State) {
		st.UserProfile = user.SetDefaultAddress(st.UserProfile, id)
	})
}

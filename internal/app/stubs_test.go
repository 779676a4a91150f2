package app_test

import (
	"context"

	"estatehub/internal/model"
)

// In-memory stores standing in for the gorm repositories.

type memUserStore struct {
	seq   uint
	users map[uint]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uint]*model.User)}
}

func (s *memUserStore) Create(user *model.User) error {
	s.seq++
	user.ID = s.seq
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) GetByUsername(username string) (*model.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByEmail(email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByID(id uint) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) Update(user *model.User) error {
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

type memPropertyStore struct {
	seq        uint
	properties map[uint]*model.Property
}

func newMemPropertyStore() *memPropertyStore {
	return &memPropertyStore{properties: make(map[uint]*model.Property)}
}

func (s *memPropertyStore) Create(property *model.Property) error {
	s.seq++
	property.ID = s.seq
	copied := *property
	s.properties[property.ID] = &copied
	return nil
}

func (s *memPropertyStore) ListAvailable() ([]model.Property, error) {
	var result []model.Property
	for _, property := range s.properties {
		if property.Status == model.StatusAvailable {
			result = append(result, *property)
		}
	}
	return result, nil
}

func (s *memPropertyStore) GetByID(id uint) (*model.Property, error) {
	property, ok := s.properties[id]
	if !ok {
		return nil, nil
	}
	copied := *property
	return &copied, nil
}

func (s *memPropertyStore) ListByUserID(userID uint) ([]model.Property, error) {
	var result []model.Property
	for _, property := range s.properties {
		if property.UserID == userID {
			result = append(result, *property)
		}
	}
	return result, nil
}

func (s *memPropertyStore) Update(property *model.Property) error {
	copied := *property
	s.properties[property.ID] = &copied
	return nil
}

func (s *memPropertyStore) Delete(id uint) error {
	delete(s.properties, id)
	return nil
}

type memWishlistStore struct {
	seq     uint
	entries map[uint]*model.WishlistEntry
}

func newMemWishlistStore() *memWishlistStore {
	return &memWishlistStore{entries: make(map[uint]*model.WishlistEntry)}
}

func (s *memWishlistStore) Get(userID, propertyID uint) (*model.WishlistEntry, error) {
	for _, entry := range s.entries {
		if entry.UserID == userID && entry.PropertyID == propertyID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memWishlistStore) Create(entry *model.WishlistEntry) error {
	s.seq++
	entry.ID = s.seq
	copied := *entry
	s.entries[entry.ID] = &copied
	return nil
}

func (s *memWishlistStore) Delete(userID, propertyID uint) error {
	for id, entry := range s.entries {
		if entry.UserID == userID && entry.PropertyID == propertyID {
			delete(s.entries, id)
		}
	}
	return nil
}

func (s *memWishlistStore) ListProperties(userID uint) ([]model.Property, error) {
	return nil, nil
}

// recordPublisher captures published events.
type recordPublisher struct {
	events []model.ListingEvent
}

func (p *recordPublisher) Publish(_ context.Context, event model.ListingEvent) error {
	p.events = append(p.events, event)
	return nil
}

// recordFeedCache tracks dirty/invalidate calls and serves a canned feed.
type recordFeedCache struct {
	cached      []model.Property
	hit         bool
	dirty       bool
	invalidated int
	setCalls    int
}

func (c *recordFeedCache) GetAvailable(context.Context) ([]model.Property, bool, error) {
	return c.cached, c.hit, nil
}

func (c *recordFeedCache) SetAvailable(_ context.Context, properties []model.Property) error {
	c.cached = properties
	c.hit = true
	c.setCalls++
	return nil
}

func (c *recordFeedCache) Invalidate(context.Context) error {
	c.cached = nil
	c.hit = false
	c.invalidated++
	return nil
}

func (c *recordFeedCache) MarkDirty(context.Context) error {
	c.dirty = true
	return nil
}

func (c *recordFeedCache) IsDirty(context.Context) (bool, error) {
	return c.dirty, nil
}

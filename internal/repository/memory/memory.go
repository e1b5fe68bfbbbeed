// Package memory holds in-process implementations of the repositories. They back the
// "memory://" database URI used for local runs and the service and handler tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/arzan03/LandMarket/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]models.User)}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *UserRepository) Update(_ context.Context, id string, update models.UserUpdate) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Email != nil {
		for otherID, other := range r.users {
			if otherID != oid && other.Email == *update.Email {
				return nil, repository.ErrDuplicateEmail
			}
		}
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Address != nil {
		u.Address = *update.Address
	}
	if update.PhoneNumber != nil {
		u.PhoneNumber = *update.PhoneNumber
	}
	r.users[oid] = u
	return &u, nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id, role string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = role
	r.users[oid] = u
	return &u, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.users, oid)
	return &u, nil
}

type LandRepository struct {
	mu    sync.RWMutex
	lands map[primitive.ObjectID]models.LandAd
}

func NewLandRepository() *LandRepository {
	return &LandRepository{lands: make(map[primitive.ObjectID]models.LandAd)}
}

func cloneLand(l models.LandAd) *models.LandAd {
	l.Images = slices.Clone(l.Images)
	if l.Images == nil {
		l.Images = []string{}
	}
	return &l
}

func (r *LandRepository) Create(_ context.Context, land *models.LandAd) error {
	now := time.Now().UTC()
	if land.ID.IsZero() {
		land.ID = primitive.NewObjectID()
	}
	if land.Images == nil {
		land.Images = []string{}
	}
	land.CreatedAt = now
	land.UpdatedAt = now

	r.mu.Lock()
	r.lands[land.ID] = *cloneLand(*land)
	r.mu.Unlock()
	return nil
}

func (r *LandRepository) FindByID(_ context.Context, id string) (*models.LandAd, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lands[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneLand(l), nil
}

func (r *LandRepository) List(_ context.Context, filter models.LandFilter) ([]models.LandAd, error) {
	return r.collect(func(l models.LandAd) bool {
		if filter.City != "" && l.City != filter.City {
			return false
		}
		if filter.District != "" && l.District != filter.District {
			return false
		}
		if filter.Approved != nil && l.IsApproved != *filter.Approved {
			return false
		}
		return true
	}), nil
}

func (r *LandRepository) FindByUserID(_ context.Context, userID string) ([]models.LandAd, error) {
	return r.collect(func(l models.LandAd) bool { return l.UserID == userID }), nil
}

func (r *LandRepository) collect(match func(models.LandAd) bool) []models.LandAd {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.LandAd{}
	for _, l := range r.lands {
		if match(l) {
			out = append(out, *cloneLand(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *LandRepository) Update(_ context.Context, id string, patch models.LandPatch, images []string) (*models.LandAd, error) {
	return r.mutate(id, func(l *models.LandAd) {
		if patch.Title != nil {
			l.Title = *patch.Title
		}
		if patch.Description != nil {
			l.Description = *patch.Description
		}
		if patch.District != nil {
			l.District = *patch.District
		}
		if patch.City != nil {
			l.City = *patch.City
		}
		if patch.Price != nil {
			l.Price = *patch.Price
		}
		if patch.Size != nil {
			l.Size = *patch.Size
		}
		if images != nil {
			l.Images = slices.Clone(images)
		}
	})
}

func (r *LandRepository) SetImages(ctx context.Context, id string, images []string) (*models.LandAd, error) {
	if images == nil {
		images = []string{}
	}
	return r.Update(ctx, id, models.LandPatch{}, images)
}

func (r *LandRepository) PullImages(_ context.Context, id string, urls []string) (*models.LandAd, error) {
	return r.mutate(id, func(l *models.LandAd) {
		l.Images = slices.DeleteFunc(slices.Clone(l.Images), func(u string) bool { return slices.Contains(urls, u) })
	})
}

func (r *LandRepository) SetApproval(_ context.Context, id string, approved bool) (*models.LandAd, error) {
	return r.mutate(id, func(l *models.LandAd) { l.IsApproved = approved })
}

func (r *LandRepository) mutate(id string, apply func(*models.LandAd)) (*models.LandAd, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lands[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	apply(&l)
	l.UpdatedAt = time.Now().UTC()
	r.lands[oid] = l
	return cloneLand(l), nil
}

func (r *LandRepository) Delete(_ context.Context, id string) (*models.LandAd, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lands[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.lands, oid)
	return cloneLand(l), nil
}

type WishlistRepository struct {
	mu        sync.RWMutex
	wishlists map[string]models.Wishlist
}

func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{wishlists: make(map[string]models.Wishlist)}
}

func (r *WishlistRepository) FindByUser(_ context.Context, userID string) (*models.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wishlists[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w.LandIDs = slices.Clone(w.LandIDs)
	return &w, nil
}

func (r *WishlistRepository) AddLand(_ context.Context, userID, landID string) (*models.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	w, ok := r.wishlists[userID]
	if !ok {
		w = models.Wishlist{ID: primitive.NewObjectID(), UserID: userID, LandIDs: []string{}, CreatedAt: now}
	}
	if !slices.Contains(w.LandIDs, landID) {
		w.LandIDs = append(w.LandIDs, landID)
	}
	w.UpdatedAt = now
	r.wishlists[userID] = w

	w.LandIDs = slices.Clone(w.LandIDs)
	return &w, nil
}

func (r *WishlistRepository) RemoveLand(_ context.Context, userID, landID string) (*models.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wishlists[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w.LandIDs = slices.DeleteFunc(slices.Clone(w.LandIDs), func(id string) bool { return id == landID })
	if len(w.LandIDs) == 0 {
		delete(r.wishlists, userID)
		return nil, nil
	}
	w.UpdatedAt = time.Now().UTC()
	r.wishlists[userID] = w

	w.LandIDs = slices.Clone(w.LandIDs)
	return &w, nil
}

func (r *WishlistRepository) DeleteByUser(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wishlists[userID]; !ok {
		return 0, nil
	}
	delete(r.wishlists, userID)
	return 1, nil
}

func (r *WishlistRepository) PullLandEverywhere(_ context.Context, landID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, w := range r.wishlists {
		w.LandIDs = slices.DeleteFunc(slices.Clone(w.LandIDs), func(id string) bool { return id == landID })
		if len(w.LandIDs) == 0 {
			delete(r.wishlists, userID)
			continue
		}
		r.wishlists[userID] = w
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/arzan03/LandMarket/internal/repository/memory"
	"github.com/arzan03/LandMarket/internal/storage"
	"github.com/stretchr/testify/require"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeImages records every call so tests can assert on ordering.
type fakeImages struct {
	mu        sync.Mutex
	next      int
	hosted    map[string]bool
	events    []string
	uploadErr error
}

func newFakeImages() *fakeImages {
	return &fakeImages{hosted: map[string]bool{}}
}

func (f *fakeImages) UploadImages(_ context.Context, files []storage.ImageFile) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	urls := make([]string, 0, len(files))
	for _, file := range files {
		f.next++
		u := fmt.Sprintf("https://media.test/upload/v1/land_ads/%d-%s", f.next, file.Filename)
		f.hosted[u] = true
		urls = append(urls, u)
		f.events = append(f.events, "upload:"+u)
	}
	return urls, nil
}

func (f *fakeImages) DeleteImagesByURLs(_ context.Context, urls []string) storage.DeleteReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	report := storage.DeleteReport{}
	for _, u := range urls {
		delete(f.hosted, u)
		f.events = append(f.events, "delete:"+u)
		report.Deleted = append(report.Deleted, u)
	}
	return report
}

func (f *fakeImages) isHosted(u string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hosted[u]
}

func (f *fakeImages) hostedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.hosted)
}

// plainHasher keeps tests fast; bcrypt is covered in the auth package.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Check(p, h string) bool        { return h == "hashed:"+p }

type stubTokens struct{}

func (stubTokens) Generate(userID, role string) (string, error) { return "token-" + userID + "-" + role, nil }

type env struct {
	users     *memory.UserRepository
	lands     *memory.LandRepository
	wishlists *memory.WishlistRepository
	images    *fakeImages

	auth     *AuthService
	land     *LandService
	user     *UserService
	wishlist *WishlistService
}

func newEnv() *env {
	e := &env{
		users:     memory.NewUserRepository(),
		lands:     memory.NewLandRepository(),
		wishlists: memory.NewWishlistRepository(),
		images:    newFakeImages(),
	}
	e.auth = NewAuthService(e.users, plainHasher{}, stubTokens{}, testLog)
	e.land = NewLandService(e.lands, e.users, e.wishlists, e.images, testLog)
	e.user = NewUserService(e.users, e.lands, e.wishlists, e.land, testLog)
	e.wishlist = NewWishlistService(e.wishlists, e.lands, testLog)
	return e
}

func (e *env) signup(t *testing.T, email string) Actor {
	t.Helper()
	u, err := e.auth.Signup(context.Background(), SignupInput{Name: "Test", Email: email, Password: "password123"})
	require.NoError(t, err)
	return Actor{UserID: u.ID.Hex(), Role: u.Role}
}

func (e *env) admin(t *testing.T) Actor {
	t.Helper()
	a := e.signup(t, "admin@example.com")
	_, err := e.users.UpdateRole(context.Background(), a.UserID, models.RoleAdmin)
	require.NoError(t, err)
	return Actor{UserID: a.UserID, Role: models.RoleAdmin}
}

func files(names ...string) []storage.ImageFile {
	out := make([]storage.ImageFile, len(names))
	for i, n := range names {
		out[i] = storage.ImageFile{Filename: n, ContentType: "image/jpeg", Data: []byte(n)}
	}
	return out
}

func landInput(owner string) models.LandInput {
	return models.LandInput{
		Title:       "Plot A",
		Description: "Flat land near the river",
		District:    "Colombo",
		City:        "Dehiwala",
		Price:       1000,
		Size:        50,
		UserID:      owner,
	}
}

package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/vidgen/internal/client/models"
)

type fakeAPI struct {
	mu sync.Mutex

	users  []models.User
	videos []models.Video
	stats  []models.Stat

	usersCalls, videosCalls, statsCalls, recentCalls int

	actionErr   error
	statsErr    error
	generateErr error
	enhanceErr  error

	deleted     []string
	toggled     []string
	credited    map[string]int
	generated   []string
	enhanceWith string
}

func (f *fakeAPI) Stats(context.Context) ([]models.Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	return f.stats, f.statsErr
}

func (f *fakeAPI) AllUsers(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usersCalls++
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeAPI) AllVideos(context.Context) ([]models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videosCalls++
	return f.videos, nil
}

func (f *fakeAPI) DeleteUser(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.actionErr != nil {
		return f.actionErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

func (f *fakeAPI) toggle(id string, fn func(*models.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.actionErr != nil {
		return f.actionErr
	}
	f.toggled = append(f.toggled, id)
	for i := range f.users {
		if f.users[i].ID == id {
			fn(&f.users[i])
		}
	}
	return nil
}

func (f *fakeAPI) ToggleActive(_ context.Context, id string) error {
	return f.toggle(id, func(u *models.User) { u.IsActive = !u.IsActive })
}

func (f *fakeAPI) ToggleAdmin(_ context.Context, id string) error {
	return f.toggle(id, func(u *models.User) {
		if u.Role == models.RoleAdmin {
			u.Role = models.RoleUser
		} else {
			u.Role = models.RoleAdmin
		}
	})
}

func (f *fakeAPI) AddCredits(_ context.Context, id string, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.actionErr != nil {
		return f.actionErr
	}
	if f.credited == nil {
		f.credited = map[string]int{}
	}
	f.credited[id] += amount
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Credits += amount
		}
	}
	return nil
}

func (f *fakeAPI) GenerateVideo(_ context.Context, prompt string) (models.GeneratedVideo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generateErr != nil {
		return models.GeneratedVideo{}, f.generateErr
	}
	f.generated = append(f.generated, prompt)
	f.videos = append(f.videos, models.Video{ID: prompt, Prompt: prompt})
	return models.GeneratedVideo{VideoURL: "https://cdn/" + prompt + ".mp4"}, nil
}

func (f *fakeAPI) EnhancePrompt(_ context.Context, prompt string) (string, error) {
	if f.enhanceErr != nil {
		return "", f.enhanceErr
	}
	return prompt + f.enhanceWith, nil
}

func (f *fakeAPI) RecentVideos(context.Context) ([]models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recentCalls++
	return append([]models.Video(nil), f.videos...), nil
}

func (f *fakeAPI) ExampleVideos(context.Context) ([]models.Video, error) {
	return []models.Video{{ID: "ex1"}}, nil
}

type note struct {
	ok  bool
	msg string
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *fakeNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note{ok: true, msg: msg})
}

func (n *fakeNotifier) Error(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note{ok: false, msg: msg})
}

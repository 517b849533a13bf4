package topiccache

import (
	"context"
	"testing"
	"time"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

type fakePostRepo struct {
	post.Repository
	titles []string
	calls  int
}

func (f *fakePostRepo) RecentTitles(_ context.Context, _ string, _ time.Time) ([]string, error) {
	f.calls++
	return f.titles, nil
}

func TestRecentTitlesCachesWithinTTL(t *testing.T) {
	repo := &fakePostRepo{titles: []string{"AI in hiring", "Remote work"}}
	cache, err := New(repo, 5*time.Minute)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		titles, err := cache.RecentTitles(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("RecentTitles() error = %v", err)
		}
		if len(titles) != 2 {
			t.Fatalf("RecentTitles() = %v, want 2 titles", titles)
		}
	}

	if repo.calls != 1 {
		t.Errorf("repository calls = %d, want 1 (cached)", repo.calls)
	}
}

func TestRecentTitlesExpires(t *testing.T) {
	repo := &fakePostRepo{titles: []string{"Topic"}}
	cache, err := New(repo, time.Minute)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	current := time.Now()
	cache.now = func() time.Time { return current }

	if _, err := cache.RecentTitles(context.Background(), "user-1"); err != nil {
		t.Fatalf("RecentTitles() error = %v", err)
	}
	current = current.Add(2 * time.Minute)
	if _, err := cache.RecentTitles(context.Background(), "user-1"); err != nil {
		t.Fatalf("RecentTitles() error = %v", err)
	}

	if repo.calls != 2 {
		t.Errorf("repository calls = %d, want 2 (expired entry refetched)", repo.calls)
	}
}

func TestInvalidateDropsEntry(t *testing.T) {
	repo := &fakePostRepo{titles: []string{"Topic"}}
	cache, err := New(repo, time.Hour)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := cache.RecentTitles(context.Background(), "user-1"); err != nil {
		t.Fatalf("RecentTitles() error = %v", err)
	}
	cache.Invalidate("user-1")
	if _, err := cache.RecentTitles(context.Background(), "user-1"); err != nil {
		t.Fatalf("RecentTitles() error = %v", err)
	}

	if repo.calls != 2 {
		t.Errorf("repository calls = %d, want 2 after invalidation", repo.calls)
	}
}

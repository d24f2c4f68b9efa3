package hdsite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogCacheServesAndFilters(t *testing.T) {
	s := setupTestStore(t)
	cache := NewBlogCache(s, time.Minute)

	_, err := s.Create(BlogInput{Title: "TR", Slug: "tr-post", Content: "c", Language: "tr", Published: true})
	require.NoError(t, err)
	_, err = s.Create(BlogInput{Title: "EN", Slug: "en-post", Content: "c", Language: "en"})
	require.NoError(t, err)

	all, err := cache.ListBlogs(LanguageAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	tr, err := cache.ListBlogs("tr")
	require.NoError(t, err)
	require.Len(t, tr, 1)
	assert.Equal(t, "tr-post", tr[0].Slug)

	published, err := cache.ListPublished()
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "tr-post", published[0].Slug)
}

func TestBlogCacheInvalidate(t *testing.T) {
	s := setupTestStore(t)
	cache := NewBlogCache(s, time.Minute)

	all, err := cache.ListBlogs(LanguageAll)
	require.NoError(t, err)
	assert.Empty(t, all)

	// A write behind the cache's back is invisible until Invalidate.
	_, err = s.Create(BlogInput{Title: "New", Slug: "new", Content: "c"})
	require.NoError(t, err)

	all, err = cache.ListBlogs(LanguageAll)
	require.NoError(t, err)
	assert.Empty(t, all, "cache should still serve the stale list")

	cache.Invalidate()
	all, err = cache.ListBlogs(LanguageAll)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBlogCacheExpiresByTTL(t *testing.T) {
	s := setupTestStore(t)
	cache := NewBlogCache(s, 50*time.Millisecond)

	_, err := cache.ListBlogs(LanguageAll)
	require.NoError(t, err)

	_, err = s.Create(BlogInput{Title: "Late", Slug: "late", Content: "c"})
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	all, err := cache.ListBlogs(LanguageAll)
	require.NoError(t, err)
	assert.Len(t, all, 1, "expired cache should reload from the store")
}

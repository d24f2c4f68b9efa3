package hdsite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err, "create store")
	t.Cleanup(func() { s.Close() })
	return s
}

func testInput(slug string) BlogInput {
	return BlogInput{
		Title:    "Test Post",
		Slug:     slug,
		Content:  "<p>Some content</p>",
		Excerpt:  "Summary",
		Language: "tr",
	}
}

func TestStoreCreateAndGet(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Create(testInput("test-post"))
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := s.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Test Post", got.Title)
	assert.Equal(t, "test-post", got.Slug)
	assert.Equal(t, "<p>Some content</p>", got.Content)
	assert.Equal(t, "Summary", got.Excerpt)
	assert.Equal(t, "tr", got.Language)
	assert.False(t, got.Published)
	assert.NotEmpty(t, got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	bySlug, err := s.GetBySlug("test-post")
	require.NoError(t, err)
	assert.Equal(t, got, bySlug)
}

func TestStoreGetNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetByID(999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetBySlug("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCreateDefaultsLanguage(t *testing.T) {
	s := setupTestStore(t)

	in := testInput("no-language")
	in.Language = ""
	id, err := s.Create(in)
	require.NoError(t, err)

	got, err := s.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "tr", got.Language)
}

func TestStoreCreateDuplicateSlug(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.Create(testInput("dup"))
	require.NoError(t, err)

	_, err = s.Create(testInput("dup"))
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	// The first post is untouched by the failed insert.
	got, err := s.GetByID(first)
	require.NoError(t, err)
	assert.Equal(t, "dup", got.Slug)
}

func TestStoreListBlogsOrderAndFilter(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []BlogInput{
		{Title: "Oldest", Slug: "oldest", Content: "c", Language: "tr"},
		{Title: "Middle", Slug: "middle", Content: "c", Language: "en"},
		{Title: "Newest", Slug: "newest", Content: "c", Language: "tr"},
	} {
		_, err := s.Create(p)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond) // distinct created_at
	}

	all, err := s.ListBlogs(LanguageAll)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].Slug)
	assert.Equal(t, "oldest", all[2].Slug)

	tr, err := s.ListBlogs("tr")
	require.NoError(t, err)
	require.Len(t, tr, 2)
	for _, p := range tr {
		assert.Equal(t, "tr", p.Language)
	}
	assert.LessOrEqual(t, len(tr), len(all))

	en, err := s.ListBlogs("en")
	require.NoError(t, err)
	require.Len(t, en, 1)
	assert.Equal(t, "middle", en[0].Slug)

	// Arbitrary language strings are accepted; the filter just matches nothing.
	none, err := s.ListBlogs("de")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoreUpdate(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Create(testInput("update-me"))
	require.NoError(t, err)
	created, err := s.GetByID(id)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	updated, err := s.Update(id, BlogInput{
		Title:         "New Title",
		Slug:          "new-slug",
		Content:       "new content",
		Excerpt:       "new excerpt",
		FeaturedImage: "/public/uploads/x.jpg",
		Language:      "en",
		Published:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, id, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Greater(t, updated.UpdatedAt, created.UpdatedAt, "updated_at must strictly advance")
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "new-slug", updated.Slug)
	assert.True(t, updated.Published)

	// Old slug no longer resolves.
	_, err = s.GetBySlug("update-me")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpdateNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Update(42, testInput("whatever"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpdateDuplicateSlug(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Create(testInput("taken"))
	require.NoError(t, err)
	id, err := s.Create(testInput("mine"))
	require.NoError(t, err)

	in := testInput("taken")
	_, err = s.Update(id, in)
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestStoreDelete(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Create(testInput("to-delete"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))

	_, err = s.GetByID(id)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.ListBlogs(LanguageAll)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Deleting again is not an error.
	assert.NoError(t, s.Delete(id))
}

func TestStoreSchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.sqlite")

	s1, err := NewStore(path)
	require.NoError(t, err)
	id, err := s1.Create(testInput("survives-reopen"))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewStore(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "survives-reopen", got.Slug)
}

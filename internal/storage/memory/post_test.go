package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/post"
)

func createUserContext(userID uint) context.Context {
	ctx := context.Background()
	return auth.WithUserID(ctx, userID)
}

func testInput(title string) post.Input {
	return post.Input{
		Title:    title,
		Subtitle: "A subtitle",
		Body:     "Some body text",
		ImageURL: "https://example.com/image.png",
	}
}

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	storage := NewPostMemoryStorage()

	t.Run("Success post creation", func(t *testing.T) {
		ctx := createUserContext(1)

		p, err := storage.CreatePost(ctx, testInput("Test post"))
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, "Test post", p.Title)
		assert.Equal(t, uint(1), p.UserID)
		assert.Equal(t, uint(1), p.LastEditorID)
		// дата проставляется в длинном календарном формате на момент создания
		assert.Equal(t, time.Now().Format(post.DateFormat), p.Date)

		fromStorage, err := storage.GetPostById(p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, fromStorage.ID)
	})

	t.Run("Error: no authorization", func(t *testing.T) {
		// Используем контекст без информации о пользователе
		ctx := context.Background()

		_, err := storage.CreatePost(ctx, testInput("Another post"))
		assert.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("Error: duplicate title", func(t *testing.T) {
		ctx := createUserContext(1)

		_, err := storage.CreatePost(ctx, testInput("Test post"))
		assert.ErrorIs(t, err, post.ErrDuplicateTitle)

		// состояние хранилища не изменилось
		posts, err := storage.GetAllPosts()
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})
}

func TestPostMemoryStorage_UpdatePost(t *testing.T) {
	storage := NewPostMemoryStorage()
	authorCtx := createUserContext(1)

	created, err := storage.CreatePost(authorCtx, testInput("Original title"))
	require.NoError(t, err)
	originalDate := created.Date

	t.Run("Author and date survive the edit", func(t *testing.T) {
		editorCtx := createUserContext(2)

		updated, err := storage.UpdatePost(editorCtx, created.ID, post.Input{
			Title:    "New title",
			Subtitle: "New subtitle",
			Body:     "New body",
			ImageURL: "https://example.com/new.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, "New subtitle", updated.Subtitle)
		// автор не переназначается, фиксируется только последний редактор
		assert.Equal(t, uint(1), updated.UserID)
		assert.Equal(t, uint(2), updated.LastEditorID)
		assert.Equal(t, originalDate, updated.Date)
	})

	t.Run("Old title becomes free after rename", func(t *testing.T) {
		_, err := storage.CreatePost(authorCtx, testInput("Original title"))
		assert.NoError(t, err)
	})

	t.Run("Error: title taken by another post", func(t *testing.T) {
		_, err := storage.UpdatePost(authorCtx, created.ID, testInput("Original title"))
		assert.ErrorIs(t, err, post.ErrDuplicateTitle)
	})

	t.Run("Error: post not found", func(t *testing.T) {
		_, err := storage.UpdatePost(authorCtx, 99999, testInput("Whatever"))
		assert.ErrorIs(t, err, post.ErrNotFound)
	})

	t.Run("Error: no authorization", func(t *testing.T) {
		_, err := storage.UpdatePost(context.Background(), created.ID, testInput("Whatever"))
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})
}

func TestPostMemoryStorage_DeletePostById(t *testing.T) {
	storage := NewPostMemoryStorage()
	ctx := createUserContext(1)

	created, err := storage.CreatePost(ctx, testInput("Doomed post"))
	require.NoError(t, err)

	t.Run("Error: no authorization", func(t *testing.T) {
		err := storage.DeletePostById(context.Background(), created.ID)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)

		// пост на месте
		_, err = storage.GetPostById(created.ID)
		assert.NoError(t, err)
	})

	t.Run("Successful deletion", func(t *testing.T) {
		err := storage.DeletePostById(ctx, created.ID)
		require.NoError(t, err)

		_, err = storage.GetPostById(created.ID)
		assert.ErrorIs(t, err, post.ErrNotFound)

		// заголовок освободился
		_, err = storage.CreatePost(ctx, testInput("Doomed post"))
		assert.NoError(t, err)
	})

	t.Run("Error: post not found", func(t *testing.T) {
		err := storage.DeletePostById(ctx, 99999)
		assert.ErrorIs(t, err, post.ErrNotFound)
	})
}

func TestPostMemoryStorage_GetAllPosts(t *testing.T) {
	storage := NewPostMemoryStorage()
	ctx := createUserContext(1)

	_, err := storage.CreatePost(ctx, testInput("post 1"))
	require.NoError(t, err)
	_, err = storage.CreatePost(ctx, testInput("post 2"))
	require.NoError(t, err)
	_, err = storage.CreatePost(ctx, testInput("post 3"))
	require.NoError(t, err)

	posts, err := storage.GetAllPosts()
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// стабильный порядок - по возрастанию id
	assert.Equal(t, "post 1", posts[0].Title)
	assert.Equal(t, "post 2", posts[1].Title)
	assert.Equal(t, "post 3", posts[2].Title)
}

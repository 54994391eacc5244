package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/mocks"
	"github.com/VitaminP8/bloggery/internal/storage/memory"
	"github.com/VitaminP8/bloggery/internal/subscription"
)

func newTestHandler(t *testing.T) (*Handler, *mocks.MockMailer) {
	t.Helper()

	manager := subscription.NewSubscriptionManager()
	postStore := memory.NewPostMemoryStorage()
	commentStore := memory.NewCommentMemoryStorage(postStore, manager)
	userStore := memory.NewUserMemoryStorage()
	mail := mocks.NewMockMailer()

	h := &Handler{
		Users:    userStore,
		Posts:    postStore,
		Comments: commentStore,
		Sessions: auth.NewSessionManager("test_jwt_secret", 0),
		Mailer:   mail,
		Subs:     manager,
	}

	return h, mail
}

// doRequest выполняет запрос к роутеру; token передается как Bearer
func doRequest(t *testing.T, h *Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}

func registerUser(t *testing.T, h *Handler, name, email string) sessionResponse {
	t.Helper()

	w := doRequest(t, h, "POST", "/register", "", registerRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp sessionResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestRegister(t *testing.T) {
	h, _ := newTestHandler(t)

	t.Run("First registrant becomes admin and gets a session", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/register", "", registerRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password123",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp sessionResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "admin", resp.User.Role)
		assert.NotEmpty(t, resp.Token)

		// сессионная cookie выставлена сразу после регистрации
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	})

	t.Run("Second registrant is a member", func(t *testing.T) {
		resp := registerUser(t, h, "Bob", "bob@example.com")
		assert.Equal(t, "member", resp.User.Role)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/register", "", registerRequest{
			Name:     "Alice Again",
			Email:    "alice@example.com",
			Password: "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Missing fields", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/register", "", registerRequest{Name: "No Email"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	h, _ := newTestHandler(t)
	registerUser(t, h, "Alice", "alice@example.com")

	t.Run("Successful login", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/login", "", loginRequest{
			Email:    "alice@example.com",
			Password: "password123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp sessionResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("Unknown email", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/login", "", loginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp errorResponse
		decodeBody(t, w, &resp)
		assert.Contains(t, resp.Error, "does not exist")
	})

	t.Run("Wrong password", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/login", "", loginRequest{
			Email:    "alice@example.com",
			Password: "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp errorResponse
		decodeBody(t, w, &resp)
		assert.Contains(t, resp.Error, "Wrong email or password")
	})
}

func TestAdminOnlyPostLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)

	// A регистрируется первым и становится администратором
	admin := registerUser(t, h, "Alice", "alice@example.com")

	w := doRequest(t, h, "POST", "/posts", admin.Token, postRequest{
		Title:    "Hello",
		Subtitle: "First post",
		Body:     "Body of the first post",
		ImageURL: "https://example.com/hello.png",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created postResponse
	decodeBody(t, w, &created)
	assert.Equal(t, admin.User.ID, created.AuthorID)

	member := registerUser(t, h, "Bob", "bob@example.com")

	t.Run("Member cannot create posts", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/posts", member.Token, postRequest{Title: "Bob's post"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Member cannot delete, post stays", func(t *testing.T) {
		w := doRequest(t, h, "DELETE", fmt.Sprintf("/posts/%d", created.ID), member.Token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		// проверка прав отработала до мутации - пост на месте
		w = doRequest(t, h, "GET", "/posts", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var posts []postResponse
		decodeBody(t, w, &posts)
		assert.Len(t, posts, 1)
	})

	t.Run("Anonymous cannot create posts", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/posts", "", postRequest{Title: "Anon post"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Admin edit keeps the original author", func(t *testing.T) {
		w := doRequest(t, h, "PUT", fmt.Sprintf("/posts/%d", created.ID), admin.Token, postRequest{
			Title:    "Hello (edited)",
			Subtitle: "Edited subtitle",
			Body:     "Edited body",
			ImageURL: "https://example.com/hello.png",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var updated postResponse
		decodeBody(t, w, &updated)
		assert.Equal(t, created.AuthorID, updated.AuthorID)
		assert.Equal(t, admin.User.ID, updated.LastEditorID)
		assert.Equal(t, created.Date, updated.Date)
	})

	t.Run("Admin deletes the post", func(t *testing.T) {
		w := doRequest(t, h, "DELETE", fmt.Sprintf("/posts/%d", created.ID), admin.Token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doRequest(t, h, "GET", fmt.Sprintf("/posts/%d", created.ID), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDuplicateTitle(t *testing.T) {
	h, _ := newTestHandler(t)
	admin := registerUser(t, h, "Alice", "alice@example.com")

	w := doRequest(t, h, "POST", "/posts", admin.Token, postRequest{Title: "Unique title"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, h, "POST", "/posts", admin.Token, postRequest{Title: "Unique title"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// состояние не изменилось
	w = doRequest(t, h, "GET", "/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []postResponse
	decodeBody(t, w, &posts)
	assert.Len(t, posts, 1)
}

func TestComments(t *testing.T) {
	h, _ := newTestHandler(t)
	admin := registerUser(t, h, "Alice", "alice@example.com")
	member := registerUser(t, h, "Bob", "bob@example.com")

	w := doRequest(t, h, "POST", "/posts", admin.Token, postRequest{Title: "Commented post"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created postResponse
	decodeBody(t, w, &created)

	t.Run("Authenticated member can comment", func(t *testing.T) {
		w := doRequest(t, h, "POST", fmt.Sprintf("/posts/%d/comments", created.ID), member.Token, commentRequest{
			Text: "Nice post!",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var c commentResponse
		decodeBody(t, w, &c)
		assert.Equal(t, member.User.ID, c.AuthorID)
		assert.Equal(t, created.ID, c.PostID)
	})

	t.Run("Anonymous cannot comment", func(t *testing.T) {
		w := doRequest(t, h, "POST", fmt.Sprintf("/posts/%d/comments", created.ID), "", commentRequest{
			Text: "drive-by comment",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Comment on a missing post", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/posts/99999/comments", member.Token, commentRequest{Text: "lost"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Post page includes its comments", func(t *testing.T) {
		w := doRequest(t, h, "GET", fmt.Sprintf("/posts/%d", created.ID), "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp postWithCommentsResponse
		decodeBody(t, w, &resp)
		require.Len(t, resp.Comments, 1)
		assert.Equal(t, "Nice post!", resp.Comments[0].Text)
	})

	t.Run("Deleting the post cascades to comments", func(t *testing.T) {
		w := doRequest(t, h, "DELETE", fmt.Sprintf("/posts/%d", created.ID), admin.Token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doRequest(t, h, "GET", fmt.Sprintf("/posts/%d/comments", created.ID), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLogout(t *testing.T) {
	h, _ := newTestHandler(t)
	user := registerUser(t, h, "Alice", "alice@example.com")

	t.Run("Anonymous logout is rejected", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/logout", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Logout clears the cookie and is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := doRequest(t, h, "POST", "/logout", user.Token, nil)
			assert.Equal(t, http.StatusNoContent, w.Code)

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Empty(t, cookies[0].Value)
			assert.Less(t, cookies[0].MaxAge, 0)
		}
	})

	t.Run("Anonymous request after logout", func(t *testing.T) {
		w := doRequest(t, h, "GET", "/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMe(t *testing.T) {
	h, _ := newTestHandler(t)
	user := registerUser(t, h, "Alice", "alice@example.com")

	w := doRequest(t, h, "GET", "/me", user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp userResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestContact(t *testing.T) {
	h, mail := newTestHandler(t)

	t.Run("Successful submission", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/contact", "", contactRequest{
			Name:    "Visitor",
			Email:   "visitor@example.com",
			Message: "Hello there",
		})
		require.Equal(t, http.StatusOK, w.Code)

		require.Len(t, mail.Sent, 1)
		assert.Equal(t, "Visitor", mail.Sent[0].Name)
		assert.Equal(t, "Hello there", mail.Sent[0].Body)
	})

	t.Run("Missing fields", func(t *testing.T) {
		w := doRequest(t, h, "POST", "/contact", "", contactRequest{Name: "No Message"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delivery failure", func(t *testing.T) {
		mail.Err = errors.New("smtp is down")
		defer func() { mail.Err = nil }()

		w := doRequest(t, h, "POST", "/contact", "", contactRequest{
			Name:    "Visitor",
			Email:   "visitor@example.com",
			Message: "Hello again",
		})
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestStoreUnavailable(t *testing.T) {
	h, _ := newTestHandler(t)
	h.Users = mocks.NewUnavailableUserStorage()

	w := doRequest(t, h, "POST", "/login", "", loginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStreamCommentsValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	// поток по несуществующему посту сразу отклоняется
	w := doRequest(t, h, "GET", "/posts/99999/comments/stream", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

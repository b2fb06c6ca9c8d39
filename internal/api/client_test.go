package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	"backoffice/internal/mockapi"
)

const testToken = "test-token"

func newTestClient(t *testing.T) (*Client, *mockapi.Store) {
	t.Helper()
	store := mockapi.NewSeededStore()
	srv := httptest.NewServer(mockapi.NewRouter(store, mockapi.Options{Token: testToken}))
	t.Cleanup(srv.Close)

	return New(Options{BaseURL: srv.URL, Token: testToken, Timeout: 5 * time.Second}), store
}

func requireNetworkError(t *testing.T, err error, status int) *domain.NetworkError {
	t.Helper()
	var nerr *domain.NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, status, nerr.Status)
	return nerr
}

func TestListUsers(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	users, total, err := c.ListUsers(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, mockapi.SeedUsers, total)
	assert.Len(t, users, 10)
	assert.Equal(t, int64(1), users[0].No)
	assert.Equal(t, "Kim철수", users[0].Nickname)

	users, total, err = c.ListUsers(ctx, 1, 10, "kim")
	require.NoError(t, err)
	assert.NotZero(t, total)
	for _, u := range users {
		assert.Contains(t, u.Nickname, "Kim")
	}
}

func TestListBlockedUsers(t *testing.T) {
	c, _ := newTestClient(t)

	users, total, err := c.ListBlockedUsers(context.Background(), 3, 10, "")
	require.NoError(t, err)
	assert.Equal(t, mockapi.SeedBlockedUsers, total)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.True(t, u.Blocked)
		assert.NotEmpty(t, u.BlockReason)
	}
}

func TestGetAndDeleteUser(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	detail, err := c.GetUser(ctx, "user02@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.No)
	assert.Equal(t, "PREMIUM", detail.Membership)

	require.NoError(t, c.DeleteUser(ctx, "user02@example.com"))

	_, err = c.GetUser(ctx, "user02@example.com")
	nerr := requireNetworkError(t, err, http.StatusNotFound)
	assert.Equal(t, "GET /admin/user/user02@example.com", nerr.Op)
}

func TestMemberships(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	rows, total, err := c.ListMemberships(ctx, 1, 10, "VIP", "")
	require.NoError(t, err)
	assert.Equal(t, mockapi.SeedUsers/3, total)
	for _, m := range rows {
		assert.Equal(t, "VIP", m.Grade)
	}

	require.NoError(t, c.ChangeGrade(ctx, 1, "VIP"))
	rows, _, err = c.ListMemberships(ctx, 1, 10, "VIP", "user01@")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestChangeGradeFailureCarriesStatus(t *testing.T) {
	c, store := newTestClient(t)
	store.FailRequests("PATCH /admin/membership/2", http.StatusInternalServerError)

	err := c.ChangeGrade(context.Background(), 2, "VIP")
	nerr := requireNetworkError(t, err, http.StatusInternalServerError)
	assert.Equal(t, "PATCH /admin/membership/2", nerr.Op)
	assert.Contains(t, err.Error(), "요청을 처리하지 못했습니다")
}

func TestCatalog(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	orders, err := c.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, mockapi.SeedOrders)

	products, err := c.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, mockapi.SeedProducts)
}

func TestPostLifecycle(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	faqs, err := c.ListPosts(ctx, FAQs)
	require.NoError(t, err)
	assert.Len(t, faqs, mockapi.SeedFAQs)

	created, err := c.CreatePost(ctx, Notices, domain.Post{Title: "점검 안내", Category: "점검", Content: "02:00"})
	require.NoError(t, err)
	require.NotZero(t, created.No)

	created.Content = "03:00"
	updated, err := c.UpdatePost(ctx, Notices, created)
	require.NoError(t, err)
	assert.Equal(t, "03:00", updated.Content)

	got, err := c.GetPost(ctx, Notices, created.No)
	require.NoError(t, err)
	assert.Equal(t, "03:00", got.Content)

	require.NoError(t, c.DeletePost(ctx, Notices, created.No))
	_, err = c.GetPost(ctx, Notices, created.No)
	requireNetworkError(t, err, http.StatusNotFound)
}

func TestAdmins(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	admin, err := c.CreateAdmin(ctx, domain.NewAdmin{Email: "new@example.com", Name: "신규", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", admin.Email)

	admins, err := c.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 3)

	_, err = c.CreateAdmin(ctx, domain.NewAdmin{Email: "new@example.com", Name: "중복", Password: "password123"})
	requireNetworkError(t, err, http.StatusConflict)
}

func TestDocuments(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	doc, err := c.GetDocument(ctx, Terms)
	require.NoError(t, err)
	assert.Equal(t, "이용약관", doc.Title)

	doc, err = c.UpdateDocument(ctx, Privacy, "개인정보처리방침", "개정본")
	require.NoError(t, err)
	assert.Equal(t, "개정본", doc.Content)
	assert.Equal(t, Privacy, doc.Kind)
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	c, _ := newTestClient(t)
	c.token = ""

	_, err := c.ListOrders(context.Background())
	requireNetworkError(t, err, http.StatusUnauthorized)
}

func TestInvalidResponseIsRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative total", `{"users":[],"total":-1}`},
		{"too many items", `{"users":[{"no":1,"email":"a"},{"no":2,"email":"b"}],"total":2}`},
		{"missing id", `{"users":[{"email":"a"}],"total":1}`},
		{"not json", `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(Options{BaseURL: srv.URL})
			_, _, err := c.ListUsers(context.Background(), 1, 1, "")
			requireNetworkError(t, err, http.StatusOK)
		})
	}
}

func TestTransportErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Options{BaseURL: url, RetryMax: 0, Timeout: time.Second})
	_, err := c.ListOrders(context.Background())
	nerr := requireNetworkError(t, err, 0)
	assert.Equal(t, "GET /admin/order", nerr.Op)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"orders":[],"total":0}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, RetryMax: 2})
	orders, err := c.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, int32(2), calls.Load())
}

func TestWritesAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, RetryMax: 2})

	err := c.ChangeGrade(context.Background(), 2, "VIP")
	requireNetworkError(t, err, http.StatusInternalServerError)
	assert.Equal(t, int32(1), calls.Load())

	calls.Store(0)
	err = c.DeleteUser(context.Background(), "user01@example.com")
	requireNetworkError(t, err, http.StatusInternalServerError)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCancelledContext(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListOrders(ctx)
	requireNetworkError(t, err, 0)
	assert.True(t, errors.Is(err, context.Canceled))
}

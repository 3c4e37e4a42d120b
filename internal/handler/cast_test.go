package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-selling/internal/config"
	"github.com/iliyamo/cinema-ticket-selling/internal/handler"
)

func TestCastCreateValidation(t *testing.T) {
	h := handler.NewCastHandler(nil, nil)

	c, rec := request(http.MethodPost, "/v1/casts", `{"movie_id": "nope"}`, 9)
	c.Set("is_admin", true)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = request(http.MethodPost, "/v1/casts", `{"actor_name": "Jane Doe"}`, 9)
	c.Set("is_admin", true)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = request(http.MethodPost, "/v1/casts", `{"movie_id": 1, "actor_name": "  "}`, 9)
	c.Set("is_admin", true)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCastListByMovieRejectsBadID(t *testing.T) {
	h := handler.NewCastHandler(nil, nil)

	c, rec := request(http.MethodGet, "/v1/movies/abc/cast", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.ListByMovie(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewReactValidation(t *testing.T) {
	h := handler.NewReviewHandler(nil, nil)

	c, rec := request(http.MethodPost, "/v1/reviews/1/react", `{"reaction_type": "meh"}`, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.React(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = request(http.MethodPost, "/v1/reviews/1/react", `{"reaction_type": "like"}`, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.React(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminCreateUserValidation(t *testing.T) {
	h := handler.NewUserHandler(config.Config{BcryptCost: 4}, nil)

	c, rec := request(http.MethodPost, "/v1/users", `{"email": "a@b.c", "password": "short", "full_name": "A"}`, 9)
	c.Set("is_admin", true)
	require.NoError(t, h.AdminCreate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = request(http.MethodPost, "/v1/users", `{"password": "long enough"}`, 9)
	c.Set("is_admin", true)
	require.NoError(t, h.AdminCreate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminSetActiveValidation(t *testing.T) {
	h := handler.NewUserHandler(config.Config{}, nil)

	c, rec := request(http.MethodPatch, "/v1/users/1/status", `{}`, 9)
	c.Set("is_admin", true)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.AdminSetActive(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminListUserFilters(t *testing.T) {
	h := handler.NewUserHandler(config.Config{}, nil)

	c, rec := request(http.MethodGet, "/v1/users?status=banned", "", 9)
	c.Set("is_admin", true)
	require.NoError(t, h.AdminList(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = request(http.MethodGet, "/v1/users?role=owner", "", 9)
	c.Set("is_admin", true)
	require.NoError(t, h.AdminList(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

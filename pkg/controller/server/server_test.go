package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/repolens/repolens/pkg/controller/server"
	"github.com/repolens/repolens/pkg/domain/interfaces"
	"github.com/repolens/repolens/pkg/domain/model"
	"github.com/repolens/repolens/pkg/domain/types"
)

type usecaseMock struct {
	getUserRepos  func(ctx context.Context, login string) ([]model.UserRepo, error)
	getUsersRepos func(ctx context.Context) ([]model.UserRepo, error)
}

var _ interfaces.UseCase = (*usecaseMock)(nil)

func (x *usecaseMock) GetUserRepos(ctx context.Context, login string) ([]model.UserRepo, error) {
	return x.getUserRepos(ctx, login)
}

func (x *usecaseMock) GetUsersRepos(ctx context.Context) ([]model.UserRepo, error) {
	return x.getUsersRepos(ctx)
}

type errBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func callAPI(t *testing.T, uc interfaces.UseCase, path string) *httptest.ResponseRecorder {
	srv := server.New(uc)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	rec := callAPI(t, &usecaseMock{}, "/health")
	gt.V(t, rec.Code).Equal(http.StatusOK)
	gt.V(t, rec.Body.String()).Equal("ok")
}

func TestGetUserRepos(t *testing.T) {
	t.Run("success returns the aggregated array", func(t *testing.T) {
		mockUC := &usecaseMock{
			getUserRepos: func(ctx context.Context, login string) ([]model.UserRepo, error) {
				gt.V(t, login).Equal("octocat")
				return []model.UserRepo{
					{
						RepoName: "Hello-World",
						Owner:    "octocat",
						Branches: []model.Branch{{Name: "main", Commit: model.Commit{SHA: "7fd1a60b"}}},
					},
				}, nil
			},
		}

		rec := callAPI(t, mockUC, "/api/users/repo/octocat")

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Header().Get("Content-Type")).Equal("application/json")

		var repos []model.UserRepo
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &repos))
		gt.V(t, len(repos)).Equal(1)
		gt.V(t, repos[0].RepoName).Equal("Hello-World")
		gt.V(t, repos[0].Owner).Equal("octocat")
		gt.V(t, len(repos[0].Branches)).Equal(1)
	})

	t.Run("empty result serializes as an empty array", func(t *testing.T) {
		mockUC := &usecaseMock{
			getUserRepos: func(ctx context.Context, login string) ([]model.UserRepo, error) {
				return nil, nil
			},
		}

		rec := callAPI(t, mockUC, "/api/users/repo/octocat")
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("[]")
	})

	t.Run("unknown user maps to 404 with the fixed body", func(t *testing.T) {
		mockUC := &usecaseMock{
			getUserRepos: func(ctx context.Context, login string) ([]model.UserRepo, error) {
				return nil, goerr.Wrap(types.ErrUserNotFound, "unknown user")
			},
		}

		rec := callAPI(t, mockUC, "/api/users/repo/ghost404")
		gt.V(t, rec.Code).Equal(http.StatusNotFound)

		var body errBody
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		gt.V(t, body.Message).Equal("User not found")
		gt.V(t, body.Code).Equal("404 http status code")
	})

	t.Run("missing repos map to 404 with the fixed body", func(t *testing.T) {
		mockUC := &usecaseMock{
			getUserRepos: func(ctx context.Context, login string) ([]model.UserRepo, error) {
				return nil, goerr.Wrap(types.ErrReposNotFound, "user has no repositories")
			},
		}

		rec := callAPI(t, mockUC, "/api/users/repo/octocat")
		gt.V(t, rec.Code).Equal(http.StatusNotFound)

		var body errBody
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		gt.V(t, body.Message).Equal("Repos not found")
		gt.V(t, body.Code).Equal("404 http status code")
	})

	t.Run("upstream failure maps to 409 embedding the upstream message", func(t *testing.T) {
		mockUC := &usecaseMock{
			getUserRepos: func(ctx context.Context, login string) ([]model.UserRepo, error) {
				return nil, goerr.Wrap(types.ErrRestClient, "upstream responded with error",
					goerr.V(types.KeyUpstreamMessage, "503 Service Unavailable: try again later"))
			},
		}

		rec := callAPI(t, mockUC, "/api/users/repo/octocat")
		gt.V(t, rec.Code).Equal(http.StatusConflict)

		var body errBody
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		gt.V(t, body.Message).Equal("Server responded with error due to the reason: 503 Service Unavailable: try again later")
		gt.V(t, body.Code).Equal("409 http status code")
	})

	t.Run("unmodeled error maps to 500", func(t *testing.T) {
		mockUC := &usecaseMock{
			getUserRepos: func(ctx context.Context, login string) ([]model.UserRepo, error) {
				return nil, errors.New("unexpected")
			},
		}

		rec := callAPI(t, mockUC, "/api/users/repo/octocat")
		gt.V(t, rec.Code).Equal(http.StatusInternalServerError)

		var body errBody
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		gt.V(t, body.Message).Equal("Internal server error")
		gt.V(t, body.Code).Equal("500 http status code")
	})
}

func TestGetUsersRepos(t *testing.T) {
	t.Run("bulk success returns the union", func(t *testing.T) {
		mockUC := &usecaseMock{
			getUsersRepos: func(ctx context.Context) ([]model.UserRepo, error) {
				return []model.UserRepo{
					{RepoName: "Hello-World", Owner: "octocat", Branches: []model.Branch{}},
					{RepoName: "hubot-scripts", Owner: "hubot", Branches: []model.Branch{}},
				}, nil
			},
		}

		rec := callAPI(t, mockUC, "/api/users/repos")
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var repos []model.UserRepo
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &repos))
		gt.V(t, len(repos)).Equal(2)
	})

	t.Run("directory listing failure maps to 409", func(t *testing.T) {
		mockUC := &usecaseMock{
			getUsersRepos: func(ctx context.Context) ([]model.UserRepo, error) {
				return nil, goerr.Wrap(types.ErrRestClient, "upstream responded with error",
					goerr.V(types.KeyUpstreamMessage, "502 Bad Gateway"))
			},
		}

		rec := callAPI(t, mockUC, "/api/users/repos")
		gt.V(t, rec.Code).Equal(http.StatusConflict)

		var body errBody
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		gt.V(t, body.Message).Equal("Server responded with error due to the reason: 502 Bad Gateway")
	})
}

package server

import (
	"context"
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/repolens/repolens/pkg/domain/interfaces"
	"github.com/repolens/repolens/pkg/domain/model"
	"github.com/repolens/repolens/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func New(uc interfaces.UseCase) *Server {
	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/repo/{login}", func(w http.ResponseWriter, r *http.Request) {
			repos, err := uc.GetUserRepos(r.Context(), chi.URLParam(r, "login"))
			if err != nil {
				respondError(r.Context(), w, err)
				return
			}
			respondRepos(r.Context(), w, repos)
		})
		r.Get("/repos", func(w http.ResponseWriter, r *http.Request) {
			repos, err := uc.GetUsersRepos(r.Context())
			if err != nil {
				respondError(r.Context(), w, err)
				return
			}
			respondRepos(r.Context(), w, repos)
		})
	})

	return &Server{
		mux: r,
	}
}

// respondRepos serializes a successful aggregation result. The body is
// always a JSON array, never null.
func respondRepos(ctx context.Context, w http.ResponseWriter, repos []model.UserRepo) {
	if repos == nil {
		repos = []model.UserRepo{}
	}

	body, err := json.Marshal(repos)
	if err != nil {
		logging.From(ctx).Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"message":"Internal server error","code":"500 http status code"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, http.StatusOK, body)
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

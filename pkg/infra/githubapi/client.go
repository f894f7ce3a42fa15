package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/repolens/repolens/pkg/domain/interfaces"
	"github.com/repolens/repolens/pkg/domain/model"
	"github.com/repolens/repolens/pkg/domain/types"
	"github.com/repolens/repolens/pkg/utils/logging"
)

const acceptHeader = "application/vnd.github+json"

// HTTPClient is the transport used to issue upstream requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the upstream hosting API. Its configuration is fixed
// at construction and it is safe for concurrent use.
type Client struct {
	baseURL    string
	token      types.GitHubToken
	version    string
	httpClient HTTPClient
}

var _ interfaces.GitHubClient = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(x *Client) {
		x.httpClient = httpClient
	}
}

func New(baseURL string, token types.GitHubToken, version string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "baseURL is empty")
	}
	if token == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "token is empty")
	}
	if version == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "version is empty")
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		version:    version,
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// GetUser resolves a login to its canonical user record.
func (x *Client) GetUser(ctx context.Context, login string) (*model.User, error) {
	resp, err := x.get(ctx, "/users/"+url.PathEscape(login))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, goerr.Wrap(ErrNotFound, "user does not exist", goerr.V("login", login))
	}
	if !is2xx(resp.StatusCode) {
		return nil, upstreamError(resp)
	}

	var user model.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user response", goerr.V("login", login))
	}

	return &user, nil
}

// ListUserRepos returns the raw repository list of the user. An empty or
// absent body yields an empty slice, not an error.
func (x *Client) ListUserRepos(ctx context.Context, login string) ([]model.Repository, error) {
	resp, err := x.get(ctx, "/users/"+url.PathEscape(login)+"/repos")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, upstreamError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read repos response", goerr.V("login", login))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return []model.Repository{}, nil
	}

	var repos []model.Repository
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, goerr.Wrap(err, "failed to decode repos response", goerr.V("login", login))
	}
	if repos == nil {
		repos = []model.Repository{}
	}

	return repos, nil
}

// ListBranches returns the branches of a repository. A 404 or absent
// body yields (nil, nil), the skip signal for the caller. A present but
// empty branch array yields a non-nil empty slice.
func (x *Client) ListBranches(ctx context.Context, owner, repo string) ([]model.Branch, error) {
	resp, err := x.get(ctx, "/repos/"+url.PathEscape(owner)+"/"+url.PathEscape(repo)+"/branches")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if !is2xx(resp.StatusCode) {
		return nil, upstreamError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read branches response",
			goerr.V("owner", owner), goerr.V("repo", repo))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	// A JSON "null" body also unmarshals to a nil slice, which keeps the
	// skip semantics; "[]" yields a non-nil empty slice.
	var branches []model.Branch
	if err := json.Unmarshal(body, &branches); err != nil {
		return nil, goerr.Wrap(err, "failed to decode branches response",
			goerr.V("owner", owner), goerr.V("repo", repo))
	}

	return branches, nil
}

// ListUsers returns all users known to the upstream.
func (x *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	resp, err := x.get(ctx, "/users")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, upstreamError(resp)
	}

	var users []model.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, goerr.Wrap(err, "failed to decode users response")
	}

	return users, nil
}

func (x *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, x.baseURL+path, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build upstream request", goerr.V("path", path))
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Authorization", "Bearer "+string(x.token))
	req.Header.Set("X-GitHub-Api-Version", x.version)

	logging.From(ctx).Debug("sending upstream request", slog.String("path", path))

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(types.ErrRestClient, "upstream request failed",
			goerr.V("path", path),
			goerr.V(types.KeyUpstreamMessage, err.Error()),
		)
	}

	return resp, nil
}

func is2xx(code int) bool {
	return code >= 200 && code < 300
}

// upstreamError drains the response body and converts a non-2xx upstream
// response into an ErrRestClient wrap carrying the upstream's own message.
func upstreamError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	return goerr.Wrap(types.ErrRestClient, "upstream responded with error",
		goerr.V("status", resp.StatusCode),
		goerr.V(types.KeyUpstreamMessage, upstreamMessage(resp.Status, body)),
	)
}

// upstreamMessage composes the message embedded into error responses. The
// upstream's own `{"message": ...}` body is preferred, raw body otherwise.
func upstreamMessage(status string, body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return status + ": " + parsed.Message
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return status + ": " + s
	}
	return status
}

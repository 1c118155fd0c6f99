package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"

	"github.com/qwitter/cli/pkg/client"
	"github.com/qwitter/cli/pkg/config"
	qerrors "github.com/qwitter/cli/pkg/errors"
	"github.com/qwitter/cli/pkg/logger"
)

// RequestIDHeader carries a per-dispatch id for log correlation.
const RequestIDHeader = "X-Request-ID"

// Dispatcher issues action requests and interprets their envelopes.
type Dispatcher struct {
	http   *resty.Client
	routes Routes
	dedupe bool
	group  singleflight.Group
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDedupe toggles sharing of identical in-flight requests.
func WithDedupe(enabled bool) Option {
	return func(d *Dispatcher) {
		d.dedupe = enabled
	}
}

// NewDispatcher builds a dispatcher over c using the given route layout.
func NewDispatcher(c *resty.Client, routes Routes, opts ...Option) *Dispatcher {
	d := &Dispatcher{http: c, routes: routes, dedupe: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Default builds a dispatcher from the shared client and configuration.
func Default() (*Dispatcher, error) {
	routes, err := RoutesFor(config.GetString("api.routes"))
	if err != nil {
		return nil, err
	}
	return NewDispatcher(client.GetClient(), routes, WithDedupe(config.GetBool("actions.dedupe"))), nil
}

// Routes returns the route layout in use.
func (d *Dispatcher) Routes() Routes {
	return d.routes
}

// Client returns the underlying HTTP client.
func (d *Dispatcher) Client() *resty.Client {
	return d.http
}

func validate(req Request) error {
	if req.Kind == ActionConnect {
		if strings.TrimSpace(req.Username) == "" {
			return qerrors.ValidationError("username", "cannot be empty").WithAction(string(req.Kind))
		}
		return nil
	}
	for _, k := range Kinds {
		if k == req.Kind {
			if req.PostID <= 0 {
				return qerrors.ValidationError("post id", "must be a positive integer").WithAction(string(req.Kind))
			}
			return nil
		}
	}
	return qerrors.ValidationError("action", "unknown kind "+string(req.Kind))
}

// Dispatch sends req and returns the envelope of a successful action. Every
// other outcome is a *errors.CLIError whose Type is the reason.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Envelope, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if !d.dedupe {
		return d.send(ctx, req)
	}

	// The shared call outlives any one caller; the client timeout still bounds it.
	ch := d.group.DoChan(req.key(), func() (interface{}, error) {
		return d.send(context.WithoutCancel(ctx), req)
	})
	select {
	case <-ctx.Done():
		return nil, cancelled(ctx, req.Kind)
	case res := <-ch:
		if res.Shared {
			logger.Debug("Shared in-flight action", "kind", req.Kind, "key", req.key())
		}
		if res.Err != nil {
			return nil, res.Err
		}
		env := *res.Val.(*Envelope)
		return &env, nil
	}
}

func cancelled(ctx context.Context, kind ActionKind) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return qerrors.TimeoutError().WithAction(string(kind))
	}
	return qerrors.Transport("request cancelled", ctx.Err()).WithAction(string(kind))
}

func (d *Dispatcher) send(ctx context.Context, req Request) (*Envelope, error) {
	path := d.routes.Path(req)
	requestID := uuid.NewString()
	started := time.Now()
	logger.Debug("Dispatching action", "kind", req.Kind, "path", path, "request_id", requestID)

	r := d.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetHeader("Accept", "application/json")
	if req.Kind == ActionEdit {
		r.SetHeader("Content-Type", "application/json").
			SetBody(map[string]string{d.routes.EditField: req.Content})
	}

	resp, err := r.Post(path)
	if err != nil {
		logger.Warn("Action transport failure", "kind", req.Kind, "path", path, "error", err)
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, qerrors.TimeoutError().WithAction(string(req.Kind))
		}
		return nil, qerrors.Transport("request failed", err).WithAction(string(req.Kind))
	}

	env, err := d.interpret(req.Kind, resp)
	logger.Debug("Action finished",
		"kind", req.Kind,
		"request_id", requestID,
		"http_status", resp.StatusCode(),
		"duration", time.Since(started),
		"ok", err == nil)
	return env, err
}

// interpret applies the response contract shared by every action.
func (d *Dispatcher) interpret(kind ActionKind, resp *resty.Response) (*Envelope, error) {
	if resp.StatusCode() == http.StatusUnauthorized || d.redirectedToLogin(resp) {
		return nil, qerrors.Unauthenticated().WithAction(string(kind))
	}

	var env Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, qerrors.Transport("invalid response from server", err).WithAction(string(kind))
	}
	if env.Status == "" {
		return nil, qerrors.Transport("response has no status", nil).WithAction(string(kind))
	}

	switch {
	case env.Status == StatusUnauthenticated:
		return nil, qerrors.Unauthenticated().WithAction(string(kind))
	case kind.Toggle() && env.Status == StatusNotFound:
		return nil, qerrors.Rejected(env.Status, env.Response).WithAction(string(kind))
	case !kind.Toggle() && env.Status != StatusCreated:
		return nil, qerrors.Rejected(env.Status, env.Response).WithAction(string(kind))
	}
	return &env, nil
}

// redirectedToLogin catches login_required redirects, which end on the
// login page instead of returning an envelope.
func (d *Dispatcher) redirectedToLogin(resp *resty.Response) bool {
	if resp.RawResponse == nil || resp.RawResponse.Request == nil {
		return false
	}
	final := strings.TrimSuffix(resp.RawResponse.Request.URL.Path, "/")
	return final == d.routes.LoginPath()
}

// Connect toggles following username.
func (d *Dispatcher) Connect(ctx context.Context, username string) (*ConnectResult, error) {
	env, err := d.Dispatch(ctx, Request{Kind: ActionConnect, Username: username})
	if err != nil {
		return nil, err
	}
	return &ConnectResult{Username: username, Message: env.Response}, nil
}

// React toggles the current user's like on a post.
func (d *Dispatcher) React(ctx context.Context, postID int) (*ReactResult, error) {
	env, err := d.Dispatch(ctx, Request{Kind: ActionReact, PostID: postID})
	if err != nil {
		return nil, err
	}
	return &ReactResult{PostID: postID, Liked: env.Action == ActionLiked, Count: env.PostReactionsCount}, nil
}

// Bookmark toggles the current user's bookmark on a post.
func (d *Dispatcher) Bookmark(ctx context.Context, postID int) (*BookmarkResult, error) {
	env, err := d.Dispatch(ctx, Request{Kind: ActionBookmark, PostID: postID})
	if err != nil {
		return nil, err
	}
	return &BookmarkResult{PostID: postID, Bookmarked: env.Action == ActionBookmarked}, nil
}

// Edit replaces a post's text.
func (d *Dispatcher) Edit(ctx context.Context, postID int, content string) (*EditResult, error) {
	env, err := d.Dispatch(ctx, Request{Kind: ActionEdit, PostID: postID, Content: content})
	if err != nil {
		return nil, err
	}
	return &EditResult{PostID: postID, Content: env.PostContent}, nil
}

// Delete removes a post.
func (d *Dispatcher) Delete(ctx context.Context, postID int) (*DeleteResult, error) {
	env, err := d.Dispatch(ctx, Request{Kind: ActionDelete, PostID: postID})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{PostID: postID, Message: env.Action}, nil
}

// Pin toggles a post as the author's pinned post.
func (d *Dispatcher) Pin(ctx context.Context, postID int) (*PinResult, error) {
	env, err := d.Dispatch(ctx, Request{Kind: ActionPin, PostID: postID})
	if err != nil {
		return nil, err
	}
	return &PinResult{PostID: postID, Username: env.Username}, nil
}

package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]lendpool.Handler
}

var _ lendpool.Registry = (*Router)(nil)
var _ lendpool.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]lendpool.Handler),
	}
}

// Handle adds a new Handler for the given message type.
func (r *Router) Handle(msg lendpool.Msg, h lendpool.Handler) {
	path := msg.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path.
func (r *Router) handler(m lendpool.Msg) (lendpool.Handler, error) {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h, nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h, err := r.handler(msg)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h, err := r.handler(msg)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

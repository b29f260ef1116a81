package bazaar

import (
	"fmt"
)

// Query modifiers.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model groups together a key and its value returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler is anything that can process ABCI queries.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister is a function that adds some handlers to the router.
type QueryRegister func(QueryRouter)

// QueryRouter directs each query to the handler registered for its path.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes.
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll registers a number of QueryRegister at once.
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new handler for the given path. It panics if another
// handler was already registered for that path.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering query route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for the path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

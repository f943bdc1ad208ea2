package quorum

import "fmt"

// Query modifiers understood by the buckets.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for one path. mod selects how data
// is interpreted, see KeyQueryMod and PrefixQueryMod.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister lets an extension add its query paths.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches ABCI queries by path.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with this router.
func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, register := range regs {
		register(r)
	}
}

// Register binds h to path. A path can be bound only once.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, dup := r.routes[path]; dup {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

package nested

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ItemParam is the path parameter naming an individual record.
const ItemParam = "pk"

// Resource serves one collection and its items.
type Resource interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Retrieve(w http.ResponseWriter, r *http.Request)
}

// Router registers resources on a chi router.
type Router struct {
	mux       chi.Router
	forbidden http.HandlerFunc
	patterns  []string
}

// NewRouter wraps mux. forbidden answers DELETE on every registered route.
func NewRouter(mux chi.Router, forbidden http.HandlerFunc) *Router {
	return &Router{mux: mux, forbidden: forbidden}
}

// Node is a registered collection that children can nest under.
type Node struct {
	router     *Router
	collection string
}

// Register mounts a top-level resource at /segment.
func (rt *Router) Register(segment string, res Resource) *Node {
	return rt.mount("/"+segment, res)
}

// Patterns returns every collection pattern registered so far, in order.
func (rt *Router) Patterns() []string {
	return append([]string(nil), rt.patterns...)
}

// Register nests a child resource under an item of n. lookup names the
// ancestor ("journal_id") the captured item key is exposed as.
func (n *Node) Register(segment, lookup string, res Resource) *Node {
	collection := n.collection + "/{" + LookupPrefix + lookup + "}/" + segment
	return n.router.mount(collection, res)
}

// Pattern is the collection route pattern.
func (n *Node) Pattern() string { return n.collection }

// ItemPattern is the individual record route pattern.
func (n *Node) ItemPattern() string { return n.collection + "/{" + ItemParam + "}" }

func (rt *Router) mount(collection string, res Resource) *Node {
	node := &Node{router: rt, collection: collection}

	rt.mux.Get(collection, res.List)
	rt.mux.Post(collection, res.Create)
	rt.mux.Get(node.ItemPattern(), res.Retrieve)
	if rt.forbidden != nil {
		rt.mux.Delete(collection, rt.forbidden)
		rt.mux.Delete(node.ItemPattern(), rt.forbidden)
	}

	rt.patterns = append(rt.patterns, collection)
	return node
}

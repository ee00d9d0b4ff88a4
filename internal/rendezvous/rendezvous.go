package rendezvous

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/satmihir/smchash"
	"github.com/satmihir/smchash/internal/hasher"
)

var ErrInvalidNode = errors.New("invalid node address")

// Node is one routing target, identified by host and port.
type Node struct {
	host string
	port int

	identity     string // host:port, immutable
	identityHash uint64 // smchash of identity, immutable
}

func NewNode(host string, port int) *Node {
	n := &Node{host: host, port: port}
	n.identity = net.JoinHostPort(host, strconv.Itoa(port))
	n.identityHash = smchash.HashString(n.identity)
	return n
}

// ParseNode parses "host:port".
func ParseNode(addr string) (*Node, error) {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidNode, addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return nil, fmt.Errorf("%w %q: bad port %q", ErrInvalidNode, addr, portStr)
	}
	return NewNode(host, port), nil
}

// ParseNodes parses a comma-separated list of "host:port" entries. Empty entries are skipped.
func ParseNodes(list string) ([]*Node, error) {
	var nodes []*Node
	for _, addr := range strings.Split(list, ",") {
		if strings.TrimSpace(addr) == "" {
			continue
		}
		n, err := ParseNode(addr)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (n *Node) String() string { return n.identity }

// A Router picks the nodes that own a key.
type Router interface {
	// SetNodes replaces the node set.
	SetNodes(nodes []*Node)
	// GetNodes returns up to k nodes for a key, best first.
	GetNodes(key []byte, k int) []*Node
}

// RendezvousRouter does highest-random-weight routing. It is safe for concurrent use.
type RendezvousRouter struct {
	nodes  atomic.Value // []*Node
	hasher hasher.Hash64
}

// NewRendezvousRouter scores keys with h, or with the unsalted smchash hasher when h is nil.
func NewRendezvousRouter(nodes []*Node, h hasher.Hash64) *RendezvousRouter {
	if h == nil {
		h = hasher.DefaultUnsaltedHash64
	}
	r := &RendezvousRouter{hasher: h}
	r.nodes.Store(([]*Node)(nil))
	r.SetNodes(nodes)
	return r
}

func (r *RendezvousRouter) SetNodes(nodes []*Node) {
	copied := make([]*Node, len(nodes))
	copy(copied, nodes)
	r.nodes.Store(copied)
}

type nodeScore struct {
	node  *Node
	score uint64
}

// better orders by descending score, then ascending identity.
func better(a, b nodeScore) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.node.identity < b.node.identity
}

func (r *RendezvousRouter) GetNodes(key []byte, k int) []*Node {
	nodes := r.nodes.Load().([]*Node)
	if len(nodes) == 0 || k <= 0 {
		return nil
	}

	// key followed by the node's identity hash
	buf := make([]byte, len(key)+8)
	copy(buf, key)
	score := func(n *Node) nodeScore {
		binary.LittleEndian.PutUint64(buf[len(key):], n.identityHash)
		return nodeScore{node: n, score: r.hasher.Hash64(buf)}
	}

	if k == 1 {
		best := score(nodes[0])
		for _, n := range nodes[1:] {
			if s := score(n); better(s, best) {
				best = s
			}
		}
		return []*Node{best.node}
	}

	scores := make([]nodeScore, len(nodes))
	for i, n := range nodes {
		scores[i] = score(n)
	}
	sort.Slice(scores, func(i, j int) bool {
		return better(scores[i], scores[j])
	})

	k = min(k, len(scores))
	result := make([]*Node, k)
	for i := range result {
		result[i] = scores[i].node
	}
	return result
}

package rendezvous

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/satmihir/smchash"
	"github.com/satmihir/smchash/internal/hasher"
)

func saltedHasher(salt string) hasher.Hash64 {
	return hasher.NewSmcHash64(hasher.NewHashConfig([]byte(salt)))
}

func fiveNodes() []*Node {
	return []*Node{
		NewNode("n1", 8080),
		NewNode("n2", 8081),
		NewNode("n3", 8082),
		NewNode("n4", 8083),
		NewNode("n5", 8084),
	}
}

func TestNewNode(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		port         int
		wantIdentity string
	}{
		{name: "simple node", host: "node1", port: 8080, wantIdentity: "node1:8080"},
		{name: "ip address", host: "192.168.1.1", port: 6379, wantIdentity: "192.168.1.1:6379"},
		{name: "ipv6 address", host: "::1", port: 11211, wantIdentity: "[::1]:11211"},
		{name: "empty host", host: "", port: 8080, wantIdentity: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := NewNode(tt.host, tt.port)

			if node.host != tt.host || node.port != tt.port {
				t.Errorf("got %q/%d, want %q/%d", node.host, node.port, tt.host, tt.port)
			}
			if node.String() != tt.wantIdentity {
				t.Errorf("String() = %q, want %q", node.String(), tt.wantIdentity)
			}
			if want := smchash.HashString(tt.wantIdentity); node.identityHash != want {
				t.Errorf("identityHash = %#x, want %#x", node.identityHash, want)
			}
		})
	}
}

func TestNode_IdentityHashUniqueness(t *testing.T) {
	if NewNode("node1", 8080).identityHash == NewNode("node2", 8080).identityHash {
		t.Error("different hosts produced the same hash")
	}
	if NewNode("node1", 8080).identityHash == NewNode("node1", 8081).identityHash {
		t.Error("different ports produced the same hash")
	}
}

func TestParseNode(t *testing.T) {
	tests := []struct {
		addr    string
		want    string
		wantErr bool
	}{
		{addr: "cache-1:6379", want: "cache-1:6379"},
		{addr: " 10.0.0.1:80 ", want: "10.0.0.1:80"},
		{addr: "[::1]:9000", want: "[::1]:9000"},
		{addr: "no-port", wantErr: true},
		{addr: "host:http", wantErr: true},
		{addr: "host:70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			node, err := ParseNode(tt.addr)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidNode) {
					t.Errorf("ParseNode(%q) error = %v, want ErrInvalidNode", tt.addr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNode(%q) error = %v", tt.addr, err)
			}
			if node.String() != tt.want {
				t.Errorf("ParseNode(%q) = %q, want %q", tt.addr, node, tt.want)
			}
		})
	}
}

func TestParseNodes(t *testing.T) {
	nodes, err := ParseNodes("a:1, b:2,,c:3,")
	if err != nil {
		t.Fatalf("ParseNodes() error = %v", err)
	}
	want := []string{"a:1", "b:2", "c:3"}
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(want))
	}
	for i := range want {
		if nodes[i].String() != want[i] {
			t.Errorf("node %d = %q, want %q", i, nodes[i], want[i])
		}
	}

	if _, err := ParseNodes("a:1,broken"); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("ParseNodes() error = %v, want ErrInvalidNode", err)
	}
}

func TestNewRendezvousRouter_DefaultHasher(t *testing.T) {
	router := NewRendezvousRouter(nil, nil)
	if router.hasher != hasher.DefaultUnsaltedHash64 {
		t.Error("expected the default unsalted hasher")
	}
}

func TestRendezvousRouter_SetNodesCopies(t *testing.T) {
	router := NewRendezvousRouter(nil, nil)

	nodes := []*Node{NewNode("a", 1), NewNode("b", 2)}
	router.SetNodes(nodes)

	original := router.GetNodes([]byte("key"), 1)[0]
	nodes[0] = NewNode("c", 3)
	nodes[1] = NewNode("d", 4)

	if got := router.GetNodes([]byte("key"), 1)[0]; got != original {
		t.Error("SetNodes should copy the slice")
	}
}

func TestRendezvousRouter_GetNodes_EdgeCases(t *testing.T) {
	nodes := fiveNodes()[:3]

	tests := []struct {
		name    string
		nodes   []*Node
		k       int
		wantLen int
		wantNil bool
	}{
		{name: "empty nodes", nodes: []*Node{}, k: 1, wantNil: true},
		{name: "nil nodes", nodes: nil, k: 1, wantNil: true},
		{name: "k=0", nodes: nodes, k: 0, wantNil: true},
		{name: "k negative", nodes: nodes, k: -1, wantNil: true},
		{name: "k=1", nodes: nodes, k: 1, wantLen: 1},
		{name: "k=2", nodes: nodes, k: 2, wantLen: 2},
		{name: "k=3 (all nodes)", nodes: nodes, k: 3, wantLen: 3},
		{name: "k > len(nodes)", nodes: nodes, k: 10, wantLen: 3},
		{name: "single node, k=2", nodes: []*Node{NewNode("only", 1)}, k: 2, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewRendezvousRouter(tt.nodes, nil).GetNodes([]byte("test"), tt.k)

			if tt.wantNil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
				return
			}
			if len(result) != tt.wantLen {
				t.Errorf("expected length %d, got %d", tt.wantLen, len(result))
			}
		})
	}
}

func TestRendezvousRouter_HighestScoreWins(t *testing.T) {
	nodes := fiveNodes()
	h := saltedHasher("score")
	router := NewRendezvousRouter(nodes, h)

	key := []byte("user:42")
	got := router.GetNodes(key, len(nodes))

	var prev uint64
	for i, n := range got {
		buf := append(append([]byte(nil), key...), make([]byte, 8)...)
		id := n.identityHash
		for b := 0; b < 8; b++ {
			buf[len(key)+b] = byte(id >> (8 * b))
		}
		score := h.Hash64(buf)
		if i > 0 && score > prev {
			t.Errorf("node %d (%s) scored %#x above the previous %#x", i, n, score, prev)
		}
		prev = score
	}
}

func TestRendezvousRouter_ConsistentRegardlessOfNodeOrder(t *testing.T) {
	nodes := fiveNodes()
	reversed := make([]*Node, len(nodes))
	for i, n := range nodes {
		reversed[len(nodes)-1-i] = n
	}

	router1 := NewRendezvousRouter(nodes, saltedHasher("consistent-salt"))
	router2 := NewRendezvousRouter(reversed, saltedHasher("consistent-salt"))

	for _, key := range []string{"key1", "key2", "", "user:100", "session:xyz"} {
		for k := 1; k <= len(nodes); k++ {
			t.Run(fmt.Sprintf("key=%s,k=%d", key, k), func(t *testing.T) {
				result1 := router1.GetNodes([]byte(key), k)
				result2 := router2.GetNodes([]byte(key), k)
				for i := range result1 {
					if result1[i] != result2[i] {
						t.Errorf("mismatch at %d: %s vs %s", i, result1[i], result2[i])
					}
				}
			})
		}
	}
}

func TestRendezvousRouter_HasherAffectsRouting(t *testing.T) {
	nodes := fiveNodes()[:3]

	routers := map[string]*RendezvousRouter{
		"salt-b": NewRendezvousRouter(nodes, saltedHasher("salt-b")),
		"xxh3":   NewRendezvousRouter(nodes, hasher.NewXXH3Hash64(hasher.NewHashConfig([]byte("salt-a")))),
		"xxhash": NewRendezvousRouter(nodes, hasher.NewXXHash64(hasher.NewHashConfig([]byte("salt-a")))),
	}
	base := NewRendezvousRouter(nodes, saltedHasher("salt-a"))

	for name, router := range routers {
		differentCount := 0
		for i := 0; i < 100; i++ {
			key := []byte(fmt.Sprintf("key-%d", i))
			if base.GetNodes(key, 1)[0] != router.GetNodes(key, 1)[0] {
				differentCount++
			}
		}
		if differentCount == 0 {
			t.Errorf("%s: expected some keys to route differently", name)
		}
	}
}

func TestRendezvousRouter_Distribution(t *testing.T) {
	nodes := fiveNodes()[:4]
	router := NewRendezvousRouter(nodes, saltedHasher("dist-test"))

	counts := make(map[*Node]int)
	numKeys := 10000
	for i := 0; i < numKeys; i++ {
		counts[router.GetNodes([]byte(fmt.Sprintf("key-%d", i)), 1)[0]]++
	}

	expected := numKeys / len(nodes)
	tolerance := expected / 4
	for _, n := range nodes {
		if count := counts[n]; count < expected-tolerance || count > expected+tolerance {
			t.Errorf("node %s has %d keys, expected ~%d (±%d)", n, count, expected, tolerance)
		}
	}
}

func TestRendezvousRouter_ResultsArePrefixes(t *testing.T) {
	router := NewRendezvousRouter(fiveNodes(), saltedHasher("order-test"))

	for i := 0; i < 100; i++ {
		key := []byte(fmt.Sprintf("key-%d", i))
		all := router.GetNodes(key, 5)

		seen := make(map[*Node]bool)
		for _, n := range all {
			if seen[n] {
				t.Fatalf("key %s: duplicate node %s", key, n)
			}
			seen[n] = true
		}

		for k := 1; k < 5; k++ {
			got := router.GetNodes(key, k)
			for j := range got {
				if got[j] != all[j] {
					t.Errorf("key %s: k=%d result is not a prefix of k=5", key, k)
					break
				}
			}
		}
	}
}

func TestRendezvousRouter_ConcurrentAccess(t *testing.T) {
	router := NewRendezvousRouter(fiveNodes()[:3], nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				if result := router.GetNodes([]byte(fmt.Sprintf("key-%d-%d", id, j)), 2); len(result) != 2 {
					t.Errorf("expected 2 nodes, got %d", len(result))
				}
			}
		}(i)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				router.SetNodes([]*Node{
					NewNode(fmt.Sprintf("n%d", id), 8080+id),
					NewNode(fmt.Sprintf("m%d", id), 9080+id),
				})
			}
		}(i)
	}
	wg.Wait()
}

func TestRouterInterface(t *testing.T) {
	var _ Router = (*RendezvousRouter)(nil)
}

func BenchmarkGetNodes(b *testing.B) {
	nodes := make([]*Node, 32)
	for i := range nodes {
		nodes[i] = NewNode(fmt.Sprintf("node-%d", i), 7000+i)
	}
	router := NewRendezvousRouter(nodes, nil)
	key := []byte("user:1234567890")

	for _, k := range []int{1, 3} {
		b.Run(fmt.Sprintf("k=%d", k), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				router.GetNodes(key, k)
			}
		})
	}
}

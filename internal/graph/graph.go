// Package graph loads an adjacency file into an undirected graph and
// computes the structural properties the presentation layer needs.
//
// Node count is the number of distinct identifiers that appear in any edge;
// identifiers need not be dense. Edges are kept exactly as parsed, so a
// repeated line yields a repeated edge.
package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nvandessel/ballfall/internal/models"
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ErrMalformedEdge is returned for an adjacency line that is not "int;int".
var ErrMalformedEdge = errors.New("malformed edge")

// Edge is an undirected edge between node identifiers U and V.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// Graph is an immutable undirected multigraph. The parsed edge list is kept
// as is; traversal runs on a simple graph view that drops repeats and self
// loops.
type Graph struct {
	nodes  []int
	index  map[int]int
	edges  []Edge
	degree []int
	ug     *simple.UndirectedGraph

	// adj[i] holds the distinct neighbor indices of nodes[i], ascending.
	adj [][]int
}

// New builds a graph from edges in the given order.
func New(edges []Edge) *Graph {
	g := &Graph{
		index: make(map[int]int),
		edges: append([]Edge(nil), edges...),
		ug:    simple.NewUndirectedGraph(),
	}

	for _, e := range edges {
		for _, id := range [2]int{e.U, e.V} {
			if _, ok := g.index[id]; !ok {
				g.index[id] = len(g.nodes)
				g.nodes = append(g.nodes, id)
			}
		}
	}
	sort.Ints(g.nodes)
	for i, id := range g.nodes {
		g.index[id] = i
		g.ug.AddNode(simple.Node(id))
	}

	g.degree = make([]int, len(g.nodes))
	for _, e := range edges {
		g.degree[g.index[e.U]]++
		g.degree[g.index[e.V]]++
		if e.U != e.V {
			g.ug.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
		}
	}

	g.adj = make([][]int, len(g.nodes))
	for i, id := range g.nodes {
		for _, n := range gonum.NodesOf(g.ug.From(int64(id))) {
			g.adj[i] = append(g.adj[i], g.index[int(n.ID())])
		}
		sort.Ints(g.adj[i])
	}
	return g
}

// FromPairs builds a graph directly from extracted contact pairs.
func FromPairs(pairs []models.ContactPair) *Graph {
	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{U: p.I, V: p.J}
	}
	return New(edges)
}

// Load parses "i;j" lines from r. Surrounding whitespace and blank lines are
// ignored; anything else that is not two integers separated by ';' fails the
// load with ErrMalformedEdge.
func Load(r io.Reader) (*Graph, error) {
	var edges []Edge
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		e, err := parseEdge(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q: %w", lineNo, line, err)
		}
		edges = append(edges, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading adjacency: %w", err)
	}
	return New(edges), nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening adjacency file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func parseEdge(line string) (Edge, error) {
	us, vs, ok := strings.Cut(line, ";")
	if !ok {
		return Edge{}, ErrMalformedEdge
	}
	u, err := strconv.Atoi(strings.TrimSpace(us))
	if err != nil {
		return Edge{}, ErrMalformedEdge
	}
	v, err := strconv.Atoi(strings.TrimSpace(vs))
	if err != nil {
		return Edge{}, ErrMalformedEdge
	}
	return Edge{U: u, V: v}, nil
}

// NodeCount returns the number of distinct identifiers.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges as parsed.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns the node identifiers in ascending order.
func (g *Graph) Nodes() []int { return append([]int(nil), g.nodes...) }

// Edges returns the edges in parse order.
func (g *Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// Has reports whether id appears in any edge.
func (g *Graph) Has(id int) bool {
	_, ok := g.index[id]
	return ok
}

// Degree returns the number of edge endpoints at id. Repeated edges count
// each time; a self loop counts twice.
func (g *Graph) Degree(id int) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return g.degree[i]
}

// Neighbors returns the distinct neighbors of id in ascending order. A self
// loop does not make a node its own neighbor.
func (g *Graph) Neighbors(id int) []int {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]int, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.nodes[j]
	}
	return out
}

// Components returns the connected components, each sorted ascending, ordered
// by their smallest identifier.
func (g *Graph) Components() [][]int {
	var comps [][]int
	for _, cc := range topo.ConnectedComponents(g.ug) {
		comp := make([]int, len(cc))
		for k, n := range cc {
			comp[k] = int(n.ID())
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	sort.Slice(comps, func(a, b int) bool { return comps[a][0] < comps[b][0] })
	return comps
}

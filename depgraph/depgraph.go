// Package depgraph builds the contract-to-contract dependency graph and
// detects import cycles. The shared-vocabulary document is not a node:
// every contract may depend on it freely, so only contract-to-contract
// edges can form a meaningful cycle.
package depgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/contractspec/contractspec/model"
)

// Graph is a directed dependency graph over contract document
// identifiers. An edge A → B exists iff A imports at least one name
// that B declares.
type Graph struct {
	nodes []string
	edges map[string][]string
}

// Build constructs the graph from the contract documents. The
// vocabulary document must not be in the slice. Node and edge order is
// sorted so runs over the same input produce identical graphs.
func Build(contracts []*model.Document) *Graph {
	declaredBy := make(map[string][]string)
	for _, doc := range contracts {
		for _, decl := range doc.Declarations {
			declaredBy[decl.Name] = append(declaredBy[decl.Name], doc.ID)
		}
	}

	g := &Graph{edges: make(map[string][]string, len(contracts))}
	for _, doc := range contracts {
		g.nodes = append(g.nodes, doc.ID)

		seen := make(map[string]bool)
		for _, imp := range doc.Imports {
			for _, target := range declaredBy[imp.Name] {
				if target == doc.ID || seen[target] {
					continue
				}
				seen[target] = true
				g.edges[doc.ID] = append(g.edges[doc.ID], target)
			}
		}
		sort.Strings(g.edges[doc.ID])
	}
	sort.Strings(g.nodes)
	return g
}

// Nodes returns the sorted node identifiers.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// Snapshot captures the graph for inclusion in a report, independent of
// whether any cycle was found.
func (g *Graph) Snapshot() model.GraphSnapshot {
	edges := make(map[string][]string, len(g.nodes))
	for _, node := range g.nodes {
		edges[node] = append([]string(nil), g.edges[node]...)
	}
	return model.GraphSnapshot{
		Nodes: append([]string(nil), g.nodes...),
		Edges: edges,
	}
}

// FindCycles returns every distinct cycle discovered by depth-first
// search. Each cycle is the slice of the DFS path from the first
// occurrence of the repeated node to the edge that closes the loop.
// Fully-explored nodes are never re-entered, so the search terminates
// even on cyclic graphs.
func (g *Graph) FindCycles() [][]string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string
	var cycles [][]string

	var visit func(node string)
	visit = func(node string) {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, next := range g.edges[node] {
			if onStack[next] {
				cycles = append(cycles, extractCycle(path, next))
				continue
			}
			if !visited[next] {
				visit(next)
			}
		}

		path = path[:len(path)-1]
		onStack[node] = false
	}

	for _, node := range g.nodes {
		if !visited[node] {
			visit(node)
		}
	}
	return cycles
}

// Issues converts the discovered cycles into circular-dependency
// errors, one per cycle, naming the full path.
func (g *Graph) Issues() []model.Issue {
	var issues []model.Issue
	for _, cycle := range g.FindCycles() {
		issues = append(issues, model.Issue{
			Severity: model.SeverityError,
			Category: model.CategoryCircularDependency,
			Message: fmt.Sprintf("circular dependency: %s",
				strings.Join(append(append([]string(nil), cycle...), cycle[0]), " -> ")),
			Document:   cycle[0],
			Suggestion: "break the cycle by moving the shared declarations into the vocabulary document",
		})
	}
	return issues
}

// extractCycle copies the path slice from the first occurrence of start
// through the current node.
func extractCycle(path []string, start string) []string {
	for i, node := range path {
		if node == start {
			return append([]string(nil), path[i:]...)
		}
	}
	return append([]string(nil), path...)
}

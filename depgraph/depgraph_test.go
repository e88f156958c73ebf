package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractspec/contractspec/model"
)

// contract builds a minimal contract document declaring and importing
// the given names.
func contract(id string, declares []string, imports []string) *model.Document {
	doc := &model.Document{ID: id}
	for _, name := range declares {
		doc.Declarations = append(doc.Declarations, model.Declaration{
			Name: name, Kind: model.KindAlias, Document: id,
		})
	}
	for _, name := range imports {
		doc.Imports = append(doc.Imports, model.Import{
			Name: name, Module: "./other", Document: id,
		})
	}
	return doc
}

func TestBuild_EdgesFromImports(t *testing.T) {
	a := contract("a.md", []string{"Alpha"}, []string{"Beta"})
	b := contract("b.md", []string{"Beta"}, nil)
	c := contract("c.md", []string{"Gamma"}, []string{"Alpha", "Beta"})

	g := Build([]*model.Document{a, b, c})

	snap := g.Snapshot()
	assert.Equal(t, []string{"a.md", "b.md", "c.md"}, snap.Nodes)
	assert.Equal(t, []string{"b.md"}, snap.Edges["a.md"])
	assert.Empty(t, snap.Edges["b.md"])
	assert.Equal(t, []string{"a.md", "b.md"}, snap.Edges["c.md"])
}

func TestBuild_SelfImportIgnored(t *testing.T) {
	a := contract("a.md", []string{"Alpha"}, []string{"Alpha"})

	g := Build([]*model.Document{a})
	assert.Empty(t, g.Snapshot().Edges["a.md"])
}

func TestFindCycles_AcyclicGraph(t *testing.T) {
	a := contract("a.md", []string{"Alpha"}, []string{"Beta"})
	b := contract("b.md", []string{"Beta"}, []string{"Gamma"})
	c := contract("c.md", []string{"Gamma"}, nil)

	g := Build([]*model.Document{a, b, c})
	assert.Empty(t, g.FindCycles())
	assert.Empty(t, g.Issues())
}

func TestFindCycles_ThreeNodeCycle(t *testing.T) {
	a := contract("a.md", []string{"Alpha"}, []string{"Beta"})
	b := contract("b.md", []string{"Beta"}, []string{"Gamma"})
	c := contract("c.md", []string{"Gamma"}, []string{"Alpha"})

	// Contract order must not affect the result.
	orders := [][]*model.Document{
		{a, b, c},
		{c, a, b},
		{b, c, a},
	}

	for _, docs := range orders {
		g := Build(docs)
		cycles := g.FindCycles()

		require.Len(t, cycles, 1, "exactly one cycle regardless of traversal start")
		assert.ElementsMatch(t, []string{"a.md", "b.md", "c.md"}, cycles[0])

		// Path order closes the loop: each node imports from the next.
		require.Len(t, cycles[0], 3)
		assert.Equal(t, "a.md", cycles[0][0])
		assert.Equal(t, "b.md", cycles[0][1])
		assert.Equal(t, "c.md", cycles[0][2])
	}
}

func TestFindCycles_TwoNodeCycle(t *testing.T) {
	a := contract("a.md", []string{"Alpha"}, []string{"Beta"})
	b := contract("b.md", []string{"Beta"}, []string{"Alpha"})

	g := Build([]*model.Document{a, b})
	cycles := g.FindCycles()

	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"a.md", "b.md"}, cycles[0])
}

func TestFindCycles_SharedTailNotRevisited(t *testing.T) {
	// d is reachable from both sides of the graph; revisiting it must
	// not loop or produce phantom cycles.
	a := contract("a.md", []string{"Alpha"}, []string{"Delta"})
	b := contract("b.md", []string{"Beta"}, []string{"Delta"})
	d := contract("d.md", []string{"Delta"}, nil)

	g := Build([]*model.Document{a, b, d})
	assert.Empty(t, g.FindCycles())
}

func TestIssues_CycleError(t *testing.T) {
	a := contract("a.md", []string{"Alpha"}, []string{"Beta"})
	b := contract("b.md", []string{"Beta"}, []string{"Alpha"})

	g := Build([]*model.Document{a, b})
	issues := g.Issues()

	require.Len(t, issues, 1)
	assert.Equal(t, model.SeverityError, issues[0].Severity)
	assert.Equal(t, model.CategoryCircularDependency, issues[0].Category)
	assert.Contains(t, issues[0].Message, "a.md -> b.md -> a.md")
}

package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractspec/contractspec/model"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const primitivesDoc = `# Primitives

` + "```typescript" + `
type OrderId = string;
type ProductId = string;

enum OrderStatus {
  Pending = "pending",
  Confirmed = "confirmed",
  Shipped = "shipped",
  Cancelled = "cancelled",
}
` + "```" + `
`

func TestRun_CleanDocumentSetPasses(t *testing.T) {
	dir := t.TempDir()
	vocab := writeDoc(t, dir, "primitives.md", primitivesDoc)
	contractA := writeDoc(t, dir, "a.md", `# Contract A

`+"```typescript"+`
import { OrderId, OrderStatus } from "./primitives";

interface Order {
  id: OrderId;
  status: OrderStatus;
}
`+"```"+`
`)

	v := New(nil, nil)
	result, err := v.Run(vocab, []string{contractA})
	require.NoError(t, err)

	report := result.Report
	assert.True(t, report.Passed)
	assert.Empty(t, report.Errors())
	assert.Equal(t, 2, report.Summary.Documents)
	assert.Equal(t, 4, report.Summary.Declarations)
	assert.Equal(t, 2, report.Summary.Imports)
	assert.NotEmpty(t, report.RunID)
}

func TestRun_MissingDocumentIsFatal(t *testing.T) {
	dir := t.TempDir()
	vocab := writeDoc(t, dir, "primitives.md", primitivesDoc)

	v := New(nil, nil)
	result, err := v.Run(vocab, []string{filepath.Join(dir, "absent.md")})
	require.Error(t, err)
	assert.Nil(t, result, "no partial report on read failure")

	_, err = v.Run(filepath.Join(dir, "no-vocab.md"), nil)
	require.Error(t, err)
}

// Scenario: a contract references a vocabulary name in a field type
// without importing it.
func TestRun_ReferencedButNotImported(t *testing.T) {
	dir := t.TempDir()
	vocab := writeDoc(t, dir, "primitives.md", primitivesDoc)
	contractA := writeDoc(t, dir, "a.md", `
`+"```typescript"+`
import { OrderId, OrderStatus } from "./primitives";

interface Order {
  id: OrderId;
  status: OrderStatus;
}
`+"```"+`
`)
	contractB := writeDoc(t, dir, "b.md", `
`+"```typescript"+`
import { OrderId } from "./primitives";

interface Shipment {
  orderId: OrderId;
  status: OrderStatus;
}
`+"```"+`
`)

	v := New(nil, nil)
	result, err := v.Run(vocab, []string{contractA, contractB})
	require.NoError(t, err)

	report := result.Report
	assert.False(t, report.Passed)

	errors := report.Errors()
	require.Len(t, errors, 1)
	assert.Equal(t, model.CategoryUnresolvedImport, errors[0].Category)
	assert.Equal(t, contractB, errors[0].Document)
	assert.Contains(t, errors[0].Message, "OrderStatus")
}

func TestRun_UnresolvedImport(t *testing.T) {
	dir := t.TempDir()
	vocab := writeDoc(t, dir, "primitives.md", primitivesDoc)
	contractA := writeDoc(t, dir, "a.md", `
`+"```typescript"+`
import { OrderId, Money } from "./primitives";

interface Payment {
  order: OrderId;
  amount: Money;
}
`+"```"+`
`)

	v := New(nil, nil)
	result, err := v.Run(vocab, []string{contractA})
	require.NoError(t, err)

	errors := result.Report.Errors()
	require.Len(t, errors, 1)
	assert.Equal(t, model.CategoryUnresolvedImport, errors[0].Category)
	assert.Contains(t, errors[0].Message, "Money")
}

func TestRun_ImportExemptions(t *testing.T) {
	dir := t.TempDir()
	vocab := writeDoc(t, dir, "primitives.md", primitivesDoc)
	contractA := writeDoc(t, dir, "a.md", `
`+"```typescript"+`
import { z } from "zod";
import { formatHelper } from "./helpers";
import { OrderId } from "./primitives";

interface Order {
  id: OrderId;
}
`+"```"+`
`)

	v := New(nil, nil)
	result, err := v.Run(vocab, []string{contractA})
	require.NoError(t, err)

	assert.True(t, result.Report.Passed,
		"allowlisted modules and same-directory paths are skipped, not flagged")
}

// Scenario: two contracts declare the same record with different field
// sets.
func TestRun_ShapeMismatchAcrossContracts(t *testing.T) {
	dir := t.TempDir()
	vocab := writeDoc(t, dir, "primitives.md", primitivesDoc)
	contractA := writeDoc(t, dir, "a.md", `
`+"```typescript"+`
interface UserRef {
  id: string;
  email: string;
}
`+"```"+`
`)
	contractB := writeDoc(t, dir, "b.md", `
`+"```typescript"+`
interface UserRef {
  id: string;
  email: string;
  phone: string;
}
`+"```"+`
`)

	v := New(nil, nil)
	result, err := v.Run(vocab, []string{contractA, contractB})
	require.NoError(t, err)

	var shapeErrors []model.Issue
	for _, issue := range result.Report.Errors() {
		if issue.Category == model.CategoryTypeShapeMismatch {
			shapeErrors = append(shapeErrors, issue)
		}
	}
	require.Len(t, shapeErrors, 1)
	assert.Contains(t, shapeErrors[0].Message, `missing property "phone"`)
	assert.Equal(t, contractA, shapeErrors[0].Document,
		"the error is attributed to the document lacking the field")
}

// Scenario: a contract imports a name and locally re-declares it with a
// different kind.
func TestRun_KindMismatch(t *testing.T) {
	dir := t.TempDir()
	vocab := writeDoc(t, dir, "primitives.md", primitivesDoc)
	contractA := writeDoc(t, dir, "a.md", `
`+"```typescript"+`
import { ProductId } from "./primitives";

enum ProductId {
  Book,
  Toy,
}
`+"```"+`
`)

	v := New(nil, nil)
	result, err := v.Run(vocab, []string{contractA})
	require.NoError(t, err)

	var kindErrors []model.Issue
	for _, issue := range result.Report.Errors() {
		if issue.Category == model.CategoryTypeShapeMismatch {
			kindErrors = append(kindErrors, issue)
		}
	}
	require.Len(t, kindErrors, 1)
	assert.Contains(t, kindErrors[0].Message, "alias")
}

// Scenario: three contracts form an import cycle.
func TestRun_ImportCycle(t *testing.T) {
	dir := t.TempDir()
	vocab := writeDoc(t, dir, "primitives.md", primitivesDoc)
	a := writeDoc(t, dir, "a.md", "```typescript\ntype Alpha = string;\nimport { Beta } from \"./b\";\n```\n")
	b := writeDoc(t, dir, "b.md", "```typescript\ntype Beta = string;\nimport { Gamma } from \"./c\";\n```\n")
	c := writeDoc(t, dir, "c.md", "```typescript\ntype Gamma = string;\nimport { Alpha } from \"./a\";\n```\n")

	v := New(nil, nil)
	result, err := v.Run(vocab, []string{a, b, c})
	require.NoError(t, err)

	var cycleErrors []model.Issue
	for _, issue := range result.Report.Errors() {
		if issue.Category == model.CategoryCircularDependency {
			cycleErrors = append(cycleErrors, issue)
		}
	}
	require.Len(t, cycleErrors, 1, "exactly one cycle for A->B->C->A")
	assert.Contains(t, cycleErrors[0].Message, "a.md")
	assert.Contains(t, cycleErrors[0].Message, "b.md")
	assert.Contains(t, cycleErrors[0].Message, "c.md")

	assert.Len(t, result.Report.Graph.Nodes, 3)
}

func TestRun_NamingSimilarityWarning(t *testing.T) {
	dir := t.TempDir()
	vocab := writeDoc(t, dir, "primitives.md", primitivesDoc)
	a := writeDoc(t, dir, "a.md", "```typescript\ninterface OrderItem { id: string; }\n```\n")
	b := writeDoc(t, dir, "b.md", "```typescript\ninterface OrderIten { id: string; }\n```\n")

	v := New(nil, nil)
	result, err := v.Run(vocab, []string{a, b})
	require.NoError(t, err)

	report := result.Report
	assert.True(t, report.Passed, "naming similarity is advisory")

	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, model.CategoryNamingSimilarity, warnings[0].Category)
}

func TestVerifyDocuments_Deterministic(t *testing.T) {
	vocab := &model.Document{
		ID:         "primitives.md",
		Vocabulary: true,
		Declarations: []model.Declaration{
			{Name: "OrderId", Kind: model.KindAlias, Document: "primitives.md", Line: 1},
		},
	}
	makeContracts := func() []*model.Document {
		return []*model.Document{
			{
				ID: "b.md",
				Declarations: []model.Declaration{
					{Name: "Shipment", Kind: model.KindRecord, Document: "b.md", Line: 1,
						Fields: []model.Field{{Name: "id", Type: "string"}}},
				},
			},
			{
				ID: "a.md",
				Declarations: []model.Declaration{
					{Name: "Shipment", Kind: model.KindRecord, Document: "a.md", Line: 1,
						Fields: []model.Field{{Name: "id", Type: "string"}, {Name: "eta", Type: "string"}}},
				},
			},
		}
	}

	v := New(nil, nil)
	first := v.VerifyDocuments(vocab, makeContracts())

	contracts := makeContracts()
	contracts[0], contracts[1] = contracts[1], contracts[0]
	second := v.VerifyDocuments(vocab, contracts)

	assert.Equal(t, first.Report.Issues, second.Report.Issues,
		"issue lists are identical regardless of contract order")
	assert.Equal(t, first.Report.Passed, second.Report.Passed)
	assert.Equal(t, first.Report.Graph, second.Report.Graph)
}

func TestVerifyDocuments_BaselineIsAlphabeticallyFirstContract(t *testing.T) {
	vocab := &model.Document{ID: "primitives.md", Vocabulary: true}
	a := &model.Document{
		ID: "a.md",
		Declarations: []model.Declaration{
			{Name: "Thing", Kind: model.KindRecord, Document: "a.md", Line: 1,
				Fields: []model.Field{{Name: "id", Type: "string"}}},
		},
	}
	b := &model.Document{
		ID: "b.md",
		Declarations: []model.Declaration{
			{Name: "Thing", Kind: model.KindRecord, Document: "b.md", Line: 1,
				Fields: []model.Field{{Name: "id", Type: "number"}}},
		},
	}

	v := New(nil, nil)
	// Pass b first; a.md must still be the baseline.
	result := v.VerifyDocuments(vocab, []*model.Document{b, a})

	errors := result.Report.Errors()
	require.Len(t, errors, 1)
	assert.Equal(t, "b.md", errors[0].Document)
	assert.Contains(t, errors[0].Message, "a.md")
}

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractspec/contractspec/config"
	"github.com/contractspec/contractspec/model"
)

func newTestAuditor() *Auditor {
	return New(config.DefaultConfig().Naming)
}

func refs(names ...string) []NameRef {
	out := make([]NameRef, len(names))
	for i, name := range names {
		out[i] = NameRef{Name: name, Document: "doc.md", Line: i + 1}
	}
	return out
}

func TestAudit_NearDuplicateReportedOnce(t *testing.T) {
	a := newTestAuditor()

	// One substitution over nine characters: similarity ~0.89.
	issues := a.Audit(refs("OrderItem", "OrderIten"), 0.85)

	require.Len(t, issues, 1, "each unordered pair is reported exactly once")
	assert.Equal(t, model.SeverityWarning, issues[0].Severity)
	assert.Equal(t, model.CategoryNamingSimilarity, issues[0].Category)
	assert.Contains(t, issues[0].Message, "OrderItem")
	assert.Contains(t, issues[0].Message, "OrderIten")
}

func TestAudit_ExactDuplicatesNotSimilar(t *testing.T) {
	a := newTestAuditor()

	// Same name from two documents is a shape-comparison concern.
	names := []NameRef{
		{Name: "Order", Document: "a.md"},
		{Name: "order", Document: "b.md"},
	}
	assert.Empty(t, a.Audit(names, 0.8))
}

func TestAudit_BelowThresholdIgnored(t *testing.T) {
	a := newTestAuditor()

	assert.Empty(t, a.Audit(refs("Order", "Invoice"), 0.8))
}

func TestAudit_SuppressedConventions(t *testing.T) {
	a := newTestAuditor()

	tests := []struct {
		name string
		x, y string
	}{
		{"create and update forms", "CreateOrderInput", "UpdateOrderInput"},
		{"request and response forms", "PaymentRequest", "PaymentResponse"},
		{"input and output forms", "SearchInput", "SearchOutput"},
		{"id and ref forms", "CustomerId", "CustomerRef"},
		{"plural forms", "Score", "Scores"},
		{"service and repository forms", "OrderService", "OrderRepository"},
		{"suffix strip to same base", "Order", "OrderId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, a.Suppressed(tt.x, tt.y), "%q vs %q", tt.x, tt.y)
			assert.True(t, a.Suppressed(tt.y, tt.x), "suppression is symmetric")
		})
	}
}

func TestAudit_TypoNotSuppressed(t *testing.T) {
	a := newTestAuditor()

	assert.False(t, a.Suppressed("OrderItem", "OrderIten"))

	issues := a.Audit(refs("OrderItem", "OrderIten"), 0.85)
	assert.Len(t, issues, 1)
}

func TestOrphanedRefs(t *testing.T) {
	a := newTestAuditor()

	names := []NameRef{
		{Name: "Customer", Document: "vocab.md", Line: 2},
		{Name: "CustomerRef", Document: "vocab.md", Line: 8},
		{Name: "ProductRef", Document: "a.md", Line: 4},
	}

	issues := a.OrphanedRefs(names)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "ProductRef")
	assert.Equal(t, model.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "a.md", issues[0].Document)
}

func TestOrphanedRefs_Deduplicated(t *testing.T) {
	a := newTestAuditor()

	names := []NameRef{
		{Name: "ProductRef", Document: "a.md", Line: 4},
		{Name: "productref", Document: "b.md", Line: 9},
	}

	issues := a.OrphanedRefs(names)
	assert.Len(t, issues, 1, "the same orphan is reported once across documents")
}

func TestOrphanedRefs_ReferenceSuffix(t *testing.T) {
	a := newTestAuditor()

	issues := a.OrphanedRefs(refs("InvoiceReference"))
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Invoice")
}

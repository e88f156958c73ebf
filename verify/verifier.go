// Package verify orchestrates the full cross-document verification
// pipeline: extraction, import resolution, cycle detection, naming
// audit, and shape comparison, aggregated into one report. Every check
// always runs; no failing check short-circuits another, so one run
// shows the complete diagnostic picture.
package verify

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contractspec/contractspec/compare"
	"github.com/contractspec/contractspec/config"
	"github.com/contractspec/contractspec/depgraph"
	"github.com/contractspec/contractspec/extract"
	"github.com/contractspec/contractspec/model"
	"github.com/contractspec/contractspec/naming"
)

// Result bundles the report with the parsed documents, so callers can
// render per-document detail without re-parsing.
type Result struct {
	Report     *model.Report
	Vocabulary *model.Document
	Contracts  []*model.Document
}

// Verifier runs the verification pipeline. A Verifier is stateless
// across runs; each call to Run builds its document set fresh and
// retains nothing afterward.
type Verifier struct {
	cfg        *config.Config
	logger     *slog.Logger
	extractor  *extract.Extractor
	comparator *compare.Comparator
	auditor    *naming.Auditor
}

// New creates a Verifier from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Verifier {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{
		cfg:        cfg,
		logger:     logger,
		extractor:  extract.New(cfg.Extraction.FenceLanguages, logger),
		comparator: compare.New(cfg.Compare.EquivalentTypes),
		auditor:    naming.New(cfg.Naming),
	}
}

// Run reads and verifies one vocabulary document and N contract
// documents. Any read failure is fatal for the whole run: a missing
// document could hide real unresolved imports, so no partial report is
// produced.
func (v *Verifier) Run(vocabPath string, contractPaths []string) (*Result, error) {
	vocab, err := v.loadDocument(vocabPath, true)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary document: %w", err)
	}

	contracts := make([]*model.Document, 0, len(contractPaths))
	for _, path := range contractPaths {
		doc, err := v.loadDocument(path, false)
		if err != nil {
			return nil, fmt.Errorf("read contract document: %w", err)
		}
		contracts = append(contracts, doc)
	}

	return v.VerifyDocuments(vocab, contracts), nil
}

// loadDocument reads and extracts a single document.
func (v *Verifier) loadDocument(path string, vocabulary bool) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	extracted := v.extractor.Extract(path, string(data))
	return &model.Document{
		ID:           path,
		Vocabulary:   vocabulary,
		Declarations: extracted.Declarations,
		Imports:      extracted.Imports,
	}, nil
}

// VerifyDocuments runs every check over an in-memory document set and
// returns the aggregated report. The input documents are not mutated.
func (v *Verifier) VerifyDocuments(vocab *model.Document, contracts []*model.Document) *Result {
	start := time.Now()

	// Contract order must not matter; sort by identifier so baseline
	// selection and report output are deterministic.
	sorted := make([]*model.Document, len(contracts))
	copy(sorted, contracts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	report := &model.Report{
		RunID:       uuid.New().String(),
		GeneratedAt: start,
		Vocabulary:  vocab.ID,
	}
	for _, doc := range sorted {
		report.Contracts = append(report.Contracts, doc.ID)
	}

	// Import resolution. The vocabulary's own imports are held to the
	// same invariant as the contracts'.
	res := newResolver(vocab, sorted, v.cfg.Imports.ExternalModules)
	report.Issues = append(report.Issues, res.resolve(vocab)...)
	for _, doc := range sorted {
		report.Issues = append(report.Issues, res.resolve(doc)...)
		report.Issues = append(report.Issues, res.checkReferences(doc)...)
	}

	// Cycle detection over contract-to-contract edges.
	graph := depgraph.Build(sorted)
	report.Graph = graph.Snapshot()
	report.Issues = append(report.Issues, graph.Issues()...)

	// Naming audit over the deduplicated name set.
	names := collectNames(vocab, sorted)
	report.Issues = append(report.Issues, v.auditor.Audit(names, v.cfg.Naming.CrossDocumentThreshold)...)
	report.Issues = append(report.Issues, v.auditor.OrphanedRefs(names)...)

	// Shape comparison of same-named declarations.
	report.Issues = append(report.Issues, v.compareShapes(vocab, sorted)...)

	declarations, imports := countExtracted(vocab, sorted)
	report.Finalize(declarations, imports)

	v.logger.Info("verification complete",
		slog.String("run_id", report.RunID),
		slog.Int("documents", report.Summary.Documents),
		slog.Int("errors", report.Summary.Errors),
		slog.Int("warnings", report.Summary.Warnings),
		slog.Bool("passed", report.Passed),
		slog.Duration("elapsed", time.Since(start)))

	return &Result{Report: report, Vocabulary: vocab, Contracts: sorted}
}

// compareShapes compares every group of same-named declarations against
// a single baseline: the vocabulary's declaration when present,
// otherwise the declaration from the alphabetically-first contract.
func (v *Verifier) compareShapes(vocab *model.Document, contracts []*model.Document) []model.Issue {
	type group struct {
		baseline *model.Declaration
		others   []*model.Declaration
	}
	groups := make(map[string]*group)
	var order []string

	addDecls := func(doc *model.Document) {
		for i := range doc.Declarations {
			decl := &doc.Declarations[i]
			g, ok := groups[decl.Name]
			if !ok {
				groups[decl.Name] = &group{baseline: decl}
				order = append(order, decl.Name)
				continue
			}
			g.others = append(g.others, decl)
		}
	}
	addDecls(vocab)
	for _, doc := range contracts {
		addDecls(doc)
	}

	var issues []model.Issue
	for _, name := range order {
		g := groups[name]
		for _, other := range g.others {
			issues = append(issues, v.comparator.Compare(g.baseline, other)...)
		}
	}

	// A contract that both imports a name and locally re-declares it
	// with a different kind than the vocabulary's declaration is a
	// categorical conflict.
	for _, doc := range contracts {
		for i := range doc.Declarations {
			local := &doc.Declarations[i]
			if !doc.ImportsName(local.Name) {
				continue
			}
			vocabDecl := vocab.DeclarationNamed(local.Name)
			if vocabDecl == nil {
				continue
			}
			if issue := v.comparator.CompareKinds(vocabDecl, local); issue != nil {
				issues = append(issues, *issue)
			}
		}
	}
	return issues
}

// collectNames gathers every declared name across the document set,
// deduplicated case-insensitively with the first spelling preserved.
func collectNames(vocab *model.Document, contracts []*model.Document) []naming.NameRef {
	seen := make(map[string]bool)
	var names []naming.NameRef

	add := func(doc *model.Document) {
		for _, decl := range doc.Declarations {
			key := strings.ToLower(decl.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, naming.NameRef{
				Name:     decl.Name,
				Document: doc.ID,
				Line:     decl.Line,
			})
		}
	}
	add(vocab)
	for _, doc := range contracts {
		add(doc)
	}
	return names
}

// countExtracted totals declarations and imports across the set.
func countExtracted(vocab *model.Document, contracts []*model.Document) (int, int) {
	declarations := len(vocab.Declarations)
	imports := len(vocab.Imports)
	for _, doc := range contracts {
		declarations += len(doc.Declarations)
		imports += len(doc.Imports)
	}
	return declarations, imports
}

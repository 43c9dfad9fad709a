// Package aggregate turns the raw annex matches of a case into the final
// service and level lists.
package aggregate

import (
	"strconv"
	"strings"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/annex"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/tables"
)

// Unclassified is assigned when no annex matches.
const Unclassified = "S99-99"

// Result holds the services assigned to a case and their aligned levels.
// Codes[0] is the primary service. Levels[i] is nil only for the
// Unclassified fallback when it has no level of its own.
type Result struct {
	Codes  []string
	Levels []*int
}

// IsUnclassified reports whether no annex assigned a usable service.
func (r Result) IsUnclassified() bool {
	return len(r.Codes) == 1 && r.Codes[0] == Unclassified
}

// CodesString joins the codes with sep.
func (r Result) CodesString(sep string) string {
	return strings.Join(r.Codes, sep)
}

// LevelsString joins the levels with sep. A missing level is written empty.
func (r Result) LevelsString(sep string) string {
	parts := make([]string, len(r.Levels))
	for i, l := range r.Levels {
		if l != nil {
			parts[i] = strconv.Itoa(*l)
		}
	}
	return strings.Join(parts, sep)
}

// Aggregate resolves levels for codes, which must be in annex order.
//
// Codes without a level for the age category are dropped. When nothing
// remains, including when the age is unknown, Unclassified is returned with
// its own level if it has one.
func Aggregate(codes []string, cat model.AgeCategory, known bool, levels tables.LevelTable, keepDuplicates bool) Result {
	if len(codes) == 0 {
		codes = []string{Unclassified}
	}
	if !keepDuplicates {
		codes = dedup(codes)
	}

	var res Result
	for _, code := range codes {
		lvl, ok := lookup(levels, code, cat, known)
		if !ok {
			continue
		}
		res.Codes = append(res.Codes, code)
		res.Levels = append(res.Levels, &lvl)
	}
	if len(res.Codes) > 0 {
		return res
	}

	res = Result{Codes: []string{Unclassified}, Levels: []*int{nil}}
	if lvl, ok := lookup(levels, Unclassified, cat, known); ok {
		res.Levels[0] = &lvl
	}
	return res
}

func lookup(levels tables.LevelTable, code string, cat model.AgeCategory, known bool) (int, bool) {
	if !known {
		return 0, false
	}
	return levels.Lookup(code, cat)
}

// dedup keeps the first occurrence of every code.
func dedup(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Options controls Classify.
type Options struct {
	AllProceduresPrimary bool
	KeepDuplicates       bool
}

// Classifier evaluates a case and aggregates its services.
type Classifier struct {
	ev     *annex.Evaluator
	levels tables.LevelTable
}

// NewClassifier returns a Classifier over t.
func NewClassifier(t *tables.Tables) *Classifier {
	return &Classifier{ev: annex.NewEvaluator(t), levels: t.Levels}
}

// Classify assigns services and levels to c.
func (cl *Classifier) Classify(c *model.Case, opts Options) Result {
	codes := cl.ev.Evaluate(c, opts.AllProceduresPrimary)
	cat, known := c.AgeCategory()
	return Aggregate(codes, cat, known, cl.levels, opts.KeepDuplicates)
}

package contract

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/viacotur/ast/internal/platform/jsonx"
)

const (
	noContract = "(Sin contrato)"
	noMatches  = "Sin coincidencias para el filtro indicado"
)

// normalize prepares a value for comparison: NFC, trimmed, case folded.
// Casers are stateful, so each call gets its own.
func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(norm.NFC.String(s)))
}

// Select returns the records matching responsable, followed by every record
// of the contracts in which persona appears as employee. Empty queries are
// skipped. A record matching both filters appears twice.
func Select(records []Record, responsable, persona string) []Record {
	var out []Record

	if responsable != "" {
		want := normalize(responsable)
		for _, r := range records {
			if normalize(string(r.Responsable)) == want {
				out = append(out, r)
			}
		}
	}

	if persona != "" {
		want := normalize(persona)
		contracts := make(map[jsonx.Text]struct{})
		for _, r := range records {
			if normalize(string(r.Empleado)) == want {
				contracts[r.Contrato] = struct{}{}
			}
		}
		for _, r := range records {
			if _, ok := contracts[r.Contrato]; ok {
				out = append(out, r)
			}
		}
	}

	return out
}

type tally struct {
	contrato string
	names    []string
	counts   map[string]int
}

func (t *tally) add(name string) {
	if _, seen := t.counts[name]; !seen {
		t.names = append(t.names, name)
	}
	t.counts[name]++
}

// leader is the most frequent name; on ties the one seen first wins.
func (t *tally) leader() string {
	best, max := "", 0
	for _, name := range t.names {
		if c := t.counts[name]; c > max {
			best, max = name, c
		}
	}
	return best
}

// GroupByContract buckets the selection by contract and reports one responsible per
// contract: override when non-empty, else the tally leader. Groups are
// sorted by contract name with Spanish collation.
func GroupByContract(selection []Record, override string) []Group {
	var order []*tally
	byContract := make(map[string]*tally)

	for _, r := range selection {
		name := string(r.Contrato)
		if name == "" {
			name = noContract
		}
		t, ok := byContract[name]
		if !ok {
			t = &tally{contrato: name, counts: make(map[string]int)}
			byContract[name] = t
			order = append(order, t)
		}
		if resp := strings.TrimSpace(string(r.Responsable)); resp != "" {
			t.add(resp)
		}
	}

	groups := make([]Group, 0, len(order))
	for _, t := range order {
		g := Group{Contrato: t.contrato, Responsable: override}
		if g.Responsable == "" {
			g.Responsable = t.leader()
		}
		groups = append(groups, g)
	}

	col := collate.New(language.Spanish)
	sort.SliceStable(groups, func(i, j int) bool {
		return col.CompareString(groups[i].Contrato, groups[j].Contrato) < 0
	})
	return groups
}

// Resolve runs the whole lookup for trimmed query values.
func Resolve(records []Record, responsable, persona string) *Resolution {
	res := &Resolution{
		Responsable: optional(responsable),
		Persona:     optional(persona),
		Contratos:   []Group{},
	}

	selection := Select(records, responsable, persona)
	if len(selection) == 0 {
		res.Message = noMatches
		return res
	}

	res.Contratos = GroupByContract(selection, responsable)
	return res
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

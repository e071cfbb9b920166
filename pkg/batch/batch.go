// Package batch parses HCL files listing path queries:
//
//	query "einstein-to-bacon" {
//	  from    = "Albert_Einstein"
//	  through = var.via
//	  to      = "Kevin_Bacon"
//	}
//
// through is optional. Variables supplied by the caller are visible as
// var.<name>.
package batch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ErrInvalid is returned for a file that parses but describes a bad query.
var ErrInvalid = errors.New("batch: invalid query")

// Query is one requested path.
type Query struct {
	Label   string
	From    string
	Through string
	To      string
}

// String renders the query as "from -> [through ->] to".
func (q Query) String() string {
	if q.Through == "" {
		return q.From + " -> " + q.To
	}
	return q.From + " -> " + q.Through + " -> " + q.To
}

type hclFile struct {
	Queries []*hclQuery `hcl:"query,block"`
}

type hclQuery struct {
	Label   string  `hcl:"label,label"`
	From    string  `hcl:"from"`
	Through *string `hcl:"through,optional"`
	To      string  `hcl:"to"`
}

// Parse decodes src, naming it filename in diagnostics.
func Parse(filename string, src []byte, vars map[string]string) ([]Query, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, EvalContext(vars), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode batch file %s: %w", filename, diags)
	}

	queries := make([]Query, 0, len(parsed.Queries))
	seen := make(map[string]bool, len(parsed.Queries))
	for _, hq := range parsed.Queries {
		q := Query{Label: hq.Label, From: hq.From, To: hq.To}
		if hq.Through != nil {
			q.Through = *hq.Through
		}
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if seen[q.Label] {
			return nil, fmt.Errorf("%s: %w: duplicate label %q", filename, ErrInvalid, q.Label)
		}
		seen[q.Label] = true
		queries = append(queries, q)
	}
	return queries, nil
}

func validate(q Query) error {
	switch {
	case strings.TrimSpace(q.Label) == "":
		return fmt.Errorf("%w: empty label", ErrInvalid)
	case q.From == "":
		return fmt.Errorf("%w: query %q has empty from", ErrInvalid, q.Label)
	case q.To == "":
		return fmt.Errorf("%w: query %q has empty to", ErrInvalid, q.Label)
	}
	return nil
}

// EvalContext exposes vars to expressions as var.<name>.
func EvalContext(vars map[string]string) *hcl.EvalContext {
	obj := cty.EmptyObjectVal
	if len(vars) > 0 {
		vals := make(map[string]cty.Value, len(vars))
		for k, v := range vars {
			vals[k] = cty.StringVal(v)
		}
		obj = cty.ObjectVal(vals)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": obj},
	}
}

// ParseVars turns "k=v" pairs into a map. Later pairs win.
func ParseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || !hclsyntax.ValidIdentifier(k) {
			return nil, fmt.Errorf("invalid variable %q: want name=value", p)
		}
		vars[k] = v
	}
	return vars, nil
}

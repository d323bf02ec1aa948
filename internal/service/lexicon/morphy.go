package lexicon

import (
	"context"
	"strings"
)

type substitution struct {
	suffix      string
	replacement string
}

// Detachment rules per WordNet part of speech, in application order.
var detachmentRules = map[string][]substitution{
	"n": {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	"v": {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	"a": {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
	"r": nil,
}

func applyRules(forms []string, pos string) []string {
	var out []string
	for _, form := range forms {
		for _, rule := range detachmentRules[pos] {
			if strings.HasSuffix(form, rule.suffix) {
				out = append(out, strings.TrimSuffix(form, rule.suffix)+rule.replacement)
			}
		}
	}
	return out
}

// filterForms keeps the forms that exist as lemmas of pos, deduplicated, in order.
func (s *Service) filterForms(ctx context.Context, forms []string, pos string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{}, len(forms))
	for _, f := range forms {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		ok, err := s.repo.HasLemma(ctx, f, pos)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// morphy returns the lemma candidates of form within pos: the exception list
// when form is irregular, otherwise the form itself plus detachment-rule
// outputs, rules being re-applied until something is found.
func (s *Service) morphy(ctx context.Context, form, pos string) ([]string, error) {
	exceptions, err := s.repo.Exceptions(ctx, form, pos)
	if err != nil {
		return nil, err
	}
	if len(exceptions) > 0 {
		return s.filterForms(ctx, append([]string{form}, exceptions...), pos)
	}

	forms := applyRules([]string{form}, pos)
	results, err := s.filterForms(ctx, append([]string{form}, forms...), pos)
	if err != nil || len(results) > 0 {
		return results, err
	}

	for len(forms) > 0 {
		forms = applyRules(forms, pos)
		results, err = s.filterForms(ctx, forms, pos)
		if err != nil || len(results) > 0 {
			return results, err
		}
	}
	return nil, nil
}

// shortest returns the first of the shortest strings.
func shortest(forms []string) string {
	best := forms[0]
	for _, f := range forms[1:] {
		if len(f) < len(best) {
			best = f
		}
	}
	return best
}

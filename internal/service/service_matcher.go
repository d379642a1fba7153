package service

import (
	"strings"
	"unicode"

	"styllobarber-pdv/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ServiceMatcher scores how well a catalog service matches a free-text
// transaction description. Zero or less means no match.
type ServiceMatcher interface {
	Score(description string, svc model.Service) int
}

// SubstringMatcher compares accent- and case-folded text: the service name
// inside the description scores 2, the description inside the name scores 1.
type SubstringMatcher struct{}

func (SubstringMatcher) Score(description string, svc model.Service) int {
	desc, name := foldText(description), foldText(svc.Name)
	if desc == "" || name == "" {
		return 0
	}
	switch {
	case strings.Contains(desc, name):
		return 2
	case strings.Contains(name, desc):
		return 1
	default:
		return 0
	}
}

func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.TrimSpace(cases.Fold().String(stripped))
}

// pickService returns the best scoring service. Ties keep catalog order and
// with no positive score the first service is used. It reports false only
// when services is empty.
func pickService(matcher ServiceMatcher, description string, services []model.Service) (model.Service, bool) {
	if len(services) == 0 {
		return model.Service{}, false
	}

	best, bestScore := 0, 0
	for i, svc := range services {
		if score := matcher.Score(description, svc); score > bestScore {
			best, bestScore = i, score
		}
	}
	return services[best], true
}

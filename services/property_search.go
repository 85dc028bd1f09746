package services

import (
	"runtime"
	"sort"
	"strings"

	"script9/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/sync/errgroup"
)

const (
	similarityThreshold = 0.7
	vocabularyScore     = 0.8

	// scoreBatchSize properties are scored per goroutine.
	scoreBatchSize = 64
)

// normalizeInput lowercases s and strips accents so "Đà Lạt" matches "da lat".
func normalizeInput(s string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(s)))
}

// calculateSimilarity is 1 minus the edit distance over the longer length.
func calculateSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	return 1 - float64(distance)/float64(maxLen)
}

// createMatcher indexes the category and location vocabulary of the catalog.
func createMatcher(properties []models.Property) (*closestmatch.ClosestMatch, bool) {
	seen := make(map[string]struct{})
	var keywords []string
	for _, p := range properties {
		for _, term := range []string{p.Category, p.Location} {
			term = normalizeInput(term)
			if term == "" {
				continue
			}
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			keywords = append(keywords, term)
		}
	}
	if len(keywords) == 0 {
		return nil, false
	}
	return closestmatch.New(keywords, []int{2, 3}), true
}

func propertyText(p models.Property) string {
	return normalizeInput(strings.Join([]string{p.Title, p.Description, p.Location, p.Category}, " "))
}

// scoreProperty rates how well p matches the normalized query in [0,1].
func scoreProperty(p models.Property, query, vocabularyHit string) float64 {
	text := propertyText(p)
	if strings.Contains(text, query) {
		return 1
	}

	words := strings.Fields(text)
	terms := strings.Fields(query)
	total := 0.0
	for _, term := range terms {
		best := 0.0
		for _, w := range words {
			if sim := calculateSimilarity(term, w); sim > best {
				best = sim
			}
		}
		total += best
	}
	score := 0.0
	if len(terms) > 0 {
		score = total / float64(len(terms))
	}

	if vocabularyHit != "" && score < vocabularyScore {
		if normalizeInput(p.Location) == vocabularyHit || normalizeInput(p.Category) == vocabularyHit {
			score = vocabularyScore
		}
	}
	return score
}

type scoredProperty struct {
	property models.Property
	score    float64
}

// searchProperties returns the properties matching query, best first.
// Ties keep the input order.
func searchProperties(properties []models.Property, query string) []models.Property {
	q := normalizeInput(query)
	if q == "" {
		return properties
	}

	vocabularyHit := ""
	if cm, ok := createMatcher(properties); ok {
		if closest := cm.Closest(q); closest != "" && calculateSimilarity(q, closest) >= similarityThreshold {
			vocabularyHit = closest
		}
	}

	scores := make([]float64, len(properties))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < len(properties); start += scoreBatchSize {
		end := min(start+scoreBatchSize, len(properties))
		g.Go(func() error {
			for i := start; i < end; i++ {
				scores[i] = scoreProperty(properties[i], q, vocabularyHit)
			}
			return nil
		})
	}
	_ = g.Wait()

	var matched []scoredProperty
	for i, p := range properties {
		if scores[i] >= similarityThreshold {
			matched = append(matched, scoredProperty{property: p, score: scores[i]})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].score > matched[j].score })

	out := make([]models.Property, len(matched))
	for i, m := range matched {
		out[i] = m.property
	}
	return out
}

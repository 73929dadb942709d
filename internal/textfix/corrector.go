// Package textfix implements the spelling-correction filter applied to free-text input.
package textfix

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
)

// minTokenLen keeps very short tokens out of correction; they match too much.
const minTokenLen = 3

// Corrector replaces each word with the nearest vocabulary word within maxDistance
// edits. Words already in the vocabulary, or with no close match, are kept as typed.
// The output may differ from what the user meant; callers must still check it.
type Corrector struct {
	vocab       []string
	known       map[string]struct{}
	maxDistance int
}

// New builds a Corrector. An empty vocabulary or a zero distance makes it an identity filter.
func New(vocab []string, maxDistance int) *Corrector {
	c := &Corrector{
		known:       make(map[string]struct{}, len(vocab)),
		maxDistance: maxDistance,
	}
	for _, w := range vocab {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := strings.ToLower(w)
		if _, dup := c.known[key]; dup {
			continue
		}
		c.known[key] = struct{}{}
		c.vocab = append(c.vocab, w)
	}
	return c
}

// Correct returns text with each word corrected. Whitespace runs collapse to one space.
func (c *Corrector) Correct(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = c.correctWord(w)
	}
	return strings.Join(words, " ")
}

func (c *Corrector) correctWord(w string) string {
	lower := strings.ToLower(w)
	if _, ok := c.known[lower]; ok || c.maxDistance <= 0 || len([]rune(lower)) < minTokenLen {
		return w
	}

	best, bestDist := "", c.maxDistance+1
	for _, candidate := range c.vocab {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if best == "" {
		return w
	}
	return best
}

// LoadWordlist reads one word or phrase per line, skipping blanks and # comments.
// Multi-word lines contribute each of their words.
func LoadWordlist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}
	return words, nil
}

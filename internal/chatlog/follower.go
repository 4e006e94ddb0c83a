package chatlog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Follower finds the word that follows a keyword in a message body.
type Follower struct {
	keyword string
	re      *regexp.Regexp
}

// NewFollower builds a matcher for keyword at a word boundary followed by
// whitespace. Boundaries and whitespace follow Unicode; the captured word
// consists of ASCII letters, apostrophes and right single quotes.
func NewFollower(keyword string) (*Follower, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, errors.New("keyword must not be empty")
	}

	// A boundary before a word character needs a non-word character (or the
	// start) in front of it, and the other way round.
	boundary := `(?:^|[^\p{L}\p{N}_])`
	if first, _ := utf8.DecodeRuneInString(keyword); !isWord(first) {
		boundary = wordClass
	}

	re, err := regexp.Compile(boundary + regexp.QuoteMeta(keyword) + spaceClass + `+([a-zA-Z'’]+)`)
	if err != nil {
		return nil, fmt.Errorf("compiling keyword pattern: %w", err)
	}

	return &Follower{keyword: keyword, re: re}, nil
}

// Keyword returns the keyword the matcher looks for.
func (f *Follower) Keyword() string {
	return f.keyword
}

// Find returns the word after the first occurrence of the keyword in body.
func (f *Follower) Find(body string) (string, bool) {
	matches := f.re.FindStringSubmatch(body)
	if matches == nil {
		return "", false
	}

	return matches[1], true
}

// WordCount is a follower word and how often it was seen.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// FollowerCount tallies follower words, remembering first-seen order.
type FollowerCount struct {
	counts map[string]int
	order  []string
}

// NewFollowerCount returns an empty tally.
func NewFollowerCount() *FollowerCount {
	return &FollowerCount{counts: make(map[string]int)}
}

// Add increments the count for word. Words are compared exactly.
func (c *FollowerCount) Add(word string) {
	if _, seen := c.counts[word]; !seen {
		c.order = append(c.order, word)
	}

	c.counts[word]++
}

// Count returns how often word was added.
func (c *FollowerCount) Count(word string) int {
	return c.counts[word]
}

// Len returns the number of distinct words.
func (c *FollowerCount) Len() int {
	return len(c.order)
}

// Sorted lists the words by descending count; equal counts keep first-seen order.
func (c *FollowerCount) Sorted() []WordCount {
	out := make([]WordCount, 0, len(c.order))
	for _, w := range c.order {
		out = append(out, WordCount{Word: w, Count: c.counts[w]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	return out
}

// Match pairs an entry with the follower word found in it.
type Match struct {
	Entry Entry
	Word  string
}

// CountFollowers runs f over every entry body, counting only the first match
// per entry. It returns the matches in entry order together with the tally.
func CountFollowers(entries []Entry, f *Follower) ([]Match, *FollowerCount) {
	counts := NewFollowerCount()
	matches := make([]Match, 0)

	for _, e := range entries {
		word, ok := f.Find(e.Body)
		if !ok {
			continue
		}

		counts.Add(word)
		matches = append(matches, Match{Entry: e, Word: word})
	}

	return matches, counts
}

package chatlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollower_Find(t *testing.T) {
	f, err := NewFollower("you")
	require.NoError(t, err)

	cases := []struct {
		body string
		want string
		ok   bool
	}{
		{"Hey, how are you doing?", "doing", true},
		{"you didn't call", "didn't", true},
		{"you’re late", "", false},
		{"did you    really", "really", true},
		{"you know you see", "know", true},
		{"thank you 123", "", false},
		{"youth is wasted", "", false},
		{"bayou swamp", "", false},
		{"You There", "", false},
		{"have you’d ideas", "", false},
		{"and you O’Brien", "O’Brien", true},
		{"you\u00a0know", "know", true},
		{"you\u3000go", "go", true},
		{"you\u2009\tstay", "stay", true},
		{"caféyou know", "", false},
		{"日本you know", "", false},
		{"¡you see", "see", true},
	}

	for _, tc := range cases {
		got, ok := f.Find(tc.body)
		assert.Equal(t, tc.ok, ok, "body %q", tc.body)
		assert.Equal(t, tc.want, got, "body %q", tc.body)
	}
}

func TestNewFollower_RejectsEmptyKeyword(t *testing.T) {
	_, err := NewFollower("  ")
	require.Error(t, err)
}

func TestNewFollower_QuotesKeyword(t *testing.T) {
	f, err := NewFollower("a.b")
	require.NoError(t, err)

	_, ok := f.Find("axb word")
	assert.False(t, ok)

	got, ok := f.Find("a.b word")
	assert.True(t, ok)
	assert.Equal(t, "word", got)
	assert.Equal(t, "a.b", f.Keyword())
}

func TestNewFollower_NonWordKeyword(t *testing.T) {
	f, err := NewFollower("@bob")
	require.NoError(t, err)

	_, ok := f.Find("hi @bob there")
	assert.False(t, ok)

	got, ok := f.Find("mail@bob there")
	assert.True(t, ok)
	assert.Equal(t, "there", got)
}

func TestCountFollowers(t *testing.T) {
	f, err := NewFollower("you")
	require.NoError(t, err)

	entries := []Entry{
		{Body: "are you coming"},
		{Body: "nothing here"},
		{Body: "you know"},
		{Body: "you coming? you know"},
		{Body: "you Coming"},
	}

	matches, counts := CountFollowers(entries, f)

	require.Len(t, matches, 4)
	assert.Equal(t, "coming", matches[0].Word)
	assert.Equal(t, entries[3], matches[2].Entry)

	assert.Equal(t, 2, counts.Count("coming"))
	assert.Equal(t, 1, counts.Count("know"))
	assert.Equal(t, 1, counts.Count("Coming"))
	assert.Equal(t, 3, counts.Len())

	assert.Equal(t, []WordCount{
		{Word: "coming", Count: 2},
		{Word: "know", Count: 1},
		{Word: "Coming", Count: 1},
	}, counts.Sorted())
}

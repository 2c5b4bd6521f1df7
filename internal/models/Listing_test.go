package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListing_CloneIsDeep(t *testing.T) {
	orig := Listing{
		ID:         "1",
		Categories: []string{"Games"},
		Reviews:    []Review{{ID: "r1", Likes: 1}},
		Developer:  &Developer{Name: "Acme"},
	}

	c := orig.Clone()
	c.Categories[0] = "Music"
	c.Reviews[0].Likes = 9
	c.Developer.Name = "Other"

	assert.Equal(t, "Games", orig.Categories[0])
	assert.Equal(t, 1, orig.Reviews[0].Likes)
	assert.Equal(t, "Acme", orig.Developer.Name)
}

func TestListing_TrendingScore(t *testing.T) {
	l := Listing{Downloads: 100, Views: 10}
	assert.InDelta(t, 73.0, l.TrendingScore(), 1e-9)
}

func TestReview_ApplyPatch(t *testing.T) {
	r := Review{Username: "a", Rating: 3, Comment: "ok"}
	rating := 5
	likes := 2
	r.Apply(ReviewPatch{Rating: &rating, Likes: &likes})

	assert.Equal(t, Review{Username: "a", Rating: 5, Comment: "ok", Likes: 2}, r)
	assert.Equal(t, 2, r.Helpfulness())
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, ThemeDark.Valid())
	assert.False(t, Theme("neon").Valid())
	assert.True(t, SeverityWarning.Valid())
	assert.False(t, Severity("loud").Valid())
}

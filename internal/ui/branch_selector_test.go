package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"branchscope/pkg/models"
)

func TestFormatBranchOption(t *testing.T) {
	branch := models.Branch{
		Name: "feature/login",
		Hash: "0123456789abcdef0123456789abcdef01234567",
	}
	assert.Equal(t, "feature/login 0123456", FormatBranchOption(branch))

	branch.IsHead = true
	assert.Contains(t, FormatBranchOption(branch), "(current)")

	remote := models.Branch{Name: "origin/main", IsRemote: true}
	assert.Contains(t, FormatBranchOption(remote), "[remote]")
}

func TestFormatCommitLineTruncatesSubject(t *testing.T) {
	commit := models.Commit{
		ShortHash: "abc1234",
		Subject:   strings.Repeat("long subject ", 10),
		Author:    "Dev",
		Date:      time.Now(),
	}

	line := FormatCommitLine(commit)
	assert.Contains(t, line, "abc1234")
	assert.Contains(t, line, "...")
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		at       time.Time
		expected string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-time.Minute), "1 minute ago"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-time.Hour), "1 hour ago"},
		{now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{now.Add(-14 * 24 * time.Hour), "2 weeks ago"},
		{now.Add(-90 * 24 * time.Hour), "3 months ago"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatRelativeTime(tt.at))
	}
}

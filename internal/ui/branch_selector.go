package ui

import (
	"fmt"
	"time"

	"branchscope/pkg/models"
)

// FormatBranchOption renders a branch for the interactive picker
func FormatBranchOption(branch models.Branch) string {
	label := branch.Name
	if branch.IsHead {
		label += " (current)"
	}
	if branch.IsRemote {
		label += " [remote]"
	}
	if len(branch.Hash) >= 7 {
		label += " " + branch.Hash[:7]
	}
	return label
}

// SelectBranch displays an interactive branch selector and returns the
// chosen branch name
func SelectBranch(message string, branches []models.Branch) (string, error) {
	if len(branches) == 0 {
		return "", fmt.Errorf("no branches available")
	}

	options := make([]string, len(branches))
	nameMap := make(map[string]string)

	for i, branch := range branches {
		option := FormatBranchOption(branch)
		options[i] = option
		nameMap[option] = branch.Name
	}

	selected, err := SearchableSelect(message, options)
	if err != nil {
		return "", err
	}

	return nameMap[selected], nil
}

// FormatCommitLine renders a commit for listing output
func FormatCommitLine(commit models.Commit) string {
	subject := commit.Subject
	if len(subject) > 50 {
		subject = subject[:47] + "..."
	}
	return fmt.Sprintf("%s  %s  %s (%s)",
		ColorInfo(commit.ShortHash),
		subject,
		ColorDim(commit.Author),
		ColorDim(FormatRelativeTime(commit.Date)),
	)
}

// FormatRelativeTime formats time as relative (e.g., "2 hours ago")
func FormatRelativeTime(t time.Time) string {
	duration := time.Since(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case duration < 30*24*time.Hour:
		weeks := int(duration.Hours() / (24 * 7))
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		months := int(duration.Hours() / (24 * 30))
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}
}

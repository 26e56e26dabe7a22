package models

import "time"

// Branch represents a branch known to the repository at query time
type Branch struct {
	Name     string `json:"name"`
	Hash     string `json:"hash"`
	IsRemote bool   `json:"is_remote"`
	IsHead   bool   `json:"is_head"`
}

// Commit represents a commit yielded by a revision walk
type Commit struct {
	Hash      string    `json:"hash"`
	ShortHash string    `json:"short_hash"`
	Subject   string    `json:"subject"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Date      time.Time `json:"date"`
}

// Comparison holds the symmetric result of comparing two branches:
// Ahead are commits reachable from Source but not Target, Behind the
// other way around. Both are ordered as the revision walk yields them,
// newest first.
type Comparison struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Ahead  []Commit `json:"ahead"`
	Behind []Commit `json:"behind"`
}

// AheadCount returns the number of commits only reachable from Source.
func (c *Comparison) AheadCount() int { return len(c.Ahead) }

// BehindCount returns the number of commits only reachable from Target.
func (c *Comparison) BehindCount() int { return len(c.Behind) }

// InSync reports whether the two branches point at the same history.
func (c *Comparison) InSync() bool { return len(c.Ahead) == 0 && len(c.Behind) == 0 }

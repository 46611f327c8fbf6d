// Package ident generates and validates Project Identifiers and derives the
// Schema Keys used to name per-project tables.
//
// A Project Identifier is "p_" followed by 12 characters from the URL-safe
// alphabet [A-Za-z0-9_-]. Uniqueness is probabilistic (64^12 combinations).
package ident

import (
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Prefix starts every Project Identifier.
	Prefix = "p_"
	// SuffixLength is the number of random characters after Prefix.
	SuffixLength = 12
	// Length is the total length of a Project Identifier.
	Length = len(Prefix) + SuffixLength
	// Alphabet is the 64-character URL-safe alphabet the suffix is drawn from.
	Alphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var projectIDPattern = regexp.MustCompile(`^p_[A-Za-z0-9_-]{12}$`)

// Source produces size characters drawn uniformly from alphabet.
type Source func(alphabet string, size int) (string, error)

// Generator builds Project Identifiers from a Source. The zero value uses go-nanoid.
type Generator struct {
	source Source
}

// NewGenerator returns a Generator backed by src (nil = go-nanoid, crypto/rand).
func NewGenerator(src Source) *Generator {
	return &Generator{source: src}
}

// Generate returns a fresh Project Identifier. Errors come only from the Source.
func (g *Generator) Generate() (string, error) {
	src := g.source
	if src == nil {
		src = gonanoid.Generate
	}
	suffix, err := src(Alphabet, SuffixLength)
	if err != nil {
		return "", err
	}
	return Prefix + suffix, nil
}

var defaultGenerator = NewGenerator(nil)

// NewProjectID returns a fresh Project Identifier. It panics if the system random
// source is unavailable; that is an unrecoverable initialization fault.
func NewProjectID() string {
	id, err := defaultGenerator.Generate()
	if err != nil {
		panic("ident: random source unavailable: " + err.Error())
	}
	return id
}

// IsValidProjectID reports whether s is exactly a Project Identifier.
func IsValidProjectID(s string) bool {
	if len(s) != Length {
		return false
	}
	return projectIDPattern.MatchString(s)
}

// SchemaKey joins a project id and a table name with "_". Neither input is
// validated or normalized.
func SchemaKey(projectID, tableName string) string {
	return projectID + "_" + tableName
}

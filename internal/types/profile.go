// Package types defines the shared data structures exchanged between the
// extraction, parsing, embedding, and matching packages.
package types

import "encoding/json"

// Profile is the structured record extracted from a resume by the LLM parser.
// Array fields are always present after decoding, never nil, so downstream
// consumers and API clients can iterate without nil checks.
type Profile struct {
	Location   string       `json:"location"`
	Bio        string       `json:"bio"`
	Skills     []string     `json:"skills"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
}

// Education is a single education entry. EndYear is either a year or the
// literal string "Present".
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartYear   string `json:"startYear"`
	EndYear     string `json:"endYear"`
}

// Experience is a single work experience entry. EndYear is either a year or
// the literal string "Present".
type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	StartYear   string `json:"startYear"`
	EndYear     string `json:"endYear"`
	Description string `json:"expDescription"`
}

// UnmarshalJSON decodes a profile and normalizes absent array fields to
// empty slices.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type alias Profile
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Profile(decoded)
	p.EnsureArrays()
	return nil
}

// EnsureArrays replaces nil array fields with empty slices.
func (p *Profile) EnsureArrays() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
}

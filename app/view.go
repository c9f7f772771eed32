package app

import (
	"maridash/domain/artifact"
	"maridash/domain/table"
	"maridash/domain/topic"
)

// Status is the outcome of fetching one artifact
type Status string

const (
	StatusPresent     Status = "present"
	StatusMissing     Status = "missing"
	StatusUnreachable Status = "unreachable"
	StatusMalformed   Status = "malformed"
)

// Result is what a single fetch produced: a value, or the reason for its absence
type Result struct {
	Reference artifact.Reference
	Status    Status
	Table     *table.Table
	Err       error
}

// Present reports whether the artifact can be shown
func (r Result) Present() bool {
	return r.Status == StatusPresent
}

// Section is one rendered artifact in the dashboard
type Section struct {
	Category  artifact.Category
	Title     string
	URL       string
	Table     *table.Table
	Summaries []table.ColumnSummary
}

// IsImage reports whether the section shows a plot
func (s Section) IsImage() bool {
	return s.Category.Kind == artifact.KindImage
}

// IsTable reports whether the section shows a table
func (s Section) IsTable() bool {
	return s.Category.Kind == artifact.KindTable
}

// View is everything the page needs for one selected topic
type View struct {
	Topic    topic.Topic
	Key      string
	Sections []Section
	// Results keeps every outcome, including absent ones, in layout order
	Results []Result
}

// Missing returns the references that produced no section
func (v *View) Missing() []artifact.Reference {
	var refs []artifact.Reference
	for _, r := range v.Results {
		if !r.Present() {
			refs = append(refs, r.Reference)
		}
	}
	return refs
}

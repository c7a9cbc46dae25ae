// Package doctor inspects the host for the tools, directories, and state
// Autonomix needs, and reports what it finds as a flat list of results.
package doctor

// Status is the outcome of a single check.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// Result is one line of doctor output.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

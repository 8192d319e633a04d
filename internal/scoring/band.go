package scoring

import (
	"fmt"
	"sort"
)

type Band struct {
	Min    int
	Max    int
	Label  string
	Advice string
}

// Contains reports whether score lies in the inclusive range of b.
func (b Band) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// LookupBand returns the first band containing score. When nothing matches it falls back
// to the first band and reports matched=false; with no bands it returns the zero Band.
func LookupBand(score int, bands []Band) (band Band, matched bool) {
	for _, b := range bands {
		if b.Contains(score) {
			return b, true
		}
	}
	if len(bands) == 0 {
		return Band{}, false
	}
	return bands[0], false
}

type IssueKind string

const (
	IssueMissing  IssueKind = "missing"
	IssueInverted IssueKind = "inverted"
	IssueOverlap  IssueKind = "overlap"
	IssueGap      IssueKind = "gap"
)

// BandIssue describes one authoring mistake over the score range [From, To].
type BandIssue struct {
	Kind    IssueKind `json:"kind"`
	From    int       `json:"from"`
	To      int       `json:"to"`
	Message string    `json:"message"`
}

func (i BandIssue) String() string { return i.Message }

// ValidateBands checks that bands cover every integer score a fully answered quiz can reach,
// exactly once.
func ValidateBands(questions []Question, bands []Band) []BandIssue {
	lo, hi := Range(questions)
	if len(bands) == 0 {
		return []BandIssue{{Kind: IssueMissing, From: lo, To: hi, Message: "quiz has no bands"}}
	}

	var issues []BandIssue
	valid := make([]Band, 0, len(bands))
	for _, b := range bands {
		if b.Min > b.Max {
			issues = append(issues, BandIssue{
				Kind: IssueInverted, From: b.Min, To: b.Max,
				Message: fmt.Sprintf("band %q has min %d greater than max %d", b.Label, b.Min, b.Max),
			})
			continue
		}
		valid = append(valid, b)
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Min < valid[j].Min })

	// reach is the band extending furthest right among those already visited.
	next := lo
	var reach Band
	for i, b := range valid {
		if i > 0 && b.Min <= reach.Max {
			to := min(reach.Max, b.Max)
			issues = append(issues, BandIssue{
				Kind: IssueOverlap, From: b.Min, To: to,
				Message: fmt.Sprintf("bands %q and %q overlap on %d-%d", reach.Label, b.Label, b.Min, to),
			})
		}
		if i == 0 || b.Max > reach.Max {
			reach = b
		}
		if b.Min > next && next <= hi {
			to := min(b.Min-1, hi)
			issues = append(issues, BandIssue{
				Kind: IssueGap, From: next, To: to,
				Message: fmt.Sprintf("scores %d-%d are not covered by any band", next, to),
			})
		}
		if b.Max+1 > next {
			next = b.Max + 1
		}
	}
	if next <= hi {
		issues = append(issues, BandIssue{
			Kind: IssueGap, From: next, To: hi,
			Message: fmt.Sprintf("scores %d-%d are not covered by any band", next, hi),
		})
	}
	return issues
}

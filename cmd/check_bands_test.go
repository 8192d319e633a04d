package main

import (
	"bytes"
	"testing"

	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func TestReportBands(t *testing.T) {
	var out bytes.Buffer
	err := reportBands(&out, []dto.BandCheckResponse{
		{Slug: "fine", MinScore: 10, MaxScore: 50, Valid: true},
		{Slug: "gappy", MinScore: 2, MaxScore: 10, Issues: []scoring.BandIssue{{Kind: scoring.IssueGap, From: 5, To: 6, Message: "scores 5-6 are not covered by any band"}}},
	})
	assert.Error(t, err)
	assert.Contains(t, out.String(), "ok    fine")
	assert.Contains(t, out.String(), "FAIL  gappy")
	assert.Contains(t, out.String(), "gap: scores 5-6")

	out.Reset()
	assert.NoError(t, reportBands(&out, nil))
}

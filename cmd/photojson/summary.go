package main

import (
	"sort"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"photojson/internal/catalog"
)

// summaryRows lists cataloged, skipped and failed counts followed by one row
// per skip reason, most frequent first.
func summaryRows(result catalog.Result) [][]string {
	failures := result.Failures()
	rows := [][]string{
		{"Cataloged", strconv.Itoa(len(result.Images))},
		{"Not images", strconv.Itoa(len(result.Skipped) - failures)},
		{"Failed", strconv.Itoa(failures)},
	}

	counts := map[string]int{}
	for _, skip := range result.Skipped {
		counts[catalog.Reason(skip.Err)]++
	}
	reasons := make([]string, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if counts[reasons[i]] != counts[reasons[j]] {
			return counts[reasons[i]] > counts[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})

	caser := cases.Title(language.Und)
	for _, reason := range reasons {
		rows = append(rows, []string{"  " + caser.String(reason), strconv.Itoa(counts[reason])})
	}
	return rows
}

func renderSummary(result catalog.Result) string {
	return renderTable([]string{"Outcome", "Count"}, summaryRows(result), []columnAlignment{alignLeft, alignRight})
}

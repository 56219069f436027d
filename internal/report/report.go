// Package report renders a ComparativeReport and its articles as a
// human-readable text summary. Formatting only: no field of the aggregate
// is dropped or reordered.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/newsvani/newsvani/pkg/models"
)

// TopicLine is one row of the topic frequency table.
type TopicLine struct {
	Topic string
	Count int
}

// reportData is the template model.
type reportData struct {
	Company      string
	GeneratedAt  string
	ArticleCount int
	Articles     []models.SentimentResult
	Counts       models.PolarityCounts
	TopicLines   []TopicLine
	Overlap      models.TopicOverlap
	Differences  []models.CoverageDifference
	Verdict      models.Verdict
	SourceErrors []models.SourceError
}

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}).Parse(reportTemplate))

// Render produces the textual report for a completed run.
func Render(run models.RunResult) (string, error) {
	data := reportData{
		Company:      run.Company,
		GeneratedAt:  run.Report.GeneratedAt.Format(time.RFC1123),
		ArticleCount: len(run.Articles),
		Articles:     run.Articles,
		Counts:       run.Report.Counts,
		TopicLines:   topicLines(run.Report.TopicFrequency),
		Overlap:      run.Report.Overlap,
		Differences:  run.Report.Differences,
		Verdict:      run.Report.Verdict,
		SourceErrors: run.SourceErrors,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// topicLines flattens the frequency map into rows sorted by count
// descending, then topic name, so rendering is deterministic.
func topicLines(freq map[string]int) []TopicLine {
	lines := make([]TopicLine, 0, len(freq))
	for topic, count := range freq {
		lines = append(lines, TopicLine{Topic: topic, Count: count})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Count != lines[j].Count {
			return lines[i].Count > lines[j].Count
		}
		return lines[i].Topic < lines[j].Topic
	})
	return lines
}

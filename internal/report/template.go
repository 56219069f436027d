package report

// reportTemplate is the plain-text report layout, embedded as a Go
// constant. Every aggregate field of the comparative report appears, in a
// fixed order: distribution, topic frequency, overlap, coverage
// differences, verdict.
const reportTemplate = `News Sentiment Report: {{.Company}}
Generated: {{.GeneratedAt}}

Articles analyzed: {{.ArticleCount}}
{{- if .SourceErrors}}
Sources skipped: {{range $i, $e := .SourceErrors}}{{if $i}}, {{end}}{{$e.Source}} ({{$e.Err}}){{end}}
{{- end}}
{{range $i, $a := .Articles}}
[{{inc $i}}] {{$a.Article.Title}}
    Source: {{$a.Article.Source}} | Sentiment: {{$a.Polarity}} (score {{printf "%.2f" $a.Score}})
    {{- if $a.Topics}}
    Topics: {{join $a.Topics ", "}}
    {{- end}}
    URL: {{$a.Article.URL}}
{{end}}
Sentiment Distribution
  Positive: {{.Counts.Positive}}
  Negative: {{.Counts.Negative}}
  Neutral:  {{.Counts.Neutral}}
{{if .TopicLines}}
Topic Frequency
{{- range .TopicLines}}
  {{.Topic}}: {{.Count}}
{{- end}}
{{end}}
Topic Overlap
  Common: {{if .Overlap.Common}}{{join .Overlap.Common ", "}}{{else}}none{{end}}
  Unique: {{if .Overlap.Unique}}{{join .Overlap.Unique ", "}}{{else}}none{{end}}
{{if .Differences}}
Coverage Differences
{{- range .Differences}}
  - {{.Comparison}}
    {{.Impact}}
{{- end}}
{{end}}
Overall Verdict: {{.Verdict}}
`

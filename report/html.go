// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"

	"golang.org/x/rankstat/rankmath"
)

var htmlTemplate = template.Must(template.New("").Parse(`
<table class='rankstat'>
<thead>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows -}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end -}}
</tbody>
</table>
{{- if .Warnings}}
<ul class='warnings'>
{{range .Warnings}}<li>{{.}}</li>
{{end -}}
</ul>
{{- end}}
`))

// FormatHTML writes s as an HTML table, followed by a list of any
// warnings.
func FormatHTML(w io.Writer, s *rankmath.Summary) error {
	header, rows := grid(s)
	return htmlTemplate.Execute(w, struct {
		Header   []string
		Rows     [][]string
		Warnings []string
	}{header, rows, warnings(s)})
}

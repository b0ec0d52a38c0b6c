package web

import "html/template"

type pageData struct {
	Title       string
	Categories  string
	Status      string
	IsError     bool
	ChartURL    string
	CSVURL      string
	Rows        int
	Unknown     int
	Counts      []countRow
	MaxUploadMB int64
}

type countRow struct {
	Category string
	Count    int
}

var pageTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; color: #1f1f1f; }
form { border: 1px solid #ddd; padding: 1rem; border-radius: 6px; }
label { display: block; margin: .5rem 0 .25rem; font-weight: 600; }
input[type=text] { width: 100%; }
.status { margin: 1rem 0; padding: .75rem; border-radius: 6px; background: #eef7ee; }
.status.error { background: #fdecea; }
table { border-collapse: collapse; margin-top: .5rem; }
td, th { border: 1px solid #ddd; padding: .25rem .75rem; text-align: left; }
img { max-width: 100%; margin-top: 1rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Upload a CSV with a 'Feedback' column. The model will classify each entry and visualize the distribution.</p>
<form method="post" action="/classify" enctype="multipart/form-data">
<label for="file">Upload feedback.csv (max {{.MaxUploadMB}} MB)</label>
<input id="file" type="file" name="file" accept=".csv,text/csv" required>
<label for="categories">Categories (comma-separated, optional)</label>
<input id="categories" type="text" name="categories" value="{{.Categories}}" placeholder="Academics, Facilities, Administration, Others">
<p><button type="submit">Classify</button></p>
</form>
{{if .Status}}<div class="status{{if .IsError}} error{{end}}">{{.Status}}</div>{{end}}
{{if .Counts}}
<table>
<tr><th>Category</th><th>Number of Feedbacks</th></tr>
{{range .Counts}}<tr><td>{{.Category}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
{{end}}
{{if .ChartURL}}<img src="{{.ChartURL}}" alt="Category Distribution">{{end}}
{{if .CSVURL}}<p><a href="{{.CSVURL}}" download>Download classified CSV</a></p>{{end}}
</body>
</html>
`))

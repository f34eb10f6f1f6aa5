package ui

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04:05")
	},
	// timeAgo renders an RFC 3339 timestamp as a relative time ("3 days ago").
	"timeAgo": func(s string) string {
		if s == "" {
			return "-"
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return s
		}
		return humanize.Time(t)
	},
}

type templateSet struct {
	pages map[string]*template.Template
}

// parseTemplates compiles every page against the base layout.
// Panics on parse errors: templates are compile-time artifacts.
func parseTemplates() *templateSet {
	set := &templateSet{pages: make(map[string]*template.Template, len(pageTemplates))}
	for name, src := range pageTemplates {
		t := template.Must(template.New("base").Funcs(templateFuncs).Parse(baseTemplate))
		template.Must(t.Parse(src))
		set.pages[name] = t
	}
	return set
}

// render writes a page wrapped in the base layout.
func (ui *UI) render(w http.ResponseWriter, name string, data map[string]any) {
	ui.renderStatus(w, http.StatusOK, name, data)
}

func (ui *UI) renderStatus(w http.ResponseWriter, status int, name string, data map[string]any) {
	t, ok := ui.templates.pages[name]
	if !ok {
		ui.logger.Error("unknown template", "name", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		ui.logger.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderError shows a generic error page; details go to the log only.
func (ui *UI) renderError(w http.ResponseWriter, state *SessionState, msg string, err error) {
	ui.logger.Error(msg, "error", err)
	ui.renderStatus(w, http.StatusBadGateway, "error", map[string]any{
		"Title":   "Error",
		"Session": state,
		"Message": msg,
	})
}

// renderLoading shows the neutral indicator used while session restoration
// is unresolved. No route content may render in this state.
func (ui *UI) renderLoading(w http.ResponseWriter) {
	ui.render(w, "loading", map[string]any{"Title": "Loading"})
}

// baseTemplate is the shared layout: header, role-aware side menu, content.
const baseTemplate = `{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} - Student Management</title>
</head>
<body>
<header>
	<strong>Student Management</strong>
	{{with .Session}}{{if .User}}
	<span>{{.User.Name}} ({{.User.Role}})</span>
	<a href="/logout">Sign out</a>
	{{end}}{{end}}
</header>
{{with .Session}}{{if .User}}
<nav>
	<a href="/">Dashboard</a>
	{{if .IsStudent}}
	<a href="/profile">My Profile</a>
	<a href="/subjects">Browse Subjects</a>
	{{end}}
	{{if .IsAdmin}}
	<a href="/admin/students">Students</a>
	<a href="/admin/departments">Departments</a>
	<a href="/admin/subjects">Subjects</a>
	<a href="/admin/enrollments">Enrollments</a>
	{{end}}
</nav>
{{end}}{{end}}
<main>
{{template "content" .}}
</main>
</body>
</html>{{end}}`

// pageTemplates maps page names to their content blocks.
var pageTemplates = map[string]string{
	"login": `{{define "content"}}
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
	<label>Username <input type="text" name="username" required></label>
	<label>Password <input type="password" name="password" required></label>
	<button type="submit">Sign in</button>
</form>
{{end}}`,

	"loading": `{{define "content"}}
<p>Loading…</p>
{{end}}`,

	"error": `{{define "content"}}
<h1>Something went wrong</h1>
<p>{{.Message}}</p>
<p><a href="/">Back to dashboard</a></p>
{{end}}`,

	"dashboard_admin": `{{define "content"}}
<h1>Administration</h1>
<ul>
	<li>Students: {{.Stats.Students}}</li>
	<li>Departments: {{.Stats.Departments}}</li>
	<li>Subjects: {{.Stats.Subjects}}</li>
	<li>Enrollments: {{.Stats.Enrollments}}</li>
</ul>
{{end}}`,

	"dashboard_student": `{{define "content"}}
<h1>Welcome, {{.Session.User.Name}}</h1>
<h2>Profile</h2>
<p>{{.Profile.Name}} &lt;{{.Profile.Email}}&gt;, year {{.Profile.Year}}</p>
<h2>My Enrollments</h2>
{{if .Enrollments}}
<table>
	<tr><th>Subject</th><th>Semester</th><th>Status</th><th>Enrolled</th></tr>
	{{range .Enrollments}}
	<tr><td>{{.SubjectID}}</td><td>{{.Semester}}</td><td>{{.Status}}</td><td>{{timeAgo .EnrolledAt}}</td></tr>
	{{end}}
</table>
{{else}}<p>No enrollments yet. <a href="/subjects">Browse subjects</a>.</p>{{end}}
{{end}}`,

	"profile": `{{define "content"}}
<h1>My Profile</h1>
{{if .Saved}}<p>Profile saved.</p>{{end}}
<form method="post" action="/profile">
	<label>Name <input type="text" name="name" value="{{.Profile.Name}}"></label>
	<label>Email <input type="email" name="email" value="{{.Profile.Email}}"></label>
	<button type="submit">Save</button>
</form>
{{end}}`,

	"subjects": `{{define "content"}}
<h1>Subjects</h1>
<form method="get" action="/subjects">
	<input type="text" name="search" value="{{.Search}}" placeholder="Search subjects">
	<button type="submit">Search</button>
</form>
<table>
	<tr><th>Code</th><th>Name</th><th>Credits</th><th></th></tr>
	{{range .Subjects}}
	<tr>
		<td>{{.Code}}</td><td>{{.Name}}</td><td>{{.Credits}}</td>
		<td>
		{{$eid := index $.Enrolled .ID}}
		{{if $eid}}
		<form method="post" action="/enrollments/{{$eid}}/drop"><button type="submit">Drop</button></form>
		{{else}}
		<form method="post" action="/subjects/{{.ID}}/enroll"><button type="submit">Enroll</button></form>
		{{end}}
		</td>
	</tr>
	{{end}}
</table>
{{end}}`,

	"admin_students": `{{define "content"}}
<h1>Students</h1>
<form method="get" action="/admin/students">
	<input type="text" name="search" value="{{.Search}}" placeholder="Search students">
	<button type="submit">Search</button>
</form>
<table>
	<tr><th>Name</th><th>Email</th><th>Department</th><th>Year</th><th></th></tr>
	{{range .Students}}
	<tr>
		<td>{{.Name}}</td><td>{{.Email}}</td><td>{{.DepartmentID}}</td><td>{{.Year}}</td>
		<td><form method="post" action="/admin/students/{{.ID}}/delete"><button type="submit">Delete</button></form></td>
	</tr>
	{{end}}
</table>
<h2>Add student</h2>
<form method="post" action="/admin/students">
	<label>Name <input type="text" name="name" required></label>
	<label>Email <input type="email" name="email" required></label>
	<label>Department
		<select name="department_id">
		{{range .Departments}}<option value="{{.ID}}">{{.Name}}</option>{{end}}
		</select>
	</label>
	<label>Year <input type="number" name="year" value="1"></label>
	<button type="submit">Create</button>
</form>
{{end}}`,

	"admin_departments": `{{define "content"}}
<h1>Departments</h1>
<table>
	<tr><th>Code</th><th>Name</th><th></th></tr>
	{{range .Departments}}
	<tr>
		<td>{{.Code}}</td><td>{{.Name}}</td>
		<td><form method="post" action="/admin/departments/{{.ID}}/delete"><button type="submit">Delete</button></form></td>
	</tr>
	{{end}}
</table>
<h2>Add department</h2>
<form method="post" action="/admin/departments">
	<label>Name <input type="text" name="name" required></label>
	<label>Code <input type="text" name="code" required></label>
	<button type="submit">Create</button>
</form>
{{end}}`,

	"admin_subjects": `{{define "content"}}
<h1>Subjects</h1>
<table>
	<tr><th>Code</th><th>Name</th><th>Department</th><th>Credits</th><th></th></tr>
	{{range .Subjects}}
	<tr>
		<td>{{.Code}}</td><td>{{.Name}}</td><td>{{.DepartmentID}}</td><td>{{.Credits}}</td>
		<td><form method="post" action="/admin/subjects/{{.ID}}/delete"><button type="submit">Delete</button></form></td>
	</tr>
	{{end}}
</table>
<h2>Add subject</h2>
<form method="post" action="/admin/subjects">
	<label>Name <input type="text" name="name" required></label>
	<label>Code <input type="text" name="code" required></label>
	<label>Department
		<select name="department_id">
		{{range .Departments}}<option value="{{.ID}}">{{.Name}}</option>{{end}}
		</select>
	</label>
	<label>Credits <input type="number" name="credits" value="3"></label>
	<label>Description <input type="text" name="description"></label>
	<button type="submit">Create</button>
</form>
{{end}}`,

	"admin_enrollments": `{{define "content"}}
<h1>Enrollments</h1>
<table>
	<tr><th>Student</th><th>Subject</th><th>Semester</th><th>Status</th><th>Enrolled</th><th></th></tr>
	{{range .Enrollments}}
	<tr>
		<td>{{.StudentID}}</td><td>{{.SubjectID}}</td><td>{{.Semester}}</td><td>{{.Status}}</td><td>{{timeAgo .EnrolledAt}}</td>
		<td><form method="post" action="/admin/enrollments/{{.ID}}/delete"><button type="submit">Delete</button></form></td>
	</tr>
	{{end}}
</table>
<h2>Add enrollment</h2>
<form method="post" action="/admin/enrollments">
	<label>Student ID <input type="text" name="student_id" required></label>
	<label>Subject ID <input type="text" name="subject_id" required></label>
	<label>Semester <input type="text" name="semester" required></label>
	<button type="submit">Create</button>
</form>
{{end}}`,
}

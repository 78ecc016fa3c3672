package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/catalog"
	"github.com/dustin/go-humanize"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Job Search</title>
</head>
<body>
<h1>Job Search</h1>
<form id="search-form" action="/jobs" method="get">
  <input type="text" name="q" id="search-input" value="{{.Form.Query}}" placeholder="Search by job title" list="title-suggestions">
  <button type="submit">Search</button>
</form>
<form id="filter-form" action="/jobs/filter" method="get">
  <select name="location" id="location-filter">
    <option value="all">All locations</option>
    {{- range .Locations}}
    <option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
    {{- end}}
  </select>
  <input type="number" name="salary" id="salary-filter" value="{{.Form.Salary}}" placeholder="Minimum salary">
  <button type="submit">Filter</button>
</form>
<form id="match-form" action="/jobs/match" method="get">
  <input type="text" name="skills" id="skills-input" value="{{.Form.Skills}}" placeholder="Skills, comma separated">
  <button type="submit">Match</button>
</form>
<h2 id="results-heading">{{.Heading}}</h2>
<ul id="job-results">
{{- range .Jobs}}
  <li class="job">
    <h3 class="job-title">{{.Title}}</h3>
    <p class="job-company">{{.Company}}</p>
    <p class="job-location">{{.Location}}</p>
    <p class="job-salary">{{.Salary}}</p>
    <p class="job-skills">{{.Skills}}</p>
    <p class="job-description">{{.Description}}</p>
  </li>
{{- else}}
  <li class="no-results">No jobs found.</li>
{{- end}}
</ul>
</body>
</html>
`

type formValues struct {
	Query  string
	Salary string
	Skills string
}

type locationOption struct {
	Name     string
	Selected bool
}

type jobView struct {
	Title       string
	Company     string
	Location    string
	Salary      string
	Skills      string
	Description string
}

type pageData struct {
	Heading   string
	Form      formValues
	Locations []locationOption
	Jobs      []jobView
}

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{tmpl: template.Must(template.New("page").Parse(pageTemplate))}
}

// FormatSalary renders a salary with thousands separators, e.g. "$90,000".
func FormatSalary(salary int) string {
	if salary < 0 {
		return "-$" + humanize.Comma(-int64(salary))
	}
	return "$" + humanize.Comma(int64(salary))
}

func jobViews(jobs []catalog.JobRecord) []jobView {
	views := make([]jobView, len(jobs))
	for i, j := range jobs {
		views[i] = jobView{
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Salary:      FormatSalary(j.Salary),
			Skills:      strings.Join(j.Skills, ", "),
			Description: j.Description,
		}
	}
	return views
}

func (h *Handler) IndexPage(w http.ResponseWriter, r *http.Request) {
	jobs := h.engine.All()
	h.renderPage(w, r, pageData{
		Heading: headingFor("All jobs", len(jobs)),
		Jobs:    jobViews(jobs),
	}, "")
}

func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("q")
	req, err := searchRequest(h.engine, prefix)
	h.servePage(w, r, req, err, "Title search", formValues{Query: prefix}, "")
}

func (h *Handler) FilterPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	location, salary := q.Get("location"), q.Get("salary")
	req, err := filterRequest(h.engine, location, salary)
	h.servePage(w, r, req, err, "Filtered jobs", formValues{Salary: salary}, location)
}

func (h *Handler) MatchPage(w http.ResponseWriter, r *http.Request) {
	skills := r.URL.Query().Get("skills")
	req, err := matchRequest(h.engine, skills)
	h.servePage(w, r, req, err, "Skill matches", formValues{Skills: skills}, "")
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request, req request, err error, heading string, form formValues, selected string) {
	if err == nil {
		var result Result
		result, err = h.execute(r.Context(), req)
		if err == nil {
			h.renderPage(w, r, pageData{
				Heading: headingFor(heading, result.Total),
				Form:    form,
				Jobs:    jobViews(result.Jobs),
			}, selected)
			return
		}
	}
	h.writeAppError(w, r, err)
}

func headingFor(label string, total int) string {
	if total == 1 {
		return label + ": 1 job"
	}
	return label + ": " + humanize.Comma(int64(total)) + " jobs"
}

// renderPage buffers the page so a template failure still yields a clean 500.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, data pageData, selected string) {
	for _, name := range h.engine.Locations() {
		data.Locations = append(data.Locations, locationOption{Name: name, Selected: name == selected})
	}
	var buf bytes.Buffer
	if err := h.pages.tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write page", "error", err)
	}
}

package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var viewsFS embed.FS

// Templates is the parsed page set. It is immutable once loaded and safe for
// concurrent use.
type Templates struct {
	tmpl *template.Template
}

// Route is one line of the route index.
type Route struct {
	Label string
	Path  string
	Href  string
}

type IndexData struct {
	Routes []Route
}

// DefaultRoutes lists the API in the order the index shows it. The trip
// routes link to an example window.
func DefaultRoutes() []Route {
	return []Route{
		{Label: "Precipitation", Path: "/api/v1.0/precipitation", Href: "/api/v1.0/precipitation"},
		{Label: "List of Stations", Path: "/api/v1.0/stations", Href: "/api/v1.0/stations"},
		{Label: "Temperature for one year", Path: "/api/v1.0/tobs", Href: "/api/v1.0/tobs"},
		{
			Label: "Temperatures from date (yyyy-mm-dd)",
			Path:  "/api/v1.0/trip/{start_date}",
			Href:  "/api/v1.0/trip/2016-08-23",
		},
		{
			Label: "Temperatures from and to dates (yyyy-mm-dd)",
			Path:  "/api/v1.0/trip/{start_date}/{end_date}",
			Href:  "/api/v1.0/trip/2016-08-23/2017-08-23",
		},
	}
}

// Load parses the embedded templates. Call it during startup and refuse to
// serve if it fails.
func Load() (*Templates, error) {
	return loadFromFS(viewsFS, "templates")
}

func loadFromFS(fsys fs.FS, dir string) (*Templates, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.ParseFS(sub, "*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{tmpl: tmpl}, nil
}

func (t *Templates) RenderIndex(w io.Writer, data IndexData) error {
	if t == nil || t.tmpl == nil {
		return errors.New("index template not loaded: call views.Load during startup")
	}
	return t.tmpl.ExecuteTemplate(w, "index.html", data)
}

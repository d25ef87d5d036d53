// Package render formats tracks as text with Go templates. Templates get the
// sprig functions and a few helpers for musical values.
package render

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/miditrack"
	"github.com/vsariola/miditrack/tempo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTemplate is the name of the embedded template used by New.
const DefaultTemplate = "summary.txt"

//go:embed templates/*
var templateFS embed.FS

// Renderer executes one template of its template set.
type Renderer struct {
	Template *template.Template
	Name     string
}

// Data is what the templates are executed with.
type Data struct {
	Header *tempo.Map
	Tracks []*miditrack.Track
}

// New returns a Renderer using the embedded summary template.
func New() (*Renderer, error) {
	tmpl, err := template.New("base").Funcs(funcMap()).ParseFS(templateFS, "templates/*")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Renderer{Template: tmpl, Name: DefaultTemplate}, nil
}

// NewFromFile returns a Renderer using the template in the given file.
func NewFromFile(path string) (*Renderer, error) {
	tmpl, err := template.New("base").Funcs(funcMap()).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf(`could not create template from file "%v": %v`, path, err)
	}
	return &Renderer{Template: tmpl, Name: filepath.Base(path)}, nil
}

// Execute renders the tracks.
func (r *Renderer) Execute(w io.Writer, header *tempo.Map, tracks []*miditrack.Track) error {
	if err := r.Template.ExecuteTemplate(w, r.Name, Data{Header: header, Tracks: tracks}); err != nil {
		return fmt.Errorf(`could not execute template "%v": %v`, r.Name, err)
	}
	return nil
}

func funcMap() template.FuncMap {
	caser := cases.Title(language.English, cases.NoLower)
	ret := sprig.TxtFuncMap()
	ret["controllerName"] = func(number int) string {
		if name := miditrack.ControllerName(number); name != "" {
			return caser.String(name)
		}
		return caser.String(fmt.Sprintf("controller %d", number))
	}
	ret["seconds"] = func(s float64) string {
		return fmt.Sprintf("%.3fs", s)
	}
	ret["percent"] = func(v float64) string {
		return fmt.Sprintf("%.0f%%", v*100)
	}
	return ret
}

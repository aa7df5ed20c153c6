package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(
	template.New("view").
		Funcs(template.FuncMap{
			"classes": classAttr,
			"style":   styleAttr,
		}).
		ParseFS(templateFS, "templates/*.gohtml"),
)

package views

import (
	"html/template"
	"io"

	"github.com/sandeepkv93/taskboard/internal/card"
)

const boardTemplate = `{{define "card"}}<li id="{{.ID}}" class="{{.ClassName}}">
{{- if .Editing}}<textarea class="cxe-task-editor">{{.EditorText}}</textarea>
{{- else}}<input type="checkbox" class="{{.CheckboxClass}}"{{if .Completed}} checked{{end}}>
<div class="{{.ContentClass}}"{{if .Style}} style="{{.Style}}"{{end}}>{{.Content}}</div>
{{- end}}</li>
{{end}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<ul class="cxb-task-list">
{{range .Cards}}{{template "card" .}}{{end}}</ul>
</body>
</html>
`

var boardTmpl = template.Must(template.New("board").Parse(boardTemplate))

type htmlCard struct {
	ID            string
	ClassName     string
	Editing       bool
	EditorText    string
	CheckboxClass string
	Completed     bool
	ContentClass  string
	Style         template.CSS
	Content       template.HTML
}

func toHTMLCard(vm card.ViewModel) htmlCard {
	return htmlCard{
		ID:            vm.ID,
		ClassName:     vm.ClassName,
		Editing:       vm.State == card.StateEdit,
		EditorText:    vm.EditorText,
		CheckboxClass: vm.CheckboxClass,
		Completed:     vm.Completed,
		ContentClass:  vm.ContentClass,
		// Style values come from operator-configured rules.
		Style: template.CSS(vm.Styles.CSS()),
		// ContentHTML has already been sanitized by the markdown renderer.
		Content: template.HTML(vm.ContentHTML),
	}
}

// RenderCardHTML writes the markup of a single card.
func RenderCardHTML(w io.Writer, vm card.ViewModel) error {
	return boardTmpl.ExecuteTemplate(w, "card", toHTMLCard(vm))
}

// RenderBoardHTML writes a standalone HTML page listing every card.
func RenderBoardHTML(w io.Writer, title string, cards []card.ViewModel) error {
	data := struct {
		Title string
		Cards []htmlCard
	}{Title: title, Cards: make([]htmlCard, 0, len(cards))}
	for _, vm := range cards {
		data.Cards = append(data.Cards, toHTMLCard(vm))
	}
	return boardTmpl.Execute(w, data)
}

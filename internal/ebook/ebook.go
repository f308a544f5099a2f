// Package ebook renders collected puzzles into a printable HTML book.
package ebook

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/jeromeheuze/puzzle-generator/internal/akari"
)

type Section struct {
	Difficulty akari.Difficulty
	Puzzles    []*akari.EbookPuzzle
}

type Book struct {
	Title       string
	GeneratedAt string
	Total       int
	Sections    []Section
}

// NewBook groups puzzles into per-difficulty sections, easiest first.
func NewBook(title string, puzzles []*akari.EbookPuzzle) *Book {
	book := &Book{
		Title:       title,
		GeneratedAt: time.Now().Format("January 2, 2006"),
		Total:       len(puzzles),
	}
	for _, difficulty := range akari.Difficulties() {
		var section Section
		section.Difficulty = difficulty
		for _, p := range puzzles {
			if p.Difficulty == difficulty {
				section.Puzzles = append(section.Puzzles, p)
			}
		}
		if len(section.Puzzles) > 0 {
			book.Sections = append(book.Sections, section)
		}
	}
	return book
}

var funcs = template.FuncMap{
	"cellClass": func(c akari.Cell) string {
		switch {
		case c.IsNumbered():
			return "numbered"
		case c.IsWall():
			return "wall"
		default:
			return "empty"
		}
	},
	"cellText": func(c akari.Cell) string {
		if n, ok := c.Number(); ok {
			return fmt.Sprint(n)
		}
		return ""
	},
}

var bookTemplate = template.Must(template.New("book").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; margin: 2em auto; max-width: 48em; }
h1 { text-align: center; }
.cover { text-align: center; page-break-after: always; }
.section { page-break-before: always; }
.puzzle { margin: 2em 0; page-break-inside: avoid; }
.board { border-collapse: collapse; margin: 0.5em 0; }
.board td { width: 2em; height: 2em; border: 1px solid #333; text-align: center; font-weight: bold; }
.board td.wall, .board td.numbered { background: #222; color: #fff; }
.hint { color: #777; font-size: 0.85em; }
.rules { page-break-after: always; }
</style>
</head>
<body>
<div class="cover">
<h1>{{.Title}}</h1>
<p>{{.Total}} puzzles &middot; {{.GeneratedAt}}</p>
</div>
<div class="rules">
<h2>How to Play</h2>
<p>Place light bulbs in white cells so that every white cell is lit.
A bulb lights its entire row and column until blocked by a black cell.
No bulb may shine on another bulb. A numbered black cell tells exactly
how many bulbs sit orthogonally next to it.</p>
</div>
{{range .Sections}}
<div class="section">
<h2>{{.Difficulty}}</h2>
{{range .Puzzles}}
<div class="puzzle" id="{{.EbookID}}">
<h3>{{.EbookID}} &mdash; {{.Size}}&times;{{.Size}}</h3>
<table class="board">
{{range .Layout}}<tr>{{range .}}<td class="{{cellClass .}}">{{cellText .}}</td>{{end}}</tr>
{{end}}</table>
<p class="hint">{{.SolutionHint}} &middot; seed {{.Seed}}</p>
</div>
{{end}}
</div>
{{end}}
</body>
</html>
`))

// Render writes the book as a standalone HTML document.
func Render(w io.Writer, book *Book) error {
	return bookTemplate.Execute(w, book)
}

// RenderFile renders straight into a file.
func RenderFile(path string, book *Book) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Render(f, book)
}

// Package export renders a document to an EPUB file: cover page, title
// page, then one XHTML page per top-level section.
package export

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	epub "github.com/bmaupin/go-epub"

	"github.com/dshills/inkstone/internal/outline"
)

// Book is the export metadata.
type Book struct {
	// Title is the book title. Empty falls back to the first heading,
	// then to "Untitled".
	Title string

	// Author is the author line on the title page.
	Author string

	// CoverImage is an optional path to a cover image file.
	CoverImage string
}

// bookCSS is the reading style applied to every page.
const bookCSS = `body {
	font-family: serif;
	line-height: 1.8;
	margin: 1em;
}
h1.book-title {
	text-align: center;
	margin-top: 40%;
}
p.book-author {
	text-align: center;
	margin-top: 2em;
}
`

// section is one top-level chunk of the document.
type section struct {
	// Title is the level-1 heading text, empty for the preface chunk.
	Title string

	// Body is the raw text of the chunk, heading line excluded.
	Body string
}

// EPUB writes content as an EPUB to outPath.
func EPUB(content string, meta Book, outPath string) error {
	secs := splitSections(content)

	title := meta.Title
	if title == "" {
		for _, s := range secs {
			if s.Title != "" {
				title = s.Title
				break
			}
		}
	}
	if title == "" {
		title = "Untitled"
	}

	e := epub.NewEpub(title)
	if meta.Author != "" {
		e.SetAuthor(meta.Author)
	}

	// AddCSS wants a source file, so the stylesheet goes through a temp
	// file first.
	cssFile, err := os.CreateTemp("", "inkstone-epub-*.css")
	if err != nil {
		return fmt.Errorf("export epub: %w", err)
	}
	defer os.Remove(cssFile.Name())
	if _, err := cssFile.WriteString(bookCSS); err != nil {
		cssFile.Close()
		return fmt.Errorf("export epub: %w", err)
	}
	if err := cssFile.Close(); err != nil {
		return fmt.Errorf("export epub: %w", err)
	}
	cssPath, err := e.AddCSS(cssFile.Name(), "style.css")
	if err != nil {
		return fmt.Errorf("export epub: %w", err)
	}

	if meta.CoverImage != "" {
		img, err := e.AddImage(meta.CoverImage, filepath.Base(meta.CoverImage))
		if err != nil {
			return fmt.Errorf("export epub: cover %s: %w", meta.CoverImage, err)
		}
		e.SetCover(img, "")
	}

	titleBody := fmt.Sprintf(`<h1 class="book-title">%s</h1>`, html.EscapeString(title))
	if meta.Author != "" {
		titleBody += fmt.Sprintf(`<p class="book-author">%s</p>`, html.EscapeString(meta.Author))
	}
	if _, err := e.AddSection(titleBody, title, "title.xhtml", cssPath); err != nil {
		return fmt.Errorf("export epub: %w", err)
	}

	for i, s := range secs {
		name := fmt.Sprintf("section%04d.xhtml", i+1)
		label := s.Title
		if label == "" {
			label = title
		}
		if _, err := e.AddSection(renderSection(s), label, name, cssPath); err != nil {
			return fmt.Errorf("export epub: %w", err)
		}
	}

	if err := e.Write(outPath); err != nil {
		return fmt.Errorf("export epub: write %s: %w", outPath, err)
	}
	return nil
}

// splitSections cuts content at level-1 headings. Text before the first
// level-1 heading becomes an untitled preface section; an empty document
// yields no sections.
func splitSections(content string) []section {
	var secs []section
	cur := section{}

	pos := 0
	for pos <= len(content) {
		end := strings.IndexByte(content[pos:], '\n')
		var line string
		if end < 0 {
			line = content[pos:]
		} else {
			line = content[pos : pos+end]
		}

		if level, text, ok := outline.ParseLine(line); ok && level == 1 {
			if cur.Title != "" || strings.TrimSpace(cur.Body) != "" {
				secs = append(secs, cur)
			}
			cur = section{Title: text}
		} else {
			cur.Body += line + "\n"
		}

		if end < 0 {
			break
		}
		pos += end + 1
	}

	if cur.Title != "" || strings.TrimSpace(cur.Body) != "" {
		secs = append(secs, cur)
	}
	return secs
}

// renderSection converts a section to XHTML: the level-1 title as h1,
// nested headings as h2..h6, non-blank lines as paragraphs.
func renderSection(s section) string {
	var b strings.Builder
	if s.Title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(s.Title))
	}
	for _, line := range strings.Split(s.Body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if level, text, ok := outline.ParseLine(line); ok {
			if level > 6 {
				level = 6
			}
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", level, html.EscapeString(text), level)
			continue
		}
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(line))
	}
	return b.String()
}

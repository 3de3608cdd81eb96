// Package docs derives sidebar titles from the Markdown sources of the site.
package docs

import (
	"bytes"
	"errors"
	"html"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	Title string `yaml:"title"`
}

// Source reads titles from Markdown files under Root.
type Source struct {
	Root   string
	Logger *zap.Logger

	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewSource returns a Source rooted at dir.
func NewSource(dir string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		Root:   dir,
		Logger: logger,
		md:     goldmark.New(),
		policy: bluemonday.StrictPolicy(),
	}
}

// Title returns the front matter title of the page at sitePath, else its
// first level-1 heading. Missing or unreadable pages yield false.
func (s *Source) Title(sitePath string) (string, bool) {
	for _, file := range s.candidates(sitePath) {
		data, err := os.ReadFile(file)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.Logger.Warn("docs: read page", zap.String("file", file), zap.Error(err))
			}
			continue
		}
		title, err := s.extract(data)
		if err != nil {
			s.Logger.Warn("docs: parse front matter", zap.String("file", file), zap.Error(err))
			return "", false
		}
		if title == "" {
			return "", false
		}
		return title, true
	}
	return "", false
}

// candidates maps "/a/" to a/README.md or a/index.md, and "/a", "/a.md",
// "/a.html" to a.md.
func (s *Source) candidates(sitePath string) []string {
	clean := path.Clean("/" + strings.TrimSpace(sitePath))
	if strings.HasSuffix(sitePath, "/") || clean == "/" {
		dir := filepath.Join(s.Root, filepath.FromSlash(clean))
		return []string{filepath.Join(dir, "README.md"), filepath.Join(dir, "index.md")}
	}
	clean = strings.TrimSuffix(clean, ".html")
	if !strings.HasSuffix(clean, ".md") {
		clean += ".md"
	}
	return []string{filepath.Join(s.Root, filepath.FromSlash(clean))}
}

func (s *Source) extract(data []byte) (string, error) {
	fm, body := splitFrontMatter(string(data))
	if strings.TrimSpace(fm) != "" {
		var front frontMatter
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return "", err
		}
		if t := strings.TrimSpace(front.Title); t != "" {
			return s.plain(t), nil
		}
	}
	return s.plain(s.firstHeading([]byte(body))), nil
}

func (s *Source) firstHeading(src []byte) string {
	doc := s.md.Parser().Parse(text.NewReader(src))
	var buf bytes.Buffer
	var done bool
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if done {
			return ast.WalkStop, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || !entering || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		writeInline(&buf, h, src)
		done = true
		return ast.WalkStop, nil
	})
	return buf.String()
}

func writeInline(buf *bytes.Buffer, n ast.Node, src []byte) {
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(src))
			if v.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		case *ast.RawHTML:
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				buf.Write(seg.Value(src))
			}
		}
		return ast.WalkContinue, nil
	})
}

// plain strips any markup so titles are safe to drop into templates as text.
func (s *Source) plain(in string) string {
	out := html.UnescapeString(s.policy.Sanitize(in))
	return strings.Join(strings.Fields(out), " ")
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

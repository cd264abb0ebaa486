// Package parsers provides parsers for importing articles from files.
package parsers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawArticle represents an article parsed from a markdown file before
// validation. Slug and Title come from the YAML frontmatter; when the
// frontmatter omits them they are derived from the filename and the first
// heading.
type RawArticle struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Body        string `yaml:"-"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const frontmatterDelimiter = "---"

// MarkdownParser parses a markdown article with optional YAML frontmatter.
type MarkdownParser struct{}

// Parse reads a markdown document. A frontmatter block delimited by "---"
// lines at the top of the file carries slug, title and description; the
// rest of the file is the article body.
func (p *MarkdownParser) Parse(r io.Reader, filename string) (*RawArticle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	article := &RawArticle{}
	body := string(raw)

	if frontmatter, rest, ok := splitFrontmatter(body); ok {
		if err := yaml.Unmarshal([]byte(frontmatter), article); err != nil {
			return nil, fmt.Errorf("parsing frontmatter of %s: %w", filename, err)
		}
		body = rest
	}

	article.Body = strings.TrimSpace(body) + "\n"
	if article.Body == "\n" {
		return nil, fmt.Errorf("%s has no content", filename)
	}

	if article.Slug == "" {
		article.Slug = Slugify(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	}
	if !slugPattern.MatchString(article.Slug) {
		return nil, fmt.Errorf("invalid slug %q in %s", article.Slug, filename)
	}

	if article.Title == "" {
		article.Title = firstHeading(article.Body)
	}
	if article.Title == "" {
		return nil, fmt.Errorf("%s has no title: add frontmatter or a # heading", filename)
	}

	return article, nil
}

// splitFrontmatter separates a leading YAML frontmatter block from the body.
func splitFrontmatter(doc string) (frontmatter, body string, ok bool) {
	if !strings.HasPrefix(doc, frontmatterDelimiter+"\n") {
		return "", doc, false
	}

	rest := doc[len(frontmatterDelimiter)+1:]
	idx := strings.Index(rest, "\n"+frontmatterDelimiter)
	if idx < 0 {
		return "", doc, false
	}

	body = rest[idx+1+len(frontmatterDelimiter):]
	body = strings.TrimPrefix(body, "\n")
	return rest[:idx], body, true
}

// firstHeading returns the text of the first markdown heading in the body.
func firstHeading(body string) string {
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}

// Slugify converts a free-form name to slug form: lowercase, hyphens for
// runs of non-alphanumerics.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ErrUnsupportedFile is returned for files the importer cannot handle.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ForFile returns the parser for the given filename, or
// ErrUnsupportedFile for extensions other than markdown.
func ForFile(filename string) (*MarkdownParser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
}

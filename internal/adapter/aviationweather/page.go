package aviationweather

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// ErrNoTable is returned when an HTML page has no preformatted table.
var ErrNoTable = errors.New("no preformatted forecast table in page")

// ReadBlock converts a page body into a table block. Plain text bodies are
// used as-is; anything else is parsed as HTML and the text of the first <pre>
// element is kept. The body is decoded to UTF-8 according to contentType.
func ReadBlock(r io.Reader, contentType, source string) (domain.TableBlock, error) {
	body, err := charset.NewReader(r, contentType)
	if err != nil {
		return domain.TableBlock{}, fmt.Errorf("decode page charset: %w", err)
	}

	if isPlainText(contentType) {
		data, err := io.ReadAll(body)
		if err != nil {
			return domain.TableBlock{}, fmt.Errorf("read table text: %w", err)
		}
		return domain.NewTableBlock(string(data), source), nil
	}

	text, err := ExtractTable(body)
	if err != nil {
		return domain.TableBlock{}, err
	}
	return domain.NewTableBlock(text, source), nil
}

// ExtractTable returns the text content of the first <pre> element in an HTML
// document, including text nested in inline elements.
func ExtractTable(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	pre := findElement(doc, atom.Pre)
	if pre == nil {
		return "", ErrNoTable
	}

	var sb strings.Builder
	collectText(pre, &sb)
	return sb.String(), nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func isPlainText(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/plain"
}

package ocrsource

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// hocrWord is one recognized word with its pixel bounding box. hOCR uses
// an image coordinate system: origin top-left, y growing downward.
type hocrWord struct {
	Text       string
	X0, Y0     float64
	X1, Y1     float64
	Confidence float64
}

// hocrPage is one recognized page: its pixel extent plus every word.
type hocrPage struct {
	Width  float64
	Height float64
	Words  []hocrWord
}

// parseHOCR extracts the page box and word boxes from Tesseract hOCR
// markup. Words below minConfidence are dropped.
func parseHOCR(markup string, minConfidence float64) (hocrPage, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return hocrPage{}, fmt.Errorf("parsing hOCR: %w", err)
	}

	var page hocrPage
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch attrValue(n, "class") {
			case "ocr_page":
				if b, ok := parseBBox(attrValue(n, "title")); ok {
					page.Width = b[2]
					page.Height = b[3]
				}
			case "ocrx_word":
				title := attrValue(n, "title")
				if b, ok := parseBBox(title); ok {
					word := hocrWord{
						Text:       strings.TrimSpace(nodeText(n)),
						X0:         b[0],
						Y0:         b[1],
						X1:         b[2],
						Y1:         b[3],
						Confidence: parseWConf(title),
					}
					if word.Text != "" && word.Confidence >= minConfidence {
						page.Words = append(page.Words, word)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if page.Width == 0 || page.Height == 0 {
		return page, fmt.Errorf("hOCR markup carries no page box")
	}
	return page, nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// parseBBox reads the "bbox x0 y0 x1 y1" property from an hOCR title
// attribute, whose properties are semicolon-separated.
func parseBBox(title string) ([4]float64, bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		var box [4]float64
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return box, false
			}
			box[i] = v
		}
		return box, true
	}
	return [4]float64{}, false
}

// parseWConf reads the "x_wconf N" word confidence, defaulting to 100
// when absent so confidence filtering never drops unscored words.
func parseWConf(title string) float64 {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) == 2 && fields[0] == "x_wconf" {
			if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
				return v
			}
		}
	}
	return 100
}

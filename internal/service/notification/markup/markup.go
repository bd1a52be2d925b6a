// Package markup 알림 본문(HTML)을 메신저별 서식으로 변환합니다.
//
// Slack은 mrkdwn, Telegram은 제한된 HTML 태그만 허용하므로 각각의 규칙에 맞게
// 지원하지 않는 태그는 제거하고 텍스트는 보존합니다.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/notify-dispatcher/pkg/strutil"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseBody HTML 조각을 파싱하여 body 노드를 반환합니다.
func parseBody(fragment string) (*html.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return nil, nil
	}
	return body.Get(0), nil
}

// writer 태그별 변환 규칙입니다. 텍스트 노드는 escape를 거쳐 기록됩니다.
type writer struct {
	sb     strings.Builder
	escape func(string) string
	open   func(w *writer, n *html.Node) (closing string, descend bool)
}

func (w *writer) walk(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			w.sb.WriteString(w.escape(c.Data))
		case html.ElementNode:
			closing, descend := w.open(w, c)
			if descend {
				w.walk(c)
			}
			w.sb.WriteString(closing)
		}
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textOf 노드의 하위 텍스트만 이어 붙여 반환합니다.
func textOf(n *html.Node) string {
	return goquery.NewDocumentFromNode(n).Text()
}

func convert(fragment string, escape func(string) string, open func(w *writer, n *html.Node) (string, bool)) (string, error) {
	body, err := parseBody(fragment)
	if err != nil || body == nil {
		return "", err
	}

	w := &writer{escape: escape, open: open}
	w.walk(body)

	return strutil.NormalizeMultiLineSpaces(w.sb.String()), nil
}

// blockBreak 블록 요소 사이의 줄바꿈 규칙입니다. 처리했으면 true를 반환합니다.
func blockBreak(w *writer, n *html.Node) (string, bool, bool) {
	switch n.DataAtom {
	case atom.Br:
		w.sb.WriteString("\n")
		return "", false, true
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Ul, atom.Ol, atom.Table, atom.Tr:
		return "\n\n", true, true
	case atom.Li:
		w.sb.WriteString("• ")
		return "\n", true, true
	case atom.Script, atom.Style, atom.Head:
		return "", false, true
	}
	return "", false, false
}

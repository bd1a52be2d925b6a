package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	slackEscaper    = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	slackURLEscaper = strings.NewReplacer("&", "&amp;", "<", "%3C", ">", "%3E", "|", "%7C")
)

// EscapeSlack Slack mrkdwn에서 특별한 의미를 갖는 문자를 이스케이프합니다.
func EscapeSlack(s string) string {
	return slackEscaper.Replace(s)
}

// SlackLink <url|label> 형식의 링크를 만듭니다. url의 '|', '<', '>'는 퍼센트 인코딩하여 링크 구문이 깨지지 않게 합니다.
func SlackLink(url, label string) string {
	return "<" + slackURLEscaper.Replace(url) + "|" + EscapeSlack(label) + ">"
}

// ToSlackMrkdwn HTML 조각을 Slack mrkdwn 텍스트로 변환합니다.
func ToSlackMrkdwn(fragment string) (string, error) {
	return convert(fragment, EscapeSlack, func(w *writer, n *html.Node) (string, bool) {
		if closing, descend, ok := blockBreak(w, n); ok {
			return closing, descend
		}

		switch n.DataAtom {
		case atom.B, atom.Strong:
			w.sb.WriteString("*")
			return "*", true
		case atom.I, atom.Em:
			w.sb.WriteString("_")
			return "_", true
		case atom.S, atom.Strike, atom.Del:
			w.sb.WriteString("~")
			return "~", true
		case atom.Code:
			w.sb.WriteString("`")
			return "`", true
		case atom.Pre:
			w.sb.WriteString("```\n")
			w.sb.WriteString(EscapeSlack(textOf(n)))
			return "\n```\n", false
		case atom.Blockquote:
			w.sb.WriteString("> ")
			return "\n", true
		case atom.A:
			href := attr(n, "href")
			if href == "" {
				return "", true
			}
			w.sb.WriteString(SlackLink(href, strings.TrimSpace(textOf(n))))
			return "", false
		}

		return "", true
	})
}

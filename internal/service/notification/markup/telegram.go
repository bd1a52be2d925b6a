package markup

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// telegramTags Telegram HTML 파싱 모드가 허용하는 태그입니다.
var telegramTags = map[atom.Atom]string{
	atom.B:          "b",
	atom.Strong:     "b",
	atom.I:          "i",
	atom.Em:         "i",
	atom.U:          "u",
	atom.Ins:        "u",
	atom.S:          "s",
	atom.Strike:     "s",
	atom.Del:        "s",
	atom.Code:       "code",
	atom.Pre:        "pre",
	atom.Blockquote: "blockquote",
}

// EscapeTelegram Telegram HTML 모드에서 텍스트로 사용할 수 있도록 이스케이프합니다.
func EscapeTelegram(s string) string {
	return html.EscapeString(s)
}

// ToTelegramHTML HTML 조각을 Telegram이 허용하는 태그만 남긴 HTML로 변환합니다.
func ToTelegramHTML(fragment string) (string, error) {
	return convert(fragment, EscapeTelegram, func(w *writer, n *nethtml.Node) (string, bool) {
		if closing, descend, ok := blockBreak(w, n); ok {
			return closing, descend
		}

		if n.DataAtom == atom.A {
			href := attr(n, "href")
			if href == "" || !(strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")) {
				return "", true
			}
			w.sb.WriteString(`<a href="` + html.EscapeString(href) + `">`)
			return "</a>", true
		}

		if tag, ok := telegramTags[n.DataAtom]; ok {
			w.sb.WriteString("<" + tag + ">")
			return "</" + tag + ">", true
		}

		return "", true
	})
}

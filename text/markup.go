package text

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/stylus/model"
)

// markupState is the inherited style context at one tag nesting depth.
type markupState struct {
	tag         string
	styles      Styles
	font        string
	size        float64
	charSpacing *float64
	color       *model.Color
	link        string
	anchor      string
}

// ParseMarkup converts inline markup into styled runs. Supported tags:
//
//	<b> <i> <u> <strikethrough> <sub> <sup>
//	<font name="..." size="..." character_spacing="...">
//	<color rgb="RRGGBB">
//	<link href="..."> or <link anchor="...">, <a> as a synonym
//
// Tags nest, and inner tags inherit the outer context. Entities such
// as &lt; and &amp; are decoded. An unknown tag, a mismatched closing
// tag, or a malformed attribute value is an error. Attributes the
// parser does not understand are skipped and reported in the notes
// return.
//
// The tokenizer never sees a tree, so a void element name like link
// keeps its closing tag.
func ParseMarkup(markup string) ([]Run, []string, error) {
	tz := html.NewTokenizer(strings.NewReader(markup))
	stack := []markupState{{}}
	var runs []Run
	var notes []string

	for {
		switch tz.Next() {
		case html.ErrorToken:
			if err := tz.Err(); err != io.EOF {
				return nil, nil, fmt.Errorf("parsing markup: %w", err)
			}
			if n := len(stack); n > 1 {
				return nil, nil, fmt.Errorf("unclosed markup tag <%s>", stack[n-1].tag)
			}
			return runs, notes, nil

		case html.TextToken:
			txt := string(tz.Text())
			if txt == "" {
				continue
			}
			st := stack[len(stack)-1]
			runs = append(runs, Run{
				Text:        txt,
				Styles:      st.styles,
				Font:        st.font,
				Size:        st.size,
				CharSpacing: st.charSpacing,
				Color:       st.color,
				Link:        st.link,
				Anchor:      st.anchor,
			})

		case html.StartTagToken:
			tok := tz.Token()
			st := stack[len(stack)-1]
			st.tag = tok.Data
			n, err := applyTag(&st, tok)
			if err != nil {
				return nil, nil, err
			}
			notes = append(notes, n...)
			stack = append(stack, st)

		case html.SelfClosingTagToken:
			// A self-closed style tag encloses no text, so it
			// contributes nothing beyond validation.
			tok := tz.Token()
			st := stack[len(stack)-1]
			n, err := applyTag(&st, tok)
			if err != nil {
				return nil, nil, err
			}
			notes = append(notes, n...)

		case html.EndTagToken:
			tok := tz.Token()
			top := stack[len(stack)-1]
			if len(stack) == 1 || top.tag != tok.Data {
				return nil, nil, fmt.Errorf("unmatched closing markup tag </%s>", tok.Data)
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// applyTag folds one start tag into the inherited context.
func applyTag(st *markupState, tok html.Token) ([]string, error) {
	var notes []string

	switch tok.Data {
	case "b":
		st.styles |= StyleBold
	case "i":
		st.styles |= StyleItalic
	case "u":
		st.styles |= StyleUnderline
	case "strikethrough":
		st.styles |= StyleStrikethrough
	case "sub":
		st.styles |= StyleSubscript
	case "sup":
		st.styles |= StyleSuperscript

	case "font":
		for _, attr := range tok.Attr {
			switch attr.Key {
			case "name":
				st.font = attr.Val
			case "size":
				v, err := strconv.ParseFloat(attr.Val, 64)
				if err != nil {
					return nil, fmt.Errorf("markup font size %q: %w", attr.Val, err)
				}
				st.size = v
			case "character_spacing":
				v, err := strconv.ParseFloat(attr.Val, 64)
				if err != nil {
					return nil, fmt.Errorf("markup character spacing %q: %w", attr.Val, err)
				}
				st.charSpacing = &v
			default:
				notes = append(notes, fmt.Sprintf("font attribute %q ignored", attr.Key))
			}
		}

	case "color":
		for _, attr := range tok.Attr {
			switch attr.Key {
			case "rgb":
				c, err := model.ParseColor(attr.Val)
				if err != nil {
					return nil, fmt.Errorf("markup color: %w", err)
				}
				st.color = &c
			default:
				notes = append(notes, fmt.Sprintf("color attribute %q ignored", attr.Key))
			}
		}

	case "link", "a":
		for _, attr := range tok.Attr {
			switch attr.Key {
			case "href":
				st.link = attr.Val
			case "anchor":
				st.anchor = attr.Val
			default:
				notes = append(notes, fmt.Sprintf("link attribute %q ignored", attr.Key))
			}
		}

	default:
		return nil, fmt.Errorf("unknown markup tag <%s>", tok.Data)
	}

	return notes, nil
}

// Package docjson parses the declarative JSON document schema (§6 of the
// specification this module implements) into an element.Element tree the
// layout core can measure and draw directly.
//
// Grounded on the teacher's own declarative surface, the `syntax` package,
// which hand-rolls a recursive-descent parser over a tagged grammar rather
// than reaching for a schema library; this package follows the same
// instinct against stdlib encoding/json's RawMessage instead of Typst
// markup, since the JSON schema here is a small, closed, spec-defined
// tagged union with no need for a general validation library. Multiple
// independent failures across a document (a dangling font reference here,
// an unreadable image there) are collected with go.uber.org/multierr so
// the embedder sees every configuration error in one report rather than
// stopping at the first.
package docjson

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/elements"
	"github.com/boergens/pdflayout/font"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/imageasset"
	"github.com/boergens/pdflayout/shaping"
	"github.com/boergens/pdflayout/svgdecode"
)

// mmToPt converts millimeters to points, per spec.md §6 ("1 mm = 72/25.4
// pt").
const mmToPt = 72.0 / 25.4

// Document is a fully parsed, layout-ready declarative document.
type Document struct {
	Title   string
	Entries []PageEntry
}

// PageEntry is one page-sized entry of a Document: a page size in points
// and the root element to draw into it.
type PageEntry struct {
	Size    geom.Size
	Element element.Element
}

// Options configures parsing. A zero Options is valid: a fresh shaping
// cache at the default capacity is created, and font/image/SVG paths are
// read relative to the process's working directory.
type Options struct {
	// Cache is shared across every Text and RichText element in the
	// document, so identical runs across separate entries still hit one
	// cache. A nil Cache gets a DefaultCapacity cache of its own.
	Cache *shaping.Cache
}

// rawDocument mirrors the top-level JSON shape from §6:
//
//	{ "title": str?, "entries": [{ "size": [w_mm, h_mm], "fonts": {...}?, "element": <ElementJSON> }] }
type rawDocument struct {
	Title   string        `json:"title"`
	Entries []rawPageSpec `json:"entries"`
}

type rawPageSpec struct {
	Size    [2]float64        `json:"size"`
	Fonts   map[string]string `json:"fonts"`
	Element json.RawMessage   `json:"element"`
}

// Parse decodes data against the JSON document schema and builds the
// corresponding element tree. Every font, image and SVG reference is
// resolved eagerly, per spec.md §7: resource errors are reported "at
// element construction", before any byte of output is produced.
func Parse(data []byte, opts Options) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("docjson: invalid document: %w", err)
	}
	if len(raw.Entries) == 0 {
		return nil, fmt.Errorf("docjson: document has no entries")
	}

	cache := opts.Cache
	if cache == nil {
		cache = shaping.NewCache(shaping.DefaultCapacity)
	}

	b := &builder{cache: cache, fontsByPath: map[string]*font.Font{}}
	doc := &Document{Title: raw.Title}

	var errs error
	for i, spec := range raw.Entries {
		fonts, err := b.resolveFonts(spec.Fonts)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		if spec.Size[0] <= 0 || spec.Size[1] <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: page size must be positive, got %v", i, spec.Size))
			continue
		}
		el, err := b.decode(spec.Element, fonts)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		doc.Entries = append(doc.Entries, PageEntry{
			Size:    geom.Size{Width: geom.Abs(spec.Size[0] * mmToPt), Height: geom.Abs(spec.Size[1] * mmToPt)},
			Element: el,
		})
	}
	if errs != nil {
		return nil, fmt.Errorf("docjson: %w", errs)
	}
	return doc, nil
}

// builder carries the state shared across one Parse call: the document-wide
// shaping cache and a cache of already-loaded fonts, keyed by file path so
// the same font referenced from multiple entries is parsed once.
type builder struct {
	cache       *shaping.Cache
	fontsByPath map[string]*font.Font
}

func (b *builder) resolveFonts(paths map[string]string) (map[string]*font.Font, error) {
	resolved := make(map[string]*font.Font, len(paths))
	var errs error
	for name, path := range paths {
		f, ok := b.fontsByPath[path]
		if !ok {
			var err error
			f, err = font.Load(path)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("font %q: %w", name, err))
				continue
			}
			b.fontsByPath[path] = f
		}
		resolved[name] = f
	}
	return resolved, errs
}

// rawElement is the common envelope every ElementJSON variant shares: a
// type tag, plus every field any variant might carry. Fields are decoded
// lazily per-variant in decode, so an unrelated variant's absent fields
// simply stay at their zero value.
type rawElement struct {
	Type string `json:"type"`

	// Container children.
	Content  json.RawMessage   `json:"content"`
	Children []json.RawMessage `json:"content_list"`
	Items    []rawRowItem      `json:"items"`
	Title    json.RawMessage   `json:"title"`
	ContTitle json.RawMessage  `json:"continuationTitle"`
	Header   json.RawMessage   `json:"header"`

	// Column / Row
	Gap      float64 `json:"gap"`
	Collapse bool    `json:"collapse"`

	// Padding
	Left   *float64 `json:"left,omitempty"`
	Top    *float64 `json:"top,omitempty"`
	Right  *float64 `json:"right,omitempty"`
	Bottom *float64 `json:"bottom,omitempty"`
	All    *float64 `json:"all,omitempty"`

	// HAlign
	Align string `json:"align"`

	// Text / RichText
	Text     string        `json:"text"`
	Font     string        `json:"font"`
	Size     float64       `json:"size"`
	Color    *jsonColor    `json:"color"`
	Weight   int           `json:"weight"`
	Italic   bool          `json:"italic"`
	Tracking float64       `json:"tracking"`
	Spans    []rawSpan     `json:"spans"`

	// Image / SVG
	Path string `json:"path"`

	// Rectangle / Circle
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Diameter float64    `json:"diameter"`
	Fill     *jsonColor `json:"fill"`
	Stroke   *jsonStroke `json:"stroke"`

	// Titled
	CollapseOnEmpty bool `json:"collapseOnEmpty"`
}

type rawRowItem struct {
	Element json.RawMessage `json:"element"`
	Flex    bool            `json:"flex"`
}

type rawSpan struct {
	Text     string     `json:"text"`
	Font     string     `json:"font"`
	Size     float64    `json:"size"`
	Color    *jsonColor `json:"color"`
	Weight   int        `json:"weight"`
	Italic   bool       `json:"italic"`
	Tracking float64    `json:"tracking"`
}

type jsonStroke struct {
	Color     jsonColor `json:"color"`
	Thickness float64   `json:"thickness"`
	Cap       string    `json:"cap"`
	Join      string    `json:"join"`
}

func (b *builder) decode(raw json.RawMessage, fonts map[string]*font.Font) (element.Element, error) {
	var re rawElement
	if err := json.Unmarshal(raw, &re); err != nil {
		return nil, fmt.Errorf("malformed element: %w", err)
	}

	switch re.Type {
	case "Column":
		children, err := b.decodeList(re.contentList(), fonts)
		if err != nil {
			return nil, err
		}
		return &elements.Column{Gap: geom.Abs(re.Gap), Collapse: re.Collapse, Children: children}, nil

	case "Row":
		var kids []elements.RowChild
		var errs error
		for i, item := range re.Items {
			el, err := b.decode(item.Element, fonts)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("item %d: %w", i, err))
				continue
			}
			kids = append(kids, elements.RowChild{Element: el, Flex: item.Flex})
		}
		if errs != nil {
			return nil, errs
		}
		return &elements.Row{Gap: geom.Abs(re.Gap), Children: kids}, nil

	case "Stack":
		children, err := b.decodeList(re.contentList(), fonts)
		if err != nil {
			return nil, err
		}
		return &elements.Stack{Children: children}, nil

	case "Padding":
		inner, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, err
		}
		return &elements.Padding{Content: inner, Insets: re.insets()}, nil

	case "HAlign":
		inner, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, err
		}
		return &elements.HAlign{Content: inner, Align: parseHAlign(re.Align)}, nil

	case "Text":
		f, ok := fonts[re.Font]
		if !ok {
			return nil, fmt.Errorf("Text: unknown font reference %q", re.Font)
		}
		return &elements.Text{
			Content: re.Text, Font: f, Size: geom.Abs(re.Size), Color: re.Color.orBlack(),
			Cache: b.cache, Weight: re.Weight, Italic: re.Italic, Tracking: geom.Abs(re.Tracking),
		}, nil

	case "RichText":
		var spans []elements.Span
		var errs error
		for i, s := range re.Spans {
			f, ok := fonts[s.Font]
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("span %d: unknown font reference %q", i, s.Font))
				continue
			}
			spans = append(spans, elements.Span{
				Text: s.Text, Font: f, Size: geom.Abs(s.Size), Color: s.Color.orBlack(),
				Weight: s.Weight, Italic: s.Italic, Tracking: geom.Abs(s.Tracking),
			})
		}
		if errs != nil {
			return nil, errs
		}
		return &elements.RichText{Spans: spans, Cache: b.cache}, nil

	case "Image":
		data, err := os.ReadFile(re.Path)
		if err != nil {
			return nil, fmt.Errorf("Image: %w", err)
		}
		img, err := imageasset.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("Image %q: %w", re.Path, err)
		}
		return &elements.Image{Source: img}, nil

	case "SVG":
		data, err := os.ReadFile(re.Path)
		if err != nil {
			return nil, fmt.Errorf("SVG: %w", err)
		}
		frag, err := svgdecode.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("SVG %q: %w", re.Path, err)
		}
		return &elements.SVG{Source: frag}, nil

	case "Rectangle":
		return &elements.Rectangle{
			Size:   geom.Size{Width: geom.Abs(re.Width), Height: geom.Abs(re.Height)},
			Fill:   re.Fill.orNil(), Stroke: re.Stroke.build(),
		}, nil

	case "Circle":
		return &elements.Circle{Diameter: geom.Abs(re.Diameter), Fill: re.Fill.orNil(), Stroke: re.Stroke.build()}, nil

	case "Page":
		inner, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, err
		}
		return &elements.Page{Inner: inner}, nil

	case "ForceBreak":
		return &elements.ForceBreak{}, nil

	case "BreakWhole":
		inner, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, err
		}
		return &elements.BreakWhole{Inner: inner}, nil

	case "Titled":
		title, err := b.decode(re.Title, fonts)
		if err != nil {
			return nil, fmt.Errorf("Titled.title: %w", err)
		}
		content, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, fmt.Errorf("Titled.content: %w", err)
		}
		return &elements.Titled{Title: title, Content: content, CollapseOnEmpty: re.CollapseOnEmpty}, nil

	case "ChangingTitle":
		first, err := b.decode(re.Title, fonts)
		if err != nil {
			return nil, fmt.Errorf("ChangingTitle.title: %w", err)
		}
		// continuationTitle defaults to the first title's raw JSON when
		// omitted, matching a header that does not change across breaks.
		contRaw := re.ContTitle
		if len(contRaw) == 0 {
			contRaw = re.Title
		}
		cont, err := b.decode(contRaw, fonts)
		if err != nil {
			return nil, fmt.Errorf("ChangingTitle.continuationTitle: %w", err)
		}
		content, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, fmt.Errorf("ChangingTitle.content: %w", err)
		}
		return &elements.ChangingTitle{
			TitleFor: func(continuation bool) element.Element {
				if continuation {
					return cont
				}
				return first
			},
			Content: content,
		}, nil

	case "RepeatAfterBreak":
		header, err := b.decode(re.Header, fonts)
		if err != nil {
			return nil, fmt.Errorf("RepeatAfterBreak.header: %w", err)
		}
		content, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, fmt.Errorf("RepeatAfterBreak.content: %w", err)
		}
		return &elements.RepeatAfterBreak{Header: header, Content: content}, nil

	case "PinBelow":
		inner, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, err
		}
		return &elements.PinBelow{Inner: inner}, nil

	case "ShrinkToFit":
		inner, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, err
		}
		return &elements.ShrinkToFit{Inner: inner}, nil

	case "ExpandToPreferredHeight":
		inner, err := b.decode(re.Content, fonts)
		if err != nil {
			return nil, err
		}
		return &elements.ExpandToPreferredHeight{Inner: inner}, nil

	default:
		return nil, fmt.Errorf("unknown element type %q", re.Type)
	}
}

func (b *builder) decodeList(raws []json.RawMessage, fonts map[string]*font.Font) ([]element.Element, error) {
	out := make([]element.Element, 0, len(raws))
	var errs error
	for i, raw := range raws {
		el, err := b.decode(raw, fonts)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("child %d: %w", i, err))
			continue
		}
		out = append(out, el)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

// contentList returns whichever of "content" (a single array) or
// "content_list" the document used for a container's children, so both a
// bare JSON array and the field's JSON-array value decode the same way.
func (re rawElement) contentList() []json.RawMessage {
	if len(re.Children) > 0 {
		return re.Children
	}
	var list []json.RawMessage
	if len(re.Content) > 0 {
		_ = json.Unmarshal(re.Content, &list)
	}
	return list
}

func (re rawElement) insets() geom.Sides[geom.Abs] {
	if re.All != nil {
		return geom.SidesSplat(geom.Abs(*re.All))
	}
	get := func(p *float64) geom.Abs {
		if p == nil {
			return 0
		}
		return geom.Abs(*p)
	}
	return geom.Sides[geom.Abs]{Left: get(re.Left), Top: get(re.Top), Right: get(re.Right), Bottom: get(re.Bottom)}
}

func parseHAlign(s string) geom.HAlign {
	switch s {
	case "center":
		return geom.HAlignCenter
	case "end":
		return geom.HAlignEnd
	default:
		return geom.HAlignStart
	}
}

package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/flight"
)

type EncState struct {
	format   Format
	indent   int
	maxDepth int
	ids      bool
	heads    bool

	Color func(ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2, heads: true}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func (es *EncState) color(a ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(a, v)
}

// Encode writes the tree of s to w.
func Encode(s *cache.Snapshot, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	switch es.format {
	case YAMLFormat, JSONFormat:
		doc, err := s.Document()
		if err != nil {
			return err
		}
		return encodeDoc(doc, w, es)
	}
	if s.Root() == cache.None {
		_, err := io.WriteString(w, es.color(SepColor, "/")+" "+es.color(LazyColor, "<empty>")+"\n")
		return err
	}
	return s.Walk(func(path []cache.Key, id cache.ID, n *cache.Node) error {
		if es.maxDepth > 0 && len(path) > es.maxDepth {
			return nil
		}
		return writeNode(w, path, id, n, es)
	})
}

func encodeDoc(v any, w io.Writer, es *EncState) error {
	var (
		d   []byte
		err error
	)
	if es.format == JSONFormat {
		d, err = json.MarshalIndent(v, "", strings.Repeat(" ", es.indent))
	} else {
		d, err = yaml.MarshalWithOptions(v, yaml.Indent(es.indent))
	}
	if err != nil {
		return err
	}
	if len(d) == 0 || d[len(d)-1] != '\n' {
		d = append(d, '\n')
	}
	_, err = w.Write(d)
	return err
}

func writeNode(w io.Writer, path []cache.Key, id cache.ID, n *cache.Node, es *EncState) error {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", es.indent*len(path)))
	if len(path) == 0 {
		sb.WriteString(es.color(SepColor, "/"))
	} else {
		k := path[len(path)-1]
		sb.WriteString(es.color(SlotColor, k.Slot))
		sb.WriteString(es.color(SepColor, "/"))
		sb.WriteString(es.color(SegmentColor, segmentString(k.Segment)))
	}
	sb.WriteByte(' ')
	sb.WriteString(es.color(StatusColor(n.Status), n.Status.String()))
	if es.ids {
		sb.WriteByte(' ')
		sb.WriteString(es.color(IDColor, "#"+strconv.Itoa(int(id))))
	}
	if n.Content != nil {
		sb.WriteByte(' ')
		sb.WriteString(es.color(ContentColor, valueString(n.Content)))
	}
	if es.heads && n.Head != nil {
		sb.WriteByte(' ')
		sb.WriteString(es.color(HeadColor, "head="+valueString(n.Head)))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func segmentString(s string) string {
	if s == "" {
		return `""`
	}
	return s
}

func valueString(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case fmt.Stringer:
		return x.String()
	}
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(d)
}

// EncodeTree writes a router state tree to w. The YAML and JSON formats use
// the list form read by parse.RouterState.
func EncodeTree(t *flight.RouterState, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	if es.format != TextFormat {
		return encodeDoc(t.Wire(), w, es)
	}
	_, err := io.WriteString(w, t.String())
	return err
}

// EncodeData writes flight data in its list form as YAML or JSON. The text
// format writes one path per line.
func EncodeData(d flight.Data, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	if es.format != TextFormat {
		return encodeDoc(d.Wire(), w, es)
	}
	buf := bytes.NewBuffer(nil)
	for i := range d {
		p := &d[i]
		content := "-"
		if p.HasContent() {
			content = valueString(p.Seed.Content)
		}
		fmt.Fprintf(buf, "%s %s\n", es.color(SegmentColor, p.String()), es.color(ContentColor, content))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Package schema implements a small interpreter for declarative binary layouts.
//
// A layout is a tree of Nodes built from a closed set of variants: Sequence,
// Field, Nested, Custom, Conditional and Loop. Parse walks the tree against a
// bytestream.Stream and fills a nested Record. The package has no knowledge of
// any particular file format.
package schema

import "github.com/yaklabco/gifdec/pkg/bytestream"

// Reader extracts one value from the stream. The root and parent records
// give access to fields parsed so far.
type Reader func(s *bytestream.Stream, root, parent Record) any

// Predicate decides whether a Conditional or Loop body runs.
type Predicate func(s *bytestream.Stream, root, parent Record) bool

// ParseFunc parses node into parent using the current stream and root.
// It is handed to Custom nodes so they can recurse.
type ParseFunc func(node Node, parent Record)

// CustomFunc implements arbitrary parsing logic.
type CustomFunc func(s *bytestream.Stream, root, parent Record, parse ParseFunc)

// Node is one element of a layout. The set of implementations is closed.
type Node interface {
	isNode()
}

type sequenceNode []Node

type fieldNode struct {
	key  string
	read Reader
}

type nestedNode struct {
	key  string
	body Node
}

type customNode struct {
	fn CustomFunc
}

type conditionalNode struct {
	body Node
	pred Predicate
}

type loopNode struct {
	key  string
	body Node
	cont Predicate
}

func (sequenceNode) isNode()    {}
func (fieldNode) isNode()       {}
func (nestedNode) isNode()      {}
func (customNode) isNode()      {}
func (conditionalNode) isNode() {}
func (loopNode) isNode()        {}

// Sequence applies each node in order against the same parent.
func Sequence(nodes ...Node) Node {
	return sequenceNode(nodes)
}

// Field stores the value produced by read under key.
func Field(key string, read Reader) Node {
	return fieldNode{key: key, read: read}
}

// Nested creates a child record under key and parses body into it.
func Nested(key string, body ...Node) Node {
	return nestedNode{key: key, body: Sequence(body...)}
}

// Custom runs fn with access to the stream, the records and the parser.
func Custom(fn CustomFunc) Node {
	return customNode{fn: fn}
}

// Conditional parses body into the current parent only when pred holds.
// Nothing is consumed otherwise.
func Conditional(body Node, pred Predicate) Node {
	return conditionalNode{body: body, pred: pred}
}

// Loop parses body into a fresh record for as long as cont holds and stores
// the collected records under key. An iteration that consumes no bytes ends
// the loop and is discarded, so malformed input cannot spin forever.
func Loop(key string, body Node, cont Predicate) Node {
	return loopNode{key: key, body: body, cont: cont}
}

// Parse walks node against s and returns the populated root record.
func Parse(s *bytestream.Stream, node Node) Record {
	root := Record{}
	p := &parser{stream: s, root: root}
	p.parse(node, root)
	return root
}

type parser struct {
	stream *bytestream.Stream
	root   Record
}

func (p *parser) parse(node Node, parent Record) {
	switch n := node.(type) {
	case sequenceNode:
		for _, child := range n {
			p.parse(child, parent)
		}
	case fieldNode:
		parent[n.key] = n.read(p.stream, p.root, parent)
	case nestedNode:
		child := Record{}
		parent[n.key] = child
		p.parse(n.body, child)
	case customNode:
		n.fn(p.stream, p.root, parent, p.parse)
	case conditionalNode:
		if n.pred(p.stream, p.root, parent) {
			p.parse(n.body, parent)
		}
	case loopNode:
		parent[n.key] = p.loop(n, parent)
	case nil:
		// An absent node parses nothing.
	}
}

func (p *parser) loop(n loopNode, parent Record) []Record {
	var items []Record
	last := p.stream.Pos()
	for n.cont(p.stream, p.root, parent) {
		item := Record{}
		p.parse(n.body, item)
		if p.stream.Pos() == last {
			break
		}
		last = p.stream.Pos()
		items = append(items, item)
	}
	return items
}

package template_parser

import (
	"dtc-go/packages/compiler/templates"
	"dtc-go/packages/compiler/util"
)

type frameKind int

const (
	frameRoot frameKind = iota
	frameElement
	frameBlock
	frameAttribute
)

// parseNode is one frame of the parse stack. Its content is handed to fold
// once the construct that opened the frame is closed.
type parseNode struct {
	view    *templates.View
	parent  *parseNode
	kind    frameKind
	opener  string
	content []templates.Node
	fold    func(content []templates.Node)
}

func newParseNode(view *templates.View) *parseNode {
	return &parseNode{view: view, kind: frameRoot}
}

func (n *parseNode) child(kind frameKind, opener string, fold func(content []templates.Node)) *parseNode {
	return &parseNode{
		view:   n.view,
		parent: n,
		kind:   kind,
		opener: opener,
		fold:   fold,
	}
}

func (n *parseNode) push(node templates.Node) {
	n.content = append(n.content, node)
}

func (n *parseNode) last() templates.Node {
	if len(n.content) == 0 {
		return nil
	}
	return n.content[len(n.content)-1]
}

func (n *parseNode) pop() templates.Node {
	last := n.last()
	if last != nil {
		n.content = n.content[:len(n.content)-1]
	}
	return last
}

// close folds the frame's content into the node that opened it. Closed
// frames always fold a non-nil slice.
func (n *parseNode) close() {
	if n.fold == nil {
		return
	}
	content := n.content
	if content == nil {
		content = []templates.Node{}
	}
	n.fold(content)
}

func (n *parseNode) unclosedError() error {
	switch n.kind {
	case frameElement:
		return util.Errorf(util.ErrorKindStructural, "Unclosed HTML tag: %s", n.opener)
	case frameBlock:
		return util.Errorf(util.ErrorKindStructural, "Unclosed template tag: {{%s}}", n.opener)
	default:
		return util.Errorf(util.ErrorKindStructural, "Unclosed template content: %s", n.opener)
	}
}

// parseState is the mutable state of a single parse invocation. Every
// handler receives it explicitly, so concurrent parses never share frames.
type parseState struct {
	parser *Parser
	view   *templates.View
	root   *parseNode
	node   *parseNode
}

func newParseState(parser *Parser, view *templates.View) *parseState {
	root := newParseNode(view)
	return &parseState{
		parser: parser,
		view:   view,
		root:   root,
		node:   root,
	}
}

func (s *parseState) finish() (*templates.Template, error) {
	if s.node != s.root {
		return nil, s.node.unclosedError()
	}
	return templates.NewTemplate(s.root.content), nil
}

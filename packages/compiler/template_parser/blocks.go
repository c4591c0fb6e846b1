package template_parser

import (
	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/templates"
	"dtc-go/packages/compiler/util"
)

func (s *parseState) parseBlockExpression(expr expressions.Expression) error {
	meta := expr.Meta()
	switch {
	case meta.IsEnd:
		return s.parseBlockEnd(expr)
	case meta.BlockType == "else" || meta.BlockType == "else if":
		return s.parseBlockContinuation(expr)
	default:
		s.parseBlockStart(expr)
		return nil
	}
}

// parseBlockEnd closes the current block frame. The block that opened it is
// the last item of the parent frame and must have the same block type,
// unless the end is the generic `{{/}}`.
func (s *parseState) parseBlockEnd(expr expressions.Expression) error {
	meta := expr.Meta()
	frame := s.node
	if frame.kind != frameBlock || frame.parent == nil {
		return mismatchedBlockEnd(meta)
	}
	lastExpression := templates.BlockExpression(frame.parent.last())
	if lastExpression == nil || lastExpression.Meta() == nil {
		return mismatchedBlockEnd(meta)
	}
	lastType := lastExpression.Meta().BlockType
	if !((meta.BlockType == "end" && lastType != "") || meta.BlockType == lastType) {
		return mismatchedBlockEnd(meta)
	}
	frame.close()
	s.node = frame.parent
	return nil
}

func mismatchedBlockEnd(meta *expressions.ExpressionMeta) error {
	return util.Errorf(util.ErrorKindStructural, "Mismatched closing template tag: %s", meta.Source)
}

// parseBlockContinuation handles `else` and `else if`. Conditional blocks
// gain a branch; each blocks accept a single bare `else` as their else
// content.
func (s *parseState) parseBlockContinuation(expr expressions.Expression) error {
	meta := expr.Meta()
	frame := s.node
	if frame.kind != frameBlock || frame.parent == nil {
		return unexpected(meta.Source)
	}
	parent := frame.parent

	switch block := parent.last().(type) {
	case *templates.ConditionalBlock:
		frame.close()
		block.Expressions = append(block.Expressions, expr)
		block.Contents = append(block.Contents, nil)
		index := len(block.Contents) - 1
		s.node = parent.child(frameBlock, meta.Source, func(content []templates.Node) {
			block.Contents[index] = content
		})
	case *templates.EachBlock:
		if meta.BlockType != "else" {
			return unexpected(meta.Source)
		}
		frame.close()
		s.node = parent.child(frameBlock, meta.Source, func(content []templates.Node) {
			block.ElseContent = content
		})
	default:
		return unexpected(meta.Source)
	}
	return nil
}

func (s *parseState) parseBlockStart(expr expressions.Expression) {
	meta := expr.Meta()
	var block templates.Node
	var fold func(content []templates.Node)

	switch meta.BlockType {
	case "if", "unless":
		conditional := templates.NewConditionalBlock([]expressions.Expression{expr}, [][]templates.Node{nil})
		fold = func(content []templates.Node) { conditional.Contents[0] = content }
		block = conditional
	case "each":
		each := templates.NewEachBlock(expr, nil)
		fold = func(content []templates.Node) { each.Content = content }
		block = each
	default:
		generic := templates.NewBlock(expr, nil)
		fold = func(content []templates.Node) { generic.Content = content }
		block = generic
	}

	s.node.push(block)
	s.node = s.node.child(frameBlock, meta.Source, fold)
}

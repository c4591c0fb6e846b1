package templates

// Visitor is implemented by consumers that handle every node kind
type Visitor interface {
	VisitTemplate(template *Template, context interface{}) interface{}
	VisitElement(element *Element, context interface{}) interface{}
	VisitText(text *Text, context interface{}) interface{}
	VisitDynamicText(text *DynamicText, context interface{}) interface{}
	VisitComment(comment *Comment, context interface{}) interface{}
	VisitDoctype(doctype *Doctype, context interface{}) interface{}
	VisitConditionalBlock(block *ConditionalBlock, context interface{}) interface{}
	VisitEachBlock(block *EachBlock, context interface{}) interface{}
	VisitBlock(block *Block, context interface{}) interface{}
	VisitViewPointer(pointer *ViewPointer, context interface{}) interface{}
	VisitDynamicViewPointer(pointer *DynamicViewPointer, context interface{}) interface{}
}

// VisitAll visits every node and collects the non-nil results
func VisitAll(visitor Visitor, nodes []Node, context interface{}) []interface{} {
	result := []interface{}{}
	for _, node := range nodes {
		if r := node.Visit(visitor, context); r != nil {
			result = append(result, r)
		}
	}
	return result
}

package htmltable

// 从网页中提取全部<table>元素，提供基于CSS选择器(goquery)和基于XPath(htmlquery)的两种实现

import (
	"fmt"

	"github.com/dszqbsm/rankedfilms/table"
)

type ParserType string

const (
	CSSParser   ParserType = "css"
	XPathParser ParserType = "xpath"
)

// 表格提取器的统一规范
type Extractor interface {
	/*
	   输入网页内容，输出按文档顺序排列的表格和一个error

	   嵌套的表格作为独立的表格输出，不包含任何单元格的表格被忽略
	*/
	Extract(body []byte) ([]*table.Table, error)
}

/*
输入一个解析器类型，输出一个Extractor接口类型的实例和一个error

空字符串按css处理，未知的类型返回错误
*/
func New(typ ParserType) (Extractor, error) {
	switch typ {
	case CSSParser, "":
		return &queryExtractor{}, nil
	case XPathParser:
		return &xpathExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown parser type: %q", typ)
	}
}

package htmltable

import (
	"bytes"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/dszqbsm/rankedfilms/table"
	"golang.org/x/net/html"
)

var (
	tableExpr = xpath.MustCompile("//table")
	cellExpr  = xpath.MustCompile("./*[name()='td' or name()='th']")
)

type xpathExtractor struct{}

func (*xpathExtractor) Extract(body []byte) ([]*table.Table, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var tables []*table.Table
	for _, n := range htmlquery.QuerySelectorAll(doc, tableExpr) {
		if t := build(xpathRows(n)); t != nil {
			tables = append(tables, t)
		}
	}
	return tables, nil
}

func xpathRows(tbl *html.Node) []rawRow {
	var rows []rawRow
	for child := tbl.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "tr":
			rows = append(rows, xpathRow(child, false))
		case "thead", "tbody", "tfoot":
			for tr := child.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					rows = append(rows, xpathRow(tr, child.Data == "thead"))
				}
			}
		}
	}
	return rows
}

// 单元格按文档顺序返回
func xpathRow(tr *html.Node, inHead bool) rawRow {
	r := rawRow{inHead: inHead}
	for _, td := range htmlquery.QuerySelectorAll(tr, cellExpr) {
		r.cells = append(r.cells, rawCell{
			text:    normalize(htmlquery.InnerText(td)),
			header:  td.Data == "th",
			colspan: span(htmlquery.SelectAttr(td, "colspan"), maxColspan),
			rowspan: span(htmlquery.SelectAttr(td, "rowspan"), maxRowspan),
		})
	}
	return r
}

package htmltable

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/dszqbsm/rankedfilms/table"
)

var (
	tableSel   = cascadia.MustCompile("table")
	sectionSel = cascadia.MustCompile("thead, tbody, tfoot")
	rowSel     = cascadia.MustCompile("tr")
	cellSel    = cascadia.MustCompile("td, th")
)

type queryExtractor struct{}

func (*queryExtractor) Extract(body []byte) ([]*table.Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var tables []*table.Table
	doc.FindMatcher(tableSel).Each(func(_ int, s *goquery.Selection) {
		if t := build(queryRows(s)); t != nil {
			tables = append(tables, t)
		}
	})
	return tables, nil
}

// 只读取直属于当前表格的行，行可能直接位于table下，也可能位于thead、tbody、tfoot中
func queryRows(tbl *goquery.Selection) []rawRow {
	var rows []rawRow
	tbl.Children().Each(func(_ int, child *goquery.Selection) {
		switch {
		case child.IsMatcher(rowSel):
			rows = append(rows, queryRow(child, false))
		case child.IsMatcher(sectionSel):
			inHead := goquery.NodeName(child) == "thead"
			child.ChildrenMatcher(rowSel).Each(func(_ int, tr *goquery.Selection) {
				rows = append(rows, queryRow(tr, inHead))
			})
		}
	})
	return rows
}

func queryRow(tr *goquery.Selection, inHead bool) rawRow {
	r := rawRow{inHead: inHead}
	tr.ChildrenMatcher(cellSel).Each(func(_ int, td *goquery.Selection) {
		r.cells = append(r.cells, rawCell{
			text:    normalize(td.Text()),
			header:  goquery.NodeName(td) == "th",
			colspan: span(td.AttrOr("colspan", "1"), maxColspan),
			rowspan: span(td.AttrOr("rowspan", "1"), maxRowspan),
		})
	})
	return r
}

package htmltable

// 把从DOM中读取到的行和单元格展开为规整的二维表格，处理表头识别、colspan/rowspan展开和短行补齐

import (
	"strconv"
	"strings"

	"github.com/dszqbsm/rankedfilms/table"
)

type rawCell struct {
	text    string
	header  bool // th单元格
	colspan int
	rowspan int
}

type rawRow struct {
	cells  []rawCell
	inHead bool // 位于thead中
}

// 解析colspan、rowspan属性，非法值按1处理
// 与浏览器一致的跨度上限
const (
	maxColspan = 1000
	maxRowspan = 65534
)

// 解析colspan或rowspan，非法值按1处理，超过limit时取limit
func span(v string, limit int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}

// 去掉首尾空白并把内部连续空白合并为一个空格
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

/*
输入一张表格的原始行，输出一个table.Table，若表格中没有任何单元格则返回nil

没有单元格的行被忽略；thead中的行作为表头；没有thead时，开头连续的全部由th组成的行作为表头；表头与表体分别展开合并单元格
*/
func build(all []rawRow) *table.Table {
	rows := make([]rawRow, 0, len(all))
	for _, r := range all {
		if len(r.cells) > 0 {
			rows = append(rows, r)
		}
	}

	var head, body []rawRow
	hasThead := false
	for _, r := range rows {
		if r.inHead {
			hasThead = true
			break
		}
	}

	if hasThead {
		for _, r := range rows {
			if r.inHead {
				head = append(head, r)
			} else {
				body = append(body, r)
			}
		}
	} else {
		i := 0
		for ; i < len(rows); i++ {
			if !allHeader(rows[i]) {
				break
			}
		}
		head, body = rows[:i], rows[i:]
	}

	headGrid := expand(head)
	bodyGrid := expand(body)

	width := 0
	for _, g := range [][][]string{headGrid, bodyGrid} {
		for _, r := range g {
			if len(r) > width {
				width = len(r)
			}
		}
	}
	if width == 0 {
		return nil
	}

	t := &table.Table{
		Columns: make([]table.Column, width),
		Rows:    make([][]string, 0, len(bodyGrid)),
	}
	for i := range t.Columns {
		t.Columns[i].Name = columnName(headGrid, i)
	}
	for _, r := range bodyGrid {
		t.Rows = append(t.Rows, pad(r, width))
	}
	table.Infer(t)
	return t
}

func allHeader(r rawRow) bool {
	if len(r.cells) == 0 {
		return false
	}
	for _, c := range r.cells {
		if !c.header {
			return false
		}
	}
	return true
}

// 表头有多行时，同一列的各行文本以空格连接，相邻的重复文本只保留一个
func columnName(head [][]string, col int) string {
	var parts []string
	for _, r := range head {
		if col >= len(r) || r[col] == "" {
			continue
		}
		if len(parts) > 0 && parts[len(parts)-1] == r[col] {
			continue
		}
		parts = append(parts, r[col])
	}
	if len(parts) == 0 {
		return strconv.Itoa(col)
	}
	return strings.Join(parts, " ")
}

func pad(r []string, width int) []string {
	out := make([]string, width)
	copy(out, r)
	return out
}

// 展开colspan和rowspan，被跨越的位置重复填充单元格文本
func expand(rows []rawRow) [][]string {
	grid := make([][]string, len(rows))
	filled := make([][]bool, len(rows))

	for y, r := range rows {
		x := 0
		for _, c := range r.cells {
			for x < len(filled[y]) && filled[y][x] {
				x++
			}
			for dy := 0; dy < c.rowspan && y+dy < len(rows); dy++ {
				for dx := 0; dx < c.colspan; dx++ {
					set(grid, filled, y+dy, x+dx, c.text)
				}
			}
			x += c.colspan
		}
	}
	return grid
}

func set(grid [][]string, filled [][]bool, y, x int, v string) {
	for len(grid[y]) <= x {
		grid[y] = append(grid[y], "")
		filled[y] = append(filled[y], false)
	}
	if filled[y][x] {
		return
	}
	grid[y][x] = v
	filled[y][x] = true
}

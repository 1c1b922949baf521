package table

// 定义了抓取到的表格的内存结构，以及切片、追加序号列、内连接、删除列等操作

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// 列的数据类型，由单元格内容推断得到
type Kind int

const (
	Text Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "text"
	}
}

// 表格中的一列
type Column struct {
	Name string
	Kind Kind
}

// 表格，行中单元格的顺序与Columns一致
type Table struct {
	Columns []Column
	Rows    [][]string
}

var ErrColumnNotFound = errors.New("column not found")

// 创建一个只包含列名的空表格，列类型均为Text
func New(names ...string) *Table {
	t := &Table{Columns: make([]Column, len(names))}
	for i, n := range names {
		t.Columns[i] = Column{Name: n}
	}
	return t
}

// 返回表格的行数和列数
func (t *Table) Shape() (int, int) {
	return len(t.Rows), len(t.Columns)
}

func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// 根据列名查找列下标，不存在时返回-1
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// 追加一行，单元格数量必须与列数一致
func (t *Table) Append(row ...string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, append([]string(nil), row...))
	return nil
}

/*
输入一个表格、行数上限和列下标，输出一个新的表格和一个error

该方法复制表格的前rows行和指定的列，返回的表格与原表格互不影响；表格行数不足时返回全部行，列下标越界时返回错误
*/
func Select(t *Table, rows int, cols ...int) (*Table, error) {
	for _, c := range cols {
		if c < 0 || c >= len(t.Columns) {
			return nil, fmt.Errorf("column position %d out of range [0,%d)", c, len(t.Columns))
		}
	}
	if rows < 0 {
		rows = 0
	}
	if rows > len(t.Rows) {
		rows = len(t.Rows)
	}

	out := &Table{
		Columns: make([]Column, len(cols)),
		Rows:    make([][]string, 0, rows),
	}
	for i, c := range cols {
		out.Columns[i] = t.Columns[c]
	}
	for _, r := range t.Rows[:rows] {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = r[c]
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// 在表格末尾追加一个名为name的整数序号列，取值为1..N，N为行数，返回新的表格；同名列已存在时覆盖该列
func WithSequence(t *Table, name string) *Table {
	out := t.Clone()
	idx := out.Index(name)
	if idx < 0 {
		idx = len(out.Columns)
		out.Columns = append(out.Columns, Column{Name: name})
		for i := range out.Rows {
			out.Rows[i] = append(out.Rows[i], "")
		}
	}
	out.Columns[idx].Kind = Int
	for i := range out.Rows {
		out.Rows[i][idx] = strconv.Itoa(i + 1)
	}
	return out
}

/*
输入左右两个表格和连接键的列名，输出连接后的表格和一个error

该方法在key列上做内连接：保留左表的行顺序，同一个键在两边各出现多次时输出笛卡尔积；除键以外重名的列分别加上_x和_y后缀，键列只保留一份并放在左表原来的位置
*/
func InnerJoin(left, right *Table, key string) (*Table, error) {
	li := left.Index(key)
	if li < 0 {
		return nil, fmt.Errorf("left table: %w: %s", ErrColumnNotFound, key)
	}
	ri := right.Index(key)
	if ri < 0 {
		return nil, fmt.Errorf("right table: %w: %s", ErrColumnNotFound, key)
	}

	rightNames := make(map[string]struct{}, len(right.Columns))
	for i, c := range right.Columns {
		if i != ri {
			rightNames[c.Name] = struct{}{}
		}
	}
	leftNames := make(map[string]struct{}, len(left.Columns))
	for i, c := range left.Columns {
		if i != li {
			leftNames[c.Name] = struct{}{}
		}
	}

	out := &Table{}
	for i, c := range left.Columns {
		if _, dup := rightNames[c.Name]; dup && i != li {
			c.Name += "_x"
		}
		out.Columns = append(out.Columns, c)
	}
	for i, c := range right.Columns {
		if i == ri {
			continue
		}
		if _, dup := leftNames[c.Name]; dup {
			c.Name += "_y"
		}
		out.Columns = append(out.Columns, c)
	}

	index := make(map[string][]int, len(right.Rows))
	for i, r := range right.Rows {
		index[r[ri]] = append(index[r[ri]], i)
	}

	for _, l := range left.Rows {
		for _, j := range index[l[li]] {
			row := make([]string, 0, len(out.Columns))
			row = append(row, l...)
			for i, v := range right.Rows[j] {
				if i != ri {
					row = append(row, v)
				}
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// 删除名为name的列，返回新的表格
func Drop(t *Table, name string) (*Table, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	out := &Table{
		Columns: make([]Column, 0, len(t.Columns)-1),
		Rows:    make([][]string, 0, len(t.Rows)),
	}
	out.Columns = append(out.Columns, t.Columns[:idx]...)
	out.Columns = append(out.Columns, t.Columns[idx+1:]...)
	for _, r := range t.Rows {
		row := make([]string, 0, len(r)-1)
		row = append(row, r[:idx]...)
		row = append(row, r[idx+1:]...)
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// 深拷贝
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]Column(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}

func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Names(), " | "))
	for _, r := range t.Rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(r, " | "))
	}
	return b.String()
}

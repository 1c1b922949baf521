package table

import (
	"math"
	"strconv"
	"strings"
)

// 逐列推断数据类型：非空单元格全部为整数时为Int，全部为数字时为Float，否则为Text；全为空的列为Text
func Infer(t *Table) {
	for c := range t.Columns {
		t.Columns[c].Kind = inferColumn(t.Rows, c)
	}
}

func inferColumn(rows [][]string, c int) Kind {
	kind := Int
	seen := false
	for _, r := range rows {
		v := strings.TrimSpace(r[c])
		if v == "" {
			continue
		}
		seen = true
		if kind == Int {
			if _, err := strconv.ParseInt(v, 10, 64); err == nil {
				continue
			}
			kind = Float
		}
		if _, ok := parseFloat(v); !ok {
			return Text
		}
	}
	if !seen {
		return Text
	}
	return kind
}

// 按列类型把单元格转换为数据库参数，空单元格转换为nil；无法转换时按原始字符串返回
func Value(kind Kind, cell string) interface{} {
	v := strings.TrimSpace(cell)
	if v == "" {
		return nil
	}
	switch kind {
	case Int:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	case Float:
		if f, ok := parseFloat(v); ok {
			return f
		}
	}
	return cell
}

// 只接受有限的十进制数；strconv.ParseFloat还会接受NaN、Inf和十六进制浮点数，这些单元格按文本处理
func parseFloat(v string) (float64, bool) {
	if strings.ContainsAny(v, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

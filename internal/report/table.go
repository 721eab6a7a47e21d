package report

import (
	"strings"
	"unicode/utf8"
)

// Render 按 Headers 渲染行。
func Render(rows []Row) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, r.Cells())
	}
	return FormatTable(Headers, cells)
}

// FormatTable 输出定宽表格：列宽取表头与所有单元格的最大字符数，
// 左对齐，列间用 " | " 分隔，表头下方是用 "-+-" 连接的横线。
func FormatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, col := range row {
			if n := utf8.RuneCountInString(col); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for i, col := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(col)
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(col)))
		}
	}

	writeRow(headers)
	b.WriteByte('\n')
	for i, w := range widths {
		if i > 0 {
			b.WriteString("-+-")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(row)
	}
	return b.String()
}

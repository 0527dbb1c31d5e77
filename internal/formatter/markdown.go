// Package formatter renders dashboards as markdown and keeps their tables aligned.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"jepdash/pkg/metadata"
)

// FormatMarkdown realigns every table in content. A metadata block, when
// present, is re-signed so the hash matches the reformatted text.
func FormatMarkdown(content string) (string, error) {
	meta, cleanContent := metadata.Extract(content)

	lines := strings.Split(cleanContent, "\n")

	var formattedLines []string

	var tableBuffer []string

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, processTable(tableBuffer)...)
	}

	formattedContent := strings.Join(formattedLines, "\n")

	if meta == nil {
		return formattedContent, nil
	}

	return metadata.Sign(formattedContent, meta), nil
}

// Table renders headers and rows as an aligned markdown table. Pipes and
// line breaks inside cells are escaped.
func Table(headers []string, rows [][]string) []string {
	lines := make([]string, 0, len(rows)+2)

	lines = append(lines, joinRow(headers))
	lines = append(lines, joinRow(make([]string, len(headers))))

	for _, row := range rows {
		lines = append(lines, joinRow(row))
	}

	return processTable(lines)
}

func joinRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeCell(c)
	}

	return "| " + strings.Join(escaped, " | ") + " |"
}

func escapeCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	return strings.ReplaceAll(s, "|", `\|`)
}

// splitRow splits a table line into trimmed cells, leaving escaped pipes
// inside their cell.
func splitRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")

	if strings.HasSuffix(row, "|") && !strings.HasSuffix(row, `\|`) {
		row = row[:len(row)-1]
	}

	var (
		cells []string
		cell  strings.Builder
	)

	for i := 0; i < len(row); i++ {
		switch {
		case row[i] == '\\' && i+1 < len(row) && row[i+1] == '|':
			cell.WriteString(`\|`)
			i++
		case row[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(row[i])
		}
	}

	return append(cells, strings.TrimSpace(cell.String()))
}

func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}

	return true
}

func processTable(rows []string) []string {
	// A table needs at least a header and a separator.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = splitRow(row)
	}

	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	separatorRowIdx := -1
	if isSeparatorRow(table[1]) {
		separatorRowIdx = 1
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	for i := range colWidths {
		colWidths[i] = max(colWidths[i], 3)
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := range colCount {
			sb.WriteString(" ")

			if i == separatorRowIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				content := ""
				if j < len(row) {
					content = row[j]
				}

				sb.WriteString(content)

				if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
					sb.WriteString(strings.Repeat(" ", padding))
				}
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}

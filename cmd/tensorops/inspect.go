package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/born-ml/tensorops/internal/serialization"
)

// renderFile lists the tensors and metadata of a SafeTensors file.
func renderFile(path string, f *serialization.File) string {
	var sb strings.Builder
	names := f.Names()
	var total int64
	for _, name := range names {
		info, _ := f.Info(name)
		total += info.Size
	}
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s: %d tensors, %s", path, len(names), humanize.Bytes(uint64(total)))))
	sb.WriteString("\n")

	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers("Tensor", "DType", "Shape", "Size").
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			switch {
			case row < 0:
				return headerRowStyle
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col == 3 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	for _, name := range names {
		info, _ := f.Info(name)
		t.Row(name, info.DType.String(), info.Shape.String(), humanize.Bytes(uint64(info.Size)))
	}
	sb.WriteString(t.Render())
	sb.WriteString("\n")

	for _, key := range slices.Sorted(maps.Keys(f.Metadata)) {
		fmt.Fprintf(&sb, "%s: %s\n", key, f.Metadata[key])
	}
	return sb.String()
}

package interchange

import (
	"strings"

	"pulpit/internal/catalog"
	"pulpit/internal/dateparse"
)

// exportColumns is the fixed export order. One row per sermon, not per
// occasion.
var exportColumns = []string{"Title", "Date", "Series", "Summary", "Tags", "References", "Type", "Place"}

// Export renders sermons as interchange text. Every field is quoted; tag and
// reference sets join with ';'; dates render YYYY-MM-DD.
func Export(sermons []*catalog.Sermon) string {
	var b strings.Builder
	writeRow(&b, exportColumns)
	for _, sermon := range sermons {
		date := ""
		if !sermon.Date.IsZero() {
			date = dateparse.Format(sermon.Date.Time)
		}
		writeRow(&b, []string{
			sermon.Title,
			date,
			sermon.Series,
			sermon.Summary,
			strings.Join(sermon.Tags, ";"),
			strings.Join(sermon.References, ";"),
			sermon.Type,
			sermon.Place,
		})
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteField(field))
	}
	b.WriteByte('\n')
}

// Package palette maps expense categories to their display colors.
// Pure lookup data: the frontend charts read these, nothing else does.
package palette

// CategoryColors is the category -> hex color mapping used by the
// analytics charts.
var CategoryColors = map[string]string{
	"food":          "#F97316", // Orange
	"transport":     "#0EA5E9", // Blue
	"entertainment": "#9b87f5", // Purple
	"utilities":     "#F2FCE2", // Soft Green
	"housing":       "#FEC6A1", // Soft Orange
	"shopping":      "#D946EF", // Magenta Pink
	"health":        "#FFDEE2", // Soft Pink
	"education":     "#D3E4FD", // Soft Blue
	"other":         "#7E69AB", // Secondary Purple
}

// Color returns the display color for a category, falling back to the
// "other" color for anything unknown.
func Color(category string) string {
	if c, ok := CategoryColors[category]; ok {
		return c
	}
	return CategoryColors["other"]
}

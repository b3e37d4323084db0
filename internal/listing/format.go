package listing

// DescriptionWidth is the number of characters per printed description line.
const DescriptionWidth = 80

// FormatDescription splits text into DescriptionWidth-character lines. Words
// may be cut mid-token; joining the lines yields text unchanged.
func FormatDescription(text string) []string {
	return FormatDescriptionWidth(text, DescriptionWidth)
}

// FormatDescriptionWidth is FormatDescription with a custom width. Width is
// counted in runes; a non-positive width means DescriptionWidth.
func FormatDescriptionWidth(text string, width int) []string {
	if width <= 0 {
		width = DescriptionWidth
	}
	if text == "" {
		return nil
	}
	lines := make([]string, 0, len(text)/width+1)
	start, n := 0, 0
	for i := range text {
		if n == width {
			lines = append(lines, text[start:i])
			start, n = i, 0
		}
		n++
	}
	return append(lines, text[start:])
}

package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Success: "#E4E4E4",
		Warning: "#BCBCBC",
		Danger:  "#FFFFFF",

		Border: "#808080",

		Title:  "#FFFFFF",
		Subtle: "#6C6C6C",
		Normal: "#D0D0D0",
	}
}

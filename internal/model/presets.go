package model

// Preset is a one-click document size.
type Preset struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var Presets = []Preset{
	{Slug: "pan-card", Title: "PAN Card", Width: 213, Height: 337},
	{Slug: "aadhar-card", Title: "Aadhar Card", Width: 300, Height: 400},
	{Slug: "passport-photo", Title: "Passport Photo", Width: 600, Height: 600},
	{Slug: "landscape", Title: "Landscape", Width: 800, Height: 600},
}

// FindPreset looks a preset up by slug.
func FindPreset(slug string) (Preset, bool) {
	for _, p := range Presets {
		if p.Slug == slug {
			return p, true
		}
	}
	return Preset{}, false
}

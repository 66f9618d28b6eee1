package pipeline

import (
	"strings"

	"golang.org/x/text/language"
)

// ComplexityLevel selects the audience preset for the research directive.
type ComplexityLevel string

const (
	LevelElementary ComplexityLevel = "Elementary"
	LevelHighSchool ComplexityLevel = "High School"
	LevelCollege    ComplexityLevel = "College"
	LevelExpert     ComplexityLevel = "Expert"
)

// VisualStyle selects the aesthetic preset for the research directive.
type VisualStyle string

const (
	StyleDefault    VisualStyle = "Default"
	StyleMinimalist VisualStyle = "Minimalist"
	StyleRealistic  VisualStyle = "Realistic"
	StyleCartoon    VisualStyle = "Cartoon"
	StyleVintage    VisualStyle = "Vintage"
	StyleFuturistic VisualStyle = "Futuristic"
	Style3DRender   VisualStyle = "3D Render"
	StyleSketch     VisualStyle = "Sketch"
)

// Language is the output language for facts and the image prompt.
type Language string

const (
	LangEnglish    Language = "English"
	LangSpanish    Language = "Spanish"
	LangFrench     Language = "French"
	LangGerman     Language = "German"
	LangMandarin   Language = "Mandarin"
	LangJapanese   Language = "Japanese"
	LangHindi      Language = "Hindi"
	LangArabic     Language = "Arabic"
	LangPortuguese Language = "Portuguese"
	LangRussian    Language = "Russian"
)

var supportedLanguages = []Language{
	LangEnglish, LangSpanish, LangFrench, LangGerman, LangMandarin,
	LangJapanese, LangHindi, LangArabic, LangPortuguese, LangRussian,
}

var languageTags = []language.Tag{
	language.English, language.Spanish, language.French, language.German,
	language.Chinese, language.Japanese, language.Hindi, language.Arabic,
	language.Portuguese, language.Russian,
}

var languageMatcher = language.NewMatcher(languageTags)

// NormalizeLanguage maps a raw request value onto a supported language. It
// accepts the display names used by the client as well as BCP 47 tags
// ("en", "pt-BR", ...). Anything unrecognized falls back to English.
func NormalizeLanguage(raw string) Language {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return LangEnglish
	}
	for _, lang := range supportedLanguages {
		if strings.EqualFold(raw, string(lang)) {
			return lang
		}
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return LangEnglish
	}
	_, index, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return LangEnglish
	}
	return supportedLanguages[index]
}

// SearchResult is one grounding citation surfaced to the client.
type SearchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ResearchResult is the typed outcome of a research call.
type ResearchResult struct {
	ImagePrompt   string         `json:"imagePrompt"`
	Facts         []string       `json:"facts"`
	SearchResults []SearchResult `json:"searchResults"`
}

// ResearchRequest carries the pure input values of a research call.
type ResearchRequest struct {
	Topic    string
	Level    ComplexityLevel
	Style    VisualStyle
	Language Language
}

// LevelDirective returns the audience/style directive for a complexity level.
// Unknown levels get the general-public preset.
func LevelDirective(level ComplexityLevel) string {
	switch level {
	case LevelElementary:
		return "Target Audience: Elementary School (Ages 6-10). Style: Bright, simple, fun. Use large clear icons and very minimal text labels."
	case LevelHighSchool:
		return "Target Audience: High School. Style: Standard Textbook. Clean lines, clear labels, accurate maps or diagrams. Avoid cartoony elements."
	case LevelCollege:
		return "Target Audience: University. Style: Academic Journal. High detail, data-rich, precise cross-sections or complex schematics."
	case LevelExpert:
		return "Target Audience: Industry Expert. Style: Technical Blueprint/Schematic. Extremely dense detail, monochrome or technical coloring, precise annotations."
	default:
		return "Target Audience: General Public. Style: Clear and engaging."
	}
}

// StyleDirective returns the aesthetic directive for a visual style. Unknown
// styles get the default illustration preset.
func StyleDirective(style VisualStyle) string {
	switch style {
	case StyleMinimalist:
		return "Aesthetic: Bauhaus Minimalist. Flat vector art, limited color palette (2-3 colors), reliance on negative space and simple geometric shapes."
	case StyleRealistic:
		return "Aesthetic: Photorealistic Composite. Cinematic lighting, 8k resolution, highly detailed textures. Looks like a photograph."
	case StyleCartoon:
		return "Aesthetic: Educational Comic. Vibrant colors, thick outlines, expressive cel-shaded style."
	case StyleVintage:
		return "Aesthetic: 19th Century Scientific Lithograph. Engraving style, sepia tones, textured paper background, fine hatch lines."
	case StyleFuturistic:
		return "Aesthetic: Cyberpunk HUD. Glowing neon blue/cyan lines on dark background, holographic data visualization, 3D wireframes."
	case Style3DRender:
		return "Aesthetic: 3D Isometric Render. Claymorphism or high-gloss plastic texture, studio lighting, soft shadows, looks like a physical model."
	case StyleSketch:
		return "Aesthetic: Da Vinci Notebook. Ink on parchment sketch, handwritten annotations style, rough but accurate lines."
	default:
		return "Aesthetic: High-quality digital scientific illustration. Clean, modern, highly detailed."
	}
}

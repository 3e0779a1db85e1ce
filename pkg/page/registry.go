package page

// Named theme presets. Loaded once at startup and never mutated;
// callers look up by name and get the default back on unknown keys.
// Values carried over from the original campaign site.
var themes = map[string]Theme{
	"royal":        {Primary: "#FF6B00", Secondary: "#001124", Background: "#F8FAFC", FontFamily: FontSerif, CornerStyle: CornerRounded},
	"classic_navy": {Primary: "#FF6B00", Secondary: "#003366", Background: "#FFFFFF", FontFamily: FontSans, CornerStyle: CornerSmall},
	"ocean":        {Primary: "#0EA5E9", Secondary: "#0F172A", Background: "#F0F9FF", FontFamily: FontSans, CornerStyle: CornerSmall},
	"forest":       {Primary: "#22C55E", Secondary: "#064E3B", Background: "#F0FDF4", FontFamily: FontSans, CornerStyle: CornerRounded},
	"crimson":      {Primary: "#E11D48", Secondary: "#18181B", Background: "#FFF1F2", FontFamily: FontMono, CornerStyle: CornerNone},
	"luxury":       {Primary: "#D4AF37", Secondary: "#000000", Background: "#1A1A1A", FontFamily: FontSerif, CornerStyle: CornerSmall},
}

// DefaultThemeName is the preset applied to new pages and returned for
// unknown lookups.
const DefaultThemeName = "royal"

// ThemeByName returns a named preset, or the default preset when the
// name is unknown. Never fails: a stale theme name in a stored document
// must not take the page down.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultThemeName]
}

// ThemeNames returns the preset names in a stable order for the builder
// palette.
func ThemeNames() []string {
	return []string{"royal", "classic_navy", "ocean", "forest", "crimson", "luxury"}
}

// effectClasses maps each visual effect to the CSS animation class the
// client stylesheet defines. Unknown effects map to no class.
var effectClasses = map[Effect]string{
	EffectPulse:  "fx-pulse",
	EffectBounce: "fx-bounce",
	EffectGlow:   "fx-glow",
	EffectShake:  "fx-shake",
}

// EffectClass returns the CSS class for an effect, or "" for none or an
// unknown effect.
func EffectClass(e Effect) string {
	return effectClasses[e]
}

// Effects lists the selectable effects in builder order.
var Effects = []Effect{EffectNone, EffectPulse, EffectBounce, EffectGlow, EffectShake}

// SizeTiers lists the selectable font size tiers in builder order.
var SizeTiers = []SizeTier{SizeSmall, SizeDefault, SizeLarge, SizeXLarge}

// sizeClasses maps font size tiers to CSS classes. The default tier
// renders without a class.
var sizeClasses = map[SizeTier]string{
	SizeSmall:  "size-small",
	SizeLarge:  "size-large",
	SizeXLarge: "size-xlarge",
}

// SizeClass returns the CSS class for a size tier, or "" for the
// default or an unknown tier.
func SizeClass(t SizeTier) string {
	return sizeClasses[t]
}

// fontClasses maps font families to CSS classes.
var fontClasses = map[FontFamily]string{
	FontSerif: "font-serif",
	FontSans:  "font-sans",
	FontMono:  "font-mono",
}

// FontClass returns the CSS class for a font family, defaulting to
// sans for unknown values.
func FontClass(f FontFamily) string {
	if c, ok := fontClasses[f]; ok {
		return c
	}
	return fontClasses[FontSans]
}

// cornerClasses maps corner styles to CSS classes.
var cornerClasses = map[CornerStyle]string{
	CornerNone:    "corner-none",
	CornerSmall:   "corner-small",
	CornerRounded: "corner-rounded",
	CornerPill:    "corner-pill",
}

// CornerClass returns the CSS class for a corner style, defaulting to
// rounded for unknown values.
func CornerClass(c CornerStyle) string {
	if cls, ok := cornerClasses[c]; ok {
		return cls
	}
	return cornerClasses[CornerRounded]
}

package page

// Mutation operations. Each takes a document by value and returns a new
// document with exactly one change applied; the input is never touched.
// Persisting the result is the caller's job.

// Direction moves a section within the list.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// AddSection appends a fresh section of the given type, built from its
// template with a new unique id.
func AddSection(d Document, t SectionType) Document {
	out := d.Clone()
	out.Sections = append(out.Sections, NewSection(t))
	return out
}

// DeleteSection removes the section with the given id. Removing an id
// that is not present returns the document unchanged, so a repeated
// delete is a no-op.
func DeleteSection(d Document, id string) Document {
	out := d.Clone()
	for i, s := range out.Sections {
		if s.ID == id {
			out.Sections = append(out.Sections[:i], out.Sections[i+1:]...)
			break
		}
	}
	return out
}

// MoveSection swaps the section with its immediate neighbor in the
// given direction. The first section cannot move up and the last cannot
// move down; both cases return the document unchanged.
func MoveSection(d Document, id string, dir Direction) Document {
	out := d.Clone()
	for i, s := range out.Sections {
		if s.ID != id {
			continue
		}
		j := i
		switch dir {
		case MoveUp:
			j = i - 1
		case MoveDown:
			j = i + 1
		}
		if j < 0 || j >= len(out.Sections) || j == i {
			break
		}
		out.Sections[i], out.Sections[j] = out.Sections[j], out.Sections[i]
		break
	}
	return out
}

// UpdateSectionField replaces one top-level section field (background
// color, visual effect, font size tier), leaving siblings untouched.
// Unknown fields and unknown section ids are no-ops.
func UpdateSectionField(d Document, id, field, value string) Document {
	out := d.Clone()
	s := out.Section(id)
	if s == nil {
		return out
	}
	switch field {
	case "backgroundColor":
		s.BackgroundColor = value
	case "visualEffect":
		s.VisualEffect = Effect(value)
	case "fontSizeTier":
		s.FontSizeTier = SizeTier(value)
	}
	return out
}

// UpdateSectionContent replaces exactly one key in a section's content
// map.
func UpdateSectionContent(d Document, id, field string, value any) Document {
	out := d.Clone()
	s := out.Section(id)
	if s == nil {
		return out
	}
	if s.Content == nil {
		s.Content = Content{}
	}
	s.Content[field] = value
	return out
}

// UpdateEffectConfig replaces one key of a section's effect config.
func UpdateEffectConfig(d Document, id, field, value string) Document {
	out := d.Clone()
	s := out.Section(id)
	if s == nil {
		return out
	}
	switch field {
	case "glowColor":
		s.EffectConfig.GlowColor = value
	case "glowIntensity":
		s.EffectConfig.GlowIntensity = value
	}
	return out
}

// SetTheme substitutes the page theme wholesale.
func SetTheme(d Document, t Theme) Document {
	out := d.Clone()
	out.Theme = t
	return out
}

// UpdateSEO replaces one SEO field.
func UpdateSEO(d Document, field, value string) Document {
	out := d.Clone()
	switch field {
	case "title":
		out.SEO.Title = value
	case "description":
		out.SEO.Description = value
	case "keywords":
		out.SEO.Keywords = value
	}
	return out
}

// UpdateThankYou replaces one thank-you field. showSocials accepts
// "true"/"false".
func UpdateThankYou(d Document, field, value string) Document {
	out := d.Clone()
	switch field {
	case "title":
		out.ThankYou.Title = value
	case "message":
		out.ThankYou.Message = value
	case "showSocials":
		out.ThankYou.ShowSocials = value == "true"
	case "whatsappLink":
		out.ThankYou.WhatsappLink = value
	case "telegramLink":
		out.ThankYou.TelegramLink = value
	case "instagramLink":
		out.ThankYou.InstagramLink = value
	case "facebookLink":
		out.ThankYou.FacebookLink = value
	case "customLink":
		out.ThankYou.CustomLink = value
	case "customLinkText":
		out.ThankYou.CustomLinkText = value
	}
	return out
}

// SetStatus sets the publication status.
func SetStatus(d Document, s Status) Document {
	out := d.Clone()
	out.Status = s
	return out
}

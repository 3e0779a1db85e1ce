package page

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// sectionSeq disambiguates ids minted within the same nanosecond.
// Rapid repeated add-section clicks must never collide.
var sectionSeq atomic.Uint64

// NewSectionID mints a unique, stable section id of the form
// "<type>_<unix-nanos>_<seq>".
func NewSectionID(t SectionType) string {
	return fmt.Sprintf("%s_%d_%d", t, time.Now().UnixNano(), sectionSeq.Add(1))
}

// sectionTemplates holds the starter content for each block type. Every
// template fills the fields its renderer treats as primary, so a fresh
// section always renders something sensible.
var sectionTemplates = map[SectionType]Content{
	TypeHero: {
		"tag":         "NEW",
		"headline":    "Your Headline Here",
		"subheadline": "Write a compelling subtitle.",
		"ctaText":     "Get Started",
	},
	TypeSmartText: {
		"title":      "Section Title",
		"paragraphs": []string{"Write [highlighted|#FF6B00] smart text here."},
	},
	TypeContent: {
		"title":         "Content Title",
		"body":          "Describe your offer in detail.",
		"imagePosition": "right",
	},
	TypeFeatures: {
		"title":         "Why Choose Us",
		"subtitle":      "Three reasons that matter.",
		"feature1Title": "Feature One",
		"feature1Text":  "Explain the first benefit.",
		"feature2Title": "Feature Two",
		"feature2Text":  "Explain the second benefit.",
		"feature3Title": "Feature Three",
		"feature3Text":  "Explain the third benefit.",
	},
	TypeBio: {
		"name": "Your Name",
		"role": "Founder",
		"bio":  "Tell visitors who you are.",
	},
	TypeForm: {
		"title":    "Secure Your Seat",
		"subtitle": "Register now to unlock the material.",
		"btnText":  "Register",
	},
}

// NewSection builds a fresh section of the given type from its
// template, with a newly minted id. Unknown types get an empty content
// map rather than failing; the generic editor still handles them.
func NewSection(t SectionType) Section {
	content, ok := sectionTemplates[t]
	if !ok {
		content = Content{}
	}
	return Section{
		ID:           NewSectionID(t),
		Type:         t,
		VisualEffect: EffectNone,
		FontSizeTier: SizeDefault,
		Content:      content.Clone(),
	}
}

// NewDocument builds the template a dashboard-created page starts from:
// draft status, the default theme, and a single hero section.
func NewDocument(slug string) Document {
	return Document{
		ID:        slug,
		Status:    StatusDraft,
		CreatedAt: time.Now().UTC(),
		Theme:     ThemeByName(DefaultThemeName),
		SEO:       SEO{Title: "New Campaign"},
		ThankYou:  ThankYou{Title: "Success!", Message: "We will contact you soon.", ShowSocials: true},
		Sections:  []Section{NewSection(TypeHero)},
	}
}

// CloneDocument copies an existing page under a new slug. The clone
// starts unpublished with a fresh creation time; section ids are kept,
// they only need to be unique within one document.
func CloneDocument(src Document, newSlug string) Document {
	out := src.Clone()
	out.ID = newSlug
	out.Status = StatusDraft
	out.CreatedAt = time.Now().UTC()
	out.Revision = 0
	return out
}

// DefaultSlug is the seed campaign bootstrapped on first visit when no
// document for it exists yet. Any other missing slug is a not-found.
const DefaultSlug = "mpsc-webinar"

// SeedDocument returns the default campaign content for DefaultSlug,
// carried over from the original site.
func SeedDocument() Document {
	return Document{
		ID:        DefaultSlug,
		Status:    StatusPublished,
		CreatedAt: time.Now().UTC(),
		Theme:     ThemeByName("classic_navy"),
		SEO: SEO{
			Title:       "Conquer MPSC Descriptive Pattern | Dnyanjyoti Education",
			Description: "Exclusive webinar by Dr. Vishal Bhedurkar.",
			Keywords:    "MPSC, Descriptive Pattern, Pune",
		},
		ThankYou: ThankYou{
			Title:        "Registration Successful!",
			Message:      "Join the Inner Circle to get your Free Material.",
			ShowSocials:  true,
			WhatsappLink: "https://whatsapp.com",
			TelegramLink: "https://t.me",
		},
		Sections: []Section{
			{
				ID:   "hero_imported",
				Type: TypeHero,
				Content: Content{
					"tag":          "EXCLUSIVE WEBINAR",
					"headline":     "Conquer the Fear of the New Descriptive Pattern",
					"subheadline":  "Learn the exact answer-writing strategy used by 350+ Officers.",
					"ctaText":      "Register Now",
					"ctaSecondary": "Get Free Study Material",
				},
			},
			{
				ID:   "form_imported",
				Type: TypeForm,
				Content: Content{
					"title":    "Secure Your Seat",
					"subtitle": "Register now to unlock free material.",
					"btnText":  "Register & Unlock PDF",
				},
			},
		},
	}
}

// Slugify normalizes raw user input into a URL-safe slug: lower case,
// with every run of characters outside [a-z0-9-] collapsed to a single
// dash.
func Slugify(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	lastDash := true
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

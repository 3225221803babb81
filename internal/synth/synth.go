package synth

import (
	"fmt"
	"strings"

	"sitegen_server/internal/extract"
	"sitegen_server/internal/types"
)

const (
	DefaultName        = "Your Business"
	DefaultMaxFeatures = 3
)

// Input is everything the synthesizer needs. It is usually built from an
// extract.Extraction.
type Input struct {
	Name          string
	BusinessType  extract.BusinessType
	WantsAbout    bool
	WantsContact  bool
	WantsServices bool
	MaxFeatures   int
}

// FromExtraction builds an Input from extraction results.
func FromExtraction(ex extract.Extraction, maxFeatures int) Input {
	return Input{
		Name:          ex.Name,
		BusinessType:  ex.BusinessType,
		WantsAbout:    ex.WantsAbout,
		WantsContact:  ex.WantsContact,
		WantsServices: ex.WantsServices,
		MaxFeatures:   maxFeatures,
	}
}

// Synthesize builds a site configuration from the business type's content
// bundle. The output depends only on in; there is no randomness.
func Synthesize(in Input) *types.SiteConfiguration {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultName
	}
	b := bundleFor(in.BusinessType)

	features := b.Features[:clampFeatures(in.MaxFeatures, len(b.Features))]
	home := &types.HomePage{
		Hero: &types.Hero{
			Title:    fmt.Sprintf(b.HeroTitle, name),
			Subtitle: b.HeroSubtitle,
			CTA:      homeCTA(b, in),
		},
		Features: append([]types.Feature{}, features...),
	}

	cfg := &types.SiteConfiguration{
		Name:        name,
		Description: fmt.Sprintf(b.Description, name),
		Pages:       types.PageSet{Home: home},
	}

	if in.WantsAbout {
		cfg.Pages.About = &types.AboutPage{
			Hero: &types.Hero{
				Title:    "About " + name,
				Subtitle: b.HeroSubtitle,
			},
			Blurb: fmt.Sprintf(b.AboutBlurb, name),
		}
	}
	if in.WantsContact {
		cfg.Pages.Contact = &types.ContactPage{
			Hero: &types.Hero{
				Title:    "Contact " + name,
				Subtitle: "We usually reply within one business day.",
			},
			EmailPlaceholder: fmt.Sprintf(b.ContactLine, name),
		}
	}
	if in.WantsServices {
		services := make([]types.Service, 0, len(b.Features))
		for _, f := range b.Features {
			services = append(services, types.Service{Title: f.Title, Description: f.Description})
		}
		cfg.Pages.Services = &types.ServicesPage{
			Hero: &types.Hero{
				Title:    "Our Services",
				Subtitle: fmt.Sprintf("What %s can do for you.", name),
			},
			Services: services,
		}
	}
	return cfg
}

func homeCTA(b bundle, in Input) *types.CTA {
	cta := &types.CTA{Primary: &types.Link{Text: b.CTAText, Href: "#features"}}
	if in.WantsContact {
		cta.Primary.Href = "/contact"
	}
	if in.WantsAbout {
		cta.Secondary = &types.Link{Text: "Learn more", Href: "/about"}
	}
	return cta
}

// clampFeatures returns how many of the n candidates to keep.
func clampFeatures(limit, n int) int {
	if limit <= 0 {
		limit = DefaultMaxFeatures
	}
	if limit > types.MaxFeatures {
		limit = types.MaxFeatures
	}
	if limit > n {
		return n
	}
	return limit
}

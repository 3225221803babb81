package types

// Field bounds shared by the validator and the sanitizer. Lengths are counted
// in characters (runes).
const (
	MaxNameLength             = 100
	MaxDescriptionLength      = 200
	MaxHeroTitleLength        = 60
	MaxHeroSubtitleLength     = 300
	MaxCTATextLength          = 50
	MaxFeatureTitleLength     = 50
	MaxFeatureDescLength      = 120
	MaxIconLength             = 10
	MaxBlurbLength            = 500
	MaxTeamNameLength         = 100
	MaxTeamRoleLength         = 100
	MaxBioLength              = 200
	MaxEmailPlaceholderLength = 100
	MaxAddressLength          = 200
	MaxPhoneLength            = 30
	MaxServiceTitleLength     = 50
	MaxServiceDescLength      = 200
	MaxServiceFeatureLength   = 100
	MaxAltLength              = 200

	MinFeatures = 1
	MaxFeatures = 6
)

// SiteConfiguration is the root object describing a generated site.
type SiteConfiguration struct {
	Name        string  `json:"name" yaml:"name" validate:"required,max=100"`
	Description string  `json:"description" yaml:"description" validate:"required,max=200"`
	Pages       PageSet `json:"pages" yaml:"pages"`
	Images      []Image `json:"images,omitempty" yaml:"images,omitempty" validate:"omitempty,dive"`
}

// PageSet holds the site's pages. Home is mandatory, the rest are optional and
// are omitted entirely when not requested.
type PageSet struct {
	Home     *HomePage     `json:"home" yaml:"home" validate:"required"`
	About    *AboutPage    `json:"about,omitempty" yaml:"about,omitempty"`
	Contact  *ContactPage  `json:"contact,omitempty" yaml:"contact,omitempty"`
	Services *ServicesPage `json:"services,omitempty" yaml:"services,omitempty"`
}

// Keys returns the keys of the pages that are present.
func (p PageSet) Keys() []string {
	var keys []string
	if p.Home != nil {
		keys = append(keys, PageHome)
	}
	if p.About != nil {
		keys = append(keys, PageAbout)
	}
	if p.Contact != nil {
		keys = append(keys, PageContact)
	}
	if p.Services != nil {
		keys = append(keys, PageServices)
	}
	return keys
}

// Page returns the page stored under key, or nil.
func (p PageSet) Page(key string) any {
	switch key {
	case PageHome:
		if p.Home != nil {
			return p.Home
		}
	case PageAbout:
		if p.About != nil {
			return p.About
		}
	case PageContact:
		if p.Contact != nil {
			return p.Contact
		}
	case PageServices:
		if p.Services != nil {
			return p.Services
		}
	}
	return nil
}

type HomePage struct {
	Hero     *Hero     `json:"hero" yaml:"hero" validate:"required"`
	Features []Feature `json:"features" yaml:"features" validate:"required,min=1,max=6,dive"`
}

type Hero struct {
	Title    string `json:"title" yaml:"title" validate:"required,max=60"`
	Subtitle string `json:"subtitle" yaml:"subtitle" validate:"required,max=300"`
	CTA      *CTA   `json:"cta,omitempty" yaml:"cta,omitempty"`
}

type CTA struct {
	Primary   *Link `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary *Link `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// Link is a call-to-action button.
type Link struct {
	Text string `json:"text" yaml:"text" validate:"required,max=50"`
	Href string `json:"href" yaml:"href" validate:"required"`
}

type Feature struct {
	Title       string `json:"title" yaml:"title" validate:"required,max=50"`
	Description string `json:"description" yaml:"description" validate:"required,max=120"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty" validate:"max=10"`
}

type AboutPage struct {
	Hero  *Hero        `json:"hero,omitempty" yaml:"hero,omitempty"`
	Blurb string       `json:"blurb,omitempty" yaml:"blurb,omitempty" validate:"omitempty,max=500"`
	Team  []TeamMember `json:"team,omitempty" yaml:"team,omitempty" validate:"omitempty,dive"`
}

type TeamMember struct {
	Name string `json:"name" yaml:"name" validate:"required,max=100"`
	Role string `json:"role" yaml:"role" validate:"required,max=100"`
	Bio  string `json:"bio,omitempty" yaml:"bio,omitempty" validate:"omitempty,max=200"`
}

type ContactPage struct {
	Hero             *Hero  `json:"hero,omitempty" yaml:"hero,omitempty"`
	EmailPlaceholder string `json:"emailPlaceholder,omitempty" yaml:"emailPlaceholder,omitempty" validate:"omitempty,max=100"`
	Address          string `json:"address,omitempty" yaml:"address,omitempty" validate:"omitempty,max=200"`
	Phone            string `json:"phone,omitempty" yaml:"phone,omitempty" validate:"omitempty,max=30,phone"`
}

type ServicesPage struct {
	Hero     *Hero     `json:"hero,omitempty" yaml:"hero,omitempty"`
	Services []Service `json:"services,omitempty" yaml:"services,omitempty" validate:"omitempty,dive"`
}

type Service struct {
	Title       string   `json:"title" yaml:"title" validate:"required,max=50"`
	Description string   `json:"description" yaml:"description" validate:"required,max=200"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty" validate:"omitempty,dive,max=100"`
}

type Image struct {
	URL string `json:"url" yaml:"url" validate:"required,url"`
	Alt string `json:"alt" yaml:"alt" validate:"required,max=200"`
}

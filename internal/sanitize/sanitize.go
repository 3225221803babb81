// Package sanitize cleans a site configuration before it is validated,
// rendered or stored. It never mutates its input.
package sanitize

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"
)

// DefaultMaxURLLength caps hrefs and image URLs.
const DefaultMaxURLLength = 2048

const excerptLength = 30

// Options controls link handling.
type Options struct {
	AllowExternalLinks bool     `json:"allowExternalLinks"`
	AllowedDomains     []string `json:"allowedDomains,omitempty"`
	MaxURLLength       int      `json:"maxUrlLength,omitempty"`
}

// DefaultOptions allows external links and uses DefaultMaxURLLength.
func DefaultOptions() Options {
	return Options{AllowExternalLinks: true, MaxURLLength: DefaultMaxURLLength}
}

// Result is the outcome of a sanitization pass.
type Result struct {
	Sanitized *types.SiteConfiguration `json:"sanitized"`
	Warnings  []string                 `json:"warnings,omitempty"`
	Changed   bool                     `json:"changed"`
}

var (
	reTagPair   = regexp.MustCompile(`(?is)<(?:script|iframe|embed|object)\b[^>]*>.*?</(?:script|iframe|embed|object)\s*>`)
	reStrayTag  = regexp.MustCompile(`(?i)</?(?:script|iframe|embed|object)\b[^>]*>`)
	reHandler   = regexp.MustCompile(`(?i)\bon[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	reScriptURI = regexp.MustCompile(`(?i)(?:javascript|vbscript)\s*:`)
	reDataURI   = regexp.MustCompile(`(?i)\bdata:(?:([a-z0-9.+-]+/[a-z0-9.+-]+)[^\s"'<>]*|,[^\s"'<>]*)`)

	reScheme = regexp.MustCompile(`^([a-z][a-z0-9+.\-]*):`)
)

// Sanitize returns a cleaned deep copy of cfg. A nil cfg yields an empty
// configuration with a home page and hero so callers can fill it in.
func Sanitize(cfg *types.SiteConfiguration, opts Options) Result {
	if opts.MaxURLLength <= 0 {
		opts.MaxURLLength = DefaultMaxURLLength
	}
	if cfg == nil {
		return Result{Sanitized: &types.SiteConfiguration{
			Pages: types.PageSet{Home: &types.HomePage{Hero: &types.Hero{}}},
		}}
	}

	s := &sanitizer{opts: opts}
	out := cfg.Clone()
	s.config(out)
	if s.changed {
		log.Printf("Info: sanitizer rewrote configuration %q (%d warnings)", utils.Excerpt(out.Name, excerptLength), len(s.warnings))
	}
	return Result{Sanitized: out, Warnings: s.warnings, Changed: s.changed}
}

type sanitizer struct {
	opts     Options
	warnings []string
	changed  bool
}

func (s *sanitizer) warn(field, format string, args ...any) {
	s.warnings = append(s.warnings, field+": "+fmt.Sprintf(format, args...))
}

func (s *sanitizer) config(c *types.SiteConfiguration) {
	s.text("name", &c.Name, types.MaxNameLength)
	s.text("description", &c.Description, types.MaxDescriptionLength)

	p := &c.Pages
	if p.Home != nil {
		s.hero("pages.home.hero", p.Home.Hero)
		if n := len(p.Home.Features); n > types.MaxFeatures {
			p.Home.Features = p.Home.Features[:types.MaxFeatures]
			s.changed = true
			s.warn("pages.home.features", "trimmed from %d to %d items", n, types.MaxFeatures)
		}
		for i := range p.Home.Features {
			f := &p.Home.Features[i]
			base := fmt.Sprintf("pages.home.features[%d]", i)
			s.text(base+".title", &f.Title, types.MaxFeatureTitleLength)
			s.text(base+".description", &f.Description, types.MaxFeatureDescLength)
			s.text(base+".icon", &f.Icon, types.MaxIconLength)
		}
	}
	if p.About != nil {
		s.hero("pages.about.hero", p.About.Hero)
		s.text("pages.about.blurb", &p.About.Blurb, types.MaxBlurbLength)
		for i := range p.About.Team {
			m := &p.About.Team[i]
			base := fmt.Sprintf("pages.about.team[%d]", i)
			s.text(base+".name", &m.Name, types.MaxTeamNameLength)
			s.text(base+".role", &m.Role, types.MaxTeamRoleLength)
			s.text(base+".bio", &m.Bio, types.MaxBioLength)
		}
	}
	if p.Contact != nil {
		s.hero("pages.contact.hero", p.Contact.Hero)
		s.text("pages.contact.emailPlaceholder", &p.Contact.EmailPlaceholder, types.MaxEmailPlaceholderLength)
		s.text("pages.contact.address", &p.Contact.Address, types.MaxAddressLength)
		s.text("pages.contact.phone", &p.Contact.Phone, types.MaxPhoneLength)
	}
	if p.Services != nil {
		s.hero("pages.services.hero", p.Services.Hero)
		for i := range p.Services.Services {
			svc := &p.Services.Services[i]
			base := fmt.Sprintf("pages.services.services[%d]", i)
			s.text(base+".title", &svc.Title, types.MaxServiceTitleLength)
			s.text(base+".description", &svc.Description, types.MaxServiceDescLength)
			for j := range svc.Features {
				s.text(fmt.Sprintf("%s.features[%d]", base, j), &svc.Features[j], types.MaxServiceFeatureLength)
			}
		}
	}

	for i := range c.Images {
		img := &c.Images[i]
		base := fmt.Sprintf("images[%d]", i)
		s.url(base+".url", &img.URL, false)
		s.text(base+".alt", &img.Alt, types.MaxAltLength)
	}
}

func (s *sanitizer) hero(field string, h *types.Hero) {
	if h == nil {
		return
	}
	s.text(field+".title", &h.Title, types.MaxHeroTitleLength)
	s.text(field+".subtitle", &h.Subtitle, types.MaxHeroSubtitleLength)
	if h.CTA == nil {
		return
	}
	s.link(field+".cta.primary", h.CTA.Primary)
	s.link(field+".cta.secondary", h.CTA.Secondary)
}

func (s *sanitizer) link(field string, l *types.Link) {
	if l == nil {
		return
	}
	s.text(field+".text", &l.Text, types.MaxCTATextLength)
	s.url(field+".href", &l.Href, true)
}

// text strips markup and script vectors, normalizes whitespace and enforces
// the field's length limit.
func (s *sanitizer) text(field string, v *string, limit int) {
	orig := *v
	cur := orig
	spaced := false
	for {
		stripped := s.strip(field, cur)
		next := strings.Join(strings.Fields(stripped), " ")
		if next != stripped {
			spaced = true
		}
		if next == cur {
			break
		}
		cur = next
	}
	if spaced {
		s.warn(field, "normalized whitespace")
	}
	if n := utf8.RuneCountInString(cur); n > limit {
		cur = strings.TrimSpace(utils.Truncate(cur, limit))
		s.warn(field, "truncated from %d to %d characters", n, utf8.RuneCountInString(cur))
	}
	if cur != orig {
		s.changed = true
		*v = cur
	}
}

// strip runs one removal pass over every unsafe pattern.
func (s *sanitizer) strip(field, v string) string {
	remove := func(re *regexp.Regexp, in string) string {
		return re.ReplaceAllStringFunc(in, func(m string) string {
			s.warn(field, "removed unsafe content %q", utils.Excerpt(m, excerptLength))
			return ""
		})
	}
	v = remove(reTagPair, v)
	v = remove(reStrayTag, v)
	v = remove(reHandler, v)
	v = remove(reScriptURI, v)
	return reDataURI.ReplaceAllStringFunc(v, func(m string) string {
		if sub := reDataURI.FindStringSubmatch(m); strings.HasPrefix(strings.ToLower(sub[1]), "image/") {
			return m
		}
		s.warn(field, "removed unsafe content %q", utils.Excerpt(m, excerptLength))
		return ""
	})
}

// url rewrites a link target or image source until it is stable under every
// rule. Links are subject to the external-link policy, images are not.
func (s *sanitizer) url(field string, v *string, isLink bool) {
	orig := *v
	cur := strings.TrimSpace(orig)
	for i := 0; i < 4; i++ {
		next := s.urlStep(field, cur, isLink)
		if next == cur {
			break
		}
		cur = next
	}
	if cur != orig {
		s.changed = true
		*v = cur
	}
}

func (s *sanitizer) urlStep(field, v string, isLink bool) string {
	if v == "" {
		return v
	}
	compact := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, v))
	// Browsers read "\" as "/" in web URLs, so "/\host" is protocol-relative.
	compact = strings.ReplaceAll(compact, `\`, "/")

	switch {
	case strings.HasPrefix(compact, "//"):
		v = s.external(field, v, "https:"+strings.ReplaceAll(v, `\`, "/"), isLink)
	case reScheme.MatchString(compact):
		scheme := reScheme.FindStringSubmatch(compact)[1]
		switch {
		case scheme == "http" || scheme == "https":
			v = s.external(field, v, v, isLink)
		case scheme == "mailto" || scheme == "tel":
		case scheme == "data" && !isLink && strings.HasPrefix(compact, "data:image/"):
		default:
			s.warn(field, "replaced unsafe %q link", scheme)
			return "/"
		}
	case strings.HasPrefix(v, "/"), strings.HasPrefix(v, "#"), strings.HasPrefix(v, "?"):
	default:
		s.warn(field, "made relative path absolute")
		v = "/" + v
	}

	if n := utf8.RuneCountInString(v); n > s.opts.MaxURLLength {
		s.warn(field, "truncated from %d to %d characters", n, s.opts.MaxURLLength)
		v = utils.Truncate(v, s.opts.MaxURLLength)
	}
	return v
}

// external applies the external-link policy to an absolute http(s) URL.
func (s *sanitizer) external(field, v, absolute string, isLink bool) string {
	u, err := url.Parse(absolute)
	if err != nil || u.Hostname() == "" {
		s.warn(field, "replaced malformed URL %q", utils.Excerpt(v, excerptLength))
		return "/"
	}
	if !isLink {
		return v
	}
	if !s.opts.AllowExternalLinks {
		s.warn(field, "external links are disabled, replaced %q", u.Hostname())
		return "/"
	}
	if len(s.opts.AllowedDomains) > 0 && !domainAllowed(u.Hostname(), s.opts.AllowedDomains) {
		s.warn(field, "domain %q is not allowed", u.Hostname())
		return "/"
	}
	return v
}

// domainAllowed matches host against the allow-list, subdomains included.
func domainAllowed(host string, allowed []string) bool {
	host = strings.ToLower(host)
	for _, d := range allowed {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "."))
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

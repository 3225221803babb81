package types

// Clone returns a deep copy of the configuration. The copy shares no slices,
// maps or pointers with the receiver.
func (c *SiteConfiguration) Clone() *SiteConfiguration {
	if c == nil {
		return nil
	}
	out := &SiteConfiguration{
		Name:        c.Name,
		Description: c.Description,
		Pages: PageSet{
			Home:     c.Pages.Home.clone(),
			About:    c.Pages.About.clone(),
			Contact:  c.Pages.Contact.clone(),
			Services: c.Pages.Services.clone(),
		},
	}
	if c.Images != nil {
		out.Images = append([]Image{}, c.Images...)
	}
	return out
}

func (h *HomePage) clone() *HomePage {
	if h == nil {
		return nil
	}
	out := &HomePage{Hero: h.Hero.clone()}
	if h.Features != nil {
		out.Features = append([]Feature{}, h.Features...)
	}
	return out
}

func (h *Hero) clone() *Hero {
	if h == nil {
		return nil
	}
	out := *h
	if h.CTA != nil {
		cta := CTA{}
		if h.CTA.Primary != nil {
			p := *h.CTA.Primary
			cta.Primary = &p
		}
		if h.CTA.Secondary != nil {
			s := *h.CTA.Secondary
			cta.Secondary = &s
		}
		out.CTA = &cta
	}
	return &out
}

func (a *AboutPage) clone() *AboutPage {
	if a == nil {
		return nil
	}
	out := &AboutPage{Hero: a.Hero.clone(), Blurb: a.Blurb}
	if a.Team != nil {
		out.Team = append([]TeamMember{}, a.Team...)
	}
	return out
}

func (c *ContactPage) clone() *ContactPage {
	if c == nil {
		return nil
	}
	out := *c
	out.Hero = c.Hero.clone()
	return &out
}

func (s *ServicesPage) clone() *ServicesPage {
	if s == nil {
		return nil
	}
	out := &ServicesPage{Hero: s.Hero.clone()}
	if s.Services != nil {
		out.Services = make([]Service, len(s.Services))
		for i, svc := range s.Services {
			out.Services[i] = svc
			if svc.Features != nil {
				out.Services[i].Features = append([]string{}, svc.Features...)
			}
		}
	}
	return out
}

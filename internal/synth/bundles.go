package synth

import (
	"sitegen_server/internal/extract"
	"sitegen_server/internal/types"
)

// bundle is the fixed content for one business type. Templates take the site
// name through a single %s.
type bundle struct {
	HeroTitle    string
	HeroSubtitle string
	CTAText      string
	Description  string
	AboutBlurb   string
	ContactLine  string
	Features     []types.Feature
}

var bundles = map[extract.BusinessType]bundle{
	extract.TypeDesign: {
		HeroTitle:    "Design by %s",
		HeroSubtitle: "Thoughtful brand, product and web design that helps ideas stand out.",
		CTAText:      "Start a project",
		Description:  "%s is a design studio crafting brands, interfaces and visual stories.",
		AboutBlurb:   "%s is a small team of designers who care about craft, clarity and detail. We partner closely with clients from first sketch to final launch.",
		ContactLine:  "Tell %s about your project",
		Features: []types.Feature{
			{Title: "Brand Identity", Description: "Logos, typography and color systems that make your brand memorable.", Icon: "🎨"},
			{Title: "UI/UX Design", Description: "Interfaces that are intuitive, accessible and a pleasure to use.", Icon: "✏️"},
			{Title: "Web Design", Description: "Responsive websites designed to convert visitors into clients.", Icon: "💻"},
			{Title: "Art Direction", Description: "Consistent visual direction across campaigns and channels.", Icon: "🖼️"},
		},
	},
	extract.TypeConsulting: {
		HeroTitle:    "Grow with %s",
		HeroSubtitle: "Practical strategy and hands-on guidance to help your organization move faster.",
		CTAText:      "Book a call",
		Description:  "%s provides strategy and operations consulting for growing organizations.",
		AboutBlurb:   "%s brings years of experience helping teams solve hard problems. We focus on measurable outcomes, not slide decks.",
		ContactLine:  "Ask %s how we can help",
		Features: []types.Feature{
			{Title: "Strategy", Description: "Clear plans built around your goals, market and constraints.", Icon: "🧭"},
			{Title: "Operations", Description: "Streamlined processes that save time and reduce cost.", Icon: "⚙️"},
			{Title: "Growth", Description: "Data-driven initiatives that unlock sustainable growth.", Icon: "📈"},
			{Title: "Change Management", Description: "Support for teams through transitions and new ways of working.", Icon: "🤝"},
		},
	},
	extract.TypeAgency: {
		HeroTitle:    "Build with %s",
		HeroSubtitle: "Full-service digital agency delivering websites, apps and campaigns that perform.",
		CTAText:      "Get a quote",
		Description:  "%s is a digital agency building modern websites, apps and campaigns.",
		AboutBlurb:   "%s is a team of engineers, designers and strategists shipping digital products for ambitious brands.",
		ContactLine:  "Start a project with %s",
		Features: []types.Feature{
			{Title: "Web Development", Description: "Fast, scalable websites built with modern tools.", Icon: "🚀"},
			{Title: "Mobile Apps", Description: "Native and cross-platform apps your customers will love.", Icon: "📱"},
			{Title: "Digital Marketing", Description: "Campaigns that reach the right audience at the right time.", Icon: "📣"},
			{Title: "Cloud & DevOps", Description: "Reliable infrastructure and automated delivery pipelines.", Icon: "☁️"},
			{Title: "Analytics", Description: "Insight into what works so you can invest with confidence.", Icon: "📊"},
		},
	},
	extract.TypeRestaurant: {
		HeroTitle:    "Taste %s",
		HeroSubtitle: "Fresh ingredients, seasonal menus and a warm welcome every day.",
		CTAText:      "Reserve a table",
		Description:  "%s serves fresh, seasonal food in a welcoming setting.",
		AboutBlurb:   "%s started with a simple idea: honest food made with care. Our kitchen works with local producers to bring the best of each season to your plate.",
		ContactLine:  "Reserve a table at %s",
		Features: []types.Feature{
			{Title: "Seasonal Menu", Description: "Dishes that change with the seasons and local harvests.", Icon: "🍽️"},
			{Title: "Local Ingredients", Description: "Produce sourced from farms and suppliers nearby.", Icon: "🥕"},
			{Title: "Private Events", Description: "A memorable space for celebrations and gatherings.", Icon: "🎉"},
			{Title: "Takeaway", Description: "Your favorite dishes ready to enjoy at home.", Icon: "🥡"},
		},
	},
	extract.TypeLegal: {
		HeroTitle:    "Trust %s",
		HeroSubtitle: "Clear, dependable legal advice for individuals and businesses.",
		CTAText:      "Schedule a consultation",
		Description:  "%s offers trusted legal counsel for individuals and businesses.",
		AboutBlurb:   "%s combines deep legal expertise with a personal approach. We explain your options plainly and stand with you at every step.",
		ContactLine:  "Request a consultation with %s",
		Features: []types.Feature{
			{Title: "Corporate Law", Description: "Formation, contracts and governance for companies of every size.", Icon: "⚖️"},
			{Title: "Litigation", Description: "Experienced representation when disputes reach the courtroom.", Icon: "🏛️"},
			{Title: "Estate Planning", Description: "Wills and trusts that protect the people you care about.", Icon: "📜"},
			{Title: "Employment Law", Description: "Guidance for employers and employees on workplace matters.", Icon: "💼"},
		},
	},
	extract.TypePortfolio: {
		HeroTitle:    "Work by %s",
		HeroSubtitle: "A curated collection of projects, experiments and stories.",
		CTAText:      "Get in touch",
		Description:  "%s is a portfolio showcasing selected projects and creative work.",
		AboutBlurb:   "%s shares selected work from recent years. Each project reflects a focus on quality, curiosity and collaboration.",
		ContactLine:  "Say hello to %s",
		Features: []types.Feature{
			{Title: "Selected Work", Description: "Highlights from recent projects and collaborations.", Icon: "⭐"},
			{Title: "Process", Description: "A look behind the scenes at how each piece comes together.", Icon: "🔍"},
			{Title: "Exhibitions", Description: "Shows, publications and features over the years.", Icon: "🖼️"},
		},
	},
	extract.TypeMedical: {
		HeroTitle:    "Care by %s",
		HeroSubtitle: "Compassionate, modern care for you and your family.",
		CTAText:      "Book an appointment",
		Description:  "%s provides modern, patient-centered medical care.",
		AboutBlurb:   "%s is a team of experienced clinicians dedicated to your wellbeing. We take time to listen and build care around you.",
		ContactLine:  "Book an appointment with %s",
		Features: []types.Feature{
			{Title: "Primary Care", Description: "Routine checkups and preventive care for all ages.", Icon: "🩺"},
			{Title: "Specialists", Description: "Access to experienced specialists when you need them.", Icon: "👩‍⚕️"},
			{Title: "Same-Day Visits", Description: "Prompt appointments for urgent but non-emergency needs.", Icon: "⏱️"},
			{Title: "Telehealth", Description: "Consultations from the comfort of your home.", Icon: "📞"},
		},
	},
	extract.TypeBusiness: {
		HeroTitle:    "Welcome to %s",
		HeroSubtitle: "Quality products and services backed by people who care.",
		CTAText:      "Contact us",
		Description:  "%s delivers quality products and services to customers who expect more.",
		AboutBlurb:   "%s is built on quality, reliability and customer care. We are proud to serve our community.",
		ContactLine:  "Send %s a message",
		Features: []types.Feature{
			{Title: "Quality", Description: "Products and services held to the highest standards.", Icon: "✅"},
			{Title: "Reliability", Description: "Dependable service you can count on every time.", Icon: "🔒"},
			{Title: "Support", Description: "Friendly help whenever you need it.", Icon: "💬"},
			{Title: "Value", Description: "Fair pricing without compromising on quality.", Icon: "💰"},
		},
	},
}

func bundleFor(t extract.BusinessType) bundle {
	if b, ok := bundles[t]; ok {
		return b
	}
	return bundles[extract.TypeBusiness]
}

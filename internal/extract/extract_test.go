package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractName(t *testing.T) {
	testCases := []struct {
		name     string
		prompt   string
		expected string
	}{
		{"for phrase with ampersand", "Create a law firm website for Smith & Associates specializing in corporate law", "Smith & Associates"},
		{"for phrase", "Create a portfolio site for Creative Studio", "Creative Studio"},
		{"quoted wins over for", `Build a site for Acme Labs called "Bean & Leaf"`, "Bean & Leaf"},
		{"curly quotes", "Make a page for “Northwind Traders”", "Northwind Traders"},
		{"called", "A bakery called Sweet Crumbs with an about page", "Sweet Crumbs"},
		{"named with legal suffix", "a consulting firm named Brightpath Inc.", "Brightpath"},
		{"lowercase suffix after phrase", "a website for Acme company", "Acme"},
		{"leading article stripped", "site for The Daily Grind", "Daily Grind"},
		{"studio construct", "we need a site for my Pixel Forge studio", "Pixel Forge"},
		{"agency construct", "build a page: Bluewave agency, modern look", "Bluewave"},
		{"whitespace collapsed", "site named Blue    Harbor", "Blue Harbor"},
		{"no candidate", "make me a nice website", ""},
		{"sentence end closes phrase", "Build an agency website for Digital Innovations. Include an About page", "Digital Innovations"},
		{"abbreviation before next sentence", "Create a site for Acme Corp. We sell shoes", "Acme"},
		{"name then new sentence", "Make a website for Bella Cucina. It is an Italian restaurant", "Bella Cucina"},
		{"inner dots kept", "a site for U.S Robotics", "U.S Robotics"},
		{"too short skipped", `call it "AB" please, site for Orbital Works`, "Orbital Works"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractName(tc.prompt))
		})
	}
}

func TestExtractNameLengthBound(t *testing.T) {
	long := `"` + "Abcdefghij Abcdefghij Abcdefghij Abcdefghij Abcdefghij" + `"`
	assert.Equal(t, "", ExtractName(long))
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		prompt   string
		expected BusinessType
	}{
		{"Build an agency website for Digital Innovations specializing in web development", TypeAgency},
		{"Create a portfolio site for Creative Studio", TypeDesign},
		{"a design agency in Berlin", TypeDesign},
		{"Create a law firm website for Smith & Associates specializing in corporate law", TypeLegal},
		{"a cozy CAFE downtown", TypeRestaurant},
		{"management consulting for startups", TypeConsulting},
		{"my photography portfolio", TypePortfolio},
		{"a family clinic", TypeMedical},
		{"a plumbing business", TypeBusiness},
		{"", TypeBusiness},
	}
	for _, tc := range testCases {
		t.Run(tc.prompt, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.prompt))
		})
	}
}

func TestExtractPageIntent(t *testing.T) {
	ex := Extract("Restaurant site with an About page, CONTACT form and our services")
	assert.True(t, ex.WantsAbout)
	assert.True(t, ex.WantsContact)
	assert.True(t, ex.WantsServices)
	assert.Equal(t, TypeRestaurant, ex.BusinessType)

	ex = Extract("just a landing page")
	assert.False(t, ex.WantsAbout)
	assert.False(t, ex.WantsContact)
	assert.False(t, ex.WantsServices)
	assert.Empty(t, ex.Name)
}

func TestAllTypesOrder(t *testing.T) {
	types := AllTypes()
	require.Len(t, types, 8)
	assert.Equal(t, TypeDesign, types[0])
	assert.Equal(t, TypeBusiness, types[len(types)-1])
	assert.Equal(t, "Restaurant", TypeRestaurant.Label())
	assert.True(t, TypeLegal.Valid())
	assert.False(t, BusinessType("spaceship").Valid())
}

func TestResolveBusinessType(t *testing.T) {
	testCases := []struct {
		input    string
		expected BusinessType
	}{
		{"legal", TypeLegal},
		{" Restaurant ", TypeRestaurant},
		{"bakery", TypeRestaurant},
		{"attorney", TypeLegal},
		{"consult", TypeConsulting},
		{"photog", TypePortfolio},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ResolveBusinessType(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := ResolveBusinessType("")
	assert.Error(t, err)
	_, err = ResolveBusinessType("zzzzqqq")
	assert.Error(t, err)
}

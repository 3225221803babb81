package types

// PageFile describes one file written for a materialized page.
type PageFile struct {
	Key      string `json:"key"`      // page key, e.g. "home", "about"
	Filename string `json:"filename"` // e.g. "index.json", "about.json"
	Type     string `json:"type"`     // e.g. "json"
	Size     int    `json:"size"`
}

// Page keys recognised in a PageSet.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageContact  = "contact"
	PageServices = "services"
)

// PageIdentity returns the output identity for a page key. The home page is
// always published as the index; every other page keeps its key.
func PageIdentity(key string) string {
	if key == PageHome {
		return "index"
	}
	return key
}

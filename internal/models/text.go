package models

// MultilingualText carries the four storefront languages. Any field may be
// empty; display code resolves a value through the i18n package.
type MultilingualText struct {
	NL string `json:"nl"`
	FR string `json:"fr"`
	EN string `json:"en"`
	TR string `json:"tr"`
}

func (t MultilingualText) Get(lang string) string {
	switch lang {
	case "nl":
		return t.NL
	case "fr":
		return t.FR
	case "en":
		return t.EN
	case "tr":
		return t.TR
	}

	return ""
}

func (t MultilingualText) IsEmpty() bool {
	return t.NL == "" && t.FR == "" && t.EN == "" && t.TR == ""
}

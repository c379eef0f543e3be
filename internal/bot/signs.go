package bot

import "strings"

type Sign struct {
	Astro string `json:"astro"`
	Name  string `json:"name"`
}

var zodiac = []Sign{
	{"aries", "白羊座"},
	{"taurus", "金牛座"},
	{"gemini", "双子座"},
	{"cancer", "巨蟹座"},
	{"leo", "狮子座"},
	{"virgo", "处女座"},
	{"libra", "天秤座"},
	{"scorpio", "天蝎座"},
	{"sagittarius", "射手座"},
	{"capricorn", "摩羯座"},
	{"aquarius", "水瓶座"},
	{"pisces", "双鱼座"},
}

// Signs lists the twelve supported signs in calendar order.
func Signs() []Sign {
	out := make([]Sign, len(zodiac))
	copy(out, zodiac)
	return out
}

// NormalizeSign accepts an English identifier (any case) or the Chinese name.
func NormalizeSign(s string) (Sign, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Sign{}, false
	}
	lower := strings.ToLower(s)
	for _, z := range zodiac {
		if z.Astro == lower || z.Name == s {
			return z, true
		}
	}
	return Sign{}, false
}

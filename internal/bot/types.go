package bot

// AlmanacRecord is the structured 老黄历 for one day.
type AlmanacRecord struct {
	Date     AlmanacDate     `json:"date_info"`
	Festival AlmanacFestival `json:"festival_info"`
	Fortune  AlmanacFortune  `json:"fortune_info"`
	Wuxing   AlmanacWuxing   `json:"wuxing_info"`
	Fallback bool            `json:"fallback"`
}

type AlmanacDate struct {
	GregorianDate  string `json:"gregorian_date"`
	LunarDate      string `json:"lunar_date"`
	LunarDay       string `json:"lunar_day"`
	LunarFormatted string `json:"lunar_formatted"`
	LunarMonthName string `json:"lunar_month_name"`
	YearGanzhi     string `json:"year_ganzhi"`
	MonthGanzhi    string `json:"month_ganzhi"`
	DayGanzhi      string `json:"day_ganzhi"`
	ShengXiao      string `json:"shengxiao"`
}

type AlmanacFestival struct {
	LunarFestival string `json:"lunar_festival"`
	Festival      string `json:"festival"`
	JieQi         string `json:"jieqi"`
}

type AlmanacFortune struct {
	Fitness  string `json:"fitness"`
	Taboo    string `json:"taboo"`
	ShenWei  string `json:"shenwei"`
	TaiShen  string `json:"taishen"`
	ChongSha string `json:"chongsha"`
	SuiSha   string `json:"suisha"`
	XingSu   string `json:"xingsu"`
	JianShen string `json:"jianshen"`
	PengZu   string `json:"pengzu"`
}

type AlmanacWuxing struct {
	Jiazi   string `json:"wuxingjiazi"`
	NaYear  string `json:"wuxingnayear"`
	NaMonth string `json:"wuxingnamonth"`
}

// Horoscope is one sign's daily reading. Indices are 0-100.
type Horoscope struct {
	Sign     string           `json:"sign"`
	Astro    string           `json:"astro"`
	Date     string           `json:"date"`
	Summary  string           `json:"summary"`
	Indices  HoroscopeIndices `json:"indices"`
	Lucky    HoroscopeLucky   `json:"lucky_info"`
	Advice   string           `json:"advice"`
	Fallback bool             `json:"fallback"`
}

type HoroscopeIndices struct {
	Comprehensive int `json:"comprehensive"`
	Love          int `json:"love"`
	Work          int `json:"work"`
	Money         int `json:"money"`
	Health        int `json:"health"`
}

type HoroscopeLucky struct {
	Color     string `json:"color"`
	Number    string `json:"number"`
	Time      string `json:"time"`
	NobleSign string `json:"noble_sign"`
}

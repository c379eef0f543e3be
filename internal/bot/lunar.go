package bot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	heavenlyStems   = []string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	earthlyBranches = []string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	lunarMonths     = []string{"", "正月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "冬月", "腊月"}
	zodiacAnimals   = []string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

	digitsRe = regexp.MustCompile(`\d+`)
)

// 1984 is a 甲子 year.
const ganzhiBaseYear = 1984

// GanzhiYear returns the sexagenary name of a year, e.g. 2024 -> 甲辰.
func GanzhiYear(year int) string {
	offset := ((year-ganzhiBaseYear)%60 + 60) % 60
	return heavenlyStems[offset%10] + earthlyBranches[offset%12]
}

// FormatLunarDate turns ("2024-01-15", "初十") into "甲辰年正月初十". Input that
// is not YYYY-MM[-DD] is returned as "<date> <day>".
func FormatLunarDate(lunarDate, lunarDay string) string {
	raw := strings.TrimSpace(lunarDate + " " + lunarDay)
	if !strings.Contains(lunarDate, "-") {
		return raw
	}
	parts := strings.Split(lunarDate, "-")
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return raw
	}
	gz := GanzhiYear(year)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return gz + "年" + lunarDay
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return raw
	}
	name := fmt.Sprintf("%d月", month)
	if month >= 1 && month <= 12 {
		name = lunarMonths[month]
	}
	return gz + "年" + name + lunarDay
}

// SimplifyChongSha rewrites the 冲煞 entry as a plain reminder about the
// clashing zodiac animal. Empty input yields "".
func SimplifyChongSha(chongsha string) string {
	if strings.TrimSpace(chongsha) == "" {
		return ""
	}
	for _, a := range zodiacAnimals {
		if strings.Contains(chongsha, a) {
			return "属" + a + "的朋友今天要低调一些"
		}
	}
	return "今天做事要谨慎一些"
}

// ExtractNumber returns the first run of digits in s, or 0.
func ExtractNumber(s string) int {
	m := digitsRe.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

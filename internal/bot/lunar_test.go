package bot

import (
	"testing"
	"time"
)

func TestGanzhiYear(t *testing.T) {
	cases := map[int]string{1984: "甲子", 2024: "甲辰", 2025: "乙巳", 1983: "癸亥", 1924: "甲子"}
	for year, want := range cases {
		if got := GanzhiYear(year); got != want {
			t.Fatalf("GanzhiYear(%d)=%s want %s", year, got, want)
		}
	}
}

func TestFormatLunarDate(t *testing.T) {
	cases := []struct {
		date, day, want string
	}{
		{"2024-01-15", "初十", "甲辰年正月初十"},
		{"2024-11-03", "初三", "甲辰年冬月初三"},
		{"2024-12-30", "三十", "甲辰年腊月三十"},
		{"2025", "初一", "乙巳年初一"},
		{"腊月", "初八", "腊月 初八"},
		{"abcd-01", "初一", "abcd-01 初一"},
	}
	for _, tc := range cases {
		if got := FormatLunarDate(tc.date, tc.day); got != tc.want {
			t.Fatalf("FormatLunarDate(%q,%q)=%q want %q", tc.date, tc.day, got, tc.want)
		}
	}
}

func TestSimplifyChongSha(t *testing.T) {
	if got := SimplifyChongSha("冲猴(壬申)煞北"); got != "属猴的朋友今天要低调一些" {
		t.Fatalf("got=%q", got)
	}
	if got := SimplifyChongSha("煞北"); got != "今天做事要谨慎一些" {
		t.Fatalf("got=%q", got)
	}
	if got := SimplifyChongSha("  "); got != "" {
		t.Fatalf("got=%q", got)
	}
}

func TestExtractNumber(t *testing.T) {
	cases := map[string]int{"85%": 85, "综合 72 分": 72, "": 0, "暂无": 0}
	for in, want := range cases {
		if got := ExtractNumber(in); got != want {
			t.Fatalf("ExtractNumber(%q)=%d want %d", in, got, want)
		}
	}
}

func TestNormalizeSign(t *testing.T) {
	for _, in := range []string{"leo", "LEO", " Leo ", "狮子座"} {
		s, ok := NormalizeSign(in)
		if !ok || s.Astro != "leo" || s.Name != "狮子座" {
			t.Fatalf("NormalizeSign(%q)=%+v,%v", in, s, ok)
		}
	}
	for _, in := range []string{"", "dragon", "狮子"} {
		if _, ok := NormalizeSign(in); ok {
			t.Fatalf("NormalizeSign(%q) accepted", in)
		}
	}
	if len(Signs()) != 12 {
		t.Fatalf("signs=%d", len(Signs()))
	}
}

func TestWeekdayAndWorkday(t *testing.T) {
	if WeekdayName(time.Wednesday) != "周三" {
		t.Fatalf("weekday name")
	}
	if !IsWorkday(friday) || IsWorkday(friday.Add(24*time.Hour)) || IsWorkday(friday.Add(48*time.Hour)) {
		t.Fatalf("workday classification")
	}
}

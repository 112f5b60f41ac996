package pii

import "unicode"

// Language tags produced by DetectLanguage.
const (
	LangEnglish     = "en"
	LangTraditional = "zh-Hant"
	LangSimplified  = "zh-Hans"
)

// Characters whose written form differs between the two scripts. Each
// index in simplifiedOnly pairs with the same index in traditionalOnly.
// The tables are not exhaustive; they cover the high-frequency characters
// that decide real clinic queries (pricing, booking, consultation terms).
var (
	simplifiedOnly  = []rune("国们这说对时动学电业门书体医发汉语谁录习马鸟龙华万与专东丝两严亚产众优儿钱费价现观规视觉计订认识诊询评请诉该词问间闻阳阴队际邮乡线组织经结给继约预办应为")
	traditionalOnly = []rune("國們這說對時動學電業門書體醫發漢語誰錄習馬鳥龍華萬與專東絲兩嚴亞產眾優兒錢費價現觀規視覺計訂認識診詢評請訴該詞問間聞陽陰隊際郵鄉線組織經結給繼約預辦應為")
)

var (
	simplifiedSet  = toSet(simplifiedOnly)
	traditionalSet = toSet(traditionalOnly)
)

func toSet(runes []rune) map[rune]struct{} {
	set := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		set[r] = struct{}{}
	}
	return set
}

// DetectLanguage classifies text as English, Traditional Chinese, or
// Simplified Chinese. Text without Chinese script is English. Chinese
// script written only in shared characters counts as Traditional; a mix
// of script-exclusive characters from both forms is undetermined and
// falls back to English. The fallback is a documented quirk of the
// detection contract, not an error.
func DetectLanguage(text string) string {
	if text == "" {
		return LangEnglish
	}

	hasHan := false
	simp, trad := 0, 0
	for _, r := range text {
		if !unicode.Is(unicode.Han, r) {
			continue
		}
		hasHan = true
		if _, ok := simplifiedSet[r]; ok {
			simp++
		}
		if _, ok := traditionalSet[r]; ok {
			trad++
		}
	}

	if !hasHan {
		return LangEnglish
	}
	switch {
	case simp > 0 && trad > 0:
		return LangEnglish
	case simp > 0:
		return LangSimplified
	default:
		return LangTraditional
	}
}

package methods

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

func moveLeadingNumbersToEnd(s string) string {
	// 定义正则表达式，匹配字符串开头的数字
	re := regexp.MustCompile(`^(\d+)(.*)$`)
	match := re.FindStringSubmatch(s)
	if len(match) == 3 {
		return match[2] + match[1]
	}
	return s
}

func filterString(str string) string {
	// 只保留中文、英文、数字和下划线
	reg := regexp.MustCompile("[^\\p{Han}\\p{Latin}\\p{N}_]")
	result := reg.ReplaceAllString(str, "")
	result = strings.ReplaceAll(result, " ", "")
	return result
}

// ConvertToInitials 将中文字符串转换为拼音首字母拼接字符串
// 用于从图标中文名派生 fontClass，保证类名是合法的 CSS 标识符
func ConvertToInitials(hanzi string) string {
	hanzi = filterString(hanzi)
	a := pinyin.NewArgs()
	a.Style = pinyin.FirstLetter
	var result string
	for _, runeValue := range hanzi {
		if unicode.Is(unicode.Han, runeValue) {
			pinyinSlice := pinyin.SinglePinyin(runeValue, a)
			if len(pinyinSlice) > 0 {
				result += pinyinSlice[0]
			}
		} else {
			result += string(runeValue)
		}
	}
	processed := moveLeadingNumbersToEnd(result)
	return strings.ToLower(processed)
}

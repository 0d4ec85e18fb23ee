package utils

import (
	"strconv"
	"strings"
)

// Slugify 由名称生成 slug（空格转连字符并小写）
func Slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// 只移除字面量的 <p> 和 </p>，不做完整 HTML 清洗
var paragraphReplacer = strings.NewReplacer("<p>", "", "</p>", "")

// StripParagraphTags 去掉简介中的段落标签
func StripParagraphTags(content string) string {
	return paragraphReplacer.Replace(content)
}

// ParsePage 解析分页参数，非法值回退默认
func ParsePage(pageStr, perPageStr string, defaultPerPage int) (int, int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage
}

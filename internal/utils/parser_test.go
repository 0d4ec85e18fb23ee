package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hanh-dong", Slugify("Hanh Dong"))
	assert.Equal(t, "phim-le", Slugify("Phim Le"))
	assert.Equal(t, "one", Slugify("One"))
}

func TestStripParagraphTags(t *testing.T) {
	assert.Equal(t, "一段简介", StripParagraphTags("<p>一段简介</p>"))
	assert.Equal(t, "前后", StripParagraphTags("<p>前</p><p>后</p>"))
	// 其它标签原样保留
	assert.Equal(t, "<b>加粗</b>", StripParagraphTags("<p><b>加粗</b></p>"))
	assert.Equal(t, "无标签", StripParagraphTags("无标签"))
}

func TestParsePage(t *testing.T) {
	page, perPage := ParsePage("2", "30", 24)
	assert.Equal(t, 2, page)
	assert.Equal(t, 30, perPage)

	// 非法值回退默认
	page, perPage = ParsePage("abc", "", 24)
	assert.Equal(t, 1, page)
	assert.Equal(t, 24, perPage)

	page, perPage = ParsePage("-1", "0", 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)
}

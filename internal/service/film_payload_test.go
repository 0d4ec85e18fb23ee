package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"status": true,
	"msg": "",
	"movie": {
		"name": "Vùng Đất Quỷ Dữ",
		"slug": "vung-dat-quy-du",
		"origin_name": "Resident Evil",
		"content": "<p>第一段。</p><p>第二段。</p>",
		"type": "series",
		"status": "completed",
		"thumb_url": "https://img.example.com/thumb.jpg",
		"poster_url": "https://img.example.com/poster.jpg",
		"is_copyright": false,
		"sub_docquyen": true,
		"chieurap": false,
		"trailer_url": "https://youtube.com/watch?v=abc",
		"time": "45 phút/tập",
		"episode_current": "Hoàn Tất (8/8)",
		"episode_total": "8",
		"quality": "HD",
		"lang": "Vietsub",
		"notify": "",
		"showtimes": "",
		"year": 2022,
		"view": 1234,
		"actor": ["Ella Balinska", "", "Tamara Smart"],
		"director": ["Andrew Dabb"],
		"category": [
			{"id": "1", "name": "Hành Động", "slug": "hanh-dong"},
			{"id": "2", "name": "Kinh Dị", "slug": ""}
		],
		"country": [{"id": "3", "name": "Âu Mỹ", "slug": "au-my"}],
		"tmdb": {"vote_average": 7.1, "vote_count": 584}
	},
	"episodes": [
		{
			"server_name": "Vietsub #1",
			"server_data": [
				{"name": "Tập 01", "slug": "tap-01", "filename": "re-01", "link_embed": "https://play.example.com/e1", "link_m3u8": "https://play.example.com/e1.m3u8"},
				{"name": "Tập 02", "slug": "tap-02", "filename": "re-02", "link_embed": "", "link_m3u8": "https://play.example.com/e2.m3u8"}
			]
		},
		{
			"server_name": "Backup",
			"server_data": [
				{"name": "Tập 01", "slug": "tap-01", "filename": "bk-01", "link_embed": "https://backup.example.com/e1", "link_m3u8": ""}
			]
		}
	]
}`

func TestParseFilmRecord(t *testing.T) {
	record, err := ParseFilmRecord([]byte(samplePayload))
	require.NoError(t, err)

	assert.Equal(t, "Vùng Đất Quỷ Dữ", record.Name)
	assert.Equal(t, "vung-dat-quy-du", record.Slug)
	assert.Equal(t, "Resident Evil", record.OriginName)
	// <p></p> 被剥掉
	assert.Equal(t, "第一段。第二段。", record.Content)
	assert.Equal(t, "45 phút/tập", record.Duration)
	assert.Equal(t, 2022, record.Year)
	assert.Equal(t, 1234, record.View)
	assert.True(t, record.SubDocquyen)
	assert.Equal(t, 584, record.TmdbVoteCount)
	assert.InDelta(t, 7.1, record.TmdbVoteAvg, 0.001)

	// 空人名被过滤
	assert.Equal(t, []string{"Ella Balinska", "Tamara Smart"}, record.Actors)
	assert.Equal(t, []string{"Andrew Dabb"}, record.Directors)

	// 缺 slug 的分类自动生成
	require.Len(t, record.Genres, 2)
	assert.Equal(t, "hanh-dong", record.Genres[0].Slug)
	assert.Equal(t, "kinh-dị", record.Genres[1].Slug)
	require.Len(t, record.Countries, 1)
	assert.Equal(t, "Âu Mỹ", record.Countries[0].Name)

	// 只取第一个服务器
	require.Len(t, record.Episodes, 2)
	assert.Equal(t, "Vietsub #1", record.Episodes[0].ServerName)
	assert.Equal(t, "tap-01", record.Episodes[0].Slug)
	assert.Equal(t, "https://play.example.com/e1", record.Episodes[0].LinkFilm)
	// link_embed 为空时回退 m3u8
	assert.Equal(t, "https://play.example.com/e2.m3u8", record.Episodes[1].LinkFilm)
}

func TestParseFilmRecordMalformed(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"非法 JSON", `{not json`},
		{"缺 movie 块", `{"status": true, "episodes": []}`},
		{"缺 slug", `{"movie": {"name": "x", "slug": ""}}`},
		{"缺名称", `{"movie": {"name": "", "slug": "x"}}`},
		{"year 不是数字", `{"movie": {"name": "x", "slug": "x", "year": "abc"}, "episodes": [{"server_name": "S1", "server_data": [{"name": "1", "slug": "tap-1", "link_embed": "e"}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFilmRecord([]byte(tc.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestParseFilmRecordFloatYear(t *testing.T) {
	// 上游偶尔把整数发成浮点
	record, err := ParseFilmRecord([]byte(`{"movie": {"name": "x", "slug": "x", "year": 2024.0},
		"episodes": [{"server_name": "S1", "server_data": [{"name": "1", "slug": "tap-1", "link_embed": "e"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2024, record.Year)
	assert.Zero(t, record.TmdbVoteCount)
}

func TestParseFilmRecordMissingEpisodes(t *testing.T) {
	// 没有任何可用剧集的响应视为格式异常
	cases := []struct {
		name string
		body string
	}{
		{"缺 episodes 字段", `{"movie": {"name": "x", "slug": "x"}}`},
		{"episodes 为空数组", `{"movie": {"name": "x", "slug": "x"}, "episodes": []}`},
		{"server_data 为空", `{"movie": {"name": "x", "slug": "x"}, "episodes": [{"server_name": "S1", "server_data": []}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFilmRecord([]byte(tc.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

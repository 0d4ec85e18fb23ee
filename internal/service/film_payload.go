package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/phimhub/internal/utils"
)

// filmPayload 上游 /phim/{slug} 接口的原始响应结构
// 数值字段用 json.Number 接收，上游偶尔会把数字发成字符串
type filmPayload struct {
	Status json.RawMessage `json:"status"`
	Msg    string          `json:"msg"`
	Movie  *moviePayload   `json:"movie"`
	Eps    []serverPayload `json:"episodes"`
}

type moviePayload struct {
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	OriginName     string         `json:"origin_name"`
	Content        string         `json:"content"`
	Type           string         `json:"type"`
	Status         string         `json:"status"`
	ThumbURL       string         `json:"thumb_url"`
	PosterURL      string         `json:"poster_url"`
	IsCopyright    bool           `json:"is_copyright"`
	SubDocquyen    bool           `json:"sub_docquyen"`
	Chieurap       bool           `json:"chieurap"`
	TrailerURL     string         `json:"trailer_url"`
	Time           string         `json:"time"`
	EpisodeCurrent string         `json:"episode_current"`
	EpisodeTotal   string         `json:"episode_total"`
	Quality        string         `json:"quality"`
	Lang           string         `json:"lang"`
	Notify         string         `json:"notify"`
	Showtimes      string         `json:"showtimes"`
	Year           json.Number    `json:"year"`
	View           json.Number    `json:"view"`
	Actor          []string       `json:"actor"`
	Director       []string       `json:"director"`
	Category       []namedPayload `json:"category"`
	Country        []namedPayload `json:"country"`
	Tmdb           *tmdbPayload   `json:"tmdb"`
}

type namedPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type tmdbPayload struct {
	VoteAverage json.Number `json:"vote_average"`
	VoteCount   json.Number `json:"vote_count"`
}

type serverPayload struct {
	ServerName string           `json:"server_name"`
	ServerData []episodePayload `json:"server_data"`
}

type episodePayload struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Filename  string `json:"filename"`
	LinkEmbed string `json:"link_embed"`
	LinkM3u8  string `json:"link_m3u8"`
}

// FilmRecord 解析后的归一化采集结果，给入库层消费
type FilmRecord struct {
	Name           string
	Slug           string
	OriginName     string
	Content        string
	Type           string
	Status         string
	ThumbURL       string
	PosterURL      string
	TrailerURL     string
	Duration       string
	EpisodeCurrent string
	EpisodeTotal   string
	Quality        string
	Lang           string
	Notify         string
	Showtimes      string
	Year           int
	View           int
	IsCopyright    bool
	Chieurap       bool
	SubDocquyen    bool
	TmdbVoteCount  int
	TmdbVoteAvg    float64

	Actors    []string
	Directors []string
	Genres    []NamedRef
	Countries []NamedRef
	Episodes  []EpisodeRecord
}

// NamedRef 类型/国家这类带 slug 的引用
type NamedRef struct {
	Name string
	Slug string
}

// EpisodeRecord 单集数据，ServerName 取自所属服务器
type EpisodeRecord struct {
	ServerName string
	Name       string
	Slug       string
	Filename   string
	LinkFilm   string
}

// ParseFilmRecord 把上游响应体解析成 FilmRecord
// 缺少 movie 块、slug 或第一个服务器的剧集列表视为格式异常；简介里的 <p></p> 标签会被剥掉；
// 多个播放服务器时只取第一个，上游后续服务器是同内容的备用源
func ParseFilmRecord(body []byte) (*FilmRecord, error) {
	var payload filmPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.Movie == nil {
		return nil, fmt.Errorf("%w: 响应缺少 movie 数据", ErrMalformedPayload)
	}
	m := payload.Movie
	if strings.TrimSpace(m.Slug) == "" {
		return nil, fmt.Errorf("%w: 影片缺少 slug", ErrMalformedPayload)
	}
	if strings.TrimSpace(m.Name) == "" {
		return nil, fmt.Errorf("%w: 影片缺少名称", ErrMalformedPayload)
	}
	if len(payload.Eps) == 0 || len(payload.Eps[0].ServerData) == 0 {
		return nil, fmt.Errorf("%w: 响应缺少剧集数据", ErrMalformedPayload)
	}

	year, err := parseIntNumber(m.Year, "year")
	if err != nil {
		return nil, err
	}
	view, err := parseIntNumber(m.View, "view")
	if err != nil {
		return nil, err
	}

	record := &FilmRecord{
		Name:           m.Name,
		Slug:           m.Slug,
		OriginName:     m.OriginName,
		Content:        utils.StripParagraphTags(m.Content),
		Type:           m.Type,
		Status:         m.Status,
		ThumbURL:       m.ThumbURL,
		PosterURL:      m.PosterURL,
		TrailerURL:     m.TrailerURL,
		Duration:       m.Time,
		EpisodeCurrent: m.EpisodeCurrent,
		EpisodeTotal:   m.EpisodeTotal,
		Quality:        m.Quality,
		Lang:           m.Lang,
		Notify:         m.Notify,
		Showtimes:      m.Showtimes,
		Year:           year,
		View:           view,
		IsCopyright:    m.IsCopyright,
		Chieurap:       m.Chieurap,
		SubDocquyen:    m.SubDocquyen,
	}

	if m.Tmdb != nil {
		count, err := parseIntNumber(m.Tmdb.VoteCount, "tmdb.vote_count")
		if err != nil {
			return nil, err
		}
		avg, err := parseFloatNumber(m.Tmdb.VoteAverage, "tmdb.vote_average")
		if err != nil {
			return nil, err
		}
		record.TmdbVoteCount = count
		record.TmdbVoteAvg = avg
	}

	// 人名列表里偶尔有空串，过滤掉避免生成空实体
	for _, name := range m.Actor {
		if strings.TrimSpace(name) != "" {
			record.Actors = append(record.Actors, name)
		}
	}
	for _, name := range m.Director {
		if strings.TrimSpace(name) != "" {
			record.Directors = append(record.Directors, name)
		}
	}
	for _, c := range m.Category {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		slug := c.Slug
		if slug == "" {
			slug = utils.Slugify(c.Name)
		}
		record.Genres = append(record.Genres, NamedRef{Name: c.Name, Slug: slug})
	}
	for _, c := range m.Country {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		slug := c.Slug
		if slug == "" {
			slug = utils.Slugify(c.Name)
		}
		record.Countries = append(record.Countries, NamedRef{Name: c.Name, Slug: slug})
	}

	server := payload.Eps[0]
	for _, ep := range server.ServerData {
		if strings.TrimSpace(ep.Slug) == "" {
			continue
		}
		link := ep.LinkEmbed
		if link == "" {
			link = ep.LinkM3u8
		}
		record.Episodes = append(record.Episodes, EpisodeRecord{
			ServerName: server.ServerName,
			Name:       ep.Name,
			Slug:       ep.Slug,
			Filename:   ep.Filename,
			LinkFilm:   link,
		})
	}

	return record, nil
}

// parseIntNumber 数值字段解析失败时带字段名报错，不静默归零
func parseIntNumber(n json.Number, field string) (int, error) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, nil
	}
	v, err := n.Int64()
	if err != nil {
		// 上游偶尔把整数发成 "2024.0"
		f, ferr := n.Float64()
		if ferr != nil {
			return 0, fmt.Errorf("%w: 字段 %s 不是有效数字: %q", ErrMalformedPayload, field, n.String())
		}
		return int(f), nil
	}
	return int(v), nil
}

func parseFloatNumber(n json.Number, field string) (float64, error) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, nil
	}
	v, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: 字段 %s 不是有效数字: %q", ErrMalformedPayload, field, n.String())
	}
	return v, nil
}

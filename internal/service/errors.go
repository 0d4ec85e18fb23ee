package service

import "errors"

// 采集流水线的阶段性错误，外层用 errors.Is 区分失败阶段
var (
	// ErrFetchFailed 上游请求重试耗尽后仍失败
	ErrFetchFailed = errors.New("上游资源站请求失败")
	// ErrMalformedPayload 上游返回的数据缺字段或格式不对
	ErrMalformedPayload = errors.New("上游数据格式异常")
	// ErrMovieWrite 影片主记录写入失败，关联数据不再继续
	ErrMovieWrite = errors.New("影片记录写入失败")
)

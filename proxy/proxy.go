package proxy

// 为采集器提供代理服务器的轮询切换，未配置代理时采集器沿用环境变量HTTP_PROXY/HTTPS_PROXY

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
)

// 与http.Transport.Proxy的签名一致
type ProxyFunc func(*http.Request) (*url.URL, error)

var ErrNoProxy = errors.New("proxy URL list is empty")

var schemes = map[string]bool{"http": true, "https": true, "socks5": true}

// 解析并校验代理地址，只接受http、https和socks5
func Parse(rawURLs ...string) ([]*url.URL, error) {
	if len(rawURLs) == 0 {
		return nil, ErrNoProxy
	}
	urls := make([]*url.URL, 0, len(rawURLs))
	for _, raw := range rawURLs {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url %q: %w", raw, err)
		}
		if !schemes[u.Scheme] || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy url: %q", raw)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// 每次调用依次返回下一个地址，并发安全
func RoundRobin(urls []*url.URL) ProxyFunc {
	var next uint32
	return func(*http.Request) (*url.URL, error) {
		if len(urls) == 0 {
			return nil, ErrNoProxy
		}
		i := atomic.AddUint32(&next, 1) - 1
		return urls[i%uint32(len(urls))], nil
	}
}

/*
输入一个或多个代理服务器地址，输出一个代理切换函数和一个error

地址列表为空或任一地址不合法时返回错误
*/
func RoundRobinProxySwitcher(rawURLs ...string) (ProxyFunc, error) {
	urls, err := Parse(rawURLs...)
	if err != nil {
		return nil, err
	}
	return RoundRobin(urls), nil
}

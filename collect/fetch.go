package collect

// 负责发起HTTP请求获取网页内容，并把响应体统一转换为utf-8编码

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

type Fetcher interface {
	/*
	   输入一个上下文和url，输出网页内容和一个error

	   该方法发送一次GET请求，不做重试，响应状态码不为200时返回错误
	*/
	Get(ctx context.Context, url string) ([]byte, error)
}

type BaseFetch struct {
	options
	client *http.Client
}

/*
输入一个或多个Option实例，输出一个BaseFetch实例

根据配置创建http客户端，Timeout为0时不设置超时，配置了代理时使用代理函数
*/
func New(opts ...Option) *BaseFetch {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}

	client := &http.Client{
		Timeout: options.timeout,
	}
	if options.proxy != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = options.proxy
		client.Transport = transport
	}

	return &BaseFetch{options: options, client: client}
}

func (b *BaseFetch) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get url failed:%w", err)
	}
	if b.userAgent != "" {
		req.Header.Set("User-Agent", b.userAgent)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error status code:%d", resp.StatusCode)
	}

	bodyReader := bufio.NewReader(resp.Body)
	e := b.determineEncoding(bodyReader, resp.Header.Get("Content-Type"))
	utf8Reader := transform.NewReader(bodyReader, e.NewDecoder())

	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("fetch done", zap.String("url", url), zap.Int("bytes", len(body)))
	return body, nil
}

// 读取响应体的前1024字节结合Content-Type推断编码，读取失败时按utf-8处理
func (b *BaseFetch) determineEncoding(r *bufio.Reader, contentType string) encoding.Encoding {
	bytes, err := r.Peek(1024)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		b.logger.Error("peek body failed", zap.Error(err))
		return unicode.UTF8
	}

	e, _, _ := charset.DetermineEncoding(bytes, contentType)
	return e
}

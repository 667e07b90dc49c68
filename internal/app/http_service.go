package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/officer-registry/internal/logger"
)

const httpReadHeaderTimeout = 10 * time.Second

// HTTPService 对外 API 服务
// Stop 只等待进行中的请求结束；请求已提交的审计记录由审计工作池在其后排空
type HTTPService struct {
	server *http.Server
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: httpReadHeaderTimeout,
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http"
}

// Start 监听并阻塞直到服务关闭
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	logger.Infow("http_listening", "addr", listener.Addr().String())
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅关闭，超出 ctx 期限后强制断开剩余连接
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		logger.Warnw("http_shutdown_forced", "error", err)
		return errors.Join(err, s.server.Close())
	}
	return nil
}

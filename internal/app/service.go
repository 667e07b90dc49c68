package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// Service 可由 Runner 管理生命周期的组件（HTTP 服务、审计工作池、asynq worker）
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 服务运行器
// 服务并发启动；停止时严格按注册顺序依次执行，
// 因此 HTTP 先停止接收请求，排在最后的审计工作池才能排空已提交的记录
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// Names 按停止顺序返回服务名
func (r *Runner) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.services))
	for _, svc := range r.services {
		names = append(names, serviceName(svc))
	}
	return names
}

// RunWithOptions 运行服务，收到退出信号后按顺序停止
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部服务，任一服务退出或 ctx 结束时停止全部服务
// 正常退出时返回停止阶段的错误；启动失败时返回启动错误
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, logger *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(r.services))
	for _, svc := range r.services {
		service := svc
		go func() {
			name := serviceName(service)
			if service == nil {
				errCh <- errors.New("service is nil")
				return
			}
			logger.Infow("service_start", "service", name)
			err := service.Start(ctx)
			if err != nil {
				err = fmt.Errorf("%s: %w", name, err)
			}
			errCh <- err
			logger.Infow("service_exit", "service", name, "error", err)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case runErr = <-errCh:
	}
	cancel()

	stopErr := r.stopAll(stopTimeout, logger)
	if runErr == nil || errors.Is(runErr, context.Canceled) {
		return stopErr
	}
	return runErr
}

func (r *Runner) stopAll(stopTimeout time.Duration, logger *zap.SugaredLogger) error {
	if stopTimeout <= 0 {
		stopTimeout = 10 * time.Second
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()

	var errs []error
	for order, svc := range r.services {
		if svc == nil {
			continue
		}
		started := time.Now()
		if err := svc.Stop(stopCtx); err != nil {
			logger.Errorw("service_stop_failed", "service", svc.Name(), "order", order, "error", err)
			errs = append(errs, fmt.Errorf("stop %s: %w", svc.Name(), err))
			continue
		}
		logger.Infow("service_stopped", "service", svc.Name(), "order", order, "elapsed_ms", time.Since(started).Milliseconds())
	}
	return errors.Join(errs...)
}

func serviceName(svc Service) string {
	if svc == nil {
		return "unknown"
	}
	return svc.Name()
}

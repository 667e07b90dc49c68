package app

import (
	"errors"

	"github.com/officer-registry/internal/config"
	"github.com/officer-registry/internal/provider"
	"github.com/officer-registry/internal/router"
	"github.com/officer-registry/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	container := provider.NewContainer(cfg)
	return buildRunner(cfg, mode, container)
}

func buildRunner(cfg *config.Config, mode string, container *provider.Container) (*Runner, error) {
	if mode != ModeAll && mode != ModeAPI && mode != ModeWorker {
		return nil, errors.New("unknown mode: " + mode)
	}

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		httpService := NewHTTPService(addr, engine)
		services = append(services, httpService)
	}

	// 初始化 Worker 服务（消费 queue 模式下的审计任务）
	if (mode == ModeAll && cfg.Queue.Enabled) || mode == ModeWorker {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	// 审计工作池最后停止，HTTP 关闭后再排空剩余记录
	if (mode == ModeAll || mode == ModeAPI) && container.AuditWorker != nil {
		services = append(services, container.AuditWorker)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode, "services", runner.Names())
	return RunWithOptions(runner, opts)
}

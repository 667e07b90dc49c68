package main

import (
	"context"
	"fmt"
	"os"

	"github.com/officer-registry/internal/config"
	"github.com/officer-registry/internal/logger"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/provider"
	"github.com/officer-registry/internal/seed"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Officer Registry 数据初始化工具",
	Long:  "创建管理员账号或写入演示警员与考核数据，写入经过业务服务并留下审计记录。",
}

func main() {
	rootCmd.AddCommand(newAdminCmd(), newDemoCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// bootstrap 加载配置、连接数据库并组装容器；返回的 stop 会排空审计队列
func bootstrap() (*provider.Container, func(), error) {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	container := provider.NewContainer(cfg)
	if container.AuditWorker != nil {
		container.AuditWorker.StartWorkers()
	}
	stop := func() {
		if container.AuditWorker != nil {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Audit.WriteTimeout()*4)
			defer cancel()
			_ = container.AuditWorker.Stop(ctx)
		}
		if container.QueueClient != nil {
			_ = container.QueueClient.Close()
		}
	}
	return container, stop, nil
}

func newAdminCmd() *cobra.Command {
	var input seed.AdminInput
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "创建管理员账号",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, stop, err := bootstrap()
			if err != nil {
				return err
			}
			defer stop()

			created, err := seed.Admin(cmd.Context(), container, input)
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("admin %s created\n", input.Username)
			} else {
				fmt.Printf("admin %s already exists\n", input.Username)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Username, "username", "admin", "登录名")
	cmd.Flags().StringVar(&input.Password, "password", "", "密码（需满足密码策略）")
	cmd.Flags().StringVar(&input.OfficerName, "officer-name", "Administrator", "对应警员姓名")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newDemoCmd() *cobra.Command {
	var evaluator string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "写入演示警员、考核与晋升记录",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, stop, err := bootstrap()
			if err != nil {
				return err
			}
			defer stop()

			result, err := seed.Demo(cmd.Context(), container, evaluator)
			if err != nil {
				return err
			}
			fmt.Printf("officers=%d evaluations=%d promotions=%d skipped=%d\n",
				result.Officers, result.Evaluations, result.Promotions, result.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&evaluator, "evaluator", "admin", "以该用户身份记录考核")
	return cmd
}

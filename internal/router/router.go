package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/officer-registry/internal/authz"
	"github.com/officer-registry/internal/config"
	adminhandlers "github.com/officer-registry/internal/http/handlers/admin"
	publichandlers "github.com/officer-registry/internal/http/handlers/public"
	"github.com/officer-registry/internal/http/response"
	"github.com/officer-registry/internal/logger"
	"github.com/officer-registry/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/api/v1"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（公开只读 / 登录后写入）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "or"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group(apiPrefix)
	{
		// 公开接口
		apiV1.POST("/auth/login", RateLimitMiddleware(c.Redis, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
		apiV1.GET("/officers", publicHandler.ListOfficers)
		apiV1.GET("/officers/count", publicHandler.CountOfficers)
		apiV1.GET("/officers/recent-promotions", publicHandler.RecentPromotions)
		apiV1.GET("/officers/:id", publicHandler.GetOfficer)
		apiV1.GET("/evaluations/recent", publicHandler.RecentEvaluations)
		apiV1.GET("/evaluations/officer/:officerId", publicHandler.OfficerEvaluations)
		apiV1.GET("/dashboard/analytics", publicHandler.DashboardOverview)
		apiV1.GET("/dashboard/analytics/:officerId", publicHandler.DashboardOfficer)
		apiV1.GET("/dashboard/ranking", publicHandler.DashboardRanking)

		// 需要鉴权的接口
		authorized := apiV1.Group("")
		authorized.Use(JWTAuthMiddleware(c.AuthService, c.UserRepo), RoleAuthzMiddleware(c.AuthzService))
		{
			// 账号
			authorized.POST("/auth/register", adminHandler.Register)
			authorized.PUT("/auth/password", adminHandler.ChangePassword)
			authorized.GET("/users", adminHandler.ListUsers)

			// 警员
			authorized.POST("/officers", adminHandler.CreateOfficer)
			authorized.PUT("/officers/:id", adminHandler.UpdateOfficer)
			authorized.DELETE("/officers/:id", adminHandler.DeleteOfficer)
			authorized.PUT("/officers/:id/promote", adminHandler.PromoteOfficer)

			// 考核
			authorized.POST("/evaluations", adminHandler.CreateEvaluation)
			authorized.DELETE("/evaluations/:id", adminHandler.DeleteEvaluation)

			// 审计与权限
			authorized.GET("/audit-logs", adminHandler.ListAuditLogs)
			authorized.GET("/authz/me", adminHandler.GetAuthzMe)
			authorized.GET("/authz/permissions", func(ctx *gin.Context) {
				response.Success(ctx, buildPermissionCatalog(r, c.AuthzService))
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if c.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))
	}

	return r
}

type permissionCatalogItem struct {
	Module     string   `json:"module"`
	Method     string   `json:"method"`
	Object     string   `json:"object"`
	Permission string   `json:"permission"`
	Roles      []string `json:"roles"`
}

// buildPermissionCatalog 列出所有受保护的路由，以及可访问它的内置角色
func buildPermissionCatalog(engine *gin.Engine, authzService *authz.Service) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, apiPrefix+"/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		roles := allowedRoles(authzService, object, method)
		if len(roles) == 0 {
			continue
		}
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
			Roles:      roles,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func allowedRoles(authzService *authz.Service, object, method string) []string {
	roles := make([]string, 0, 2)
	for _, seed := range authz.BuiltinRoleSeeds() {
		allowed, err := authzService.EnforceRole(seed.Role, object, method)
		if err != nil || !allowed {
			continue
		}
		roles = append(roles, seed.Role)
	}
	sort.Strings(roles)
	return roles
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	return segments[0]
}

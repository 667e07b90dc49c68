package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":              "Invalid request parameters",
		"error.unauthorized":             "Unauthorized",
		"error.forbidden":                "Permission denied",
		"error.internal":                 "Internal server error",
		"error.jwt_secret_missing":       "Token secret is not configured",
		"error.auth_header_missing":      "Authorization header is missing",
		"error.auth_header_invalid":      "Authorization header is malformed",
		"error.token_invalid":            "Invalid or expired token",
		"error.rate_limited":             "Too many requests, retry in %d seconds",
		"error.login_too_many":           "Too many login attempts, retry in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.login_invalid":            "Invalid username or password",
		"error.password_invalid":         "Current password is incorrect",
		"error.password_policy":          "Password does not meet the password policy",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a number",
		"error.password_require_special": "Password must contain a special character",
		"error.username_exists":          "Username already exists",
		"error.role_invalid":             "Role must be admin or federal",
		"error.user_not_found":           "User not found",
		"error.user_fetch_failed":        "Failed to fetch users",
		"error.user_save_failed":         "Failed to save user",
		"error.officer_not_found":        "Officer not found",
		"error.officer_invalid":          "Invalid officer data",
		"error.officer_rank_invalid":     "Rank is not part of the hierarchy",
		"error.officer_top_rank":         "Officer already holds the highest rank",
		"error.officer_rank_locked":      "Rank changes only through promotion",
		"error.officer_conflict":         "Officer was changed by another request, reload and retry",
		"error.officer_fetch_failed":     "Failed to fetch officers",
		"error.officer_save_failed":      "Failed to save officer",
		"error.evaluation_not_found":     "Evaluation not found",
		"error.evaluation_invalid":       "Invalid evaluation data",
		"error.evaluation_fetch_failed":  "Failed to fetch evaluations",
		"error.evaluation_save_failed":   "Failed to save evaluation",
		"error.audit_fetch_failed":       "Failed to fetch audit logs",
		"error.analytics_fetch_failed":   "Failed to compute analytics",
		"success.officer_promoted":       "Officer promoted",
		"success.password_changed":       "Password changed",
		"success.deleted":                "Deleted",
	},
	LocalePT: {
		"error.bad_request":              "Parâmetros inválidos",
		"error.unauthorized":             "Não autorizado",
		"error.forbidden":                "Acesso negado",
		"error.internal":                 "Erro interno do servidor",
		"error.jwt_secret_missing":       "Segredo do token não configurado",
		"error.auth_header_missing":      "Cabeçalho de autorização ausente",
		"error.auth_header_invalid":      "Cabeçalho de autorização inválido",
		"error.token_invalid":            "Token inválido ou expirado",
		"error.rate_limited":             "Muitas requisições, tente novamente em %d segundos",
		"error.login_too_many":           "Muitas tentativas de login, tente novamente em %d segundos",
		"error.rate_limit_unavailable":   "Limitador de requisições indisponível",
		"error.login_invalid":            "Usuário ou senha inválidos",
		"error.password_invalid":         "Senha atual incorreta",
		"error.password_policy":          "A senha não atende à política de senhas",
		"error.password_min_length":      "A senha deve ter pelo menos %d caracteres",
		"error.password_require_upper":   "A senha deve conter uma letra maiúscula",
		"error.password_require_lower":   "A senha deve conter uma letra minúscula",
		"error.password_require_number":  "A senha deve conter um número",
		"error.password_require_special": "A senha deve conter um caractere especial",
		"error.username_exists":          "Usuário já existe",
		"error.role_invalid":             "O papel deve ser admin ou federal",
		"error.user_not_found":           "Usuário não encontrado",
		"error.user_fetch_failed":        "Erro ao buscar usuários",
		"error.user_save_failed":         "Erro ao salvar usuário",
		"error.officer_not_found":        "Oficial não encontrado",
		"error.officer_invalid":          "Dados do oficial inválidos",
		"error.officer_rank_invalid":     "Patente fora da hierarquia",
		"error.officer_top_rank":         "O oficial já possui a patente máxima",
		"error.officer_rank_locked":      "A patente só muda por promoção",
		"error.officer_conflict":         "O oficial foi alterado por outra requisição, recarregue e tente novamente",
		"error.officer_fetch_failed":     "Erro ao buscar oficiais",
		"error.officer_save_failed":      "Erro ao salvar oficial",
		"error.evaluation_not_found":     "Avaliação não encontrada",
		"error.evaluation_invalid":       "Dados da avaliação inválidos",
		"error.evaluation_fetch_failed":  "Erro ao buscar avaliações",
		"error.evaluation_save_failed":   "Erro ao salvar avaliação",
		"error.audit_fetch_failed":       "Erro ao buscar logs de auditoria",
		"error.analytics_fetch_failed":   "Erro ao calcular estatísticas",
		"success.officer_promoted":       "Oficial promovido",
		"success.password_changed":       "Senha alterada",
		"success.deleted":                "Removido",
	},
	LocaleZH: {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未授权",
		"error.forbidden":                "无权限访问",
		"error.internal":                 "服务器内部错误",
		"error.jwt_secret_missing":       "未配置 Token 密钥",
		"error.auth_header_missing":      "缺少 Authorization 头",
		"error.auth_header_invalid":      "Authorization 头格式错误",
		"error.token_invalid":            "Token 无效或已过期",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后重试",
		"error.login_too_many":           "登录尝试过多，请 %d 秒后重试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.login_invalid":            "用户名或密码错误",
		"error.password_invalid":         "原密码错误",
		"error.password_policy":          "密码不符合安全策略",
		"error.password_min_length":      "密码长度至少 %d 位",
		"error.password_require_upper":   "密码必须包含大写字母",
		"error.password_require_lower":   "密码必须包含小写字母",
		"error.password_require_number":  "密码必须包含数字",
		"error.password_require_special": "密码必须包含特殊字符",
		"error.username_exists":          "用户名已存在",
		"error.role_invalid":             "角色只能是 admin 或 federal",
		"error.user_not_found":           "用户不存在",
		"error.user_fetch_failed":        "获取用户失败",
		"error.user_save_failed":         "保存用户失败",
		"error.officer_not_found":        "警员不存在",
		"error.officer_invalid":          "警员数据不合法",
		"error.officer_rank_invalid":     "警衔不在等级序列中",
		"error.officer_top_rank":         "警员已是最高警衔",
		"error.officer_rank_locked":      "警衔只能通过晋升变更",
		"error.officer_conflict":         "警员已被其他请求修改，请刷新后重试",
		"error.officer_fetch_failed":     "获取警员失败",
		"error.officer_save_failed":      "保存警员失败",
		"error.evaluation_not_found":     "考核记录不存在",
		"error.evaluation_invalid":       "考核数据不合法",
		"error.evaluation_fetch_failed":  "获取考核记录失败",
		"error.evaluation_save_failed":   "保存考核记录失败",
		"error.audit_fetch_failed":       "获取审计日志失败",
		"error.analytics_fetch_failed":   "统计计算失败",
		"success.officer_promoted":       "晋升成功",
		"success.password_changed":       "密码已修改",
		"success.deleted":                "删除成功",
	},
}

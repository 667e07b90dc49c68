package shared

import (
	"github.com/officer-registry/internal/http/response"
	"github.com/officer-registry/internal/service"
)

// AuthErrorRules 认证与账号相关错误
var AuthErrorRules = []MappedError{
	{Target: service.ErrActorRequired, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrTokenInvalid, Code: response.CodeUnauthorized, Key: "error.token_invalid"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_policy"},
	{Target: service.ErrUsernameExists, Code: response.CodeBadRequest, Key: "error.username_exists"},
	{Target: service.ErrRoleInvalid, Code: response.CodeBadRequest, Key: "error.role_invalid"},
	{Target: service.ErrUserInvalid, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrJWTSecretMissing, Code: response.CodeInternal, Key: "error.jwt_secret_missing"},
}

// OfficerErrorRules 警员相关错误
var OfficerErrorRules = []MappedError{
	{Target: service.ErrOfficerNotFound, Code: response.CodeNotFound, Key: "error.officer_not_found"},
	{Target: service.ErrOfficerInvalid, Code: response.CodeBadRequest, Key: "error.officer_invalid"},
	{Target: service.ErrOfficerRankInvalid, Code: response.CodeBadRequest, Key: "error.officer_rank_invalid"},
	{Target: service.ErrOfficerTopRank, Code: response.CodeBadRequest, Key: "error.officer_top_rank"},
	{Target: service.ErrOfficerRankLocked, Code: response.CodeBadRequest, Key: "error.officer_rank_locked"},
	{Target: service.ErrOfficerConflict, Code: response.CodeConflict, Key: "error.officer_conflict"},
}

// EvaluationErrorRules 考核相关错误，创建考核时也会命中警员规则
var EvaluationErrorRules = ConcatMappedErrors([]MappedError{
	{Target: service.ErrActorRequired, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
	{Target: service.ErrEvaluationNotFound, Code: response.CodeNotFound, Key: "error.evaluation_not_found"},
	{Target: service.ErrEvaluationInvalid, Code: response.CodeBadRequest, Key: "error.evaluation_invalid"},
}, OfficerErrorRules)

package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidUserRole     = errors.New("invalid user role")
	ErrInvalidProjectTitle = errors.New("invalid project title")
	ErrInvalidPositions    = errors.New("invalid positions needed")
	ErrInvalidMotivation   = errors.New("invalid motivation")
	ErrInvalidFeature      = errors.New("invalid feature type")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Not found errors
	ErrUserNotFound        = errors.New("user not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrApplicationNotFound = errors.New("application not found")

	// Governance denials: ожидаемые отказы, не сбои
	ErrUserPenalized            = errors.New("user is under an active no-show penalty")
	ErrQuotaExceeded            = errors.New("feature usage limit reached")
	ErrDuplicatePending         = errors.New("pending application already exists for this project")
	ErrProjectNotOpen           = errors.New("project is not open for applications")
	ErrRecruitmentClosedForRole = errors.New("recruitment closed for the requested role")
	ErrAlreadyFinalized         = errors.New("application already finalized")
	ErrInvalidRole              = errors.New("role is not among the project's needed positions")

	// Authorization errors
	ErrNotProjectLeader   = errors.New("only the project leader may perform this action")
	ErrLeaderRoleRequired = errors.New("leader role required")

	// Lifecycle errors
	ErrInvalidStatusTransition = errors.New("invalid recruitment status transition")
)

// HTTPError для единообразных ответов об ошибках
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrInvalidCredentials: {Code: "INVALID_CREDENTIALS", Message: "invalid email or password"},
	ErrEmailAlreadyExists: {Code: "EMAIL_EXISTS", Message: "email already registered"},

	ErrUserNotFound:        {Code: "NOT_FOUND", Message: "user not found"},
	ErrProjectNotFound:     {Code: "NOT_FOUND", Message: "project not found"},
	ErrApplicationNotFound: {Code: "NOT_FOUND", Message: "application not found"},

	ErrUserPenalized:            {Code: "USER_PENALIZED", Message: "user is under an active no-show penalty"},
	ErrQuotaExceeded:            {Code: "QUOTA_EXCEEDED", Message: "feature usage limit reached"},
	ErrDuplicatePending:         {Code: "DUPLICATE_PENDING", Message: "a pending application already exists for this project"},
	ErrProjectNotOpen:           {Code: "PROJECT_NOT_OPEN", Message: "project is not open for applications"},
	ErrRecruitmentClosedForRole: {Code: "ROLE_CLOSED", Message: "recruitment closed for the requested role"},
	ErrAlreadyFinalized:         {Code: "ALREADY_FINALIZED", Message: "application already finalized"},
	ErrInvalidRole:              {Code: "INVALID_ROLE", Message: "role is not among the project's needed positions"},

	ErrNotProjectLeader:   {Code: "FORBIDDEN", Message: "only the project leader may perform this action"},
	ErrLeaderRoleRequired: {Code: "FORBIDDEN", Message: "leader role required"},

	ErrInvalidStatusTransition: {Code: "INVALID_TRANSITION", Message: "invalid recruitment status transition"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}

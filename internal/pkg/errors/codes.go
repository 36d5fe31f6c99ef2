package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"검색어가 필요합니다.",
		http.StatusBadRequest,
	)

	ErrUpstreamUnavailable = New(
		"UPSTREAM_UNAVAILABLE",
		"외부 API 호출에 실패했습니다.",
		http.StatusInternalServerError,
	)

	ErrUpstreamMalformed = New(
		"UPSTREAM_MALFORMED_RESPONSE",
		"외부 API가 JSON이 아닌 응답을 반환했습니다.",
		http.StatusBadGateway,
	)

	ErrUpstreamAuth = New(
		"UPSTREAM_AUTH_ERROR",
		"공공데이터 서비스 키가 유효하지 않습니다.",
		http.StatusBadGateway,
	)

	ErrLoginFailed = New(
		"LOGIN_FAILED",
		"로그인에 실패했습니다.",
		http.StatusUnauthorized,
	)

	ErrInvalidOAuthState = New(
		"INVALID_OAUTH_STATE",
		"유효하지 않은 state 값입니다.",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

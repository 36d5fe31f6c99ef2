package dto

// StoreSearchRequest - запрос на поиск заведений через портал открытых данных
type StoreSearchRequest struct {
	Query    string  `json:"query" validate:"required"`
	Display  int     `json:"display" validate:"omitempty,min=1,max=100"`
	Page     int     `json:"page" validate:"omitempty,min=1"`
	Endpoint string  `json:"endpoint" validate:"omitempty,oneof=dong area upjong radius"`
	Radius   float64 `json:"radius" validate:"omitempty,min=1,max=2000"`
	Cx       float64 `json:"cx" validate:"omitempty,min=-180,max=180"`
	Cy       float64 `json:"cy" validate:"omitempty,min=-90,max=90"`
}

// RegionLookupRequest - сквозной запрос региона (baroApi)
type RegionLookupRequest struct {
	Query     string `json:"query" validate:"required"`
	NumOfRows int    `json:"numOfRows" validate:"omitempty,min=1,max=100"`
	PageNo    int    `json:"pageNo" validate:"omitempty,min=1"`
}

// BlogSearchRequest - запрос на проксируемый поиск по блогам Naver
type BlogSearchRequest struct {
	Query   string `json:"query" validate:"required"`
	Display int    `json:"display" validate:"omitempty,min=1,max=100"`
	Start   int    `json:"start" validate:"omitempty,min=1,max=1000"`
	Sort    string `json:"sort" validate:"omitempty,oneof=sim date"`
}

// AuthURLRequest - запрос URL страницы авторизации провайдера
type AuthURLRequest struct {
	RedirectURI string `json:"redirect_uri" validate:"required,url"`
	State       string `json:"state"`
}

// LoginRequest - вход по email/паролю через Supabase
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

package dto

// AuthURLResponse - сгенерированный URL страницы авторизации.
// Имя поля authUrl сохранено ради совместимости с веб-клиентом.
type AuthURLResponse struct {
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
}

// RegionLookupResponse - сквозной ответ baroApi в стабильной форме
type RegionLookupResponse struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
	Items      []any  `json:"items"`
	TotalCount int    `json:"totalCount"`
}

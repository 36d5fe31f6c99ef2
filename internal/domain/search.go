package domain

// EndpointKind определяет, какой из upstream-эндпоинтов поиска заведений
// будет вызван для данного запроса.
type EndpointKind string

const (
	EndpointByRegionCode EndpointKind = "dong"
	EndpointByRegionName EndpointKind = "area"
	EndpointByCategory   EndpointKind = "upjong"
	EndpointByRadius     EndpointKind = "radius"
)

// IndustryClassRestaurants - код крупной отраслевой классификации "음식"
// (общепит). Сервис ищет только заведения общепита, код зафиксирован.
const IndustryClassRestaurants = "I"

// SearchQuery - входной запрос поиска заведений. Неизменяем в пределах запроса.
type SearchQuery struct {
	Text             string
	PageSize         int
	PageNumber       int
	EndpointOverride EndpointKind // пустая строка = автоматический выбор
	RadiusMeters     float64
	CenterLon        float64
	CenterLat        float64
}

// RegionMatch - результат поиска административного региона по тексту запроса.
// Нулевое значение (оба поля пустые) - валидный исход "регион не найден".
type RegionMatch struct {
	Code string
	Name string
}

func (m RegionMatch) IsEmpty() bool {
	return m.Code == "" && m.Name == ""
}

// EndpointSelection - выбранный эндпоинт вместе с его параметрами.
// Заполняются только поля, относящиеся к выбранному Kind.
type EndpointSelection struct {
	Kind         EndpointKind
	RegionCode   string
	RegionName   string
	CenterLon    float64
	CenterLat    float64
	RadiusMeters float64
}

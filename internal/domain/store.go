package domain

// StoreRecord - каноническое представление одного заведения, не зависящее от
// того, какой upstream-эндпоинт его вернул. Все поля - строки; отсутствующие
// у upstream значения заменяются пустой строкой, null в ответе не бывает.
// Долгота/широта остаются числовыми строками, сервис их не разбирает.
type StoreRecord struct {
	ID                string `json:"id"`
	PlaceName         string `json:"place_name"`
	BranchName        string `json:"branch_name"`
	CategoryName      string `json:"category_name"`
	CategoryMidName   string `json:"category_mid_name"`
	CategorySmallName string `json:"category_small_name"`
	CategoryCode      string `json:"category_code"`
	CategoryMidCode   string `json:"category_mid_code"`
	CategorySmallCode string `json:"category_small_code"`
	AddressName       string `json:"address_name"`
	RoadAddressName   string `json:"road_address_name"`
	BuildingName      string `json:"building_name"`
	BuildingNo        string `json:"building_no"`
	Phone             string `json:"phone"`
	ZipCode           string `json:"zip_code"`
	X                 string `json:"x"`
	Y                 string `json:"y"`
	ProvinceName      string `json:"province_name"`
	ProvinceCode      string `json:"province_code"`
	CityName          string `json:"city_name"`
	CityCode          string `json:"city_code"`
	DongName          string `json:"dong_name"`
	DongCode          string `json:"dong_code"`
	LegalDongName     string `json:"legal_dong_name"`
	LegalDongCode     string `json:"legal_dong_code"`
	Floor             string `json:"floor"`
	Unit              string `json:"unit"`
	IndustryCode      string `json:"industry_code"`
	IndustryName      string `json:"industry_name"`
}

// SearchResultPage - страница результатов поиска в стабильной выходной схеме.
// Инвариант: IsEnd == (pageNumber*pageSize >= TotalCount).
type SearchResultPage struct {
	Records       []StoreRecord `json:"records"`
	TotalCount    int           `json:"total_count"`
	PageableCount int           `json:"pageable_count"`
	IsEnd         bool          `json:"is_end"`
	ResultCode    string        `json:"result_code"`
	ResultMsg     string        `json:"result_msg"`
}

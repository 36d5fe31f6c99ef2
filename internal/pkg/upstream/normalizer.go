package upstream

import (
	"strconv"

	"github.com/matjib/matjib-backend/internal/domain"
)

// itemPath - одна из известных форм вложенности коллекции записей в ответе
// портала. single означает, что последний сегмент может быть и одиночным
// объектом, который нормализуется в коллекцию из одного элемента.
type itemPath struct {
	path   []string
	single bool
}

// itemPaths пробуются по порядку, выигрывает первая подошедшая форма.
// Добавление новой формы upstream - это изменение данных, не кода.
var itemPaths = []itemPath{
	{path: []string{"body", "items", "item"}, single: true},
	{path: []string{"body", "items"}},
	{path: []string{"response", "body", "items", "item"}, single: true},
	{path: []string{"response", "body", "items"}},
	{path: []string{"items", "item"}, single: true},
	{path: []string{"items"}},
}

// idKeys - признак "тело целиком является одной записью"
var idKeys = []string{"bizesId", "상가업소번호"}

// totalCountKeys - имена поля общего количества на уровне найденных items
var totalCountKeys = []string{"totalCount", "totalCnt", "총개수"}

// ExtractItems находит коллекцию записей в одной из известных форм
// вложенности и возвращает её вместе с totalCount, прочитанным с того же
// уровня вложенности (-1, если поле отсутствует или не число).
// Ненайденная коллекция - это пустой результат, не ошибка.
func ExtractItems(v any) (items []map[string]any, totalCount int) {
	for _, p := range itemPaths {
		raw, level, ok := probePath(v, p)
		if !ok {
			continue
		}
		return onlyMaps(raw), readTotalCount(level)
	}

	// Тело целиком - массив записей
	if arr, ok := v.([]any); ok {
		return onlyMaps(arr), -1
	}

	// Тело целиком - одна запись (распознаётся по полю идентификатора)
	if m, ok := v.(map[string]any); ok {
		for _, key := range idKeys {
			if _, exists := m[key]; exists {
				return []map[string]any{m}, -1
			}
		}
	}

	return nil, 0
}

// Normalize приводит успешно классифицированное JSON-тело к канонической
// форме записей. totalCount по умолчанию равен числу записей.
func Normalize(v any) ([]domain.StoreRecord, int) {
	items, totalCount := ExtractItems(v)

	records := make([]domain.StoreRecord, 0, len(items))
	for _, item := range items {
		records = append(records, mapRecord(item))
	}

	if totalCount < 0 {
		totalCount = len(records)
	}
	return records, totalCount
}

func probePath(v any, p itemPath) (items []any, level map[string]any, ok bool) {
	cur := v
	for _, key := range p.path {
		m, isMap := cur.(map[string]any)
		if !isMap {
			return nil, nil, false
		}
		if key == "items" {
			// totalCount живёт рядом с ключом items
			level = m
		}
		next, exists := m[key]
		if !exists || next == nil {
			return nil, nil, false
		}
		cur = next
	}

	switch t := cur.(type) {
	case []any:
		return t, level, true
	case map[string]any:
		if p.single {
			return []any{t}, level, true
		}
	}
	return nil, nil, false
}

func onlyMaps(raw []any) []map[string]any {
	items := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

func readTotalCount(level map[string]any) int {
	if level == nil {
		return -1
	}
	for _, key := range totalCountKeys {
		v, exists := level[key]
		if !exists {
			continue
		}
		switch t := v.(type) {
		case float64:
			return int(t)
		case string:
			if n, err := strconv.Atoi(t); err == nil {
				return n
			}
		}
	}
	return -1
}

// mapRecord переносит поля одной записи в каноническую форму. Для каждого
// поля кандидаты-источники разрешаются независимо: upstream смешивает
// латинские и корейские имена полей даже внутри одной записи.
func mapRecord(m map[string]any) domain.StoreRecord {
	return domain.StoreRecord{
		ID:                Field(m, "bizesId", "상가업소번호"),
		PlaceName:         Field(m, "bizesNm", "상호명"),
		BranchName:        Field(m, "brchNm", "지점명"),
		CategoryName:      Field(m, "indsLclsNm", "상권업종대분류명"),
		CategoryMidName:   Field(m, "indsMclsNm", "상권업종중분류명"),
		CategorySmallName: Field(m, "indsSclsNm", "상권업종소분류명"),
		CategoryCode:      Field(m, "indsLclsCd", "상권업종대분류코드"),
		CategoryMidCode:   Field(m, "indsMclsCd", "상권업종중분류코드"),
		CategorySmallCode: Field(m, "indsSclsCd", "상권업종소분류코드"),
		AddressName:       Field(m, "lnoAdr", "지번주소"),
		RoadAddressName:   Field(m, "rdnmAdr", "도로명주소"),
		BuildingName:      Field(m, "bldNm", "건물명"),
		BuildingNo:        Field(m, "bldMngNo", "건물관리번호"),
		Phone:             Field(m, "telNo", "전화번호"),
		ZipCode:           Field(m, "newZipcd", "신우편번호"),
		X:                 Field(m, "lon", "경도"),
		Y:                 Field(m, "lat", "위도"),
		ProvinceName:      Field(m, "ctprvnNm", "시도명"),
		ProvinceCode:      Field(m, "ctprvnCd", "시도코드"),
		CityName:          Field(m, "signguNm", "시군구명"),
		CityCode:          Field(m, "signguCd", "시군구코드"),
		DongName:          Field(m, "adongNm", "행정동명"),
		DongCode:          Field(m, "adongCd", "행정동코드"),
		LegalDongName:     Field(m, "ldongNm", "법정동명"),
		LegalDongCode:     Field(m, "ldongCd", "법정동코드"),
		Floor:             Field(m, "flrNo", "층정보"),
		Unit:              Field(m, "hoNo", "호정보"),
		IndustryCode:      Field(m, "ksicCd", "표준산업분류코드"),
		IndustryName:      Field(m, "ksicNm", "표준산업분류명"),
	}
}

// Field возвращает первое присутствующее значение из кандидатов, приведённое
// к строке. Отсутствующее значение - пустая строка, null наружу не уходит.
func Field(m map[string]any, keys ...string) string {
	for _, key := range keys {
		v, exists := m[key]
		if !exists || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return ""
}

// Package docs Matjib Backend API.
//
// Бэкенд локального поиска заведений. Проксирует 상가(상권)정보 API портала
// открытых данных Кореи, нормализует ответ к стабильной JSON-схеме и
// предоставляет Naver Blog Search, OAuth-брокеринг Naver/Kakao и
// email-аутентификацию через Supabase.
//
// Основные возможности:
// - Поиск заведений общепита по тексту запроса
// - Классификация ответа портала (JSON / HTML-ошибка / XML-ошибка)
// - Поиск постов в блогах Naver
// - OAuth-брокеринг Naver и Kakao с одноразовым state
// - Вход и регистрация по email через Supabase GoTrue
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

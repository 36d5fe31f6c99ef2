// Package upstream разбирает ответы портала открытых данных.
//
// Портал обещает JSON (resultType=json), но при ошибках конфигурации отдаёт
// HTML-страницу или XML с нестабильной схемой. Классификация выполняется
// сниффингом текста до попытки разбора JSON, иначе диагностика теряется
// вместе с ошибкой парсера.
package upstream

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/matjib/matjib-backend/internal/domain"
)

// MsgInvalidServiceKey - выделенное сообщение для отклонённого сервисного
// ключа. Это самая частая ошибка конфигурации, поэтому она распознаётся
// отдельно от прочих XML-ошибок.
const MsgInvalidServiceKey = "공공데이터 서비스 키가 유효하지 않습니다. 서비스 키 등록 상태를 확인하세요."

// MsgXMLInsteadOfJSON - сообщение по умолчанию, когда XML-ответ не содержит
// ни одного известного тега с текстом ошибки.
const MsgXMLInsteadOfJSON = "공공 API가 JSON 대신 XML을 반환했습니다."

const htmlSnippetLimit = 500

// xmlMessagePatterns - теги, из которых извлекается текст ошибки,
// в порядке приоритета. Первый найденный выигрывает.
var xmlMessagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<message[^>]*>(.*?)</message>`),
	regexp.MustCompile(`(?is)<resultMsg[^>]*>(.*?)</resultMsg>`),
	regexp.MustCompile(`(?is)<returnAuthMsg[^>]*>(.*?)</returnAuthMsg>`),
	regexp.MustCompile(`(?is)<msg[^>]*>(.*?)</msg>`),
	regexp.MustCompile(`(?is)<errorMsg[^>]*>(.*?)</errorMsg>`),
}

var xmlReasonCodePattern = regexp.MustCompile(`(?is)<returnReasonCode[^>]*>(.*?)</returnReasonCode>`)

// xmlRootPattern распознаёт XML без пролога по имени корневого тега
var xmlRootPattern = regexp.MustCompile(`(?is)^<\s*(response|result)[\s>]`)

// Classify размечает сырое тело ответа: JSON, HTML-ошибка или XML-ошибка.
// Ошибка возвращается только для тела, которое не является ни JSON, ни
// распознаваемой разметкой - это отдельный жёсткий сбой разбора, а не один
// из трёх исходов классификации.
func Classify(raw string) (domain.ClassifiedBody, error) {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		return domain.ClassifiedBody{
			Kind:    domain.BodyHTMLError,
			Snippet: truncate(trimmed, htmlSnippetLimit),
		}, nil
	}

	if strings.HasPrefix(trimmed, "<?xml") || xmlRootPattern.MatchString(trimmed) {
		return classifyXML(trimmed), nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		// Похожее на разметку тело переклассифицируется как XML-ошибка,
		// всё остальное - жёсткий сбой разбора.
		if strings.ContainsRune(trimmed, '<') && strings.ContainsRune(trimmed, '>') {
			return domain.ClassifiedBody{
				Kind:    domain.BodyXMLError,
				Message: MsgXMLInsteadOfJSON,
			}, nil
		}
		return domain.ClassifiedBody{}, fmt.Errorf("failed to parse upstream body: %w", err)
	}

	return domain.ClassifiedBody{Kind: domain.BodyJSON, JSON: parsed}, nil
}

func classifyXML(body string) domain.ClassifiedBody {
	var message string
	for _, p := range xmlMessagePatterns {
		if m := p.FindStringSubmatch(body); m != nil {
			message = strings.TrimSpace(m[1])
			break
		}
	}

	var reasonCode string
	if m := xmlReasonCodePattern.FindStringSubmatch(body); m != nil {
		reasonCode = strings.TrimSpace(m[1])
	}

	if IsServiceKeyReason(reasonCode) || IsServiceKeyReason(message) {
		message = MsgInvalidServiceKey
	}
	if message == "" {
		message = MsgXMLInsteadOfJSON
	}

	return domain.ClassifiedBody{
		Kind:       domain.BodyXMLError,
		Message:    message,
		ReasonCode: reasonCode,
	}
}

// IsServiceKeyReason сообщает, указывает ли текст (returnReasonCode или
// извлечённое сообщение) на проблему с сервисным ключом
func IsServiceKeyReason(s string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(s), "SERVICE_KEY") ||
		strings.Contains(s, "인증키")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

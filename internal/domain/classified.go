package domain

// BodyKind - результат классификации сырого тела ответа upstream.
// Портал декларирует resultType=json, но при ошибках отвечает HTML или XML,
// поэтому тело нельзя считать JSON до классификации.
type BodyKind int

const (
	BodyJSON BodyKind = iota
	BodyHTMLError
	BodyXMLError
)

func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyHTMLError:
		return "html_error"
	case BodyXMLError:
		return "xml_error"
	}
	return "unknown"
}

// ClassifiedBody - размеченное тело ответа. Значимые поля зависят от Kind:
// JSON - для BodyJSON, Snippet - для BodyHTMLError,
// Message/ReasonCode - для BodyXMLError.
type ClassifiedBody struct {
	Kind       BodyKind
	JSON       any
	Snippet    string
	Message    string
	ReasonCode string
}

package upstream

import (
	"strings"
	"testing"

	"github.com/matjib/matjib-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		body, err := Classify(`{"body":{"items":{"item":[{"bizesNm":"A"}]}}}`)
		require.NoError(t, err)
		assert.Equal(t, domain.BodyJSON, body.Kind)
		assert.NotNil(t, body.JSON)
	})

	t.Run("html error page with doctype", func(t *testing.T) {
		raw := "<!DOCTYPE html><html><head><title>OpenAPI_ServiceResponse</title></head><body>" +
			strings.Repeat("에러 ", 400) + "</body></html>"

		body, err := Classify(raw)
		require.NoError(t, err)
		assert.Equal(t, domain.BodyHTMLError, body.Kind)
		assert.LessOrEqual(t, len([]rune(body.Snippet)), 500)
	})

	t.Run("html error page without doctype", func(t *testing.T) {
		body, err := Classify(`<html><body>Service Error</body></html>`)
		require.NoError(t, err)
		assert.Equal(t, domain.BodyHTMLError, body.Kind)
		assert.Contains(t, body.Snippet, "Service Error")
	})

	t.Run("xml with service key reason code", func(t *testing.T) {
		raw := `<?xml version="1.0" encoding="UTF-8"?>
<OpenAPI_ServiceResponse>
	<cmmMsgHeader>
		<errMsg>SERVICE ERROR</errMsg>
		<returnAuthMsg>SERVICE_KEY_IS_NOT_REGISTERED_ERROR</returnAuthMsg>
		<returnReasonCode>30</returnReasonCode>
	</cmmMsgHeader>
</OpenAPI_ServiceResponse>`

		body, err := Classify(raw)
		require.NoError(t, err)
		assert.Equal(t, domain.BodyXMLError, body.Kind)
		assert.Equal(t, MsgInvalidServiceKey, body.Message)
		assert.Equal(t, "30", body.ReasonCode)
	})

	t.Run("xml message tag priority", func(t *testing.T) {
		raw := `<?xml version="1.0"?>
<response>
	<resultMsg>NODATA_ERROR</resultMsg>
	<message>상위 태그가 우선합니다</message>
</response>`

		body, err := Classify(raw)
		require.NoError(t, err)
		assert.Equal(t, domain.BodyXMLError, body.Kind)
		assert.Equal(t, "상위 태그가 우선합니다", body.Message)
	})

	t.Run("xml without prolog by root tag", func(t *testing.T) {
		body, err := Classify(`<response><resultMsg>WRONG_PARAM</resultMsg></response>`)
		require.NoError(t, err)
		assert.Equal(t, domain.BodyXMLError, body.Kind)
		assert.Equal(t, "WRONG_PARAM", body.Message)
	})

	t.Run("xml without any known message tag", func(t *testing.T) {
		body, err := Classify(`<?xml version="1.0"?><unknown><foo>bar</foo></unknown>`)
		require.NoError(t, err)
		assert.Equal(t, domain.BodyXMLError, body.Kind)
		assert.Equal(t, MsgXMLInsteadOfJSON, body.Message)
	})

	t.Run("non json with angle brackets reclassified as xml error", func(t *testing.T) {
		body, err := Classify(`garbage <tag> not json`)
		require.NoError(t, err)
		assert.Equal(t, domain.BodyXMLError, body.Kind)
		assert.Equal(t, MsgXMLInsteadOfJSON, body.Message)
	})

	t.Run("plain garbage is a hard parse error", func(t *testing.T) {
		_, err := Classify(`definitely not json at all`)
		require.Error(t, err)
	})
}

func TestIsServiceKeyReason(t *testing.T) {
	assert.True(t, IsServiceKeyReason("SERVICE_KEY_IS_NOT_REGISTERED_ERROR"))
	assert.True(t, IsServiceKeyReason("service_key rejected"))
	assert.True(t, IsServiceKeyReason("등록되지 않은 인증키 입니다"))
	assert.False(t, IsServiceKeyReason("NODATA_ERROR"))
	assert.False(t, IsServiceKeyReason(""))
}

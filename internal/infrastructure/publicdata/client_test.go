package publicdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matjib/matjib-backend/internal/config"
	"github.com/matjib/matjib-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *client {
	logger, _ := zap.NewDevelopment()
	cfg := &config.PublicDataConfig{
		BaseURL:       baseURL,
		ServiceKey:    "test_key",
		RegionTimeout: 5 * time.Second,
		SearchTimeout: 10 * time.Second,
	}
	return NewClient(cfg, logger).(*client)
}

func TestClient_LookupRegion(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/baroApi", r.URL.Path)
			assert.Equal(t, "test_key", r.URL.Query().Get("serviceKey"))
			assert.Equal(t, "역삼동", r.URL.Query().Get("key"))
			assert.Equal(t, "json", r.URL.Query().Get("resultType"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"body":{"items":[{"adongCd":"1168064000","adongNm":"역삼1동"}],"totalCount":1}}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		match := c.LookupRegion(context.Background(), "역삼동")
		assert.Equal(t, "1168064000", match.Code)
		assert.Equal(t, "역삼1동", match.Name)
	})

	t.Run("korean field names", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items":[{"행정동코드":"1144066000","행정동명":"서교동"}]}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		match := c.LookupRegion(context.Background(), "서교동")
		assert.Equal(t, "1144066000", match.Code)
		assert.Equal(t, "서교동", match.Name)
	})

	t.Run("no match degrades to empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"body":{"items":null,"totalCount":0}}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		match := c.LookupRegion(context.Background(), "없는동네")
		assert.True(t, match.IsEmpty())
	})

	t.Run("non json body degrades to empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<?xml version="1.0"?><response></response>`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		match := c.LookupRegion(context.Background(), "역삼동")
		assert.True(t, match.IsEmpty())
	})

	t.Run("server error degrades to empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		match := c.LookupRegion(context.Background(), "역삼동")
		assert.True(t, match.IsEmpty())
	})

	t.Run("unreachable server degrades to empty", func(t *testing.T) {
		c := newTestClient("http://127.0.0.1:1")

		match := c.LookupRegion(context.Background(), "역삼동")
		assert.True(t, match.IsEmpty())
	})
}

func TestClient_FetchStores(t *testing.T) {
	t.Run("region code endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/storeListInDong", r.URL.Path)
			assert.Equal(t, "adongCd", r.URL.Query().Get("divId"))
			assert.Equal(t, "1168064000", r.URL.Query().Get("key"))
			assert.Equal(t, "I", r.URL.Query().Get("indsLclsCd"))
			assert.Equal(t, "10", r.URL.Query().Get("numOfRows"))
			assert.Equal(t, "2", r.URL.Query().Get("pageNo"))

			w.Write([]byte(`{"body":{"items":[],"totalCount":0}}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		body, reqURL, err := c.FetchStores(context.Background(), domain.EndpointSelection{
			Kind:       domain.EndpointByRegionCode,
			RegionCode: "1168064000",
		}, 10, 2)
		require.NoError(t, err)
		assert.Contains(t, body, "totalCount")
		assert.Contains(t, reqURL, "/storeListInDong")
	})

	t.Run("region name endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/storeListInArea", r.URL.Path)
			assert.Equal(t, "성수동", r.URL.Query().Get("key"))

			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, _, err := c.FetchStores(context.Background(), domain.EndpointSelection{
			Kind:       domain.EndpointByRegionName,
			RegionName: "성수동",
		}, 10, 1)
		require.NoError(t, err)
	})

	t.Run("category endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/storeListInUpjong", r.URL.Path)
			assert.Equal(t, "indsLclsCd", r.URL.Query().Get("divId"))
			assert.Equal(t, "I", r.URL.Query().Get("key"))

			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, _, err := c.FetchStores(context.Background(), domain.EndpointSelection{
			Kind: domain.EndpointByCategory,
		}, 10, 1)
		require.NoError(t, err)
	})

	t.Run("radius endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/storeListInRadius", r.URL.Path)
			assert.Equal(t, "127.0276", r.URL.Query().Get("cx"))
			assert.Equal(t, "37.4979", r.URL.Query().Get("cy"))
			assert.Equal(t, "500", r.URL.Query().Get("radius"))

			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, _, err := c.FetchStores(context.Background(), domain.EndpointSelection{
			Kind:         domain.EndpointByRadius,
			CenterLon:    127.0276,
			CenterLat:    37.4979,
			RadiusMeters: 500,
		}, 10, 1)
		require.NoError(t, err)
	})

	t.Run("non json body is returned for classification", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`<response><resultMsg>SERVICE ACCESS DENIED ERROR</resultMsg></response>`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		body, _, err := c.FetchStores(context.Background(), domain.EndpointSelection{
			Kind: domain.EndpointByCategory,
		}, 10, 1)
		require.NoError(t, err)
		assert.Contains(t, body, "SERVICE ACCESS DENIED ERROR")
	})

	t.Run("server error fails fast", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, reqURL, err := c.FetchStores(context.Background(), domain.EndpointSelection{
			Kind: domain.EndpointByCategory,
		}, 10, 1)
		require.Error(t, err)
		assert.Contains(t, reqURL, "/storeListInUpjong")
	})
}

func TestClient_FetchRegions(t *testing.T) {
	t.Run("passthrough body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/baroApi", r.URL.Path)
			assert.Equal(t, "5", r.URL.Query().Get("numOfRows"))

			w.Write([]byte(`{"body":{"items":[{"adongCd":"1"}],"totalCount":1}}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		body, _, err := c.FetchRegions(context.Background(), "역삼동", 5, 1)
		require.NoError(t, err)
		assert.Contains(t, body, "adongCd")
	})
}

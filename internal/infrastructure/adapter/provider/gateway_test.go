package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnvelope() *entity.Envelope {
	return &entity.Envelope{
		Version: entity.ProtocolVersion,
		Result: &entity.Result{
			UUID:      "uuid-1",
			Method:    entity.MethodDeposit,
			Signature: "c2ln",
			Data: entity.DepositRequestData{
				Username:  "merchant-test",
				MessageID: "ref-1",
			},
		},
	}
}

func newTestGateway(url string) *Gateway {
	return NewGateway(url, 2*time.Second, 5*time.Second, logger.NewNoopLogger())
}

func TestGatewayDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful response is parsed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var received entity.Envelope
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			require.NotNil(t, received.Result)
			assert.Equal(t, "uuid-1", received.Result.UUID)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"version": "1.1",
				"result": {
					"uuid": "uuid-1",
					"method": "Deposit",
					"signature": "cHJvdmlkZXJzaWc=",
					"data": {"orderId": "order-42", "url": "https://pay.example/order-42"}
				}
			}`))
		}))
		defer server.Close()

		result, err := newTestGateway(server.URL).Deposit(ctx, testEnvelope())

		require.NoError(t, err)
		assert.Equal(t, "order-42", result.Data.OrderID)
		assert.Equal(t, "https://pay.example/order-42", result.Data.URL)
		assert.Equal(t, "uuid-1", result.UUID)
		assert.Equal(t, entity.MethodDeposit, result.Method)
		assert.Equal(t, "cHJvdmlkZXJzaWc=", result.Signature)
	})

	t.Run("Unreachable provider classifies as unavailable", func(t *testing.T) {
		// Port 1 is never listening
		gateway := newTestGateway("http://127.0.0.1:1/v1/deposits")

		_, err := gateway.Deposit(ctx, testEnvelope())

		require.Error(t, err)
		assert.Equal(t, errs.CodeProviderUnavailable, errs.Code(err))
		assert.True(t, errs.IsProviderUnavailableError(err))
	})

	t.Run("503 classifies as unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).Deposit(ctx, testEnvelope())

		require.Error(t, err)
		assert.Equal(t, errs.CodeProviderUnavailable, errs.Code(err))
	})

	t.Run("504 classifies as unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGatewayTimeout)
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).Deposit(ctx, testEnvelope())

		require.Error(t, err)
		assert.Equal(t, errs.CodeProviderUnavailable, errs.Code(err))
	})

	t.Run("2xx without order id is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"version": "1.1",
				"result": {
					"uuid": "uuid-1",
					"method": "Deposit",
					"signature": "cHJvdmlkZXJzaWc=",
					"data": {"url": "https://pay.example/order-42"}
				}
			}`))
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).Deposit(ctx, testEnvelope())

		require.Error(t, err)
		assert.Equal(t, errs.CodeInvalidResponse, errs.Code(err))
	})

	t.Run("2xx without redirect URL is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"version": "1.1",
				"result": {
					"uuid": "uuid-1",
					"method": "Deposit",
					"signature": "cHJvdmlkZXJzaWc=",
					"data": {"orderId": "order-42"}
				}
			}`))
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).Deposit(ctx, testEnvelope())

		require.Error(t, err)
		assert.Equal(t, errs.CodeInvalidResponse, errs.Code(err))
	})

	t.Run("2xx with unparseable body is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("this is not json"))
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).Deposit(ctx, testEnvelope())

		require.Error(t, err)
		assert.Equal(t, errs.CodeInvalidResponse, errs.Code(err))
	})

	t.Run("Provider error envelope surfaces its code and status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{
				"version": "1.1",
				"error": {
					"name": "JSONRPCError",
					"code": "1002",
					"message": "Username is missing in the deposit request",
					"error": {
						"uuid": "uuid-1",
						"method": "Deposit",
						"signature": "c2ln",
						"data": {"code": "1002", "message": "Username is missing in the deposit request"}
					}
				}
			}`))
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).Deposit(ctx, testEnvelope())

		require.Error(t, err)
		assert.Equal(t, "1002", errs.Code(err))
		assert.Equal(t, "Username is missing in the deposit request", errs.Message(err))
		assert.Equal(t, http.StatusBadRequest, errs.HTTPStatus(err))
	})

	t.Run("Unparseable error body is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>Internal Server Error</html>"))
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).Deposit(ctx, testEnvelope())

		require.Error(t, err)
		assert.Equal(t, errs.CodeInvalidResponse, errs.Code(err))
	})

	t.Run("Cancelled context classifies as unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		}))
		defer server.Close()

		cancelledCtx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestGateway(server.URL).Deposit(cancelledCtx, testEnvelope())

		require.Error(t, err)
		assert.Equal(t, errs.CodeProviderUnavailable, errs.Code(err))
	})
}

package provider

import (
	"context"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
)

// DepositGateway executes a signed deposit request against the provider and
// classifies the outcome:
//   - 2xx with a complete result (order id and redirect URL) parses into
//     DepositResponseData
//   - 2xx missing either field is an invalid-response error (code 20002)
//   - 4xx/5xx with a parseable error envelope surfaces the provider's own
//     code and message, preserving the HTTP status
//   - 503/504 and any transport failure normalize to provider-unavailable
//     (code 20001)
//
// The gateway performs no retries; retry policy belongs to the caller.
type DepositGateway interface {
	Deposit(ctx context.Context, envelope *entity.Envelope) (*entity.DepositResult, error)
}

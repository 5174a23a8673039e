package validation

import (
	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
)

// Validator is a single named business check over a payment request
type Validator interface {
	// Name returns the configured rule name this validator answers to
	Name() string
	// Validate returns a ValidationError when the request is rejected
	Validate(request *entity.PaymentRequest) error
}

// Registry is an immutable mapping from rule name to validator instance,
// built once at startup and passed into the pipeline by reference
type Registry map[string]Validator

// NewRegistry builds the registry of all known validators
func NewRegistry() Registry {
	registry := Registry{}
	for _, validator := range []Validator{
		NewCustomerIDValidator(),
		NewMobileNumberValidator(),
	} {
		registry[validator.Name()] = validator
	}
	return registry
}

// Pipeline applies an ordered, configured chain of validators to inbound
// payment requests. The first validator that rejects aborts the chain.
type Pipeline struct {
	rules    []string
	registry Registry
	logger   coreport.Logger
}

// NewPipeline creates a pipeline over the configured rule names
func NewPipeline(rules []string, registry Registry, logger coreport.Logger) *Pipeline {
	return &Pipeline{
		rules:    rules,
		registry: registry,
		logger:   logger,
	}
}

// Run applies the configured validators in order. A rule name that does not
// resolve is logged and skipped so configuration drift never crashes request
// processing. The first validation error is returned as-is (fail-fast).
func (p *Pipeline) Run(request *entity.PaymentRequest) error {
	for _, rule := range p.rules {
		validator, ok := p.registry[rule]
		if !ok {
			p.logger.Warn("Validator not found for rule, skipping", map[string]any{
				"rule": rule,
			})
			continue
		}

		p.logger.Debug("Applying validation rule", map[string]any{
			"rule": rule,
		})

		if err := validator.Validate(request); err != nil {
			p.logger.Error("Validation rule rejected payment request", map[string]any{
				"rule":  rule,
				"error": err.Error(),
			})
			return err
		}
	}

	return nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shopkit-io/shopkit-api/internal/repository"
	"github.com/shopkit-io/shopkit-api/internal/validation"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
)

// Operation identifies the kind of mutation a request performs.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Caller is the authenticated identity for one request, produced once by
// the identity layer and threaded explicitly. An empty UserID means
// anonymous.
type Caller struct {
	UserID string
}

// Anonymous reports whether no caller identity was resolved.
func (c Caller) Anonymous() bool { return c.UserID == "" }

// Request is the raw, untrusted input to one pipeline run.
type Request struct {
	Operation Operation
	Resource  string
	Payload   json.RawMessage
}

// TenantScoped is implemented by validated payloads that carry the shop
// they operate on. Ownership always acts on the validated tenant id.
type TenantScoped interface {
	Tenant() string
}

// Schema parses an untyped payload into a typed, constrained value.
// Parsing is pure: no I/O, and every failing field is reported in a
// single pass.
type Schema[P TenantScoped] struct {
	validate *validator.Validate
	check    func(P) []appErrors.FieldError
}

// NewSchema builds a schema around the shared validator. check runs after
// structural validation and catches semantic problems that well-shaped
// input can still have, e.g. a name that is blank after trimming. It may
// be nil.
func NewSchema[P TenantScoped](v *validator.Validate, check func(P) []appErrors.FieldError) *Schema[P] {
	if v == nil {
		v = validation.New()
	}
	return &Schema[P]{validate: v, check: check}
}

// Parse decodes and structurally validates raw input.
func (s *Schema[P]) Parse(raw json.RawMessage) (P, []appErrors.FieldError) {
	var payload P
	if len(raw) == 0 {
		return payload, []appErrors.FieldError{{Field: "payload", Rule: "required", Message: "request body is required"}}
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, []appErrors.FieldError{{Field: "payload", Rule: "json", Message: "request body is not valid JSON"}}
	}
	if err := s.validate.Struct(payload); err != nil {
		return payload, validation.FieldErrors(err)
	}
	return payload, nil
}

// OwnershipFunc answers whether userID is the registered owner of shopID.
// It must re-read current ownership state on every call; a shop that does
// not exist reads as "not owner", never as an error.
type OwnershipFunc func(ctx context.Context, shopID, userID string) (bool, error)

// MutateFunc executes the store mutation for a validated payload.
type MutateFunc[P TenantScoped, T any] func(ctx context.Context, payload P, userID string) (T, error)

// Observer receives pipeline outcomes for instrumentation.
type Observer interface {
	ObservePipeline(resource string, operation string, outcome string)
}

// Pipeline sequences authenticate, validate, authorize and mutate into
// one request-handling contract shared by every mutating endpoint.
type Pipeline struct {
	logger          *zap.Logger
	observer        Observer
	forbiddenStatus int
}

// Option customises pipeline behaviour.
type Option func(*Pipeline)

// WithLegacyForbidden401 restores the original wire contract that
// answered 401 for authenticated callers that do not own the shop.
func WithLegacyForbidden401() Option {
	return func(p *Pipeline) { p.forbiddenStatus = appErrors.ErrUnauthenticated.Status }
}

// WithObserver wires outcome instrumentation.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// New constructs a pipeline.
func New(logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{logger: logger, forbiddenStatus: appErrors.ErrForbidden.Status}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one mutation through the fixed sequence. Steps are
// strictly ordered and short-circuit on the first failure:
//
//  1. anonymous callers are rejected before anything else runs
//  2. the payload is decoded and structurally validated
//  3. semantic checks run on the validated value
//  4. ownership of the validated tenant id is verified against the store
//  5. the mutation executes; store failures map to typed errors
//
// An invalid payload never triggers an ownership lookup, and the executor
// never sees a payload that has not passed steps 2-3.
func Run[P TenantScoped, T any](
	ctx context.Context,
	p *Pipeline,
	caller Caller,
	req Request,
	schema *Schema[P],
	isOwner OwnershipFunc,
	mutate MutateFunc[P, T],
) (T, error) {
	var zero T

	if caller.Anonymous() {
		return zero, p.fail(req, appErrors.ErrUnauthenticated)
	}

	payload, fieldErrs := schema.Parse(req.Payload)
	if len(fieldErrs) == 0 && schema.check != nil {
		fieldErrs = schema.check(payload)
	}
	if len(fieldErrs) > 0 {
		return zero, p.fail(req, appErrors.WithDetails(appErrors.ErrValidation, fieldErrs))
	}

	allowed, err := isOwner(ctx, payload.Tenant(), caller.UserID)
	if err != nil {
		p.logger.Error("ownership check failed",
			zap.String("resource", req.Resource),
			zap.String("operation", string(req.Operation)),
			zap.Error(err),
		)
		return zero, p.fail(req, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "could not verify shop ownership"))
	}
	if !allowed {
		return zero, p.fail(req, appErrors.WithStatus(appErrors.ErrForbidden, p.forbiddenStatus))
	}

	// Once the mutation starts it runs to completion even if the client
	// goes away, so the store is never left in an ambiguous state.
	entity, err := mutate(context.WithoutCancel(ctx), payload, caller.UserID)
	if err != nil {
		return zero, p.fail(req, p.mapStoreError(req, err))
	}

	p.observe(req, "ok")
	return entity, nil
}

func (p *Pipeline) mapStoreError(req Request, err error) *appErrors.Error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, req.Resource+" not found")
	case errors.Is(err, repository.ErrConflict):
		return appErrors.Clone(appErrors.ErrConflict, req.Resource+" conflicts with an existing entry")
	case errors.Is(err, repository.ErrUnavailable):
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	p.logger.Error("mutation failed",
		zap.String("resource", req.Resource),
		zap.String("operation", string(req.Operation)),
		zap.Error(err),
	)
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "mutation failed")
}

func (p *Pipeline) fail(req Request, err *appErrors.Error) *appErrors.Error {
	p.observe(req, outcomeLabel(err))
	return err
}

func (p *Pipeline) observe(req Request, outcome string) {
	if p.observer == nil {
		return
	}
	p.observer.ObservePipeline(req.Resource, string(req.Operation), outcome)
}

func outcomeLabel(err *appErrors.Error) string {
	switch err.Code {
	case appErrors.ErrUnauthenticated.Code:
		return "unauthenticated"
	case appErrors.ErrValidation.Code:
		return "invalid_input"
	case appErrors.ErrForbidden.Code:
		return "forbidden"
	case appErrors.ErrNotFound.Code:
		return "not_found"
	case appErrors.ErrConflict.Code:
		return "conflict"
	default:
		return "store_failure"
	}
}

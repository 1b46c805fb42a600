package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"building-portal/internal/event"
	"building-portal/internal/model"
	"building-portal/pkg/apierror"
)

const (
	SessionIDHeader    = "session-id"
	SessionTokenHeader = "session-token"
)

// HandlerFunc is a route handler that reports failure as an error instead
// of writing error responses itself. The pipeline's root wrapper is the
// only place an error becomes an HTTP response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Decorator wraps a handler with one cross-cutting behavior.
type Decorator func(HandlerFunc) HandlerFunc

// Chain applies decorators so the first listed is outermost: it runs first
// on the way in and last on the way out.
func Chain(h HandlerFunc, decorators ...Decorator) HandlerFunc {
	for i := len(decorators) - 1; i >= 0; i-- {
		h = decorators[i](h)
	}
	return h
}

// Pipeline builds route handlers. The development flag controls how much
// detail error translation exposes.
type Pipeline struct {
	development bool
}

func NewPipeline(development bool) *Pipeline {
	return &Pipeline{development: development}
}

// Wrap composes the decorators around h and converts any remaining error
// into the uniform JSON envelope. Nothing inside the chain writes an error
// response; everything propagates here.
func (p *Pipeline) Wrap(h HandlerFunc, decorators ...Decorator) http.HandlerFunc {
	composed := Chain(h, decorators...)

	return func(w http.ResponseWriter, r *http.Request) {
		if err := composed(w, r); err != nil {
			status, body := apierror.Translate(err, p.development)
			writeEnvelope(w, status, model.APIResponse{Success: false, Error: &body})
		}
	}
}

type sessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string, token string) (model.Session, error)
}

// RequireSession validates the two-secret header pair before delegating.
// On success the session snapshot is attached to the request context and
// the log context is enriched with the actor.
func RequireSession(validator sessionValidator) Decorator {
	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			sessionID := strings.TrimSpace(r.Header.Get(SessionIDHeader))
			token := strings.TrimSpace(r.Header.Get(SessionTokenHeader))

			session, err := validator.ValidateSession(r.Context(), sessionID, token)
			if err != nil {
				return err
			}

			RequestLogFrom(r.Context()).SetActor(session.UserID, session.Username, session.SessionID)

			return next(w, r.WithContext(withSession(r.Context(), session)))
		}
	}
}

// AllowMethods rejects any method outside the allowed set before
// delegating.
func AllowMethods(methods ...string) Decorator {
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[strings.ToUpper(m)] = struct{}{}
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			if _, ok := allowed[r.Method]; !ok {
				return apierror.MethodNotAllowed(r.Method)
			}
			return next(w, r)
		}
	}
}

// Audit publishes one mutation event after the inner handler succeeds on a
// mutating method. Read requests and failed mutations produce nothing.
func Audit(bus event.Bus, resource string) Decorator {
	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			if err := next(w, r); err != nil {
				return err
			}

			var verb string
			switch r.Method {
			case http.MethodPost:
				verb = "created"
			case http.MethodPut:
				verb = "updated"
			case http.MethodDelete:
				verb = "deleted"
			default:
				return nil
			}

			lc := RequestLogFrom(r.Context()).Snapshot()
			bus.Publish(event.Event{
				ID:            uuid.NewString(),
				Type:          event.Type(resource + "." + verb),
				Resource:      resource,
				RequestID:     lc.RequestID,
				ActorUserID:   lc.UserID,
				ActorUsername: lc.Username,
				Timestamp:     time.Now().UTC(),
			})
			return nil
		}
	}
}

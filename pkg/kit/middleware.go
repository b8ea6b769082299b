package kit

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

// HandlerFunc is a route handler that reports failure by returning an error
// instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

type Stage func(HandlerFunc) HandlerFunc

// Pipeline applies the fixed stage order to every route:
// request id, error handling, timing, handler. Observers run between error
// handling and timing and must pass errors through unchanged.
type Pipeline struct {
	log       *zap.Logger
	observers []Stage
}

func NewPipeline(log *zap.Logger, observers ...Stage) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log, observers: observers}
}

func (p *Pipeline) Handle(h HandlerFunc) http.Handler {
	h = Timing(p.log)(h)
	for i := len(p.observers) - 1; i >= 0; i-- {
		h = p.observers[i](h)
	}
	return RequestID(HandleErrors(p.log, h))
}

func (p *Pipeline) HandleFunc(h HandlerFunc) http.HandlerFunc {
	return p.Handle(h).ServeHTTP
}

// Recoverer guards routes that do not go through a Pipeline.
func Recoverer(next http.Handler) http.Handler {
	return middleware.Recoverer(next)
}

// HandleErrors is the single place where failures become response bodies.
// Domain errors are logged at warn, anything else at error with a generic
// message. Nothing is written if the response has already started.
func HandleErrors(log *zap.Logger, next HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqID string
		reqID, r = ResolveRequestID(w, r)
		ww := wrapWriter(w, r)

		err := invoke(next, ww, r)
		if err == nil {
			return
		}

		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		}

		de, domain := AsError(err)
		if domain {
			log.Warn("domain error", append(fields, zap.String("code", de.Code()))...)
		} else {
			if pe, ok := err.(*panicError); ok {
				fields = append(fields, zap.ByteString("stack", pe.stack))
			}
			log.Error("unhandled error", fields...)
		}

		if ww.Status() != 0 {
			return
		}

		if domain {
			WriteError(ww, r, de.Status(), de.Code(), de.Message)
			return
		}
		WriteError(ww, r, http.StatusInternalServerError, KindInternal.Code(), internalErrorMessage)
	})
}

// Timing logs exactly one record per request on every exit path of next,
// including panics, which are turned into returned errors.
func Timing(log *zap.Logger) Stage {
	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) (err error) {
			start := time.Now()
			ww := wrapWriter(w, r)

			defer func() {
				if rec := recover(); rec != nil {
					err = recovered(rec)
				}
				log.Info("request",
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", resultStatus(ww, err)),
					zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				)
			}()

			return next(ww, r)
		}
	}
}

func invoke(h HandlerFunc, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = recovered(rec)
		}
	}()
	return h(w, r)
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }

func recovered(rec any) error {
	if rec == http.ErrAbortHandler {
		panic(rec)
	}
	return &panicError{value: rec, stack: debug.Stack()}
}

func wrapWriter(w http.ResponseWriter, r *http.Request) middleware.WrapResponseWriter {
	if ww, ok := w.(middleware.WrapResponseWriter); ok {
		return ww
	}
	return middleware.NewWrapResponseWriter(w, r.ProtoMajor)
}

func resultStatus(ww middleware.WrapResponseWriter, err error) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	if err != nil {
		return StatusOf(err)
	}
	return http.StatusOK
}

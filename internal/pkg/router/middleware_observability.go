package router

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/otpbridge/internal/pkg/config"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const maxLoggedBodyBytes = 32 * 1024 // 32KB

var errHijackNotSupported = errors.New("router: hijack not supported")

type statusRecorder struct {
	http.ResponseWriter
	status   int
	bytes    int
	body     bytes.Buffer
	capped   bool
	hijacked bool
	err      error
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if remaining := maxLoggedBodyBytes - w.body.Len(); remaining > 0 {
		w.body.Write(p[:min(len(p), remaining)])
		w.capped = w.capped || len(p) > remaining
	} else if len(p) > 0 {
		w.capped = true
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// SetError lets the endpoint adapter attach the handler error to the span.
func (w *statusRecorder) SetError(err error) {
	w.err = err
}

func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack is required by the websocket upgrader.
func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errHijackNotSupported
	}
	w.hijacked = true
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (w *statusRecorder) loggedBody(maskKeys map[string]struct{}) any {
	if w.body.Len() == 0 {
		return nil
	}

	var body any = "<binary body omitted>"
	var doc any
	if err := json.Unmarshal(w.body.Bytes(), &doc); err == nil {
		body = instrument.Mask(doc, maskKeys)
	} else if utf8.Valid(w.body.Bytes()) {
		body = w.body.String()
	}

	if w.capped {
		return map[string]any{"body": body, "truncated": true}
	}
	return body
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// readRequestBody peeks at most maxLoggedBodyBytes of the body and restores it for the handler.
func readRequestBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	//nolint:errcheck // best effort for logging only
	peek, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(peek), r.Body), r.Body}

	return peek
}

func loggedRequestBody(body []byte, maskKeys map[string]struct{}) any {
	if len(body) == 0 {
		return nil
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err == nil {
		return instrument.Mask(doc, maskKeys)
	}
	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	return string(body)
}

func maskHeaders(headers http.Header, maskKeys map[string]struct{}) any {
	flat := make(map[string]string, len(headers))
	for k := range headers {
		flat[k] = headers.Get(k)
	}
	return instrument.Mask(flat, maskKeys)
}

func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	var maskFields []string
	if cfg != nil {
		maskFields = cfg.GetArray("instrument.log_mask_fields")
	}
	maskKeys := instrument.MaskKeys(append(maskFields, "authorization", "cookie"))

	tracer := ins.Tracer("http.server")
	meter := ins.Meter("http.server")

	requestCounter, err := meter.Int64Counter("http.server.requests", metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}

	durationHistogram, err := meter.Float64Histogram("http.server.duration", metric.WithDescription("HTTP request duration in milliseconds"))
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			start := time.Now()

			ctx, span := tracer.Start(r.Context(), r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRouteKey.String(route),
				),
			)
			defer span.End()

			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"remote_addr", r.RemoteAddr,
				"headers", maskHeaders(r.Header, maskKeys),
				"body", loggedRequestBody(readRequestBody(r), maskKeys),
			)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(status),
			}

			if rec.err != nil {
				span.RecordError(rec.err)
			}
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			} else {
				span.SetStatus(codes.Ok, "")
			}

			span.SetAttributes(append(attrs,
				semconv.NetworkProtocolVersionKey.String(r.Proto),
				semconv.ServerAddressKey.String(r.Host),
				attribute.String("http.user_agent", r.UserAgent()),
				attribute.Int("http.response_content_length", rec.bytes),
			)...)
			if requestCounter != nil {
				requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
			}
			if durationHistogram != nil {
				durationHistogram.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributes(attrs...))
			}

			slog.InfoContext(ctx, "response sent",
				"method", r.Method,
				"path", route,
				"status", status,
				"bytes", rec.bytes,
				"hijacked", rec.hijacked,
				"latency_ms", elapsed.Milliseconds(),
				"body", rec.loggedBody(maskKeys),
			)
		})
	}
}

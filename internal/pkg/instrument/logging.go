package instrument

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// LogKeyCorrelationID is the attribute added to every record logged with a
// context carrying a correlation id.
const LogKeyCorrelationID = "_cID"

func initLogging(serviceName, level string, lp *sdklog.LoggerProvider, maskFields []string) {
	handlers := []slog.Handler{newJSONHandler(os.Stdout, parseLevel(level))}
	if lp != nil {
		handlers = append(handlers, otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(lp)))
	}

	slog.SetDefault(slog.New(newHandler(serviceName, maskFields, handlers...)))
}

func newHandler(serviceName string, maskFields []string, handlers ...slog.Handler) slog.Handler {
	var handler slog.Handler = &multiHandler{handlers: handlers}
	if len(handlers) == 1 {
		handler = handlers[0]
	}

	return &contextHandler{
		Handler:     &maskHandler{Handler: handler, keys: MaskKeys(maskFields)},
		serviceName: serviceName,
	}
}

func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.LevelKey:
				a.Key = "severity"
			case slog.SourceKey:
				src, ok := a.Value.Any().(*slog.Source)
				if !ok || !strings.Contains(src.File, "/internal/") {
					return slog.Attr{}
				}
				rel := filepath.Join("internal", strings.SplitAfterN(src.File, "/internal/", 2)[1])
				return slog.String("file", fmt.Sprintf("%s:%d", rel, src.Line))
			}
			return a
		},
	})
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}

	return lvl
}

type contextHandler struct {
	slog.Handler
	serviceName string
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if cID := GetCorrelationID(ctx); cID != "" {
		r.AddAttrs(slog.String(LogKeyCorrelationID, cID))
	}
	if h.serviceName != "" {
		r.AddAttrs(slog.String("service", h.serviceName))
	}

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), serviceName: h.serviceName}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), serviceName: h.serviceName}
}

type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &multiHandler{handlers: mapHandlers(m.handlers, func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	return &multiHandler{handlers: mapHandlers(m.handlers, func(h slog.Handler) slog.Handler { return h.WithGroup(name) })}
}

func mapHandlers(in []slog.Handler, fn func(slog.Handler) slog.Handler) []slog.Handler {
	out := make([]slog.Handler, 0, len(in))
	for _, h := range in {
		out = append(out, fn(h))
	}
	return out
}

// maskHandler hides sensitive attribute values, including members of JSON
// payloads logged as strings or bytes.
type maskHandler struct {
	slog.Handler
	keys map[string]struct{}
}

func (h *maskHandler) Handle(ctx context.Context, record slog.Record) error {
	if len(h.keys) == 0 {
		return h.Handler.Handle(ctx, record)
	}

	masked := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(attr))
		return true
	})

	return h.Handler.Handle(ctx, masked)
}

func (h *maskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		masked = append(masked, h.maskAttr(a))
	}
	return &maskHandler{Handler: h.Handler.WithAttrs(masked), keys: h.keys}
}

func (h *maskHandler) WithGroup(name string) slog.Handler {
	return &maskHandler{Handler: h.Handler.WithGroup(name), keys: h.keys}
}

func (h *maskHandler) maskAttr(attr slog.Attr) slog.Attr {
	if isMasked(attr.Key, h.keys) {
		return slog.String(attr.Key, maskedValue)
	}

	switch attr.Value.Kind() {
	case slog.KindGroup:
		group := attr.Value.Group()
		masked := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			masked = append(masked, h.maskAttr(ga))
		}
		attr.Value = slog.GroupValue(masked...)
	case slog.KindString:
		if out, ok := MaskJSON([]byte(attr.Value.String()), h.keys); ok {
			attr.Value = slog.StringValue(out)
		}
	case slog.KindAny:
		switch val := attr.Value.Any().(type) {
		case []byte:
			if out, ok := MaskJSON(val, h.keys); ok {
				attr.Value = slog.StringValue(out)
			}
		case map[string]any, map[string]string, []any:
			attr.Value = slog.AnyValue(Mask(val, h.keys))
		}
	}

	return attr
}

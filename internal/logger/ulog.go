package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fhuszti/resizer-ms-go/internal/api_context"
)

const service = "resizer-ms"

var std *slog.Logger

// requestHandler stamps each record with who is calling and which session the
// request works on. Records outside a request carry uid=system.
type requestHandler struct{ next slog.Handler }

func (h requestHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

func (h requestHandler) Handle(ctx context.Context, r slog.Record) error {
	uid, ok := api_context.AuthUserIDFromContext(ctx)
	if !ok {
		uid = "system"
	}
	r.AddAttrs(slog.String("uid", uid))
	if id, ok := api_context.SessionIDFromContext(ctx); ok {
		r.AddAttrs(slog.String("session", id.String()))
	}
	return h.next.Handle(ctx, r)
}

func (h requestHandler) WithAttrs(a []slog.Attr) slog.Handler {
	return requestHandler{next: h.next.WithAttrs(a)}
}

func (h requestHandler) WithGroup(name string) slog.Handler {
	return requestHandler{next: h.next.WithGroup(name)}
}

// options is what Init reads from LOG_FORMAT (json|text), LOG_LEVEL
// (debug|info|warn|error) and LOG_SOURCE (bool).
type options struct {
	text   bool
	level  slog.Level
	source bool
}

func optionsFromEnv() options {
	o := options{level: slog.LevelInfo}
	o.text = strings.EqualFold(os.Getenv("LOG_FORMAT"), "text")
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		o.level = slog.LevelDebug
	case "warn", "warning":
		o.level = slog.LevelWarn
	case "error":
		o.level = slog.LevelError
	}
	o.source, _ = strconv.ParseBool(os.Getenv("LOG_SOURCE"))
	return o
}

func newHandler(w io.Writer, o options) slog.Handler {
	ho := &slog.HandlerOptions{Level: o.level, AddSource: o.source}
	if o.text {
		return slog.NewTextHandler(w, ho)
	}
	return slog.NewJSONHandler(w, ho)
}

// Init installs the process-wide logger. The standard library logger is
// redirected to it too.
func Init() {
	base := newHandler(os.Stdout, optionsFromEnv())
	std = slog.New(requestHandler{next: base}).With("svc", service)
	slog.SetDefault(std)

	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(base, slog.LevelInfo).Writer())
}

func current() *slog.Logger {
	if std == nil {
		return slog.Default()
	}
	return std
}

func Info(ctx context.Context, msg string, attrs ...any) {
	current().InfoContext(ctx, msg, attrs...)
}

func Warn(ctx context.Context, msg string, attrs ...any) {
	current().WarnContext(ctx, msg, attrs...)
}

func Error(ctx context.Context, msg string, attrs ...any) {
	current().ErrorContext(ctx, msg, attrs...)
}

func Debug(ctx context.Context, msg string, attrs ...any) {
	current().DebugContext(ctx, msg, attrs...)
}

func logf(ctx context.Context, lvl slog.Level, format string, a []any) {
	l := current()
	if !l.Enabled(ctx, lvl) {
		return
	}
	l.Log(ctx, lvl, fmt.Sprintf(format, a...))
}

func Infof(ctx context.Context, format string, a ...any) {
	logf(ctx, slog.LevelInfo, format, a)
}

func Warnf(ctx context.Context, format string, a ...any) {
	logf(ctx, slog.LevelWarn, format, a)
}

func Errorf(ctx context.Context, format string, a ...any) {
	logf(ctx, slog.LevelError, format, a)
}

func Debugf(ctx context.Context, format string, a ...any) {
	logf(ctx, slog.LevelDebug, format, a)
}

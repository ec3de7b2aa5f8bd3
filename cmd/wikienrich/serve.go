package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/flexiodata/functions-wikipedia/internal/config"
	"github.com/flexiodata/functions-wikipedia/internal/debug"
	"github.com/flexiodata/functions-wikipedia/internal/enrich"
	"github.com/flexiodata/functions-wikipedia/internal/result"
)

const (
	// maxRequestSize caps a request body.
	maxRequestSize = 1 << 20

	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the handlers over HTTP",
	Long: `Serves each handler as a POST endpoint that takes the JSON input array
as its body and answers with the result table:

  POST /description   ["Theodore Roosevelt"]
  POST /org           ["Google","label,country"]
  POST /people        ["Marie Curie","*"]
  GET  /health

Rejected input answers 400 with the reason; failed lookups answer 500.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			addr = config.GetString(config.KeyServeAddr)
		}
		return serve(cmd.Context(), addr, newServeMux(newHandlers()))
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from serve.addr)")
	rootCmd.AddCommand(serveCmd)
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()
	debug.Printf("wikienrich serving on http://%s\n", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// newServeMux routes POST /<name> to each handler, plus GET /health.
func newServeMux(handlers []enrich.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for _, h := range handlers {
		mux.Handle("POST /"+h.Name(), handlerEndpoint(h))
	}
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": Version})
	})
	return mux
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func handlerEndpoint(h enrich.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		status := http.StatusOK
		defer func() {
			debug.Printf("%s %s %s %d %s\n", requestID, r.Method, r.URL.Path, status, time.Since(start).Round(time.Millisecond))
		}()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestSize))
		if err != nil {
			var msg string
			status, msg = bodyErrorStatus(err)
			writeJSON(w, status, errorBody{Error: msg, RequestID: requestID})
			return
		}

		table, err := h.Handle(r.Context(), body)
		switch {
		case err == nil:
			w.Header().Set("Content-Type", result.ContentType)
			w.WriteHeader(status)
			_ = result.EncodeJSON(w, table, false)
		case isInputError(err):
			status = http.StatusBadRequest
			writeJSON(w, status, errorBody{Error: err.Error(), RequestID: requestID})
		default:
			// the cause stays in the log; clients only see the kind
			debug.Printf("%s %s: %v\n", requestID, h.Name(), err)
			status = http.StatusInternalServerError
			writeJSON(w, status, errorBody{Error: enrich.ErrFatal.Error(), RequestID: requestID})
		}
	})
}

// bodyErrorStatus maps a request body read failure to a status and message.
func bodyErrorStatus(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "request body too large"
	}
	return http.StatusBadRequest, "failed to read request body"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Package transporthttp exposes each service's operations over a single
// POST /rpc endpoint. The body names an operation and carries its variables;
// the reply is either a data payload or a list of error messages with
// stable codes.
package transporthttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ilmi2809/tubeseai/internal/infrastructure/rpc"
	"github.com/ilmi2809/tubeseai/internal/pkg/logging"
	"github.com/ilmi2809/tubeseai/internal/pkg/metrics"
)

var errUnknownOperation = errors.New("unknown operation")

// operationFunc runs one named operation against its raw variables.
type operationFunc func(r *http.Request, variables json.RawMessage) (any, error)

// Dispatcher routes rpc requests to registered operations and translates
// errors into wire codes. Application-level failures still answer 200 with
// an errors list; only an unreadable envelope is a 400.
type Dispatcher struct {
	validate   *validator.Validate
	metrics    *metrics.RPC
	operations map[string]operationFunc
}

func NewDispatcher(m *metrics.RPC) *Dispatcher {
	return &Dispatcher{
		validate:   validator.New(),
		metrics:    m,
		operations: make(map[string]operationFunc),
	}
}

func (d *Dispatcher) register(name string, fn operationFunc) {
	d.operations[name] = fn
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	var req rpc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, http.StatusBadRequest, rpc.Response{
			Errors: []rpc.ErrorMessage{{Message: "malformed request body", Code: rpc.CodeBadRequest}},
		})
		return
	}

	fn, ok := d.operations[req.Operation]
	if !ok {
		d.observe(req.Operation, "unknown_operation", 0)
		writeResponse(w, http.StatusOK, rpc.Response{
			Errors: []rpc.ErrorMessage{{Message: "unknown operation: " + req.Operation, Code: rpc.CodeBadRequest}},
		})
		return
	}

	start := time.Now()
	data, err := fn(r, req.Variables)
	elapsed := time.Since(start)

	if err != nil {
		code := errorCode(err)
		logger.Warn("operation_failed",
			zap.String("operation", req.Operation),
			zap.String("code", code),
			zap.Error(err),
		)
		d.observe(req.Operation, "error", elapsed)
		writeResponse(w, http.StatusOK, rpc.Response{
			Errors: []rpc.ErrorMessage{{Message: err.Error(), Code: code}},
		})
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		logger.Error("response_encode_failed", zap.String("operation", req.Operation), zap.Error(err))
		d.observe(req.Operation, "error", elapsed)
		writeResponse(w, http.StatusOK, rpc.Response{
			Errors: []rpc.ErrorMessage{{Message: "internal error", Code: rpc.CodeInternal}},
		})
		return
	}

	d.observe(req.Operation, "success", elapsed)
	writeResponse(w, http.StatusOK, rpc.Response{Data: raw})
}

func (d *Dispatcher) observe(operation, outcome string, elapsed time.Duration) {
	if d.metrics == nil {
		return
	}
	d.metrics.Requests.WithLabelValues(operation, outcome).Inc()
	if elapsed > 0 {
		d.metrics.Duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	}
}

// decodeVariables unmarshals and validates an operation's input struct.
func (d *Dispatcher) decodeVariables(variables json.RawMessage, out any) error {
	if len(variables) == 0 {
		variables = []byte("{}")
	}
	if err := json.Unmarshal(variables, out); err != nil {
		return badRequest("invalid variables: " + err.Error())
	}
	if err := d.validate.Struct(out); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

func writeResponse(w http.ResponseWriter, status int, resp rpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

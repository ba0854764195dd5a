package tools

import (
	"errors"
	"fmt"

	"github.com/localrank/insight-server/pkg/localrank"
)

// ErrorCode names the failure class of an invocation.
type ErrorCode string

const (
	CodeUnknownTool        ErrorCode = "unknown_tool"
	CodeInvalidArguments   ErrorCode = "invalid_arguments"
	CodeMissingCredentials ErrorCode = "missing_credentials"
	CodeUpstreamError      ErrorCode = "upstream_error"
	CodeInternalError      ErrorCode = "internal_error"
)

// ToolError is the structured error payload inside an envelope.
type ToolError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
}

// Envelope is the uniform invocation response. Every tool call produces
// one, success or failure, so the caller always receives a well-formed
// document rather than a transport fault.
type Envelope struct {
	InvocationID string     `json:"invocation_id"`
	Tool         string     `json:"tool"`
	OK           bool       `json:"ok"`
	Result       any        `json:"result,omitempty"`
	Error        *ToolError `json:"error,omitempty"`
}

func okEnvelope(id, tool string, result any) Envelope {
	return Envelope{InvocationID: id, Tool: tool, OK: true, Result: result}
}

func errEnvelope(id, tool string, code ErrorCode, message string, details any) Envelope {
	return Envelope{
		InvocationID: id,
		Tool:         tool,
		OK:           false,
		Error:        &ToolError{Code: code, Message: message, Details: details},
	}
}

// upstreamDetails carries the raw upstream status and body alongside the
// rendered message.
type upstreamDetails struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// classifyError maps a handler error onto the envelope taxonomy: argument
// validation, upstream HTTP failure, or the internal catch-all. The
// internal branch deliberately hides the underlying error text from the
// caller; the full chain goes to the log instead.
func classifyError(id, tool string, err error) Envelope {
	var argErr *ArgError
	if errors.As(err, &argErr) {
		return errEnvelope(id, tool, CodeInvalidArguments, argErr.Error(), nil)
	}

	var apiErr *localrank.APIError
	if errors.As(err, &apiErr) {
		msg := fmt.Sprintf("API Error %d: %s", apiErr.StatusCode, apiErr.Body)
		return errEnvelope(id, tool, CodeUpstreamError, msg, upstreamDetails{
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.Body,
		})
	}

	return errEnvelope(id, tool, CodeInternalError, "tool execution failed", nil)
}

// Package models defines the JSON documents shared by the CLI JSON output
// and the HTTP API.
package models

// Value is one integer in both textual forms. Hex is fixed-width and
// zero-padded to the layout; Decimal is minimal.
type Value struct {
	Name    string `json:"name"`
	Hex     string `json:"hex"`
	Decimal string `json:"decimal"`
}

// Layout describes the capacity results were computed in.
type Layout struct {
	Bits      int `json:"bits"`
	WordBits  int `json:"word_bits"`
	Words     int `json:"words"`
	HexDigits int `json:"hex_digits"`
}

// CalculationResponse is the outcome of one operation.
type CalculationResponse struct {
	Op       string  `json:"op"`
	Layout   Layout  `json:"layout"`
	Operands []Value `json:"operands,omitempty"`
	Outputs  []Value `json:"outputs,omitempty"`
	// Cmp is -1, 0 or 1 and only present for comparisons.
	Cmp      *int   `json:"cmp,omitempty"`
	Overflow bool   `json:"overflow"`
	Duration string `json:"duration"`
	// Error is set when the operation failed after validation, such as a
	// timeout or an overflow in strict mode.
	Error string `json:"error,omitempty"`
}

// CalculationRequest is the POST body accepted by the API. Operands follow
// the same prefix rules as the command line.
type CalculationRequest struct {
	Op       string   `json:"op"`
	Operands []string `json:"operands"`
	// Input is "hex" or "dec" and applies to unprefixed operands.
	Input string `json:"input,omitempty"`
}

// Operation describes an operation offered by the API.
type Operation struct {
	Name        string   `json:"name"`
	Arity       int      `json:"arity"`
	Outputs     []string `json:"outputs,omitempty"`
	Description string   `json:"description"`
}

// OperationsResponse lists the available operations.
type OperationsResponse struct {
	Operations []Operation `json:"operations"`
}

// ErrorResponse is the standardized JSON body of an API error.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

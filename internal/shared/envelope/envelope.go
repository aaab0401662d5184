package envelope

// Payload is the uniform response shape for data-returning calls.
// Loading is always false in server responses; clients flip it locally
// while a request is in flight.
type Payload struct {
	Data    any     `json:"data"`
	Error   *string `json:"error"`
	Loading bool    `json:"loading"`
}

// Result is the uniform response shape for deletes and other
// success/failure-only calls.
type Result struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

func Data(v any) Payload {
	return Payload{Data: v}
}

func Fail(msg string) Payload {
	return Payload{Error: &msg}
}

func OK() Result {
	return Result{Success: true}
}

func FailResult(msg string) Result {
	return Result{Error: &msg}
}

package route

// FailureKind is the closed set of reasons a match attempt can fail.
// One gate maps to exactly one kind, so the dispatcher can match on it
// exhaustively when ranking near-misses.
type FailureKind int

const (
	// FailNone means the attempt did not fail.
	FailNone FailureKind = iota

	// FailNotRoutable: the route is a name-only entry and can never
	// match incoming requests.
	FailNotRoutable

	// FailSecure: the request's secure-transport state does not equal
	// the required one.
	FailSecure

	// FailPath: the path did not satisfy the compiled pattern.
	FailPath

	// FailMethod: the request method is not in the allowed set.
	FailMethod

	// FailAccept: content negotiation found no acceptable media type.
	FailAccept

	// FailContext: a context constraint did not match.
	FailContext

	// FailCustom: the custom predicate rejected the request.
	FailCustom
)

// String returns the stable label used in logs, metrics, and traces.
func (k FailureKind) String() string {
	switch k {
	case FailNone:
		return "none"
	case FailNotRoutable:
		return "not_routable"
	case FailSecure:
		return "secure_mismatch"
	case FailPath:
		return "path_mismatch"
	case FailMethod:
		return "method_mismatch"
	case FailAccept:
		return "accept_mismatch"
	case FailContext:
		return "context_mismatch"
	case FailCustom:
		return "custom_mismatch"
	default:
		return "unknown"
	}
}

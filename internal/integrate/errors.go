package integrate

// Warning records a non-fatal per-DoF integration failure: every rung of
// the override ladder (§4.7) returned an error (Unresolved or any other
// evaluation error), so the degree of freedom was left unchanged for
// this tick.
type Warning struct {
	Body string
	DoF  string
}

func (w Warning) String() string {
	return "integrate: " + w.Body + "." + w.DoF + " left unchanged (no override resolved)"
}

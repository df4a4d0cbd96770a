package cse

// FormatResult renders v the way spec.md §6.3 renders a `print` argument or
// the CLI's result line: every Value variant has its own String(), this is
// just the single entry point both callers share.
func FormatResult(v Value) string {
	if v == nil {
		return "None"
	}
	return v.String()
}

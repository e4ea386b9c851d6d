package check

// MissingAssertionMessage is the message attached to every finding.
const MissingAssertionMessage = "Add at least one assertion to this test case."

// Finding is one test method reported for having no assertion.
type Finding struct {
	// File is the path of the analysis unit.
	File string `json:"file"`

	// Line and Col locate the test method's name identifier.
	Line int `json:"line"`
	Col  int `json:"col"`

	// Test is the test method's simple name.
	Test string `json:"test"`

	Message string `json:"message"`
}

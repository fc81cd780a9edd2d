package rigfile

import "fmt"

// Load error codes (R001-R099).
const (
	ErrCodeNotFound = "R001" // rig file not found or unreadable
	ErrCodeParse    = "R002" // YAML syntax error
	ErrCodeSchema   = "R003" // internal schema compilation failure
	ErrCodeGeneric  = "R004" // unclassified load failure
)

// Validation error codes (R100-R199).
const (
	ErrSchemaViolation     = "R100" // value rejected by the CUE schema
	ErrUnknownComponentRef = "R101" // profile references an undefined component
	ErrDuplicateComponent  = "R102" // two components share a name
	ErrInvalidKind         = "R103" // kind is not instrument|parameter|cell
	ErrFieldNotApplicable  = "R104" // enforcement field on a non-cell component
	ErrDuplicateProfileRef = "R105" // profile lists the same component twice
	ErrNoComponents        = "R106" // rig file defines no components
)

// LoadError represents an error that occurred while reading or parsing
// a rig file, before validation could run.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationError represents a rig file schema or consistency violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
	printer    = message.NewPrinter(language.English)
)

// schemaURL is the name the embedded schema is registered under.
const schemaURL = "package.schema.json"

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one failed constraint.
type ValidationIssue struct {
	Path    string // JSON pointer into package.json, "" for the document
	Message string
	Keyword string // last segment of the failing keyword path, e.g. "pattern"
}

func packageSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			schemaErr = fmt.Errorf("decoding %s: %w", schemaURL, err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("registering %s: %w", schemaURL, err)
			return
		}
		if schema, err = c.Compile(schemaURL); err != nil {
			schemaErr = fmt.Errorf("compiling %s: %w", schemaURL, err)
		}
	})
	return schema, schemaErr
}

// Validate checks a package manifest against the embedded package.json
// schema. The error return is for malformed JSON or schema compilation
// failures; schema violations are returned in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	sch, err := packageSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing manifest JSON: %w", err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: issuesOf(validationErr),
	}, nil
}

// ValidateFile reads a file and validates it against the package.json schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Validate(data)
}

// String formats the issue as "path: message", using "(root)" for the
// document itself.
func (i ValidationIssue) String() string {
	path := i.Path
	if path == "" {
		path = "(root)"
	}
	return path + ": " + i.Message
}

// issuesOf flattens the error tree into its leaves. author and bin are oneOf
// unions, so every branch is walked and the same leaf can appear twice.
func issuesOf(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[ValidationIssue]bool)
	walkIssues(ve, func(issue ValidationIssue) {
		if !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	})
	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return issues
}

func walkIssues(ve *jsonschema.ValidationError, emit func(ValidationIssue)) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			walkIssues(cause, emit)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	kw := ve.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		return
	}
	switch keyword := kw[len(kw)-1]; keyword {
	case "oneOf", "allOf", "$ref":
		// Combinators only say that a branch failed; the branch leaves say why.
	default:
		issue := ValidationIssue{
			Message: ve.ErrorKind.LocalizedString(printer),
			Keyword: keyword,
		}
		if len(ve.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		emit(issue)
	}
}

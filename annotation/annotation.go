// Package annotation parses P4 program annotations.
//
// Valid annotations have the form:
//
//	@<label>(<body>)
//
// for example "@sai_acl(INGRESS)" or "@sai_action(SAI_PACKET_ACTION_DROP, RED)".
// Whitespace between the label and the opening parenthesis, and inside
// the parentheses, is insignificant: "@sai_acl(INGRESS)" is treated the
// same as "@sai_acl ( INGRESS )".
package annotation

import (
	"regexp"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Components holds the useful parts of a parsed annotation.
type Components struct {
	Label string
	Body  string
}

var annotationRE = regexp.MustCompile(`^\s*@(\w+)\s*\((.*)\)\s*$`)

// Parse splits an annotation into its label and body. A string that
// does not match the annotation grammar fails with InvalidArgument.
func Parse(text string) (Components, error) {
	m := annotationRE.FindStringSubmatch(text)
	if m == nil {
		return Components{}, status.Errorf(codes.InvalidArgument, "%q is not a valid annotation", text)
	}
	return Components{Label: m[1], Body: strings.TrimSpace(m[2])}, nil
}

// ParseAsArgList splits an annotation body of the form
// "arg [, arg2] [, ...]" into separate, ordered arguments, each
// stripped of surrounding whitespace. An empty body yields an empty
// list. It fails if the body contains any character that is neither
// alphanumeric, comma, space, tab, nor underscore.
func ParseAsArgList(body string) ([]string, error) {
	for _, r := range body {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ',', r == ' ', r == '\t', r == '_':
		default:
			return nil, status.Errorf(codes.InvalidArgument, "invalid character %q in argument list %q", r, body)
		}
	}
	if strings.TrimSpace(body) == "" {
		return []string{}, nil
	}

	args := strings.Split(body, ",")
	for i, arg := range args {
		args[i] = strings.TrimSpace(arg)
	}
	return args, nil
}

// BodyParser converts the body of a matching annotation into a typed
// value.
type BodyParser[T any] func(body string) (T, error)

// Raw returns the annotation body unchanged.
func Raw(body string) (string, error) {
	return body, nil
}

// GetAll returns the parsed bodies of all annotations with the given
// label, in input order. Strings that are not valid annotations, or
// that carry a different label, are skipped: foreign annotations are
// expected noise in a schema's annotation list. A body-parser failure
// on a matching annotation is propagated, annotated with the offending
// annotation text. It fails with NotFound if no annotation matches.
func GetAll[T any](label string, annotations []string, parser BodyParser[T]) ([]T, error) {
	var values []T
	for _, a := range annotations {
		parsed, err := Parse(a)
		if err != nil {
			continue
		}
		if parsed.Label != label {
			continue
		}

		value, err := parser(parsed.Body)
		if err != nil {
			return nil, status.Errorf(status.Code(err), "failed to parse annotation %q: %v", a, err)
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return nil, status.Errorf(codes.NotFound, "no annotation contained label %q", label)
	}
	return values, nil
}

// Get returns the parsed body of the unique annotation with the given
// label. It fails with NotFound if no annotation matches and with
// InvalidArgument if more than one does.
func Get[T any](label string, annotations []string, parser BodyParser[T]) (T, error) {
	var zero T
	values, err := GetAll(label, annotations, parser)
	if err != nil {
		return zero, err
	}
	if len(values) > 1 {
		return zero, status.Errorf(codes.InvalidArgument, "multiple annotations contained label %q", label)
	}
	return values[0], nil
}

// GetAsArgList returns the body of the unique annotation with the given
// label as an argument list.
func GetAsArgList(label string, annotations []string) ([]string, error) {
	return Get(label, annotations, ParseAsArgList)
}

// GetAllAsArgList returns the bodies of all annotations with the given
// label as argument lists.
func GetAllAsArgList(label string, annotations []string) ([][]string, error) {
	return GetAll(label, annotations, ParseAsArgList)
}

// GetBody returns the raw body of the unique annotation with the given
// label.
func GetBody(label string, annotations []string) (string, error) {
	return Get(label, annotations, Raw)
}

// GetAllBodies returns the raw bodies of all annotations with the
// given label.
func GetAllBodies(label string, annotations []string) ([]string, error) {
	return GetAll(label, annotations, Raw)
}

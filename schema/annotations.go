package schema

import (
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sdn-platform/p4ir/annotation"
)

// NumberAnnotation extracts the single numeric argument of the unique
// "@<label>(<n>)" annotation, e.g. the proto id carried by
// "@proto_id(4)". It fails with NotFound if the annotation is missing
// and with InvalidArgument if it appears more than once or its
// argument is not a number.
func NumberAnnotation(label string, annotations []string) (uint32, error) {
	args, err := annotation.GetAsArgList(label, annotations)
	if err != nil {
		return 0, err
	}
	if len(args) != 1 {
		return 0, status.Errorf(codes.InvalidArgument,
			"expected a single argument to @%s, but got %d", label, len(args))
	}

	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument,
			"expected the argument to @%s to be a number, but got %q", label, args[0])
	}
	return uint32(n), nil
}

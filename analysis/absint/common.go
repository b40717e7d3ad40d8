package absint

import "errors"

var errUnknownExpr = errors.New("unknown expression kind")

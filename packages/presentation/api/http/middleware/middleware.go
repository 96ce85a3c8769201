package middleware

import "converter/packages/common/logger"

var log = logger.NewSource("MIDDLEWARE", logger.Default)

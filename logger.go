package jwt

import "log/slog"

// LogFailures returns a pass-through TokenValidator which logs the
// error of the previous validation step, if any, at warn level.
// Only a redacted preview of the token is logged.
// Place it last to observe the final outcome.
//
// Usage:
//
//	claims, err := jwt.Verify(token, "RS256", publicKey, jwt.Expected{Issuer: "my-app"}, jwt.LogFailures(logger))
func LogFailures(logger *slog.Logger) TokenValidatorFunc {
	return func(token string, claims Claims, err error) error {
		if err == nil || logger == nil {
			return err
		}

		logger.Warn("token validation failed",
			slog.String("kind", KindOf(err).String()),
			slog.String("token", redactToken(token)),
			slog.String("sub", claims.Subject()),
			slog.String("jti", claims.ID()),
			slog.Any("error", err),
		)
		return err
	}
}

// redactToken keeps the first 8 characters of a token, enough to
// correlate log lines without leaking a usable token.
func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}

	if len(token) <= 8 {
		return "***"
	}

	return token[:8] + "..."
}
